// internal/email/templates/password_reset.go
package templates

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

const passwordResetHTML = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f7;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:32px 16px;">
      <table width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;padding:32px;">
        <tr><td style="font-size:20px;font-weight:bold;color:#1a1a2e;padding-bottom:16px;">Reset Your Password</td></tr>
        <tr><td style="font-size:14px;color:#444;line-height:1.6;padding-bottom:24px;">
          We received a request to reset the password for your account. Click the
          button below to choose a new one. The link expires in one hour.
        </td></tr>
        <tr><td align="center" style="padding-bottom:24px;">
          <a href="{{.ResetLink}}" style="display:inline-block;background:#2c7be5;color:#ffffff;text-decoration:none;padding:12px 28px;border-radius:6px;font-size:14px;">Reset Password</a>
        </td></tr>
        <tr><td style="font-size:12px;color:#888;line-height:1.6;">
          If you did not request a password reset, you can safely ignore this email.
        </td></tr>
        <tr><td style="font-size:12px;color:#aaa;padding-top:24px;">© {{.Year}} {{.FromName}}</td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(passwordResetHTML))

type PasswordResetData struct {
	ResetLink string
	FromName  string
	Year      int
}

func RenderPasswordReset(data PasswordResetData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf strings.Builder
	if err := passwordResetTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}
