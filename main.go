package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-service/internal/config"
	"community-service/internal/email"
	"community-service/internal/middleware"
	"community-service/internal/service"
	"community-service/internal/store"
	"community-service/internal/transport/http"
	"community-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()

	db, err := store.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}
	log.Println("✅ Community DB connected & migrated")

	if err := store.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}

	var avatarStorage service.AvatarStorage
	if cfg.R2AccountID != "" {
		r2Client, err := utils.NewAvatarR2Client(utils.AvatarR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatalf("❌ [R2] Failed to initialize client: %v", err)
		}
		avatarStorage = r2Client
		log.Println("✅ [R2] Avatar storage initialized")
	} else {
		log.Println("⚠️ Avatar storage disabled (no R2_ACCOUNT_ID)")
	}

	var emailSender *email.Sender
	if cfg.SMTPHost != "" {
		emailSender = email.NewSender(cfg)
		log.Println("✅ [SMTP] Email sender initialized")
	} else {
		log.Println("⚠️ Email disabled (no SMTP_HOST)")
	}

	secret := []byte(cfg.JWTSecret)
	authService := service.NewAuthService(db, secret, emailSender, cfg.AppBaseURL)
	profileService := service.NewProfileService(db, avatarStorage)
	forumService := service.NewForumService(db)
	announcementService := service.NewAnnouncementService(db)
	notificationService := service.NewNotificationService(db)
	handler := http.NewHandler(authService, profileService, forumService, announcementService, notificationService)
	log.Println("✅ [SERVICE] Services & handler initialized")

	app := fiber.New(fiber.Config{
		AppName:      "community-service",
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
	}))

	requireAuth := middleware.RequireAuth(secret)
	api := app.Group("/api")

	// Public auth routes
	api.Post("/login", handler.Login)
	api.Post("/sign-up", handler.SignUp)
	api.Post("/forgot-password", handler.ForgotPassword)

	// Profile
	api.Get("/profile", requireAuth, handler.GetProfile)
	api.Put("/profile", requireAuth, handler.UpdateProfile)
	api.Post("/profile/avatar", requireAuth, handler.UpdateAvatar)

	// Forum
	api.Get("/forum/posts", requireAuth, handler.GetAllPosts)
	api.Post("/forum/posts", requireAuth, handler.CreatePost)
	api.Post("/forum/posts/comment", requireAuth, handler.AddComment)
	api.Post("/forum/posts/like", requireAuth, handler.ToggleLike)
	api.Get("/forum/posts/:id", requireAuth, handler.GetPostByID)

	// Announcements (role check happens at write time in the service)
	api.Get("/announcements", requireAuth, handler.GetAllAnnouncements)
	api.Post("/announcements", requireAuth, handler.CreateAnnouncement)

	// Notifications feed
	api.Get("/notifications", requireAuth, handler.GetNotifications)

	log.Println("✅ [ROUTES] Registered /api routes")

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "community-service",
			"uptime":    uptime.String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 community-service starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s | UA=%s",
		code,
		c.Method(),
		c.Path(),
		errMsg,
		c.IP(),
		c.Get("User-Agent"),
	)
	return c.Status(code).JSON(fiber.Map{
		"error": "something went wrong",
	})
}
