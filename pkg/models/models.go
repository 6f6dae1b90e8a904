package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin is the single place role checks happen; handlers never compare
// the string directly.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	FullName         string     `json:"fullName" gorm:"type:varchar(255);not null"`
	Email            string     `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password         string     `json:"-" gorm:"type:varchar(255);not null"`
	Phone            *string    `json:"phone" gorm:"type:varchar(50)"`
	Address          *string    `json:"address" gorm:"type:text"`
	Avatar           *string    `json:"avatar" gorm:"type:varchar(500)"`
	Role             Role       `json:"role,omitempty" gorm:"type:varchar(20);not null;default:'user'"`
	ResetToken       *string    `json:"-" gorm:"type:varchar(100)"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type ForumPost struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Title     string          `json:"title" gorm:"type:varchar(255);not null"`
	Content   string          `json:"content" gorm:"type:text;not null"`
	AuthorID  uint            `json:"authorId" gorm:"index;not null"`
	Author    *User           `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments  []Comment       `json:"comments" gorm:"foreignKey:PostID"`
	Likes     []Like          `json:"likes" gorm:"foreignKey:PostID"`
	Count     *RelationCounts `json:"_count,omitempty" gorm:"-"`
	CreatedAt time.Time       `json:"createdAt"`
}

// RelationCounts mirrors the `_count` object clients already consume.
type RelationCounts struct {
	Comments int `json:"comments"`
	Likes    int `json:"likes"`
}

type Comment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	PostID    uint       `json:"postId" gorm:"index;not null"`
	Post      *ForumPost `json:"post,omitempty" gorm:"foreignKey:PostID"`
	AuthorID  uint       `json:"authorId" gorm:"index;not null"`
	Author    *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Like existence encodes the "liked" boolean. The composite unique index is
// the serialization point for concurrent toggles on the same (post, user).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"not null;uniqueIndex:idx_likes_post_user"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_likes_post_user"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"createdAt"`
}

type Announcement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"authorId" gorm:"index;not null"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationType string

const (
	NotificationForumComment NotificationType = "forum_comment"
	NotificationAnnouncement NotificationType = "announcement"
)

type NotificationActor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type NotificationRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// NotificationItem is derived per request from forum and announcement
// activity. It is never persisted.
type NotificationItem struct {
	ID           string            `json:"id"`
	Type         NotificationType  `json:"type"`
	CreatedAt    time.Time         `json:"createdAt"`
	Actor        NotificationActor `json:"actor"`
	Post         *NotificationRef  `json:"post,omitempty"`
	Announcement *NotificationRef  `json:"announcement,omitempty"`
	Message      string            `json:"message"`
}
