package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID            string    `gorm:"primaryKey;size:36;comment:用户标识" json:"id"`
	Username      string    `gorm:"size:64;not null;uniqueIndex:uq_users_username;comment:用户名(小写)" json:"username"`
	Email         string    `gorm:"size:255;not null;uniqueIndex:uq_users_email;comment:邮箱(小写)" json:"email"`
	Password      string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	FullName      string    `gorm:"size:128;not null;default:'';comment:昵称" json:"full_name"`
	AvatarURL     string    `gorm:"size:500;not null;default:'';comment:头像" json:"avatar_url"`
	CoverImageURL string    `gorm:"size:500;not null;default:'';comment:主页背景" json:"cover_image_url"`
	SavedPostIDs  []string  `gorm:"serializer:json;type:text;comment:收藏的帖子ID(有序集合)" json:"-"`
	WatchHistory  []string  `gorm:"serializer:json;type:text;comment:浏览记录(最近在前)" json:"-"`
	RefreshToken  *string   `gorm:"type:text;comment:当前有效的刷新令牌" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}
