package model

import (
	"time"

	"gorm.io/gorm"
)

// Post 帖子模型
type Post struct {
	ID          string    `gorm:"primaryKey;size:36;comment:帖子标识" json:"id"`
	OwnerID     string    `gorm:"size:36;not null;index:idx_posts_owner_id;comment:作者ID" json:"owner_id"`
	Content     string    `gorm:"type:text;not null;comment:正文" json:"content"`
	ImageURL    string    `gorm:"size:500;not null;default:'';comment:配图地址" json:"image_url"`
	Views       int64     `gorm:"not null;default:0;check:chk_posts_views,views >= 0;comment:浏览量" json:"views"`
	IsPublished bool      `gorm:"not null;index:idx_posts_published_created,priority:1;comment:是否公开" json:"is_published"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_posts_published_created,priority:2;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
