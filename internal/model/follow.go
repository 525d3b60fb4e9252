package model

import (
	"time"

	"gorm.io/gorm"
)

// Follow 关注关系，FollowerID 关注 FollowedUserID
type Follow struct {
	ID             string    `gorm:"primaryKey;size:36;comment:关注关系ID" json:"id"`
	FollowerID     string    `gorm:"size:36;not null;uniqueIndex:uq_follow_pair,priority:1;comment:粉丝用户ID" json:"follower_id"`
	FollowedUserID string    `gorm:"size:36;not null;uniqueIndex:uq_follow_pair,priority:2;index:idx_follows_followed;comment:被关注用户ID" json:"followed_user_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_follows_created_at;comment:关注时间" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}
