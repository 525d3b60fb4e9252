package model

import (
	"time"

	"gorm.io/gorm"
)

// Like 点赞记录，PostID 与 CommentID 恰有一个非空
type Like struct {
	ID        string    `gorm:"primaryKey;size:36;comment:点赞记录ID" json:"id"`
	LikedByID string    `gorm:"size:36;not null;uniqueIndex:uq_like_post,priority:1;uniqueIndex:uq_like_comment,priority:1;comment:点赞用户ID" json:"liked_by_id"`
	PostID    *string   `gorm:"size:36;check:chk_like_target,(post_id IS NULL) <> (comment_id IS NULL);uniqueIndex:uq_like_post,priority:2;index:idx_likes_post_id;comment:被点赞帖子ID" json:"post_id,omitempty"`
	CommentID *string   `gorm:"size:36;uniqueIndex:uq_like_comment,priority:2;index:idx_likes_comment_id;comment:被点赞评论ID" json:"comment_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_likes_created_at;comment:点赞时间" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
