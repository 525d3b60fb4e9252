package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentUpdateRequest 更新评论请求
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentInfo 评论本身的字段
type CommentInfo struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentView 评论列表项
type CommentView struct {
	CommentInfo
	LikesCount int64     `json:"likes_count"`
	IsLiked    bool      `json:"is_liked"`
	Owner      UserBrief `json:"owner"`
}

// LikedComment 点赞过的评论
type LikedComment struct {
	CommentInfo
	LikedAt time.Time `json:"liked_at"`
	Owner   UserBrief `json:"owner"`
}
