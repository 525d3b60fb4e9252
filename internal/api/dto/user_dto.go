package dto

import "time"

// UserInfo 用户本人可见的信息（不含密码与令牌）
type UserInfo struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserBrief 嵌套在帖子、评论中的用户简要信息
type UserBrief struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileInfo 用户主页
type ProfileInfo struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	AvatarURL         string `json:"avatar_url"`
	CoverImageURL     string `json:"cover_image_url"`
	SubscribersCount  int64  `json:"subscribers_count"`
	SubscribedToCount int64  `json:"subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

// FollowUser 关注/粉丝列表项
type FollowUser struct {
	UserBrief
	FollowedAt time.Time `json:"followed_at"`
}

// UpdateAccountRequest 账户信息更新
type UpdateAccountRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=128"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
}
