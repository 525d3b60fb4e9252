package dto

import "time"

// PostCreateRequest 发帖请求（multipart/form-data，图片字段为 image）
type PostCreateRequest struct {
	Content     string `form:"content" binding:"required,min=1,max=5000"`
	IsPublished *bool  `form:"is_published"`
}

// PostUpdateRequest 更新帖子请求（multipart/form-data）
type PostUpdateRequest struct {
	Content *string `form:"content" binding:"omitempty,min=1,max=5000"`
}

// PageQuery 分页参数
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// FeedQuery 帖子流查询参数
type FeedQuery struct {
	PageQuery
	Query    string `form:"query" binding:"omitempty,max=200"`
	UserID   string `form:"userId"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
}

// PostInfo 帖子本身的字段
type PostInfo struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerDetail 帖子详情中的作者信息
type OwnerDetail struct {
	UserBrief
	SubscribersCount int64 `json:"subscribers_count"`
	IsSubscribed     bool  `json:"is_subscribed"`
}

// PostDetail 帖子详情视图
type PostDetail struct {
	PostInfo
	LikesCount int64       `json:"likes_count"`
	IsLiked    bool        `json:"is_liked"`
	Owner      OwnerDetail `json:"owner"`
}

// PostSummary 列表中的帖子
type PostSummary struct {
	PostInfo
	LikesCount int64     `json:"likes_count"`
	Owner      UserBrief `json:"owner"`
}

// PublishStatus 发布状态切换结果
type PublishStatus struct {
	ID          string `json:"id"`
	IsPublished bool   `json:"is_published"`
}

// ToggleResult 点赞/关注切换结果
type ToggleResult struct {
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
	State    string `json:"state"`
	Active   bool   `json:"active"`
}
