package service

import (
	"time"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/model"
)

// 管道扫描用的扁平行结构，列名与管道中的别名一一对应

type postRow struct {
	ID          string
	OwnerID     string
	Content     string
	ImageURL    string
	Views       int64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LikesCount  int64

	OwnerUsername  *string
	OwnerFullName  *string
	OwnerAvatarURL *string
}

type postDetailRow struct {
	postRow
	IsLiked               bool
	OwnerSubscribersCount int64
	OwnerIsSubscribed     bool
}

type commentRow struct {
	ID         string
	PostID     string
	OwnerID    string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	LikesCount int64
	IsLiked    bool

	OwnerUsername  *string
	OwnerFullName  *string
	OwnerAvatarURL *string
}

type likedPostRow struct {
	PostID          string
	PostOwnerID     string
	PostContent     string
	PostImageURL    string
	PostViews       int64
	PostIsPublished bool
	PostCreatedAt   time.Time
	PostUpdatedAt   time.Time
	LikesCount      int64

	OwnerUsername  *string
	OwnerFullName  *string
	OwnerAvatarURL *string
}

type likedCommentRow struct {
	CommentID        string
	CommentPostID    string
	CommentOwnerID   string
	CommentContent   string
	CommentCreatedAt time.Time
	CommentUpdatedAt time.Time
	LikedAt          time.Time

	OwnerUsername  *string
	OwnerFullName  *string
	OwnerAvatarURL *string
}

type followRow struct {
	UserID        string
	UserUsername  string
	UserFullName  string
	UserAvatarURL string
	FollowedAt    time.Time
}

type profileRow struct {
	ID                string
	Username          string
	FullName          string
	Email             string
	AvatarURL         string
	CoverImageURL     string
	SubscribersCount  int64
	SubscribedToCount int64
	IsSubscribed      bool
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ownerBrief(id string, username, fullName, avatar *string) dto.UserBrief {
	return dto.UserBrief{
		ID:        id,
		Username:  str(username),
		FullName:  str(fullName),
		AvatarURL: str(avatar),
	}
}

func (r *postRow) info() dto.PostInfo {
	return dto.PostInfo{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Content:     r.Content,
		ImageURL:    r.ImageURL,
		Views:       r.Views,
		IsPublished: r.IsPublished,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toPostSummary(r *postRow) dto.PostSummary {
	return dto.PostSummary{
		PostInfo:   r.info(),
		LikesCount: r.LikesCount,
		Owner:      ownerBrief(r.OwnerID, r.OwnerUsername, r.OwnerFullName, r.OwnerAvatarURL),
	}
}

func toPostDetail(r *postDetailRow) *dto.PostDetail {
	return &dto.PostDetail{
		PostInfo:   r.info(),
		LikesCount: r.LikesCount,
		IsLiked:    r.IsLiked,
		Owner: dto.OwnerDetail{
			UserBrief:        ownerBrief(r.OwnerID, r.OwnerUsername, r.OwnerFullName, r.OwnerAvatarURL),
			SubscribersCount: r.OwnerSubscribersCount,
			IsSubscribed:     r.OwnerIsSubscribed,
		},
	}
}

func toCommentView(r *commentRow) dto.CommentView {
	return dto.CommentView{
		CommentInfo: dto.CommentInfo{
			ID:        r.ID,
			PostID:    r.PostID,
			OwnerID:   r.OwnerID,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
		LikesCount: r.LikesCount,
		IsLiked:    r.IsLiked,
		Owner:      ownerBrief(r.OwnerID, r.OwnerUsername, r.OwnerFullName, r.OwnerAvatarURL),
	}
}

func toLikedPost(r *likedPostRow) dto.PostSummary {
	return dto.PostSummary{
		PostInfo: dto.PostInfo{
			ID:          r.PostID,
			OwnerID:     r.PostOwnerID,
			Content:     r.PostContent,
			ImageURL:    r.PostImageURL,
			Views:       r.PostViews,
			IsPublished: r.PostIsPublished,
			CreatedAt:   r.PostCreatedAt,
			UpdatedAt:   r.PostUpdatedAt,
		},
		LikesCount: r.LikesCount,
		Owner:      ownerBrief(r.PostOwnerID, r.OwnerUsername, r.OwnerFullName, r.OwnerAvatarURL),
	}
}

func toLikedComment(r *likedCommentRow) dto.LikedComment {
	return dto.LikedComment{
		CommentInfo: dto.CommentInfo{
			ID:        r.CommentID,
			PostID:    r.CommentPostID,
			OwnerID:   r.CommentOwnerID,
			Content:   r.CommentContent,
			CreatedAt: r.CommentCreatedAt,
			UpdatedAt: r.CommentUpdatedAt,
		},
		LikedAt: r.LikedAt,
		Owner:   ownerBrief(r.CommentOwnerID, r.OwnerUsername, r.OwnerFullName, r.OwnerAvatarURL),
	}
}

func toFollowUser(r *followRow) dto.FollowUser {
	return dto.FollowUser{
		UserBrief: dto.UserBrief{
			ID:        r.UserID,
			Username:  r.UserUsername,
			FullName:  r.UserFullName,
			AvatarURL: r.UserAvatarURL,
		},
		FollowedAt: r.FollowedAt,
	}
}

func toProfile(r *profileRow) *dto.ProfileInfo {
	return &dto.ProfileInfo{
		ID:                r.ID,
		Username:          r.Username,
		FullName:          r.FullName,
		Email:             r.Email,
		AvatarURL:         r.AvatarURL,
		CoverImageURL:     r.CoverImageURL,
		SubscribersCount:  r.SubscribersCount,
		SubscribedToCount: r.SubscribedToCount,
		IsSubscribed:      r.IsSubscribed,
	}
}

func toPostInfo(p *model.Post) *dto.PostInfo {
	return &dto.PostInfo{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Content:     p.Content,
		ImageURL:    p.ImageURL,
		Views:       p.Views,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCommentInfo(c *model.Comment) *dto.CommentInfo {
	return &dto.CommentInfo{
		ID:        c.ID,
		PostID:    c.PostID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
	}
}
