package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/apperr"
	infraKafka "pulse-go/internal/infra/kafka"
	"pulse-go/internal/model"
	"pulse-go/internal/repository"
	"pulse-go/pkg/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrPostNoPermission = apperr.Forbidden("没有权限操作该帖子")
	ErrNoFieldsToUpdate = apperr.Invalid("没有需要更新的字段")
	ErrEmptyContent     = apperr.Invalid("内容不能为空")
)

// 级联删除的分支名
const (
	legLikes    = "likes"
	legComments = "comments"
	legMedia    = "media"
)

// Upload 待上传的媒体文件
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type PostService struct {
	posts        *repository.PostRepository
	comments     *repository.CommentRepository
	likes        *repository.LikeRepository
	users        *repository.UserRepository
	media        MediaStore
	events       EventPublisher
	views        ViewGate
	historyLimit int
}

func NewPostService(posts *repository.PostRepository, comments *repository.CommentRepository, likes *repository.LikeRepository, users *repository.UserRepository, media MediaStore, events EventPublisher, views ViewGate, historyLimit int) *PostService {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &PostService{
		posts:        posts,
		comments:     comments,
		likes:        likes,
		users:        users,
		media:        media,
		events:       events,
		views:        views,
		historyLimit: historyLimit,
	}
}

// emit 发送帖子事件，失败只记录日志
func (s *PostService) emit(ctx context.Context, eventType string, post *model.Post) {
	if s.events == nil {
		return
	}
	evt := infraKafka.PostEvent{
		Type:       eventType,
		PostID:     post.ID,
		OwnerID:    post.OwnerID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishPostEvent(ctx, evt); err != nil {
		logger.Warn("Publish post event failed",
			zap.String("type", eventType), zap.String("post_id", post.ID), zap.Error(err))
	}
}

// uploadMedia 以 prefix/owner/随机名 存储上传文件
func uploadMedia(ctx context.Context, media MediaStore, prefix, ownerID string, up *Upload) (string, error) {
	if media == nil {
		return "", apperr.New(apperr.KindDependency, "媒体存储不可用")
	}
	objectName := fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, model.NewID(), strings.ToLower(path.Ext(up.Filename)))
	url, err := media.Put(ctx, objectName, up.Reader, up.Size, up.ContentType)
	if err != nil {
		return "", apperr.Wrap(apperr.KindDependency, "上传图片失败", err)
	}
	return url, nil
}

// releaseMedia 释放不再引用的媒体，失败只记录日志
func releaseMedia(ctx context.Context, media MediaStore, url string) {
	if url == "" || media == nil {
		return
	}
	if err := media.Delete(ctx, url); err != nil {
		logger.Warn("Release media failed", zap.String("url", url), zap.Error(err))
	}
}

// ownedPost 读取帖子并校验作者
func (s *PostService) ownedPost(ctx context.Context, actorID, postID string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != actorID {
		return nil, ErrPostNoPermission
	}
	return post, nil
}

// Publish 发帖，图片可选；默认公开
func (s *PostService) Publish(ctx context.Context, ownerID, content string, isPublished *bool, image *Upload) (*dto.PostInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := &model.Post{
		OwnerID:     ownerID,
		Content:     content,
		IsPublished: true,
	}
	if isPublished != nil {
		post.IsPublished = *isPublished
	}

	if image != nil {
		url, err := uploadMedia(ctx, s.media, "posts", ownerID, image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = url
	}

	if err := s.posts.Create(ctx, post); err != nil {
		logger.Error("Create post failed, releasing uploaded image",
			zap.String("owner_id", ownerID), zap.Error(err))
		releaseMedia(ctx, s.media, post.ImageURL)
		return nil, err
	}

	s.emit(ctx, infraKafka.PostPublished, post)
	return toPostInfo(post), nil
}

// Update 更新正文或替换图片（仅作者本人），旧图片随后释放
func (s *PostService) Update(ctx context.Context, actorID, postID string, content *string, image *Upload) (*dto.PostInfo, error) {
	post, err := s.ownedPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if content != nil {
		c := strings.TrimSpace(*content)
		if c == "" {
			return nil, ErrEmptyContent
		}
		updates["content"] = c
	}
	if image != nil {
		url, err := uploadMedia(ctx, s.media, "posts", actorID, image)
		if err != nil {
			return nil, err
		}
		updates["image_url"] = url
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.posts.Update(ctx, postID, updates)
	if err != nil {
		if url, ok := updates["image_url"].(string); ok {
			releaseMedia(ctx, s.media, url)
		}
		return nil, err
	}
	if image != nil {
		releaseMedia(ctx, s.media, post.ImageURL)
	}

	s.emit(ctx, infraKafka.PostUpdated, updated)
	return toPostInfo(updated), nil
}

// TogglePublish 切换公开状态（仅作者本人）
func (s *PostService) TogglePublish(ctx context.Context, actorID, postID string) (*dto.PublishStatus, error) {
	post, err := s.ownedPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.Update(ctx, postID, map[string]interface{}{"is_published": !post.IsPublished})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, infraKafka.PostUpdated, updated)
	return &dto.PublishStatus{ID: updated.ID, IsPublished: updated.IsPublished}, nil
}

// Delete 删除帖子（仅作者本人）：先删帖子本身，再并发清理点赞、评论与图片
func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	post, err := s.ownedPost(ctx, actorID, postID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.emit(ctx, infraKafka.PostDeleted, post)

	return s.cascade(ctx, post)
}

// cascade 帖子已删除后清理关联数据；评论分支连同评论收到的点赞一起删除
func (s *PostService) cascade(ctx context.Context, post *model.Post) error {
	var (
		mu     sync.Mutex
		failed []string
		errs   error
		g      errgroup.Group
	)

	run := func(leg string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				mu.Lock()
				failed = append(failed, leg)
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", leg, err))
				mu.Unlock()
				cascadeFailures.WithLabelValues(leg).Inc()
			}
			return nil
		})
	}

	run(legLikes, func() error {
		_, err := s.likes.DeleteByPost(ctx, post.ID)
		return err
	})
	run(legComments, func() error {
		_, err := s.comments.DeleteByPost(ctx, post.ID)
		return err
	})
	if post.ImageURL != "" && s.media != nil {
		run(legMedia, func() error {
			return s.media.Delete(ctx, post.ImageURL)
		})
	}

	_ = g.Wait()

	if errs == nil {
		return nil
	}
	sort.Strings(failed)
	logger.Error("Post cascade incomplete",
		zap.String("post_id", post.ID), zap.Strings("legs", failed), zap.Error(errs))
	return &apperr.Error{
		Kind:    apperr.KindDependency,
		Message: "帖子已删除，部分关联数据清理失败",
		Leg:     strings.Join(failed, ","),
		Err:     errs,
	}
}

// RecordView 登录用户浏览帖子：去重窗口内只计一次浏览量，浏览记录移到最前
func (s *PostService) RecordView(ctx context.Context, v Viewer, postID string) error {
	if v.IsGuest() {
		return nil
	}

	count := true
	if s.views != nil {
		first, err := s.views.FirstView(ctx, v.ID, postID)
		if err != nil {
			logger.Warn("View gate unavailable, counting view", zap.String("post_id", postID), zap.Error(err))
		} else {
			count = first
		}
	}

	if count {
		if err := s.posts.IncrementViews(ctx, postID); err != nil {
			return err
		}
	}

	limit := s.historyLimit
	return s.users.ModifyWatchHistory(ctx, v.ID, func(history []string) []string {
		return moveToFront(history, postID, limit)
	})
}

// moveToFront 去重后插到最前，超出上限截断
func moveToFront(list []string, id string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, id)
	for _, existing := range list {
		if existing != id {
			out = append(out, existing)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Save 收藏帖子（集合语义，重复收藏无副作用）
func (s *PostService) Save(ctx context.Context, v Viewer, postID string) ([]string, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished && post.OwnerID != v.ID {
		return nil, ErrPostNotFound
	}

	return s.users.ModifySavedPosts(ctx, v.ID, func(saved []string) []string {
		for _, id := range saved {
			if id == postID {
				return saved
			}
		}
		return append(saved, postID)
	})
}

// Unsave 取消收藏
func (s *PostService) Unsave(ctx context.Context, v Viewer, postID string) ([]string, error) {
	return s.users.ModifySavedPosts(ctx, v.ID, func(saved []string) []string {
		out := make([]string, 0, len(saved))
		for _, id := range saved {
			if id != postID {
				out = append(out, id)
			}
		}
		return out
	})
}
