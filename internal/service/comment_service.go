package service

import (
	"context"
	"errors"
	"strings"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/apperr"
	"pulse-go/internal/model"
	"pulse-go/internal/repository"
	"pulse-go/pkg/logger"

	"go.uber.org/zap"
)

var ErrCommentNoPermission = apperr.Forbidden("没有权限操作该评论")

type CommentService struct {
	comments *repository.CommentRepository
	likes    *repository.LikeRepository
	views    *ViewService
}

func NewCommentService(comments *repository.CommentRepository, likes *repository.LikeRepository, views *ViewService) *CommentService {
	return &CommentService{comments: comments, likes: likes, views: views}
}

// Add 发表评论，帖子须对请求方可见
func (s *CommentService) Add(ctx context.Context, v Viewer, postID, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if err := s.views.ensureVisible(ctx, v, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{PostID: postID, OwnerID: v.ID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return toCommentInfo(comment), nil
}

func (s *CommentService) owned(ctx context.Context, actorID, commentID string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.OwnerID != actorID {
		return nil, ErrCommentNoPermission
	}
	return comment, nil
}

// Update 修改评论（仅作者本人）
func (s *CommentService) Update(ctx context.Context, actorID, commentID, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.owned(ctx, actorID, commentID); err != nil {
		return nil, err
	}

	updated, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, err
	}
	return toCommentInfo(updated), nil
}

// Delete 删除评论及其点赞（仅作者本人）
func (s *CommentService) Delete(ctx context.Context, actorID, commentID string) error {
	if _, err := s.owned(ctx, actorID, commentID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	if _, err := s.likes.DeleteByComments(ctx, []string{commentID}); err != nil {
		logger.Error("Delete comment likes failed", zap.String("comment_id", commentID), zap.Error(err))
		return &apperr.Error{Kind: apperr.KindDependency, Message: "评论已删除，点赞清理失败", Leg: legLikes, Err: err}
	}
	return nil
}
