package service

import (
	"context"
	"errors"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/apperr"
	"pulse-go/pkg/logger"

	"go.uber.org/zap"
)

// ToggleKind 可切换的关系种类
type ToggleKind string

const (
	KindPostLike    ToggleKind = "post_like"
	KindCommentLike ToggleKind = "comment_like"
	KindFollow      ToggleKind = "follow"
)

// ToggleState 切换后的状态
type ToggleState string

const (
	StateAdded   ToggleState = "added"
	StateRemoved ToggleState = "removed"
)

const maxToggleAttempts = 2

var (
	ErrCannotFollowSelf = apperr.Invalid("不能关注自己")
	ErrUnknownToggle    = apperr.Invalid("不支持的操作类型")
	ErrToggleContended  = apperr.New(apperr.KindConflict, "操作冲突，请重试")
)

// RelationStore 一类有向边的存取
type RelationStore interface {
	TargetExists(ctx context.Context, targetID string) (bool, error)
	Exists(ctx context.Context, actorID, targetID string) (bool, error)
	Insert(ctx context.Context, actorID, targetID string) error
	Remove(ctx context.Context, actorID, targetID string) (bool, error)
}

type ToggleService struct {
	stores map[ToggleKind]RelationStore
}

func NewToggleService(postLikes, commentLikes, follows RelationStore) *ToggleService {
	return &ToggleService{stores: map[ToggleKind]RelationStore{
		KindPostLike:    postLikes,
		KindCommentLike: commentLikes,
		KindFollow:      follows,
	}}
}

var targetNotFound = map[ToggleKind]string{
	KindPostLike:    "帖子不存在",
	KindCommentLike: "评论不存在",
	KindFollow:      "用户不存在",
}

// Toggle 存在则删除，不存在则插入；并发冲突时重读一次
func (s *ToggleService) Toggle(ctx context.Context, actorID string, kind ToggleKind, targetID string) (*dto.ToggleResult, error) {
	state, err := s.toggle(ctx, actorID, kind, targetID)
	if err != nil {
		toggleTotal.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}
	toggleTotal.WithLabelValues(string(kind), string(state)).Inc()

	return &dto.ToggleResult{
		Kind:     string(kind),
		TargetID: targetID,
		State:    string(state),
		Active:   state == StateAdded,
	}, nil
}

func (s *ToggleService) toggle(ctx context.Context, actorID string, kind ToggleKind, targetID string) (ToggleState, error) {
	if actorID == "" || targetID == "" {
		return "", apperr.Invalid("缺少操作对象")
	}
	if kind == KindFollow && actorID == targetID {
		return "", ErrCannotFollowSelf
	}
	store, ok := s.stores[kind]
	if !ok || store == nil {
		return "", ErrUnknownToggle
	}

	exists, err := store.TargetExists(ctx, targetID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperr.NotFound(targetNotFound[kind])
	}

	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		present, err := store.Exists(ctx, actorID, targetID)
		if err != nil {
			return "", err
		}

		if present {
			removed, err := store.Remove(ctx, actorID, targetID)
			if err != nil {
				return "", err
			}
			if removed {
				return StateRemoved, nil
			}
			// 被并发请求先删掉了
		} else {
			err := store.Insert(ctx, actorID, targetID)
			if err == nil {
				return StateAdded, nil
			}
			if !errors.Is(err, apperr.ErrConflict) {
				return "", err
			}
		}

		logger.Debug("Toggle lost a race, re-reading",
			zap.String("kind", string(kind)),
			zap.String("actor_id", actorID),
			zap.String("target_id", targetID),
			zap.Int("attempt", attempt),
		)
	}

	return "", ErrToggleContended
}
