package repository

import (
	"context"
	"fmt"

	"pulse-go/internal/model"

	"gorm.io/gorm"
)

// RelationStore 用户与目标之间的一条有向边（点赞或关注）
type RelationStore struct {
	db           *gorm.DB
	what         string
	edgeModel    interface{}
	actorColumn  string
	targetColumn string
	targetModel  interface{}
	newEdge      func(actorID, targetID string) interface{}
}

// NewPostLikeStore 帖子点赞
func NewPostLikeStore(db *gorm.DB) *RelationStore {
	return &RelationStore{
		db:           db,
		what:         "点赞",
		edgeModel:    &model.Like{},
		actorColumn:  "liked_by_id",
		targetColumn: "post_id",
		targetModel:  &model.Post{},
		newEdge: func(actorID, targetID string) interface{} {
			return &model.Like{LikedByID: actorID, PostID: &targetID}
		},
	}
}

// NewCommentLikeStore 评论点赞
func NewCommentLikeStore(db *gorm.DB) *RelationStore {
	return &RelationStore{
		db:           db,
		what:         "点赞",
		edgeModel:    &model.Like{},
		actorColumn:  "liked_by_id",
		targetColumn: "comment_id",
		targetModel:  &model.Comment{},
		newEdge: func(actorID, targetID string) interface{} {
			return &model.Like{LikedByID: actorID, CommentID: &targetID}
		},
	}
}

// NewFollowStore 关注关系
func NewFollowStore(db *gorm.DB) *RelationStore {
	return &RelationStore{
		db:           db,
		what:         "关注关系",
		edgeModel:    &model.Follow{},
		actorColumn:  "follower_id",
		targetColumn: "followed_user_id",
		targetModel:  &model.User{},
		newEdge: func(actorID, targetID string) interface{} {
			return &model.Follow{FollowerID: actorID, FollowedUserID: targetID}
		},
	}
}

func (s *RelationStore) pair() string {
	return fmt.Sprintf("%s = ? AND %s = ?", s.actorColumn, s.targetColumn)
}

// TargetExists 检查目标是否存在
func (s *RelationStore) TargetExists(ctx context.Context, targetID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(s.targetModel).Where("id = ?", targetID).Count(&count).Error
	if err != nil {
		return false, translate(err, "目标")
	}
	return count > 0, nil
}

// Exists 检查边是否存在
func (s *RelationStore) Exists(ctx context.Context, actorID, targetID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(s.edgeModel).
		Where(s.pair(), actorID, targetID).Count(&count).Error
	if err != nil {
		return false, translate(err, s.what)
	}
	return count > 0, nil
}

// Insert 插入边，已存在时返回 Conflict
func (s *RelationStore) Insert(ctx context.Context, actorID, targetID string) error {
	return translate(s.db.WithContext(ctx).Create(s.newEdge(actorID, targetID)).Error, s.what)
}

// Remove 删除边，返回是否确实删除了一行
func (s *RelationStore) Remove(ctx context.Context, actorID, targetID string) (bool, error) {
	result := s.db.WithContext(ctx).Where(s.pair(), actorID, targetID).Delete(s.edgeModel)
	if result.Error != nil {
		return false, translate(result.Error, s.what)
	}
	return result.RowsAffected > 0, nil
}
