package repository

import (
	"context"

	"pulse-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// DB 暴露底层连接，供视图管道使用
func (r *CommentRepository) DB() *gorm.DB {
	return r.db
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return translate(r.db.WithContext(ctx).Create(comment).Error, "评论")
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, translate(err, "评论")
	}
	return &comment, nil
}

// Exists 检查评论是否存在
func (r *CommentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err, "评论")
	}
	return count > 0, nil
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) (*model.Comment, error) {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return nil, translate(result.Error, "评论")
	}
	if result.RowsAffected == 0 {
		return nil, translate(gorm.ErrRecordNotFound, "评论")
	}
	return r.GetByID(ctx, id)
}

// Delete 删除单条评论，不处理其点赞
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if result.Error != nil {
		return translate(result.Error, "评论")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "评论")
	}
	return nil
}

// DeleteByPost 删除帖子下所有评论；评论收到的点赞在同一事务内先按子查询删除
func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		onPost := tx.Model(&model.Comment{}).Select("id").Where("post_id = ?", postID)
		if err := tx.Where("comment_id IN (?)", onPost).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("post_id = ?", postID).Delete(&model.Comment{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, translate(err, "评论")
	}
	return deleted, nil
}
