package repository

import (
	"context"

	"pulse-go/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// DeleteByPost 删除帖子本身收到的点赞
func (r *LikeRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.Like{})
	if result.Error != nil {
		return 0, translate(result.Error, "点赞")
	}
	return result.RowsAffected, nil
}

// DeleteByComments 删除一批评论收到的点赞
func (r *LikeRepository) DeleteByComments(ctx context.Context, commentIDs []string) (int64, error) {
	if len(commentIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&model.Like{})
	if result.Error != nil {
		return 0, translate(result.Error, "点赞")
	}
	return result.RowsAffected, nil
}

// CountByPosts 按帖子分组统计点赞数，未出现的帖子计为 0
func (r *LikeRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		PostID string
		Total  int64
	}
	err := NewPipeline(r.db, "likes",
		Match("likes.post_id IN ?", postIDs),
		Group([]string{"likes.post_id"}, Computed("total", "COUNT(*)")),
	).Run(ctx, &rows)
	if err != nil {
		return nil, err
	}

	for _, id := range postIDs {
		result[id] = 0
	}
	for _, row := range rows {
		result[row.PostID] = row.Total
	}
	return result, nil
}
