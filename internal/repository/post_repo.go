package repository

import (
	"context"
	"strings"

	"pulse-go/internal/model"
	"pulse-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostSearcher 全文检索，只返回命中的帖子 ID
type PostSearcher interface {
	SearchPostIDs(ctx context.Context, text string, size int) ([]string, error)
}

type PostRepository struct {
	db            *gorm.DB
	searcher      PostSearcher
	maxCandidates int
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db, maxCandidates: 1000}
}

// WithSearcher 挂载检索器，maxCandidates 为单次检索的最大命中数
func (r *PostRepository) WithSearcher(s PostSearcher, maxCandidates int) *PostRepository {
	r.searcher = s
	if maxCandidates > 0 {
		r.maxCandidates = maxCandidates
	}
	return r
}

// DB 暴露底层连接，供视图管道使用
func (r *PostRepository) DB() *gorm.DB {
	return r.db
}

// GetByID 根据 ID 获取帖子
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translate(err, "帖子")
	}
	return &post, nil
}

// Exists 检查帖子是否存在
func (r *PostRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err, "帖子")
	}
	return count > 0, nil
}

// Create 创建帖子
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate(r.db.WithContext(ctx).Create(post).Error, "帖子")
}

// Update 更新帖子字段
func (r *PostRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Post, error) {
	result := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translate(result.Error, "帖子")
	}
	if result.RowsAffected == 0 {
		return nil, translate(gorm.ErrRecordNotFound, "帖子")
	}
	return r.GetByID(ctx, id)
}

// Delete 只删除帖子本身，不做级联
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{})
	if result.Error != nil {
		return translate(result.Error, "帖子")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "帖子")
	}
	return nil
}

// IncrementViews 浏览量 +1
func (r *PostRepository) IncrementViews(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return translate(result.Error, "帖子")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "帖子")
	}
	return nil
}

// ListAfter 按 ID 顺序分批读取，用于重建索引
func (r *PostRepository) ListAfter(ctx context.Context, afterID string, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).Where("id > ?", afterID).
		Order("id ASC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, translate(err, "帖子")
	}
	return posts, nil
}

// SearchStage 返回按正文检索的过滤阶段，检索器不可用时退化为 LIKE
func (r *PostRepository) SearchStage(ctx context.Context, text string) Stage {
	text = strings.TrimSpace(text)
	if r.searcher != nil {
		ids, err := r.searcher.SearchPostIDs(ctx, text, r.maxCandidates)
		if err == nil {
			if len(ids) == 0 {
				return Match("1 = 0")
			}
			return Match("posts.id IN ?", ids)
		}
		logger.Warn("Post search failed, falling back to LIKE",
			zap.String("query", text), zap.Error(err))
	}
	return Match(`LOWER(posts.content) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(text))+"%")
}

// likeEscaper 转义 LIKE 通配符，检索词按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
