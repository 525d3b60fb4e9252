package repository

import (
	"context"
	"strings"

	"pulse-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// DB 暴露底层连接，供视图管道使用
func (r *UserRepository) DB() *gorm.DB {
	return r.db
}

// GetByID 根据 ID 查询用户
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err, "用户")
	}
	return &user, nil
}

// GetByIdentifier 含 @ 的按邮箱查询，否则按用户名查询（均按小写匹配）
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	key := strings.ToLower(strings.TrimSpace(identifier))
	column := "username"
	if strings.Contains(key, "@") {
		column = "email"
	}
	var user model.User
	err := r.db.WithContext(ctx).Where(column+" = ?", key).First(&user).Error
	if err != nil {
		return nil, translate(err, "用户")
	}
	return &user, nil
}

// Create 创建用户，用户名或邮箱重复时返回 Conflict
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return translate(r.db.WithContext(ctx).Create(user).Error, "用户名或邮箱")
}

// Update 更新用户字段（传入 map）
func (r *UserRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.User, error) {
	if email, ok := updates["email"].(string); ok {
		updates["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translate(result.Error, "邮箱")
	}
	if result.RowsAffected == 0 {
		return nil, translate(gorm.ErrRecordNotFound, "用户")
	}
	return r.GetByID(ctx, id)
}

// ExistsByID 检查用户是否存在
func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err, "用户")
	}
	return count > 0, nil
}

// SetRefreshToken 覆盖保存刷新令牌，token 为 nil 表示清除
func (r *UserRepository) SetRefreshToken(ctx context.Context, id string, token *string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		UpdateColumn("refresh_token", token)
	if result.Error != nil {
		return translate(result.Error, "用户")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "用户")
	}
	return nil
}

// RotateRefreshToken 仅当当前保存的令牌等于 presented 时替换，返回是否替换成功
func (r *UserRepository) RotateRefreshToken(ctx context.Context, id, presented, next string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", id, presented).
		UpdateColumn("refresh_token", next)
	if result.Error != nil {
		return false, translate(result.Error, "用户")
	}
	return result.RowsAffected == 1, nil
}

// UpdatePassword 更新密码哈希并清除刷新令牌
func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password": hash, "refresh_token": nil})
	if result.Error != nil {
		return translate(result.Error, "用户")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "用户")
	}
	return nil
}

// ModifySavedPosts 在行锁内读取、修改并写回收藏列表
func (r *UserRepository) ModifySavedPosts(ctx context.Context, id string, fn func([]string) []string) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "saved_post_ids").Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		out = fn(user.SavedPostIDs)
		return tx.Model(&model.User{}).Where("id = ?", id).
			Select("saved_post_ids").Updates(&model.User{SavedPostIDs: out}).Error
	})
	if err != nil {
		return nil, translate(err, "用户")
	}
	return out, nil
}

// ModifyWatchHistory 在行锁内读取、修改并写回浏览记录
func (r *UserRepository) ModifyWatchHistory(ctx context.Context, id string, fn func([]string) []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "watch_history").Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", id).
			Select("watch_history").Updates(&model.User{WatchHistory: fn(user.WatchHistory)}).Error
	})
	return translate(err, "用户")
}
