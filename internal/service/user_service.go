package service

import (
	"context"
	"errors"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/apperr"
	"pulse-go/internal/repository"
	"pulse-go/pkg/logger"

	"go.uber.org/zap"
)

var ErrEmailExists = apperr.New(apperr.KindConflict, "邮箱已被使用")

type UserService struct {
	users *repository.UserRepository
	media MediaStore
}

func NewUserService(users *repository.UserRepository, media MediaStore) *UserService {
	return &UserService{users: users, media: media}
}

// UpdateAccount 更新昵称与邮箱
func (s *UserService) UpdateAccount(ctx context.Context, userID string, req *dto.UpdateAccountRequest) (*dto.UserInfo, error) {
	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.users.Update(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateImage 上传头像或主页背景并释放旧图，field 为 avatar_url 或 cover_image_url
func (s *UserService) UpdateImage(ctx context.Context, userID, field string, image *Upload) (*dto.UserInfo, error) {
	if field != "avatar_url" && field != "cover_image_url" {
		return nil, apperr.Invalid("不支持的图片类型")
	}
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := uploadMedia(ctx, s.media, "users", userID, image)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, userID, map[string]interface{}{field: url})
	if err != nil {
		releaseMedia(ctx, s.media, url)
		return nil, err
	}

	old := current.AvatarURL
	if field == "cover_image_url" {
		old = current.CoverImageURL
	}
	releaseMedia(ctx, s.media, old)

	logger.Info("User image updated", zap.String("user_id", userID), zap.String("field", field))
	return toUserInfo(user), nil
}
