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
	"pulse-go/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = apperr.Unauthenticated("用户名或密码错误")
	ErrInvalidToken       = apperr.Unauthenticated("登录凭证无效或已过期")
	ErrRefreshRejected    = apperr.Unauthenticated("刷新令牌已失效，请重新登录")
	ErrWrongPassword      = apperr.Invalid("原密码错误")
	ErrIdentityConflict   = apperr.New(apperr.KindConflict, "用户名或邮箱已被注册")
)

// SessionService 令牌签发、校验、轮换与吊销
type SessionService struct {
	users   *repository.UserRepository
	hasher  *utils.PasswordHasher
	access  *utils.TokenSigner
	refresh *utils.TokenSigner
}

func NewSessionService(users *repository.UserRepository, hasher *utils.PasswordHasher, access, refresh *utils.TokenSigner) *SessionService {
	return &SessionService{users: users, hasher: hasher, access: access, refresh: refresh}
}

func recordSession(event string, err error) {
	sessionEvents.WithLabelValues(event, outcome(err)).Inc()
}

// issue 签发令牌对并覆盖保存刷新令牌
func (s *SessionService) issue(ctx context.Context, user *model.User) (*dto.TokenData, error) {
	accessToken, err := s.access.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}
	return &dto.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.access.TTL().Seconds()),
		User:         toUserInfo(user),
	}, nil
}

// Login 用户名或邮箱登录，未知用户与密码错误返回同一错误
func (s *SessionService) Login(ctx context.Context, identifier, password string) (data *dto.TokenData, err error) {
	defer func() { recordSession("login", err) }()

	if strings.TrimSpace(identifier) == "" {
		return nil, apperr.Invalid("用户名或邮箱不能为空")
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	data, err = s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Info("User logged in", zap.String("user_id", user.ID))
	return data, nil
}

// Renew 单次有效的刷新令牌轮换，只有与保存值一致的令牌能换到新令牌
func (s *SessionService) Renew(ctx context.Context, refreshToken string) (data *dto.TokenData, err error) {
	defer func() { recordSession("renew", err) }()

	claims, err := s.refresh.Parse(refreshToken)
	if err != nil {
		return nil, ErrRefreshRejected
	}

	nextRefresh, err := s.refresh.Sign(claims.UserID)
	if err != nil {
		return nil, err
	}

	rotated, err := s.users.RotateRefreshToken(ctx, claims.UserID, refreshToken, nextRefresh)
	if err != nil {
		return nil, err
	}
	if !rotated {
		logger.Warn("Refresh token rejected: superseded or revoked", zap.String("user_id", claims.UserID))
		return nil, ErrRefreshRejected
	}

	accessToken, err := s.access.Sign(claims.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		AccessToken:  accessToken,
		RefreshToken: nextRefresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.access.TTL().Seconds()),
	}, nil
}

// Logout 清除保存的刷新令牌
func (s *SessionService) Logout(ctx context.Context, userID string) (err error) {
	defer func() { recordSession("logout", err) }()
	return s.users.SetRefreshToken(ctx, userID, nil)
}

// Verify 校验访问令牌并加载用户
func (s *SessionService) Verify(ctx context.Context, accessToken string) (user *model.User, err error) {
	defer func() { recordSession("verify", err) }()

	claims, err := s.access.Parse(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err = s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	user.Password = ""
	user.RefreshToken = nil
	return user, nil
}

// Register 注册，用户名与邮箱统一小写
func (s *SessionService) Register(ctx context.Context, req *dto.RegisterRequest) (info *dto.UserInfo, err error) {
	defer func() { recordSession("register", err) }()

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, ErrIdentityConflict
		}
		return nil, err
	}

	logger.Info("User registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return toUserInfo(user), nil
}

// ChangePassword 修改密码，同时吊销刷新令牌
func (s *SessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (err error) {
	defer func() { recordSession("change_password", err) }()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(oldPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hashed)
}

// CurrentUser 当前用户信息
func (s *SessionService) CurrentUser(ctx context.Context, userID string) (*dto.UserInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}
