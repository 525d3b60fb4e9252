package middleware

import (
	"context"
	"strings"

	"pulse-go/internal/api/response"
	"pulse-go/internal/model"
	"pulse-go/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUserID = "currentUserID"
	ContextKeyViewer = "currentViewer"
)

// TokenVerifier 校验访问令牌并返回对应用户
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*model.User, error)
}

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		user, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyViewer, service.Member(user.ID))
		c.Next()
	}
}

// AuthOptional 允许游客访问：未携带令牌或 guest=true 时按游客处理，携带的令牌无效仍然拒绝
func AuthOptional(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || c.Query("guest") == "true" {
			c.Set(ContextKeyViewer, service.Guest())
			c.Next()
			return
		}

		user, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyViewer, service.Member(user.ID))
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}

// GetViewer 当前请求的查看者，未经过认证中间件时为游客
func GetViewer(c *gin.Context) service.Viewer {
	if val, exists := c.Get(ContextKeyViewer); exists {
		if v, ok := val.(service.Viewer); ok {
			return v
		}
	}
	return service.Guest()
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
