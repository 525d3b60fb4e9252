package middleware

import (
	"net/http"

	"pulse-go/internal/api/response"
	"pulse-go/internal/apperr"
	"pulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 捕获 panic，按依赖故障返回统一错误响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			userID, _ := GetCurrentUserID(c)
			logger.Error("Panic recovered",
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
				zap.String("user_id", userID),
			)
			if !c.Writer.Written() {
				response.Fail(c, http.StatusInternalServerError, string(apperr.KindDependency), "服务内部错误")
			}
			c.Abort()
		}()
		c.Next()
	}
}
