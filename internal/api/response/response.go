package response

import (
	"errors"
	"net/http"

	"pulse-go/internal/apperr"
	"pulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一成功响应
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorInfo 错误详情，type 为错误类别
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Leg     string `json:"leg,omitempty"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, errType string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorInfo{
			Code:    statusCode,
			Message: message,
			Type:    errType,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, string(apperr.KindInvalidOperation), message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, string(apperr.KindUnauthenticated), message)
}

// StatusOf 错误类别对应的 HTTP 状态码
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalidOperation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error 按错误类别输出错误响应；依赖故障只记录原始错误，不向调用方暴露
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := StatusOf(kind)

	info := ErrorInfo{Code: status, Type: string(kind)}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		info.Leg = ae.Leg
	}

	if kind == apperr.KindDependency {
		logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("leg", info.Leg),
			zap.Error(err),
		)
		info.Message = "服务暂时不可用，请稍后重试"
		if ae != nil && ae.Message != "" {
			info.Message = ae.Message
		}
	} else {
		info.Message = apperr.MessageOf(err)
		if info.Message == "" {
			info.Message = string(kind)
		}
	}

	_ = c.Error(err)
	c.JSON(status, ErrorResponse{Error: info})
}
