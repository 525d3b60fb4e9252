package repository

import (
	"errors"
	"strings"

	"pulse-go/internal/apperr"

	"gorm.io/gorm"
)

// translate 把驱动错误映射为业务错误类别
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.KindNotFound, what+"不存在", err)
	case isUniqueViolation(err):
		return apperr.Wrap(apperr.KindConflict, what+"已存在", err)
	default:
		return apperr.Wrap(apperr.KindDependency, what+"失败", err)
	}
}

// isUniqueViolation 唯一约束冲突，兼容未开启 TranslateError 的连接
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
