package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别，传输层据此映射状态码
type Kind string

const (
	KindNotFound         Kind = "NotFound"
	KindConflict         Kind = "Conflict"
	KindInvalidOperation Kind = "InvalidOperation"
	KindUnauthenticated  Kind = "Unauthenticated"
	KindForbidden        Kind = "Forbidden"
	KindDependency       Kind = "Dependency"
)

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
	// Leg 级联删除中失败的分支名，多个分支以逗号分隔
	Leg string
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Leg != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Leg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is 类别哨兵（无消息）按类别匹配，其余按指针匹配
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" && t.Leg == "" && t.Err == nil {
		return e.Kind == t.Kind
	}
	return e == t
}

// 类别哨兵，用于 errors.Is(err, apperr.ErrNotFound)
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrConflict         = &Error{Kind: KindConflict}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrUnauthenticated  = &Error{Kind: KindUnauthenticated}
	ErrForbidden        = &Error{Kind: KindForbidden}
	ErrDependency       = &Error{Kind: KindDependency}
)

// New 创建指定类别的错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 用指定类别包装底层错误
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound 资源不存在
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Forbidden 无权操作
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// Invalid 非法操作或参数
func Invalid(message string) *Error { return New(KindInvalidOperation, message) }

// Unauthenticated 身份校验失败
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

// KindOf 取错误链上第一个 *Error 的类别，非业务错误视为 Dependency
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// MessageOf 取错误链上第一个带消息的 *Error 的消息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return ""
}
