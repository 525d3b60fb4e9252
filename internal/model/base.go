package model

import (
	"github.com/google/uuid"
)

// NewID 生成按时间有序的 UUIDv7 主键
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// assignID 主键为空时补齐
func assignID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}
