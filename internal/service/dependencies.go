package service

import (
	"context"
	"io"

	infraES "pulse-go/internal/infra/elasticsearch"
	infraKafka "pulse-go/internal/infra/kafka"
)

// MediaStore 媒体对象存储，以公开 URL 标识对象
type MediaStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// EventPublisher 帖子变更事件出口
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, evt infraKafka.PostEvent) error
}

// ViewGate 浏览去重
type ViewGate interface {
	FirstView(ctx context.Context, viewerID, postID string) (bool, error)
}

// PostIndexer 帖子检索索引的写入端
type PostIndexer interface {
	Sync(ctx context.Context, doc *infraES.PostDoc) error
	Delete(ctx context.Context, postID string) error
	BulkSync(ctx context.Context, docs []*infraES.PostDoc) (success, failed int, err error)
}
