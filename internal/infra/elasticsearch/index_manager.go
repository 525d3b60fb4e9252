package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"pulse-go/pkg/logger"

	"go.uber.org/zap"
)

// PostsIndexMapping 帖子索引只对正文做全文检索，其余字段用于过滤
const PostsIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"owner_id": {"type": "keyword"},
			"owner_username": {"type": "keyword"},
			"content": {"type": "text", "analyzer": "standard"},
			"is_published": {"type": "boolean"},
			"views": {"type": "long"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
			"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureIndex 确保索引存在，不存在则按 mapping 创建
func EnsureIndex(ctx context.Context, indexName, mapping string) error {
	exists, err := indexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch index already exists", zap.String("index", indexName))
		return nil
	}

	resp, err := createIndex(ctx, indexName, bytes.NewReader([]byte(mapping)))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化帖子索引（启动时调用）
func InitIndexes(postsIndex string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureIndex(ctx, postsIndex, PostsIndexMapping)
}
