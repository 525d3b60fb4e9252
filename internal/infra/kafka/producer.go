package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulse-go/internal/config"
	"pulse-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 帖子事件类型
const (
	PostPublished = "post.published"
	PostUpdated   = "post.updated"
	PostDeleted   = "post.deleted"
)

// PostEvent 帖子变更事件消息体
type PostEvent struct {
	Type       string    `json:"type"`
	PostID     string    `json:"post_id"`
	OwnerID    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// PostEventPublisher 把帖子事件写入固定 topic，按帖子 ID 分区保证同一帖子有序
type PostEventPublisher struct {
	topic string
}

func NewPostEventPublisher(topic string) *PostEventPublisher {
	return &PostEventPublisher{topic: topic}
}

// PublishPostEvent 发送帖子事件
func (p *PostEventPublisher) PublishPostEvent(ctx context.Context, evt PostEvent) error {
	if producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal post event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte("post-" + evt.PostID),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send post event: %w", err)
	}

	logger.Debug("Post event sent",
		zap.String("type", evt.Type),
		zap.String("post_id", evt.PostID),
		zap.String("topic", p.topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
