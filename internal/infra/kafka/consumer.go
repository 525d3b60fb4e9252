package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pulse-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventHandler 处理一条帖子事件
type EventHandler func(ctx context.Context, evt *PostEvent) error

// ConsumerConfig 帖子事件消费参数
type ConsumerConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	Attempts int           // 单条消息的最大处理次数
	Backoff  time.Duration // 重试间隔，按次数线性增长
}

// ConsumePostEvents 阻塞消费帖子事件直到 ctx 取消。
// 消息处理成功或重试耗尽后才提交位点，进程中断时未提交的消息会被重新投递。
func ConsumePostEvents(ctx context.Context, cfg ConsumerConfig, handler EventHandler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka post event consumer stopped")
	}()

	logger.Info("Kafka post event consumer started",
		zap.String("topic", cfg.Topic),
		zap.String("group", cfg.GroupID),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("Failed to fetch kafka message", zap.Error(err))
			if !sleepCtx(ctx, time.Second) {
				return nil
			}
			continue
		}

		if err := process(ctx, msg.Value, handler, cfg.Attempts, cfg.Backoff); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("Dropping post event after retries",
				zap.Int64("offset", msg.Offset),
				zap.ByteString("value", msg.Value),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			logger.Error("Failed to commit kafka offset", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// errMalformed 消息体无法解析，不重试
var errMalformed = errors.New("malformed post event")

// process 解码并处理一条消息，处理失败时最多尝试 attempts 次
func process(ctx context.Context, value []byte, handler EventHandler, attempts int, backoff time.Duration) error {
	evt, err := DecodePostEvent(value)
	if err != nil {
		return errors.Join(errMalformed, err)
	}
	if attempts < 1 {
		attempts = 1
	}

	for i := 1; ; i++ {
		err = handler(ctx, evt)
		if err == nil {
			return nil
		}
		logger.Warn("Failed to handle post event",
			zap.String("type", evt.Type),
			zap.String("post_id", evt.PostID),
			zap.Int("attempt", i),
			zap.Error(err),
		)
		if i >= attempts || !sleepCtx(ctx, time.Duration(i)*backoff) {
			return err
		}
	}
}

// sleepCtx 等待 d，ctx 先取消时返回 false
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// DecodePostEvent 解析消息体
func DecodePostEvent(value []byte) (*PostEvent, error) {
	var evt PostEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}
