package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewGate 同一用户对同一帖子在窗口期内只计一次浏览
type ViewGate struct {
	client *redis.Client
	window time.Duration
}

func NewViewGate(client *redis.Client, window time.Duration) *ViewGate {
	return &ViewGate{client: client, window: window}
}

// FirstView 窗口期内首次浏览返回 true
func (g *ViewGate) FirstView(ctx context.Context, viewerID, postID string) (bool, error) {
	key := fmt.Sprintf("pulse:view:%s:%s", postID, viewerID)
	ok, err := g.client.SetNX(ctx, key, 1, g.window).Result()
	if err != nil {
		return false, fmt.Errorf("view gate setnx: %w", err)
	}
	return ok, nil
}
