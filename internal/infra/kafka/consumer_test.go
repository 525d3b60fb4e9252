package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePostEvent(t *testing.T) {
	evt, err := DecodePostEvent([]byte(`{"type":"post.deleted","post_id":"p1","owner_id":"u1","occurred_at":"2024-03-01T08:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, PostDeleted, evt.Type)
	assert.Equal(t, "p1", evt.PostID)
	assert.Equal(t, "u1", evt.OwnerID)
	assert.True(t, evt.OccurredAt.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))

	_, err = DecodePostEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestPublishWithoutProducer(t *testing.T) {
	p := NewPostEventPublisher("post_events")
	err := p.PublishPostEvent(context.Background(), PostEvent{Type: PostPublished, PostID: "p1"})
	assert.Error(t, err)
}

func TestProcessRetriesUntilSuccess(t *testing.T) {
	calls := 0
	handler := func(ctx context.Context, evt *PostEvent) error {
		calls++
		if calls < 3 {
			return errors.New("index unavailable")
		}
		return nil
	}

	err := process(context.Background(), []byte(`{"type":"post.updated","post_id":"p1"}`), handler, 3, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestProcessGivesUp(t *testing.T) {
	calls := 0
	boom := errors.New("index unavailable")
	handler := func(ctx context.Context, evt *PostEvent) error {
		calls++
		return boom
	}

	err := process(context.Background(), []byte(`{"type":"post.updated","post_id":"p1"}`), handler, 2, 0)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestProcessSkipsMalformed(t *testing.T) {
	called := false
	handler := func(ctx context.Context, evt *PostEvent) error {
		called = true
		return nil
	}

	err := process(context.Background(), []byte("{"), handler, 3, 0)
	assert.ErrorIs(t, err, errMalformed)
	assert.False(t, called)
}

func TestProcessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	handler := func(ctx context.Context, evt *PostEvent) error {
		calls++
		cancel()
		return errors.New("index unavailable")
	}

	err := process(ctx, []byte(`{"type":"post.updated","post_id":"p1"}`), handler, 5, time.Hour)
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
