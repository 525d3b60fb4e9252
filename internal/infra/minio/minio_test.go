package minio

import (
	"context"
	"testing"

	"pulse-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/pulse", PublicBaseURL("localhost:9000", false, "pulse"))
	assert.Equal(t, "https://cdn.example.com/pulse", PublicBaseURL("cdn.example.com", true, "pulse"))
}

func TestObjectName(t *testing.T) {
	store := NewMediaStore(nil, &config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "pulse"})

	name, ok := store.ObjectName("http://localhost:9000/pulse/posts/u1/a.png")
	require.True(t, ok)
	assert.Equal(t, "posts/u1/a.png", name)

	_, ok = store.ObjectName("https://elsewhere.example.com/pulse/posts/u1/a.png")
	assert.False(t, ok)
	_, ok = store.ObjectName("http://localhost:9000/pulse/")
	assert.False(t, ok)
}

func TestPublicBaseURLOverride(t *testing.T) {
	store := NewMediaStore(nil, &config.MinIOConfig{
		Endpoint:      "minio:9000",
		Bucket:        "pulse",
		PublicBaseURL: "https://cdn.example.com/media/",
	})

	name, ok := store.ObjectName("https://cdn.example.com/media/users/u1/me.jpg")
	require.True(t, ok)
	assert.Equal(t, "users/u1/me.jpg", name)
}

func TestDeleteIgnoresForeignURL(t *testing.T) {
	store := NewMediaStore(nil, &config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "pulse"})
	// 外部 URL 不会触达客户端
	assert.NoError(t, store.Delete(context.Background(), "https://gravatar.example.com/avatar.png"))
	assert.NoError(t, store.Delete(context.Background(), ""))
}
