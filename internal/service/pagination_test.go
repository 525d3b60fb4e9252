package service

import (
	"context"
	"testing"
	"time"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/model"
	"pulse-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageRequestClamps(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, Limit: DefaultLimit}, NewPageRequest(0, 0))
	assert.Equal(t, PageRequest{Page: 1, Limit: DefaultLimit}, NewPageRequest(-3, -1))
	assert.Equal(t, PageRequest{Page: 2, Limit: MaxLimit}, NewPageRequest(2, 5000))
	assert.Equal(t, 20, NewPageRequest(3, 10).Offset())
}

func TestNewPageMetadata(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 7, NewPageRequest(2, 3))
	assert.EqualValues(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)

	last := NewPage([]int{7}, 7, NewPageRequest(3, 3))
	assert.False(t, last.HasNextPage)

	empty := NewPage[int](nil, 0, NewPageRequest(1, 10))
	assert.NotNil(t, empty.Items)
	assert.EqualValues(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPrevPage)
}

func TestWithTieBreak(t *testing.T) {
	keys := WithTieBreak([]repository.SortKey{repository.Desc("posts.created_at")}, "posts.id")
	assert.Equal(t, []repository.SortKey{repository.Desc("posts.created_at"), repository.Desc("posts.id")}, keys)

	keys = WithTieBreak([]repository.SortKey{repository.Asc("posts.views")}, "posts.id")
	assert.Equal(t, repository.Asc("posts.id"), keys[1])

	already := []repository.SortKey{repository.Asc("posts.id")}
	assert.Equal(t, already, WithTieBreak(already, "posts.id"))
}

// 所有帖子创建时间相同，分页仍然稳定，拼接各页等于一次取全部
func TestFeedPagesConcatenateToFullListing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")

	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 7; i++ {
		p := &model.Post{OwnerID: alice.ID, Content: "same time", IsPublished: true, CreatedAt: stamp, UpdatedAt: stamp}
		require.NoError(t, e.posts.Create(ctx, p))
	}
	e.post(t, alice, "hidden", false)

	full, err := e.views.Feed(ctx, FeedQuery{Page: NewPageRequest(1, 100)})
	require.NoError(t, err)
	require.Len(t, full.Items, 7)
	assert.EqualValues(t, 7, full.Total)

	var joined []dto.PostSummary
	for page := 1; page <= 3; page++ {
		got, err := e.views.Feed(ctx, FeedQuery{Page: NewPageRequest(page, 3)})
		require.NoError(t, err)
		assert.EqualValues(t, 7, got.Total)
		assert.EqualValues(t, 3, got.TotalPages)
		joined = append(joined, got.Items...)

		again, err := e.views.Feed(ctx, FeedQuery{Page: NewPageRequest(page, 3)})
		require.NoError(t, err)
		assert.Equal(t, ids(got.Items), ids(again.Items), "page %d must be stable", page)
	}
	assert.Equal(t, ids(full.Items), ids(joined))
}

func TestFeedPageBeyondEnd(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")
	e.post(t, alice, "only", true)

	got, err := e.views.Feed(context.Background(), FeedQuery{Page: NewPageRequest(5, 10)})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.EqualValues(t, 1, got.Total)
	assert.False(t, got.HasNextPage)
	assert.True(t, got.HasPrevPage)
}

func ids(items []dto.PostSummary) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
