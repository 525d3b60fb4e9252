package repository

import (
	"context"
	"testing"

	"pulse-go/internal/model"
	"pulse-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	alice *model.User
	bob   *model.User
	post  *model.Post
	quiet *model.Post
}

func seed(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	alice := &model.User{Username: "alice", Email: "alice@example.com", Password: "x", FullName: "Alice"}
	bob := &model.User{Username: "bob", Email: "bob@example.com", Password: "x", FullName: "Bob"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	post := &model.Post{OwnerID: alice.ID, Content: "hello world", IsPublished: true}
	quiet := &model.Post{OwnerID: bob.ID, Content: "nobody likes me", IsPublished: true}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(quiet).Error)

	require.NoError(t, db.Create(&model.Like{LikedByID: alice.ID, PostID: &post.ID}).Error)
	require.NoError(t, db.Create(&model.Like{LikedByID: bob.ID, PostID: &post.ID}).Error)

	return &fixture{db: db, alice: alice, bob: bob, post: post, quiet: quiet}
}

type likedRow struct {
	ID         string
	LikesCount int64
	IsLiked    bool
}

func TestPipelineLookupCountAndHas(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	p := NewPipeline(f.db, "posts",
		Project("id"),
		Lookup(LookupSpec{From: "likes", ForeignField: "post_id", LocalField: "posts.id", As: "likes_count", Acc: Count()}),
		Lookup(LookupSpec{From: "likes", ForeignField: "post_id", LocalField: "posts.id", As: "is_liked", Acc: Has("likes.liked_by_id", f.bob.ID)}),
		Sort(Desc("likes_count")),
	)

	var rows []likedRow
	require.NoError(t, p.Run(ctx, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, f.post.ID, rows[0].ID)
	assert.EqualValues(t, 2, rows[0].LikesCount)
	assert.True(t, rows[0].IsLiked)

	assert.Equal(t, f.quiet.ID, rows[1].ID)
	assert.EqualValues(t, 0, rows[1].LikesCount)
	assert.False(t, rows[1].IsLiked)
}

func TestPipelineJoinUsesPrefix(t *testing.T) {
	f := seed(t)

	type row struct {
		ID            string
		OwnerUsername *string
		OwnerFullName *string
	}
	var rows []row
	err := NewPipeline(f.db, "posts",
		Match("posts.id = ?", f.post.ID),
		Project("id"),
		Join(JoinSpec{Table: "users", Alias: "owner_user", LocalKey: "posts.owner_id", Fields: []string{"username", "full_name"}, Prefix: "owner_"}),
	).Run(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].OwnerUsername)
	assert.Equal(t, "alice", *rows[0].OwnerUsername)
	assert.Equal(t, "Alice", *rows[0].OwnerFullName)
}

func TestPipelineJoinMissingTargetIsNull(t *testing.T) {
	f := seed(t)
	orphan := &model.Post{OwnerID: "gone", Content: "orphan", IsPublished: true}
	require.NoError(t, f.db.Create(orphan).Error)

	type row struct {
		ID            string
		OwnerUsername *string
	}
	var rows []row
	err := NewPipeline(f.db, "posts",
		Match("posts.id = ?", orphan.ID),
		Project("id"),
		Join(JoinSpec{Table: "users", Alias: "owner_user", LocalKey: "posts.owner_id", Fields: []string{"username"}, Prefix: "owner_"}),
	).Run(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].OwnerUsername)
}

func TestPipelineLiteralFields(t *testing.T) {
	f := seed(t)

	type row struct {
		ID      string
		IsLiked bool
		Score   int64
		Label   string
	}
	var rows []row
	err := NewPipeline(f.db, "posts",
		Match("posts.id = ?", f.post.ID),
		Project("id"),
		AddFields(Literal("is_liked", false), Literal("score", 7), Literal("label", "guest")),
	).Run(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsLiked)
	assert.EqualValues(t, 7, rows[0].Score)
	assert.Equal(t, "guest", rows[0].Label)
}

func TestPipelineCountSkipsWindowAndProjection(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	p := NewPipeline(f.db, "posts",
		Match("posts.is_published = ?", true),
		Project("id"),
		Lookup(LookupSpec{From: "likes", ForeignField: "post_id", LocalField: "posts.id", As: "likes_count", Acc: Count()}),
		Sort(Asc("posts.id")),
		Skip(1),
		Limit(1),
	)

	total, err := p.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	var rows []likedRow
	require.NoError(t, p.Run(ctx, &rows))
	assert.Len(t, rows, 1)
}

func TestPipelineGroupCount(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	require.NoError(t, f.db.Create(&model.Like{LikedByID: f.alice.ID, PostID: &f.quiet.ID}).Error)

	p := NewPipeline(f.db, "likes",
		Match("likes.post_id IS NOT NULL"),
		Group([]string{"likes.post_id"}, Computed("total", "COUNT(*)")),
	)

	type row struct {
		PostID string
		Total  int64
	}
	var rows []row
	require.NoError(t, p.Run(ctx, &rows))
	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.PostID] = r.Total
	}
	assert.Equal(t, map[string]int64{f.post.ID: 2, f.quiet.ID: 1}, counts)

	groups, err := p.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, groups)
}

func TestPipelineThenLeavesOriginalUntouched(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	base := NewPipeline(f.db, "posts", Project("id"))
	narrowed := base.Then(Match("posts.id = ?", f.post.ID))

	var all, one []likedRow
	require.NoError(t, base.Run(ctx, &all))
	require.NoError(t, narrowed.Run(ctx, &one))
	assert.Len(t, all, 2)
	assert.Len(t, one, 1)
}

func TestPipelineSampleLimitsRows(t *testing.T) {
	f := seed(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, f.db.Create(&model.Post{OwnerID: f.alice.ID, Content: "filler", IsPublished: true}).Error)
	}

	var rows []likedRow
	require.NoError(t, NewPipeline(f.db, "posts", Project("id"), Sample(3)).Run(context.Background(), &rows))
	assert.Len(t, rows, 3)
}
