package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pulse-go/internal/apperr"
	infraKafka "pulse-go/internal/infra/kafka"
	"pulse-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(name string) *Upload {
	return &Upload{Reader: strings.NewReader("img"), Size: 3, ContentType: "image/png", Filename: name}
}

func TestPublish(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")

	_, err := e.postSvc.Publish(ctx, alice.ID, "   ", nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyContent))

	info, err := e.postSvc.Publish(ctx, alice.ID, " hello ", nil, upload("Cat.PNG"))
	require.NoError(t, err)
	assert.Equal(t, "hello", info.Content)
	assert.True(t, info.IsPublished)
	require.Len(t, e.media.puts, 1)
	assert.True(t, strings.HasPrefix(e.media.puts[0], "posts/"+alice.ID+"/"))
	assert.True(t, strings.HasSuffix(e.media.puts[0], ".png"))
	assert.Equal(t, "http://media.local/pulse/"+e.media.puts[0], info.ImageURL)

	draft := false
	info, err = e.postSvc.Publish(ctx, alice.ID, "draft", &draft, nil)
	require.NoError(t, err)
	assert.False(t, info.IsPublished)
	assert.Empty(t, info.ImageURL)

	assert.Equal(t, []string{infraKafka.PostPublished, infraKafka.PostPublished}, e.event.types())
}

func TestUpdatePost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	info, err := e.postSvc.Publish(ctx, alice.ID, "hello", nil, upload("a.jpg"))
	require.NoError(t, err)
	oldURL := info.ImageURL

	content := "edited"
	_, err = e.postSvc.Update(ctx, bob.ID, info.ID, &content, nil)
	assert.True(t, errors.Is(err, ErrPostNoPermission))

	_, err = e.postSvc.Update(ctx, alice.ID, info.ID, nil, nil)
	assert.True(t, errors.Is(err, ErrNoFieldsToUpdate))

	blank := "  "
	_, err = e.postSvc.Update(ctx, alice.ID, info.ID, &blank, nil)
	assert.True(t, errors.Is(err, ErrEmptyContent))

	updated, err := e.postSvc.Update(ctx, alice.ID, info.ID, &content, upload("b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.NotEqual(t, oldURL, updated.ImageURL)
	assert.Equal(t, []string{oldURL}, e.media.deletes)

	_, err = e.postSvc.Update(ctx, alice.ID, "missing", &content, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestTogglePublish(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	post := e.post(t, alice, "hello", true)

	_, err := e.postSvc.TogglePublish(ctx, bob.ID, post.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	status, err := e.postSvc.TogglePublish(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, status.IsPublished)

	status, err = e.postSvc.TogglePublish(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, status.IsPublished)
	assert.Equal(t, []string{infraKafka.PostUpdated, infraKafka.PostUpdated}, e.event.types())
}

func TestDeleteCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	info, err := e.postSvc.Publish(ctx, alice.ID, "hello", nil, upload("a.png"))
	require.NoError(t, err)
	post := &model.Post{ID: info.ID}
	other := e.post(t, bob, "keep me", true)

	c1 := e.comment(t, bob, post, "one")
	c2 := e.comment(t, alice, post, "two")
	kept := e.comment(t, alice, other, "elsewhere")

	for _, step := range []struct {
		actor  string
		kind   ToggleKind
		target string
	}{
		{bob.ID, KindPostLike, post.ID},
		{alice.ID, KindPostLike, post.ID},
		{alice.ID, KindCommentLike, c1.ID},
		{bob.ID, KindCommentLike, c2.ID},
		{alice.ID, KindPostLike, other.ID},
		{bob.ID, KindCommentLike, kept.ID},
	} {
		_, err := e.toggles.Toggle(ctx, step.actor, step.kind, step.target)
		require.NoError(t, err)
	}

	err = e.postSvc.Delete(ctx, bob.ID, post.ID)
	assert.True(t, errors.Is(err, ErrPostNoPermission))

	require.NoError(t, e.postSvc.Delete(ctx, alice.ID, post.ID))

	assert.Zero(t, e.count(t, &model.Post{}, "id = ?", post.ID))
	assert.Zero(t, e.count(t, &model.Comment{}, "post_id = ?", post.ID))
	assert.Zero(t, e.count(t, &model.Like{}, "post_id = ?", post.ID))
	assert.Zero(t, e.count(t, &model.Like{}, "comment_id IN ?", []string{c1.ID, c2.ID}))
	assert.Equal(t, []string{info.ImageURL}, e.media.deletes)
	assert.Contains(t, e.event.types(), infraKafka.PostDeleted)

	// 其他帖子的数据不受影响
	assert.EqualValues(t, 1, e.count(t, &model.Comment{}, "id = ?", kept.ID))
	assert.EqualValues(t, 1, e.count(t, &model.Like{}, "post_id = ?", other.ID))
	assert.EqualValues(t, 1, e.count(t, &model.Like{}, "comment_id = ?", kept.ID))

	err = e.postSvc.Delete(ctx, alice.ID, post.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeleteReportsFailedLeg(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")

	info, err := e.postSvc.Publish(ctx, alice.ID, "hello", nil, upload("a.png"))
	require.NoError(t, err)
	e.comment(t, alice, &model.Post{ID: info.ID}, "one")
	e.media.deleteErr = errMediaDown

	err = e.postSvc.Delete(ctx, alice.ID, info.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, legMedia, ae.Leg)
	assert.True(t, errors.Is(err, errMediaDown))

	// 帖子本身与其余分支照常完成
	assert.Zero(t, e.count(t, &model.Post{}, "id = ?", info.ID))
	assert.Zero(t, e.count(t, &model.Comment{}, "post_id = ?", info.ID))
}

func TestRecordView(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	p1 := e.post(t, alice, "one", true)
	p2 := e.post(t, alice, "two", true)
	p3 := e.post(t, alice, "three", true)
	p4 := e.post(t, alice, "four", true)

	require.NoError(t, e.postSvc.RecordView(ctx, Guest(), p1.ID))
	views := func(id string) int64 {
		p, err := e.posts.GetByID(ctx, id)
		require.NoError(t, err)
		return p.Views
	}
	assert.Zero(t, views(p1.ID))

	require.NoError(t, e.postSvc.RecordView(ctx, Member(bob.ID), p1.ID))
	require.NoError(t, e.postSvc.RecordView(ctx, Member(bob.ID), p1.ID))
	assert.EqualValues(t, 1, views(p1.ID))

	// 去重组件不可用时照常计数
	e.gate.err = errors.New("redis down")
	require.NoError(t, e.postSvc.RecordView(ctx, Member(bob.ID), p1.ID))
	assert.EqualValues(t, 2, views(p1.ID))
	e.gate.err = nil

	for _, p := range []*model.Post{p2, p3, p4, p2} {
		require.NoError(t, e.postSvc.RecordView(ctx, Member(bob.ID), p.ID))
	}
	user, err := e.users.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p2.ID, p4.ID, p3.ID}, user.WatchHistory)

	err = e.postSvc.RecordView(ctx, Member(bob.ID), "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestSaveAndUnsave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	p1 := e.post(t, alice, "one", true)
	p2 := e.post(t, alice, "two", true)
	draft := e.post(t, alice, "draft", false)

	saved, err := e.postSvc.Save(ctx, Member(bob.ID), p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p1.ID}, saved)

	saved, err = e.postSvc.Save(ctx, Member(bob.ID), p2.ID)
	require.NoError(t, err)
	saved, err = e.postSvc.Save(ctx, Member(bob.ID), p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p1.ID, p2.ID}, saved)

	_, err = e.postSvc.Save(ctx, Member(bob.ID), draft.ID)
	assert.True(t, errors.Is(err, ErrPostNotFound))

	items, err := e.views.SavedPosts(ctx, Member(bob.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{p1.ID, p2.ID}, ids(items))

	saved, err = e.postSvc.Unsave(ctx, Member(bob.ID), p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p2.ID}, saved)

	saved, err = e.postSvc.Unsave(ctx, Member(bob.ID), p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p2.ID}, saved)
}

func TestMoveToFront(t *testing.T) {
	assert.Equal(t, []string{"c", "a", "b"}, moveToFront([]string{"a", "b", "c"}, "c", 0))
	assert.Equal(t, []string{"d", "a"}, moveToFront([]string{"a", "b"}, "d", 2))
	assert.Equal(t, []string{"x"}, moveToFront(nil, "x", 5))
}
