package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pulse-go/internal/apperr"
	"pulse-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedStore 记录调用次数，按脚本返回结果
type scriptedStore struct {
	calls     int
	exists    []bool
	insertErr []error
	removed   []bool
}

func (s *scriptedStore) TargetExists(ctx context.Context, targetID string) (bool, error) {
	s.calls++
	return true, nil
}

func (s *scriptedStore) Exists(ctx context.Context, actorID, targetID string) (bool, error) {
	s.calls++
	v := s.exists[0]
	if len(s.exists) > 1 {
		s.exists = s.exists[1:]
	}
	return v, nil
}

func (s *scriptedStore) Insert(ctx context.Context, actorID, targetID string) error {
	s.calls++
	err := s.insertErr[0]
	if len(s.insertErr) > 1 {
		s.insertErr = s.insertErr[1:]
	}
	return err
}

func (s *scriptedStore) Remove(ctx context.Context, actorID, targetID string) (bool, error) {
	s.calls++
	v := s.removed[0]
	if len(s.removed) > 1 {
		s.removed = s.removed[1:]
	}
	return v, nil
}

func TestToggleTwiceRestoresState(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	post := e.post(t, bob, "hello", true)
	comment := e.comment(t, alice, post, "first")

	cases := []struct {
		kind   ToggleKind
		target string
		table  interface{}
		query  string
	}{
		{KindPostLike, post.ID, &model.Like{}, "liked_by_id = ? AND post_id = ?"},
		{KindCommentLike, comment.ID, &model.Like{}, "liked_by_id = ? AND comment_id = ?"},
		{KindFollow, bob.ID, &model.Follow{}, "follower_id = ? AND followed_user_id = ?"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			first, err := e.toggles.Toggle(ctx, alice.ID, tc.kind, tc.target)
			require.NoError(t, err)
			assert.True(t, first.Active)
			assert.Equal(t, string(StateAdded), first.State)
			assert.EqualValues(t, 1, e.count(t, tc.table, tc.query, alice.ID, tc.target))

			second, err := e.toggles.Toggle(ctx, alice.ID, tc.kind, tc.target)
			require.NoError(t, err)
			assert.False(t, second.Active)
			assert.Equal(t, string(StateRemoved), second.State)
			assert.EqualValues(t, 0, e.count(t, tc.table, tc.query, alice.ID, tc.target))
		})
	}
}

func TestToggleSelfFollowTouchesNoStore(t *testing.T) {
	store := &scriptedStore{}
	svc := NewToggleService(store, store, store)

	_, err := svc.Toggle(context.Background(), "u1", KindFollow, "u1")
	assert.True(t, errors.Is(err, ErrCannotFollowSelf))
	assert.True(t, errors.Is(err, apperr.ErrInvalidOperation))
	assert.Zero(t, store.calls)
}

func TestToggleMissingTarget(t *testing.T) {
	e := newEnv(t)
	alice := e.user(t, "alice")

	for _, kind := range []ToggleKind{KindPostLike, KindCommentLike, KindFollow} {
		_, err := e.toggles.Toggle(context.Background(), alice.ID, kind, "missing")
		assert.True(t, errors.Is(err, apperr.ErrNotFound), "%s: %v", kind, err)
	}
}

func TestToggleRejectsUnknownKindAndEmptyIDs(t *testing.T) {
	store := &scriptedStore{}
	svc := NewToggleService(store, store, store)

	_, err := svc.Toggle(context.Background(), "u1", ToggleKind("bookmark"), "p1")
	assert.True(t, errors.Is(err, ErrUnknownToggle))

	_, err = svc.Toggle(context.Background(), "", KindPostLike, "p1")
	assert.True(t, errors.Is(err, apperr.ErrInvalidOperation))
}

func TestToggleRereadsAfterLostInsertRace(t *testing.T) {
	// 第一次读到不存在，插入时被并发请求抢先；重读后存在，于是删除
	store := &scriptedStore{
		exists:    []bool{false, true},
		insertErr: []error{apperr.New(apperr.KindConflict, "点赞已存在")},
		removed:   []bool{true},
	}
	svc := NewToggleService(store, store, store)

	res, err := svc.Toggle(context.Background(), "u1", KindPostLike, "p1")
	require.NoError(t, err)
	assert.Equal(t, string(StateRemoved), res.State)
}

func TestToggleGivesUpWhenContended(t *testing.T) {
	store := &scriptedStore{
		exists:    []bool{false},
		insertErr: []error{apperr.New(apperr.KindConflict, "点赞已存在")},
	}
	svc := NewToggleService(store, store, store)

	_, err := svc.Toggle(context.Background(), "u1", KindPostLike, "p1")
	assert.True(t, errors.Is(err, ErrToggleContended))
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestToggleSurfacesStoreFailure(t *testing.T) {
	boom := apperr.Wrap(apperr.KindDependency, "点赞失败", errors.New("db down"))
	store := &scriptedStore{exists: []bool{false}, insertErr: []error{boom}}
	svc := NewToggleService(store, store, store)

	_, err := svc.Toggle(context.Background(), "u1", KindPostLike, "p1")
	assert.True(t, errors.Is(err, apperr.ErrDependency))
}

func TestToggleConcurrentSamePair(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")
	post := e.post(t, bob, "popular", true)

	const n = 10
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		mu    sync.Mutex
		added int
		gone  int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			res, err := e.toggles.Toggle(ctx, alice.ID, KindPostLike, post.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.True(t, errors.Is(err, ErrToggleContended), "unexpected error: %v", err)
				return
			}
			if res.Active {
				added++
			} else {
				gone++
			}
		}()
	}
	close(start)
	wg.Wait()

	rows := e.count(t, &model.Like{}, "liked_by_id = ? AND post_id = ?", alice.ID, post.ID)
	assert.LessOrEqual(t, rows, int64(1))
	// 每次成功的切换恰好增删一行
	assert.EqualValues(t, added-gone, rows)
}
