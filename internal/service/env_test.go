package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	infraES "pulse-go/internal/infra/elasticsearch"
	infraKafka "pulse-go/internal/infra/kafka"
	"pulse-go/internal/model"
	"pulse-go/internal/repository"
	"pulse-go/internal/testutil"
	"pulse-go/pkg/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeMedia struct {
	mu        sync.Mutex
	puts      []string
	deletes   []string
	deleteErr error
}

func (m *fakeMedia) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts = append(m.puts, objectName)
	return "http://media.local/pulse/" + objectName, nil
}

func (m *fakeMedia) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletes = append(m.deletes, url)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []infraKafka.PostEvent
}

func (e *fakeEvents) PublishPostEvent(ctx context.Context, evt infraKafka.PostEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evt)
	return nil
}

func (e *fakeEvents) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, evt := range e.events {
		out = append(out, evt.Type)
	}
	return out
}

// fakeGate 每个 viewer/post 组合只有第一次返回 true
type fakeGate struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func (g *fakeGate) FirstView(ctx context.Context, viewerID, postID string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen == nil {
		g.seen = map[string]bool{}
	}
	key := viewerID + ":" + postID
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

type fakeIndexer struct {
	synced  []string
	deleted []string
	batches int
}

func (f *fakeIndexer) Sync(ctx context.Context, doc *infraES.PostDoc) error {
	f.synced = append(f.synced, doc.ID)
	return nil
}

func (f *fakeIndexer) Delete(ctx context.Context, postID string) error {
	f.deleted = append(f.deleted, postID)
	return nil
}

func (f *fakeIndexer) BulkSync(ctx context.Context, docs []*infraES.PostDoc) (int, int, error) {
	f.batches++
	for _, d := range docs {
		f.synced = append(f.synced, d.ID)
	}
	return len(docs), 0, nil
}

var errMediaDown = errors.New("media store unavailable")

// env 一套基于内存库的完整服务
type env struct {
	db    *gorm.DB
	media *fakeMedia
	event *fakeEvents
	gate  *fakeGate

	users    *repository.UserRepository
	posts    *repository.PostRepository
	comments *repository.CommentRepository
	likes    *repository.LikeRepository

	sessions *SessionService
	views    *ViewService
	toggles  *ToggleService
	postSvc  *PostService
	comSvc   *CommentService
	userSvc  *UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)

	e := &env{
		db:       db,
		media:    &fakeMedia{},
		event:    &fakeEvents{},
		gate:     &fakeGate{},
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		likes:    repository.NewLikeRepository(db),
	}

	access := utils.NewTokenSigner("access-secret", 15*time.Minute, "pulse-test", utils.TokenTypeAccess)
	refresh := utils.NewTokenSigner("refresh-secret", 24*time.Hour, "pulse-test", utils.TokenTypeRefresh)
	e.sessions = NewSessionService(e.users, utils.NewPasswordHasher(bcrypt.MinCost), access, refresh)
	e.views = NewViewService(db, e.posts, e.users, e.likes, 3)
	e.toggles = NewToggleService(
		repository.NewPostLikeStore(db),
		repository.NewCommentLikeStore(db),
		repository.NewFollowStore(db),
	)
	e.postSvc = NewPostService(e.posts, e.comments, e.likes, e.users, e.media, e.event, e.gate, 3)
	e.comSvc = NewCommentService(e.comments, e.likes, e.views)
	e.userSvc = NewUserService(e.users, e.media)
	return e
}

func (e *env) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", Password: "x", FullName: name}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *env) post(t *testing.T, owner *model.User, content string, published bool) *model.Post {
	t.Helper()
	p := &model.Post{OwnerID: owner.ID, Content: content, IsPublished: published}
	require.NoError(t, e.posts.Create(context.Background(), p))
	return p
}

func (e *env) comment(t *testing.T, owner *model.User, post *model.Post, content string) *model.Comment {
	t.Helper()
	c := &model.Comment{PostID: post.ID, OwnerID: owner.ID, Content: content}
	require.NoError(t, e.comments.Create(context.Background(), c))
	return c
}

func (e *env) count(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}
