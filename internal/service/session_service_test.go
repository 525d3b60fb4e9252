package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, e *env, username, password string) *dto.UserInfo {
	t.Helper()
	info, err := e.sessions.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    username + "@Example.com",
		Password: password,
		FullName: " " + username + " ",
	})
	require.NoError(t, err)
	return info
}

func TestRegister(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	info := register(t, e, "Alice", "secret1")
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.Equal(t, "Alice", info.FullName)

	stored, err := e.users.GetByID(ctx, info.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)

	_, err = e.sessions.Register(ctx, &dto.RegisterRequest{Username: "ALICE", Email: "other@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, ErrIdentityConflict))
	_, err = e.sessions.Register(ctx, &dto.RegisterRequest{Username: "other", Email: "ALICE@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	info := register(t, e, "alice", "secret1")

	byName, err := e.sessions.Login(ctx, "ALICE", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", byName.TokenType)
	assert.Equal(t, 15*60, byName.ExpiresIn)
	require.NotNil(t, byName.User)
	assert.Equal(t, info.ID, byName.User.ID)

	byEmail, err := e.sessions.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, byName.RefreshToken, byEmail.RefreshToken)

	stored, err := e.users.GetByID(ctx, info.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, byEmail.RefreshToken, *stored.RefreshToken)

	_, wrongPassword := e.sessions.Login(ctx, "alice", "nope")
	_, unknownUser := e.sessions.Login(ctx, "nobody", "secret1")
	assert.Equal(t, ErrInvalidCredentials, wrongPassword)
	assert.Equal(t, ErrInvalidCredentials, unknownUser)

	_, err = e.sessions.Login(ctx, "  ", "secret1")
	assert.True(t, errors.Is(err, apperr.ErrInvalidOperation))
}

func TestRenewRotatesRefreshToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	register(t, e, "alice", "secret1")

	login, err := e.sessions.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	renewed, err := e.sessions.Renew(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, renewed.RefreshToken)
	assert.NotEmpty(t, renewed.AccessToken)

	// 被轮换掉的令牌不能再次使用
	_, err = e.sessions.Renew(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, ErrRefreshRejected))

	_, err = e.sessions.Renew(ctx, renewed.RefreshToken)
	require.NoError(t, err)

	_, err = e.sessions.Renew(ctx, login.AccessToken)
	assert.True(t, errors.Is(err, ErrRefreshRejected))
	_, err = e.sessions.Renew(ctx, "garbage")
	assert.True(t, errors.Is(err, ErrRefreshRejected))
}

func TestRenewConcurrentSameTokenSingleWinner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	register(t, e, "alice", "secret1")

	login, err := e.sessions.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	const n = 8
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]*dto.TokenData, n)
		errs    = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = e.sessions.Renew(ctx, login.RefreshToken)
		}(i)
	}
	close(start)
	wg.Wait()

	var winner *dto.TokenData
	for i := 0; i < n; i++ {
		if errs[i] == nil {
			require.Nil(t, winner, "more than one renewal succeeded")
			winner = results[i]
			continue
		}
		assert.True(t, errors.Is(errs[i], apperr.ErrUnauthenticated), "unexpected error: %v", errs[i])
	}
	require.NotNil(t, winner)

	// 只有胜出者拿到的令牌可以继续轮换
	stored, err := e.users.GetByIdentifier(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, winner.RefreshToken, *stored.RefreshToken)
	_, err = e.sessions.Renew(ctx, winner.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	info := register(t, e, "alice", "secret1")

	login, err := e.sessions.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NoError(t, e.sessions.Logout(ctx, info.ID))

	_, err = e.sessions.Renew(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, ErrRefreshRejected))

	// 访问令牌在有效期内仍可用
	user, err := e.sessions.Verify(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, info.ID, user.ID)
	assert.Empty(t, user.Password)
	assert.Nil(t, user.RefreshToken)
}

func TestVerify(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	register(t, e, "alice", "secret1")

	login, err := e.sessions.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = e.sessions.Verify(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	_, err = e.sessions.Verify(ctx, "garbage")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	ghost, err := e.sessions.access.Sign("no-such-user")
	require.NoError(t, err)
	_, err = e.sessions.Verify(ctx, ghost)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	info := register(t, e, "alice", "secret1")

	login, err := e.sessions.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	err = e.sessions.ChangePassword(ctx, info.ID, "wrong", "secret2")
	assert.True(t, errors.Is(err, ErrWrongPassword))

	require.NoError(t, e.sessions.ChangePassword(ctx, info.ID, "secret1", "secret2"))

	_, err = e.sessions.Renew(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, ErrRefreshRejected))

	_, err = e.sessions.Login(ctx, "alice", "secret1")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = e.sessions.Login(ctx, "alice", "secret2")
	require.NoError(t, err)
}

func TestCurrentUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	info := register(t, e, "alice", "secret1")

	me, err := e.sessions.CurrentUser(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)

	_, err = e.sessions.CurrentUser(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
