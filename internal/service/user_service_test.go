package service

import (
	"context"
	"errors"
	"testing"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	e.user(t, "bob")

	_, err := e.userSvc.UpdateAccount(ctx, alice.ID, &dto.UpdateAccountRequest{})
	assert.True(t, errors.Is(err, ErrNoFieldsToUpdate))

	info, err := e.userSvc.UpdateAccount(ctx, alice.ID, &dto.UpdateAccountRequest{
		FullName: strPtr("Alice A."),
		Email:    strPtr("New@Example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", info.FullName)
	assert.Equal(t, "new@example.com", info.Email)

	_, err = e.userSvc.UpdateAccount(ctx, alice.ID, &dto.UpdateAccountRequest{Email: strPtr("bob@example.com")})
	assert.True(t, errors.Is(err, ErrEmailExists))
}

func TestUpdateImageReleasesPrevious(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")

	first, err := e.userSvc.UpdateImage(ctx, alice.ID, "avatar_url", upload("me.jpg"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.AvatarURL)
	assert.Empty(t, e.media.deletes)

	second, err := e.userSvc.UpdateImage(ctx, alice.ID, "avatar_url", upload("me2.jpg"))
	require.NoError(t, err)
	assert.NotEqual(t, first.AvatarURL, second.AvatarURL)
	assert.Equal(t, []string{first.AvatarURL}, e.media.deletes)

	cover, err := e.userSvc.UpdateImage(ctx, alice.ID, "cover_image_url", upload("cover.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, cover.CoverImageURL)
	assert.Equal(t, second.AvatarURL, cover.AvatarURL)

	_, err = e.userSvc.UpdateImage(ctx, alice.ID, "password", upload("x.png"))
	assert.True(t, errors.Is(err, apperr.ErrInvalidOperation))

	_, err = e.userSvc.UpdateImage(ctx, "missing", "avatar_url", upload("x.png"))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
