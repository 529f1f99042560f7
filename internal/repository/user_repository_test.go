package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

func TestUserCreateAndLookup(t *testing.T) {
	repo := NewUserRepo(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, model.User{Username: "Alice", PasswordHash: "h"}))
	assert.ErrorIs(t, repo.Create(ctx, model.User{Username: "alice"}), ErrConflict)

	u, err := repo.GetByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPreferenceUpdate(t *testing.T) {
	repo := NewPreferenceRepo(store.NewMemory())
	ctx := context.Background()

	p, err := repo.Get(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, "evening", p.TimePreference)

	require.NoError(t, repo.Update(ctx, "guest", func(p *model.Preferences) bool {
		p.Genre = "Comedy"
		return true
	}))
	p, err = repo.Get(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, "Comedy", p.Genre)

	// unchanged updates are not written
	require.NoError(t, repo.Update(ctx, "other", func(*model.Preferences) bool { return false }))
	_, err = repo.Get(ctx, "other")
	require.NoError(t, err)
}
