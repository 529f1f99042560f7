package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

func TestCatalogSeedsDefaults(t *testing.T) {
	docs := store.NewMemory()
	repo := NewCatalogRepo(docs, zap.NewNop())

	c := repo.Catalog(context.Background())
	assert.Len(t, c.Movies, 5)
	assert.Len(t, c.Theaters, 4)

	var stored model.Catalog
	require.NoError(t, docs.Read(context.Background(), CatalogDocument, &stored))
	assert.Equal(t, c.MovieTitles(), stored.MovieTitles())
}

func TestCatalogMalformedServesDefaultsWithoutOverwriting(t *testing.T) {
	docs := store.NewMemory()
	docs.Put(CatalogDocument, []byte("{broken"))
	repo := NewCatalogRepo(docs, zap.NewNop())

	c := repo.Catalog(context.Background())
	assert.Equal(t, DefaultCatalog().MovieTitles(), c.MovieTitles())

	var stored model.Catalog
	assert.ErrorIs(t, docs.Read(context.Background(), CatalogDocument, &stored), store.ErrMalformed)
}

func TestCatalogUsesStoredDocument(t *testing.T) {
	docs := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, docs.Replace(ctx, CatalogDocument, model.Catalog{
		Movies:    []model.Movie{{ID: 9, Title: "Solo Show"}},
		Theaters:  []model.Theater{{ID: 1, Name: "Corner Cinema"}},
		Showtimes: []string{"8:00 PM"},
	}))
	repo := NewCatalogRepo(docs, zap.NewNop())

	m, ok := repo.FindMovie(ctx, "solo SHOW")
	require.True(t, ok)
	assert.Equal(t, 9, m.ID)
	assert.Equal(t, []string{"8:00 PM"}, repo.Catalog(ctx).ShowtimesFor(m))

	_, ok = repo.FindMovie(ctx, "Cosmic Dreams")
	assert.False(t, ok)
}
