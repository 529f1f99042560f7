package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Items []string `json:"items"`
}

func TestFileReadMissing(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	var s sample
	err = f.Read(context.Background(), "bookings", &s)
	assert.True(t, errors.Is(err, ErrNotExist))
}

func TestFileReplaceThenRead(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, f.Replace(ctx, "bookings", sample{Items: []string{"a"}}))
	require.NoError(t, f.Replace(ctx, "bookings", sample{Items: []string{"a", "b"}}))

	var s sample
	require.NoError(t, f.Read(ctx, "bookings", &s))
	assert.Equal(t, []string{"a", "b"}, s.Items)

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "bookings.json", entries[0].Name())
}

func TestFileReadMalformed(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies.json"), []byte("{not json"), 0o644))

	var s sample
	err = f.Read(context.Background(), "movies", &s)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestMemoryMalformed(t *testing.T) {
	m := NewMemory()
	m.Put("movies", []byte("]["))

	var s sample
	assert.ErrorIs(t, m.Read(context.Background(), "movies", &s), ErrMalformed)
}
