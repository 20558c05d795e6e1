package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohankatakam/gitart/internal/pattern"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), logrus.New())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sug := &pattern.Suggestion{Name: "heart", Points: []pattern.Point{{X: 1, Y: 2, Level: 3}, {X: 4, Y: 5, Level: 1}}}
	rec, err := NewRecord("a heart", pattern.ProviderGemini, 2024, sug)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, rec))
	assert.Len(t, rec.ID, 36)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "a heart", got.Prompt)
	assert.Equal(t, "gemini", got.Provider)
	assert.Equal(t, 2024, got.Year)

	decoded, err := got.Suggestion()
	require.NoError(t, err)
	assert.Equal(t, sug, decoded)

	byPrefix, err := s.Get(ctx, rec.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byPrefix.ID)

	_, err = s.Get(ctx, "ffffffff-nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"one", "two", "three"} {
		require.NoError(t, s.Save(ctx, &Record{
			ID:        name,
			Prompt:    name,
			Provider:  "openai",
			Name:      name,
			Year:      2024,
			Points:    "[]",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "three", all[0].ID)
	assert.Equal(t, "one", all[2].ID)

	two, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	_, err = s.Get(ctx, "t")
	assert.Error(t, err, "prefix t matches two and three")
}

func TestDeleteAndMarkApplied(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := &Record{Prompt: "x", Provider: "gemini", Name: "x", Year: 2023, Points: "[]"}
	require.NoError(t, s.Save(ctx, rec))

	require.NoError(t, s.MarkApplied(ctx, rec.ID, 42))
	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Applied)

	require.NoError(t, s.Delete(ctx, rec.ID))
	assert.ErrorIs(t, s.Delete(ctx, rec.ID), ErrNotFound)
	assert.ErrorIs(t, s.MarkApplied(ctx, rec.ID, 1), ErrNotFound)
}
