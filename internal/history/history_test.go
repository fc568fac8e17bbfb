package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kevinmichaelchen/trend-digest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "nested", "history.json"))
}

func record(i int) models.HistoryRecord {
	return models.HistoryRecord{
		ID:        fmt.Sprintf("rec-%d", i),
		CreatedAt: time.Date(2026, 10, 18, 0, i, 0, 0, time.UTC),
		Domains:   []string{"AI"},
		Prompt:    "prompt",
		HTML:      fmt.Sprintf("<html>%d</html>", i),
	}
}

func ids(records []models.HistoryRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFileStore_EmptyList(t *testing.T) {
	s := newTestStore(t)
	records, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStore_SaveKeepsNewestSix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 1; i <= 8; i++ {
		require.NoError(t, s.Save(ctx, record(i)))
	}

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rec-8", "rec-7", "rec-6", "rec-5", "rec-4", "rec-3"}, ids(records))
}

func TestFileStore_GetDeleteClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Save(ctx, record(i)))
	}

	got, err := s.Get(ctx, "rec-2")
	require.NoError(t, err)
	assert.Equal(t, "<html>2</html>", got.HTML)
	assert.True(t, got.CreatedAt.Equal(record(2).CreatedAt))

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "rec-2"))
	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rec-3", "rec-1"}, ids(records))

	assert.ErrorIs(t, s.Delete(ctx, "rec-2"), ErrNotFound)

	require.NoError(t, s.Clear(ctx))
	records, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Clearing twice is fine.
	require.NoError(t, s.Clear(ctx))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewFileStore(path).List(context.Background())
	assert.ErrorContains(t, err, "parsing history")
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	a := NewRecord("<html/>", []string{"Go"}, "p", now)
	b := NewRecord("<html/>", []string{"Go"}, "p", now)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, []string{"Go"}, a.Domains)
}

func TestPromptPreview(t *testing.T) {
	assert.Equal(t, "short", PromptPreview("short"))
	assert.Equal(t, strings.Repeat("x", 50)+"...", PromptPreview(strings.Repeat("x", 51)))
}
