package localstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focusquest/internal/core/domain"
)

func guestTask(id, title string) domain.Task {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := now.Add(2 * time.Hour)
	return domain.Task{
		ID:        id,
		Title:     title,
		Urgency:   domain.UrgencyMedium,
		Category:  domain.CategoryStudy,
		EndTime:   &end,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStore_EmptyBeforeFirstWrite(t *testing.T) {
	store := New(t.TempDir())

	tasks, err := store.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestStore_InsertUpdateDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	_, err := store.Insert(ctx, guestTask("a", "read chapter"))
	require.NoError(t, err)
	_, err = store.Insert(ctx, guestTask("b", "laundry"))
	require.NoError(t, err)

	tasks, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "a", tasks[0].ID)

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, "laundry", got.Title)

	got.Completed = true
	_, err = store.Update(ctx, got)
	require.NoError(t, err)

	got, err = store.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, got.Completed)

	require.NoError(t, store.Delete(ctx, "a"))
	tasks, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "b", tasks[0].ID)
}

func TestStore_NotFound(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = store.Update(ctx, guestTask("missing", "x"))
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.ErrorIs(t, store.Delete(ctx, "missing"), domain.ErrTaskNotFound)
}

func TestStore_WritesSingleWellKnownFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	_, err := store.Insert(ctx, guestTask("a", "read chapter"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	// The layout is one serialized array of task records.
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	require.Equal(t, "read chapter", records[0]["title"])
	require.Equal(t, "medium", records[0]["urgency"])
}
