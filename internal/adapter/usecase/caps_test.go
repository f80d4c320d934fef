package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyCapsSchema(t *testing.T) {
	store := newMemStore()
	caps := NewFrequencyCaps(store.Viewer("v1"))
	ctx := context.Background()
	shownAt := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

	_, ok, err := caps.LastShown(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, caps.RecordDisplay(ctx, "n1", shownAt))
	require.NoError(t, caps.RecordDisplay(ctx, "n2", shownAt))
	require.NoError(t, caps.RecordDisplay(ctx, "n1", shownAt.AddDate(0, 0, 1)))

	last, ok, err := caps.LastShown(ctx, "n1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-11", last.Format("2006-01-02"), "date precision only")

	count, err := caps.ShownToday(ctx, shownAt)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	total, err := caps.TotalShown(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// the documented key schema is what actually lands in the store
	keys, err := store.Viewer("v1").KeysByPrefix(ctx, "last_display::")
	require.NoError(t, err)
	assert.Equal(t, []string{"last_display::n1", "last_display::n2"}, keys)
}

func TestFrequencyCapsUnparseableValue(t *testing.T) {
	store := newMemStore()
	kv := store.Viewer("v1")
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "last_display::n1", "not a date"))
	require.NoError(t, kv.Set(ctx, "display_count::2026-03-10", "not a number"))

	caps := NewFrequencyCaps(kv)
	_, ok, err := caps.LastShown(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, ok, "garbage reads as absent")

	count, err := caps.ShownToday(ctx, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, count)
}
