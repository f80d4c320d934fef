package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bbolt "go.etcd.io/bbolt"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "caps.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)
	return s
}

func TestStoreGetSet(t *testing.T) {
	s := testStore(t)
	kv := s.Viewer("v1")
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "last_display::n1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "last_display::n1", "2026-03-10"))

	v, ok, err := kv.Get(ctx, "last_display::n1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-10", v)
}

func TestStoreViewerIsolation(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Viewer("v1").Set(ctx, "display_count::2026-03-10", "2"))

	_, ok, err := s.Viewer("v2").Get(ctx, "display_count::2026-03-10")
	require.NoError(t, err)
	assert.False(t, ok, "viewers do not share cap records")
}

func TestStoreKeysByPrefix(t *testing.T) {
	s := testStore(t)
	kv := s.Viewer("v1")
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "last_display::a", "2026-03-09"))
	require.NoError(t, kv.Set(ctx, "last_display::b", "2026-03-10"))
	require.NoError(t, kv.Set(ctx, "display_count::2026-03-10", "1"))

	keys, err := kv.KeysByPrefix(ctx, "last_display::")
	require.NoError(t, err)
	assert.Equal(t, []string{"last_display::a", "last_display::b"}, keys)

	keys, err = kv.KeysByPrefix(ctx, "nope::")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
