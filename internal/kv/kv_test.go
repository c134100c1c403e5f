package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	pebbleStore, err := NewPebbleStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pebbleStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"pebble": pebbleStore,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("draft:1", `{"a":1}`))

			v, ok, err := store.Get("draft:1")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"a":1}`, v)
		})
	}
}

func TestStore_AbsentKey(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_LastWriteWins(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("k", "first"))
			require.NoError(t, store.Set("k", "second"))

			v, ok, err := store.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "second", v)
		})
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("k", "v"))
			require.NoError(t, store.Delete("k"))
			require.NoError(t, store.Delete("k"))

			_, ok, err := store.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPebbleStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPebbleStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("draft:42", "kept"))
	require.NoError(t, store.Close())

	reopened, err := NewPebbleStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("draft:42")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", v)
}
