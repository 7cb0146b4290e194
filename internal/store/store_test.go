package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "fields.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore_SetGet(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := s.Get("doc1", "Name")
			assert.False(t, ok)

			require.NoError(t, s.Set("doc1", "Name", "Alice"))
			v, ok := s.Get("doc1", "Name")
			assert.True(t, ok)
			assert.Equal(t, "Alice", v)

			// Last write wins.
			require.NoError(t, s.Set("doc1", "Name", "Bob"))
			v, _ = s.Get("doc1", "Name")
			assert.Equal(t, "Bob", v)
		})
	}
}

func TestStore_DocumentsAreIsolated(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("doc1", "Name", "Alice"))
			require.NoError(t, s.Set("doc2", "Name", "Bob"))

			v, _ := s.Get("doc1", "Name")
			assert.Equal(t, "Alice", v)
			v, _ = s.Get("doc2", "Name")
			assert.Equal(t, "Bob", v)
		})
	}
}

func TestStore_GetAll(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("doc1", "Name", "Alice"))
			require.NoError(t, s.Set("doc1", "Agree", "Yes"))
			require.NoError(t, s.Set("doc2", "Name", "Bob"))

			all, err := s.GetAll("doc1")
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"Name": "Alice", "Agree": "Yes"}, all)

			empty, err := s.GetAll("missing")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("doc1", "Name", "Alice"))
			require.NoError(t, s.Set("doc2", "Name", "Bob"))

			require.NoError(t, s.Clear("doc1"))

			_, ok := s.Get("doc1", "Name")
			assert.False(t, ok)
			v, ok := s.Get("doc2", "Name")
			assert.True(t, ok)
			assert.Equal(t, "Bob", v)
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("doc1", "Name", "Alice"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok := reopened.Get("doc1", "Name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)
}
