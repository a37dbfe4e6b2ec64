package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solgraph.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_ProjectCRUD(t *testing.T) {
	store := newTestStore(t)

	p := Project{ID: "p1", Name: "Token Sale", Settings: `{"contract_name":"Sale"}`}
	require.NoError(t, store.SaveProject(p))

	got, err := store.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "Token Sale", got.Name)
	assert.Equal(t, `{"contract_name":"Sale"}`, got.Settings)
	assert.False(t, got.CreatedAt.IsZero())

	// Upsert keeps the ID, replaces the rest.
	p.Name = "Token Sale v2"
	require.NoError(t, store.SaveProject(p))
	got, err = store.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "Token Sale v2", got.Name)

	list, err := store.ListProjects()
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, store.DeleteProject("p1"))
	_, err = store.GetProject("p1")
	assert.Error(t, err)
}

func TestSQLiteStore_GetProject_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetProject("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_GraphBlobs(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveProject(Project{ID: "p1", Name: "x"}))

	// Nothing saved yet: empty string, no error.
	content, err := store.GetGraph("p1")
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, store.SaveGraph("p1", `{"nodes":[],"connections":[]}`))
	content, err = store.GetGraph("p1")
	require.NoError(t, err)
	assert.Equal(t, `{"nodes":[],"connections":[]}`, content)

	// Overwrite wins.
	require.NoError(t, store.SaveGraph("p1", `{"nodes":[1]}`))
	content, err = store.GetGraph("p1")
	require.NoError(t, err)
	assert.Equal(t, `{"nodes":[1]}`, content)
}

func TestSQLiteStore_ArtifactBlobs(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveArtifact("p1", `{"bytecode":"6080"}`))
	content, err := store.GetArtifact("p1")
	require.NoError(t, err)
	assert.Equal(t, `{"bytecode":"6080"}`, content)
}

func TestSQLiteStore_Cleanup(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveProject(Project{ID: "kept", Name: "kept"}))
	require.NoError(t, store.SaveGraph("kept", "{}"))
	require.NoError(t, store.SaveGraph("orphan", "{}"))

	require.NoError(t, store.Cleanup())

	content, err := store.GetGraph("kept")
	require.NoError(t, err)
	assert.Equal(t, "{}", content)

	content, err = store.GetGraph("orphan")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestNewStore_Factory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factory.db")
	store, err := NewStore(StoreConfig{Type: "sqlite", ConnectionString: path})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = NewStore(StoreConfig{Type: "mongodb"})
	assert.Error(t, err)

	_, err = NewStore(StoreConfig{Type: "postgres"})
	assert.Error(t, err, "postgres requires a connection string")
}
