package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// setupTestStore creates a temporary SQLite registry for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "proposalcraft-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testDocument(id string) domain.Document {
	return domain.Document{
		ID:   id,
		Path: "/docs/" + id + ".txt",
		Metadata: map[string]any{
			"file_name": id + ".txt",
			"industry":  "retail",
		},
		ChunkCount: 3,
		UploadedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := testDocument("a1b2c3d4e5f60718")
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Path, got.Path)
	assert.Equal(t, 3, got.ChunkCount)
	assert.Equal(t, "retail", got.Metadata["industry"])
	assert.Empty(t, got.Text, "registry must not persist document text")
}

func TestStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := testDocument("a1b2c3d4e5f60718")
	require.NoError(t, store.Save(ctx, doc))

	doc.ChunkCount = 7
	doc.Metadata["industry"] = "finance"
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ChunkCount)
	assert.Equal(t, "finance", got.Metadata["industry"])

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestStore_ListOrdersByUploadTime(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	older := testDocument("older000older000")
	older.UploadedAt = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := testDocument("newer000newer000")
	newer.UploadedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, newer.ID, docs[0].ID)
	assert.Equal(t, older.ID, docs[1].ID)
}

func TestStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := testDocument("a1b2c3d4e5f60718")
	require.NoError(t, store.Save(ctx, doc))
	require.NoError(t, store.Delete(ctx, doc.ID))

	_, err := store.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, doc.ID))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "proposalcraft-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testDocument("a1b2c3d4e5f60718")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	docs, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
