package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishiki-labs/proposalcraft/internal/adapters/driven/storage/memory"
	"github.com/nishiki-labs/proposalcraft/internal/chunker"
	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

func ingestConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.ChunkSize = 100
	cfg.ChunkOverlap = 20
	cfg.MaxChunksPerDocument = 5
	cfg.VectorDimension = 4
	cfg.ExcerptLength = 50
	return cfg
}

func newIngestFixture(t *testing.T, cfg domain.Config) (*IngestService, *mockVectorIndex, *memory.DocumentStore) {
	t.Helper()
	splitter := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)
	index := newMockVectorIndex()
	docStore := memory.NewDocumentStore()
	svc := NewIngestService(splitter, &mockEmbedder{dimension: cfg.VectorDimension}, index, docStore, cfg)
	return svc, index, docStore
}

func TestIngest(t *testing.T) {
	cfg := ingestConfig()
	svc, index, docStore := newIngestFixture(t, cfg)
	ctx := context.Background()

	doc := domain.Document{
		Path:     "/docs/notes.txt",
		Text:     "First paragraph of the document.\n\nSecond paragraph with more detail.",
		Metadata: map[string]any{"file_name": "notes.txt", "industry": "retail"},
	}

	result, err := svc.Ingest(ctx, doc)
	require.NoError(t, err)

	assert.Len(t, result.ChunkIDs, result.ChunkCount)
	assert.Equal(t, domain.NewDocumentID(doc.Path, doc.Text), result.DocID)
	assert.Equal(t, result.ChunkCount, index.Len())

	// Chunk metadata inherits the document metadata and adds positional keys.
	first := index.records[result.ChunkIDs[0]]
	assert.Equal(t, "retail", first.Metadata["industry"])
	assert.Equal(t, 0, first.Metadata["chunk_index"])
	assert.Equal(t, result.ChunkCount, first.Metadata["total_chunks"])
	assert.NotEmpty(t, first.Metadata["source_text"])

	// The registry row records the chunk count.
	saved, err := docStore.Get(ctx, result.DocID)
	require.NoError(t, err)
	assert.Equal(t, result.ChunkCount, saved.ChunkCount)
}

func TestIngestEmptyDocument(t *testing.T) {
	svc, _, _ := newIngestFixture(t, ingestConfig())

	_, err := svc.Ingest(context.Background(), domain.Document{Text: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestCapsChunkCount(t *testing.T) {
	cfg := ingestConfig()
	svc, index, _ := newIngestFixture(t, cfg)

	// Far more text than 5 chunks of 100 characters can hold.
	doc := domain.Document{
		Path: "/docs/long.txt",
		Text: strings.Repeat("sentence after sentence. ", 200),
	}

	result, err := svc.Ingest(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxChunksPerDocument, result.ChunkCount)
	assert.Equal(t, cfg.MaxChunksPerDocument, index.Len())
}

func TestIngestExcerptBounded(t *testing.T) {
	cfg := ingestConfig()
	svc, index, _ := newIngestFixture(t, cfg)

	doc := domain.Document{
		Path: "/docs/dense.txt",
		Text: strings.Repeat("x", 90),
	}

	result, err := svc.Ingest(context.Background(), doc)
	require.NoError(t, err)

	excerpt := index.records[result.ChunkIDs[0]].Metadata["source_text"].(string)
	assert.Len(t, excerpt, cfg.ExcerptLength)
}

func TestReingestReplacesPreviousChunks(t *testing.T) {
	cfg := ingestConfig()
	cfg.MaxChunksPerDocument = 100
	svc, index, _ := newIngestFixture(t, cfg)
	ctx := context.Background()

	doc := domain.Document{
		Path: "/docs/notes.txt",
		Text: strings.Repeat("many words to force several chunks here. ", 40),
	}

	first, err := svc.Ingest(ctx, doc)
	require.NoError(t, err)

	// Same path, same first-1000-character prefix, shorter text: same doc
	// ID, fewer chunks. The old chunk set must not linger.
	doc.Text = doc.Text[:1100]
	second, err := svc.Ingest(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, first.DocID, second.DocID)
	assert.Less(t, second.ChunkCount, first.ChunkCount)
	assert.Equal(t, second.ChunkCount, index.Len())
}

func TestIngestInsertFailure(t *testing.T) {
	cfg := ingestConfig()
	svc, index, _ := newIngestFixture(t, cfg)
	index.insertErr = assert.AnError

	_, err := svc.Ingest(context.Background(), domain.Document{Path: "/x.txt", Text: "some text"})
	assert.ErrorIs(t, err, assert.AnError)
}
