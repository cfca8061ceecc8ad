package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nishiki-labs/proposalcraft/internal/chunker"
	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driving"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService chunks documents, embeds the chunks and stores the
// resulting records.
type IngestService struct {
	splitter  *chunker.Splitter
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	docStore  driven.DocumentStore
	maxChunks int
	excerpt   int
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	docStore driven.DocumentStore,
	cfg domain.Config,
) *IngestService {
	return &IngestService{
		splitter:  splitter,
		embedder:  embedder,
		index:     index,
		docStore:  docStore,
		maxChunks: cfg.MaxChunksPerDocument,
		excerpt:   cfg.ExcerptLength,
	}
}

// Ingest chunks the document, embeds every chunk and inserts the records
// into the index as one batch. Re-ingesting a known document removes its
// previous chunk set first, so a chunker config change can never strand
// stale chunks under the same identifier.
func (s *IngestService) Ingest(ctx context.Context, doc domain.Document) (domain.IngestResult, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return domain.IngestResult{}, fmt.Errorf("%w: document has no text", domain.ErrInvalidInput)
	}
	if doc.ID == "" {
		doc.ID = domain.NewDocumentID(doc.Path, doc.Text)
	}

	logger.Section("Document Ingest")
	logger.Debug("Document %s (%s)", doc.ID, doc.Path)

	texts := s.splitter.Split(doc.Text)
	if len(texts) == 0 {
		return domain.IngestResult{}, fmt.Errorf("%w: document %s", domain.ErrNoChunks, doc.ID)
	}
	if len(texts) > s.maxChunks {
		logger.Warn("Document %s produced %d chunks, capping at %d", doc.ID, len(texts), s.maxChunks)
		texts = texts[:s.maxChunks]
	}
	logger.Debug("Split into %d chunks", len(texts))

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("embedding chunks: %w", err)
	}

	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			ID:          domain.ChunkID(doc.ID, i),
			DocumentID:  doc.ID,
			Text:        text,
			Index:       i,
			TotalChunks: len(texts),
			Metadata:    s.chunkMetadata(doc, text, i, len(texts)),
		}
	}

	records := make([]domain.VectorRecord, len(chunks))
	chunkIDs := make([]string, len(chunks))
	for i, c := range chunks {
		chunkIDs[i] = c.ID
		records[i] = domain.VectorRecord{
			ID:       c.ID,
			Vector:   vectors[i],
			Metadata: c.Metadata,
		}
	}

	// Drop any previous chunk set so a shrinking chunk count cannot leave
	// orphaned records behind the same document identifier.
	if removed, err := s.index.DeleteDocument(ctx, doc.ID); err != nil {
		return domain.IngestResult{}, fmt.Errorf("replacing document %s: %w", doc.ID, err)
	} else if removed > 0 {
		logger.Debug("Replaced %d existing chunks for document %s", removed, doc.ID)
	}

	if err := s.index.InsertBatch(ctx, records); err != nil {
		return domain.IngestResult{}, fmt.Errorf("inserting document %s: %w", doc.ID, err)
	}

	doc.ChunkCount = len(texts)
	if err := s.docStore.Save(ctx, doc); err != nil {
		return domain.IngestResult{}, fmt.Errorf("registering document %s: %w", doc.ID, err)
	}

	logger.Info("Ingested document %s: %d chunks", doc.ID, len(texts))
	return domain.IngestResult{
		DocID:      doc.ID,
		ChunkCount: len(texts),
		ChunkIDs:   chunkIDs,
	}, nil
}

// chunkMetadata builds a chunk's stored metadata: the inherited document
// metadata plus positional keys and a bounded excerpt for display.
func (s *IngestService) chunkMetadata(doc domain.Document, text string, index, total int) map[string]any {
	meta := make(map[string]any, len(doc.Metadata)+4)
	for k, v := range doc.Metadata {
		meta[k] = v
	}
	meta["document_id"] = doc.ID
	meta["chunk_index"] = index
	meta["total_chunks"] = total
	meta["source_text"] = excerptOf(text, s.excerpt)
	return meta
}

// excerptOf truncates text to max characters.
func excerptOf(text string, max int) string {
	runes := []rune(text)
	if max > 0 && len(runes) > max {
		return string(runes[:max])
	}
	return text
}
