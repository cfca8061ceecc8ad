package driving

import (
	"context"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// IngestService turns documents into stored, retrievable chunks.
type IngestService interface {
	// Ingest chunks the document, embeds each chunk and inserts the
	// resulting records into the index as one batch. It fails if chunking
	// yields zero chunks or if index insertion fails; a single bad chunk
	// never aborts the whole ingest.
	Ingest(ctx context.Context, doc domain.Document) (domain.IngestResult, error)
}

// DocumentService manages the registry of ingested documents.
type DocumentService interface {
	// List returns all registered documents, most recent first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves one document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document's vectors and registry row. It reports
	// whether anything was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}
