package driven

import (
	"context"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// DocumentStore is the registry of ingested documents. It stores display
// attributes (file name, size, industry, chunk count), not document text;
// chunk text lives as excerpts in the vector index.
type DocumentStore interface {
	// Save inserts or replaces the registry row for a document.
	Save(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all registered documents, most recently uploaded first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes the registry row. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
