package driven

import (
	"context"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// VectorIndex is the persistent store of (id, vector, metadata) triples.
// The index exclusively owns the persisted structures; callers only ever
// add or query, never mutate a stored vector directly.
//
// Writers must be serialized by the caller (single-writer model);
// concurrent queries read a consistent snapshot.
type VectorIndex interface {
	// InsertBatch appends the records, durably persisting before it
	// returns. Inserting an identifier that already exists overwrites the
	// old entry rather than duplicating it.
	InsertBatch(ctx context.Context, records []domain.VectorRecord) error

	// Query ranks every stored vector by cosine similarity to the query
	// vector, keeps candidates matching every key/value pair of the
	// filter, and returns the top k. Equal scores preserve insertion
	// order. A nil filter matches everything.
	Query(ctx context.Context, vector []float32, k int, filter map[string]string) ([]domain.SimilarityResult, error)

	// DeleteDocument removes every record whose identifier is prefixed by
	// the document identifier, returning how many were removed. Deleting a
	// document with no stored chunks is a no-op, not an error.
	DeleteDocument(ctx context.Context, docID string) (int, error)

	// Len returns the number of stored records.
	Len() int

	// Close releases resources.
	Close() error
}
