package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driving"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the registry of ingested documents.
type DocumentService struct {
	docStore driven.DocumentStore
	index    driven.VectorIndex
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, index driven.VectorIndex) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		index:    index,
	}
}

// List returns all registered documents, most recent first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.docStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

// Get retrieves one document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// Delete removes a document's vectors and its registry row, reporting
// whether anything was actually removed. Deleting an unknown document is
// not an error.
func (s *DocumentService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: document identifier cannot be empty", domain.ErrInvalidInput)
	}

	removed, err := s.index.DeleteDocument(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting vectors for %s: %w", id, err)
	}

	existed := removed > 0
	if _, err := s.docStore.Get(ctx, id); err == nil {
		existed = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("checking registry for %s: %w", id, err)
	}

	if err := s.docStore.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("deleting registry row for %s: %w", id, err)
	}

	if existed {
		logger.Info("Deleted document %s (%d chunks)", id, removed)
	}
	return existed, nil
}
