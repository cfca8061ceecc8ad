// Package memory provides in-memory implementations of driven ports,
// used in tests and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// Save stores or updates a document registry entry.
func (s *DocumentStore) Save(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Text = "" // registry entries never hold document text
	s.documents[doc.ID] = doc
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
	}
	return &doc, nil
}

// List returns all documents, most recently uploaded first.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// Delete removes a document. Deleting an unknown ID is a no-op.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	return nil
}

// Close releases resources.
func (s *DocumentStore) Close() error {
	return nil
}
