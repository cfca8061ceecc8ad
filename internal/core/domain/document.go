package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// docIDContentPrefix is how much of the content participates in the
// document ID hash. Two uploads of the same path whose first 1000
// characters match are treated as the same document.
const docIDContentPrefix = 1000

// Document represents a raw ingested unit before chunking.
// Documents are immutable once chunked; re-ingesting changed content
// produces a new ID.
type Document struct {
	// ID is the stable content-derived identifier.
	ID string

	// Path is the original file path or URI the text came from.
	Path string

	// Text is the full extracted text content.
	Text string

	// Metadata contains arbitrary key-value pairs (customer, industry,
	// document type, file name, size). Inherited by every chunk.
	Metadata map[string]any

	// ChunkCount is the number of chunks stored for this document.
	ChunkCount int

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time
}

// Chunk is the atomic retrievable unit carved from a document.
type Chunk struct {
	// ID is "{doc_id}:chunk_{index}".
	ID string

	// DocumentID links to the owning document.
	DocumentID string

	// Text is the chunk's text window.
	Text string

	// Index is the zero-based position within the document.
	Index int

	// TotalChunks is the document's total chunk count.
	TotalChunks int

	// Metadata is the inherited document metadata plus positional keys.
	Metadata map[string]any
}

// NewDocumentID derives a stable document identifier from the source path
// and a prefix of the content. Identical (path, content-prefix) input
// always yields the same ID, which is what makes re-ingestion idempotent.
func NewDocumentID(path, content string) string {
	prefix := content
	if runes := []rune(prefix); len(runes) > docIDContentPrefix {
		prefix = string(runes[:docIDContentPrefix])
	}
	sum := sha256.Sum256([]byte(path + ":" + prefix))
	return hex.EncodeToString(sum[:])[:16]
}

// ChunkID builds the identifier for a chunk at the given position.
func ChunkID(docID string, index int) string {
	return fmt.Sprintf("%s:chunk_%d", docID, index)
}
