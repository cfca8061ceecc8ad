package domain

// VectorRecord is what the vector index stores: a chunk identifier, a
// fixed-length embedding, and the metadata needed to display the hit
// without re-reading the source document.
type VectorRecord struct {
	// ID equals the chunk identifier.
	ID string

	// Vector is the embedding. Its length must match the index dimension.
	Vector []float32

	// Metadata includes the inherited document metadata, positional keys,
	// and a bounded source_text excerpt.
	Metadata map[string]any
}

// SimilarityResult is a single ranked hit from a vector query.
// It is ephemeral and never persisted.
type SimilarityResult struct {
	// ID is the matched chunk identifier.
	ID string

	// Score is the cosine similarity to the query vector.
	Score float64

	// Metadata is the stored metadata map for the matched record.
	Metadata map[string]any
}

// FileName returns the display name stored with the record, or "Unknown"
// when the record carries none.
func (r SimilarityResult) FileName() string {
	if name, ok := r.Metadata["file_name"].(string); ok && name != "" {
		return name
	}
	return "Unknown"
}

// Excerpt returns the stored source_text excerpt, truncated to max
// characters. A negative max returns the full excerpt.
func (r SimilarityResult) Excerpt(max int) string {
	text, _ := r.Metadata["source_text"].(string)
	if max >= 0 {
		if runes := []rune(text); len(runes) > max {
			return string(runes[:max]) + "..."
		}
	}
	return text
}
