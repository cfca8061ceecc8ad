package domain

// Proposal statuses returned by the proposal service.
const (
	ProposalStatusSuccess = "success"
	ProposalStatusError   = "error"
)

// ContextInfo carries optional customer details that shape a proposal.
type ContextInfo struct {
	// CustomerName is the customer the proposal addresses.
	CustomerName string

	// Industry is the customer's industry.
	Industry string

	// Budget is the stated budget, free-form.
	Budget string
}

// IsZero reports whether no customer detail was provided.
func (c ContextInfo) IsZero() bool {
	return c.CustomerName == "" && c.Industry == "" && c.Budget == ""
}

// ProposalSource identifies a retrieved chunk that backed a proposal.
type ProposalSource struct {
	// FileName is the display name of the source document.
	FileName string `json:"file_name"`

	// ChunkID is the backing chunk identifier.
	ChunkID string `json:"chunk_id"`

	// RelevanceScore is the cosine similarity of the chunk to the query.
	RelevanceScore float64 `json:"relevance_score"`
}

// ProposalResult is the structured outcome of proposal generation.
// A retrieval miss is reported through Status, not as an error.
type ProposalResult struct {
	// Status is "success" or "error".
	Status string `json:"status"`

	// Message explains an error status.
	Message string `json:"message,omitempty"`

	// Proposal is the generated proposal body. Empty on error status.
	Proposal string `json:"proposal,omitempty"`

	// Sources lists the retrieved chunks the proposal drew on, ranked.
	Sources []ProposalSource `json:"sources,omitempty"`
}

// IngestResult reports a completed ingest.
type IngestResult struct {
	// DocID is the content-derived document identifier.
	DocID string `json:"doc_id"`

	// ChunkCount is the number of chunks stored.
	ChunkCount int `json:"chunk_count"`

	// ChunkIDs lists the inserted chunk identifiers in document order.
	ChunkIDs []string `json:"chunk_ids,omitempty"`
}
