// Package driven defines the outbound ports of the retrieval pipeline:
// embedding, generation, the vector index, and the document registry.
// Adapters under internal/adapters/driven implement them.
package driven
