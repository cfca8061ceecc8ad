// Package sqlite provides the SQLite-backed document registry.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The registry holds one row
// per ingested document (file name, industry, document type, size, chunk
// count, upload time); chunk text and vectors live in the vector index, not
// here.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.proposalcraft/data/registry.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
