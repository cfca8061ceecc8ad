// Package file implements the vector index as two co-located files: a binary
// vector array keyed by chunk identifier and a JSON identifier→metadata map.
package file

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

const (
	vectorsFile  = "vectors.bin"
	metadataFile = "metadata.json"
)

// Index is a persistent brute-force cosine-similarity index. Every mutation
// rewrites both files through a temp-file-then-rename swap, so readers never
// observe a half-written structure and a crash leaves the previous state
// intact.
type Index struct {
	mu        sync.RWMutex
	dir       string
	dimension int
	closed    bool

	// ids and vectors are parallel arrays in insertion order; slot maps an
	// identifier to its position in them. metadata is keyed by identifier.
	ids      []string
	vectors  [][]float32
	slot     map[string]int
	metadata map[string]map[string]any
}

// Open creates or opens the index in dir. Opening a directory with no
// persisted structures creates them empty; opening existing structures never
// erases data. The two files must agree on the identifier set, otherwise the
// pair is considered corrupt and the open fails.
func Open(dir string, dimension int) (*Index, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: index directory cannot be empty", domain.ErrInvalidInput)
	}
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create index directory: %w", domain.ErrPersistence, err)
	}

	idx := &Index{
		dir:       dir,
		dimension: dimension,
		slot:      make(map[string]int),
		metadata:  make(map[string]map[string]any),
	}

	if err := idx.load(); err != nil {
		return nil, err
	}

	return idx, nil
}

// InsertBatch adds the records, overwriting any record with the same
// identifier. When a batch repeats an identifier the last occurrence wins.
// The new state is durably persisted before the in-memory state is swapped.
func (idx *Index) InsertBatch(_ context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("%w: record identifier cannot be empty", domain.ErrInvalidInput)
		}
		if len(rec.Vector) != idx.dimension {
			return fmt.Errorf("%w: record %q has dimension %d, index expects %d",
				domain.ErrDimensionMismatch, rec.ID, len(rec.Vector), idx.dimension)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return errors.New("vectorindex: index is closed")
	}

	ids, vectors, slot, metadata := idx.cloneState()

	for _, rec := range records {
		if pos, ok := slot[rec.ID]; ok {
			vectors[pos] = rec.Vector
		} else {
			slot[rec.ID] = len(ids)
			ids = append(ids, rec.ID)
			vectors = append(vectors, rec.Vector)
		}
		metadata[rec.ID] = rec.Metadata
	}

	if err := idx.persist(ids, vectors, metadata); err != nil {
		return err
	}

	idx.ids, idx.vectors, idx.slot, idx.metadata = ids, vectors, slot, metadata
	return nil
}

// Query scans every stored vector, keeps candidates whose metadata matches
// every key/value pair in filter, and returns the k highest cosine
// similarities. Equal scores keep insertion order.
func (idx *Index) Query(_ context.Context, vector []float32, k int, filter map[string]string) ([]domain.SimilarityResult, error) {
	if len(vector) != idx.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index expects %d",
			domain.ErrDimensionMismatch, len(vector), idx.dimension)
	}
	if k <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, errors.New("vectorindex: index is closed")
	}

	results := make([]domain.SimilarityResult, 0, len(idx.ids))
	for i, id := range idx.ids {
		meta := idx.metadata[id]
		if !matchesFilter(meta, filter) {
			continue
		}
		results = append(results, domain.SimilarityResult{
			ID:       id,
			Score:    cosineSimilarity(vector, idx.vectors[i]),
			Metadata: meta,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// DeleteDocument removes every record whose identifier belongs to the
// document, returning how many were removed. An unknown document removes
// nothing and is not an error.
func (idx *Index) DeleteDocument(_ context.Context, docID string) (int, error) {
	if docID == "" {
		return 0, fmt.Errorf("%w: document identifier cannot be empty", domain.ErrInvalidInput)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return 0, errors.New("vectorindex: index is closed")
	}

	prefix := docID + ":"

	ids := make([]string, 0, len(idx.ids))
	vectors := make([][]float32, 0, len(idx.vectors))
	slot := make(map[string]int, len(idx.slot))
	metadata := make(map[string]map[string]any, len(idx.metadata))

	removed := 0
	for i, id := range idx.ids {
		if strings.HasPrefix(id, prefix) {
			removed++
			continue
		}
		slot[id] = len(ids)
		ids = append(ids, id)
		vectors = append(vectors, idx.vectors[i])
		metadata[id] = idx.metadata[id]
	}

	if removed == 0 {
		return 0, nil
	}

	if err := idx.persist(ids, vectors, metadata); err != nil {
		return 0, err
	}

	idx.ids, idx.vectors, idx.slot, idx.metadata = ids, vectors, slot, metadata
	return removed, nil
}

// Len returns the number of stored records.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// Close releases resources. All state is already durable, so Close only
// blocks further use.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.closed = true
	return nil
}

// cloneState shallow-copies the mutable structures so a failed persist leaves
// the published state untouched.
func (idx *Index) cloneState() ([]string, [][]float32, map[string]int, map[string]map[string]any) {
	ids := make([]string, len(idx.ids))
	copy(ids, idx.ids)

	vectors := make([][]float32, len(idx.vectors))
	copy(vectors, idx.vectors)

	slot := make(map[string]int, len(idx.slot))
	for k, v := range idx.slot {
		slot[k] = v
	}

	metadata := make(map[string]map[string]any, len(idx.metadata))
	for k, v := range idx.metadata {
		metadata[k] = v
	}

	return ids, vectors, slot, metadata
}

// matchesFilter reports whether meta satisfies every key/value pair in
// filter. Metadata values survive a JSON roundtrip (numbers come back as
// float64), so comparison goes through their string form.
func matchesFilter(meta map[string]any, filter map[string]string) bool {
	for key, want := range filter {
		got, ok := meta[key]
		if !ok || fmt.Sprint(got) != want {
			return false
		}
	}
	return true
}

// cosineSimilarity computes the cosine of the angle between a and b,
// accumulating in float64. Either vector having zero norm yields 0.0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// persist durably writes both structures. Each file is written to a uniquely
// named temp file in the same directory and renamed into place; the metadata
// map lands first so a crash between the two renames leaves metadata for
// vectors that are one generation behind, never vectors without metadata.
func (idx *Index) persist(ids []string, vectors [][]float32, metadata map[string]map[string]any) error {
	if err := idx.writeMetadata(metadata); err != nil {
		return fmt.Errorf("%w: write metadata: %w", domain.ErrPersistence, err)
	}
	if err := idx.writeVectors(ids, vectors); err != nil {
		return fmt.Errorf("%w: write vectors: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (idx *Index) writeMetadata(metadata map[string]map[string]any) error {
	data, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	return idx.atomicWrite(metadataFile, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeVectors serialises the parallel arrays as little-endian binary:
// record count, dimension, then per record the identifier length, identifier
// bytes and the raw float32 components.
func (idx *Index) writeVectors(ids []string, vectors [][]float32) error {
	return idx.atomicWrite(vectorsFile, func(w io.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(ids))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(idx.dimension)); err != nil {
			return err
		}
		for i, id := range ids {
			if err := binary.Write(w, binary.LittleEndian, uint32(len(id))); err != nil {
				return err
			}
			if _, err := w.Write([]byte(id)); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, vectors[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// atomicWrite streams content into a temp file beside the target and renames
// it into place once synced.
func (idx *Index) atomicWrite(name string, write func(io.Writer) error) error {
	target := filepath.Join(idx.dir, name)
	tmp := target + ".tmp-" + uuid.NewString()

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// load reads both persisted structures. Missing files mean a fresh index.
func (idx *Index) load() error {
	metadata, metaExists, err := idx.readMetadata()
	if err != nil {
		return err
	}
	ids, vectors, vecExists, err := idx.readVectors()
	if err != nil {
		return err
	}

	if !metaExists && !vecExists {
		return nil
	}

	// The pair must agree on the identifier set; anything else means a
	// crash landed between generations or a file was tampered with.
	if len(ids) != len(metadata) {
		return fmt.Errorf("%w: vector and metadata structures disagree (%d vectors, %d metadata entries)",
			domain.ErrPersistence, len(ids), len(metadata))
	}
	for _, id := range ids {
		if _, ok := metadata[id]; !ok {
			return fmt.Errorf("%w: vector %q has no metadata entry", domain.ErrPersistence, id)
		}
	}

	idx.ids = ids
	idx.vectors = vectors
	idx.metadata = metadata
	idx.slot = make(map[string]int, len(ids))
	for i, id := range ids {
		idx.slot[id] = i
	}
	return nil
}

func (idx *Index) readMetadata() (map[string]map[string]any, bool, error) {
	data, err := os.ReadFile(filepath.Join(idx.dir, metadataFile))
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]map[string]any), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read metadata: %w", domain.ErrPersistence, err)
	}

	metadata := make(map[string]map[string]any)
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, false, fmt.Errorf("%w: decode metadata: %w", domain.ErrPersistence, err)
	}
	return metadata, true, nil
}

func (idx *Index) readVectors() ([]string, [][]float32, bool, error) {
	f, err := os.Open(filepath.Join(idx.dir, vectorsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("%w: read vectors: %w", domain.ErrPersistence, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var count, dim uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, nil, false, fmt.Errorf("%w: decode vectors: %w", domain.ErrPersistence, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, nil, false, fmt.Errorf("%w: decode vectors: %w", domain.ErrPersistence, err)
	}
	if int(dim) != idx.dimension {
		return nil, nil, false, fmt.Errorf("%w: persisted dimension %d, index expects %d",
			domain.ErrDimensionMismatch, dim, idx.dimension)
	}

	ids := make([]string, 0, count)
	vectors := make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		var idLen uint32
		if err := binary.Read(r, binary.LittleEndian, &idLen); err != nil {
			return nil, nil, false, fmt.Errorf("%w: decode vectors: %w", domain.ErrPersistence, err)
		}
		idBytes := make([]byte, idLen)
		if _, err := io.ReadFull(r, idBytes); err != nil {
			return nil, nil, false, fmt.Errorf("%w: decode vectors: %w", domain.ErrPersistence, err)
		}
		vec := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, nil, false, fmt.Errorf("%w: decode vectors: %w", domain.ErrPersistence, err)
		}
		ids = append(ids, string(idBytes))
		vectors = append(vectors, vec)
	}

	return ids, vectors, true, nil
}
