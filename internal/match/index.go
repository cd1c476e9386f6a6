package match

import (
	"strconv"
	"sync"

	"github.com/coder/hnsw"

	"github.com/kozaktomas/event-gallery/internal/store"
)

// hnswMaxNeighbors is the M parameter of the HNSW graph.
const hnswMaxNeighbors = 16

// Index wraps an HNSW graph over record embeddings for fast nearest-neighbor
// search. Nodes are keyed by the numeric record id. The graph is rebuilt from
// the store after each indexing batch; embeddings persist in the store
// itself, so the graph never touches disk.
type Index struct {
	mu      sync.RWMutex
	graph   *hnsw.Graph[int64]
	records map[int64]store.PhotoRecord
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		records: make(map[int64]store.PhotoRecord),
	}
}

// BuildFromStore rebuilds the graph from all records that carry an embedding.
// Records with non-numeric ids are skipped; Put never assigns those.
func (ix *Index) BuildFromStore(st *store.Store) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.graph = nil
	ix.records = make(map[int64]store.PhotoRecord)

	g := hnsw.NewGraph[int64]()
	g.M = hnswMaxNeighbors
	g.Ml = 1.0 / float64(hnswMaxNeighbors) // Standard HNSW formula
	g.Distance = hnsw.CosineDistance

	for rec := range st.All() {
		if len(rec.Embedding) == 0 {
			continue
		}
		id, err := strconv.ParseInt(rec.ID, 10, 64)
		if err != nil {
			continue
		}
		g.Add(hnsw.MakeNode(id, rec.Embedding))
		ix.records[id] = rec
	}

	if len(ix.records) > 0 {
		ix.graph = g
	}
}

// Search returns up to k records closest to the query embedding together
// with their cosine distances.
func (ix *Index) Search(query []float32, k int) ([]store.PhotoRecord, []float64) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.graph == nil {
		return nil, nil
	}

	neighbors := ix.graph.Search(query, k)
	records := make([]store.PhotoRecord, 0, len(neighbors))
	distances := make([]float64, 0, len(neighbors))
	for _, n := range neighbors {
		rec, ok := ix.records[n.Key]
		if !ok {
			continue
		}
		records = append(records, rec)
		distances = append(distances, CosineDistance(query, n.Value))
	}
	return records, distances
}

// Count returns the number of indexed embeddings.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}
