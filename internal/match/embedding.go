package match

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/kozaktomas/event-gallery/internal/fingerprint"
	"github.com/kozaktomas/event-gallery/internal/store"
)

// FaceEmbedder extracts face embeddings from image bytes. Implemented by
// fingerprint.Client; tests substitute a fake.
type FaceEmbedder interface {
	ComputeFaceEmbeddings(ctx context.Context, imageData []byte) (*fingerprint.FaceResponse, error)
}

// Embedding matches a probe selfie against indexed photos by face-embedding
// similarity. Candidates come from the HNSW index when the scope is global;
// event-scoped queries scan the store directly because the event filter
// would otherwise have to be applied post-search with an unknown cut-off.
type Embedding struct {
	store       *store.Store
	faces       FaceEmbedder
	index       *Index
	threshold   float64
	searchLimit int
}

// NewEmbedding creates the embedding matcher and builds its search index
// from the current store contents.
func NewEmbedding(st *store.Store, faces FaceEmbedder, threshold float64, searchLimit int) *Embedding {
	m := &Embedding{
		store:       st,
		faces:       faces,
		index:       NewIndex(),
		threshold:   threshold,
		searchLimit: searchLimit,
	}
	m.index.BuildFromStore(st)
	return m
}

// RebuildIndex refreshes the HNSW graph from the store. The engine calls
// this after each reconcile batch that added records.
func (m *Embedding) RebuildIndex() {
	m.index.BuildFromStore(m.store)
}

// candidate pairs a record with its distance to the probe face.
type candidate struct {
	rec      store.PhotoRecord
	distance float64
}

// Match extracts a face embedding from the probe and ranks indexed photos by
// cosine similarity, descending, ties broken by ascending record id.
func (m *Embedding) Match(ctx context.Context, probe []byte, eventID string) (Result, error) {
	if len(probe) == 0 {
		return Result{}, ErrInvalidInput
	}

	hasRecords := false
	records := m.store.All()
	if eventID != "" {
		records = m.store.ByEvent(eventID)
	}
	for range records {
		hasRecords = true
		break
	}
	if !hasRecords {
		return Result{
			Status:           StatusNoIndexedPhotos,
			MatchedPhotos:    []string{},
			SimilarityScores: []float64{},
		}, nil
	}

	resp, err := m.faces.ComputeFaceEmbeddings(ctx, probe)
	if err != nil {
		return Result{}, fmt.Errorf("extracting probe face embedding: %w", err)
	}
	if len(resp.Faces) == 0 {
		return Result{
			Status:           StatusNoFaceDetected,
			MatchedPhotos:    []string{},
			SimilarityScores: []float64{},
			Note:             "No face detected in the uploaded selfie.",
		}, nil
	}

	probeEmb := bestFace(resp.Faces).Embedding

	var candidates []candidate
	if eventID == "" && m.index.Count() > 0 {
		recs, dists := m.index.Search(probeEmb, m.searchLimit)
		for i := range recs {
			if dists[i] <= m.threshold {
				candidates = append(candidates, candidate{rec: recs[i], distance: dists[i]})
			}
		}
	} else {
		for rec := range records {
			if len(rec.Embedding) == 0 {
				continue
			}
			if d := CosineDistance(probeEmb, rec.Embedding); d <= m.threshold {
				candidates = append(candidates, candidate{rec: rec, distance: d})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		a, _ := strconv.ParseInt(candidates[i].rec.ID, 10, 64)
		b, _ := strconv.ParseInt(candidates[j].rec.ID, 10, 64)
		return a < b
	})

	urls := make([]string, 0, len(candidates))
	scores := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		urls = append(urls, c.rec.PhotoURL)
		scores = append(scores, 1-c.distance)
	}

	return Result{
		Status:           StatusMatched,
		MatchedPhotos:    urls,
		SimilarityScores: scores,
		FaceDetected:     true,
	}, nil
}

// bestFace picks the detection with the highest score.
func bestFace(faces []fingerprint.FaceDetection) fingerprint.FaceDetection {
	best := faces[0]
	for _, f := range faces[1:] {
		if f.DetScore > best.DetScore {
			best = f
		}
	}
	return best
}

// Indexer computes face embeddings for photos as they are reconciled into
// the store. It downloads each photo from its public URL and attaches the
// best detected face embedding to the record. Photos without faces stay
// indexed without an embedding; they are legitimate event photos that can
// never match a selfie.
type Indexer struct {
	faces  FaceEmbedder
	client *http.Client
}

// NewIndexer creates an indexer using the given embedding service client.
func NewIndexer(faces FaceEmbedder) *Indexer {
	return &Indexer{
		faces:  faces,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Enrich downloads the photo and attaches its face embedding. An error here
// counts as a per-URL reconcile failure and the record is not created.
func (ix *Indexer) Enrich(ctx context.Context, rec *store.PhotoRecord) error {
	data, err := ix.fetch(ctx, rec.PhotoURL)
	if err != nil {
		return fmt.Errorf("downloading photo: %w", err)
	}

	resp, err := ix.faces.ComputeFaceEmbeddings(ctx, data)
	if err != nil {
		return fmt.Errorf("computing face embeddings: %w", err)
	}

	if len(resp.Faces) > 0 {
		rec.Embedding = bestFace(resp.Faces).Embedding
	}
	return nil
}

func (ix *Indexer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := ix.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
