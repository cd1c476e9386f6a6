package match

import (
	"context"

	"github.com/kozaktomas/event-gallery/internal/store"
)

const passthroughNote = "AI face matching is currently disabled. All event photos are shown."

// Passthrough is the stand-in strategy used while face matching is disabled:
// it returns every indexed photo for the event, unscored.
type Passthrough struct {
	store *store.Store
}

// NewPassthrough creates a passthrough matcher reading from the given store.
func NewPassthrough(st *store.Store) *Passthrough {
	return &Passthrough{store: st}
}

// Match validates the probe and returns all photo URLs known for the event
// (or globally when eventID is empty), in ascending record-id order.
func (p *Passthrough) Match(_ context.Context, probe []byte, eventID string) (Result, error) {
	if len(probe) == 0 {
		return Result{}, ErrInvalidInput
	}

	records := p.store.All()
	if eventID != "" {
		records = p.store.ByEvent(eventID)
	}

	urls := []string{}
	for rec := range records {
		urls = append(urls, rec.PhotoURL)
	}

	if len(urls) == 0 {
		return Result{
			Status:           StatusNoIndexedPhotos,
			MatchedPhotos:    []string{},
			SimilarityScores: []float64{},
			Note:             "No photos indexed. Use /list-photos to get photos directly from storage.",
		}, nil
	}

	return Result{
		Status:           StatusAIDisabled,
		MatchedPhotos:    urls,
		SimilarityScores: []float64{},
		Note:             passthroughNote,
	}, nil
}
