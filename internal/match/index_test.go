package match

import (
	"testing"

	"github.com/kozaktomas/event-gallery/internal/store"
)

func TestIndex_BuildSkipsRecordsWithoutEmbeddings(t *testing.T) {
	st := newMatchStore(t)
	st.Put(store.PhotoRecord{PhotoURL: "https://example.com/b/evt/a.jpg", EventID: "evt", Embedding: []float32{1, 0}})
	st.Put(store.PhotoRecord{PhotoURL: "https://example.com/b/evt/b.jpg", EventID: "evt"}) // no face found

	ix := NewIndex()
	ix.BuildFromStore(st)

	if got := ix.Count(); got != 1 {
		t.Errorf("expected 1 indexed embedding, got %d", got)
	}
}

func TestIndex_SearchReturnsNearestFirst(t *testing.T) {
	st := newMatchStore(t)
	st.Put(store.PhotoRecord{PhotoURL: "https://example.com/b/evt/far.jpg", EventID: "evt", Embedding: []float32{0, 1, 0}})
	st.Put(store.PhotoRecord{PhotoURL: "https://example.com/b/evt/near.jpg", EventID: "evt", Embedding: []float32{1, 0, 0}})

	ix := NewIndex()
	ix.BuildFromStore(st)

	records, distances := ix.Search([]float32{1, 0, 0}, 10)
	if len(records) == 0 {
		t.Fatal("expected search results")
	}

	if records[0].PhotoURL != "https://example.com/b/evt/near.jpg" {
		t.Errorf("expected nearest record first, got %q", records[0].PhotoURL)
	}
	if distances[0] > 1e-6 {
		t.Errorf("expected near-zero distance for identical embedding, got %f", distances[0])
	}
}

func TestIndex_SearchOnEmptyIndex(t *testing.T) {
	ix := NewIndex()
	ix.BuildFromStore(newMatchStore(t))

	records, distances := ix.Search([]float32{1, 0}, 10)
	if records != nil || distances != nil {
		t.Errorf("expected nil results from empty index, got %v / %v", records, distances)
	}
}

func TestIndex_RebuildDropsClearedRecords(t *testing.T) {
	st := newMatchStore(t)
	st.Put(store.PhotoRecord{PhotoURL: "https://example.com/b/evt/a.jpg", EventID: "evt", Embedding: []float32{1, 0}})

	ix := NewIndex()
	ix.BuildFromStore(st)
	if ix.Count() != 1 {
		t.Fatalf("expected 1 embedding before clear, got %d", ix.Count())
	}

	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	ix.BuildFromStore(st)

	if ix.Count() != 0 {
		t.Errorf("expected empty index after rebuild from cleared store, got %d", ix.Count())
	}
}
