package cmd

import (
	"fmt"

	"github.com/kozaktomas/event-gallery/internal/config"
	"github.com/kozaktomas/event-gallery/internal/fingerprint"
	"github.com/kozaktomas/event-gallery/internal/gallery"
	"github.com/kozaktomas/event-gallery/internal/match"
	"github.com/kozaktomas/event-gallery/internal/storage"
	"github.com/kozaktomas/event-gallery/internal/store"
)

// buildEngine loads the metadata store, connects the object store gateway
// and assembles the engine with the configured matching strategy.
func buildEngine(cfg *config.Config) (*gallery.Engine, error) {
	st := store.New(cfg.Store.MetadataPath)
	if err := st.Load(); err != nil {
		return nil, fmt.Errorf("loading photo index: %w", err)
	}
	fmt.Printf("Loaded photo index with %d records\n", st.Len())

	gw, err := storage.NewMinio(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initializing object storage: %w", err)
	}

	var (
		matcher  match.Matcher
		enricher gallery.Enricher
	)
	switch cfg.Matcher.Mode {
	case config.ModeEmbedding:
		faces := fingerprint.NewClient(cfg.Embedding.URL)
		matcher = match.NewEmbedding(st, faces, cfg.Matcher.DistanceThreshold, cfg.Matcher.SearchLimit)
		enricher = match.NewIndexer(faces)
		fmt.Printf("Face matching enabled (embedding service: %s)\n", cfg.Embedding.URL)
	case config.ModePassthrough:
		matcher = match.NewPassthrough(st)
		fmt.Println("Face matching disabled, using passthrough strategy")
	default:
		return nil, fmt.Errorf("unknown matcher mode %q", cfg.Matcher.Mode)
	}

	return gallery.New(st, gw, matcher, enricher), nil
}
