// Package gallery implements the event photo index engine: reconciling the
// metadata store against the authoritative bucket listing, answering match
// queries through the configured strategy, and issuing download URLs.
package gallery

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kozaktomas/event-gallery/internal/constants"
	"github.com/kozaktomas/event-gallery/internal/match"
	"github.com/kozaktomas/event-gallery/internal/storage"
	"github.com/kozaktomas/event-gallery/internal/store"
)

// ObjectGateway is the narrow object-store interface the engine consumes.
// The store is the source of truth for what is indexed; the gateway is the
// source of truth for what exists.
type ObjectGateway interface {
	ListObjects(ctx context.Context, prefix string) ([]string, error)
	PublicURL(object string) string
	SignedURL(ctx context.Context, object, filename string) (string, error)
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Bucket() string
}

// Enricher runs per-record processing during reconciliation. The embedding
// variant uses it to attach face embeddings; passthrough mode runs without
// one. An Enricher error fails only that record's URL, never the batch.
type Enricher interface {
	Enrich(ctx context.Context, rec *store.PhotoRecord) error
}

// indexRebuilder is implemented by matchers that maintain a search index
// over store records.
type indexRebuilder interface {
	RebuildIndex()
}

// Engine owns the photo metadata store. The store itself is unsynchronized,
// so every store access goes through the engine's lock: mutations take the
// write lock, match and status reads take the read lock. The lock is never
// held across enrichment network calls.
type Engine struct {
	mu       sync.RWMutex
	store    *store.Store
	gateway  ObjectGateway
	matcher  match.Matcher
	enricher Enricher
}

// New creates the engine. enricher may be nil (passthrough mode).
func New(st *store.Store, gw ObjectGateway, m match.Matcher, enricher Enricher) *Engine {
	return &Engine{
		store:    st,
		gateway:  gw,
		matcher:  m,
		enricher: enricher,
	}
}

// Reconcile indexes every URL in photoURLs that is not already known for the
// event. URLs are compared by exact string match. The store is persisted
// once per batch; a failed save is logged and reported to nobody — the
// in-memory state stays valid and the next batch retries the write.
//
// Enrichment runs between a read-locked snapshot of the known URLs and the
// write-locked insert, so one event's slow photo downloads never block
// queries or other events' batches. URLs that slip in through a concurrent
// batch are re-checked before the insert.
func (e *Engine) Reconcile(ctx context.Context, eventID string, photoURLs []string) EventIndexResult {
	result := EventIndexResult{
		EventID:     eventID,
		TotalPhotos: len(photoURLs),
		Failures:    []string{},
	}

	e.mu.RLock()
	known := make(map[string]struct{})
	for rec := range e.store.ByEvent(eventID) {
		known[rec.PhotoURL] = struct{}{}
	}
	e.mu.RUnlock()

	var fresh []store.PhotoRecord
	for _, photoURL := range photoURLs {
		if photoURL == "" {
			continue
		}
		if _, ok := known[photoURL]; ok {
			continue
		}

		rec := store.PhotoRecord{
			PhotoURL: photoURL,
			EventID:  eventID,
			Indexed:  true,
		}
		if e.enricher != nil {
			if err := e.enricher.Enrich(ctx, &rec); err != nil {
				log.Printf("failed to process photo %s: %v", photoURL, err)
				result.Failures = append(result.Failures, photoURL)
				continue
			}
		}

		fresh = append(fresh, rec)
		known[photoURL] = struct{}{}
	}

	if len(fresh) == 0 {
		return result
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current := make(map[string]struct{})
	for rec := range e.store.ByEvent(eventID) {
		current[rec.PhotoURL] = struct{}{}
	}

	added := false
	for _, rec := range fresh {
		if _, ok := current[rec.PhotoURL]; ok {
			continue
		}
		e.store.Put(rec)
		current[rec.PhotoURL] = struct{}{}
		result.IndexedPhotos++
		added = true
	}

	if added {
		if err := e.store.Save(); err != nil {
			log.Printf("failed to save photo index: %v", err)
		}
		if r, ok := e.matcher.(indexRebuilder); ok {
			r.RebuildIndex()
		}
	}

	return result
}

// Match answers a probe query through the configured matching strategy.
// Strategies read the store, so the read lock covers the whole call.
func (e *Engine) Match(ctx context.Context, probe []byte, eventID string) (match.Result, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.matcher.Match(ctx, probe, eventID)
}

// ListPhotos returns the public URLs of the photos currently in the bucket
// under the event's prefix. This bypasses the store: the gateway listing is
// always authoritative.
func (e *Engine) ListPhotos(ctx context.Context, eventID string) ([]string, error) {
	objects, err := e.gateway.ListObjects(ctx, eventID+"/")
	if err != nil {
		return nil, fmt.Errorf("listing photos for event %s: %w", eventID, err)
	}

	urls := []string{}
	for _, obj := range objects {
		if !isImage(obj) {
			continue
		}
		urls = append(urls, e.gateway.PublicURL(obj))
	}
	return urls, nil
}

// DownloadURL converts a stored public photo URL into a short-lived signed
// URL with attachment disposition. A bucket mismatch in the URL is logged
// and the configured bucket is used; the configured bucket is authoritative.
func (e *Engine) DownloadURL(ctx context.Context, photoURL string) (string, error) {
	bucket, object, err := storage.ParsePhotoURL(photoURL)
	if err != nil {
		return "", err
	}

	if bucket != e.gateway.Bucket() {
		log.Printf("bucket in URL (%s) does not match configured bucket (%s), using configured bucket",
			bucket, e.gateway.Bucket())
	}

	return e.gateway.SignedURL(ctx, object, path.Base(object))
}

// UploadPhoto stores a new photo under the event's prefix and returns its
// public URL. A random prefix keeps same-named uploads from clobbering each
// other.
func (e *Engine) UploadPhoto(ctx context.Context, eventID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s-%s", eventID, uuid.NewString(), path.Base(filename))
	if err := e.gateway.Upload(ctx, key, reader, size, contentType); err != nil {
		return "", fmt.Errorf("uploading photo: %w", err)
	}
	return e.gateway.PublicURL(key), nil
}

// Reset clears the store and its durable state.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Clear(); err != nil {
		return fmt.Errorf("clearing photo index: %w", err)
	}
	if r, ok := e.matcher.(indexRebuilder); ok {
		r.RebuildIndex()
	}
	return nil
}

// Stats returns a snapshot of the store for status reporting.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Stats{
		TotalRecords:      e.store.Len(),
		IndexedUniqueURLs: e.store.CountUniqueURLs(),
	}
}

// isImage reports whether the object name has a known photo extension.
func isImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range constants.ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
