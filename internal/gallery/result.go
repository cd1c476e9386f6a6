package gallery

// EventIndexResult reports the outcome of one reconcile batch.
// Failures lists the URLs whose per-record processing failed; those URLs are
// not indexed and will be retried on the next reconcile.
type EventIndexResult struct {
	EventID       string   `json:"event_id"`
	IndexedPhotos int      `json:"indexed_photos"`
	TotalPhotos   int      `json:"total_photos"`
	Failures      []string `json:"failures"`
}

// Stats is a read-only snapshot of the store for status reporting.
type Stats struct {
	TotalRecords      int `json:"total_entries"`
	IndexedUniqueURLs int `json:"indexed_unique_photos"`
}
