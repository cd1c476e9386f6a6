package store

// PhotoRecord is one indexed photo reference for one event.
// PhotoURL and EventID are immutable once the record is created; the record
// id lives in the surrounding map key on disk and in the ID field in memory.
type PhotoRecord struct {
	ID        string    `json:"-"`
	PhotoURL  string    `json:"photo_url"`
	EventID   string    `json:"event_id"`
	Indexed   bool      `json:"indexed"`
	Embedding []float32 `json:"embedding,omitempty"`
}
