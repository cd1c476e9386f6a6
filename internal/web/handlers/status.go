package handlers

import (
	"log"
	"net/http"

	"github.com/kozaktomas/event-gallery/internal/gallery"
)

// StatusHandler handles introspection and reset endpoints.
type StatusHandler struct {
	engine *gallery.Engine
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(engine *gallery.Engine) *StatusHandler {
	return &StatusHandler{engine: engine}
}

// Health reports liveness and the current index size.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"indexed_photos": h.engine.Stats().TotalRecords,
	})
}

// Status reports the indexing state of the store.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	respondJSON(w, http.StatusOK, map[string]any{
		"status":                "ready",
		"indexed_unique_photos": stats.IndexedUniqueURLs,
		"total_entries":         stats.TotalRecords,
	})
}

// Reset clears the photo index. Demo convenience, not an admin API.
func (h *StatusHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Reset(); err != nil {
		log.Printf("failed to reset index: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to reset index")
		return
	}

	log.Printf("photo index reset")
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
