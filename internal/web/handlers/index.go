package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kozaktomas/event-gallery/internal/gallery"
)

// IndexHandler handles photo indexing endpoints.
type IndexHandler struct {
	engine *gallery.Engine
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(engine *gallery.Engine) *IndexHandler {
	return &IndexHandler{engine: engine}
}

// IndexRequest is the body of POST /index.
type IndexRequest struct {
	EventID   string   `json:"event_id"`
	PhotoURLs []string `json:"photo_urls"`
}

// IndexResponse wraps the reconcile result with a status field.
type IndexResponse struct {
	Status string `json:"status"`
	gallery.EventIndexResult
}

// Index reconciles the submitted photo URLs into the event's index.
// Already-known URLs are skipped; per-photo processing failures are reported
// in-band and never abort the batch.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.EventID == "" {
		respondError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	log.Printf("indexing %d photos for event %s", len(req.PhotoURLs), sanitizeForLog(req.EventID))
	result := h.engine.Reconcile(r.Context(), req.EventID, req.PhotoURLs)

	respondJSON(w, http.StatusOK, IndexResponse{
		Status:           "success",
		EventIndexResult: result,
	})
}
