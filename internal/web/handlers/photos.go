package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/event-gallery/internal/gallery"
	"github.com/kozaktomas/event-gallery/internal/storage"
)

// PhotosHandler handles photo listing and download-URL endpoints.
type PhotosHandler struct {
	engine *gallery.Engine
}

// NewPhotosHandler creates a new photos handler.
func NewPhotosHandler(engine *gallery.Engine) *PhotosHandler {
	return &PhotosHandler{engine: engine}
}

// ListPhotosResponse is the body of GET /list-photos.
type ListPhotosResponse struct {
	Status  string   `json:"status"`
	EventID string   `json:"event_id"`
	Photos  []string `json:"photos"`
	Count   int      `json:"count"`
}

// List returns the photos currently in the bucket for the event. The listing
// is authoritative and bypasses the index.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		respondError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	photos, err := h.engine.ListPhotos(r.Context(), eventID)
	if err != nil {
		log.Printf("failed to list photos for event %s: %v", sanitizeForLog(eventID), err)
		respondError(w, http.StatusBadGateway, "failed to list photos: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ListPhotosResponse{
		Status:  "success",
		EventID: eventID,
		Photos:  photos,
		Count:   len(photos),
	})
}

// Download mints a short-lived signed URL with attachment disposition for a
// single stored photo.
func (h *PhotosHandler) Download(w http.ResponseWriter, r *http.Request) {
	photoURL := r.URL.Query().Get("photo_url")
	if photoURL == "" {
		respondError(w, http.StatusBadRequest, "photo_url is required")
		return
	}

	signedURL, err := h.engine.DownloadURL(r.Context(), photoURL)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidReference):
			respondError(w, http.StatusBadRequest, "invalid photo_url format")
		case errors.Is(err, storage.ErrSigningFailure):
			log.Printf("failed to sign download URL: %v", err)
			respondError(w, http.StatusBadGateway, "failed to generate signed download URL")
		default:
			log.Printf("unexpected error generating download URL: %v", err)
			respondError(w, http.StatusInternalServerError, "unexpected error generating download URL")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"signed_url": signedURL})
}
