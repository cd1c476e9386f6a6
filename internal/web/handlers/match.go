package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/kozaktomas/event-gallery/internal/constants"
	"github.com/kozaktomas/event-gallery/internal/gallery"
	"github.com/kozaktomas/event-gallery/internal/match"
)

// MatchHandler handles selfie matching.
type MatchHandler struct {
	engine *gallery.Engine
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(engine *gallery.Engine) *MatchHandler {
	return &MatchHandler{engine: engine}
}

// Match runs the uploaded selfie through the matching strategy. The probe
// comes as a multipart "selfie" part; event_id is an optional query
// parameter narrowing the scope.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, _, err := r.FormFile("selfie")
	if err != nil {
		respondError(w, http.StatusBadRequest, "selfie file is required")
		return
	}
	defer file.Close()

	probe, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read selfie file")
		return
	}

	eventID := r.URL.Query().Get("event_id")
	result, err := h.engine.Match(r.Context(), probe, eventID)
	if err != nil {
		if errors.Is(err, match.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, "invalid image file")
			return
		}
		log.Printf("match failed: %v", err)
		respondError(w, http.StatusBadGateway, "matching failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}
