package handlers

import (
	"log"
	"net/http"

	"github.com/kozaktomas/event-gallery/internal/constants"
	"github.com/kozaktomas/event-gallery/internal/gallery"
)

// UploadHandler handles photo upload endpoints.
type UploadHandler struct {
	engine *gallery.Engine
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(engine *gallery.Engine) *UploadHandler {
	return &UploadHandler{engine: engine}
}

// UploadResponse is the body of POST /upload-photo.
type UploadResponse struct {
	Status   string   `json:"status"`
	EventID  string   `json:"event_id"`
	Uploaded int      `json:"uploaded"`
	Photos   []string `json:"photos"`
}

// Upload stores multipart "photos" parts in the bucket under the event's
// prefix and returns their public URLs. The new photos become visible to
// /list-photos immediately and join the index on the next reconcile.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	eventID := r.FormValue("event_id")
	if eventID == "" {
		respondError(w, http.StatusBadRequest, "event_id is required")
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no photos provided")
		return
	}

	urls := []string{}
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to open uploaded file: "+fileHeader.Filename)
			return
		}

		url, err := h.engine.UploadPhoto(r.Context(), eventID, fileHeader.Filename,
			file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			log.Printf("failed to upload photo %s: %v", sanitizeForLog(fileHeader.Filename), err)
			respondError(w, http.StatusBadGateway, "failed to store photo: "+fileHeader.Filename)
			return
		}
		urls = append(urls, url)
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		Status:   "success",
		EventID:  eventID,
		Uploaded: len(urls),
		Photos:   urls,
	})
}
