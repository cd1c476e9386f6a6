// Package match implements the pluggable matching strategy: given a probe
// image, which indexed photos show the same person. The engine and the web
// layer depend only on the Matcher interface; swapping the passthrough
// stand-in for the embedding matcher is a configuration decision.
package match

import (
	"context"
	"errors"
)

// ErrInvalidInput marks client errors: an empty or unreadable probe image.
var ErrInvalidInput = errors.New("invalid probe image")

// Status describes the outcome of a match call. A status other than
// StatusMatched is still a successful call, not an error.
type Status string

const (
	// StatusAIDisabled means the passthrough strategy answered: every
	// indexed photo is returned, unscored.
	StatusAIDisabled Status = "ai_disabled"

	// StatusNoIndexedPhotos means no records exist for the requested scope.
	StatusNoIndexedPhotos Status = "no_indexed_photos"

	// StatusNoFaceDetected means the probe contained no detectable face.
	StatusNoFaceDetected Status = "no_face_detected"

	// StatusMatched means the embedding strategy ranked real candidates.
	StatusMatched Status = "matched"
)

// Result is the answer to one match query. MatchedPhotos and
// SimilarityScores are parallel; SimilarityScores is empty when the strategy
// does not score (passthrough).
type Result struct {
	Status           Status    `json:"status"`
	MatchedPhotos    []string  `json:"matched_photos"`
	SimilarityScores []float64 `json:"similarity_scores"`
	FaceDetected     bool      `json:"face_detected"`
	Note             string    `json:"note,omitempty"`
}

// Matcher answers match queries against the photo index. An empty eventID
// widens the scope to all indexed photos.
type Matcher interface {
	Match(ctx context.Context, probe []byte, eventID string) (Result, error)
}
