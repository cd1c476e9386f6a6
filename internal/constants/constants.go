// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Download constants
const (
	// SignedURLExpiry is how long a signed download URL stays valid.
	SignedURLExpiry = 10 * time.Minute
)

// Upload constants
const (
	// MaxUploadSize is the maximum size of a multipart photo upload in bytes (32 MB)
	MaxUploadSize = 32 << 20
)

// ImageExtensions lists the object-name suffixes treated as photos when
// listing a bucket prefix. Anything else (videos, sidecar files) is skipped.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
