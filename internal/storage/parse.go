package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidReference marks a photo URL that does not decompose into a
// bucket segment followed by a non-empty object path.
var ErrInvalidReference = errors.New("invalid photo reference")

// ParsePhotoURL splits a public photo URL of the form
// https://<host>/<bucket>/<object path> into its bucket and object path.
func ParsePhotoURL(raw string) (bucket, object string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}

	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	return parts[0], parts[1], nil
}
