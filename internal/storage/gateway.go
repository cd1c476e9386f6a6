// Package storage implements the object store gateway on top of any
// S3-compatible backend (GCS interop, MinIO locally). Switching providers is
// an endpoint/credential change, not a code change.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kozaktomas/event-gallery/internal/config"
	"github.com/kozaktomas/event-gallery/internal/constants"
)

// ErrSigningFailure marks a failed signed-URL request, typically missing
// signing credentials on the gateway side.
var ErrSigningFailure = errors.New("signing failure")

// Minio is the S3-compatible object store gateway.
type Minio struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinio creates the gateway from storage configuration. It does not touch
// the network; a missing bucket surfaces on the first listing call.
func NewMinio(cfg config.StorageConfig) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Minio{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

// Bucket returns the configured bucket name.
func (g *Minio) Bucket() string {
	return g.bucket
}

// ListObjects returns the object names under prefix, in listing order.
// Trailing-slash directory markers are excluded.
func (g *Minio) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for obj := range g.client.ListObjects(ctx, g.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing objects under %q: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// PublicURL returns the browser-accessible URL for an object. The base
// already carries the bucket, matching the
// https://storage.googleapis.com/<bucket>/<object> shape.
func (g *Minio) PublicURL(object string) string {
	return g.publicBase + "/" + object
}

// SignedURL returns a time-bounded GET URL with attachment disposition so
// browsers download the photo instead of opening it in a tab.
func (g *Minio) SignedURL(ctx context.Context, object, filename string) (string, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", filename))

	signed, err := g.client.PresignedGetObject(ctx, g.bucket, object, constants.SignedURLExpiry, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailure, err)
	}
	return signed.String(), nil
}

// Upload streams reader to the bucket under key. size must be the exact byte
// count (pass -1 only if the size is genuinely unknown).
func (g *Minio) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := g.client.PutObject(ctx, g.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}
