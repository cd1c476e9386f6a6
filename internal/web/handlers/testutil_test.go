package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kozaktomas/event-gallery/internal/gallery"
	"github.com/kozaktomas/event-gallery/internal/match"
	"github.com/kozaktomas/event-gallery/internal/store"
)

// fakeGateway is an in-memory object store for handler tests.
type fakeGateway struct {
	bucket   string
	objects  []string
	listErr  error
	signErr  error
	uploaded map[string][]byte
}

func newFakeGateway(objects ...string) *fakeGateway {
	return &fakeGateway{
		bucket:   "event-photos-demo",
		objects:  objects,
		uploaded: make(map[string][]byte),
	}
}

func (g *fakeGateway) ListObjects(_ context.Context, prefix string) ([]string, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	var out []string
	for _, obj := range g.objects {
		if strings.HasPrefix(obj, prefix) {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (g *fakeGateway) PublicURL(object string) string {
	return "https://storage.googleapis.com/" + g.bucket + "/" + object
}

func (g *fakeGateway) SignedURL(_ context.Context, object, filename string) (string, error) {
	if g.signErr != nil {
		return "", g.signErr
	}
	return fmt.Sprintf("https://signed.example/%s?filename=%s", object, filename), nil
}

func (g *fakeGateway) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	g.uploaded[key] = data
	g.objects = append(g.objects, key)
	return nil
}

func (g *fakeGateway) Bucket() string {
	return g.bucket
}

// newTestEngine builds an engine over a temp store with the passthrough
// matcher, which is what the handlers run against by default.
func newTestEngine(t *testing.T, gw gallery.ObjectGateway) *gallery.Engine {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "photo_index.json"))
	if err := st.Load(); err != nil {
		t.Fatalf("loading store: %v", err)
	}
	return gallery.New(st, gw, match.NewPassthrough(st), nil)
}

// multipartBody builds a multipart form with the given file parts and fields.
func multipartBody(t *testing.T, fileField string, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, data := range files {
		part, err := writer.CreateFormFile(fileField, name)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("writing form field: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
