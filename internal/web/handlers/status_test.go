package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth(t *testing.T) {
	engine := newTestEngine(t, newFakeGateway())
	engine.Reconcile(context.Background(), "evt1", []string{
		"https://storage.googleapis.com/event-photos-demo/evt1/a.jpg",
	})
	handler := NewStatusHandler(engine)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()

	handler.Health(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp map[string]any
	parseJSONResponse(t, recorder, &resp)
	if resp["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", resp["status"])
	}
	if resp["indexed_photos"] != float64(1) {
		t.Errorf("expected 1 indexed photo, got %v", resp["indexed_photos"])
	}
}

func TestStatus(t *testing.T) {
	engine := newTestEngine(t, newFakeGateway())
	// Same URL under two events: 2 entries, 1 unique photo.
	url := "https://storage.googleapis.com/event-photos-demo/shared/a.jpg"
	engine.Reconcile(context.Background(), "evt1", []string{url})
	engine.Reconcile(context.Background(), "evt2", []string{url})

	handler := NewStatusHandler(engine)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	recorder := httptest.NewRecorder()

	handler.Status(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp map[string]any
	parseJSONResponse(t, recorder, &resp)
	if resp["status"] != "ready" {
		t.Errorf("expected ready, got %v", resp["status"])
	}
	if resp["total_entries"] != float64(2) {
		t.Errorf("expected 2 total entries, got %v", resp["total_entries"])
	}
	if resp["indexed_unique_photos"] != float64(1) {
		t.Errorf("expected 1 unique photo, got %v", resp["indexed_unique_photos"])
	}
}

func TestReset(t *testing.T) {
	engine := newTestEngine(t, newFakeGateway())
	engine.Reconcile(context.Background(), "evt1", []string{
		"https://storage.googleapis.com/event-photos-demo/evt1/a.jpg",
	})
	handler := NewStatusHandler(engine)

	req := httptest.NewRequest(http.MethodPost, "/demo/reset", nil)
	recorder := httptest.NewRecorder()

	handler.Reset(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)
	if resp["status"] != "reset" {
		t.Errorf("expected reset, got %q", resp["status"])
	}

	if stats := engine.Stats(); stats.TotalRecords != 0 {
		t.Errorf("expected empty store after reset, got %d records", stats.TotalRecords)
	}
}
