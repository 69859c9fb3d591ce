package zoezi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"membo/internal/domain/setting"
)

func TestFetchClasses(t *testing.T) {
	var gotAPIKey, gotCustomerID, gotFrom, gotTo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("ApiKey")
		gotCustomerID = r.URL.Query().Get("CustomerId")
		gotFrom = r.URL.Query().Get("FromDate")
		gotTo = r.URL.Query().Get("ToDate")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"workouts": [
			{"id": 42, "name": "BJJ Fundamentals", "startTime": "2026-08-31 18:00:00", "maxAttendees": 16},
			{"id": 43, "name": "Broken", "startTime": "not-a-time"},
			{"id": 44, "name": "Open Mat", "startTime": "2026-09-01 10:30:00"}
		]}`))
	}))
	defer server.Close()

	client := NewClient()
	client.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	cfg := setting.APIConfig{URL: server.URL, APIKey: "key-1", CustomerID: "cust-1"}
	classes, err := client.FetchClasses(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FetchClasses failed: %v", err)
	}

	if gotAPIKey != "key-1" || gotCustomerID != "cust-1" {
		t.Errorf("credentials = (%q, %q), want (key-1, cust-1)", gotAPIKey, gotCustomerID)
	}
	if gotFrom != "2026-08-30" || gotTo != "2026-09-29" {
		t.Errorf("window = [%s, %s], want [2026-08-30, 2026-09-29]", gotFrom, gotTo)
	}

	if len(classes) != 2 {
		t.Fatalf("got %d classes, want 2 (malformed row skipped)", len(classes))
	}
	first := classes[0]
	if first.ID != "zoezi-42" || first.Name != "BJJ Fundamentals" || first.Date != "2026-08-31" || first.Time != "18:00" || first.MaxSlots != 16 {
		t.Errorf("unexpected mapped class: %+v", first)
	}
	if classes[1].MaxSlots != 20 {
		t.Errorf("default max slots = %d, want 20", classes[1].MaxSlots)
	}
}

func TestFetchClasses_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient()
	cfg := setting.APIConfig{URL: server.URL, APIKey: "bad", CustomerID: "cust-1"}
	if _, err := client.FetchClasses(context.Background(), cfg); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
