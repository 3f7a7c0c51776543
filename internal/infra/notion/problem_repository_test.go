package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/problem"
)

func TestProblemRepository_ListByMemberAndDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.PageSize != matchPageSize {
			t.Errorf("page_size = %d, want %d", req.PageSize, matchPageSize)
		}
		// The filter must AND a submitter-contains with a date-equals clause.
		and, ok := req.Filter["and"].([]any)
		if !ok || len(and) != 2 {
			t.Errorf("expected a 2-clause and filter, got %+v", req.Filter)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "prob-1", "properties": map[string]any{
					"Name":      map[string]any{"title": []map[string]any{{"plain_text": "Week 10"}}},
					"Week":      map[string]any{"date": map[string]any{"start": "2024-03-05"}},
					"Submitter": map[string]any{"rich_text": []map[string]any{{"plain_text": "alice, bob"}}},
					"Status":    map[string]any{"select": map[string]any{"name": "Done"}},
				}},
			},
		})
	}))
	defer srv.Close()

	repo := NewProblemRepository(
		NewClient("k", testLogger()).WithBaseURL(srv.URL), "probs", testLogger())

	records, err := repo.ListByMemberAndDate(context.Background(), "alice", "2024-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID != "prob-1" || rec.Title != "Week 10" || rec.Date != "2024-03-05" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Status != problem.StatusDone {
		t.Errorf("status = %q, want Done", rec.Status)
	}
}

func TestProblemRepository_MarkDone(t *testing.T) {
	var patched bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/v1/pages/prob-1" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		var req updateRequest
		json.NewDecoder(r.Body).Decode(&req)
		if got := req.Properties[propStatus].SelectName(); got != "Done" {
			t.Errorf("status update = %q, want Done", got)
		}
		patched = true
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	repo := NewProblemRepository(
		NewClient("k", testLogger()).WithBaseURL(srv.URL), "probs", testLogger())
	if err := repo.MarkDone(context.Background(), "prob-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patched {
		t.Error("expected a PATCH call")
	}
}

func TestProblemRepository_ListRecentlyEdited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Filter["timestamp"] != "last_edited_time" {
			t.Errorf("expected last_edited_time filter, got %+v", req.Filter)
		}
		if len(req.Sorts) != 1 || req.Sorts[0].Timestamp != "last_edited_time" || req.Sorts[0].Direction != "ascending" {
			t.Errorf("sorts = %+v", req.Sorts)
		}
		if req.PageSize != 50 {
			t.Errorf("page_size = %d, want 50", req.PageSize)
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	}))
	defer srv.Close()

	repo := NewProblemRepository(
		NewClient("k", testLogger()).WithBaseURL(srv.URL), "probs", testLogger())
	since := time.Date(2024, 3, 5, 9, 0, 0, 0, civil.KST)
	if _, err := repo.ListRecentlyEdited(context.Background(), since, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
