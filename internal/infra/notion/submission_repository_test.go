package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"study_automation_bot/internal/domain/civil"
	"study_automation_bot/internal/domain/submission"
)

// upsertStore is a minimal in-memory document store: it answers natural-key
// queries from what has been created so far, so two identical upserts
// exercise the create-then-update sequence end to end.
type upsertStore struct {
	t       *testing.T
	pages   map[string]map[string]Property
	creates int
	updates int
	queries int
}

func newUpsertStore(t *testing.T) *upsertStore {
	return &upsertStore{t: t, pages: make(map[string]map[string]Property)}
}

func (s *upsertStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/databases/subs/query":
			s.queries++
			var results []map[string]any
			for id, props := range s.pages {
				results = append(results, map[string]any{"id": id, "properties": props})
			}
			json.NewEncoder(w).Encode(map[string]any{"results": results})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
			s.creates++
			var req createRequest
			json.NewDecoder(r.Body).Decode(&req)
			id := "page-1"
			s.pages[id] = req.Properties
			json.NewEncoder(w).Encode(createResponse{ID: id})
		case r.Method == http.MethodPatch && r.URL.Path == "/v1/pages/page-1":
			s.updates++
			w.Write([]byte("{}"))
		default:
			s.t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestSubmissionRepository_UpsertIsIdempotent(t *testing.T) {
	store := newUpsertStore(t)
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	repo := NewSubmissionRepository(
		NewClient("k", testLogger()).WithBaseURL(srv.URL), "subs", testLogger())

	rec := &submission.Record{
		Member:      "alice",
		Date:        "2024-03-05",
		Problem:     "two_sum",
		FilePath:    "study/alice/2024-03-05/two_sum.py",
		CommitTime:  time.Date(2024, 3, 5, 22, 10, 0, 0, civil.KST),
		OnTime:      true,
		LateMinutes: 0,
	}

	id, created, err := repo.Upsert(context.Background(), rec)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !created || id != "page-1" {
		t.Errorf("first upsert = (%q, %v), want (page-1, true)", id, created)
	}

	id, created, err = repo.Upsert(context.Background(), rec)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Error("second upsert must update, not create")
	}
	if id != "page-1" {
		t.Errorf("second upsert id = %q, want page-1", id)
	}

	if store.creates != 1 || store.updates != 1 {
		t.Errorf("creates=%d updates=%d, want 1 and 1", store.creates, store.updates)
	}
}

func TestSubmissionProps(t *testing.T) {
	rec := &submission.Record{
		Member:      "alice",
		Date:        "2024-03-05",
		Problem:     "two_sum",
		FilePath:    "study/alice/2024-03-05/two_sum.py",
		CommitTime:  time.Date(2024, 3, 5, 23, 45, 0, 0, civil.KST),
		OnTime:      false,
		LateMinutes: 45,
		Repo:        "group/study",
		Branch:      "refs/heads/main",
		SHA:         "abc123",
		PRURL:       "https://example.com/group/study/pull/7",
	}
	props := submissionProps(rec)

	if got := props[propName].PlainText(); got != "2024-03-05_alice" {
		t.Errorf("Name = %q", got)
	}
	if got := props[propWeek].DateStart(); got != "2024-03-05" {
		t.Errorf("Week = %q", got)
	}
	if got := props[propCommitTime].DateStart(); got != "2024-03-05T14:45:00Z" {
		t.Errorf("Commit Time = %q, want UTC ISO form", got)
	}
	if got := props[propStatus].SelectName(); got != statusSubmitted {
		t.Errorf("Status = %q", got)
	}
	if props[propOnTime].Checkbox == nil || *props[propOnTime].Checkbox {
		t.Error("On-time should be false")
	}
	if props[propLateMin].Number == nil || *props[propLateMin].Number != 45 {
		t.Error("Late (min) should be 45")
	}
	if got := props[propRepoBranch].PlainText(); got != "group/study / refs/heads/main" {
		t.Errorf("Repo/Branch = %q", got)
	}
	if got := props[propPRURL].URL; got != rec.PRURL {
		t.Errorf("PR URL = %q", got)
	}
}

func TestSubmissionProps_OptionalFieldsOmitted(t *testing.T) {
	rec := &submission.Record{
		Member:     "alice",
		Date:       "2024-03-05",
		FilePath:   "study/alice/2024-03-05/a.py",
		CommitTime: time.Now(),
		OnTime:     true,
	}
	props := submissionProps(rec)
	for _, name := range []string{propRepoBranch, propSHA, propPRURL} {
		if _, ok := props[name]; ok {
			t.Errorf("%s should be omitted when empty", name)
		}
	}
}

func TestSubmissionRepository_ListByDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Sorts) != 1 || req.Sorts[0].Property != propCommitTime || req.Sorts[0].Direction != "ascending" {
			t.Errorf("expected ascending commit-time sort, got %+v", req.Sorts)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "p1", "properties": map[string]any{
					"Submitter":   map[string]any{"rich_text": []map[string]any{{"plain_text": "alice"}}},
					"Problem":     map[string]any{"rich_text": []map[string]any{{"plain_text": "two_sum"}}},
					"Commit Time": map[string]any{"date": map[string]any{"start": "2024-03-05T13:10:00Z"}},
				}},
				{"id": "p2", "properties": map[string]any{
					"Submitter": map[string]any{"rich_text": []map[string]any{{"plain_text": "bob"}}},
				}},
			},
		})
	}))
	defer srv.Close()

	repo := NewSubmissionRepository(
		NewClient("k", testLogger()).WithBaseURL(srv.URL), "subs", testLogger())

	entries, err := repo.ListByDate(context.Background(), "2024-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Member != "alice" || entries[0].Problem != "two_sum" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if got := entries[0].CommitTime.Format("15:04"); got != "22:10" {
		t.Errorf("commit time in KST = %s, want 22:10", got)
	}
	if entries[1].Problem != "unassigned" {
		t.Errorf("missing problem should default to unassigned, got %q", entries[1].Problem)
	}
	if !entries[1].CommitTime.IsZero() {
		t.Error("missing commit time should stay zero")
	}
}
