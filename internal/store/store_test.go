package store

import (
	"context"
	"testing"
	"time"

	"github.com/studybuddyai/studybuddy/internal/student"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProfileSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	// Missing profile returns nil without error.
	got, err := repo.Get(ctx, "alex")
	if err != nil {
		t.Fatalf("get missing profile: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for missing profile")
	}

	st := student.New("alex")
	st.Cognitive.RecordAnswer(true, "fractions")
	st.LearningGoals = []string{"pass the midterm"}

	if err := repo.Save(ctx, st); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	got, err = repo.Get(ctx, "alex")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got == nil {
		t.Fatal("expected profile after save")
	}
	if got.ID != "alex" {
		t.Errorf("ID = %q, want alex", got.ID)
	}
	if got.Cognitive.TotalCount != 1 || got.Cognitive.CorrectCount != 1 {
		t.Errorf("answer counts = %d/%d, want 1/1",
			got.Cognitive.CorrectCount, got.Cognitive.TotalCount)
	}
	if len(got.LearningGoals) != 1 || got.LearningGoals[0] != "pass the midterm" {
		t.Errorf("learning goals = %v", got.LearningGoals)
	}
}

func TestProfileSaveIsUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	st := student.New("sam")
	if err := repo.Save(ctx, st); err != nil {
		t.Fatalf("first save: %v", err)
	}

	st.SessionCount = 3
	if err := repo.Save(ctx, st); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Get(ctx, "sam")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", got.SessionCount)
	}

	ids, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 profile after upsert, got %d", len(ids))
	}
}

func TestProfileDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	if err := repo.Save(ctx, student.New("gone")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := repo.Get(ctx, "gone")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil after delete")
	}

	// Deleting again is not an error.
	if err := repo.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestSessionSaveAndHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"s1", "s2", "s3"} {
		sess := &Session{
			ID:             id,
			StudentID:      "alex",
			StartedAt:      base.Add(time.Duration(i) * time.Hour),
			TopicsCovered:  []string{"memory management"},
			QuestionsAsked: i + 1,
		}
		if err := repo.Save(ctx, sess); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	hist, err := repo.History(ctx, "alex", 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(hist))
	}
	// Most recent first.
	if hist[0].ID != "s3" || hist[1].ID != "s2" {
		t.Errorf("order = %s, %s; want s3, s2", hist[0].ID, hist[1].ID)
	}

	all, err := repo.History(ctx, "alex", 0)
	if err != nil {
		t.Fatalf("history unlimited: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}

	// Other students see nothing.
	other, err := repo.History(ctx, "sam", 0)
	if err != nil {
		t.Fatalf("history other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no sessions for sam, got %d", len(other))
	}
}

func TestSessionUpsertSetsEnd(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sess := &Session{ID: "s1", StudentID: "alex", StartedAt: start}
	if err := repo.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	end := start.Add(25 * time.Minute)
	sess.EndedAt = &end
	sess.DurationMinutes = 25
	sess.QuestionsAsked = 10
	sess.QuestionsCorrect = 7
	if err := repo.Save(ctx, sess); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(end) {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt, end)
	}
	if got.DurationMinutes != 25 {
		t.Errorf("DurationMinutes = %v, want 25", got.DurationMinutes)
	}
}

func TestEventAppend(t *testing.T) {
	s := openTestStore(t)
	events, err := s.Events()
	if err != nil {
		t.Fatalf("events repo: %v", err)
	}
	ctx := context.Background()

	for range 3 {
		err := events.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock",
			Model:    "mock",
			Purpose:  "judge",
			Success:  true,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := s.Client().LLMRequestEvent.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 events, got %d", n)
	}
}

func TestEventQuery(t *testing.T) {
	s := openTestStore(t)
	events, err := s.Events()
	if err != nil {
		t.Fatalf("events repo: %v", err)
	}
	ctx := context.Background()

	for _, purpose := range []string{"tutor", "judge", "tutor"} {
		err := events.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      purpose,
			InputTokens:  10,
			OutputTokens: 5,
			Success:      true,
			RequestBody:  "prompt",
			ResponseBody: "reply",
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := events.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	// Most recent first.
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d", all[0].Sequence, all[1].Sequence)
	}

	judged, err := events.QueryLLMEvents(ctx, QueryOpts{Purpose: "judge"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(judged) != 1 || judged[0].Purpose != "judge" {
		t.Fatalf("purpose filter = %+v", judged)
	}

	limited, err := events.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit = %d events", len(limited))
	}

	got, err := events.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "prompt" || got.ResponseBody != "reply" {
		t.Fatalf("event = %+v", got)
	}

	missing, err := events.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}
