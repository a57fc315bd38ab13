package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/studybuddyai/studybuddy/internal/analysis"
	"github.com/studybuddyai/studybuddy/internal/llm"
	"github.com/studybuddyai/studybuddy/internal/store"
)

var testDeck = `[
  {"question": "What does fork() return in the child process?", "answer": "0"},
  {"question": "What system call replaces the process image?", "answer": "exec()"},
  {"question": "What signal does Ctrl+C send?", "answer": "SIGINT"}
]`

type fixture struct {
	handlers *Handlers
	registry *Registry
	cache    *ProfileCache
	store    *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "flashcards.json"), []byte(testDeck), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}

	cache := NewProfileCache(st.Profiles(), nil)
	h := NewHandlers(cache, st.Profiles(), st.Sessions(), analysis.NewJudge(nil, nil), dir, nil)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	return &fixture{handlers: h, registry: h.Registry(nil), cache: cache, store: st}
}

func (f *fixture) call(t *testing.T, tool string, args map[string]any) map[string]any {
	t.Helper()
	return f.registry.Dispatch(context.Background(), tool, args)
}

func requireSuccess(t *testing.T, result map[string]any) {
	t.Helper()
	if ok, _ := result["success"].(bool); !ok {
		t.Fatalf("tool failed: %v", result["error"])
	}
}

func TestCreateStudentProfile(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "create_student_profile", map[string]any{
		"student_id":     "alex",
		"learning_goals": []any{"learn virtual memory"},
	})
	requireSuccess(t, result)

	if result["student_id"] != "alex" {
		t.Errorf("student_id = %v", result["student_id"])
	}
	profile, ok := result["profile"].(map[string]any)
	if !ok {
		t.Fatal("expected profile object")
	}
	goals, _ := profile["learning_goals"].([]string)
	if len(goals) != 1 || goals[0] != "learn virtual memory" {
		// The doc round-trips through JSON, so check the []any form too.
		anyGoals, _ := profile["learning_goals"].([]any)
		if len(anyGoals) != 1 || anyGoals[0] != "learn virtual memory" {
			t.Errorf("learning_goals = %v", profile["learning_goals"])
		}
	}
}

func TestCreateStudentProfile_DefaultsGoal(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "create_student_profile", map[string]any{})
	requireSuccess(t, result)
	if result["student_id"] != "default" {
		t.Errorf("student_id = %v, want default", result["student_id"])
	}

	s, ok := f.cache.Lookup("default")
	if !ok {
		t.Fatal("profile should be cached")
	}
	if len(s.LearningGoals) != 1 || s.LearningGoals[0] != defaultLearningGoal {
		t.Errorf("goals = %v", s.LearningGoals)
	}
}

func TestGetStudentProfile_LoadOrDefault(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "get_student_profile", map[string]any{"student_id": "new-kid"})
	requireSuccess(t, result)

	profile := result["profile"].(map[string]any)
	cognitive := profile["cognitive"].(map[string]any)
	if kl := cognitive["knowledge_level"].(float64); kl != 0.5 {
		t.Errorf("fresh knowledge_level = %v, want 0.5", kl)
	}
}

func TestUpdateStudentProfile(t *testing.T) {
	f := newFixture(t)
	f.call(t, "create_student_profile", map[string]any{"student_id": "alex"})

	result := f.call(t, "update_student_profile", map[string]any{
		"student_id": "alex",
		"updates": map[string]any{
			"total_study_time": 42.5,
			"knowledge_level":  0.8,
		},
	})
	requireSuccess(t, result)

	s, _ := f.cache.Lookup("alex")
	if s.TotalStudyTime != 42.5 {
		t.Errorf("TotalStudyTime = %v", s.TotalStudyTime)
	}
	if s.Cognitive.KnowledgeLevel != 0.8 {
		t.Errorf("KnowledgeLevel = %v", s.Cognitive.KnowledgeLevel)
	}
}

func TestUpdateStudentProfile_RejectsUnknownField(t *testing.T) {
	f := newFixture(t)
	f.call(t, "create_student_profile", map[string]any{"student_id": "alex"})

	result := f.call(t, "update_student_profile", map[string]any{
		"student_id": "alex",
		"updates":    map[string]any{"superpowers": true},
	})
	if ok, _ := result["success"].(bool); ok {
		t.Fatal("unknown field must be rejected")
	}
}

func TestUpdateStudentProfile_RejectsWrongType(t *testing.T) {
	f := newFixture(t)
	f.call(t, "create_student_profile", map[string]any{"student_id": "alex"})

	result := f.call(t, "update_student_profile", map[string]any{
		"student_id": "alex",
		"updates":    map[string]any{"knowledge_level": "very high"},
	})
	if ok, _ := result["success"].(bool); ok {
		t.Fatal("wrong-typed value must be rejected")
	}
}

func TestUpdateStudentProfile_RequiresCache(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "update_student_profile", map[string]any{
		"student_id": "stranger",
		"updates":    map[string]any{"knowledge_level": 0.5},
	})
	if ok, _ := result["success"].(bool); ok {
		t.Fatal("update on uncached profile must fail")
	}
	if result["kind"] != "not_cached" {
		t.Errorf("kind = %v, want not_cached", result["kind"])
	}
}

func TestSaveStudentProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Not cached yet.
	result := f.call(t, "save_student_profile", map[string]any{"student_id": "alex"})
	if ok, _ := result["success"].(bool); ok {
		t.Fatal("save before load must fail")
	}

	f.call(t, "create_student_profile", map[string]any{"student_id": "alex"})
	result = f.call(t, "save_student_profile", map[string]any{"student_id": "alex"})
	requireSuccess(t, result)

	saved, err := f.store.Profiles().Get(ctx, "alex")
	if err != nil || saved == nil {
		t.Fatalf("profile not persisted: %v", err)
	}
}

func TestEvaluateAnswer_Heuristic(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "evaluate_answer", map[string]any{
		"question":    "What does fork() return in the child?",
		"user_answer": "zero",
		"ai_feedback": "Exactly right, well done!",
	})
	requireSuccess(t, result)
	if result["evaluation"] != "correct" {
		t.Errorf("evaluation = %v", result["evaluation"])
	}
	if result["is_correct"] != true {
		t.Errorf("is_correct = %v", result["is_correct"])
	}
}

func TestEvaluateAnswer_UnclearIsNull(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "evaluate_answer", map[string]any{
		"question":    "q",
		"user_answer": "a",
		"ai_feedback": "Let's talk about scheduling next.",
	})
	requireSuccess(t, result)
	if result["evaluation"] != "unclear" {
		t.Errorf("evaluation = %v", result["evaluation"])
	}
	if v, present := result["is_correct"]; !present || v != nil {
		t.Errorf("is_correct = %v, want null", v)
	}
}

func TestAnalyzeStudentResponse_UpdatesModel(t *testing.T) {
	f := newFixture(t)

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"verdict":"correct"}`)},
	)
	f.handlers.judge = analysis.NewJudge(mock, nil)

	result := f.call(t, "analyze_student_response", map[string]any{
		"student_id":  "alex",
		"question":    "What does fork() return in the child?",
		"user_input":  "zero",
		"ai_response": "Correct!",
	})
	requireSuccess(t, result)

	if result["total_answers"].(int) != 1 {
		t.Errorf("total_answers = %v", result["total_answers"])
	}
	if result["correct_answers"].(int) != 1 {
		t.Errorf("correct_answers = %v", result["correct_answers"])
	}
	if kl := result["knowledge_level"].(float64); kl <= 0.5 {
		t.Errorf("knowledge_level = %v, want > 0.5", kl)
	}
}

func TestUpdateLearningMetrics(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "update_learning_metrics", map[string]any{
		"student_id":    "alex",
		"response_text": "Can you show me a diagram of the process address space layout?",
		"response_time": 4.0,
	})
	requireSuccess(t, result)

	s, _ := f.cache.Lookup("alex")
	if s.Affective.Engagement <= 0.7 {
		t.Errorf("engagement = %v, want > default after a long reply", s.Affective.Engagement)
	}
	if s.LearningStyle.VisualVerbal >= 0.5 {
		t.Errorf("visual_verbal = %v, want nudged toward visual", s.LearningStyle.VisualVerbal)
	}
}

func TestGenerateStudyPrompt(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "generate_study_prompt", map[string]any{"student_id": "alex"})
	requireSuccess(t, result)

	prompt, _ := result["prompt"].(string)
	if prompt == "" {
		t.Fatal("expected non-empty prompt")
	}
	for _, want := range []string{"fork()", "intermediate"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestLearningPathFlow(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "initialize_learning_path", map[string]any{"student_id": "alex"})
	requireSuccess(t, result)
	if result["total_nodes"].(int) != 3 {
		t.Errorf("total_nodes = %v, want 3", result["total_nodes"])
	}

	result = f.call(t, "get_next_question", map[string]any{"student_id": "alex"})
	requireSuccess(t, result)
	if result["has_question"] != true {
		t.Fatal("expected a question")
	}
	q := result["question"].(map[string]any)
	if q["question"] != "What does fork() return in the child process?" {
		t.Errorf("question = %v", q["question"])
	}
}

func TestGetNextQuestion_InitializesPathLazily(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "get_next_question", map[string]any{"student_id": "alex"})
	requireSuccess(t, result)
	if result["has_question"] != true {
		t.Fatal("expected lazy path initialization to yield a question")
	}
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result := f.call(t, "start_session", map[string]any{"student_id": "alex"})
	requireSuccess(t, result)
	if result["session_count"].(int) != 1 {
		t.Errorf("session_count = %v", result["session_count"])
	}
	sessionID, _ := result["session_id"].(string)
	if sessionID == "" {
		t.Fatal("expected session_id")
	}

	result = f.call(t, "save_session", map[string]any{
		"student_id":         "alex",
		"duration_minutes":   25.0,
		"questions_answered": 10,
		"correct_answers":    7,
	})
	requireSuccess(t, result)
	if result["total_study_time"].(float64) != 25.0 {
		t.Errorf("total_study_time = %v", result["total_study_time"])
	}

	// The record and the profile must both be persisted.
	sess, err := f.store.Sessions().Get(ctx, sessionID)
	if err != nil || sess == nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if sess.QuestionsAsked != 10 || sess.QuestionsCorrect != 7 {
		t.Errorf("session counts = %d/%d", sess.QuestionsCorrect, sess.QuestionsAsked)
	}
	profile, err := f.store.Profiles().Get(ctx, "alex")
	if err != nil || profile == nil {
		t.Fatalf("profile not persisted: %v", err)
	}
	if profile.TotalStudyTime != 25.0 {
		t.Errorf("persisted TotalStudyTime = %v", profile.TotalStudyTime)
	}

	history := f.call(t, "get_session_history", map[string]any{"student_id": "alex"})
	requireSuccess(t, history)
	sessions, _ := history["sessions"].([]map[string]any)
	if len(sessions) != 1 {
		t.Fatalf("history length = %d, want 1", len(sessions))
	}
}

func TestGetLearningMetrics(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "get_learning_metrics", map[string]any{"student_id": "alex"})
	requireSuccess(t, result)

	metrics := result["metrics"].(map[string]any)
	if metrics["knowledge_level"].(float64) != 0.5 {
		t.Errorf("knowledge_level = %v", metrics["knowledge_level"])
	}
	if metrics["accuracy"].(float64) != 0 {
		t.Errorf("accuracy = %v, want 0 with no answers", metrics["accuracy"])
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	f := newFixture(t)

	result := f.call(t, "launch_rocket", map[string]any{})
	if ok, _ := result["success"].(bool); ok {
		t.Fatal("unknown tool must fail")
	}
	if result["kind"] != "unknown_tool" {
		t.Errorf("kind = %v", result["kind"])
	}
}

func TestDispatch_SchemaValidation(t *testing.T) {
	f := newFixture(t)

	// save_student_profile requires student_id.
	result := f.call(t, "save_student_profile", map[string]any{})
	if ok, _ := result["success"].(bool); ok {
		t.Fatal("missing required argument must fail validation")
	}
	if result["kind"] != "invalid_arguments" {
		t.Errorf("kind = %v", result["kind"])
	}
}

func TestDispatch_RecoversPanic(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(Tool{
		Name: "explode",
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			panic("boom")
		},
	})

	result := r.Dispatch(context.Background(), "explode", nil)
	if ok, _ := result["success"].(bool); ok {
		t.Fatal("panicking tool must report failure")
	}
	if result["kind"] != "panic" {
		t.Errorf("kind = %v", result["kind"])
	}
}

