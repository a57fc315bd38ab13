package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/studybuddyai/studybuddy/internal/llm"
	"github.com/studybuddyai/studybuddy/internal/student"
)

func TestHeuristicVerdict(t *testing.T) {
	tests := []struct {
		name     string
		feedback string
		want     Verdict
	}{
		{"positive", "Excellent! That's exactly how paging works.", VerdictCorrect},
		{"negative", "Not quite - a mutex protects a critical section.", VerdictIncorrect},
		{"mixed", "That's right in part, but actually the scheduler decides.", VerdictUnclear},
		{"neutral", "Let's move on to virtual memory.", VerdictUnclear},
		// "incorrect" contains "correct", so both indicator sets fire.
		{"incorrect-word", "Incorrect. The kernel handles that.", VerdictUnclear},
		{"empty", "", VerdictUnclear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeuristicVerdict(tt.feedback); got != tt.want {
				t.Errorf("HeuristicVerdict(%q) = %v, want %v", tt.feedback, got, tt.want)
			}
		})
	}
}

func TestJudgeEvaluate_UsesModelVerdict(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"verdict":"incorrect"}`)},
	)
	j := NewJudge(mock, nil)

	got := j.Evaluate(context.Background(), "What is a semaphore?", "a kind of file", "Not quite.")
	if got != VerdictIncorrect {
		t.Fatalf("verdict = %v, want incorrect", got)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", mock.CallCount())
	}
}

func TestJudgeEvaluate_FallsBackOnError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("provider down")},
	)
	j := NewJudge(mock, nil)

	got := j.Evaluate(context.Background(), "q", "a", "Perfect, well done!")
	if got != VerdictCorrect {
		t.Fatalf("verdict = %v, want correct from heuristic", got)
	}
}

func TestJudgeEvaluate_NilProviderUsesHeuristic(t *testing.T) {
	j := NewJudge(nil, nil)
	got := j.Evaluate(context.Background(), "q", "a", "That's wrong, let me clarify.")
	if got != VerdictIncorrect {
		t.Fatalf("verdict = %v, want incorrect", got)
	}
}

func TestVerdictBool(t *testing.T) {
	if b := VerdictCorrect.Bool(); b == nil || !*b {
		t.Error("correct should map to true")
	}
	if b := VerdictIncorrect.Bool(); b == nil || *b {
		t.Error("incorrect should map to false")
	}
	if b := VerdictUnclear.Bool(); b != nil {
		t.Error("unclear should map to nil")
	}
}

func TestApply(t *testing.T) {
	s := student.New("alex")
	before := s.Cognitive.KnowledgeLevel

	Apply(VerdictUnclear, s, nil)
	if s.Cognitive.TotalCount != 0 {
		t.Fatal("unclear verdict must not record an answer")
	}

	Apply(VerdictCorrect, s, nil)
	if s.Cognitive.TotalCount != 1 || s.Cognitive.CorrectCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", s.Cognitive.CorrectCount, s.Cognitive.TotalCount)
	}
	if s.Cognitive.KnowledgeLevel <= before {
		t.Error("knowledge should rise after a correct answer")
	}

	frustBefore := s.Affective.Frustration
	Apply(VerdictIncorrect, s, nil)
	if s.Affective.Frustration <= frustBefore {
		t.Error("frustration should rise after an incorrect answer")
	}
}
