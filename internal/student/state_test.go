package student

import (
	"math"
	"testing"
	"time"
)

const epsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestKnowledgeEMA_SingleCorrectFromFresh(t *testing.T) {
	s := New("t")
	s.Cognitive.RecordAnswer(true, "general")

	// 0.7*0.5 + 0.3*1.0
	if !almostEqual(s.Cognitive.KnowledgeLevel, 0.65) {
		t.Errorf("KnowledgeLevel = %f, want 0.65", s.Cognitive.KnowledgeLevel)
	}
	if s.Cognitive.TotalCount != 1 || s.Cognitive.CorrectCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", s.Cognitive.CorrectCount, s.Cognitive.TotalCount)
	}
}

func TestKnowledgeEMA_BoundedUnderRepetition(t *testing.T) {
	s := New("t")
	for range 200 {
		s.Cognitive.RecordAnswer(true, "general")
	}
	if s.Cognitive.KnowledgeLevel < 0 || s.Cognitive.KnowledgeLevel > 1 {
		t.Fatalf("KnowledgeLevel %f out of [0,1]", s.Cognitive.KnowledgeLevel)
	}
	if s.Cognitive.KnowledgeLevel < 0.99 {
		t.Errorf("KnowledgeLevel = %f, want convergence toward 1", s.Cognitive.KnowledgeLevel)
	}

	for range 200 {
		s.Cognitive.RecordAnswer(false, "general")
	}
	if s.Cognitive.KnowledgeLevel < 0 || s.Cognitive.KnowledgeLevel > 1 {
		t.Fatalf("KnowledgeLevel %f out of [0,1]", s.Cognitive.KnowledgeLevel)
	}
}

func TestRecordAnswer_MasteryAndStruggle(t *testing.T) {
	s := New("t")

	s.Cognitive.RecordAnswer(false, "paging")
	if !contains(s.Cognitive.Struggling, "paging") {
		t.Error("incorrect answer should add topic to struggling")
	}

	// Push rolling accuracy above the mastery threshold, then answer the
	// topic correctly: it must move from struggling to mastered.
	for range 30 {
		s.Cognitive.RecordAnswer(true, "other")
	}
	s.Cognitive.RecordAnswer(true, "paging")
	if !contains(s.Cognitive.Mastered, "paging") {
		t.Error("topic above threshold should be mastered")
	}
	if contains(s.Cognitive.Struggling, "paging") {
		t.Error("mastered topic should leave the struggling set")
	}
}

func TestAffective_CorrectAndIncorrect(t *testing.T) {
	s := New("t")
	a := &s.Affective

	a.AfterCorrect()
	if !almostEqual(a.SelfEfficacy, 0.65) {
		t.Errorf("SelfEfficacy = %f, want 0.65", a.SelfEfficacy)
	}
	if !almostEqual(a.Motivation, 0.73) {
		t.Errorf("Motivation = %f, want 0.73", a.Motivation)
	}
	if !almostEqual(a.Frustration, 0.20) {
		t.Errorf("Frustration = %f, want 0.20", a.Frustration)
	}

	a.AfterIncorrect()
	if !almostEqual(a.Frustration, 0.28) {
		t.Errorf("Frustration = %f, want 0.28", a.Frustration)
	}

	// Motivation only drops once frustration exceeds 0.7.
	motivation := a.Motivation
	for range 10 {
		a.AfterIncorrect()
	}
	if a.Frustration <= 0.7 {
		t.Fatalf("Frustration = %f, expected above 0.7", a.Frustration)
	}
	if a.Motivation >= motivation {
		t.Error("sustained frustration should drag motivation down")
	}
}

func TestAffective_ClampedUnderExtremes(t *testing.T) {
	s := New("t")
	a := &s.Affective

	for range 100 {
		a.AfterCorrect()
		a.UpdateEngagement(500, 0)
	}
	for _, v := range []float64{a.Motivation, a.SelfEfficacy, a.Engagement, a.Frustration} {
		if v < 0 || v > 1 {
			t.Fatalf("metric %f out of [0,1]", v)
		}
	}

	for range 100 {
		a.AfterIncorrect()
		a.UpdateEngagement(1, 60)
	}
	for _, v := range []float64{a.Motivation, a.SelfEfficacy, a.Engagement, a.Frustration} {
		if v < 0 || v > 1 {
			t.Fatalf("metric %f out of [0,1]", v)
		}
	}
}

func TestUpdateEngagement(t *testing.T) {
	tests := []struct {
		name            string
		chars           int
		elapsed         float64
		wantEngagement  float64
		wantFrustration float64
	}{
		{"short reply drops engagement", 10, 5, 0.65, 0.3},
		{"long reply raises engagement", 120, 5, 0.75, 0.3},
		{"slow reply raises frustration", 120, 45, 0.75, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("t")
			s.Affective.UpdateEngagement(tt.chars, tt.elapsed)
			if !almostEqual(s.Affective.Engagement, tt.wantEngagement) {
				t.Errorf("Engagement = %f, want %f", s.Affective.Engagement, tt.wantEngagement)
			}
			if !almostEqual(s.Affective.Frustration, tt.wantFrustration) {
				t.Errorf("Frustration = %f, want %f", s.Affective.Frustration, tt.wantFrustration)
			}
			if s.Affective.ResponseCount != 1 {
				t.Errorf("ResponseCount = %d, want 1", s.Affective.ResponseCount)
			}
		})
	}
}

func TestStartSession(t *testing.T) {
	s := New("t")
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.StartSession(now)

	if s.SessionCount != 1 {
		t.Errorf("SessionCount = %d, want 1", s.SessionCount)
	}
	if s.LastSession == nil || !s.LastSession.Equal(now) {
		t.Errorf("LastSession = %v, want %v", s.LastSession, now)
	}
}
