package path

import (
	"math"
	"testing"

	"github.com/studybuddyai/studybuddy/internal/flashcards"
)

func testDeck(n int) []flashcards.Card {
	cards := make([]flashcards.Card, n)
	for i := range cards {
		cards[i] = flashcards.Card{Question: "q", Answer: "a"}
	}
	return cards
}

func fixedKnowledge(level float64) KnowledgeFunc {
	return func() float64 { return level }
}

func TestNew_OneNodePerCard(t *testing.T) {
	s := New(testDeck(7), fixedKnowledge(0.5))
	if s.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", s.Len())
	}
	if s.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", s.Cursor())
	}
	node := s.Node(0)
	if node.Topic != "Topic 1" || node.Difficulty != 0.5 || node.EstimatedMinutes != 5 {
		t.Errorf("unexpected node defaults: %+v", node)
	}
}

func TestNextItem_Exhausted(t *testing.T) {
	s := New(testDeck(1), fixedKnowledge(0.9))
	s.RecordOutcome(true) // rate 1.0 > 0.7, advances past the only node

	if _, ok := s.NextItem(); ok {
		t.Error("NextItem on exhausted path should return false")
	}
}

func TestNextItem_RegressesWhenStruggling(t *testing.T) {
	s := New(testDeck(10), fixedKnowledge(0.3))
	s.cursor = 5

	if _, ok := s.NextItem(); !ok {
		t.Fatal("NextItem returned no item")
	}
	if s.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3 after regression", s.Cursor())
	}
}

func TestNextItem_RegressionFloorsAtZero(t *testing.T) {
	s := New(testDeck(10), fixedKnowledge(0.1))
	s.cursor = 1

	s.NextItem()
	if s.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", s.Cursor())
	}

	// At the start of the path there is nothing to regress to.
	s.NextItem()
	if s.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", s.Cursor())
	}
}

func TestRecordOutcome_AdvanceOnlyAboveThreshold(t *testing.T) {
	s := New(testDeck(3), fixedKnowledge(0.8))

	// Two wrong, one right: rate = 1/3 <= 0.7, node stays active.
	s.RecordOutcome(false)
	s.RecordOutcome(false)
	s.RecordOutcome(true)
	if s.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0 below threshold", s.Cursor())
	}
	if s.Node(0).Completed {
		t.Error("node completed below threshold")
	}

	// Keep answering correctly until the rate clears 0.7.
	for range 10 {
		s.RecordOutcome(true)
		if s.Node(0).Completed {
			break
		}
	}
	if !s.Node(0).Completed {
		t.Error("node should be completed")
	}
	if s.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1 after completion", s.Cursor())
	}
	if s.Completed() != 1 {
		t.Errorf("Completed() = %d, want 1", s.Completed())
	}
}

func TestRecordOutcome_RunningMeanConverges(t *testing.T) {
	s := New(testDeck(1), fixedKnowledge(0.8))
	for range 50 {
		s.RecordOutcome(false)
	}
	node := s.Node(0)
	if node.SuccessRate < 0 || node.SuccessRate > 1 {
		t.Fatalf("SuccessRate %f out of [0,1]", node.SuccessRate)
	}
	if math.Abs(node.SuccessRate) > 1e-9 {
		t.Errorf("SuccessRate = %f, want convergence to 0", node.SuccessRate)
	}
	if node.Attempts != 50 {
		t.Errorf("Attempts = %d, want 50", node.Attempts)
	}
}

func TestRecordOutcome_IncorrectNeverAdvances(t *testing.T) {
	s := New(testDeck(2), fixedKnowledge(0.8))
	for range 10 {
		s.RecordOutcome(true)
		if s.Cursor() > 0 {
			break
		}
	}
	cursor := s.Cursor()
	s.RecordOutcome(false)
	// An incorrect answer can lower the rate but never moves the cursor.
	if s.Cursor() != cursor {
		t.Errorf("Cursor moved on incorrect answer: %d -> %d", cursor, s.Cursor())
	}
}
