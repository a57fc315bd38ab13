// Package path implements the adaptive learning path: an ordered sequence of
// study nodes with a cursor that advances on mastery and regresses when the
// student's overall knowledge drops.
package path

import (
	"fmt"

	"github.com/studybuddyai/studybuddy/internal/flashcards"
)

// Node is one schedulable unit of study content with its own mastery
// tracking.
type Node struct {
	Topic            string            `json:"topic"`
	Difficulty       float64           `json:"difficulty"`
	EstimatedMinutes int               `json:"estimated_minutes"`
	Items            []flashcards.Card `json:"items"`
	Completed        bool              `json:"completed"`
	Attempts         int               `json:"attempts"`
	SuccessRate      float64           `json:"success_rate"`
}

// Node construction defaults: every card becomes one medium-difficulty node
// in deck order.
const (
	defaultDifficulty       = 0.5
	defaultEstimatedMinutes = 5
)

// regressionThreshold is the knowledge level below which the scheduler
// re-surfaces earlier material.
const regressionThreshold = 0.4

// completionThreshold is the success rate a node must exceed on a correct
// answer before the cursor advances past it.
const completionThreshold = 0.7

// KnowledgeFunc reports the student's current overall knowledge level.
// The scheduler reads it on every NextItem call so regression tracks the
// live student model rather than a snapshot.
type KnowledgeFunc func() float64

// Scheduler orders study nodes and moves a cursor over them based on
// performance. It is not safe for concurrent use; the worker serializes
// all access.
type Scheduler struct {
	nodes     []Node
	cursor    int
	knowledge KnowledgeFunc
}

// New builds a scheduler with one node per card, in deck order.
func New(cards []flashcards.Card, knowledge KnowledgeFunc) *Scheduler {
	nodes := make([]Node, len(cards))
	for i, card := range cards {
		nodes[i] = Node{
			Topic:            topicName(i),
			Difficulty:       defaultDifficulty,
			EstimatedMinutes: defaultEstimatedMinutes,
			Items:            []flashcards.Card{card},
		}
	}
	return &Scheduler{nodes: nodes, knowledge: knowledge}
}

// Len returns the number of nodes in the path.
func (s *Scheduler) Len() int { return len(s.nodes) }

// Cursor returns the current node index. Equal to Len when the path is
// exhausted.
func (s *Scheduler) Cursor() int { return s.cursor }

// Node returns the node at index i.
func (s *Scheduler) Node(i int) Node { return s.nodes[i] }

// NextItem returns the next card to study, or false when the path is
// exhausted. When the student's knowledge has dropped below the regression
// threshold the cursor first steps back two nodes to re-surface earlier
// material.
func (s *Scheduler) NextItem() (flashcards.Card, bool) {
	if s.cursor >= len(s.nodes) {
		return flashcards.Card{}, false
	}

	if s.knowledge() < regressionThreshold && s.cursor > 0 {
		s.cursor = max(0, s.cursor-2)
	}

	node := s.nodes[s.cursor]
	if len(node.Items) == 0 {
		return flashcards.Card{}, false
	}
	return node.Items[0], true
}

// RecordOutcome folds a graded answer into the current node's running
// success rate. A correct answer that lifts the rate above the completion
// threshold marks the node completed and advances the cursor by one.
func (s *Scheduler) RecordOutcome(correct bool) {
	if s.cursor >= len(s.nodes) {
		return
	}

	node := &s.nodes[s.cursor]
	node.Attempts++

	outcome := 0.0
	if correct {
		outcome = 1.0
	}
	node.SuccessRate = (node.SuccessRate*float64(node.Attempts-1) + outcome) / float64(node.Attempts)

	if correct && node.SuccessRate > completionThreshold {
		node.Completed = true
		s.cursor++
	}
}

// Completed returns how many nodes have been completed so far.
func (s *Scheduler) Completed() int {
	n := 0
	for _, node := range s.nodes {
		if node.Completed {
			n++
		}
	}
	return n
}

func topicName(i int) string {
	return fmt.Sprintf("Topic %d", i+1)
}
