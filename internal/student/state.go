package student

import (
	"time"
)

// Default values for a freshly created student. A new learner starts at a
// neutral midpoint so the first few answers move the estimates quickly.
const (
	DefaultKnowledgeLevel = 0.5
	DefaultMetacognition  = 0.5
	DefaultAttentionSpan  = 0.7
	DefaultMotivation     = 0.7
	DefaultSelfEfficacy   = 0.6
	DefaultEngagement     = 0.7
	DefaultFrustration    = 0.3
)

// knowledgeHistoryWeight is the EMA weight given to the existing knowledge
// estimate; the remainder goes to the latest global accuracy. A single answer
// can never move the estimate by more than 30% of the gap to 0 or 1.
const knowledgeHistoryWeight = 0.7

// masteryThreshold is the rolling accuracy above which a correctly answered
// topic counts as mastered.
const masteryThreshold = 0.75

// Cognitive tracks what the student knows and how they learn.
type Cognitive struct {
	KnowledgeLevel float64  `json:"knowledge_level"`
	Metacognition  float64  `json:"metacognition_score"`
	AttentionSpan  float64  `json:"attention_span"`
	CorrectCount   int      `json:"correct_answers"`
	TotalCount     int      `json:"total_answers"`
	Mastered       []string `json:"mastered_topics"`
	Struggling     []string `json:"struggling_topics"`
}

// RecordAnswer updates the cognitive model after a graded answer.
// On a correct answer the topic is promoted to mastered once its rolling
// accuracy clears the mastery threshold; on an incorrect answer the topic is
// added to the struggling set. The overall knowledge level is an exponential
// moving average over global accuracy.
func (c *Cognitive) RecordAnswer(correct bool, topic string) {
	c.TotalCount++
	if correct {
		c.CorrectCount++
		if !contains(c.Mastered, topic) && c.TopicAccuracy(topic) > masteryThreshold {
			c.Mastered = append(c.Mastered, topic)
			c.Struggling = remove(c.Struggling, topic)
		}
	} else if !contains(c.Struggling, topic) {
		c.Struggling = append(c.Struggling, topic)
	}

	c.KnowledgeLevel = clamp(knowledgeHistoryWeight*c.KnowledgeLevel + (1-knowledgeHistoryWeight)*c.Accuracy())
}

// Accuracy returns the global answer accuracy, 0 when nothing was answered.
func (c *Cognitive) Accuracy() float64 {
	return float64(c.CorrectCount) / float64(max(c.TotalCount, 1))
}

// TopicAccuracy estimates per-topic accuracy. Per-topic attempt counts are
// not tracked yet, so the global knowledge level stands in for every topic.
func (c *Cognitive) TopicAccuracy(topic string) float64 {
	return c.KnowledgeLevel
}

// Affective tracks the student's emotional state during study.
type Affective struct {
	Motivation    float64 `json:"motivation_level"`
	SelfEfficacy  float64 `json:"self_efficacy"`
	Engagement    float64 `json:"engagement_level"`
	Frustration   float64 `json:"frustration_level"`
	ResponseCount int     `json:"response_count"`
}

// AfterCorrect boosts confidence and relieves frustration.
func (a *Affective) AfterCorrect() {
	a.SelfEfficacy = clamp(a.SelfEfficacy + 0.05)
	a.Motivation = clamp(a.Motivation + 0.03)
	a.Frustration = clamp(a.Frustration - 0.10)
}

// AfterIncorrect raises frustration; sustained frustration drags motivation.
func (a *Affective) AfterIncorrect() {
	a.Frustration = clamp(a.Frustration + 0.08)
	if a.Frustration > 0.7 {
		a.Motivation = clamp(a.Motivation - 0.05)
	}
}

// UpdateEngagement adjusts engagement from interaction patterns.
// responseChars is the length of the student's reply in characters; word
// count is the better signal, so chars are converted at ~6 chars per word.
// elapsed is the response latency in seconds.
func (a *Affective) UpdateEngagement(responseChars int, elapsed float64) {
	a.ResponseCount++

	words := max(1, responseChars/6)
	if words < 3 {
		a.Engagement = clamp(a.Engagement - 0.05)
	} else {
		a.Engagement = clamp(a.Engagement + 0.05)
	}

	// Long silences read as frustration or disengagement.
	if elapsed > 30 {
		a.Frustration = clamp(a.Frustration + 0.10)
	}
}

// State is the complete per-student record: cognitive, affective, and
// learning-style models plus session metadata. All scalar metrics stay in
// [0,1] after every update.
type State struct {
	ID             string        `json:"student_id"`
	Cognitive      Cognitive     `json:"cognitive"`
	Affective      Affective     `json:"affective"`
	LearningStyle  LearningStyle `json:"learning_style"`
	SessionCount   int           `json:"session_count"`
	TotalStudyTime float64       `json:"total_study_time"`
	LastSession    *time.Time    `json:"last_session,omitempty"`
	LearningGoals  []string      `json:"learning_goals"`
}

// New returns a State with default model values for the given id.
func New(id string) *State {
	return &State{
		ID: id,
		Cognitive: Cognitive{
			KnowledgeLevel: DefaultKnowledgeLevel,
			Metacognition:  DefaultMetacognition,
			AttentionSpan:  DefaultAttentionSpan,
		},
		Affective: Affective{
			Motivation:   DefaultMotivation,
			SelfEfficacy: DefaultSelfEfficacy,
			Engagement:   DefaultEngagement,
			Frustration:  DefaultFrustration,
		},
		LearningStyle: DefaultLearningStyle(),
	}
}

// StartSession bumps the session counter and stamps the session time.
func (s *State) StartSession(now time.Time) {
	s.SessionCount++
	s.LastSession = &now
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
