package store

import (
	"context"
	"time"

	"github.com/studybuddyai/studybuddy/internal/student"
)

// ProfileRepo manages persisted student learner models.
type ProfileRepo interface {
	// Save upserts the profile keyed by its student ID.
	Save(ctx context.Context, s *student.State) error

	// Get returns the profile for the given student ID, or nil if it
	// does not exist.
	Get(ctx context.Context, studentID string) (*student.State, error)

	// List returns the IDs of all stored profiles, oldest first.
	List(ctx context.Context) ([]string, error)

	// Delete removes the profile for the given student ID. Deleting a
	// missing profile is not an error.
	Delete(ctx context.Context, studentID string) error
}

// Session is one study session's record.
type Session struct {
	ID               string     `json:"session_id"`
	StudentID        string     `json:"student_id"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
	DurationMinutes  float64    `json:"duration_minutes"`
	TopicsCovered    []string   `json:"topics_covered"`
	QuestionsAsked   int        `json:"questions_asked"`
	QuestionsCorrect int        `json:"questions_correct"`
	EngagementScore  float64    `json:"engagement_score"`
	Summary          string     `json:"summary,omitempty"`
}

// SessionRepo manages study session records.
type SessionRepo interface {
	// Save upserts a session record keyed by its session ID.
	Save(ctx context.Context, sess *Session) error

	// Get returns the session with the given ID, or nil if not found.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// History returns up to limit sessions for the student, most recent
	// first. limit <= 0 means no limit.
	History(ctx context.Context, studentID string, limit int) ([]*Session, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event, as returned by queries.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose label when non-empty
}

// EventRepo provides access to audit events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns stored LLM events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]*LLMEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
}
