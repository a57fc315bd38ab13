package store

import (
	"context"
	"fmt"

	"github.com/studybuddyai/studybuddy/ent"
	"github.com/studybuddyai/studybuddy/ent/sessionrecord"
)

// sessionRepo implements SessionRepo using the ent client.
type sessionRepo struct {
	client *ent.Client
}

func (r *sessionRepo) Save(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session ID is empty")
	}

	upd := r.client.SessionRecord.Update().
		Where(sessionrecord.SessionIDEQ(sess.ID)).
		SetStudentID(sess.StudentID).
		SetDurationMinutes(sess.DurationMinutes).
		SetTopicsCovered(sess.TopicsCovered).
		SetQuestionsAsked(sess.QuestionsAsked).
		SetQuestionsCorrect(sess.QuestionsCorrect).
		SetEngagementScore(sess.EngagementScore).
		SetSummary(sess.Summary)
	if sess.EndedAt != nil {
		upd.SetEndedAt(*sess.EndedAt)
	}

	n, err := upd.Save(ctx)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}
	if n > 0 {
		return nil
	}

	create := r.client.SessionRecord.Create().
		SetSessionID(sess.ID).
		SetStudentID(sess.StudentID).
		SetStartedAt(sess.StartedAt).
		SetDurationMinutes(sess.DurationMinutes).
		SetTopicsCovered(sess.TopicsCovered).
		SetQuestionsAsked(sess.QuestionsAsked).
		SetQuestionsCorrect(sess.QuestionsCorrect).
		SetEngagementScore(sess.EngagementScore).
		SetSummary(sess.Summary)
	if sess.EndedAt != nil {
		create.SetEndedAt(*sess.EndedAt)
	}

	if _, err := create.Save(ctx); err != nil {
		return fmt.Errorf("create session %s: %w", sess.ID, err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	rec, err := r.client.SessionRecord.Query().
		Where(sessionrecord.SessionIDEQ(sessionID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session %s: %w", sessionID, err)
	}
	return entSessionToSession(rec), nil
}

func (r *sessionRepo) History(ctx context.Context, studentID string, limit int) ([]*Session, error) {
	q := r.client.SessionRecord.Query().
		Where(sessionrecord.StudentIDEQ(studentID)).
		Order(ent.Desc(sessionrecord.FieldStartedAt))
	if limit > 0 {
		q = q.Limit(limit)
	}

	recs, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session history for %s: %w", studentID, err)
	}

	out := make([]*Session, len(recs))
	for i, rec := range recs {
		out[i] = entSessionToSession(rec)
	}
	return out, nil
}

func entSessionToSession(rec *ent.SessionRecord) *Session {
	return &Session{
		ID:               rec.SessionID,
		StudentID:        rec.StudentID,
		StartedAt:        rec.StartedAt,
		EndedAt:          rec.EndedAt,
		DurationMinutes:  rec.DurationMinutes,
		TopicsCovered:    rec.TopicsCovered,
		QuestionsAsked:   rec.QuestionsAsked,
		QuestionsCorrect: rec.QuestionsCorrect,
		EngagementScore:  rec.EngagementScore,
		Summary:          rec.Summary,
	}
}
