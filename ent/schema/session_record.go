package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionRecord captures one completed study session: when it ran, what it
// covered, and how the student performed.
type SessionRecord struct {
	ent.Schema
}

func (SessionRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			Immutable().
			Comment("UUID assigned at session start"),
		field.String("student_id").
			Comment("Student this session belongs to"),
		field.Time("started_at").
			Comment("Session start time"),
		field.Time("ended_at").
			Optional().
			Nillable().
			Comment("Session end time, unset while in progress"),
		field.Float("duration_minutes").
			Default(0).
			Comment("Total session length"),
		field.JSON("topics_covered", []string{}).
			Optional().
			Comment("Topics touched during the session"),
		field.Int("questions_asked").
			Default(0),
		field.Int("questions_correct").
			Default(0),
		field.Float("engagement_score").
			Default(0).
			Comment("Mean engagement over the session, in [0,1]"),
		field.Text("summary").
			Default("").
			Comment("LLM-generated session recap"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (SessionRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id"),
		index.Fields("started_at"),
	}
}
