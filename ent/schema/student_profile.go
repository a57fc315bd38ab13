package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudentProfile persists the full learner model for one student: cognitive
// and affective state, learning style, and study history. The profile body
// is stored as JSON so the learner model can evolve without migrations.
type StudentProfile struct {
	ent.Schema
}

func (StudentProfile) Fields() []ent.Field {
	return []ent.Field{
		field.String("student_id").
			Unique().
			Immutable().
			Comment("Caller-chosen student identifier"),
		field.JSON("data", map[string]any{}).
			Comment("Full learner state as JSON"),
		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Comment("When the profile was first created"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last persisted update"),
	}
}

func (StudentProfile) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id"),
		index.Fields("updated_at"),
	}
}
