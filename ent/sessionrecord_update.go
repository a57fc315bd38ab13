// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/studybuddyai/studybuddy/ent/predicate"
	"github.com/studybuddyai/studybuddy/ent/sessionrecord"
)

// SessionRecordUpdate is the builder for updating SessionRecord entities.
type SessionRecordUpdate struct {
	config
	hooks    []Hook
	mutation *SessionRecordMutation
}

// Where appends a list predicates to the SessionRecordUpdate builder.
func (_u *SessionRecordUpdate) Where(ps ...predicate.SessionRecord) *SessionRecordUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetStudentID sets the "student_id" field.
func (_u *SessionRecordUpdate) SetStudentID(v string) *SessionRecordUpdate {
	_u.mutation.SetStudentID(v)
	return _u
}

// SetNillableStudentID sets the "student_id" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableStudentID(v *string) *SessionRecordUpdate {
	if v != nil {
		_u.SetStudentID(*v)
	}
	return _u
}

// SetStartedAt sets the "started_at" field.
func (_u *SessionRecordUpdate) SetStartedAt(v time.Time) *SessionRecordUpdate {
	_u.mutation.SetStartedAt(v)
	return _u
}

// SetNillableStartedAt sets the "started_at" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableStartedAt(v *time.Time) *SessionRecordUpdate {
	if v != nil {
		_u.SetStartedAt(*v)
	}
	return _u
}

// SetEndedAt sets the "ended_at" field.
func (_u *SessionRecordUpdate) SetEndedAt(v time.Time) *SessionRecordUpdate {
	_u.mutation.SetEndedAt(v)
	return _u
}

// SetNillableEndedAt sets the "ended_at" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableEndedAt(v *time.Time) *SessionRecordUpdate {
	if v != nil {
		_u.SetEndedAt(*v)
	}
	return _u
}

// ClearEndedAt clears the value of the "ended_at" field.
func (_u *SessionRecordUpdate) ClearEndedAt() *SessionRecordUpdate {
	_u.mutation.ClearEndedAt()
	return _u
}

// SetDurationMinutes sets the "duration_minutes" field.
func (_u *SessionRecordUpdate) SetDurationMinutes(v float64) *SessionRecordUpdate {
	_u.mutation.ResetDurationMinutes()
	_u.mutation.SetDurationMinutes(v)
	return _u
}

// SetNillableDurationMinutes sets the "duration_minutes" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableDurationMinutes(v *float64) *SessionRecordUpdate {
	if v != nil {
		_u.SetDurationMinutes(*v)
	}
	return _u
}

// AddDurationMinutes adds value to the "duration_minutes" field.
func (_u *SessionRecordUpdate) AddDurationMinutes(v float64) *SessionRecordUpdate {
	_u.mutation.AddDurationMinutes(v)
	return _u
}

// SetTopicsCovered sets the "topics_covered" field.
func (_u *SessionRecordUpdate) SetTopicsCovered(v []string) *SessionRecordUpdate {
	_u.mutation.SetTopicsCovered(v)
	return _u
}

// AppendTopicsCovered appends value to the "topics_covered" field.
func (_u *SessionRecordUpdate) AppendTopicsCovered(v []string) *SessionRecordUpdate {
	_u.mutation.AppendTopicsCovered(v)
	return _u
}

// ClearTopicsCovered clears the value of the "topics_covered" field.
func (_u *SessionRecordUpdate) ClearTopicsCovered() *SessionRecordUpdate {
	_u.mutation.ClearTopicsCovered()
	return _u
}

// SetQuestionsAsked sets the "questions_asked" field.
func (_u *SessionRecordUpdate) SetQuestionsAsked(v int) *SessionRecordUpdate {
	_u.mutation.ResetQuestionsAsked()
	_u.mutation.SetQuestionsAsked(v)
	return _u
}

// SetNillableQuestionsAsked sets the "questions_asked" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableQuestionsAsked(v *int) *SessionRecordUpdate {
	if v != nil {
		_u.SetQuestionsAsked(*v)
	}
	return _u
}

// AddQuestionsAsked adds value to the "questions_asked" field.
func (_u *SessionRecordUpdate) AddQuestionsAsked(v int) *SessionRecordUpdate {
	_u.mutation.AddQuestionsAsked(v)
	return _u
}

// SetQuestionsCorrect sets the "questions_correct" field.
func (_u *SessionRecordUpdate) SetQuestionsCorrect(v int) *SessionRecordUpdate {
	_u.mutation.ResetQuestionsCorrect()
	_u.mutation.SetQuestionsCorrect(v)
	return _u
}

// SetNillableQuestionsCorrect sets the "questions_correct" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableQuestionsCorrect(v *int) *SessionRecordUpdate {
	if v != nil {
		_u.SetQuestionsCorrect(*v)
	}
	return _u
}

// AddQuestionsCorrect adds value to the "questions_correct" field.
func (_u *SessionRecordUpdate) AddQuestionsCorrect(v int) *SessionRecordUpdate {
	_u.mutation.AddQuestionsCorrect(v)
	return _u
}

// SetEngagementScore sets the "engagement_score" field.
func (_u *SessionRecordUpdate) SetEngagementScore(v float64) *SessionRecordUpdate {
	_u.mutation.ResetEngagementScore()
	_u.mutation.SetEngagementScore(v)
	return _u
}

// SetNillableEngagementScore sets the "engagement_score" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableEngagementScore(v *float64) *SessionRecordUpdate {
	if v != nil {
		_u.SetEngagementScore(*v)
	}
	return _u
}

// AddEngagementScore adds value to the "engagement_score" field.
func (_u *SessionRecordUpdate) AddEngagementScore(v float64) *SessionRecordUpdate {
	_u.mutation.AddEngagementScore(v)
	return _u
}

// SetSummary sets the "summary" field.
func (_u *SessionRecordUpdate) SetSummary(v string) *SessionRecordUpdate {
	_u.mutation.SetSummary(v)
	return _u
}

// SetNillableSummary sets the "summary" field if the given value is not nil.
func (_u *SessionRecordUpdate) SetNillableSummary(v *string) *SessionRecordUpdate {
	if v != nil {
		_u.SetSummary(*v)
	}
	return _u
}

// Mutation returns the SessionRecordMutation object of the builder.
func (_u *SessionRecordUpdate) Mutation() *SessionRecordMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *SessionRecordUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionRecordUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *SessionRecordUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionRecordUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *SessionRecordUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(sessionrecord.Table, sessionrecord.Columns, sqlgraph.NewFieldSpec(sessionrecord.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.StudentID(); ok {
		_spec.SetField(sessionrecord.FieldStudentID, field.TypeString, value)
	}
	if value, ok := _u.mutation.StartedAt(); ok {
		_spec.SetField(sessionrecord.FieldStartedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.EndedAt(); ok {
		_spec.SetField(sessionrecord.FieldEndedAt, field.TypeTime, value)
	}
	if _u.mutation.EndedAtCleared() {
		_spec.ClearField(sessionrecord.FieldEndedAt, field.TypeTime)
	}
	if value, ok := _u.mutation.DurationMinutes(); ok {
		_spec.SetField(sessionrecord.FieldDurationMinutes, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedDurationMinutes(); ok {
		_spec.AddField(sessionrecord.FieldDurationMinutes, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.TopicsCovered(); ok {
		_spec.SetField(sessionrecord.FieldTopicsCovered, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedTopicsCovered(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, sessionrecord.FieldTopicsCovered, value)
		})
	}
	if _u.mutation.TopicsCoveredCleared() {
		_spec.ClearField(sessionrecord.FieldTopicsCovered, field.TypeJSON)
	}
	if value, ok := _u.mutation.QuestionsAsked(); ok {
		_spec.SetField(sessionrecord.FieldQuestionsAsked, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestionsAsked(); ok {
		_spec.AddField(sessionrecord.FieldQuestionsAsked, field.TypeInt, value)
	}
	if value, ok := _u.mutation.QuestionsCorrect(); ok {
		_spec.SetField(sessionrecord.FieldQuestionsCorrect, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestionsCorrect(); ok {
		_spec.AddField(sessionrecord.FieldQuestionsCorrect, field.TypeInt, value)
	}
	if value, ok := _u.mutation.EngagementScore(); ok {
		_spec.SetField(sessionrecord.FieldEngagementScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedEngagementScore(); ok {
		_spec.AddField(sessionrecord.FieldEngagementScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Summary(); ok {
		_spec.SetField(sessionrecord.FieldSummary, field.TypeString, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// SessionRecordUpdateOne is the builder for updating a single SessionRecord entity.
type SessionRecordUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *SessionRecordMutation
}

// SetStudentID sets the "student_id" field.
func (_u *SessionRecordUpdateOne) SetStudentID(v string) *SessionRecordUpdateOne {
	_u.mutation.SetStudentID(v)
	return _u
}

// SetNillableStudentID sets the "student_id" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableStudentID(v *string) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetStudentID(*v)
	}
	return _u
}

// SetStartedAt sets the "started_at" field.
func (_u *SessionRecordUpdateOne) SetStartedAt(v time.Time) *SessionRecordUpdateOne {
	_u.mutation.SetStartedAt(v)
	return _u
}

// SetNillableStartedAt sets the "started_at" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableStartedAt(v *time.Time) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetStartedAt(*v)
	}
	return _u
}

// SetEndedAt sets the "ended_at" field.
func (_u *SessionRecordUpdateOne) SetEndedAt(v time.Time) *SessionRecordUpdateOne {
	_u.mutation.SetEndedAt(v)
	return _u
}

// SetNillableEndedAt sets the "ended_at" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableEndedAt(v *time.Time) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetEndedAt(*v)
	}
	return _u
}

// ClearEndedAt clears the value of the "ended_at" field.
func (_u *SessionRecordUpdateOne) ClearEndedAt() *SessionRecordUpdateOne {
	_u.mutation.ClearEndedAt()
	return _u
}

// SetDurationMinutes sets the "duration_minutes" field.
func (_u *SessionRecordUpdateOne) SetDurationMinutes(v float64) *SessionRecordUpdateOne {
	_u.mutation.ResetDurationMinutes()
	_u.mutation.SetDurationMinutes(v)
	return _u
}

// SetNillableDurationMinutes sets the "duration_minutes" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableDurationMinutes(v *float64) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetDurationMinutes(*v)
	}
	return _u
}

// AddDurationMinutes adds value to the "duration_minutes" field.
func (_u *SessionRecordUpdateOne) AddDurationMinutes(v float64) *SessionRecordUpdateOne {
	_u.mutation.AddDurationMinutes(v)
	return _u
}

// SetTopicsCovered sets the "topics_covered" field.
func (_u *SessionRecordUpdateOne) SetTopicsCovered(v []string) *SessionRecordUpdateOne {
	_u.mutation.SetTopicsCovered(v)
	return _u
}

// AppendTopicsCovered appends value to the "topics_covered" field.
func (_u *SessionRecordUpdateOne) AppendTopicsCovered(v []string) *SessionRecordUpdateOne {
	_u.mutation.AppendTopicsCovered(v)
	return _u
}

// ClearTopicsCovered clears the value of the "topics_covered" field.
func (_u *SessionRecordUpdateOne) ClearTopicsCovered() *SessionRecordUpdateOne {
	_u.mutation.ClearTopicsCovered()
	return _u
}

// SetQuestionsAsked sets the "questions_asked" field.
func (_u *SessionRecordUpdateOne) SetQuestionsAsked(v int) *SessionRecordUpdateOne {
	_u.mutation.ResetQuestionsAsked()
	_u.mutation.SetQuestionsAsked(v)
	return _u
}

// SetNillableQuestionsAsked sets the "questions_asked" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableQuestionsAsked(v *int) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetQuestionsAsked(*v)
	}
	return _u
}

// AddQuestionsAsked adds value to the "questions_asked" field.
func (_u *SessionRecordUpdateOne) AddQuestionsAsked(v int) *SessionRecordUpdateOne {
	_u.mutation.AddQuestionsAsked(v)
	return _u
}

// SetQuestionsCorrect sets the "questions_correct" field.
func (_u *SessionRecordUpdateOne) SetQuestionsCorrect(v int) *SessionRecordUpdateOne {
	_u.mutation.ResetQuestionsCorrect()
	_u.mutation.SetQuestionsCorrect(v)
	return _u
}

// SetNillableQuestionsCorrect sets the "questions_correct" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableQuestionsCorrect(v *int) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetQuestionsCorrect(*v)
	}
	return _u
}

// AddQuestionsCorrect adds value to the "questions_correct" field.
func (_u *SessionRecordUpdateOne) AddQuestionsCorrect(v int) *SessionRecordUpdateOne {
	_u.mutation.AddQuestionsCorrect(v)
	return _u
}

// SetEngagementScore sets the "engagement_score" field.
func (_u *SessionRecordUpdateOne) SetEngagementScore(v float64) *SessionRecordUpdateOne {
	_u.mutation.ResetEngagementScore()
	_u.mutation.SetEngagementScore(v)
	return _u
}

// SetNillableEngagementScore sets the "engagement_score" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableEngagementScore(v *float64) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetEngagementScore(*v)
	}
	return _u
}

// AddEngagementScore adds value to the "engagement_score" field.
func (_u *SessionRecordUpdateOne) AddEngagementScore(v float64) *SessionRecordUpdateOne {
	_u.mutation.AddEngagementScore(v)
	return _u
}

// SetSummary sets the "summary" field.
func (_u *SessionRecordUpdateOne) SetSummary(v string) *SessionRecordUpdateOne {
	_u.mutation.SetSummary(v)
	return _u
}

// SetNillableSummary sets the "summary" field if the given value is not nil.
func (_u *SessionRecordUpdateOne) SetNillableSummary(v *string) *SessionRecordUpdateOne {
	if v != nil {
		_u.SetSummary(*v)
	}
	return _u
}

// Mutation returns the SessionRecordMutation object of the builder.
func (_u *SessionRecordUpdateOne) Mutation() *SessionRecordMutation {
	return _u.mutation
}

// Where appends a list predicates to the SessionRecordUpdate builder.
func (_u *SessionRecordUpdateOne) Where(ps ...predicate.SessionRecord) *SessionRecordUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *SessionRecordUpdateOne) Select(field string, fields ...string) *SessionRecordUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated SessionRecord entity.
func (_u *SessionRecordUpdateOne) Save(ctx context.Context) (*SessionRecord, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *SessionRecordUpdateOne) SaveX(ctx context.Context) *SessionRecord {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *SessionRecordUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *SessionRecordUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *SessionRecordUpdateOne) sqlSave(ctx context.Context) (_node *SessionRecord, err error) {
	_spec := sqlgraph.NewUpdateSpec(sessionrecord.Table, sessionrecord.Columns, sqlgraph.NewFieldSpec(sessionrecord.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "SessionRecord.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, sessionrecord.FieldID)
		for _, f := range fields {
			if !sessionrecord.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != sessionrecord.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.StudentID(); ok {
		_spec.SetField(sessionrecord.FieldStudentID, field.TypeString, value)
	}
	if value, ok := _u.mutation.StartedAt(); ok {
		_spec.SetField(sessionrecord.FieldStartedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.EndedAt(); ok {
		_spec.SetField(sessionrecord.FieldEndedAt, field.TypeTime, value)
	}
	if _u.mutation.EndedAtCleared() {
		_spec.ClearField(sessionrecord.FieldEndedAt, field.TypeTime)
	}
	if value, ok := _u.mutation.DurationMinutes(); ok {
		_spec.SetField(sessionrecord.FieldDurationMinutes, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedDurationMinutes(); ok {
		_spec.AddField(sessionrecord.FieldDurationMinutes, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.TopicsCovered(); ok {
		_spec.SetField(sessionrecord.FieldTopicsCovered, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedTopicsCovered(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, sessionrecord.FieldTopicsCovered, value)
		})
	}
	if _u.mutation.TopicsCoveredCleared() {
		_spec.ClearField(sessionrecord.FieldTopicsCovered, field.TypeJSON)
	}
	if value, ok := _u.mutation.QuestionsAsked(); ok {
		_spec.SetField(sessionrecord.FieldQuestionsAsked, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestionsAsked(); ok {
		_spec.AddField(sessionrecord.FieldQuestionsAsked, field.TypeInt, value)
	}
	if value, ok := _u.mutation.QuestionsCorrect(); ok {
		_spec.SetField(sessionrecord.FieldQuestionsCorrect, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestionsCorrect(); ok {
		_spec.AddField(sessionrecord.FieldQuestionsCorrect, field.TypeInt, value)
	}
	if value, ok := _u.mutation.EngagementScore(); ok {
		_spec.SetField(sessionrecord.FieldEngagementScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedEngagementScore(); ok {
		_spec.AddField(sessionrecord.FieldEngagementScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Summary(); ok {
		_spec.SetField(sessionrecord.FieldSummary, field.TypeString, value)
	}
	_node = &SessionRecord{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{sessionrecord.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
