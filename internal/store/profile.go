package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studybuddyai/studybuddy/ent"
	"github.com/studybuddyai/studybuddy/ent/studentprofile"
	"github.com/studybuddyai/studybuddy/internal/student"
)

// profileRepo implements ProfileRepo using the ent client. Profiles are
// stored as a JSON document keyed by student ID, so changes to the learner
// model never need a schema migration.
type profileRepo struct {
	client *ent.Client
}

func (r *profileRepo) Save(ctx context.Context, s *student.State) error {
	if s.ID == "" {
		return fmt.Errorf("student ID is empty")
	}

	data, err := stateToMap(s)
	if err != nil {
		return fmt.Errorf("marshal profile %s: %w", s.ID, err)
	}

	n, err := r.client.StudentProfile.Update().
		Where(studentprofile.StudentIDEQ(s.ID)).
		SetData(data).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update profile %s: %w", s.ID, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.StudentProfile.Create().
		SetStudentID(s.ID).
		SetData(data).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create profile %s: %w", s.ID, err)
	}
	return nil
}

func (r *profileRepo) Get(ctx context.Context, studentID string) (*student.State, error) {
	p, err := r.client.StudentProfile.Query().
		Where(studentprofile.StudentIDEQ(studentID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile %s: %w", studentID, err)
	}
	return mapToState(p.Data)
}

func (r *profileRepo) List(ctx context.Context) ([]string, error) {
	ids, err := r.client.StudentProfile.Query().
		Order(ent.Asc(studentprofile.FieldCreatedAt)).
		Select(studentprofile.FieldStudentID).
		Strings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return ids, nil
}

func (r *profileRepo) Delete(ctx context.Context, studentID string) error {
	_, err := r.client.StudentProfile.Delete().
		Where(studentprofile.StudentIDEQ(studentID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete profile %s: %w", studentID, err)
	}
	return nil
}

// stateToMap converts student.State to map[string]any for ent JSON storage.
func stateToMap(s *student.State) (map[string]any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// mapToState converts the stored JSON document back into student.State.
func mapToState(m map[string]any) (*student.State, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var s student.State
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
