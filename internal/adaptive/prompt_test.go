package adaptive

import (
	"strings"
	"testing"

	"github.com/studybuddyai/studybuddy/internal/student"
)

func TestKnowledgeDescriptor(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{0.2, "beginner"},
		{0.4, "beginner"},
		{0.5, "intermediate"},
		{0.7, "intermediate"},
		{0.8, "advanced"},
	}
	for _, tt := range tests {
		if got := knowledgeDescriptor(tt.level); got != tt.want {
			t.Errorf("knowledgeDescriptor(%f) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestStudyPrompt_DefaultStudent(t *testing.T) {
	s := student.New("t")
	out := StudyPrompt(s, "")

	for _, want := range []string{
		"Student Progress Summary",
		"intermediate",
		"Mastered Topics: None yet",
		"Struggling With: None identified",
		"## Your Role",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// A balanced student gets no style directives.
	if strings.Contains(out, "This student prefers") || strings.Contains(out, "This student learns") {
		t.Error("balanced student should not get style directives")
	}
}

func TestStudyPrompt_AdaptsToState(t *testing.T) {
	s := student.New("t")
	s.Affective.Motivation = 0.3
	s.Affective.Frustration = 0.8
	s.Affective.Engagement = 0.2
	s.LearningStyle.VisualVerbal = 0.2
	s.LearningStyle.SequentialGlobal = 0.9
	s.Cognitive.Mastered = []string{"Paging"}
	s.Cognitive.Struggling = []string{"Scheduling"}

	out := StudyPrompt(s, "# Study Material\n")

	for _, want := range []string{
		"# Study Material",
		"extra encouragement",
		"may be frustrated",
		"increase engagement",
		"VISUAL learning",
		"BIG-PICTURE learning",
		"Mastered Topics: Paging",
		"Struggling With: Scheduling",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSessionSummaryPrompt(t *testing.T) {
	s := student.New("t")
	s.Cognitive.TotalCount = 12
	s.Cognitive.CorrectCount = 9

	out := SessionSummaryPrompt(s)
	for _, want := range []string{"Total Questions: 12", "Correct Answers: 9", "Recommended focus areas"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary prompt missing %q", want)
		}
	}
}

func TestMapGoalToSkills(t *testing.T) {
	skills := MapGoalToSkills("Pass Operating Systems Exam")
	if len(skills) != 7 {
		t.Fatalf("len(skills) = %d, want 7", len(skills))
	}

	s := student.New("t")
	s.Cognitive.KnowledgeLevel = 0.8
	SyncSkillMastery(s, skills)
	for _, skill := range skills {
		if skill.MasteryLevel != 0.8 {
			t.Errorf("skill %q mastery = %f, want 0.8", skill.Name, skill.MasteryLevel)
		}
	}
}
