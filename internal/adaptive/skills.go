package adaptive

import "github.com/studybuddyai/studybuddy/internal/student"

// Skill is one competency a learning goal requires.
type Skill struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Difficulty    float64  `json:"difficulty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	MasteryLevel  float64  `json:"mastery_level"`
}

// MapGoalToSkills expands a learning goal into its required skills.
// The mapping is a fixed table for the operating-systems curriculum; a
// future version could derive it from the goal text with an LLM.
func MapGoalToSkills(goal string) []Skill {
	return []Skill{
		{Name: "Process Management", Description: "Understanding processes, fork(), exec(), and process lifecycle", Difficulty: 0.6},
		{Name: "System Calls", Description: "Knowledge of system calls and user/kernel mode transitions", Difficulty: 0.5},
		{Name: "File Systems", Description: "File descriptors, I/O operations, and file management", Difficulty: 0.6},
		{Name: "Signals & Interrupts", Description: "Handling asynchronous events and interrupts", Difficulty: 0.7},
		{Name: "Shell Operations", Description: "Understanding shell execution, pipes, and redirection", Difficulty: 0.6},
		{Name: "Memory Management", Description: "Address space, heap, stack management", Difficulty: 0.7},
		{Name: "Compilation Pipeline", Description: "Understanding compilation, linking, and program execution", Difficulty: 0.5},
	}
}

// SyncSkillMastery projects the student's overall knowledge level onto each
// skill's mastery estimate.
func SyncSkillMastery(s *student.State, skills []Skill) {
	for i := range skills {
		skills[i].MasteryLevel = s.Cognitive.KnowledgeLevel
	}
}
