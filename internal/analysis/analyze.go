package analysis

import (
	"github.com/studybuddyai/studybuddy/internal/path"
	"github.com/studybuddyai/studybuddy/internal/student"
)

// generalTopic is used for knowledge updates driven by free-form tutoring
// turns, where no specific flashcard topic is in play.
const generalTopic = "general"

// Apply folds an evaluated turn into the learner model and, when present,
// the learning path. Unclear verdicts change nothing.
func Apply(v Verdict, s *student.State, sched *path.Scheduler) {
	correct := v.Bool()
	if correct == nil || s == nil {
		return
	}

	s.Cognitive.RecordAnswer(*correct, generalTopic)
	if *correct {
		s.Affective.AfterCorrect()
	} else {
		s.Affective.AfterIncorrect()
	}

	if sched != nil {
		sched.RecordOutcome(*correct)
	}
}
