package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuddyai/studybuddy/internal/adaptive"
	"github.com/studybuddyai/studybuddy/internal/analysis"
	"github.com/studybuddyai/studybuddy/internal/flashcards"
	"github.com/studybuddyai/studybuddy/internal/path"
	"github.com/studybuddyai/studybuddy/internal/store"
	"github.com/studybuddyai/studybuddy/internal/student"
)

// defaultStudentID is used when a tool that tolerates a missing student_id
// is called without one.
const defaultStudentID = "default"

// defaultLearningGoal seeds new profiles created without explicit goals.
const defaultLearningGoal = "Pass Operating Systems Exam"

// defaultHistoryLimit bounds get_session_history when no limit is given.
const defaultHistoryLimit = 10

// Handlers owns all tool state: the profile cache, per-student learning
// paths, open sessions, and the answer judge.
type Handlers struct {
	cache    *ProfileCache
	profiles store.ProfileRepo
	sessions store.SessionRepo
	judge    *analysis.Judge
	paths    map[string]*path.Scheduler
	open     map[string]*store.Session // student_id → session in progress
	deckPath string
	now      func() time.Time
	log      *zap.Logger
}

// NewHandlers wires the tool handlers. dataDir is where the flashcard deck
// lives; judge may be nil to run heuristics-only.
func NewHandlers(cache *ProfileCache, profiles store.ProfileRepo, sessions store.SessionRepo, judge *analysis.Judge, dataDir string, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	if judge == nil {
		judge = analysis.NewJudge(nil, log)
	}
	return &Handlers{
		cache:    cache,
		profiles: profiles,
		sessions: sessions,
		judge:    judge,
		paths:    make(map[string]*path.Scheduler),
		open:     make(map[string]*store.Session),
		deckPath: filepath.Join(dataDir, flashcards.DeckFileName),
		now:      time.Now,
		log:      log.Named("tools"),
	}
}

// Registry assembles the full tool catalog.
func (h *Handlers) Registry(log *zap.Logger) *Registry {
	r := NewRegistry(log)

	r.Register(Tool{
		Name:        "create_student_profile",
		Description: "Create or load a student profile. Returns the complete student model with cognitive, affective, and learning style data.",
		InputSchema: objectSchema(map[string]any{
			"student_id":     stringProp("Unique identifier for the student (default: 'default')"),
			"learning_goals": arrayProp("Optional list of learning goals"),
		}),
		Handler: h.createStudentProfile,
	})
	r.Register(Tool{
		Name:        "get_student_profile",
		Description: "Retrieve current student profile with all metrics and progress data.",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier (default: 'default')"),
		}),
		Handler: h.getStudentProfile,
	})
	r.Register(Tool{
		Name:        "update_student_profile",
		Description: "Update specific fields in a cached student profile.",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier"),
			"updates":    map[string]any{"type": "object", "description": "Fields to update (e.g., learning_goals, session_count, total_study_time)"},
		}, "student_id", "updates"),
		Handler: h.updateStudentProfile,
	})
	r.Register(Tool{
		Name:        "save_student_profile",
		Description: "Save the current student profile to the database.",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier"),
		}, "student_id"),
		Handler: h.saveStudentProfile,
	})
	r.Register(Tool{
		Name:        "analyze_student_response",
		Description: "Analyze a student's response using AI, update their cognitive and affective models, and return evaluation results.",
		InputSchema: objectSchema(map[string]any{
			"student_id":  stringProp("Student identifier"),
			"question":    stringProp("The question or prompt that was asked"),
			"user_input":  stringProp("The student's response"),
			"ai_response": stringProp("The AI tutor's response/feedback"),
		}, "student_id", "question", "user_input", "ai_response"),
		Handler: h.analyzeStudentResponse,
	})
	r.Register(Tool{
		Name:        "evaluate_answer",
		Description: "Use AI to evaluate if a student's answer is correct without updating their profile. Returns: correct, incorrect, or unclear.",
		InputSchema: objectSchema(map[string]any{
			"question":    stringProp("The question asked"),
			"user_answer": stringProp("The student's answer"),
			"ai_feedback": stringProp("The AI's feedback on the answer"),
		}, "question", "user_answer", "ai_feedback"),
		Handler: h.evaluateAnswer,
	})
	r.Register(Tool{
		Name:        "update_learning_metrics",
		Description: "Update engagement and learning style based on interaction patterns.",
		InputSchema: objectSchema(map[string]any{
			"student_id":    stringProp("Student identifier"),
			"response_text": stringProp("The student's response text"),
			"response_time": map[string]any{"type": "number", "description": "Time taken to respond in seconds"},
		}, "student_id", "response_text", "response_time"),
		Handler: h.updateLearningMetrics,
	})
	r.Register(Tool{
		Name:        "generate_study_prompt",
		Description: "Generate a personalized system prompt for the AI tutor based on the student's profile, knowledge level, learning style, and affective state.",
		InputSchema: objectSchema(map[string]any{
			"student_id":         stringProp("Student identifier"),
			"include_flashcards": map[string]any{"type": "boolean", "description": "Whether to include flashcard content in the prompt (default: true)"},
		}, "student_id"),
		Handler: h.generateStudyPrompt,
	})
	r.Register(Tool{
		Name:        "initialize_learning_path",
		Description: "Initialize an adaptive learning path for a student based on their profile and learning goals.",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier"),
		}, "student_id"),
		Handler: h.initializeLearningPath,
	})
	r.Register(Tool{
		Name:        "get_next_question",
		Description: "Get the next adaptive question based on student performance and learning path.",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier"),
		}, "student_id"),
		Handler: h.getNextQuestion,
	})
	r.Register(Tool{
		Name:        "start_session",
		Description: "Start a new study session for a student. Increments session count and updates timestamps.",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier"),
		}, "student_id"),
		Handler: h.startSession,
	})
	r.Register(Tool{
		Name:        "save_session",
		Description: "Save session history with performance metrics to the database.",
		InputSchema: objectSchema(map[string]any{
			"student_id":         stringProp("Student identifier"),
			"duration_minutes":   map[string]any{"type": "number", "description": "Session duration in minutes"},
			"questions_answered": map[string]any{"type": "integer", "description": "Number of questions answered"},
			"correct_answers":    map[string]any{"type": "integer", "description": "Number of correct answers"},
		}, "student_id", "duration_minutes", "questions_answered", "correct_answers"),
		Handler: h.saveSession,
	})
	r.Register(Tool{
		Name:        "get_session_history",
		Description: "Retrieve recent session history for a student.",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier"),
			"limit":      map[string]any{"type": "integer", "description": "Maximum number of sessions to retrieve (default: 10)"},
		}, "student_id"),
		Handler: h.getSessionHistory,
	})
	r.Register(Tool{
		Name:        "get_learning_metrics",
		Description: "Get current learning metrics for display (knowledge level, engagement, etc.).",
		InputSchema: objectSchema(map[string]any{
			"student_id": stringProp("Student identifier"),
		}, "student_id"),
		Handler: h.getLearningMetrics,
	})

	return r
}

func (h *Handlers) createStudentProfile(ctx context.Context, args map[string]any) (map[string]any, error) {
	studentID := argString(args, "student_id", defaultStudentID)
	goals := argStringSlice(args, "learning_goals")
	if len(goals) == 0 {
		goals = []string{defaultLearningGoal}
	}

	s, err := h.cache.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	s.LearningGoals = goals
	skills := adaptive.MapGoalToSkills(goals[0])
	adaptive.SyncSkillMastery(s, skills)

	return map[string]any{
		"success":    true,
		"student_id": studentID,
		"profile":    profileDoc(s),
	}, nil
}

func (h *Handlers) getStudentProfile(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", defaultStudentID))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"profile": profileDoc(s),
	}, nil
}

// profileSetters is the whitelist of externally updatable profile fields.
// Unknown keys are rejected outright rather than silently ignored.
var profileSetters = map[string]func(*student.State, any) error{
	"learning_goals": func(s *student.State, v any) error {
		goals, ok := toStringSlice(v)
		if !ok {
			return fmt.Errorf("learning_goals must be an array of strings")
		}
		s.LearningGoals = goals
		return nil
	},
	"session_count": func(s *student.State, v any) error {
		n, ok := toInt(v)
		if !ok || n < 0 {
			return fmt.Errorf("session_count must be a non-negative integer")
		}
		s.SessionCount = n
		return nil
	},
	"total_study_time": func(s *student.State, v any) error {
		f, ok := toFloat(v)
		if !ok || f < 0 {
			return fmt.Errorf("total_study_time must be a non-negative number")
		}
		s.TotalStudyTime = f
		return nil
	},
	"knowledge_level": func(s *student.State, v any) error {
		return setUnit(v, "knowledge_level", &s.Cognitive.KnowledgeLevel)
	},
	"motivation_level": func(s *student.State, v any) error {
		return setUnit(v, "motivation_level", &s.Affective.Motivation)
	},
	"engagement_level": func(s *student.State, v any) error {
		return setUnit(v, "engagement_level", &s.Affective.Engagement)
	},
	"frustration_level": func(s *student.State, v any) error {
		return setUnit(v, "frustration_level", &s.Affective.Frustration)
	},
	"self_efficacy": func(s *student.State, v any) error {
		return setUnit(v, "self_efficacy", &s.Affective.SelfEfficacy)
	},
	"metacognition_score": func(s *student.State, v any) error {
		return setUnit(v, "metacognition_score", &s.Cognitive.Metacognition)
	},
	"attention_span": func(s *student.State, v any) error {
		return setUnit(v, "attention_span", &s.Cognitive.AttentionSpan)
	},
}

func (h *Handlers) updateStudentProfile(ctx context.Context, args map[string]any) (map[string]any, error) {
	studentID := argString(args, "student_id", "")
	s, ok := h.cache.Lookup(studentID)
	if !ok {
		return nil, ErrNotCached
	}

	updates, _ := args["updates"].(map[string]any)
	updated := make([]string, 0, len(updates))
	for key, value := range updates {
		setter, known := profileSetters[key]
		if !known {
			return nil, fmt.Errorf("unknown profile field: %s", key)
		}
		if err := setter(s, value); err != nil {
			return nil, err
		}
		updated = append(updated, key)
	}

	return map[string]any{
		"success":        true,
		"message":        "Profile updated",
		"updated_fields": updated,
	}, nil
}

func (h *Handlers) saveStudentProfile(ctx context.Context, args map[string]any) (map[string]any, error) {
	if err := h.cache.Save(ctx, argString(args, "student_id", "")); err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"message": "Profile saved to database",
	}, nil
}

func (h *Handlers) analyzeStudentResponse(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", ""))
	if err != nil {
		return nil, err
	}

	verdict := h.judge.Evaluate(ctx,
		argString(args, "question", ""),
		argString(args, "user_input", ""),
		argString(args, "ai_response", ""))

	analysis.Apply(verdict, s, h.paths[s.ID])

	return map[string]any{
		"success":          true,
		"evaluation":       string(verdict),
		"knowledge_level":  s.Cognitive.KnowledgeLevel,
		"engagement_level": s.Affective.Engagement,
		"total_answers":    s.Cognitive.TotalCount,
		"correct_answers":  s.Cognitive.CorrectCount,
	}, nil
}

func (h *Handlers) evaluateAnswer(ctx context.Context, args map[string]any) (map[string]any, error) {
	verdict := h.judge.Evaluate(ctx,
		argString(args, "question", ""),
		argString(args, "user_answer", ""),
		argString(args, "ai_feedback", ""))

	result := map[string]any{
		"success":    true,
		"evaluation": string(verdict),
	}
	if b := verdict.Bool(); b != nil {
		result["is_correct"] = *b
	} else {
		result["is_correct"] = nil
	}
	return result, nil
}

func (h *Handlers) updateLearningMetrics(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", ""))
	if err != nil {
		return nil, err
	}

	responseText := argString(args, "response_text", "")
	responseTime, _ := toFloat(args["response_time"])

	s.Affective.UpdateEngagement(len(responseText), responseTime)
	s.LearningStyle.InferFromText(responseText)

	return map[string]any{
		"success":          true,
		"engagement_level": s.Affective.Engagement,
		"learning_style": map[string]any{
			"active_reflective": s.LearningStyle.ActiveReflective,
			"sensing_intuitive": s.LearningStyle.SensingIntuitive,
			"visual_verbal":     s.LearningStyle.VisualVerbal,
			"sequential_global": s.LearningStyle.SequentialGlobal,
		},
	}, nil
}

func (h *Handlers) generateStudyPrompt(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", ""))
	if err != nil {
		return nil, err
	}

	material := ""
	if argBool(args, "include_flashcards", true) {
		cards, err := flashcards.Load(h.deckPath)
		if err != nil {
			return nil, fmt.Errorf("load flashcards: %w", err)
		}
		material = flashcards.Render(cards)
	}

	return map[string]any{
		"success": true,
		"prompt":  adaptive.StudyPrompt(s, material),
	}, nil
}

func (h *Handlers) initializeLearningPath(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", ""))
	if err != nil {
		return nil, err
	}

	cards, err := flashcards.Load(h.deckPath)
	if err != nil {
		return nil, fmt.Errorf("load flashcards: %w", err)
	}

	sched := path.New(cards, func() float64 { return s.Cognitive.KnowledgeLevel })
	h.paths[s.ID] = sched

	return map[string]any{
		"success":       true,
		"message":       "Learning path initialized",
		"total_nodes":   sched.Len(),
		"current_index": sched.Cursor(),
	}, nil
}

func (h *Handlers) getNextQuestion(ctx context.Context, args map[string]any) (map[string]any, error) {
	studentID := argString(args, "student_id", "")

	sched, ok := h.paths[studentID]
	if !ok {
		s, err := h.cache.Get(ctx, studentID)
		if err != nil {
			return nil, err
		}
		cards, err := flashcards.Load(h.deckPath)
		if err != nil {
			return nil, fmt.Errorf("load flashcards: %w", err)
		}
		sched = path.New(cards, func() float64 { return s.Cognitive.KnowledgeLevel })
		h.paths[studentID] = sched
	}

	card, ok := sched.NextItem()
	if !ok {
		return map[string]any{
			"success":      true,
			"has_question": false,
			"message":      "No more questions available",
		}, nil
	}

	return map[string]any{
		"success":      true,
		"has_question": true,
		"question": map[string]any{
			"question": card.Question,
			"answer":   card.Answer,
		},
	}, nil
}

func (h *Handlers) startSession(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", ""))
	if err != nil {
		return nil, err
	}

	now := h.now()
	s.StartSession(now)
	h.open[s.ID] = &store.Session{
		ID:        uuid.NewString(),
		StudentID: s.ID,
		StartedAt: now,
	}

	return map[string]any{
		"success":       true,
		"session_id":    h.open[s.ID].ID,
		"session_count": s.SessionCount,
		"last_session":  now.Format(time.RFC3339),
	}, nil
}

func (h *Handlers) saveSession(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", ""))
	if err != nil {
		return nil, err
	}

	duration, _ := toFloat(args["duration_minutes"])
	questions, _ := toInt(args["questions_answered"])
	correct, _ := toInt(args["correct_answers"])

	s.TotalStudyTime += duration

	now := h.now()
	sess := h.open[s.ID]
	if sess == nil {
		// Session was never started through this worker; record it anyway.
		sess = &store.Session{
			ID:        uuid.NewString(),
			StudentID: s.ID,
			StartedAt: now.Add(-time.Duration(duration * float64(time.Minute))),
		}
	}
	sess.EndedAt = &now
	sess.DurationMinutes = duration
	sess.QuestionsAsked = questions
	sess.QuestionsCorrect = correct
	sess.EngagementScore = s.Affective.Engagement
	sess.TopicsCovered = s.Cognitive.Mastered

	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if err := h.cache.Save(ctx, s.ID); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	delete(h.open, s.ID)

	return map[string]any{
		"success":          true,
		"message":          "Session saved",
		"session_id":       sess.ID,
		"total_study_time": s.TotalStudyTime,
	}, nil
}

func (h *Handlers) getSessionHistory(ctx context.Context, args map[string]any) (map[string]any, error) {
	limit, ok := toInt(args["limit"])
	if !ok || limit <= 0 {
		limit = defaultHistoryLimit
	}

	sessions, err := h.sessions.History(ctx, argString(args, "student_id", ""), limit)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":  true,
		"sessions": sessionDocs(sessions),
	}, nil
}

func (h *Handlers) getLearningMetrics(ctx context.Context, args map[string]any) (map[string]any, error) {
	s, err := h.cache.Get(ctx, argString(args, "student_id", ""))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"metrics": map[string]any{
			"knowledge_level":   s.Cognitive.KnowledgeLevel,
			"engagement_level":  s.Affective.Engagement,
			"motivation_level":  s.Affective.Motivation,
			"frustration_level": s.Affective.Frustration,
			"total_answers":     s.Cognitive.TotalCount,
			"correct_answers":   s.Cognitive.CorrectCount,
			"accuracy":          s.Cognitive.Accuracy(),
			"mastered_topics":   s.Cognitive.Mastered,
			"struggling_topics": s.Cognitive.Struggling,
		},
	}, nil
}

// profileDoc serializes the student model through its JSON tags so wire
// field names match the persisted profile shape.
func profileDoc(s *student.State) map[string]any {
	b, err := json.Marshal(s)
	if err != nil {
		return map[string]any{"student_id": s.ID}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{"student_id": s.ID}
	}
	return m
}

func sessionDocs(sessions []*store.Session) []map[string]any {
	out := make([]map[string]any, 0, len(sessions))
	for _, sess := range sessions {
		b, err := json.Marshal(sess)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Schema builder helpers.

func objectSchema(props map[string]any, required ...string) map[string]any {
	reqd := make([]any, len(required))
	for i, r := range required {
		reqd[i] = r
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   reqd,
	}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func arrayProp(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// Argument conversion helpers. tools/call arguments arrive as decoded JSON,
// so numbers are float64.

func argString(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func argBool(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

func argStringSlice(args map[string]any, key string) []string {
	out, _ := toStringSlice(args[key])
	return out
}

func toStringSlice(v any) ([]string, bool) {
	switch vals := v.(type) {
	case []string:
		return vals, true
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func setUnit(v any, name string, dst *float64) error {
	f, ok := toFloat(v)
	if !ok || f < 0 || f > 1 {
		return fmt.Errorf("%s must be a number in [0,1]", name)
	}
	*dst = f
	return nil
}
