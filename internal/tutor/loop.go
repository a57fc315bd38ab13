package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studybuddyai/studybuddy/internal/adaptive"
	"github.com/studybuddyai/studybuddy/internal/llm"
	"github.com/studybuddyai/studybuddy/internal/student"
)

// maxReplyTokens caps a single tutor turn.
const maxReplyTokens = 1024

// ToolClient is the slice of the supervisor the loop needs. Tool failures
// arrive inside the payload envelope, never as Go errors.
type ToolClient interface {
	CallTool(ctx context.Context, name string, args map[string]any) map[string]any
}

// Config selects the student the session runs for.
type Config struct {
	StudentID string
	Goals     []string
}

// Loop runs an interactive study session: capture a student turn, update
// the learner model through worker tools, generate the tutor's reply, and
// grade the exchange. The conversation history lives client-side; all
// student-model state lives in the worker.
type Loop struct {
	tools       ToolClient
	provider    llm.Provider
	transcriber Transcriber
	out         io.Writer
	log         *zap.Logger

	studentID string
	goals     []string
	now       func() time.Time

	system   string
	messages []llm.Message
}

// New assembles a study loop writing its transcript to out.
func New(tools ToolClient, provider llm.Provider, transcriber Transcriber, out io.Writer, cfg Config, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.StudentID == "" {
		cfg.StudentID = "default"
	}
	return &Loop{
		tools:       tools,
		provider:    provider,
		transcriber: transcriber,
		out:         out,
		log:         log.Named("tutor"),
		studentID:   cfg.StudentID,
		goals:       cfg.Goals,
		now:         time.Now,
	}
}

// Run executes one full session from greeting to saved summary. It returns
// when the transcriber reports end of input or ctx is cancelled; both end
// the session cleanly.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, renderBanner())
	fmt.Fprintln(l.out)

	if err := l.initSession(ctx); err != nil {
		return err
	}
	start := l.now()

	// Opening turn: the tutor greets and asks the first question.
	if err := l.tutorTurn(ctx); err != nil {
		return fmt.Errorf("opening turn: %w", err)
	}

	for {
		text, elapsed, err := l.transcriber.Capture(ctx)
		if err == io.EOF || err == context.Canceled || err == context.DeadlineExceeded {
			break
		}
		if err != nil {
			return fmt.Errorf("capture turn: %w", err)
		}
		if text == "" {
			fmt.Fprintln(l.out, warnStyle.Render("No input detected. Please try again."))
			continue
		}

		if err := l.studentTurn(ctx, text, elapsed); err != nil {
			return err
		}
	}

	fmt.Fprintln(l.out)
	l.finishSession(ctx, start)
	return nil
}

// initSession creates or loads the profile, starts a session record, and
// builds the personalized system prompt.
func (l *Loop) initSession(ctx context.Context) error {
	args := map[string]any{"student_id": l.studentID}
	if len(l.goals) > 0 {
		args["learning_goals"] = l.goals
	}
	created := l.call(ctx, "create_student_profile", args)
	if !succeeded(created) {
		return fmt.Errorf("create profile: %v", created["error"])
	}
	if profile, ok := created["profile"].(map[string]any); ok {
		fmt.Fprintln(l.out, renderProfile(profile))
	}

	if res := l.call(ctx, "start_session", map[string]any{"student_id": l.studentID}); !succeeded(res) {
		return fmt.Errorf("start session: %v", res["error"])
	}

	res := l.call(ctx, "generate_study_prompt", map[string]any{
		"student_id":         l.studentID,
		"include_flashcards": true,
	})
	if !succeeded(res) {
		return fmt.Errorf("generate study prompt: %v", res["error"])
	}
	l.system, _ = res["prompt"].(string)

	if res := l.call(ctx, "initialize_learning_path", map[string]any{"student_id": l.studentID}); !succeeded(res) {
		l.log.Warn("learning path init failed", zap.Any("error", res["error"]))
	}
	return nil
}

// studentTurn processes one captured student response end to end.
func (l *Loop) studentTurn(ctx context.Context, text string, elapsed time.Duration) error {
	question := l.lastAssistant()
	l.messages = append(l.messages, llm.Message{Role: llm.RoleUser, Content: text})

	l.call(ctx, "update_learning_metrics", map[string]any{
		"student_id":    l.studentID,
		"response_text": text,
		"response_time": elapsed.Seconds(),
	})

	if err := l.tutorTurn(ctx); err != nil {
		return fmt.Errorf("tutor turn: %w", err)
	}

	l.call(ctx, "analyze_student_response", map[string]any{
		"student_id":  l.studentID,
		"question":    question,
		"user_input":  text,
		"ai_response": l.lastAssistant(),
	})

	metrics := l.metrics(ctx)
	if num(metrics, "total_answers") > 0 {
		fmt.Fprintln(l.out, renderMetrics(metrics))
		fmt.Fprintln(l.out)
	}
	return nil
}

// tutorTurn generates the next tutor message and appends it to the history.
func (l *Loop) tutorTurn(ctx context.Context) error {
	resp, err := l.provider.Generate(llm.WithPurpose(ctx, "tutor"), llm.Request{
		System:      l.system,
		Messages:    l.messages,
		MaxTokens:   maxReplyTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return err
	}

	reply := strings.TrimSpace(string(resp.Content))
	l.messages = append(l.messages, llm.Message{Role: llm.RoleAssistant, Content: reply})

	fmt.Fprintln(l.out, renderReply(reply))
	fmt.Fprintln(l.out)
	return nil
}

// finishSession renders the summary and final statistics and persists the
// session record. Failures here are reported, not returned: progress saving
// is best effort once the conversation is over.
func (l *Loop) finishSession(ctx context.Context, start time.Time) {
	metrics := l.metrics(ctx)
	if num(metrics, "total_answers") > 0 {
		l.printSummary(ctx)
	}

	duration := l.now().Sub(start).Minutes()
	saved := l.call(ctx, "save_session", map[string]any{
		"student_id":         l.studentID,
		"duration_minutes":   duration,
		"questions_answered": int(num(metrics, "total_answers")),
		"correct_answers":    int(num(metrics, "correct_answers")),
	})
	if !succeeded(saved) {
		fmt.Fprintln(l.out, warnStyle.Render(fmt.Sprintf("Could not save session: %v", saved["error"])))
		return
	}

	fmt.Fprintln(l.out, renderSessionStats(duration, metrics, num(saved, "total_study_time")))
	fmt.Fprintln(l.out, dimStyle.Render("Progress saved. See you next time!"))
}

// printSummary asks the model for narrative session feedback built from the
// current student profile.
func (l *Loop) printSummary(ctx context.Context) {
	state, err := l.fetchState(ctx)
	if err != nil {
		l.log.Warn("session summary skipped", zap.Error(err))
		return
	}

	resp, err := l.provider.Generate(llm.WithPurpose(ctx, "summary"), llm.Request{
		System: "You are an educational assessment assistant. Provide concise, actionable feedback.",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: adaptive.SessionSummaryPrompt(state)},
		},
		MaxTokens:   maxReplyTokens,
		Temperature: 0.5,
	})
	if err != nil {
		fmt.Fprintln(l.out, warnStyle.Render(fmt.Sprintf("Could not generate summary: %v", err)))
		return
	}

	fmt.Fprintln(l.out, labelStyle.Render("Session Summary"))
	fmt.Fprintln(l.out, strings.TrimSpace(string(resp.Content)))
	fmt.Fprintln(l.out)
}

// fetchState rebuilds the student model from the worker's profile document.
func (l *Loop) fetchState(ctx context.Context) (*student.State, error) {
	res := l.call(ctx, "get_student_profile", map[string]any{"student_id": l.studentID})
	if !succeeded(res) {
		return nil, fmt.Errorf("get profile: %v", res["error"])
	}

	raw, err := json.Marshal(res["profile"])
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	var state student.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &state, nil
}

func (l *Loop) metrics(ctx context.Context) map[string]any {
	res := l.call(ctx, "get_learning_metrics", map[string]any{"student_id": l.studentID})
	m, _ := res["metrics"].(map[string]any)
	return m
}

// call invokes a worker tool, logging envelope-level failures.
func (l *Loop) call(ctx context.Context, name string, args map[string]any) map[string]any {
	res := l.tools.CallTool(ctx, name, args)
	if !succeeded(res) {
		l.log.Warn("tool call failed", zap.String("tool", name), zap.Any("error", res["error"]))
	}
	return res
}

// lastAssistant returns the most recent tutor message, or "" before the
// first turn.
func (l *Loop) lastAssistant() string {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Role == llm.RoleAssistant {
			return l.messages[i].Content
		}
	}
	return ""
}

func succeeded(res map[string]any) bool {
	ok, _ := res["success"].(bool)
	return ok
}
