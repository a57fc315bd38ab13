// Package analysis classifies student answers. The primary path is an LLM
// judge returning a structured verdict; when the judge is unavailable or
// non-committal, a keyword heuristic over the tutor's feedback fills in.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/studybuddyai/studybuddy/internal/llm"
)

// Verdict is the tri-state outcome of answer evaluation.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	VerdictUnclear   Verdict = "unclear"
)

// Bool maps the verdict to the wire-level tri-state: true, false, or nil
// when the exchange was not a gradable question-answer interaction.
func (v Verdict) Bool() *bool {
	switch v {
	case VerdictCorrect:
		t := true
		return &t
	case VerdictIncorrect:
		f := false
		return &f
	default:
		return nil
	}
}

var verdictSchema = &llm.Schema{
	Name: "answer_verdict",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict": map[string]any{
				"type": "string",
				"enum": []any{"correct", "incorrect", "unclear"},
			},
		},
		"required": []any{"verdict"},
	},
}

const judgeSystem = "You are an educational assessment expert. " +
	"Given a question, the student's answer, and the tutor's feedback, " +
	"decide whether the student answered correctly. " +
	"Answer unclear only when the exchange is not a question-answer interaction."

// Judge evaluates answers with an LLM, at low temperature for consistency.
type Judge struct {
	provider llm.Provider
	log      *zap.Logger
}

// NewJudge creates a Judge over the given provider. A nil provider is
// allowed; evaluation then relies purely on the feedback heuristic.
func NewJudge(provider llm.Provider, log *zap.Logger) *Judge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Judge{provider: provider, log: log.Named("judge")}
}

// Evaluate classifies the student's answer. LLM failures are logged and
// degrade to HeuristicVerdict rather than surfacing an error: a broken
// judge must not stall a study session.
func (j *Judge) Evaluate(ctx context.Context, question, userAnswer, feedback string) Verdict {
	if j.provider != nil {
		if v, err := j.askModel(ctx, question, userAnswer, feedback); err == nil {
			return v
		} else {
			j.log.Warn("LLM evaluation failed, using heuristic", zap.Error(err))
		}
	}
	return HeuristicVerdict(feedback)
}

func (j *Judge) askModel(ctx context.Context, question, userAnswer, feedback string) (Verdict, error) {
	prompt := fmt.Sprintf(
		"Question/Context: %s\n\nStudent's Answer: %s\n\nTutor's Response: %s",
		question, userAnswer, feedback)

	resp, err := j.provider.Generate(llm.WithPurpose(ctx, "judge"), llm.Request{
		System:      judgeSystem,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      verdictSchema,
		MaxTokens:   64,
		Temperature: 0.1,
	})
	if err != nil {
		return VerdictUnclear, err
	}

	var out struct {
		Verdict string `json:"verdict"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return VerdictUnclear, fmt.Errorf("decode verdict: %w", err)
	}

	switch Verdict(out.Verdict) {
	case VerdictCorrect, VerdictIncorrect, VerdictUnclear:
		return Verdict(out.Verdict), nil
	default:
		return VerdictUnclear, fmt.Errorf("unknown verdict %q", out.Verdict)
	}
}

var (
	positiveIndicators = []string{"correct", "great", "excellent", "right", "exactly", "perfect", "well done"}
	negativeIndicators = []string{"incorrect", "not quite", "actually", "mistake", "wrong", "let me clarify"}
)

// HeuristicVerdict infers correctness from the tutor's feedback wording.
// Mixed or absent signals stay unclear.
func HeuristicVerdict(feedback string) Verdict {
	lower := strings.ToLower(feedback)

	positive := containsAny(lower, positiveIndicators)
	negative := containsAny(lower, negativeIndicators)

	switch {
	case positive && !negative:
		return VerdictCorrect
	case negative && !positive:
		return VerdictIncorrect
	default:
		return VerdictUnclear
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
