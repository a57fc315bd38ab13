package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddyai/studybuddy/internal/llm"
	"github.com/studybuddyai/studybuddy/internal/student"
)

// fakeTools records tool calls and answers from a canned payload table.
type fakeTools struct {
	calls    []string
	argsByID map[string]map[string]any
	payloads map[string]map[string]any
}

func newFakeTools() *fakeTools {
	profile := student.New("alex")
	raw, _ := json.Marshal(profile)
	var doc map[string]any
	_ = json.Unmarshal(raw, &doc)

	return &fakeTools{
		argsByID: make(map[string]map[string]any),
		payloads: map[string]map[string]any{
			"create_student_profile":   {"success": true, "student_id": "alex", "profile": doc},
			"get_student_profile":      {"success": true, "profile": doc},
			"start_session":            {"success": true, "session_id": "s-1", "session_count": float64(1)},
			"generate_study_prompt":    {"success": true, "prompt": "You are Study Buddy."},
			"initialize_learning_path": {"success": true, "total_nodes": float64(3)},
			"update_learning_metrics":  {"success": true, "engagement_level": 0.75},
			"analyze_student_response": {"success": true, "evaluation": "correct"},
			"get_learning_metrics": {"success": true, "metrics": map[string]any{
				"knowledge_level":  0.65,
				"engagement_level": 0.75,
				"total_answers":    float64(1),
				"correct_answers":  float64(1),
				"accuracy":         1.0,
			}},
			"save_session": {"success": true, "session_id": "s-1", "total_study_time": 12.5},
		},
	}
}

func (f *fakeTools) CallTool(_ context.Context, name string, args map[string]any) map[string]any {
	f.calls = append(f.calls, name)
	f.argsByID[name] = args
	if p, ok := f.payloads[name]; ok {
		return p
	}
	return map[string]any{"success": false, "error": "unknown tool"}
}

// scriptedTranscriber replays turns with fixed latencies, then EOF.
type scriptedTranscriber struct {
	turns   []string
	latency time.Duration
}

func (s *scriptedTranscriber) Capture(_ context.Context) (string, time.Duration, error) {
	if len(s.turns) == 0 {
		return "", 0, io.EOF
	}
	turn := s.turns[0]
	s.turns = s.turns[1:]
	return turn, s.latency, nil
}

func textResponse(text string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(text)}
}

func TestLoopRun_FullSession(t *testing.T) {
	tools := newFakeTools()
	provider := llm.NewMockProvider(
		textResponse("Welcome back! What does fork() return in the child?"),
		textResponse("Correct, fork() returns 0 in the child."),
		textResponse("Great session: strong grasp of process creation."),
	)
	transcriber := &scriptedTranscriber{turns: []string{"It returns zero"}, latency: 4 * time.Second}

	var out bytes.Buffer
	loop := New(tools, provider, transcriber, &out, Config{StudentID: "alex"}, nil)

	require.NoError(t, loop.Run(context.Background()))

	for _, tool := range []string{
		"create_student_profile",
		"start_session",
		"generate_study_prompt",
		"initialize_learning_path",
		"update_learning_metrics",
		"analyze_student_response",
		"get_learning_metrics",
		"save_session",
	} {
		assert.Contains(t, tools.calls, tool)
	}

	// The analyze call pairs the tutor's question with the student's answer.
	analyzeArgs := tools.argsByID["analyze_student_response"]
	assert.Equal(t, "Welcome back! What does fork() return in the child?", analyzeArgs["question"])
	assert.Equal(t, "It returns zero", analyzeArgs["user_input"])

	// Engagement update carries the measured latency in seconds.
	assert.Equal(t, 4.0, tools.argsByID["update_learning_metrics"]["response_time"])

	// Three generations: opening turn, reply turn, session summary.
	require.Equal(t, 3, provider.CallCount())
	// The study prompt from the worker becomes the system prompt.
	assert.Equal(t, "You are Study Buddy.", provider.Calls[0].System)

	transcript := out.String()
	for _, want := range []string{"StudyBuddyAI", "fork() returns 0", "Session Statistics", "Learning Metrics"} {
		assert.Contains(t, transcript, want)
	}
}

func TestLoopRun_EmptyTurnSkipped(t *testing.T) {
	tools := newFakeTools()
	provider := llm.NewMockProvider(
		textResponse("First question?"),
		textResponse("Summary."),
	)
	transcriber := &scriptedTranscriber{turns: []string{""}}

	var out bytes.Buffer
	loop := New(tools, provider, transcriber, &out, Config{StudentID: "alex"}, nil)

	require.NoError(t, loop.Run(context.Background()))
	assert.NotContains(t, tools.calls, "update_learning_metrics")
	assert.Contains(t, out.String(), "No input detected")
}

func TestLoopRun_ProfileFailureAborts(t *testing.T) {
	tools := newFakeTools()
	tools.payloads["create_student_profile"] = map[string]any{"success": false, "error": "boom"}

	loop := New(tools, llm.NewMockProvider(), &scriptedTranscriber{}, io.Discard, Config{}, nil)
	require.Error(t, loop.Run(context.Background()))
}

func TestLineTranscriber(t *testing.T) {
	var out bytes.Buffer
	tr := NewLineTranscriber(strings.NewReader("  hello there  \n"), &out)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(7 * time.Second)}
	tr.now = func() time.Time {
		next := times[0]
		if len(times) > 1 {
			times = times[1:]
		}
		return next
	}

	text, elapsed, err := tr.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
	assert.Equal(t, 7*time.Second, elapsed)

	_, _, err = tr.Capture(context.Background())
	assert.Equal(t, io.EOF, err)
}
