// Package tutor drives the interactive study loop: it captures student
// turns, talks to the language model, and keeps the learner model current
// through worker tool calls.
package tutor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Transcriber captures one student turn and reports how long the student
// took to produce it. The elapsed time feeds the engagement model, so
// implementations measure from when the turn is requested, not from first
// keypress or first word.
type Transcriber interface {
	Capture(ctx context.Context) (text string, elapsed time.Duration, err error)
}

// LineTranscriber reads turns as lines from a reader, typically stdin.
// It stands in for speech capture: the interface is the same, only the
// input channel differs.
type LineTranscriber struct {
	scanner *bufio.Scanner
	out     io.Writer
	now     func() time.Time
}

// NewLineTranscriber returns a transcriber reading from in and prompting
// on out.
func NewLineTranscriber(in io.Reader, out io.Writer) *LineTranscriber {
	return &LineTranscriber{
		scanner: bufio.NewScanner(in),
		out:     out,
		now:     time.Now,
	}
}

// Capture prompts for a line and returns it with the response latency.
// Returns io.EOF when the input stream ends.
func (t *LineTranscriber) Capture(ctx context.Context) (string, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	fmt.Fprint(t.out, studentPrompt())
	start := t.now()

	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", 0, err
		}
		return "", 0, io.EOF
	}

	elapsed := t.now().Sub(start)
	return strings.TrimSpace(t.scanner.Text()), elapsed, nil
}
