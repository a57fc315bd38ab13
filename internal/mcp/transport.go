package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// maxFrameSize bounds a single protocol line. Study prompts embed full
// study material, so frames can be large, but never unbounded.
const maxFrameSize = 4 * 1024 * 1024

// FrameWriter serializes values as single-line JSON frames, flushing after
// every write so the peer never blocks on a buffered half-frame.
type FrameWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewFrameWriter wraps w for frame output.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: bufio.NewWriter(w)}
}

// Write marshals v, appends the newline terminator, and flushes.
func (fw *FrameWriter) Write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := fw.w.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := fw.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write frame terminator: %w", err)
	}
	if err := fw.w.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// FrameReader reads newline-terminated JSON frames.
type FrameReader struct {
	scanner *bufio.Scanner
}

// NewFrameReader wraps r for frame input.
func NewFrameReader(r io.Reader) *FrameReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxFrameSize)
	return &FrameReader{scanner: scanner}
}

// Next returns the next decoded message. Malformed JSON lines are
// discarded, never fatal: a peer bug must not take down the connection.
// Returns io.EOF when the stream ends.
func (fr *FrameReader) Next() (*Message, error) {
	for fr.scanner.Scan() {
		line := fr.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		return &msg, nil
	}
	if err := fr.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return nil, io.EOF
}
