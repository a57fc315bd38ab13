package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// startupGrace is how long the supervisor waits after spawning the worker
// before checking it is still alive. A worker that dies inside this window
// (bad flags, missing database directory) is reported with its stderr
// output instead of a cryptic broken-pipe error on the first call.
const startupGrace = 500 * time.Millisecond

// closeGrace is how long Close waits for the worker to exit on its own
// after stdin closes before killing it.
const closeGrace = 2 * time.Second

// stderrTailLimit caps how much worker stderr is retained for diagnostics.
const stderrTailLimit = 8 * 1024

// Supervisor owns a worker subprocess and speaks the line protocol with it.
// Calls are strictly sequential: one request on the wire at a time, matched
// to its response by id.
type Supervisor struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	writer *FrameWriter
	reader *FrameReader
	stderr *tailBuffer
	waitCh chan error
	log    *zap.Logger

	mu     sync.Mutex
	nextID int64
	alive  bool
	closed bool
}

// StartSupervisor spawns the worker command, waits out the startup grace
// period, and performs the initialize handshake. On early worker death the
// returned error includes the worker's stderr tail.
func StartSupervisor(ctx context.Context, log *zap.Logger, command string, args ...string) (*Supervisor, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cmd := exec.Command(command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr := &tailBuffer{limit: stderrTailLimit}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start worker %s: %w", command, err)
	}

	s := &Supervisor{
		cmd:    cmd,
		stdin:  stdin,
		writer: NewFrameWriter(stdin),
		reader: NewFrameReader(stdout),
		stderr: stderr,
		waitCh: make(chan error, 1),
		log:    log.Named("supervisor"),
		nextID: 1,
		alive:  true,
	}

	go func() { s.waitCh <- cmd.Wait() }()

	// Give the worker a moment to crash on startup problems.
	select {
	case <-s.waitCh:
		return nil, fmt.Errorf("worker exited during startup: %s", s.stderrTail())
	case <-ctx.Done():
		s.terminate()
		return nil, ctx.Err()
	case <-time.After(startupGrace):
	}

	if err := s.handshake(ctx); err != nil {
		s.terminate()
		return nil, fmt.Errorf("handshake: %w", err)
	}

	s.log.Debug("worker started", zap.String("command", command), zap.Int("pid", cmd.Process.Pid))
	return s, nil
}

// handshake performs initialize followed by the initialized notification.
func (s *Supervisor) handshake(ctx context.Context) error {
	raw, err := s.Call(ctx, "initialize", map[string]any{
		"protocolVersion": ProtocolVersion,
		"clientInfo": map[string]any{
			"name":    "studybuddy",
			"version": "1.0.0",
		},
		"capabilities": map[string]any{},
	})
	if err != nil {
		return err
	}

	var init InitializeResult
	if err := json.Unmarshal(raw, &init); err != nil {
		return fmt.Errorf("decode initialize result: %w", err)
	}
	s.log.Debug("worker initialized",
		zap.String("server", init.ServerInfo.Name),
		zap.String("protocol", init.ProtocolVersion))

	return s.writer.Write(Notification{
		JSONRPC: JSONRPCVersion,
		Method:  "notifications/initialized",
	})
}

// Call sends one request and blocks for its response. Responses carrying a
// protocol-level error are returned as *Error.
func (s *Supervisor) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive || s.closed {
		return nil, fmt.Errorf("worker not running")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := s.nextID
	s.nextID++

	req := Request{JSONRPC: JSONRPCVersion, ID: id, Method: method, Params: params}
	if err := s.writer.Write(req); err != nil {
		s.alive = false
		return nil, fmt.Errorf("connection lost: %w", err)
	}

	for {
		msg, err := s.reader.Next()
		if err != nil {
			s.alive = false
			if err == io.EOF {
				return nil, fmt.Errorf("no response from worker")
			}
			return nil, fmt.Errorf("connection lost: %w", err)
		}
		// The worker never initiates requests; anything without our id
		// is a stray notification and is skipped.
		if msg.ID == nil || *msg.ID != id {
			continue
		}
		if msg.Error != nil {
			return nil, msg.Error
		}
		return msg.Result, nil
	}
}

// CallTool invokes a named tool and decodes its JSON payload. Transport and
// protocol failures are folded into the same `{success:false, error:…}`
// envelope the tools themselves use, so callers handle exactly one shape.
func (s *Supervisor) CallTool(ctx context.Context, name string, args map[string]any) map[string]any {
	raw, err := s.Call(ctx, "tools/call", map[string]any{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		return errorEnvelope(err.Error())
	}

	var result ToolResult
	if err := json.Unmarshal(raw, &result); err != nil || len(result.Content) == 0 {
		return errorEnvelope("invalid response format")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		return errorEnvelope("invalid response format")
	}
	return payload
}

// ReadResource fetches a resource by URI and returns its text payload.
func (s *Supervisor) ReadResource(ctx context.Context, uri string) (string, error) {
	raw, err := s.Call(ctx, "resources/read", map[string]any{"uri": uri})
	if err != nil {
		return "", err
	}

	var result ReadResourceResult
	if err := json.Unmarshal(raw, &result); err != nil || len(result.Contents) == 0 {
		return "", fmt.Errorf("invalid response format")
	}
	return result.Contents[0].Text, nil
}

// ListTools returns the worker's tool catalog.
func (s *Supervisor) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	raw, err := s.Call(ctx, "tools/list", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Tools []ToolDescriptor `json:"tools"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode tools/list result: %w", err)
	}
	return result.Tools, nil
}

// Ping checks the worker responds to protocol traffic.
func (s *Supervisor) Ping(ctx context.Context) error {
	_, err := s.Call(ctx, "ping", nil)
	return err
}

// IsAlive reports whether the worker process is still running.
func (s *Supervisor) IsAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return false
	}
	select {
	case err := <-s.waitCh:
		s.waitCh <- err
		s.alive = false
		return false
	default:
		return true
	}
}

// Close shuts the worker down: stdin closes so the worker can flush its
// cache and exit cleanly, with a kill after the grace period. Safe to call
// more than once.
func (s *Supervisor) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.alive = false
	s.mu.Unlock()

	_ = s.stdin.Close()

	select {
	case <-s.waitCh:
	case <-time.After(closeGrace):
		s.log.Warn("worker did not exit, killing")
		s.terminate()
		<-s.waitCh
	}

	s.log.Debug("worker stopped")
	return nil
}

// terminate force-kills the worker process, best effort.
func (s *Supervisor) terminate() {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
}

func (s *Supervisor) stderrTail() string {
	tail := strings.TrimSpace(s.stderr.String())
	if tail == "" {
		return "no stderr output"
	}
	return tail
}

func errorEnvelope(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.Write(p)
	if t.buf.Len() > t.limit {
		data := t.buf.Bytes()
		trimmed := make([]byte, t.limit)
		copy(trimmed, data[len(data)-t.limit:])
		t.buf.Reset()
		t.buf.Write(trimmed)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}
