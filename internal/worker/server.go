package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/studybuddyai/studybuddy/internal/mcp"
)

// serverName identifies this worker in the initialize handshake.
const (
	serverName    = "studybuddy-worker"
	serverVersion = "1.0.0"
)

// Server runs the worker side of the protocol: it reads one frame per line
// from in, dispatches, and writes responses to out. All requests are served
// strictly in order.
type Server struct {
	handlers *Handlers
	registry *Registry
	cache    *ProfileCache
	log      *zap.Logger
}

// NewServer assembles a server over the given handlers.
func NewServer(handlers *Handlers, cache *ProfileCache, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		registry: handlers.Registry(log),
		cache:    cache,
		log:      log.Named("server"),
	}
}

// Serve processes frames until in reaches EOF or ctx is cancelled, then
// flushes every cached profile. Cancellation typically comes from the
// signal handler installed by Run.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := mcp.NewFrameReader(in)
	writer := mcp.NewFrameWriter(out)

	defer s.cache.FlushAll(context.Background())

	type frame struct {
		msg *mcp.Message
		err error
	}
	// The read loop runs in its own goroutine so a signal can interrupt
	// a worker blocked on stdin.
	frames := make(chan frame)
	go func() {
		defer close(frames)
		for {
			msg, err := reader.Next()
			frames <- frame{msg, err}
			if err != nil {
				return
			}
		}
	}()

	for {
		var f frame
		select {
		case <-ctx.Done():
			s.log.Info("shutting down", zap.String("reason", "signal"))
			return nil
		case f = <-frames:
		}

		if f.err == io.EOF {
			s.log.Info("shutting down", zap.String("reason", "stdin closed"))
			return nil
		}
		if f.err != nil {
			return fmt.Errorf("read request: %w", f.err)
		}
		msg := f.msg

		if msg.IsNotification() {
			s.handleNotification(msg)
			continue
		}
		if msg.ID == nil {
			continue
		}

		resp := s.handleRequest(ctx, msg)
		if err := writer.Write(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// Run serves stdin/stdout with SIGINT/SIGTERM triggering a clean shutdown
// and cache flush.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) handleNotification(msg *mcp.Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.log.Debug("client initialized")
	default:
		s.log.Debug("ignoring notification", zap.String("method", msg.Method))
	}
}

func (s *Server) handleRequest(ctx context.Context, msg *mcp.Message) mcp.Response {
	s.log.Debug("request", zap.String("method", msg.Method), zap.Int64("id", *msg.ID))

	switch msg.Method {
	case "initialize":
		return s.result(msg, mcp.InitializeResult{
			ProtocolVersion: mcp.ProtocolVersion,
			ServerInfo:      mcp.ServerInfo{Name: serverName, Version: serverVersion},
			Capabilities: map[string]any{
				"tools":     map[string]any{},
				"resources": map[string]any{},
			},
		})

	case "ping":
		return s.result(msg, map[string]any{})

	case "tools/list":
		return s.result(msg, map[string]any{"tools": s.registry.Descriptors()})

	case "tools/call":
		var params struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments"`
		}
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.rpcError(msg, mcp.CodeInvalidParams, "invalid tools/call params")
		}
		payload := s.registry.Dispatch(ctx, params.Name, params.Arguments)
		return s.result(msg, mcp.NewToolResult(mustJSON(payload)))

	case "resources/list":
		return s.result(msg, map[string]any{"resources": s.handlers.ResourceDescriptors()})

	case "resources/read":
		var params struct {
			URI string `json:"uri"`
		}
		if err := json.Unmarshal(msg.Params, &params); err != nil || params.URI == "" {
			return s.rpcError(msg, mcp.CodeInvalidParams, "invalid resources/read params")
		}
		text := s.handlers.ReadResource(ctx, params.URI)
		return s.result(msg, mcp.ReadResourceResult{
			Contents: []mcp.ResourceContents{{
				URI:      params.URI,
				MimeType: "application/json",
				Text:     text,
			}},
		})

	default:
		return s.rpcError(msg, mcp.CodeMethodNotFound, fmt.Sprintf("method not found: %s", msg.Method))
	}
}

func (s *Server) result(msg *mcp.Message, v any) mcp.Response {
	raw, err := json.Marshal(v)
	if err != nil {
		return s.rpcError(msg, mcp.CodeInternalError, "encode result")
	}
	return mcp.Response{JSONRPC: mcp.JSONRPCVersion, ID: msg.ID, Result: raw}
}

func (s *Server) rpcError(msg *mcp.Message, code int, text string) mcp.Response {
	return mcp.Response{
		JSONRPC: mcp.JSONRPCVersion,
		ID:      msg.ID,
		Error:   &mcp.Error{Code: code, Message: text},
	}
}
