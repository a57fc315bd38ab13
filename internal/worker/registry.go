package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/studybuddyai/studybuddy/internal/mcp"
)

// Handler executes one tool. It returns the tool's JSON payload; errors are
// folded into the standard error envelope by the dispatcher.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Tool couples a tool's wire descriptor with its handler.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     Handler
}

// Registry holds the tool catalog in registration order and dispatches
// calls by name. Arguments are validated against the declared input schema
// before the handler runs.
type Registry struct {
	order []string
	tools map[string]Tool

	compileMu sync.Mutex
	compiled  map[string]*jsonschema.Schema

	log *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		tools:    make(map[string]Tool),
		compiled: make(map[string]*jsonschema.Schema),
		log:      log.Named("registry"),
	}
}

// Register adds a tool. Re-registering a name panics: the catalog is
// assembled once at startup and duplicates are a programming error.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("tool %q registered twice", t.Name))
	}
	r.order = append(r.order, t.Name)
	r.tools[t.Name] = t
}

// Descriptors returns the catalog for tools/list, in registration order.
func (r *Registry) Descriptors() []mcp.ToolDescriptor {
	out := make([]mcp.ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, mcp.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return out
}

// Dispatch runs the named tool. Every failure mode — unknown tool, invalid
// arguments, handler error, handler panic — produces the same
// `{success:false, error, kind}` envelope so the client handles one shape.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (result map[string]any) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("tool panicked", zap.String("tool", name), zap.Any("panic", rec))
			result = errorResult(fmt.Sprintf("internal error in %s: %v", name, rec), "panic")
		}
	}()

	t, ok := r.tools[name]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name), "unknown_tool")
	}

	if args == nil {
		args = map[string]any{}
	}

	if err := r.validateArgs(t, args); err != nil {
		return errorResult(err.Error(), "invalid_arguments")
	}

	out, err := t.Handler(ctx, args)
	if err != nil {
		r.log.Warn("tool failed", zap.String("tool", name), zap.Error(err))
		return errorResult(err.Error(), errKind(err))
	}
	return out
}

// validateArgs checks args against the tool's declared input schema.
func (r *Registry) validateArgs(t Tool, args map[string]any) error {
	if t.InputSchema == nil {
		return nil
	}

	compiled, err := r.compiledSchema(t)
	if err != nil {
		return fmt.Errorf("compile input schema for %s: %w", t.Name, err)
	}

	// Round-trip so numbers arrive as the float64/json.Number forms the
	// validator expects regardless of how the caller built the map.
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", t.Name, err)
	}
	return nil
}

func (r *Registry) compiledSchema(t Tool) (*jsonschema.Schema, error) {
	r.compileMu.Lock()
	defer r.compileMu.Unlock()

	if s, ok := r.compiled[t.Name]; ok {
		return s, nil
	}

	raw, err := json.Marshal(t.InputSchema)
	if err != nil {
		return nil, err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("tool://%s.json", t.Name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, err
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	r.compiled[t.Name] = s
	return s, nil
}

func errorResult(msg, kind string) map[string]any {
	return map[string]any{"success": false, "error": msg, "kind": kind}
}

func errKind(err error) string {
	switch {
	case errors.Is(err, ErrNotCached):
		return "not_cached"
	default:
		return "tool_error"
	}
}
