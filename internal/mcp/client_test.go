package mcp_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studybuddyai/studybuddy/internal/analysis"
	"github.com/studybuddyai/studybuddy/internal/mcp"
	"github.com/studybuddyai/studybuddy/internal/store"
	"github.com/studybuddyai/studybuddy/internal/worker"
)

const helperDeck = `[
  {"question": "What does fork() return in the child process?", "answer": "0"},
  {"question": "What signal does Ctrl+C send?", "answer": "SIGINT"}
]`

// TestHelperProcess is not a real test: when re-executed with the helper
// environment set, the test binary becomes the worker subprocess under
// supervision.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	mode := os.Getenv("STUDYBUDDY_HELPER_MODE")
	switch mode {
	case "worker":
		st, err := store.Open("file:helper?mode=memory&cache=shared")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer st.Close()

		cache := worker.NewProfileCache(st.Profiles(), nil)
		h := worker.NewHandlers(cache, st.Profiles(), st.Sessions(), analysis.NewJudge(nil, nil), os.Getenv("STUDYBUDDY_HELPER_DATA_DIR"), nil)
		if err := worker.NewServer(h, cache, nil).Serve(context.Background(), os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "die":
		fmt.Fprintln(os.Stderr, "fatal: cannot open database")
		os.Exit(1)
	}
}

func startHelper(t *testing.T, mode string) (*mcp.Supervisor, error) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "flashcards.json"), []byte(helperDeck), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}

	t.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Setenv("STUDYBUDDY_HELPER_MODE", mode)
	t.Setenv("STUDYBUDDY_HELPER_DATA_DIR", dir)

	return mcp.StartSupervisor(context.Background(), nil, os.Args[0], "-test.run=TestHelperProcess")
}

func TestSupervisor_Lifecycle(t *testing.T) {
	s, err := startHelper(t, "worker")
	if err != nil {
		t.Fatalf("start supervisor: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if !s.IsAlive() {
		t.Fatal("worker should be alive after handshake")
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	tools, err := s.ListTools(ctx)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if len(tools) != 14 {
		t.Errorf("tool count = %d, want 14", len(tools))
	}

	payload := s.CallTool(ctx, "create_student_profile", map[string]any{"student_id": "alex"})
	if payload["success"] != true {
		t.Fatalf("create failed: %v", payload["error"])
	}
	payload = s.CallTool(ctx, "get_learning_metrics", map[string]any{"student_id": "alex"})
	if payload["success"] != true {
		t.Fatalf("metrics failed: %v", payload["error"])
	}

	text, err := s.ReadResource(ctx, "flashcards://all")
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if !strings.Contains(text, "fork()") {
		t.Errorf("deck payload missing card: %s", text)
	}

	// Tool-level failure stays in the payload envelope.
	payload = s.CallTool(ctx, "no_such_tool", nil)
	if payload["success"] != false {
		t.Error("unknown tool should fail inside the envelope")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if s.IsAlive() {
		t.Error("worker should be dead after close")
	}

	payload = s.CallTool(ctx, "get_learning_metrics", map[string]any{"student_id": "alex"})
	if payload["success"] != false || !strings.Contains(payload["error"].(string), "worker not running") {
		t.Errorf("call after close = %v", payload)
	}
}

func TestSupervisor_WorkerDiesOnStartup(t *testing.T) {
	_, err := startHelper(t, "die")
	if err == nil {
		t.Fatal("expected startup error")
	}
	if !strings.Contains(err.Error(), "cannot open database") {
		t.Errorf("error should carry worker stderr, got: %v", err)
	}
}
