package worker

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/studybuddyai/studybuddy/internal/mcp"
)

// testClient drives a Server over in-process pipes, speaking the same
// frames the supervisor would.
type testClient struct {
	t      *testing.T
	writer *mcp.FrameWriter
	reader *mcp.FrameReader
	nextID int64
}

func startServer(t *testing.T, f *fixture) (*testClient, chan error, *io.PipeWriter) {
	t.Helper()

	srv := NewServer(f.handlers, f.cache, nil)

	serverIn, clientOut := io.Pipe()
	clientIn, serverOut := io.Pipe()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), serverIn, serverOut) }()

	return &testClient{
		t:      t,
		writer: mcp.NewFrameWriter(clientOut),
		reader: mcp.NewFrameReader(clientIn),
		nextID: 1,
	}, done, clientOut
}

func (c *testClient) call(method string, params any) *mcp.Message {
	c.t.Helper()

	id := c.nextID
	c.nextID++
	if err := c.writer.Write(mcp.Request{JSONRPC: mcp.JSONRPCVersion, ID: id, Method: method, Params: params}); err != nil {
		c.t.Fatalf("write %s: %v", method, err)
	}

	msg, err := c.reader.Next()
	if err != nil {
		c.t.Fatalf("read %s response: %v", method, err)
	}
	if msg.ID == nil || *msg.ID != id {
		c.t.Fatalf("%s response id mismatch: %v", method, msg.ID)
	}
	return msg
}

func (c *testClient) callTool(name string, args map[string]any) map[string]any {
	c.t.Helper()

	msg := c.call("tools/call", map[string]any{"name": name, "arguments": args})
	if msg.Error != nil {
		c.t.Fatalf("tools/call %s: %v", name, msg.Error)
	}

	var result mcp.ToolResult
	if err := json.Unmarshal(msg.Result, &result); err != nil || len(result.Content) == 0 {
		c.t.Fatalf("decode tool result: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		c.t.Fatalf("decode tool payload: %v", err)
	}
	return payload
}

func TestServe_FullSession(t *testing.T) {
	f := newFixture(t)
	client, done, clientOut := startServer(t, f)

	// Handshake.
	msg := client.call("initialize", map[string]any{
		"protocolVersion": mcp.ProtocolVersion,
		"clientInfo":      map[string]any{"name": "test", "version": "0"},
	})
	var init mcp.InitializeResult
	if err := json.Unmarshal(msg.Result, &init); err != nil {
		t.Fatalf("decode initialize: %v", err)
	}
	if init.ServerInfo.Name != serverName {
		t.Errorf("server name = %q", init.ServerInfo.Name)
	}
	if err := client.writer.Write(mcp.Notification{JSONRPC: mcp.JSONRPCVersion, Method: "notifications/initialized"}); err != nil {
		t.Fatalf("write initialized: %v", err)
	}

	// Catalog.
	msg = client.call("tools/list", nil)
	var tools struct {
		Tools []mcp.ToolDescriptor `json:"tools"`
	}
	if err := json.Unmarshal(msg.Result, &tools); err != nil {
		t.Fatalf("decode tools/list: %v", err)
	}
	if len(tools.Tools) != 14 {
		t.Errorf("tool count = %d, want 14", len(tools.Tools))
	}

	// A tool call through the full envelope.
	payload := client.callTool("create_student_profile", map[string]any{"student_id": "alex"})
	if payload["success"] != true {
		t.Fatalf("create failed: %v", payload["error"])
	}

	// Resources.
	msg = client.call("resources/read", map[string]any{"uri": "flashcards://all"})
	var read mcp.ReadResourceResult
	if err := json.Unmarshal(msg.Result, &read); err != nil || len(read.Contents) == 0 {
		t.Fatalf("decode resources/read: %v", err)
	}
	var deck struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal([]byte(read.Contents[0].Text), &deck); err != nil {
		t.Fatalf("decode deck payload: %v", err)
	}
	if !deck.Success || deck.Count != 3 {
		t.Errorf("deck = %+v", deck)
	}

	// A malformed line must be ignored, not fatal.
	if _, err := clientOut.Write([]byte("this is not json\n")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if msg = client.call("ping", nil); msg.Error != nil {
		t.Fatalf("ping after garbage: %v", msg.Error)
	}

	// Unknown method gets a protocol error.
	msg = client.call("teleport", nil)
	if msg.Error == nil || msg.Error.Code != mcp.CodeMethodNotFound {
		t.Errorf("expected method-not-found, got %v", msg.Error)
	}

	// Closing stdin shuts the worker down and flushes the cache.
	clientOut.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down on EOF")
	}

	saved, err := f.store.Profiles().Get(context.Background(), "alex")
	if err != nil || saved == nil {
		t.Fatalf("profile not flushed on shutdown: %v", err)
	}
}
