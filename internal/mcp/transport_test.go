package mcp

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf)

	if err := w.Write(Request{JSONRPC: JSONRPCVersion, ID: 7, Method: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("frame must be newline terminated")
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected single line, got %q", buf.String())
	}

	msg, err := NewFrameReader(&buf).Next()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Method != "ping" || msg.ID == nil || *msg.ID != 7 {
		t.Errorf("round trip mismatch: %+v", msg)
	}
}

func TestFrameReader_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"not json at all",
		"",
		`{"jsonrpc":"2.0","id":1,"result":{}}`,
		"{truncated",
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
	}, "\n") + "\n"

	r := NewFrameReader(strings.NewReader(input))

	msg, err := r.Next()
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if msg.ID == nil || *msg.ID != 1 {
		t.Errorf("expected id 1, got %+v", msg)
	}

	msg, err = r.Next()
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if !msg.IsNotification() || msg.Method != "notifications/initialized" {
		t.Errorf("expected notification, got %+v", msg)
	}

	if _, err = r.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestFrameReader_LargeFrame(t *testing.T) {
	big := strings.Repeat("x", 256*1024)
	input := `{"jsonrpc":"2.0","id":2,"method":"echo","params":{"text":"` + big + `"}}` + "\n"

	msg, err := NewFrameReader(strings.NewReader(input)).Next()
	if err != nil {
		t.Fatalf("read large frame: %v", err)
	}
	if msg.ID == nil || *msg.ID != 2 {
		t.Errorf("unexpected message: id=%v", msg.ID)
	}
}

func TestTailBuffer_KeepsLastBytes(t *testing.T) {
	tb := &tailBuffer{limit: 8}
	tb.Write([]byte("abcdefgh"))
	tb.Write([]byte("12345"))

	if got := tb.String(); got != "fgh12345" {
		t.Errorf("tail = %q, want %q", got, "fgh12345")
	}
}
