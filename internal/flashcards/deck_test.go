package flashcards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDeck(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeDeck(t, `[
		{"question": "What does fork() return in the child?", "answer": "0"},
		{"question": "What is a file descriptor?", "answer": "An index into the process file table"}
	]`)

	cards, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
	if cards[0].Answer != "0" {
		t.Errorf("cards[0].Answer = %q", cards[0].Answer)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"question":`},
		{"empty deck", `[]`},
		{"missing answer", `[{"question": "q", "answer": "  "}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeDeck(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestImport(t *testing.T) {
	src := writeDeck(t, `[{"question": "q1", "answer": "a1"}]`)
	dataDir := filepath.Join(t.TempDir(), "data")

	n, err := Import(src, dataDir)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d cards, want 1", n)
	}

	cards, err := Load(filepath.Join(dataDir, DeckFileName))
	if err != nil {
		t.Fatalf("Load imported deck: %v", err)
	}
	if len(cards) != 1 || cards[0].Question != "q1" {
		t.Errorf("unexpected imported deck: %+v", cards)
	}
}

func TestRender(t *testing.T) {
	out := Render([]Card{{Question: "q1", Answer: "a1"}, {Question: "q2", Answer: "a2"}})
	for _, want := range []string{"1. Q: q1", "A: a1", "2. Q: q2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q:\n%s", want, out)
		}
	}
}
