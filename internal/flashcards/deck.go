// Package flashcards loads and validates JSON study decks.
package flashcards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Card is a single question/answer pair.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DeckFileName is the deck the worker serves by default, resolved relative
// to the data directory.
const DeckFileName = "flashcards.json"

// Load reads a deck from a JSON file and validates every card.
func Load(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}

	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", filepath.Base(path), err)
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("deck %s is empty", filepath.Base(path))
	}
	for i, c := range cards {
		if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
			return nil, fmt.Errorf("deck %s: card %d is missing a question or answer", filepath.Base(path), i+1)
		}
	}

	return cards, nil
}

// Import validates the deck at src and copies it into dataDir under
// DeckFileName. Returns the number of cards imported.
func Import(src, dataDir string) (int, error) {
	cards, err := Load(src)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return 0, fmt.Errorf("create data dir: %w", err)
	}

	out, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode deck: %w", err)
	}

	dst := filepath.Join(dataDir, DeckFileName)
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return 0, fmt.Errorf("write deck: %w", err)
	}

	return len(cards), nil
}

// Render formats the deck as numbered study material for a system prompt.
func Render(cards []Card) string {
	var b strings.Builder
	b.WriteString("# Study Material - Flashcards\n\n")
	for i, c := range cards {
		fmt.Fprintf(&b, "%d. Q: %s\n", i+1, c.Question)
		fmt.Fprintf(&b, "   A: %s\n\n", c.Answer)
	}
	return b.String()
}
