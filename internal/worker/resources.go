package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/studybuddyai/studybuddy/internal/flashcards"
	"github.com/studybuddyai/studybuddy/internal/mcp"
)

const sessionHistoryScheme = "session-history://"

// ResourceDescriptors lists the worker's readable resources.
func (h *Handlers) ResourceDescriptors() []mcp.ResourceDescriptor {
	return []mcp.ResourceDescriptor{
		{
			URI:         "student-profiles://list",
			Name:        "Student Profiles List",
			MimeType:    "application/json",
			Description: "List all student profile IDs in the database",
		},
		{
			URI:         "flashcards://all",
			Name:        "All Flashcards",
			MimeType:    "application/json",
			Description: "Complete set of study flashcards",
		},
	}
}

// ReadResource resolves a resource URI to its JSON text payload. Failures
// are reported inside the payload with the same envelope the tools use.
func (h *Handlers) ReadResource(ctx context.Context, uri string) string {
	switch {
	case uri == "student-profiles://list":
		return h.profilesResource(ctx)
	case uri == "flashcards://all":
		return h.flashcardsResource()
	case strings.HasPrefix(uri, sessionHistoryScheme):
		return h.sessionHistoryResource(ctx, strings.TrimPrefix(uri, sessionHistoryScheme))
	default:
		return resourceError(fmt.Sprintf("Unknown resource URI: %s", uri))
	}
}

func (h *Handlers) profilesResource(ctx context.Context) string {
	ids, err := h.profiles.List(ctx)
	if err != nil {
		return resourceError(err.Error())
	}

	profiles := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		s, err := h.profiles.Get(ctx, id)
		if err != nil || s == nil {
			continue
		}
		entry := map[string]any{
			"student_id":    s.ID,
			"session_count": s.SessionCount,
		}
		if s.LastSession != nil {
			entry["last_session"] = s.LastSession.Format(time.RFC3339)
		} else {
			entry["last_session"] = nil
		}
		profiles = append(profiles, entry)
	}

	return mustJSON(map[string]any{
		"success":  true,
		"profiles": profiles,
	})
}

func (h *Handlers) flashcardsResource() string {
	cards, err := flashcards.Load(h.deckPath)
	if err != nil {
		return resourceError(err.Error())
	}
	return mustJSON(map[string]any{
		"success":    true,
		"flashcards": cards,
		"count":      len(cards),
	})
}

func (h *Handlers) sessionHistoryResource(ctx context.Context, studentID string) string {
	sessions, err := h.sessions.History(ctx, studentID, defaultHistoryLimit)
	if err != nil {
		return resourceError(err.Error())
	}
	return mustJSON(map[string]any{
		"success":    true,
		"student_id": studentID,
		"sessions":   sessionDocs(sessions),
	})
}

func resourceError(msg string) string {
	return mustJSON(map[string]any{"success": false, "error": msg})
}

// mustJSON serializes the payloads built above; they contain only JSON-safe
// values, so marshal errors are unreachable.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"success":false,"error":"encode failed"}`
	}
	return string(b)
}
