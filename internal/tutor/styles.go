package tutor

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette — calm study-session tones.
var (
	colorPrimary = lipgloss.Color("#8B5CF6") // Purple
	colorAccent  = lipgloss.Color("#14B8A6") // Teal
	colorGood    = lipgloss.Color("#22C55E") // Green
	colorWarn    = lipgloss.Color("#EAB308") // Yellow
	colorBad     = lipgloss.Color("#F43F5E") // Rose
	colorDim     = lipgloss.Color("#94A3B8") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	buddyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	youStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)
)

func renderBanner() string {
	body := titleStyle.Render("StudyBuddyAI — Personalized AI Tutor") + "\n" +
		dimStyle.Render("Press Ctrl+D to end the session and save progress")
	return bannerStyle.Render(body)
}

func studentPrompt() string {
	return youStyle.Render("You: ")
}

func renderReply(text string) string {
	return buddyStyle.Render("Study Buddy:") + "\n" + text
}

// renderProfile summarizes the student at session start.
func renderProfile(profile map[string]any) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Student Profile"))
	b.WriteString("\n")

	cognitive, _ := profile["cognitive"].(map[string]any)
	fmt.Fprintf(&b, "  Knowledge Level: %.1f%%\n", num(cognitive, "knowledge_level")*100)
	fmt.Fprintf(&b, "  Sessions: %d\n", int(num(profile, "session_count")))
	fmt.Fprintf(&b, "  Total Questions: %d\n", int(num(cognitive, "total_answers")))

	if mastered := stringsOf(cognitive, "mastered_topics"); len(mastered) > 0 {
		if len(mastered) > 3 {
			mastered = mastered[:3]
		}
		fmt.Fprintf(&b, "  Mastered: %s\n", strings.Join(mastered, ", "))
	}
	return b.String()
}

// renderMetrics shows the one-line knowledge/engagement readout after each
// graded turn, color coded by level.
func renderMetrics(metrics map[string]any) string {
	knowledge := num(metrics, "knowledge_level")
	engagement := num(metrics, "engagement_level")

	return labelStyle.Render("Learning Metrics: ") +
		"Knowledge " + levelStyle(knowledge, 0.6, 0.3).Render(fmt.Sprintf("%.0f%%", knowledge*100)) +
		dimStyle.Render(" | ") +
		"Engagement " + levelStyle(engagement, 0.6, 0.4).Render(fmt.Sprintf("%.0f%%", engagement*100))
}

func renderSessionStats(duration float64, metrics map[string]any, totalStudyTime float64) string {
	total := int(num(metrics, "total_answers"))
	correct := int(num(metrics, "correct_answers"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Session Statistics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %.1f minutes\n", labelStyle.Render("Duration:"), duration)
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render("Questions Answered:"), total)
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render("Correct Answers:"), correct)
	if total > 0 {
		fmt.Fprintf(&b, "  %s %.1f%%\n", labelStyle.Render("Session Accuracy:"), num(metrics, "accuracy")*100)
	}
	fmt.Fprintf(&b, "  %s %.1f%%\n", labelStyle.Render("Overall Knowledge:"), num(metrics, "knowledge_level")*100)
	fmt.Fprintf(&b, "  %s %.1f minutes\n", labelStyle.Render("Total Study Time:"), totalStudyTime)
	return b.String()
}

func levelStyle(v, good, warn float64) lipgloss.Style {
	switch {
	case v > good:
		return lipgloss.NewStyle().Foreground(colorGood)
	case v > warn:
		return lipgloss.NewStyle().Foreground(colorWarn)
	default:
		return lipgloss.NewStyle().Foreground(colorBad)
	}
}

func num(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	f, _ := m[key].(float64)
	return f
}

func stringsOf(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	raw, _ := m[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
