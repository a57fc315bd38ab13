// Package adaptive renders personalized tutoring instructions from the
// student model: the system prompt for the AI tutor, the end-of-session
// summary prompt, and the goal-to-skill mapping.
package adaptive

import (
	"fmt"
	"strings"

	"github.com/studybuddyai/studybuddy/internal/student"
)

// knowledgeDescriptor buckets the knowledge level into a coarse label the
// tutor prompt can reason about.
func knowledgeDescriptor(level float64) string {
	switch {
	case level > 0.7:
		return "advanced"
	case level > 0.4:
		return "intermediate"
	default:
		return "beginner"
	}
}

// styleInstruction maps a dominant style label to a teaching directive.
var styleInstructions = map[string]string{
	"active":     "This student learns by DOING - suggest practice problems and hands-on exercises",
	"reflective": "This student learns by THINKING - give them time to reflect and ask probing questions",
	"visual":     "This student prefers VISUAL learning - use diagrams, analogies, and descriptive examples when possible",
	"verbal":     "This student prefers VERBAL learning - use clear explanations and word-based descriptions",
	"sequential": "This student prefers STEP-BY-STEP learning - present concepts in logical order",
	"global":     "This student prefers BIG-PICTURE learning - start with overview and context before details",
	"sensing":    "This student prefers CONCRETE examples - use real-world applications and practical examples",
	"intuitive":  "This student prefers ABSTRACT thinking - focus on concepts, theories, and underlying principles",
}

// styleOrder keeps the rendered directives in a stable, readable order.
var styleOrder = []string{"active", "reflective", "visual", "verbal", "sequential", "global", "sensing", "intuitive"}

// StudyPrompt renders the personalized system prompt for the AI tutor from
// the current student model. studyMaterial is prepended verbatim (usually
// the rendered flashcard deck); pass "" to omit it.
func StudyPrompt(s *student.State, studyMaterial string) string {
	descriptor := knowledgeDescriptor(s.Cognitive.KnowledgeLevel)

	var emotional strings.Builder
	if s.Affective.Motivation < 0.5 {
		emotional.WriteString("\n- Provide extra encouragement and celebrate small wins to boost motivation")
	}
	if s.Affective.Frustration > 0.6 {
		emotional.WriteString("\n- Student may be frustrated - be patient, offer hints, and break down concepts into smaller steps")
	}
	if s.Affective.Engagement < 0.5 {
		emotional.WriteString("\n- Try to increase engagement with questions, examples, and interactive explanations")
	}

	dominant := make(map[string]bool)
	for _, label := range s.LearningStyle.Dominant() {
		dominant[label] = true
	}
	var styles strings.Builder
	for _, label := range styleOrder {
		if dominant[label] {
			styles.WriteString("\n- ")
			styles.WriteString(styleInstructions[label])
		}
	}

	var b strings.Builder
	if studyMaterial != "" {
		b.WriteString(studyMaterial)
		b.WriteString("\n---\n")
	}

	fmt.Fprintf(&b, `
## Student Progress Summary
- Knowledge Level: %.1f%% (%s)
- Questions Answered: %d (%d correct)
- Mastered Topics: %s
- Struggling With: %s
- Session Count: %d
- Motivation: %.1f%%
- Engagement: %.1f%%

---

## Your Role
You are a friendly and highly adaptive AI study buddy helping a student prepare for an exam.

## Personalization Instructions
Adapt your teaching to this specific student:

**Knowledge Level**: %s
- Adjust explanation complexity to match their current level
- They have answered %d questions with %.1f%% accuracy

**Emotional State**:%s

**Learning Style Preferences**:%s

## Core Responsibilities
1. Help the student understand and memorize the study material above
2. Answer questions in a clear, supportive way
3. Quiz the student on the material when they're ready (choose appropriate difficulty)
4. Explain concepts in different ways if they're struggling
5. Provide encouragement and positive reinforcement
6. Use the study material as your primary reference
7. Help connect different concepts together
8. Continuously assess understanding and adapt your approach

## Adaptive Teaching Guidelines
- If the student answers correctly multiple times, increase difficulty and depth
- If the student struggles, simplify explanations and provide more scaffolding
- Monitor engagement and adjust interaction style accordingly
- Provide constructive feedback that builds confidence
`,
		s.Cognitive.KnowledgeLevel*100, descriptor,
		s.Cognitive.TotalCount, s.Cognitive.CorrectCount,
		topicsOrNone(s.Cognitive.Mastered, "None yet"),
		topicsOrNone(s.Cognitive.Struggling, "None identified"),
		s.SessionCount,
		s.Affective.Motivation*100,
		s.Affective.Engagement*100,
		strings.ToUpper(descriptor),
		s.Cognitive.TotalCount, s.Cognitive.KnowledgeLevel*100,
		emotional.String(),
		styles.String(),
	)

	return b.String()
}

// SessionSummaryPrompt renders the prompt that asks the tutor model for a
// short end-of-session analysis.
func SessionSummaryPrompt(s *student.State) string {
	return fmt.Sprintf(`Based on this study session, provide a brief analysis:

Student Performance:
- Total Questions: %d
- Correct Answers: %d
- Current Knowledge Level: %.1f%%
- Mastered: %s
- Struggling: %s

Engagement Metrics:
- Motivation: %.1f%%
- Engagement: %.1f%%
- Frustration: %.1f%%

Please provide:
1. Brief assessment of progress (2-3 sentences)
2. Recommended focus areas for next session
3. Suggested teaching approach adjustments

Keep it concise and actionable.`,
		s.Cognitive.TotalCount,
		s.Cognitive.CorrectCount,
		s.Cognitive.KnowledgeLevel*100,
		topicsOrNone(s.Cognitive.Mastered, "None"),
		topicsOrNone(s.Cognitive.Struggling, "None"),
		s.Affective.Motivation*100,
		s.Affective.Engagement*100,
		s.Affective.Frustration*100,
	)
}

func topicsOrNone(topics []string, none string) string {
	if len(topics) == 0 {
		return none
	}
	return strings.Join(topics, ", ")
}
