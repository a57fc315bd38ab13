package student

import "strings"

// LearningStyle holds the four Felder-Silverman preference axes. Each axis is
// a bipolar scalar in [0,1]: the low end is the first-named pole, the high
// end the second, and the 0.4–0.6 midband reads as balanced.
type LearningStyle struct {
	ActiveReflective float64 `json:"active_reflective"`
	SensingIntuitive float64 `json:"sensing_intuitive"`
	VisualVerbal     float64 `json:"visual_verbal"`
	SequentialGlobal float64 `json:"sequential_global"`
}

// DefaultLearningStyle returns all axes at the balanced midpoint.
func DefaultLearningStyle() LearningStyle {
	return LearningStyle{
		ActiveReflective: 0.5,
		SensingIntuitive: 0.5,
		VisualVerbal:     0.5,
		SequentialGlobal: 0.5,
	}
}

// styleNudge is how far one triggered keyword category moves an axis.
const styleNudge = 0.05

// Keyword cues, matched case-insensitively as substrings of the student's
// reply. Each triggered category nudges its axis once per interaction.
var (
	sensingCues    = []string{"example", "practical", "real", "concrete"}
	intuitiveCues  = []string{"theory", "concept", "principle", "abstract"}
	visualCues     = []string{"diagram", "picture", "visual", "show me"}
	verbalCues     = []string{"in words", "tell me", "describe", "verbally"}
	sequentialCues = []string{"step", "order", "first", "next", "sequence"}
	globalCues     = []string{"overview", "big picture", "overall", "summary"}
)

// InferFromText nudges preference axes based on cues in the student's reply.
func (ls *LearningStyle) InferFromText(text string) {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, sensingCues):
		ls.SensingIntuitive = clamp(ls.SensingIntuitive - styleNudge)
	case containsAny(lower, intuitiveCues):
		ls.SensingIntuitive = clamp(ls.SensingIntuitive + styleNudge)
	}

	switch {
	case containsAny(lower, visualCues):
		ls.VisualVerbal = clamp(ls.VisualVerbal - styleNudge)
	case containsAny(lower, verbalCues):
		ls.VisualVerbal = clamp(ls.VisualVerbal + styleNudge)
	}

	switch {
	case containsAny(lower, sequentialCues):
		ls.SequentialGlobal = clamp(ls.SequentialGlobal - styleNudge)
	case containsAny(lower, globalCues):
		ls.SequentialGlobal = clamp(ls.SequentialGlobal + styleNudge)
	}
}

// Dominant returns the pole labels the student leans toward, one per axis
// outside the balanced midband. An all-balanced profile reports ["balanced"].
func (ls *LearningStyle) Dominant() []string {
	var styles []string

	axes := []struct {
		value     float64
		low, high string
	}{
		{ls.ActiveReflective, "active", "reflective"},
		{ls.SensingIntuitive, "sensing", "intuitive"},
		{ls.VisualVerbal, "visual", "verbal"},
		{ls.SequentialGlobal, "sequential", "global"},
	}

	for _, axis := range axes {
		switch {
		case axis.value < 0.4:
			styles = append(styles, axis.low)
		case axis.value > 0.6:
			styles = append(styles, axis.high)
		}
	}

	if len(styles) == 0 {
		return []string{"balanced"}
	}
	return styles
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
