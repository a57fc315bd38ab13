package student

import (
	"reflect"
	"testing"
)

func TestDominant_Mapping(t *testing.T) {
	tests := []struct {
		name  string
		style LearningStyle
		want  []string
	}{
		{
			"all balanced",
			DefaultLearningStyle(),
			[]string{"balanced"},
		},
		{
			"active below threshold",
			LearningStyle{ActiveReflective: 0.3, SensingIntuitive: 0.5, VisualVerbal: 0.5, SequentialGlobal: 0.5},
			[]string{"active"},
		},
		{
			"midband contributes nothing",
			LearningStyle{ActiveReflective: 0.4, SensingIntuitive: 0.6, VisualVerbal: 0.5, SequentialGlobal: 0.5},
			[]string{"balanced"},
		},
		{
			"multiple poles",
			LearningStyle{ActiveReflective: 0.8, SensingIntuitive: 0.2, VisualVerbal: 0.1, SequentialGlobal: 0.9},
			[]string{"reflective", "sensing", "visual", "global"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.style.Dominant()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dominant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInferFromText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(ls LearningStyle) bool
	}{
		{
			"example cue shifts toward sensing",
			"can you give me an example?",
			func(ls LearningStyle) bool { return almostEqual(ls.SensingIntuitive, 0.45) },
		},
		{
			"theory cue shifts toward intuitive",
			"what is the underlying principle here",
			func(ls LearningStyle) bool { return almostEqual(ls.SensingIntuitive, 0.55) },
		},
		{
			"diagram cue shifts toward visual",
			"could you show me a diagram",
			func(ls LearningStyle) bool { return almostEqual(ls.VisualVerbal, 0.45) },
		},
		{
			"word cue shifts toward verbal",
			"just describe it to me",
			func(ls LearningStyle) bool { return almostEqual(ls.VisualVerbal, 0.55) },
		},
		{
			"step cue shifts toward sequential",
			"walk me through it step by step",
			func(ls LearningStyle) bool { return almostEqual(ls.SequentialGlobal, 0.45) },
		},
		{
			"overview cue shifts toward global",
			"give me an overview of the topic",
			func(ls LearningStyle) bool { return almostEqual(ls.SequentialGlobal, 0.55) },
		},
		{
			"no cues leaves axes alone",
			"hmm okay",
			func(ls LearningStyle) bool { return ls == DefaultLearningStyle() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := DefaultLearningStyle()
			ls.InferFromText(tt.text)
			if !tt.check(ls) {
				t.Errorf("unexpected style after %q: %+v", tt.text, ls)
			}
		})
	}
}

func TestInferFromText_Clamped(t *testing.T) {
	ls := DefaultLearningStyle()
	for range 50 {
		ls.InferFromText("show me a diagram step by step with an example")
	}
	for _, v := range []float64{ls.ActiveReflective, ls.SensingIntuitive, ls.VisualVerbal, ls.SequentialGlobal} {
		if v < 0 || v > 1 {
			t.Fatalf("axis %f out of [0,1]", v)
		}
	}
}
