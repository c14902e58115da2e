package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeVariableName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string falls back", input: "", expected: "variable"},
		{name: "whitespace only falls back", input: "   ", expected: "variable"},
		{name: "punctuation only falls back", input: "###", expected: "variable"},
		{name: "leading digit gets underscore", input: "3 Strikes!", expected: "_3_strikes"},
		{name: "spaces become underscores", input: "Emotional Tone", expected: "emotional_tone"},
		{name: "hyphens become underscores", input: "self-harm", expected: "self_harm"},
		{name: "mixed separator run collapses", input: "power - dynamics", expected: "power_dynamics"},
		{name: "tabs and newlines collapse", input: "a\t\n b", expected: "a_b"},
		{name: "surrounding whitespace trimmed", input: "  Violence  ", expected: "violence"},
		{name: "existing underscores kept", input: "violence_indicators", expected: "violence_indicators"},
		{name: "non-ascii letters dropped", input: "Café Culture", expected: "caf_culture"},
		{name: "separator broken by punctuation", input: "a-!-b", expected: "a__b"},
		{name: "lone hyphen becomes underscore", input: " - ", expected: "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeVariableName(tt.input))
		})
	}
}

func TestSanitizeVariableName_Idempotent(t *testing.T) {
	inputs := []string{
		"", "   ", "###", "3 Strikes!", "Emotional Tone", "--x--", "9", "_9", "Ünïcödé  Wörds",
		"already_clean", " leading and trailing ", "a-!-b", "[[Wiki Link]]",
	}
	for _, in := range inputs {
		once := SanitizeVariableName(in)
		assert.Equal(t, once, SanitizeVariableName(once), "input %q", in)
	}
}

func TestSanitizeVariableName_OutputShape(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9_]+$`)
	inputs := []string{"", "42", "Fear & Hope", "  —  ", "Tab\tSeparated", "x"}
	for _, in := range inputs {
		out := SanitizeVariableName(in)
		assert.Regexp(t, valid, out, "input %q", in)
		assert.False(t, out[0] >= '0' && out[0] <= '9', "input %q starts with digit", in)
	}
}
