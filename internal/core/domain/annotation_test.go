package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitOpenCode(t *testing.T) {
	tests := []struct {
		name     string
		codes    []string
		raw      string
		expected []string
	}{
		{name: "adds trimmed code", codes: nil, raw: "  fear ", expected: []string{"fear"}},
		{name: "strips trailing commas", codes: []string{"a"}, raw: "hope,,", expected: []string{"a", "hope"}},
		{name: "ignores duplicate", codes: []string{"fear"}, raw: "fear", expected: []string{"fear"}},
		{name: "ignores blank", codes: []string{"fear"}, raw: "   ", expected: []string{"fear"}},
		{name: "ignores separator only", codes: []string{"fear"}, raw: " , ", expected: []string{"fear"}},
		{name: "ignores mixed separators", codes: []string{"fear"}, raw: " , ,", expected: []string{"fear"}},
		{name: "ignores comma run with space", codes: nil, raw: ",,, ,", expected: nil},
		{name: "ignores alternating separators", codes: nil, raw: ", , ,", expected: nil},
		{name: "strips trailing comma and space run", codes: nil, raw: "hope , ,", expected: []string{"hope"}},
		{name: "case differs is distinct", codes: []string{"fear"}, raw: "Fear", expected: []string{"fear", "Fear"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CommitOpenCode(tt.codes, tt.raw))
		})
	}
}

func TestCommitOpenCode_DoesNotModifyInput(t *testing.T) {
	codes := make([]string, 1, 4)
	codes[0] = "a"

	next := CommitOpenCode(codes, "b")

	assert.Equal(t, []string{"a"}, codes)
	assert.Equal(t, []string{"a", "b"}, next)
	next[0] = "changed"
	assert.Equal(t, "a", codes[0])
}

func TestPasteOpenCodes(t *testing.T) {
	got := PasteOpenCodes([]string{"fear"}, "hope, fear\n\nanger,,  ,joy")
	assert.Equal(t, []string{"fear", "hope", "anger", "joy"}, got)
}

func TestNormaliseOpenCodes(t *testing.T) {
	got := NormaliseOpenCodes([]string{" a ", "b", "a", ",", "", "c,", " , ,", "d , "})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.NotNil(t, NormaliseOpenCodes(nil))
}

func TestStripWikiLink(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[[Emotional Tone]]", "Emotional Tone"},
		{"Emotional Tone", "Emotional Tone"},
		{"[[Open only", "Open only"},
		{"Close only]]", "Close only"},
		{"[[[[Nested]]]]", "[[Nested]]"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripWikiLink(tt.input))
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{name: "watch url", input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ", wantOK: true},
		{name: "watch url without scheme", input: "youtube.com/watch?v=abc123&t=10", wantID: "abc123", wantOK: true},
		{name: "short link", input: "https://youtu.be/dQw4w9WgXcQ?t=42", wantID: "dQw4w9WgXcQ", wantOK: true},
		{name: "bare id", input: "  dQw4w9WgXcQ ", wantID: "dQw4w9WgXcQ", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "url without v", input: "https://example.com/video", wantOK: false},
		{name: "short bare string", input: "abc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
