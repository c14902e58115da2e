package domain

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// Annotation is a single coded moment of a video (phase 1).
// Annotations are immutable once saved to a session.
type Annotation struct {
	// ID is the unique identifier for the annotation.
	ID string `json:"id"`

	// VideoID is the YouTube video the moment belongs to.
	VideoID string `json:"video_id"`

	// Timestamp is the captured playback position in seconds.
	Timestamp float64 `json:"timestamp"`

	// ObservationText is what the analyst saw at the moment.
	ObservationText string `json:"observation_text"`

	// OpenCodes are short free-text labels in insertion order, without duplicates.
	OpenCodes []string `json:"open_codes"`

	// AxialCategory groups the open codes; may be empty or wiki-link wrapped.
	AxialCategory string `json:"axial_category"`

	// AnalyticalMemo is the analyst's free-form interpretation.
	AnalyticalMemo string `json:"analytical_memo"`
}

// Draft is the editable form of an annotation before it is committed.
type Draft struct {
	Timestamp       float64
	ObservationText string
	OpenCodes       []string
	AxialCategory   string
	AnalyticalMemo  string
}

// CommitOpenCode adds one typed code to codes and returns the new list.
// Surrounding whitespace and trailing commas are removed; blank codes and
// exact duplicates are ignored. The input slice is never modified.
func CommitOpenCode(codes []string, raw string) []string {
	code := cleanOpenCode(raw)
	if code == "" || slices.Contains(codes, code) {
		return codes
	}
	next := make([]string, len(codes), len(codes)+1)
	copy(next, codes)
	return append(next, code)
}

var pasteSeparators = regexp.MustCompile(`[,\n]+`)

// PasteOpenCodes splits pasted text on commas and newlines and commits
// each piece in order.
func PasteOpenCodes(codes []string, text string) []string {
	for _, piece := range pasteSeparators.Split(text, -1) {
		codes = CommitOpenCode(codes, piece)
	}
	return codes
}

// NormaliseOpenCodes re-applies the commit rules to an arbitrary list,
// dropping blanks, separator-only entries and duplicates.
func NormaliseOpenCodes(codes []string) []string {
	result := make([]string, 0, len(codes))
	for _, c := range codes {
		result = CommitOpenCode(result, c)
	}
	return result
}

// openCodeSeparators are the characters a code may not consist of alone.
const openCodeSeparators = ", \t\r\n"

// cleanOpenCode trims whitespace and any trailing run of commas and
// whitespace. A code made only of separators cleans to "".
func cleanOpenCode(raw string) string {
	code := strings.TrimSpace(strings.TrimRight(raw, openCodeSeparators))
	if strings.Trim(code, openCodeSeparators) == "" {
		return ""
	}
	return code
}

// StripWikiLink removes a leading "[[" and a trailing "]]" from s.
// Each side is removed independently; inner text is left untouched.
func StripWikiLink(s string) string {
	s = strings.TrimPrefix(s, "[[")
	return strings.TrimSuffix(s, "]]")
}

var (
	shortLinkPattern = regexp.MustCompile(`youtu\.be/([^?&\s]+)`)
	bareIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ExtractVideoID resolves a YouTube reference to its video ID.
// It accepts youtu.be short links, any URL carrying a "v" query parameter,
// and bare 11-character IDs. The boolean is false when nothing matched.
func ExtractVideoID(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	if m := shortLinkPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}

	raw := trimmed
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	if u, err := url.Parse(raw); err == nil {
		if v := u.Query().Get("v"); v != "" {
			return v, true
		}
	}

	if bareIDPattern.MatchString(trimmed) {
		return trimmed, true
	}
	return "", false
}
