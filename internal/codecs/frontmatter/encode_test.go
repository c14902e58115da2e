package frontmatter

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

func sampleAnnotation() domain.Annotation {
	return domain.Annotation{
		ID:              "a1",
		VideoID:         "abc123",
		Timestamp:       65.4,
		ObservationText: "A child cries.",
		OpenCodes:       []string{"fear", "hope"},
		AxialCategory:   "Emotional Tone",
		AnalyticalMemo:  "Possible theme.",
	}
}

func TestEncodeAnnotation(t *testing.T) {
	got := EncodeAnnotation(sampleAnnotation())

	want := `---
video_id: abc123
timestamp: 65.4
open_codes:
  - fear
  - hope
axial_category: "[[Emotional Tone]]"
---

> A child cries.

Possible theme.`
	assert.Equal(t, want, got)
}

func TestEncodeAnnotation_Empty(t *testing.T) {
	got := EncodeAnnotation(domain.Annotation{VideoID: "v", Timestamp: 3})

	want := `---
video_id: v
timestamp: 3.0
open_codes:
  []
axial_category: ""
---

> *No observation recorded.*`
	assert.Equal(t, want, got)
}

func TestEncodeAnnotation_TimestampRounding(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{1.25, "timestamp: 1.3\n"},
		{0.25, "timestamp: 0.3\n"},
		{2.75, "timestamp: 2.8\n"},
		{0.15, "timestamp: 0.1\n"},
		{12.04, "timestamp: 12.0\n"},
		{12.06, "timestamp: 12.1\n"},
		{0, "timestamp: 0.0\n"},
	}
	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.seconds, 'g', -1, 64), func(t *testing.T) {
			got := EncodeAnnotation(domain.Annotation{VideoID: "v", Timestamp: tt.seconds})
			assert.Contains(t, got, "\n"+tt.want)
		})
	}
}

func TestEncodeAnnotation_StripsExistingWikiLink(t *testing.T) {
	a := sampleAnnotation()
	a.AxialCategory = "[[Emotional Tone]]"

	got := EncodeAnnotation(a)

	assert.Contains(t, got, `axial_category: "[[Emotional Tone]]"`)
	assert.NotContains(t, got, "[[[[")
}

func TestEncodeAnnotation_MultilineObservation(t *testing.T) {
	a := sampleAnnotation()
	a.ObservationText = "line one\nline two"
	a.AnalyticalMemo = ""

	got := EncodeAnnotation(a)

	assert.True(t, strings.HasSuffix(got, "> line one\n> line two"))
}

func TestEncodeAnnotation_RoundTrip(t *testing.T) {
	encoded := EncodeAnnotation(sampleAnnotation())

	doc := Decode("abc123-1.md", encoded)

	require.Nil(t, doc.ParseError)
	assert.Equal(t, "Emotional Tone", doc.AxialCategory)
	assert.Nil(t, doc.IdentifiedCategories)
	assert.Nil(t, doc.OverarchingThemes)
}

func TestEncodeSession_Empty(t *testing.T) {
	assert.Equal(t, "", EncodeSession("abc123", nil, time.Now()))
	assert.Equal(t, "", EncodeSession("abc123", []domain.Annotation{}, time.Now()))
}

func TestEncodeSession_AggregatesOpenCodes(t *testing.T) {
	anns := []domain.Annotation{
		{VideoID: "v", Timestamp: 1, OpenCodes: []string{"a", "b"}},
		{VideoID: "v", Timestamp: 2, OpenCodes: []string{"b", "c"}},
		{VideoID: "v", Timestamp: 3, OpenCodes: []string{"a"}},
	}

	got := EncodeSession("v", anns, time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC))

	assert.Contains(t, got, "open_codes:\n  - a\n  - b\n  - c\naxial_categories:")
	assert.Contains(t, got, "coded_date: 2026-03-09\n")
	assert.Contains(t, got, "total_annotations: 3\n")
}

func TestEncodeSession_Document(t *testing.T) {
	anns := []domain.Annotation{
		{
			VideoID:         "v",
			Timestamp:       65.4,
			ObservationText: "A child cries.",
			OpenCodes:       []string{"fear"},
			AxialCategory:   "[[Tone]]",
			AnalyticalMemo:  "Memo.",
		},
		{
			VideoID:       "v",
			Timestamp:     5,
			AxialCategory: "Tone ",
		},
		{
			VideoID:       "v",
			Timestamp:     600,
			AxialCategory: "Setting",
		},
	}

	got := EncodeSession("v", anns, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	want := "---\n" +
		"video_id: v\n" +
		"coded_date: 2026-01-02\n" +
		"total_annotations: 3\n" +
		"open_codes:\n" +
		"  - fear\n" +
		"axial_categories:\n" +
		"  - \"[[Tone]]\"\n" +
		"  - \"[[Setting]]\"\n" +
		"---\n\n" +
		"## Annotation 1 — 1:05\n\n" +
		"> A child cries.\n\n" +
		"**Open codes:** `fear`\n\n" +
		"**Axial category:** [[Tone]]\n\n" +
		"Memo." +
		"\n\n---\n\n" +
		"## Annotation 2 — 0:05\n\n" +
		"> *No observation recorded.*\n\n" +
		"**Open codes:** *none*\n\n" +
		"**Axial category:** [[Tone]]" +
		"\n\n---\n\n" +
		"## Annotation 3 — 10:00\n\n" +
		"> *No observation recorded.*\n\n" +
		"**Open codes:** *none*\n\n" +
		"**Axial category:** [[Setting]]"
	assert.Equal(t, want, got)
}

func TestEncodeSession_NoCategories(t *testing.T) {
	got := EncodeSession("v", []domain.Annotation{{VideoID: "v"}}, time.Now())
	assert.Contains(t, got, "open_codes:\n  []\naxial_categories:\n  []\n---")
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5.9, "0:05"},
		{59.99, "0:59"},
		{60, "1:00"},
		{65.4, "1:05"},
		{3599, "59:59"},
		{3600, "60:00"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.seconds))
		})
	}
}

func TestCodec_UsesClock(t *testing.T) {
	fixed := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	c := New(WithClock(func() time.Time { return fixed }))

	got := c.EncodeSession("v", []domain.Annotation{{VideoID: "v"}})

	assert.Contains(t, got, "coded_date: 2025-12-31")
}
