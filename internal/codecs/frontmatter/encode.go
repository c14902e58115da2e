package frontmatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

const (
	emptySequence        = "  []"
	noObservation        = "> *No observation recorded.*"
	noOpenCodes          = "*none*"
	sectionSeparator     = "\n\n---\n\n"
	codedDateLayout      = "2006-01-02"
	frontmatterDelimiter = "---"
)

// EncodeAnnotation renders one annotation as a frontmatter document.
func EncodeAnnotation(a domain.Annotation) string {
	var b strings.Builder

	b.WriteString(frontmatterDelimiter + "\n")
	fmt.Fprintf(&b, "video_id: %s\n", a.VideoID)
	fmt.Fprintf(&b, "timestamp: %s\n", formatSeconds(a.Timestamp))
	b.WriteString("open_codes:\n")
	b.WriteString(sequence(a.OpenCodes, func(s string) string { return s }))
	b.WriteString("\n")
	fmt.Fprintf(&b, "axial_category: %s\n", quotedWikiLink(a.AxialCategory))
	b.WriteString(frontmatterDelimiter)

	b.WriteString("\n\n")
	b.WriteString(blockquote(a.ObservationText))
	if a.AnalyticalMemo != "" {
		b.WriteString("\n\n")
		b.WriteString(a.AnalyticalMemo)
	}
	return b.String()
}

// EncodeSession renders every annotation of a video into one document.
// Open codes and axial categories are aggregated across annotations in
// first-seen order. An empty batch encodes to the empty string.
func EncodeSession(videoID string, annotations []domain.Annotation, now time.Time) string {
	if len(annotations) == 0 {
		return ""
	}

	codes := newOrderedSet()
	categories := newOrderedSet()
	for i := range annotations {
		for _, code := range annotations[i].OpenCodes {
			codes.add(code)
		}
		if name := strings.TrimSpace(domain.StripWikiLink(annotations[i].AxialCategory)); name != "" {
			categories.add(name)
		}
	}

	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")
	fmt.Fprintf(&b, "video_id: %s\n", videoID)
	fmt.Fprintf(&b, "coded_date: %s\n", now.Format(codedDateLayout))
	fmt.Fprintf(&b, "total_annotations: %d\n", len(annotations))
	b.WriteString("open_codes:\n")
	b.WriteString(sequence(codes.items, func(s string) string { return s }))
	b.WriteString("\naxial_categories:\n")
	b.WriteString(sequence(categories.items, quotedWikiLink))
	b.WriteString("\n" + frontmatterDelimiter + "\n\n")

	sections := make([]string, 0, len(annotations))
	for i := range annotations {
		sections = append(sections, sessionSection(i+1, &annotations[i]))
	}
	b.WriteString(strings.Join(sections, sectionSeparator))
	return b.String()
}

func sessionSection(index int, a *domain.Annotation) string {
	parts := []string{
		fmt.Sprintf("## Annotation %d — %s", index, FormatTimestamp(a.Timestamp)),
		blockquote(a.ObservationText),
		"**Open codes:** " + pills(a.OpenCodes),
	}
	if name := strings.TrimSpace(domain.StripWikiLink(a.AxialCategory)); name != "" {
		parts = append(parts, fmt.Sprintf("**Axial category:** [[%s]]", name))
	}
	if a.AnalyticalMemo != "" {
		parts = append(parts, a.AnalyticalMemo)
	}
	return strings.Join(parts, "\n\n")
}

// FormatTimestamp renders seconds as m:ss.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := int(math.Floor(seconds / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func sequence(items []string, render func(string) string) string {
	if len(items) == 0 {
		return emptySequence
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  - " + render(item)
	}
	return strings.Join(lines, "\n")
}

func quotedWikiLink(category string) string {
	name := domain.StripWikiLink(category)
	if name == "" {
		return `""`
	}
	return `"[[` + name + `]]"`
}

func blockquote(text string) string {
	if text == "" {
		return noObservation
	}
	return "> " + strings.ReplaceAll(text, "\n", "\n> ")
}

func pills(codes []string) string {
	if len(codes) == 0 {
		return noOpenCodes
	}
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = "`" + code + "`"
	}
	return strings.Join(out, " ")
}

// orderedSet keeps first-seen order with a lookup set beside it.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(item string) {
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

// formatSeconds renders seconds with one decimal, rounding exact ties
// away from zero. Only multiples of 0.25 can be exact ties in binary, and
// for those ts*10 is exact, so math.Round sees the true midpoint. Every
// other value is already correctly rounded by FormatFloat.
func formatSeconds(ts float64) string {
	if math.Mod(math.Abs(ts)*4, 2) == 1 {
		ts = math.Round(ts*10) / 10
	}
	return strconv.FormatFloat(ts, 'f', 1, 64)
}
