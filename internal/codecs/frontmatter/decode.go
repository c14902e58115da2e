package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// frontmatterPattern matches the first block from the start of the content
// up to the next delimiter line, tolerating CRLF line endings.
var frontmatterPattern = regexp.MustCompile(`^---\r?\n((?s:.*?))\r?\n---`)

// Recognised frontmatter keys.
const (
	keyAxialCategory        = "axial_category"
	keyIdentifiedCategories = "identified_categories"
	keyOverarchingThemes    = "overarching_themes"
)

// Decode parses content into a ParsedDocument. It never panics and never
// returns an error: failures are reported on the document's ParseError.
//
// Only flat values are read. A recognised key holding a value of the wrong
// shape (a nested mapping, a number, a sequence where a string is expected)
// is treated as absent.
func Decode(filename, content string) (doc domain.ParsedDocument) {
	doc.Filename = filename

	m := frontmatterPattern.FindStringSubmatch(content)
	if m == nil {
		doc.ParseError = domain.NewParseError(domain.ParseErrorNoFrontmatter, "")
		return doc
	}

	fields, perr := parseMapping(m[1])
	if perr != nil {
		doc.ParseError = perr
		return doc
	}

	if v, ok := fields[keyAxialCategory].(string); ok {
		doc.AxialCategory = strings.TrimSpace(domain.StripWikiLink(strings.TrimSpace(v)))
	}
	doc.IdentifiedCategories = stringSequence(fields[keyIdentifiedCategories])
	doc.OverarchingThemes = stringSequence(fields[keyOverarchingThemes])
	return doc
}

// parseMapping unmarshals the frontmatter interior and requires a mapping.
func parseMapping(src string) (fields map[string]any, perr *domain.ParseError) {
	defer func() {
		if r := recover(); r != nil {
			fields = nil
			perr = domain.NewParseError(domain.ParseErrorSyntax, fmt.Sprint(r))
		}
	}()

	var raw any
	if err := yaml.Unmarshal([]byte(src), &raw); err != nil {
		return nil, domain.NewParseError(domain.ParseErrorSyntax, yamlMessage(err))
	}

	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			if s, ok := k.(string); ok {
				out[s] = val
			}
		}
		return out, nil
	default:
		return nil, domain.NewParseError(domain.ParseErrorNotObject, "")
	}
}

// stringSequence keeps the non-blank string elements of a sequence.
// It returns nil when v is not a sequence.
func stringSequence(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func yamlMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "yaml: ")
}
