// Package frontmatter encodes annotations into YAML-frontmatter Markdown and
// decodes such documents back into parsed category records.
//
// The dialect is the one an Obsidian vault stores: a leading block delimited
// by "---" lines holding flat keys, followed by a Markdown body.
package frontmatter

import (
	"time"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

// Ensure Codec implements the interfaces.
var (
	_ driven.AnnotationEncoder = (*Codec)(nil)
	_ driven.DocumentDecoder   = (*Codec)(nil)
)

// Codec binds the package functions to a clock for session encoding.
type Codec struct {
	now func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the clock used for coded_date.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a codec using the wall clock.
func New(opts ...Option) *Codec {
	c := &Codec{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncodeAnnotation renders a single annotation.
func (c *Codec) EncodeAnnotation(a domain.Annotation) string {
	return EncodeAnnotation(a)
}

// EncodeSession renders all annotations for a video, dated with the codec clock.
func (c *Codec) EncodeSession(videoID string, annotations []domain.Annotation) string {
	return EncodeSession(videoID, annotations, c.now())
}

// Decode parses one document.
func (c *Codec) Decode(filename string, content []byte) domain.ParsedDocument {
	return Decode(filename, string(content))
}
