package driving

import (
	"context"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// Result is the session after a command together with the effects the
// caller should perform (announcements to print or display).
type Result struct {
	Session domain.Session
	Effects []domain.Effect
}

// Announcements returns the messages of all announce effects in order.
func (r Result) Announcements() []string {
	var out []string
	for _, e := range r.Effects {
		if e.Kind == domain.EffectAnnounce {
			out = append(out, e.Message)
		}
	}
	return out
}

// AnnotationService drives phase 1: video selection and annotation.
type AnnotationService interface {
	// Session returns the current session.
	Session(ctx context.Context) (domain.Session, error)

	// SetVideo loads a video by URL or bare ID.
	SetVideo(ctx context.Context, ref string) (Result, error)

	// SaveAnnotation commits a draft against the current video.
	SaveAnnotation(ctx context.Context, draft domain.Draft) (Result, error)

	// RegisterAxialCategory adds a category to the registry.
	RegisterAxialCategory(ctx context.Context, category string) (Result, error)

	// ExportSession renders every annotation of the current video as one
	// Markdown document.
	ExportSession(ctx context.Context) (string, error)

	// Reset discards the whole session.
	Reset(ctx context.Context) error
}
