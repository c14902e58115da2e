package driven

import (
	"context"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// SessionStore persists the analyst's working session.
// Backed by SQLite for the CLI and by memory for long-running surfaces.
type SessionStore interface {
	// Load returns the stored session, or an empty session if none exists.
	Load(ctx context.Context) (domain.Session, error)

	// Save replaces the stored session.
	Save(ctx context.Context, session domain.Session) error

	// Reset discards the stored session.
	Reset(ctx context.Context) error
}
