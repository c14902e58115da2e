package sqlite

import (
	"context"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/resource"
)

// Ensure LazySessionStore implements the interface.
var _ driven.SessionStore = (*LazySessionStore)(nil)

// LazySessionStore opens the database on first use.
// Commands that never touch the session do not create a database file.
type LazySessionStore struct {
	handle *resource.Handle[*Store]
}

// NewLazySessionStore creates a session store for dataDir without opening it.
func NewLazySessionStore(dataDir string) *LazySessionStore {
	return &LazySessionStore{
		handle: resource.New(
			func(context.Context) (*Store, error) { return NewStore(dataDir) },
			(*Store).Close,
		),
	}
}

// Status reports whether the database has been opened.
func (l *LazySessionStore) Status() (resource.Status, error) {
	return l.handle.Status()
}

// Load opens the store if needed and loads the session.
func (l *LazySessionStore) Load(ctx context.Context) (domain.Session, error) {
	s, err := l.handle.Get(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	return s.SessionStore().Load(ctx)
}

// Save opens the store if needed and saves the session.
func (l *LazySessionStore) Save(ctx context.Context, session domain.Session) error {
	s, err := l.handle.Get(ctx)
	if err != nil {
		return err
	}
	return s.SessionStore().Save(ctx, session)
}

// Reset opens the store if needed and clears the session.
func (l *LazySessionStore) Reset(ctx context.Context) error {
	s, err := l.handle.Get(ctx)
	if err != nil {
		return err
	}
	return s.SessionStore().Reset(ctx)
}

// Close closes the database if it was opened.
func (l *LazySessionStore) Close() error {
	return l.handle.Close()
}
