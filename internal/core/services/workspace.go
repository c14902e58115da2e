package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

// Workspace runs commands against the stored session. Each Apply loads the
// session, runs the command and saves the result while holding a lock, so
// services sharing one Workspace never interleave their updates.
type Workspace struct {
	mu    sync.Mutex
	store driven.SessionStore
}

// NewWorkspace creates a workspace over store.
func NewWorkspace(store driven.SessionStore) *Workspace {
	return &Workspace{store: store}
}

// Session returns the stored session.
func (w *Workspace) Session(ctx context.Context) (domain.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, err := w.store.Load(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

// Apply runs cmd against the stored session and persists the result.
// On error the stored session is left unchanged.
func (w *Workspace) Apply(ctx context.Context, cmd Command) (driving.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, err := w.store.Load(ctx)
	if err != nil {
		return driving.Result{}, fmt.Errorf("load session: %w", err)
	}

	next, effects, err := cmd(current)
	if err != nil {
		return driving.Result{Session: current}, err
	}

	if err := w.store.Save(ctx, next); err != nil {
		return driving.Result{Session: current}, fmt.Errorf("save session: %w", err)
	}
	return driving.Result{Session: next, Effects: effects}, nil
}

// Reset discards the stored session.
func (w *Workspace) Reset(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}

// Chain runs cmds in order, feeding each the previous session. Effects are
// concatenated. The first error aborts the chain and discards its progress.
func Chain(cmds ...Command) Command {
	return func(s domain.Session) (domain.Session, []domain.Effect, error) {
		var effects []domain.Effect
		next := s
		for _, cmd := range cmds {
			var out []domain.Effect
			var err error
			next, out, err = cmd(next)
			if err != nil {
				return s, nil, err
			}
			effects = append(effects, out...)
		}
		return next, effects, nil
	}
}
