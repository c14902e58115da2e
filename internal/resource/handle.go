// Package resource provides lazily opened, owned handles to external
// resources such as database connections.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Status is the lifecycle state of a Handle.
type Status int

// Handle states.
const (
	Idle Status = iota
	Pending
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("resource closed")

// OpenFunc opens the underlying resource.
type OpenFunc[T any] func(ctx context.Context) (T, error)

// CloseFunc releases a resource returned by OpenFunc.
type CloseFunc[T any] func(T) error

// Handle opens a resource on first use and owns it until Close.
// A failed open leaves the handle in Failed; the next Get retries.
//
// openMu serialises opens and Close; mu guards the state fields and is
// never held while the open or close function runs, so Status always
// reports the recorded state.
type Handle[T any] struct {
	open  OpenFunc[T]
	close CloseFunc[T]

	openMu sync.Mutex

	mu     sync.Mutex
	status Status
	value  T
	err    error
	closed bool
}

// New creates an idle handle. closeFn may be nil.
func New[T any](open OpenFunc[T], closeFn CloseFunc[T]) *Handle[T] {
	return &Handle[T]{open: open, close: closeFn}
}

// Get returns the resource, opening it if needed. Concurrent callers
// wait for a single open.
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	if v, ok, err := h.ready(); ok || err != nil {
		return v, err
	}

	h.openMu.Lock()
	defer h.openMu.Unlock()

	// Another caller may have finished opening while this one waited.
	if v, ok, err := h.ready(); ok || err != nil {
		return v, err
	}

	h.mu.Lock()
	h.status = Pending
	h.mu.Unlock()

	v, err := h.open(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.status = Failed
		h.err = err
		var zero T
		return zero, err
	}
	h.status = Ready
	h.value = v
	h.err = nil
	return v, nil
}

// ready reports the value when the handle is open, or ErrClosed.
func (h *Handle[T]) ready() (T, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	if h.closed {
		return zero, false, ErrClosed
	}
	if h.status == Ready {
		return h.value, true, nil
	}
	return zero, false, nil
}

// Status returns the current state and the last open error, if any.
// Pending is reported only while an open is in progress.
func (h *Handle[T]) Status() (Status, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status, h.err
}

// Close releases the resource if it was opened and leaves the handle
// Idle. It waits for an in-progress open. Safe to call more than once.
func (h *Handle[T]) Close() error {
	h.openMu.Lock()
	defer h.openMu.Unlock()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	wasReady := h.status == Ready
	v := h.value
	var zero T
	h.value = zero
	h.status = Idle
	h.mu.Unlock()

	if !wasReady || h.close == nil {
		return nil
	}
	return h.close(v)
}
