package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.VaultWatcher = (*Watcher)(nil)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher reports debounced batches of Markdown changes.
// A batch is emitted once no relevant event has arrived for the debounce
// interval, and batches are emitted at most once per interval.
type Watcher struct {
	debounce time.Duration
	limiter  *rate.Limiter

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// NewWatcher creates a watcher. A non-positive debounce means
// domain.DefaultWatchDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = domain.DefaultWatchDebounce
	}
	return &Watcher{
		debounce: debounce,
		limiter:  rate.NewLimiter(rate.Every(debounce), 1),
	}
}

// Watch starts watching dir and its non-hidden subdirectories.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan driven.VaultEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWatcherClosed
	}

	root := ResolvePath(dir)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := addDirs(fsw, root); err != nil {
		fsw.Close()
		return nil, err
	}
	w.watchers = append(w.watchers, fsw)

	events := make(chan driven.VaultEvent, 1)
	go w.run(ctx, root, fsw, events)
	logger.Info("watching %s (debounce %s)", root, w.debounce)
	return events, nil
}

// Close stops every active watch. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, fsw := range w.watchers {
		errs = append(errs, fsw.Close())
	}
	w.watchers = nil
	return errors.Join(errs...)
}

func (w *Watcher) run(ctx context.Context, root string, fsw *fsnotify.Watcher, out chan<- driven.VaultEvent) {
	defer close(out)
	defer fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var pending []string
	seen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path, ok := w.handleEvent(fsw, root, event)
			if !ok {
				continue
			}
			if !seen[path] {
				seen[path] = true
				pending = append(pending, path)
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case out <- driven.VaultEvent{Paths: pending}:
				logger.Debug("watcher: %d changed files", len(pending))
			case <-ctx.Done():
				return
			}
			pending = nil
			seen = make(map[string]bool)
		}
	}
}

// handleEvent returns the changed Markdown path for relevant events.
// New directories are added to the watch as a side effect.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, root string, event fsnotify.Event) (string, bool) {
	rel, err := filepath.Rel(root, event.Name)
	if err != nil || isHidden(rel) {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addDirs(fsw, event.Name); err != nil {
				logger.Warn("watcher: %v", err)
			}
			return "", false
		}
	}

	if !isMarkdown(event.Name) {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	return event.Name, true
}

func addDirs(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		if isHidden(rel) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
