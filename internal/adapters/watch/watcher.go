// Package watch implements file watching for spec sources using fsnotify.
// The watched file's directory is observed rather than the file itself, since
// editors typically replace files via rename and the original inode watch
// would go stale.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oaspect/oaspect/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for coalescing file
// events.
const DefaultDebounceWindow = 250 * time.Millisecond

const changeChannelBuffer = 1

// Watcher implements ports.Watcher on top of fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	window    time.Duration
}

// NewWatcher creates a file watcher with the default debounce window.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsWatcher: fsWatcher, window: DefaultDebounceWindow}, nil
}

// WithWindow overrides the debounce window. Used by tests.
func (w *Watcher) WithWindow(window time.Duration) *Watcher {
	w.window = window
	return w
}

// Start begins watching the file at path and returns the coalesced change
// channel.
func (w *Watcher) Start(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		return nil, err
	}

	changes := make(chan struct{}, changeChannelBuffer)
	debounce := newDebouncer(w.window, func() {
		select {
		case changes <- struct{}{}:
		default:
			// A notification is already pending; coalesce.
		}
	})

	go func() {
		defer close(changes)
		defer debounce.stop()
		base := filepath.Base(abs)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					debounce.bump()
				}
			case _, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// Stop releases the underlying file system watch.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// debouncer coalesces rapid events into a single callback per window.
type debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	window   time.Duration
	callback func()
}

func newDebouncer(window time.Duration, callback func()) *debouncer {
	return &debouncer{window: window, callback: callback}
}

// bump restarts the window; the callback fires once it elapses quietly.
func (d *debouncer) bump() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.callback)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

var _ ports.Watcher = (*Watcher)(nil)
