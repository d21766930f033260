// Package watcher handles file system watching for the daemon.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventSettingsChanged EventType = iota
	EventSettingsRemoved
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings_changed"
	case EventSettingsRemoved:
		return "settings_removed"
	}
	return "unknown"
}

const debounceDelay = 100 * time.Millisecond

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches a directory for changes to named files.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	logger     *zap.Logger
	dir        string
	files      map[string]struct{}
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a watcher for files (base names) inside dir.
// The directory is watched rather than the files, so atomic
// rename-into-place writes are seen.
func New(dir string, logger *zap.Logger, files ...string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		fsWatcher:  fsWatcher,
		logger:     logger,
		dir:        filepath.Clean(dir),
		files:      make(map[string]struct{}, len(files)),
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}
	for _, f := range files {
		w.files[f] = struct{}{}
	}
	return w, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Done is closed when the watcher stops. Events is never closed, so
// consumers select on both.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Start starts the watcher.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

// handleEvent filters and debounces a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Dir(event.Name) != w.dir {
		return
	}
	if _, ok := w.files[filepath.Base(event.Name)]; !ok {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	w.logger.Debug("fsnotify", zap.String("op", event.Op.String()), zap.String("path", event.Name))
	w.debounceEvent(event.Name, func() {
		w.emit(event.Name)
	})
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

// emit reports the settled state of path. A rename-away followed by a
// rename-into-place settles as a change, not a removal.
func (w *Watcher) emit(path string) {
	ev := Event{Type: EventSettingsChanged, Path: path}
	if !fileExists(path) {
		ev.Type = EventSettingsRemoved
	}
	select {
	case w.eventsChan <- ev:
	case <-w.done:
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
