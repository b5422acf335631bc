package schema

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SchemaSuffix is the file suffix schema documents carry.
const SchemaSuffix = ".xml"

// WatchEvent describes a file change event under the watched directories.
// Either the user changed a schema document, in which case the catalog must
// be reloaded before revalidating, or the user changed a payload document,
// in which case only that payload needs revalidating.
type WatchEvent struct {
	Path          string // The file that changed
	SchemaChanged bool   // True when the change was to a schema document
}

// Watcher monitors schema and payload directories for file changes and
// triggers revalidation.
type Watcher struct {
	dirs   []string
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a new Watcher over the given directories.
func NewWatcher(logger *slog.Logger, dirs ...string) *Watcher {
	return &Watcher{
		dirs:       dirs,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch starts monitoring the directories for changes. It calls the provided
// callback whenever a relevant change is detected. It blocks until the
// context is cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func(WatchEvent)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range w.dirs {
		if err := w.addRecursive(watcher, dir); err != nil {
			return err
		}
	}

	w.logger.Info("Watching for changes", "dirs", w.dirs)
	if w.Ready != nil {
		close(w.Ready)
	}

	// Editors fire bursts of writes for one save; the debounce window
	// collapses a burst into a single callback carrying the last event.
	deb := debouncer{delay: 100 * time.Millisecond}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev := w.handleEvent(watcher, event); ev != nil {
				deb.trigger(func() { callback(*ev) })
			}
		}
	}
}

// debouncer delays a function call, dropping it when another call arrives
// inside the window.
type debouncer struct {
	delay time.Duration
	timer *time.Timer
}

func (d *debouncer) trigger(fn func()) {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// handleEvent turns one fsnotify event into a WatchEvent, or nil when the
// event needs no revalidation. Newly created directories are added to the
// watch set instead.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) *WatchEvent {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return nil
		}
	}

	return mapToWatchEvent(event.Name)
}

// addRecursive registers root and every non-hidden subdirectory with the
// watcher.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// mapToWatchEvent classifies a changed file, or returns nil for files the
// validator does not consume.
func mapToWatchEvent(path string) *WatchEvent {
	if strings.HasSuffix(path, SchemaSuffix) {
		return &WatchEvent{Path: path, SchemaChanged: true}
	}
	if filepath.Ext(path) == ".json" {
		return &WatchEvent{Path: path}
	}
	return nil
}
