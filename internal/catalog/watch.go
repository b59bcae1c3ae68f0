package catalog

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// FileWatcher reports catalog files whose modification time moves.
type FileWatcher struct {
	paths    []string
	interval time.Duration
	changed  func(path string)
	seen     map[string]time.Time
}

// NewFileWatcher records the current modification times of paths.
// Changes after this call are reported to changed by Run.
func NewFileWatcher(paths []string, interval time.Duration, changed func(path string)) *FileWatcher {
	w := &FileWatcher{
		paths:    paths,
		interval: interval,
		changed:  changed,
		seen:     make(map[string]time.Time, len(paths)),
	}
	for _, p := range paths {
		if mt, ok := modTime(p); ok {
			w.seen[p] = mt
		}
	}
	return w
}

// Run polls every interval until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *FileWatcher) poll() {
	for _, p := range w.paths {
		mt, ok := modTime(p)
		if !ok {
			continue
		}
		prev, known := w.seen[p]
		w.seen[p] = mt
		// a file that appears after startup counts as a change
		if !known || !mt.Equal(prev) {
			w.changed(p)
		}
	}
}

func modTime(path string) (time.Time, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Cannot stat catalog file", "path", path, "error", err)
		}
		return time.Time{}, false
	}
	return fi.ModTime(), true
}
