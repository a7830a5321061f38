// Package fsnotify implements ports.Watcher on top of github.com/fsnotify/fsnotify.
// Directories are watched recursively with the same skip rules and .gitignore
// as file discovery. A burst of events on one file (editors often write,
// rename and chmod on a single save) collapses into one callback, fired
// once the file has been quiet for settleDelay.
package fsnotify

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/corey/reviewbot/internal/adapters/walker"
	"github.com/fsnotify/fsnotify"
	ignore "github.com/sabhiram/go-gitignore"
)

const settleDelay = 50 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw     *fsnotify.Watcher
	files  *walker.Walker
	root   string
	ignore *ignore.GitIgnore

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
	done    chan struct{}
}

// NewWatcher creates a watcher reporting files with one of the given
// extensions, or walker.DefaultExtensions when none are given.
func NewWatcher(exts ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:      fw,
		files:   walker.New(exts...),
		pending: make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}, nil
}

// Watch starts monitoring projectPath recursively.
// onChange is called with the absolute path of each changed source file.
func (w *Watcher) Watch(projectPath string, onChange func(filePath string)) error {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return err
	}
	w.root = root
	w.ignore = walker.LoadGitignore(root)

	if err := w.addTree(root, nil); err != nil {
		return err
	}
	go w.loop(onChange)
	return nil
}

// addTree watches dir and every reviewable directory below it. found, when
// set, receives the source files already present, which covers files written
// into a new directory before its watch was in place.
func (w *Watcher) addTree(dir string, found func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // skip inaccessible paths
		}
		if !d.IsDir() {
			if found != nil && w.isSource(path) {
				found(path)
			}
			return nil
		}
		if path != w.root && w.skipDir(path) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

func (w *Watcher) loop(onChange func(string)) {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(event, onChange)

		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Queue overflows are not fatal; fsnotify keeps delivering.

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, onChange func(string)) {
	path := event.Name
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.skipDir(path) {
				w.addTree(path, func(p string) { w.schedule(p, onChange) })
			}
			return
		}
	}
	if event.Op == fsnotify.Chmod || !w.isSource(path) {
		return
	}
	w.schedule(path, onChange)
}

// schedule (re)arms the settle timer for path.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(settleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			onChange(path)
		}
	})
}

// Stop ends monitoring, drops pending callbacks and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	close(w.done)
	return w.fw.Close()
}

// skipDir reports whether the directory at path is excluded by name or by
// .gitignore.
func (w *Watcher) skipDir(path string) bool {
	if walker.SkipDir(filepath.Base(path)) {
		return true
	}
	rel, ok := w.rel(path)
	return ok && w.ignore != nil && w.ignore.MatchesPath(rel+"/")
}

// isSource reports whether path is a reviewable file outside skipped and
// ignored directories.
func (w *Watcher) isSource(path string) bool {
	if !w.files.IsSource(path) {
		return false
	}
	rel, ok := w.rel(path)
	if !ok {
		return false
	}
	for _, part := range strings.Split(filepath.Dir(rel), string(filepath.Separator)) {
		if walker.SkipDir(part) {
			return false
		}
	}
	return w.ignore == nil || !w.ignore.MatchesPath(rel)
}

func (w *Watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return rel, true
}
