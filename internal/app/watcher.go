package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	fsw "github.com/corey/reviewbot/internal/adapters/fsnotify"
	"github.com/corey/reviewbot/internal/domain/lint"
)

// Watch re-reviews each source file as it changes and hands the result to
// onReport, one call at a time. A file whose issues are all fixed is
// reported with no issues. Blocks until ctx is done.
func (a *App) Watch(ctx context.Context, onReport func(lint.FileReport)) error {
	if a.watcher == nil {
		w, err := fsw.NewWatcher(a.extensions...)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		a.watcher = w
	}

	var mu sync.Mutex
	onChange := func(absPath string) {
		mu.Lock()
		defer mu.Unlock()
		a.onFileChanged(absPath, onReport)
	}
	if err := a.watcher.Watch(a.ProjectRoot, onChange); err != nil {
		return fmt.Errorf("watch %s: %w", a.ProjectRoot, err)
	}
	a.log.Info("watching for changes", "root", a.ProjectRoot)

	<-ctx.Done()
	return a.watcher.Stop()
}

// onFileChanged handles a create/modify/delete event from the watcher.
func (a *App) onFileChanged(absPath string, onReport func(lint.FileReport)) {
	rep, err := a.Runner.CheckFile(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.log.Debug("file removed", "path", absPath)
			return
		}
		a.log.Warn("review failed", "path", absPath, "err", err)
		return
	}
	onReport(rep)
}
