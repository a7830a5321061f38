// Package app wires the adapters and the lint core together. It owns the
// review lifecycle: open the cache, discover and analyze files, scope the
// result to a diff, and watch for edits.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/corey/reviewbot/internal/adapters/ahocorasick"
	"github.com/corey/reviewbot/internal/adapters/bbolt"
	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/corey/reviewbot/internal/ports"
)

// App is the top-level container wiring all components together.
type App struct {
	ProjectRoot string
	ProjectID   string
	Paths       *Paths

	Store  ports.ResultCache // nil when caching is disabled
	Runner *Runner

	watcher    ports.Watcher
	extensions []string
	log        *slog.Logger
}

// Config holds initialization parameters for the App.
type Config struct {
	ProjectRoot string
	ProjectID   string // default: absolute project root
	DBPath      string // path to bbolt file (default: .reviewbot/cache.db)
	NoCache     bool

	Lint       lint.Config
	Extensions []string

	// Changes, when set, limits reviews to what changed since Base.
	Changes     ports.ChangeSource
	ChangesRoot string
	Base        string

	Workers int

	// Watcher overrides the fsnotify watcher used by Watch.
	Watcher ports.Watcher

	Logger *slog.Logger
}

// New creates an App with all dependencies wired.
func New(cfg Config) (*App, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = root
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	paths := NewPaths(root)
	if cfg.DBPath == "" {
		cfg.DBPath = paths.DB
	}

	a := &App{
		ProjectRoot: root,
		ProjectID:   cfg.ProjectID,
		Paths:       paths,
		watcher:     cfg.Watcher,
		extensions:  cfg.Extensions,
		log:         cfg.Logger,
	}

	if !cfg.NoCache {
		if err := paths.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("create %s: %w", paths.Root, err)
		}
		store, err := bbolt.NewStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		a.Store = store
	}

	registry := lint.DefaultRegistry()
	registry = registry.WithPrefilter(ahocorasick.NewMatcher(registry.Triggers()))

	runner, err := NewRunner(RunnerConfig{
		Root:        root,
		ProjectID:   cfg.ProjectID,
		Lint:        cfg.Lint,
		Registry:    registry,
		Extensions:  cfg.Extensions,
		Cache:       a.Store,
		Changes:     cfg.Changes,
		ChangesRoot: cfg.ChangesRoot,
		Base:        cfg.Base,
		Workers:     cfg.Workers,
		Logger:      cfg.Logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Runner = runner
	return a, nil
}

// Check reviews paths (the whole project when empty).
func (a *App) Check(ctx context.Context, paths ...string) (lint.Report, error) {
	return a.Runner.Run(ctx, paths...)
}

// CachedFiles returns how many files have a cached result.
func (a *App) CachedFiles() (int, error) {
	if a.Store == nil {
		return 0, nil
	}
	return a.Store.CountResults(a.ProjectID)
}

// ClearCache drops every cached result for the project.
func (a *App) ClearCache() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.DeleteProject(a.ProjectID)
}

// Close releases the cache and stops any running watcher.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
