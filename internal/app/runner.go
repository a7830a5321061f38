package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/corey/reviewbot/internal/adapters/walker"
	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/corey/reviewbot/internal/ports"
	"golang.org/x/sync/errgroup"
)

// maxFileSize is the largest file that gets reviewed. Anything bigger is
// almost always generated or bundled output.
const maxFileSize = 1 << 20

// RunnerConfig holds everything a Runner needs. Only Root is required.
type RunnerConfig struct {
	// Root is the project root. Report paths are relative to it.
	Root string
	// ProjectID namespaces cache entries. Defaults to the absolute root.
	ProjectID string

	Lint     lint.Config
	Registry *lint.Registry // nil means lint.DefaultRegistry()

	// Extensions overrides walker.DefaultExtensions.
	Extensions []string

	// Cache is optional. When set, unchanged files are not re-analyzed.
	Cache ports.ResultCache

	// Changes restricts the review to what changed since Base. Paths it
	// returns are relative to ChangesRoot (default Root).
	Changes     ports.ChangeSource
	ChangesRoot string
	Base        string

	// Workers bounds parallel analysis. Zero means GOMAXPROCS.
	Workers int

	Logger *slog.Logger
}

// Runner discovers files, analyzes them in parallel and assembles a Report.
type Runner struct {
	root        string
	projectID   string
	cfg         lint.Config
	fingerprint string
	registry    *lint.Registry
	walker      *walker.Walker
	cache       ports.ResultCache
	changes     ports.ChangeSource
	changesRoot string
	base        string
	workers     int
	log         *slog.Logger
}

// NewRunner validates cfg.Lint and builds a Runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("runner: root is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if err := cfg.Lint.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		root:        root,
		projectID:   cfg.ProjectID,
		cfg:         cfg.Lint,
		fingerprint: cfg.Lint.Fingerprint(),
		registry:    cfg.Registry,
		walker:      walker.New(cfg.Extensions...),
		cache:       cfg.Cache,
		changes:     cfg.Changes,
		changesRoot: cfg.ChangesRoot,
		base:        cfg.Base,
		workers:     cfg.Workers,
		log:         cfg.Logger,
	}
	if r.projectID == "" {
		r.projectID = root
	}
	if r.registry == nil {
		r.registry = lint.DefaultRegistry()
	}
	if r.changesRoot == "" {
		r.changesRoot = root
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}
	return r, nil
}

// Root returns the absolute project root.
func (r *Runner) Root() string { return r.root }

// Config returns the lint configuration in effect.
func (r *Runner) Config() lint.Config { return r.cfg }

// fileResult is the outcome for one file.
type fileResult struct {
	path    string
	issues  []lint.Issue
	skipped bool
}

// Run reviews every source file under paths (the root when paths is
// empty). When a ChangeSource is configured only changed files are
// reviewed, and inline issues are kept only if they touch an added line.
func (r *Runner) Run(ctx context.Context, paths ...string) (lint.Report, error) {
	start := time.Now()
	if len(paths) == 0 {
		paths = []string{r.root}
	}

	files, err := r.discover(paths)
	if err != nil {
		return lint.Report{}, err
	}

	var added map[string]ports.LineSet
	if r.changes != nil {
		files, added, err = r.scopeToChanges(ctx, files)
		if err != nil {
			return lint.Report{}, err
		}
	}

	results := make([]fileResult, len(files))
	var cacheHits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, abs := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, hit, err := r.checkFile(abs)
			if err != nil {
				return err
			}
			if hit {
				cacheHits.Add(1)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return lint.Report{}, err
	}

	rep := lint.Report{}
	for _, res := range results {
		if res.skipped {
			rep.Skipped++
			continue
		}
		rep.Checked++
		issues := res.issues
		if added != nil {
			issues = scopeIssues(issues, added[res.path])
		}
		if len(issues) > 0 {
			rep.Files = append(rep.Files, lint.FileReport{Path: res.path, Issues: issues})
		}
	}
	sort.Slice(rep.Files, func(i, j int) bool { return rep.Files[i].Path < rep.Files[j].Path })

	r.log.Debug("review finished",
		"checked", rep.Checked,
		"skipped", rep.Skipped,
		"cache_hits", cacheHits.Load(),
		"issues", rep.IssueCount(),
		"elapsed", time.Since(start))
	return rep, nil
}

// CheckFile reviews a single file without diff scoping. Used by watch mode.
func (r *Runner) CheckFile(absPath string) (lint.FileReport, error) {
	res, _, err := r.checkFile(absPath)
	if err != nil {
		return lint.FileReport{}, err
	}
	return lint.FileReport{Path: res.path, Issues: res.issues}, nil
}

func (r *Runner) discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(r.root, p)
		}
		found, err := r.walker.FilesIn(r.root, p)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", p, err)
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// scopeToChanges keeps only changed files and returns their added lines
// keyed by report path.
func (r *Runner) scopeToChanges(ctx context.Context, files []string) ([]string, map[string]ports.LineSet, error) {
	changed, err := r.changes.ChangedFiles(ctx, r.base)
	if err != nil {
		return nil, nil, fmt.Errorf("changed files: %w", err)
	}
	lines, err := r.changes.AddedLines(ctx, r.base)
	if err != nil {
		return nil, nil, fmt.Errorf("added lines: %w", err)
	}

	changedAbs := make(map[string]bool, len(changed))
	added := make(map[string]ports.LineSet, len(changed))
	for _, rel := range changed {
		abs := filepath.Join(r.changesRoot, filepath.FromSlash(rel))
		changedAbs[abs] = true
		set := lines[rel]
		if set == nil {
			set = ports.LineSet{}
		}
		added[r.reportPath(abs)] = set
	}

	var kept []string
	for _, f := range files {
		if changedAbs[f] {
			kept = append(kept, f)
		}
	}
	r.log.Debug("diff scope", "base", r.base, "changed", len(changed), "reviewable", len(kept))
	return kept, added, nil
}

// scopeIssues drops inline issues that touch no added line. File-level
// issues always survive. A kept inline issue is re-anchored onto added
// lines so a review comment never points outside the diff; the message
// still lists every original line.
func scopeIssues(issues []lint.Issue, added ports.LineSet) []lint.Issue {
	var out []lint.Issue
	for _, is := range issues {
		if is.FileLevel {
			out = append(out, is)
			continue
		}
		first, last, ok := added.Anchor(is.Line, is.EndLine)
		if !ok {
			continue
		}
		is.Line = first
		is.EndLine = 0
		if last > first {
			is.EndLine = last
		}
		out = append(out, is)
	}
	return out
}

func (r *Runner) checkFile(abs string) (fileResult, bool, error) {
	path := r.reportPath(abs)
	res := fileResult{path: path}

	info, err := os.Stat(abs)
	if err != nil {
		return res, false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxFileSize {
		r.log.Debug("skipping large file", "path", path, "size", info.Size())
		res.skipped = true
		return res, false, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return res, false, fmt.Errorf("read %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if r.cache != nil {
		cached, err := r.cache.LoadResult(r.projectID, path)
		if err != nil {
			r.log.Warn("cache read failed", "path", path, "err", err)
		} else if cached.Matches(hash, r.fingerprint) {
			res.issues = cached.Issues
			return res, true, nil
		}
	}

	res.issues = r.registry.Analyze(lint.NewSourceFile(path, string(data)), r.cfg)

	if r.cache != nil {
		entry := &ports.CachedResult{
			ContentHash:       hash,
			ConfigFingerprint: r.fingerprint,
			Issues:            res.issues,
			CheckedAt:         time.Now(),
		}
		if err := r.cache.SaveResult(r.projectID, path, entry); err != nil {
			r.log.Warn("cache write failed", "path", path, "err", err)
		}
	}
	return res, false, nil
}

// reportPath is abs relative to the root with forward slashes, which is
// also the path classifiers see.
func (r *Runner) reportPath(abs string) string {
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
