// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Application logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"time"

	"github.com/corey/reviewbot/internal/domain/lint"
)

// ResultCache persists per-file review results between runs.
// The backing store (bbolt) is project-scoped: each projectID gets its own
// namespace. Concurrent reads are safe; writes are serialized by the adapter.
//
// A cached result is only reusable when both its ContentHash and its
// ConfigFingerprint match the current file and config. The cache itself
// does not check this; callers compare before trusting an entry.
type ResultCache interface {
	// SaveResult stores the result for one file, replacing any prior entry.
	SaveResult(projectID, path string, result *CachedResult) error

	// LoadResult retrieves the result for one file.
	// Returns nil, nil if nothing is cached for the path.
	LoadResult(projectID, path string) (*CachedResult, error)

	// CountResults returns how many files have cached results.
	CountResults(projectID string) (int, error)

	// DeleteProject removes every cached result for a project.
	// Idempotent: deleting a nonexistent project is not an error.
	DeleteProject(projectID string) error

	Close() error
}

// CachedResult is the stored outcome of reviewing one file.
type CachedResult struct {
	ContentHash       string
	ConfigFingerprint string
	Issues            []lint.Issue
	CheckedAt         time.Time
}

// Matches reports whether the entry was computed for this content and config.
func (r *CachedResult) Matches(contentHash, fingerprint string) bool {
	return r != nil && r.ContentHash == contentHash && r.ConfigFingerprint == fingerprint
}
