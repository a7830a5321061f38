package ports

import "context"

// ChangeSource reports what a branch changed relative to a base revision.
// The git adapter shells out to git; tests use an in-memory fake.
type ChangeSource interface {
	// ChangedFiles lists files added or modified since base, relative to
	// the repository root. Deleted files are excluded.
	ChangedFiles(ctx context.Context, base string) ([]string, error)

	// AddedLines returns, per changed file, the 1-based line numbers that
	// were added or modified since base.
	AddedLines(ctx context.Context, base string) (map[string]LineSet, error)
}

// LineSet is a set of 1-based line numbers.
type LineSet map[int]bool

// Anchor narrows [start, end] to a range a diff review comment can point
// at: it begins on the first line in the set and runs while the following
// lines are in the set too. ok is false when no line of the span is in the
// set.
func (s LineSet) Anchor(start, end int) (first, last int, ok bool) {
	if end < start {
		end = start
	}
	for l := start; l <= end; l++ {
		if !s[l] {
			continue
		}
		last = l
		for last+1 <= end && s[last+1] {
			last++
		}
		return l, last, true
	}
	return 0, 0, false
}
