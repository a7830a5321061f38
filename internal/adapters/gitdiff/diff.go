// Package gitdiff implements ports.ChangeSource on top of the git CLI.
// File lists come from "git diff --name-only"; added line numbers come from
// a zero-context unified diff parsed with sourcegraph/go-diff.
package gitdiff

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corey/reviewbot/internal/ports"
	"github.com/sourcegraph/go-diff/diff"
)

// Repo is a git working tree.
type Repo struct {
	root string
}

var _ ports.ChangeSource = (*Repo)(nil)

// Open finds the repository containing dir.
func Open(ctx context.Context, dir string) (*Repo, error) {
	out, err := runGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return &Repo{root: strings.TrimSpace(out)}, nil
}

// Root returns the absolute repository root.
func (r *Repo) Root() string {
	return r.root
}

// ChangedFiles lists files changed since base, relative to the root.
// With base set, it compares base...HEAD. With an empty base it collects
// the local work in progress: unstaged, staged and untracked files.
// Deleted files are never listed.
func (r *Repo) ChangedFiles(ctx context.Context, base string) ([]string, error) {
	var files []string
	if base != "" {
		out, err := runGit(ctx, r.root, "diff", "--name-only", "--diff-filter=d", base+"...HEAD")
		if err != nil {
			return nil, err
		}
		files = parseOutput(out)
	} else {
		for _, args := range [][]string{
			{"diff", "--name-only", "--diff-filter=d"},
			{"diff", "--name-only", "--cached", "--diff-filter=d"},
			{"ls-files", "--others", "--exclude-standard"},
		} {
			out, err := runGit(ctx, r.root, args...)
			if err != nil {
				return nil, err
			}
			files = append(files, parseOutput(out)...)
		}
	}
	return dedupe(files), nil
}

// AddedLines returns the added or modified line numbers per changed file.
// Untracked files count as entirely added.
func (r *Repo) AddedLines(ctx context.Context, base string) (map[string]ports.LineSet, error) {
	rangeArg := "HEAD"
	if base != "" {
		rangeArg = base + "...HEAD"
	}
	out, err := runGit(ctx, r.root, "diff", "--unified=0", "--no-color", "--no-ext-diff", "--diff-filter=d", rangeArg)
	if err != nil {
		return nil, err
	}
	lines, err := ParseDiff(out)
	if err != nil {
		return nil, err
	}
	if base != "" {
		return lines, nil
	}

	untracked, err := runGit(ctx, r.root, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	for _, rel := range parseOutput(untracked) {
		data, err := os.ReadFile(filepath.Join(r.root, rel))
		if err != nil {
			continue // removed since listing
		}
		lines[rel] = allLines(data)
	}
	return lines, nil
}

// ParseDiff extracts the new-side line numbers of added lines from a
// unified diff, keyed by the new file path with any "b/" prefix removed.
func ParseDiff(patch string) (map[string]ports.LineSet, error) {
	out := make(map[string]ports.LineSet)
	if strings.TrimSpace(patch) == "" {
		return out, nil
	}
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(patch)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	for _, fd := range fileDiffs {
		if fd.NewName == "/dev/null" {
			continue
		}
		name := strings.TrimPrefix(fd.NewName, "b/")
		set := out[name]
		if set == nil {
			set = make(ports.LineSet)
			out[name] = set
		}
		for _, hunk := range fd.Hunks {
			newLine := int(hunk.NewStartLine)
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				switch {
				case line == "":
				case strings.HasPrefix(line, "+"):
					set[newLine] = true
					newLine++
				case strings.HasPrefix(line, "-"), strings.HasPrefix(line, `\`):
				default:
					newLine++
				}
			}
		}
	}
	return out, nil
}

func allLines(data []byte) ports.LineSet {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	set := make(ports.LineSet, n)
	for i := 1; i <= n; i++ {
		set[i] = true
	}
	return set
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}
		return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
	}
	return string(out), nil
}

func parseOutput(raw string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	var out []string
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
