// Package walker discovers reviewable source files under a project root.
// It skips dependency and build directories, honours the root .gitignore,
// and keeps only files with a reviewable extension.
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// skipDirs lists directories never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".next":        true,
	".expo":        true,
	".turbo":       true,
	".idea":        true,
	".vscode":      true,
	".reviewbot":   true,
}

// DefaultExtensions are the reviewable extensions when none are configured.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// SkipDir reports whether a directory with this base name is never
// reviewed. The fsnotify watcher uses the same rule.
func SkipDir(name string) bool {
	return skipDirs[name]
}

// Walker lists source files.
type Walker struct {
	exts map[string]bool
}

// New returns a walker accepting the given extensions, or
// DefaultExtensions when none are given.
func New(exts ...string) *Walker {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	return &Walker{exts: set}
}

// IsSource reports whether path has a reviewable extension. Declaration
// files (.d.ts) are not reviewed.
func (w *Walker) IsSource(path string) bool {
	if strings.HasSuffix(path, ".d.ts") {
		return false
	}
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

// LoadGitignore loads .gitignore from root if it exists.
func LoadGitignore(root string) *ignore.GitIgnore {
	gitignorePath := filepath.Join(root, ".gitignore")

	if _, err := os.Stat(gitignorePath); err == nil {
		if gitignore, err := ignore.CompileIgnoreFile(gitignorePath); err == nil {
			return gitignore
		}
	}

	return nil
}

// Files walks root and returns the absolute, sorted paths of every source
// file, honouring root's .gitignore. When root is itself a file it is
// returned if it is a source file.
func (w *Walker) Files(root string) ([]string, error) {
	return w.FilesIn(root, root)
}

// FilesIn walks target, which lies inside projectRoot, and matches paths
// against projectRoot's .gitignore so that checking a subdirectory ignores
// the same files as checking the whole project.
func (w *Walker) FilesIn(projectRoot, target string) ([]string, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absTarget)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if w.IsSource(absTarget) {
			return []string{absTarget}, nil
		}
		return nil, nil
	}

	gitignore := LoadGitignore(absRoot)
	ignored := func(path string, dir bool) bool {
		if gitignore == nil {
			return false
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return false
		}
		rel = filepath.ToSlash(rel)
		if dir {
			rel += "/"
		}
		return gitignore.MatchesPath(rel)
	}

	var files []string
	err = filepath.WalkDir(absTarget, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable
		}
		if path == absTarget {
			return nil
		}
		if d.IsDir() {
			if SkipDir(d.Name()) || ignored(path, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !ignored(path, false) && w.IsSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
