package lint

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// atomicLevels are the atomic design folders, lowest level first.
var atomicLevels = []string{"atoms", "molecules", "organisms", "templates", "pages"}

// uiDir holds design-system primitives, which sit outside the atomic levels.
const uiDir = "ui"

var reComponentTag = regexp.MustCompile(`<[A-Z]`)

// suggestLevel guesses where an unplaced component belongs from how much
// state and nested markup it has: no state and little markup makes an atom,
// a little state a molecule, anything bigger an organism.
func suggestLevel(content string) string {
	states := strings.Count(content, "useState")
	effects := strings.Count(content, "useEffect")
	tags := len(reComponentTag.FindAllStringIndex(content, -1))
	switch {
	case states == 0 && effects == 0 && tags <= 3:
		return "atoms"
	case states <= 2 && tags <= 8:
		return "molecules"
	default:
		return "organisms"
	}
}

// atomicRank returns the level index of the first atomic folder among segs,
// or -1.
func atomicRank(segs []string) (int, string) {
	for _, s := range segs {
		for rank, level := range atomicLevels {
			if s == level {
				return rank, level
			}
		}
	}
	return -1, ""
}

// checkAtomicDesign applies to component files under the components
// folder, except the ui folder. A file outside every atomic level folder
// gets one file-level issue naming the level it most likely belongs to;
// otherwise imports reaching a higher level than the file's own are
// reported together.
func checkAtomicDesign(f *SourceFile, cfg Config, rule Rule) []Issue {
	segs := pathSegments(f.Path)
	dirs := segs[:len(segs)-1]
	root := -1
	for i, s := range dirs {
		if s == cfg.ComponentsDir {
			root = i
		}
	}
	if root < 0 || !isComponentFile(f) {
		return nil
	}
	for _, d := range dirs[root+1:] {
		if d == uiDir {
			return nil
		}
	}

	rank, level := atomicRank(dirs[root+1:])
	if rank < 0 {
		name := segs[len(segs)-1]
		suggested := path.Join(cfg.ComponentsDir, suggestLevel(f.Content), name)
		return fileIssue(rule, fmt.Sprintf(
			"Component is not inside an atomic design folder under %s/ (expected one of: %s). It most likely belongs in %s.",
			cfg.ComponentsDir, strings.Join(atomicLevels, ", "), suggested))
	}

	var items []finding
	for _, st := range parseImports(f.Lines) {
		if st.source == "" {
			continue
		}
		impRank, impLevel := atomicRank(pathSegments(st.source))
		if impRank > rank {
			items = append(items, finding{
				line:   st.start + 1,
				name:   st.source,
				detail: fmt.Sprintf("%s imports from %s", level, impLevel),
			})
		}
	}
	title := fmt.Sprintf("Component in %s/ imports from higher atomic levels.", level)
	return consolidate(rule, f, title, items,
		"Lower levels must not import higher ones; pass the higher-level piece in as children or props.")
}
