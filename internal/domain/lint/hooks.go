package lint

import (
	"fmt"
	"regexp"
)

var (
	reStateHook  = regexp.MustCompile(`\b(?:React\.)?(useState|useReducer)\s*(?:<[^>]*>)?\s*\(`)
	reStateName  = regexp.MustCompile(`\[\s*([A-Za-z_$][\w$]*)`)
	reHookCall   = regexp.MustCompile(`\b(use[A-Z0-9][\w$]*)\s*(?:<[^>]*>)?\s*\(`)
	reEffectHook = regexp.MustCompile(`\b(?:React\.)?(useEffect|useCallback|useMemo|useLayoutEffect)\s*(?:<[^>]*>)?\s*\(`)
)

// checkStateCount reports component files holding more than MaxStates
// state hooks. Each hook is named after the first element of its
// destructuring pattern when there is one.
func checkStateCount(f *SourceFile, cfg Config, rule Rule) []Issue {
	if !isComponentFile(f) {
		return nil
	}
	var items []finding
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		loc := reStateHook.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		name := line[loc[2]:loc[3]]
		if m := reStateName.FindStringSubmatch(line[:loc[0]]); m != nil {
			name = m[1]
		}
		items = append(items, finding{line: i + 1, name: name})
	}
	if len(items) <= cfg.MaxStates {
		return nil
	}
	title := fmt.Sprintf("Component keeps %d state hooks (max %d).", len(items), cfg.MaxStates)
	return consolidate(rule, f, title, items,
		"Group related state into one object or a reducer, or move it into a custom hook.")
}

// checkHookExtraction reports component files calling more than
// MaxEffectHooks effect and memo hooks. The logic usually belongs in a
// custom hook, so the issue goes to the file summary.
func checkHookExtraction(f *SourceFile, cfg Config, rule Rule) []Issue {
	if !isComponentFile(f) {
		return nil
	}
	var items []finding
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		for _, m := range reEffectHook.FindAllStringSubmatch(line, -1) {
			items = append(items, finding{line: i + 1, name: m[1]})
		}
	}
	if len(items) <= cfg.MaxEffectHooks {
		return nil
	}
	rule.FileLevel = true
	title := fmt.Sprintf("Component calls %d effect/memo hooks (max %d).", len(items), cfg.MaxEffectHooks)
	return consolidate(rule, f, title, items,
		"Extract the logic into a custom hook, e.g. `const { data, loading } = useFeature()`.")
}

// checkMisplacedHooks reports top-level custom hook declarations in files
// outside the hooks folder.
func checkMisplacedHooks(f *SourceFile, cfg Config, rule Rule) []Issue {
	if inFolder(f.Path, cfg.HooksDir) {
		return nil
	}
	var items []finding
	for _, d := range functionDecls(f.Lines) {
		if d.topLevel && isHookName(d.name) {
			items = append(items, finding{line: d.line + 1, name: d.name})
		}
	}
	title := fmt.Sprintf("Custom hooks declared outside the %s/ folder.", cfg.HooksDir)
	return consolidate(rule, f, title, items,
		fmt.Sprintf("Move each hook to %s/<hookName>.ts and import it.", cfg.HooksDir))
}

// checkInvalidHookCalls reports hook calls whose innermost enclosing
// declaration is neither a component nor a hook, and hook calls at module
// scope.
func checkInvalidHookCalls(f *SourceFile, cfg Config, rule Rule) []Issue {
	decls := functionDecls(f.Lines)
	declAt := make(map[int]funcDecl, len(decls))
	for _, d := range decls {
		declAt[d.line] = d
	}

	var items []finding
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		m := reHookCall.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if d, ok := declAt[i]; ok && isHookName(d.name) {
			continue
		}
		owner, ok := innermostOwner(decls, i)
		if !ok {
			if isTopLevel(line) {
				items = append(items, finding{line: i + 1, name: m[1], detail: "called at module scope"})
			}
			continue
		}
		if isHookName(owner.name) || isPascalCase(owner.name) {
			continue
		}
		items = append(items, finding{line: i + 1, name: m[1], detail: "called inside " + owner.name})
	}
	return consolidate(rule, f, "Hooks called outside a component or custom hook.", items,
		"Only call hooks at the top level of components or of functions named useXxx.")
}

// innermostOwner returns the smallest declaration that starts before line
// idx and whose body still covers it.
func innermostOwner(decls []funcDecl, idx int) (funcDecl, bool) {
	best := -1
	for k, d := range decls {
		if d.line < idx && idx <= d.body.end {
			if best < 0 || d.body.lines() < decls[best].body.lines() {
				best = k
			}
		}
	}
	if best < 0 {
		return funcDecl{}, false
	}
	return decls[best], true
}
