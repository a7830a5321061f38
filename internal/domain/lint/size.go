package lint

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reConstValue   = regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=]*)?=\s*(?:Object\.freeze\(\s*)?([\[{])`)
	reJSXOpenParen = regexp.MustCompile(`(?:\breturn|=>)\s*\(\s*(<.*)?$`)
)

// checkFileLength reports a file longer than MaxFileLines as a file-level
// issue.
func checkFileLength(f *SourceFile, cfg Config, rule Rule) []Issue {
	n := f.LineCount()
	if n <= cfg.MaxFileLines {
		return nil
	}
	return fileIssue(rule, fmt.Sprintf(
		"File has %d lines (max %d). Split it into smaller components, hooks or utilities.",
		n, cfg.MaxFileLines))
}

// checkFunctionLength reports functions whose body spans more than
// MaxFunctionLines.
func checkFunctionLength(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for _, d := range functionDecls(f.Lines) {
		n := d.body.lines()
		if n <= cfg.MaxFunctionLines {
			continue
		}
		items = append(items, finding{
			line:    d.body.start + 1,
			endLine: d.body.end + 1,
			name:    d.name,
			detail:  fmt.Sprintf("%d lines", n),
		})
	}
	title := fmt.Sprintf("Functions longer than %d lines: extract sub-components, hooks or helpers.", cfg.MaxFunctionLines)
	return consolidate(rule, f, title, items)
}

// checkParams reports functions declaring more than MaxParams parameters.
func checkParams(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for _, d := range functionDecls(f.Lines) {
		if d.params <= cfg.MaxParams {
			continue
		}
		items = append(items, finding{
			line:   d.line + 1,
			name:   d.name,
			detail: fmt.Sprintf("%d parameters", d.params),
		})
	}
	title := fmt.Sprintf("Functions with more than %d parameters.", cfg.MaxParams)
	return consolidate(rule, f, title, items, "Pass a single options object instead.")
}

// checkLargeConstants reports top-level object or array constants spanning
// more than MaxConstantLines, outside the constants folder.
func checkLargeConstants(f *SourceFile, cfg Config, rule Rule) []Issue {
	if inConstantsFolder(f.Path, cfg) {
		return nil
	}
	title := fmt.Sprintf("Constants longer than %d lines.", cfg.MaxConstantLines)
	return consolidate(rule, f, title, largeConstants(f, cfg),
		fmt.Sprintf("Move them to a %s/ module or a JSON file.", cfg.ConstantsDir))
}

func largeConstants(f *SourceFile, cfg Config) []finding {
	var items []finding
	for i, line := range f.Lines {
		m := reConstValue.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		end := FindBlockEnd(f.Lines, i, m[2][0])
		s := span{start: i, end: end}
		if s.lines() <= cfg.MaxConstantLines {
			continue
		}
		items = append(items, finding{
			line:    i + 1,
			endLine: end + 1,
			name:    m[1],
			detail:  fmt.Sprintf("%d lines", s.lines()),
		})
	}
	return items
}

// inConstantsFolder accepts the configured folder and the short "consts".
func inConstantsFolder(p string, cfg Config) bool {
	return inFolder(p, cfg.ConstantsDir) || inFolder(p, "consts")
}

// checkJSXLength reports JSX blocks, opened by "return (" or "=> (" with
// markup on the next line, that span more than MaxJSXLines.
func checkJSXLength(f *SourceFile, cfg Config, rule Rule) []Issue {
	decls := functionDecls(f.Lines)
	var items []finding
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		m := reJSXOpenParen.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[1] == "" && !nextLineIsMarkup(f.Lines, i) {
			continue
		}
		end := FindBlockEnd(f.Lines, i, '(')
		s := span{start: i, end: end}
		if s.lines() <= cfg.MaxJSXLines {
			continue
		}
		items = append(items, finding{
			line:    i + 1,
			endLine: end + 1,
			name:    enclosingDeclName(decls, i),
			detail:  fmt.Sprintf("%d lines of markup", s.lines()),
		})
	}
	title := fmt.Sprintf("JSX blocks longer than %d lines.", cfg.MaxJSXLines)
	return consolidate(rule, f, title, items, "Extract repeated or self-contained parts into sub-components.")
}

func nextLineIsMarkup(lines []string, i int) bool {
	for j := i + 1; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if t == "" {
			continue
		}
		return strings.HasPrefix(t, "<")
	}
	return false
}

// enclosingDeclName returns the name of the innermost declaration whose body
// contains line idx, or "".
func enclosingDeclName(decls []funcDecl, idx int) string {
	best := -1
	for k, d := range decls {
		if d.body.start <= idx && idx <= d.body.end {
			if best < 0 || d.body.lines() < decls[best].body.lines() {
				best = k
			}
		}
	}
	if best < 0 {
		return ""
	}
	return decls[best].name
}
