package lint

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reDirective   = regexp.MustCompile(`^/[/*]\s*(?:eslint|@ts-|prettier-ignore|istanbul|#region|#endregion|/\s*<reference|@jsx)`)
	reWarningTerm = regexp.MustCompile(`(?i)^(?://+|/\*+|\*)\s*(todo|fixme|xxx|hack|bug|note)\b`)
	reCodeComment = regexp.MustCompile(`^(?:(?:import|export|const|let|var|return|await|throw|function|class|async)\b.|(?:if|for|while|switch)\s*\(|[\w$.\[\]]+\s*\(.*\)\s*;?$|[\w$.\[\]]+\s*[-+*/]?=\s*[^=\s]|</?[A-Za-z][\w.]*(?:[\s>/]|$)|[{}()\];]+$)`)
)

// looksLikeCommentedCode reports whether the text of a "//" comment line
// reads as a disabled statement rather than prose.
func looksLikeCommentedCode(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "//") {
		return false
	}
	text := strings.TrimSpace(strings.TrimLeft(t, "/"))
	if text == "" {
		return false
	}
	return reCodeComment.MatchString(text) || strings.HasSuffix(text, ";") || strings.HasSuffix(text, "{")
}

// commentStart returns the byte offset where a "//" or "/*" comment begins
// on the line, ignoring markers inside quoted strings. Quote state resets
// at every line, so strings spanning lines are not tracked.
func commentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '/':
			if i+1 < len(line) && (line[i+1] == '/' || line[i+1] == '*') {
				return i
			}
		}
	}
	return -1
}

// headerEnd returns the index of the first line that is neither blank nor a
// comment. Comments above it form the file header.
func headerEnd(lines []string) int {
	inBlock := false
	for i, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case inBlock:
			if strings.Contains(t, "*/") {
				inBlock = false
			}
		case t == "" || strings.HasPrefix(t, "//"):
		case strings.HasPrefix(t, "/*"):
			inBlock = !strings.Contains(t, "*/")
		default:
			return i
		}
	}
	return len(lines)
}

// checkInlineComments flags "//" comments in code: trailing comments after
// a statement and standalone comment lines. The file header, tool
// directives, warning markers (reported by checkTodoComments) and
// commented-out code (checkCommentedCode) are skipped.
func checkInlineComments(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for i := headerEnd(f.Lines); i < len(f.Lines); i++ {
		line := f.Lines[i]
		if isCommentLine(line) && !strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		idx := commentStart(line)
		if idx < 0 {
			continue
		}
		comment := line[idx:]
		if reDirective.MatchString(comment) || reWarningTerm.MatchString(comment) {
			continue
		}
		code := strings.TrimSpace(line[:idx])
		switch {
		case code != "" && code != "{":
			items = append(items, finding{line: i + 1, detail: "trailing comment"})
		case looksLikeCommentedCode(comment):
		case strings.HasPrefix(comment, "//"):
			items = append(items, finding{line: i + 1, detail: "comment line"})
		}
	}
	if len(items) == 0 {
		return nil
	}
	title := fmt.Sprintf("Comments in code (%d): prefer self-explanatory names and move needed context to docs or the PR description.", len(items))
	return consolidate(rule, f, title, items)
}

// checkCommentedCode flags "//" lines whose text is a disabled statement.
// Git keeps the history, so the code can go.
func checkCommentedCode(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for i, line := range f.Lines {
		t := strings.TrimSpace(line)
		if reDirective.MatchString(t) || reWarningTerm.MatchString(t) {
			continue
		}
		if looksLikeCommentedCode(t) {
			items = append(items, finding{line: i + 1})
		}
	}
	return consolidate(rule, f, "Commented-out code: delete it, version control keeps the history.", items)
}

// checkTodoComments flags comments that open with a TODO, FIXME, XXX,
// HACK, BUG or NOTE marker.
func checkTodoComments(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for i, line := range f.Lines {
		comment := ""
		if idx := commentStart(line); idx >= 0 {
			comment = line[idx:]
		} else if isCommentLine(line) {
			comment = strings.TrimSpace(line)
		}
		if comment == "" {
			continue
		}
		if m := reWarningTerm.FindStringSubmatch(comment); m != nil {
			items = append(items, finding{line: i + 1, name: strings.ToUpper(m[1])})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return consolidate(rule, f, "Warning markers in comments: resolve them or track them in an issue.", items)
}
