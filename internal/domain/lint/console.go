package lint

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reConsole = regexp.MustCompile(`\bconsole\.(log|debug|info|warn|error|trace|table|dir|group|groupEnd|time|timeEnd)\s*\(`)
	reCatch   = regexp.MustCompile(`\bcatch\b`)
)

const (
	consoleTip      = "Remove debug output before merging."
	consoleCatchTip = "Inside catch blocks, report the error through the app's logger or error tracking instead of console."
)

// inCatchBlock reports whether the console call at lines[idx][col:] sits
// inside a catch body. A catch opened earlier on the same line counts, as in
// "} catch (e) { console.error(e) }". Otherwise one of the enclosing openers
// must be on a line mentioning catch, and that block's end (found forward)
// must be at or after idx.
func inCatchBlock(lines []string, idx, col int) bool {
	if idx < len(lines) && col <= len(lines[idx]) && openCatchBefore(lines[idx][:col]) {
		return true
	}
	for _, start := range EnclosingBlockStarts(lines, idx) {
		if reCatch.MatchString(lines[start]) && FindBlockEnd(lines, start, '{') >= idx {
			return true
		}
	}
	return false
}

// openCatchBefore reports whether prefix holds a catch whose body brace is
// still open at the end of prefix.
func openCatchBefore(prefix string) bool {
	locs := reCatch.FindAllStringIndex(prefix, -1)
	if locs == nil {
		return false
	}
	after := prefix[locs[len(locs)-1][1]:]
	return strings.Contains(after, "{") && clampedDepth(after, '{', '}') > 0
}

// checkConsole flags console calls. When any call is inside a catch block
// the message gains a remediation tip specific to error handling.
func checkConsole(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	anyCatch := false
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		m := reConsole.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		detail := ""
		if inCatchBlock(f.Lines, i, m[0]) {
			anyCatch = true
			detail = "inside catch"
		}
		items = append(items, finding{line: i + 1, name: "console." + line[m[2]:m[3]], detail: detail})
	}
	if len(items) == 0 {
		return nil
	}
	title := fmt.Sprintf("console statements left in code (%d).", len(items))
	if anyCatch {
		return consolidate(rule, f, title, items, consoleTip, consoleCatchTip)
	}
	return consolidate(rule, f, title, items, consoleTip)
}
