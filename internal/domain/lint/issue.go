package lint

import (
	"fmt"
	"sort"
	"strings"
)

// consolidate merges raw findings of one category into a single Issue. The
// earliest finding anchors the issue and every finding is listed in the
// message. Returns nil when there are no findings.
func consolidate(rule Rule, f *SourceFile, title string, items []finding, tips ...string) []Issue {
	if len(items) == 0 {
		return nil
	}
	sorted := append([]finding(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].line < sorted[j].line
	})

	anchor := clampLine(sorted[0].line, f.LineCount())
	end := anchor
	var sb strings.Builder
	sb.WriteString(title)
	for _, it := range sorted {
		sb.WriteString("\n- ")
		sb.WriteString(describeFinding(it))
		last := it.line
		if it.endLine > last {
			last = it.endLine
		}
		if last > end {
			end = last
		}
	}
	for _, tip := range tips {
		if tip != "" {
			sb.WriteString("\nTip: ")
			sb.WriteString(tip)
		}
	}

	issue := Issue{
		Line:      anchor,
		Message:   sb.String(),
		Severity:  rule.Severity,
		Category:  rule.Category,
		FileLevel: rule.FileLevel,
	}
	if end = clampLine(end, f.LineCount()); end > anchor {
		issue.EndLine = end
	}
	return []Issue{issue}
}

// fileIssue builds a single file-level issue anchored at FileLine.
func fileIssue(rule Rule, message string) []Issue {
	return []Issue{{
		Line:      FileLine,
		Message:   message,
		Severity:  rule.Severity,
		Category:  rule.Category,
		FileLevel: true,
	}}
}

func describeFinding(it finding) string {
	var loc string
	if it.endLine > it.line {
		loc = fmt.Sprintf("lines %d-%d", it.line, it.endLine)
	} else {
		loc = fmt.Sprintf("line %d", it.line)
	}
	switch {
	case it.name != "" && it.detail != "":
		return fmt.Sprintf("%s: `%s` (%s)", loc, it.name, it.detail)
	case it.name != "":
		return fmt.Sprintf("%s: `%s`", loc, it.name)
	case it.detail != "":
		return fmt.Sprintf("%s: %s", loc, it.detail)
	default:
		return loc
	}
}

// clampLine keeps a 1-based line inside [1, lineCount].
func clampLine(line, lineCount int) int {
	if lineCount < 1 {
		return 1
	}
	if line < 1 {
		return 1
	}
	if line > lineCount {
		return lineCount
	}
	return line
}

// SplitIssues separates file-level issues, which belong in a per-file
// summary, from inline ones. Relative order is preserved in both.
func SplitIssues(issues []Issue) (summary, inline []Issue) {
	for _, is := range issues {
		if is.FileLevel {
			summary = append(summary, is)
		} else {
			inline = append(inline, is)
		}
	}
	return summary, inline
}
