package review

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/corey/reviewbot/internal/domain/lint"
)

// GitHubComment is one inline comment of a pull request review. A
// multi-line comment sets StartLine to the first line and Line to the last.
type GitHubComment struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	StartLine int    `json:"start_line,omitempty"`
	Side      string `json:"side"`
	StartSide string `json:"start_side,omitempty"`
	Body      string `json:"body"`
}

// GitHubReview is the request body of GitHub's "create a review" endpoint.
// File-level issues go into Body as a per-file summary; the rest become
// inline comments.
type GitHubReview struct {
	Event    string          `json:"event"`
	Body     string          `json:"body"`
	Comments []GitHubComment `json:"comments"`
}

const sideRight = "RIGHT"

// BuildGitHubReview converts a report into a review payload. Comments are
// ordered by path then line.
func BuildGitHubReview(rep lint.Report) GitHubReview {
	review := GitHubReview{Event: "COMMENT", Comments: []GitHubComment{}}

	var summary strings.Builder
	warnings, errors := rep.Counts()
	if warnings+errors == 0 {
		summary.WriteString("## Automated Review Summary\n\n✅ No issues detected by automated checks.")
		review.Body = summary.String()
		return review
	}
	fmt.Fprintf(&summary, "## Automated Review Summary\n\nIssues detected: Errors: %d, Warnings: %d", errors, warnings)

	for _, f := range rep.Files {
		fileLevel, inline := lint.SplitIssues(f.Issues)
		if len(fileLevel) > 0 {
			fmt.Fprintf(&summary, "\n\n### `%s`\n", f.Path)
			for _, is := range fileLevel {
				fmt.Fprintf(&summary, "\n- **%s** (%s): %s", is.Category, is.Severity, indentContinuation(is.Message))
			}
		}
		for _, is := range inline {
			review.Comments = append(review.Comments, inlineComment(f.Path, is))
		}
	}

	sort.SliceStable(review.Comments, func(i, j int) bool {
		a, b := review.Comments[i], review.Comments[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Line < b.Line
	})
	review.Body = summary.String()
	return review
}

func inlineComment(path string, is lint.Issue) GitHubComment {
	c := GitHubComment{
		Path: path,
		Line: is.Line,
		Side: sideRight,
		Body: fmt.Sprintf("**%s** (%s): %s", is.Category, is.Severity, is.Message),
	}
	if is.EndLine > is.Line {
		c.StartLine = is.Line
		c.StartSide = sideRight
		c.Line = is.EndLine
	}
	return c
}

// indentContinuation keeps multi-line messages inside their list item.
func indentContinuation(msg string) string {
	return strings.ReplaceAll(msg, "\n", "\n  ")
}

// WriteGitHub writes the review payload as JSON.
func WriteGitHub(w io.Writer, rep lint.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildGitHubReview(rep)); err != nil {
		return fmt.Errorf("encode review: %w", err)
	}
	return nil
}
