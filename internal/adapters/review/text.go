// Package review renders a lint.Report for people and for machines: a
// terminal listing, plain JSON, and the payload of a GitHub pull request
// review.
package review

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/muesli/termenv"
)

// TextOptions controls the terminal listing.
type TextOptions struct {
	Color bool
	// Quiet prints only the final tally.
	Quiet bool
}

type palette struct {
	path  lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
	cat   lipgloss.Style
	dim   lipgloss.Style
	good  lipgloss.Style
	title lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		path:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		err:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		cat:   r.NewStyle().Foreground(lipgloss.Color("212")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("241")),
		good:  r.NewStyle().Foreground(lipgloss.Color("42")),
		title: r.NewStyle().Bold(true),
	}
}

// WriteText writes a per-file listing followed by a tally:
//
//	src/components/Card.tsx
//	  7       error  unused-import        Unused imports: remove them.
//	                                      - line 7: `FC` (from 'react')
//
//	✖ 1 issue (1 error, 0 warnings) in 1 file, 3 checked
func WriteText(w io.Writer, rep lint.Report, opts TextOptions) error {
	p := newPalette(w, opts.Color)
	var sb strings.Builder

	if !opts.Quiet {
		for _, f := range rep.Files {
			sb.WriteString(p.path.Render(f.Path))
			sb.WriteString("\n")
			for _, is := range f.Issues {
				writeIssue(&sb, p, is)
			}
			sb.WriteString("\n")
		}
	}

	warnings, errors := rep.Counts()
	total := warnings + errors
	switch {
	case total == 0:
		sb.WriteString(p.good.Render(fmt.Sprintf("✔ No issues in %s", plural(rep.Checked, "file"))))
	default:
		tally := fmt.Sprintf("✖ %s (%s, %s) in %s, %d checked",
			plural(total, "issue"), plural(errors, "error"), plural(warnings, "warning"),
			plural(len(rep.Files), "file"), rep.Checked)
		if errors > 0 {
			sb.WriteString(p.err.Render(tally))
		} else {
			sb.WriteString(p.warn.Render(tally))
		}
	}
	if rep.Skipped > 0 {
		sb.WriteString(p.dim.Render(fmt.Sprintf(" (%d skipped)", rep.Skipped)))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// messageIndent lines continuation text up under the first message line.
var messageIndent = strings.Repeat(" ", 2+7+1+5+2+19+2)

func writeIssue(sb *strings.Builder, p palette, is lint.Issue) {
	loc := fmt.Sprintf("%d", is.Line)
	if is.FileLevel {
		loc = "file"
	} else if is.EndLine > is.Line {
		loc = fmt.Sprintf("%d-%d", is.Line, is.EndLine)
	}

	sev := p.warn.Render(fmt.Sprintf("%-5s", is.Severity))
	if is.Severity == lint.SevError {
		sev = p.err.Render(fmt.Sprintf("%-5s", is.Severity))
	}

	lines := strings.Split(is.Message, "\n")
	fmt.Fprintf(sb, "  %s %s  %s  %s\n",
		p.dim.Render(fmt.Sprintf("%-7s", loc)), sev,
		p.cat.Render(fmt.Sprintf("%-19s", is.Category)), p.title.Render(lines[0]))
	for _, l := range lines[1:] {
		sb.WriteString(messageIndent)
		sb.WriteString(p.dim.Render(l))
		sb.WriteString("\n")
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
