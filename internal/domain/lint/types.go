// Package lint implements the heuristic checks run against component source
// files. Everything here is lexical: lines are matched with regular
// expressions and block extents come from delimiter counting. There is no
// parser and no I/O; every check is a pure function of its input.
package lint

import (
	"fmt"
	"strings"
)

// Severity is the level attached to an Issue.
type Severity int

const (
	SevWarn  Severity = 0
	SevError Severity = 1
)

// String returns the wire label for a severity.
func (s Severity) String() string {
	switch s {
	case SevWarn:
		return "warn"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}

// SeverityFromName maps "warn"/"error" to a Severity.
// Returns -1 for unknown names. "warning" is accepted as an alias.
func SeverityFromName(name string) Severity {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "warn", "warning":
		return SevWarn
	case "error":
		return SevError
	default:
		return -1
	}
}

// MarshalText encodes the severity as its label so JSON and YAML carry
// "warn"/"error" rather than integers.
func (s Severity) MarshalText() ([]byte, error) {
	if s != SevWarn && s != SevError {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity label.
func (s *Severity) UnmarshalText(text []byte) error {
	sev := SeverityFromName(string(text))
	if sev < 0 {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = sev
	return nil
}

// Issue categories. A category yields at most one Issue per file.
const (
	CatFileSize          = "file-size"
	CatUnusedImport      = "unused-import"
	CatConsoleLog        = "console-log"
	CatComment           = "comment"
	CatCommentedCode     = "commented-code"
	CatTodoComment       = "todo-comment"
	CatLongFunction      = "long-function"
	CatTooManyParams     = "too-many-params"
	CatRepetitivePattern = "repetitive-pattern"
	CatDuplicatePattern  = "duplicate-pattern"
	CatTooManyStates     = "too-many-states"
	CatHookPlacement     = "hook-placement"
	CatHookExtraction    = "hook-extraction"
	CatInvalidHookCall   = "invalid-hook-call"
	CatLargeConstant     = "large-constant"
	CatScatteredConstant = "scattered-constants"
	CatMultipleComponent = "multiple-components"
	CatInlineType        = "inline-type"
	CatLargeJSX          = "large-jsx"
	CatDataAccess        = "data-access"
	CatAtomicDesign      = "atomic-design"
)

// FileLine is the anchor line used for file-level issues.
const FileLine = 1

// Issue is one reported finding.
type Issue struct {
	Line      int      `json:"line"`
	EndLine   int      `json:"endLine,omitempty"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Category  string   `json:"category"`
	FileLevel bool     `json:"fileLevel,omitempty"`
}

// SourceFile is one file under analysis. Lines and Content are shared
// read-only by every classifier.
type SourceFile struct {
	Path    string
	Content string
	Lines   []string
}

// NewSourceFile splits content into lines once. A trailing newline does not
// produce an extra empty line, and CRLF endings are normalized.
func NewSourceFile(path, content string) *SourceFile {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	var lines []string
	if normalized != "" {
		lines = strings.Split(strings.TrimSuffix(normalized, "\n"), "\n")
	}
	return &SourceFile{
		Path:    path,
		Content: normalized,
		Lines:   lines,
	}
}

// LineCount returns the number of lines in the file.
func (f *SourceFile) LineCount() int {
	return len(f.Lines)
}

// finding is a raw match before consolidation.
type finding struct {
	line    int // 1-based
	endLine int // 0 when the finding covers a single line
	name    string
	detail  string
}
