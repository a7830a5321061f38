package cmd

import (
	"errors"
	"fmt"
)

// lintExit is returned by check when issues reach the --fail-on severity.
// Exit codes: 0=clean, 1=issues found, 2=error.
type lintExit struct{ code int }

func (e lintExit) Error() string {
	switch e.code {
	case 0:
		return ""
	case 1:
		return "issues found"
	default:
		return fmt.Sprintf("review error (exit %d)", e.code)
	}
}

// LintExitCode extracts the exit code from a lintExit error.
// Returns -1 if the error is not a lintExit.
func LintExitCode(err error) int {
	var le lintExit
	if errors.As(err, &le) {
		return le.code
	}
	return -1
}
