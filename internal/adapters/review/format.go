package review

import (
	"fmt"
	"io"

	"github.com/corey/reviewbot/internal/domain/lint"
)

// Output formats accepted by Write.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatGitHub = "github"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatGitHub}

// Write renders rep in the named format.
func Write(w io.Writer, rep lint.Report, format string, opts TextOptions) error {
	switch format {
	case FormatText, "":
		return WriteText(w, rep, opts)
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatGitHub:
		return WriteGitHub(w, rep)
	default:
		return fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
}
