package review

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/corey/reviewbot/internal/domain/lint"
)

// WriteJSON writes the report as indented JSON. Severities appear as
// "warn"/"error".
func WriteJSON(w io.Writer, rep lint.Report) error {
	if rep.Files == nil {
		rep.Files = []lint.FileReport{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
