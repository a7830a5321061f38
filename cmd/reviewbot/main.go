// reviewbot runs heuristic review checks over React and TypeScript sources.
// Single binary: check a tree or a diff, watch while editing, emit a GitHub
// review payload for CI.
package main

import (
	"fmt"
	"os"

	"github.com/corey/reviewbot/cmd/reviewbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.LintExitCode(err); code >= 0 {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}
