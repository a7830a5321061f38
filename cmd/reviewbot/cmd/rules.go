package cmd

import (
	"fmt"

	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List review rules",
	Long:  "Lists every rule with its effective severity and whether the project config disables it.",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadLintConfig(projectRoot(), configPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range lint.DefaultRegistry().Rules() {
		sev := r.Severity
		if s, ok := cfg.Severity[r.Category]; ok {
			sev = s
		}
		scope := "inline"
		if r.FileLevel {
			scope = "file"
		}
		state := ""
		if cfg.IsDisabled(r.Category) {
			state = "  (disabled)"
		}
		fmt.Fprintf(out, "  %-20s %-5s  %-6s  %s%s\n", r.Category, sev, scope, r.Label, state)
	}
	return nil
}
