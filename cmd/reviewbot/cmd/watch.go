package cmd

import (
	"fmt"
	"os"

	"github.com/corey/reviewbot/internal/adapters/review"
	"github.com/corey/reviewbot/internal/app"
	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/spf13/cobra"
)

var (
	watchInitial bool
	watchColor   string
	watchNoCache bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-review files as they are saved",
	Long:  "Watches the project for source changes and prints the issues of each saved file. Ctrl-C stops.",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", true, "Review the whole project before watching")
	watchCmd.Flags().StringVar(&watchColor, "color", "auto", "Color output: auto, always, never")
	watchCmd.Flags().BoolVar(&watchNoCache, "no-cache", false, "Do not read or write .reviewbot/cache.db")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root := projectRoot()
	cfg, _, err := loadLintConfig(root, configPath)
	if err != nil {
		return err
	}

	a, err := app.New(app.Config{
		ProjectRoot: root,
		NoCache:     watchNoCache,
		Lint:        cfg,
		Logger:      logger,
	})
	if err != nil {
		return explainDBError(err)
	}
	defer a.Close()

	opts := review.TextOptions{Color: resolveColor(watchColor, false)}
	if watchInitial {
		rep, err := a.Check(ctx)
		if err != nil {
			return err
		}
		if err := review.WriteText(os.Stdout, rep, opts); err != nil {
			return err
		}
	}

	return a.Watch(ctx, func(fr lint.FileReport) {
		if len(fr.Issues) == 0 {
			fmt.Printf("✔ %s\n", fr.Path)
			return
		}
		rep := lint.Report{Files: []lint.FileReport{fr}, Checked: 1}
		if err := review.WriteText(os.Stdout, rep, opts); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	})
}
