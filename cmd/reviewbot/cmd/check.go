package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/corey/reviewbot/internal/adapters/gitdiff"
	"github.com/corey/reviewbot/internal/adapters/review"
	"github.com/corey/reviewbot/internal/app"
	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/spf13/cobra"
)

var (
	checkFormat  string
	checkDiff    bool
	checkBase    string
	checkNoCache bool
	checkFailOn  string
	checkColor   string
	checkNoColor bool
	checkQuiet   bool
	checkWorkers int
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Review source files",
	Long: "Reviews every source file under the given paths (default: the project root).\n\n" +
		"With --diff only files changed against HEAD (plus untracked files) are reviewed,\n" +
		"and only issues touching added lines are reported. --base compares HEAD with a\n" +
		"branch instead, the way a pull request sees it.\n\n" +
		"Exit codes: 0 clean, 1 issues at or above --fail-on, 2 error.",
	Example: "  reviewbot check\n" +
		"  reviewbot check src/components --format json\n" +
		"  reviewbot check --base origin/main --format github > review.json",
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVarP(&checkFormat, "format", "f", review.FormatText, fmt.Sprintf("Output format %v", review.Formats))
	f.BoolVar(&checkDiff, "diff", false, "Only review uncommitted changes")
	f.StringVar(&checkBase, "base", "", "Only review changes since this revision (implies --diff)")
	f.BoolVar(&checkNoCache, "no-cache", false, "Do not read or write .reviewbot/cache.db")
	f.StringVar(&checkFailOn, "fail-on", "error", "Exit 1 when an issue has this severity or higher: warn, error, none")
	f.StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
	f.BoolVar(&checkNoColor, "no-color", false, "Disable color output")
	f.BoolVarP(&checkQuiet, "quiet", "q", false, "Print only the summary line (text format)")
	f.IntVarP(&checkWorkers, "workers", "j", 0, "Files analyzed in parallel (default: GOMAXPROCS)")
}

// parseFailOn maps --fail-on to a severity. ok is false for "none".
func parseFailOn(v string) (sev lint.Severity, ok bool, err error) {
	if v == "none" {
		return 0, false, nil
	}
	sev = lint.SeverityFromName(v)
	if sev < 0 {
		return 0, false, fmt.Errorf("invalid --fail-on %q (want warn, error or none)", v)
	}
	return sev, true, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	if !slices.Contains(review.Formats, checkFormat) {
		return fmt.Errorf("invalid --format %q (want one of %v)", checkFormat, review.Formats)
	}
	failSev, failEnabled, err := parseFailOn(checkFailOn)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	root := projectRoot()
	cfg, source, err := loadLintConfig(root, configPath)
	if err != nil {
		return err
	}
	if source != "" {
		logger.Debug("config loaded", "path", source)
	}

	appCfg := app.Config{
		ProjectRoot: root,
		NoCache:     checkNoCache,
		Lint:        cfg,
		Workers:     checkWorkers,
		Logger:      logger,
	}
	if checkDiff || checkBase != "" {
		repo, err := gitdiff.Open(ctx, root)
		if err != nil {
			return fmt.Errorf("--diff needs a git repository: %w", err)
		}
		appCfg.Changes = repo
		appCfg.ChangesRoot = repo.Root()
		appCfg.Base = checkBase
	}

	a, err := app.New(appCfg)
	if err != nil {
		return explainDBError(err)
	}
	defer a.Close()

	rep, err := a.Check(ctx, args...)
	if err != nil {
		return err
	}

	opts := review.TextOptions{Color: resolveColor(checkColor, checkNoColor), Quiet: checkQuiet}
	if err := review.Write(os.Stdout, rep, checkFormat, opts); err != nil {
		return err
	}
	if failEnabled && rep.HasAtLeast(failSev) {
		return lintExit{code: 1}
	}
	return nil
}
