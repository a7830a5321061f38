package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/corey/reviewbot/internal/app"
	"github.com/spf13/cobra"
)

var cacheAll bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the result cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and size",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached results for this project",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheClearCmd.Flags().BoolVar(&cacheAll, "all", false, "Delete the whole cache file")
}

// openCached opens the app with its cache, or returns nil when no cache
// file exists yet.
func openCached(root string) (*app.App, error) {
	paths := app.NewPaths(root)
	if _, err := os.Stat(paths.DB); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	cfg, _, err := loadLintConfig(root, configPath)
	if err != nil {
		return nil, err
	}
	a, err := app.New(app.Config{ProjectRoot: root, Lint: cfg, Logger: logger})
	if err != nil {
		return nil, explainDBError(err)
	}
	return a, nil
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	out := cmd.OutOrStdout()
	paths := app.NewPaths(root)

	a, err := openCached(root)
	if err != nil {
		return err
	}
	if a == nil {
		fmt.Fprintf(out, "  Cache:   %s (not created yet)\n", paths.DB)
		return nil
	}
	defer a.Close()

	n, err := a.CachedFiles()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Cache:   %s\n", paths.DB)
	fmt.Fprintf(out, "  Project: %s\n", a.ProjectID)
	fmt.Fprintf(out, "  Files:   %d\n", n)
	if info, err := os.Stat(paths.DB); err == nil {
		fmt.Fprintf(out, "  Size:    %d KiB\n", (info.Size()+1023)/1024)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	out := cmd.OutOrStdout()

	if cacheAll {
		if err := app.NewPaths(root).RemoveCache(); err != nil {
			return fmt.Errorf("remove cache: %w", err)
		}
		fmt.Fprintln(out, "cache removed")
		return nil
	}

	a, err := openCached(root)
	if err != nil {
		return err
	}
	if a == nil {
		fmt.Fprintln(out, "no cache to clear")
		return nil
	}
	defer a.Close()

	if err := a.ClearCache(); err != nil {
		return err
	}
	fmt.Fprintln(out, "cache cleared")
	return nil
}
