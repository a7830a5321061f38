package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/corey/reviewbot/internal/adapters/lintrules"
	"github.com/corey/reviewbot/internal/app"
	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  "Prints the merged configuration as YAML: built-in defaults overlaid with the project config file.",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configDefaults, "defaults", false, "Print the built-in defaults only")
}

// loadLintConfig overlays the project config (or --config) on the embedded
// defaults. source is the file that was applied, or "" when none was.
// A missing default config file is fine; a missing --config is an error.
func loadLintConfig(root, explicit string) (cfg lint.Config, source string, err error) {
	cfg, err = lint.LoadConfig(lintrules.FS, lintrules.DefaultsFile, lint.Config{})
	if err != nil {
		return lint.Config{}, "", fmt.Errorf("built-in defaults: %w", err)
	}

	path := explicit
	if path == "" {
		path = app.NewPaths(root).Config
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return cfg, "", nil
		}
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	cfg, err = lint.LoadConfig(os.DirFS(filepath.Dir(path)), filepath.Base(path), cfg)
	if err != nil {
		return lint.Config{}, "", err
	}
	return cfg, path, nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()

	var (
		cfg    lint.Config
		source string
		err    error
	)
	if configDefaults {
		cfg, err = lint.LoadConfig(lintrules.FS, lintrules.DefaultsFile, lint.Config{})
	} else {
		cfg, source, err = loadLintConfig(root, configPath)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(out, "# root:        %s\n", root)
	fmt.Fprintf(out, "# source:      %s\n", source)
	fmt.Fprintf(out, "# cache:       %s\n", app.NewPaths(root).DB)
	fmt.Fprintf(out, "# fingerprint: %s\n", cfg.Fingerprint())

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
