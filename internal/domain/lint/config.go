package lint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the thresholds and folder conventions shared read-only by
// every classifier. Build it once per run and pass it by value.
type Config struct {
	MaxFileLines     int `yaml:"max_file_lines" validate:"min=1"`
	MaxFunctionLines int `yaml:"max_function_lines" validate:"min=1"`
	MaxParams        int `yaml:"max_params" validate:"min=0"`
	MaxStates        int `yaml:"max_states" validate:"min=0"`
	MaxConstantLines int `yaml:"max_constant_lines" validate:"min=1"`
	MaxJSXLines      int `yaml:"max_jsx_lines" validate:"min=1"`
	MaxConstants     int `yaml:"max_constants" validate:"min=0"`
	MaxTypeLines     int `yaml:"max_type_lines" validate:"min=1"`
	MaxEffectHooks   int `yaml:"max_effect_hooks" validate:"min=0"`
	MaxTryBlocks     int `yaml:"max_try_blocks" validate:"min=0"`

	HooksDir      string `yaml:"hooks_dir" validate:"required,excludesall=/"`
	ComponentsDir string `yaml:"components_dir" validate:"required,excludesall=/"`
	TypesDir      string `yaml:"types_dir" validate:"required,excludesall=/"`
	InterfacesDir string `yaml:"interfaces_dir" validate:"required,excludesall=/"`
	ConstantsDir  string `yaml:"constants_dir" validate:"required,excludesall=/"`
	LibDir        string `yaml:"lib_dir" validate:"required,excludesall=/"`

	// Disabled lists categories that are never reported.
	Disabled []string `yaml:"disabled,omitempty"`
	// Severity overrides the default severity per category.
	Severity map[string]Severity `yaml:"severity,omitempty"`
}

// DefaultConfig returns the built-in thresholds.
func DefaultConfig() Config {
	return Config{
		MaxFileLines:     150,
		MaxFunctionLines: 100,
		MaxParams:        3,
		MaxStates:        5,
		MaxConstantLines: 15,
		MaxJSXLines:      60,
		MaxConstants:     2,
		MaxTypeLines:     5,
		MaxEffectHooks:   3,
		MaxTryBlocks:     2,
		HooksDir:         "hooks",
		ComponentsDir:    "components",
		TypesDir:         "types",
		InterfacesDir:    "interfaces",
		ConstantsDir:     "constants",
		LibDir:           "lib",
	}
}

var validate = validator.New()

// Validate checks thresholds and that every category named in Disabled or
// Severity is known.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	known := make(map[string]bool, len(AllCategories))
	for _, cat := range AllCategories {
		known[cat] = true
	}
	for _, cat := range c.Disabled {
		if !known[cat] {
			return fmt.Errorf("invalid config: unknown category %q in disabled", cat)
		}
	}
	for cat := range c.Severity {
		if !known[cat] {
			return fmt.Errorf("invalid config: unknown category %q in severity", cat)
		}
	}
	return nil
}

// IsDisabled reports whether a category is switched off.
func (c Config) IsDisabled(category string) bool {
	for _, d := range c.Disabled {
		if d == category {
			return true
		}
	}
	return false
}

// Fingerprint returns a stable hash of the config. Cached results are only
// valid for the fingerprint they were computed under.
func (c Config) Fingerprint() string {
	disabled := append([]string(nil), c.Disabled...)
	sort.Strings(disabled)
	cats := make([]string, 0, len(c.Severity))
	for cat := range c.Severity {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d|%d|%d|%d|%d|%d|%d|%d|%d|%d|",
		c.MaxFileLines, c.MaxFunctionLines, c.MaxParams, c.MaxStates,
		c.MaxConstantLines, c.MaxJSXLines, c.MaxConstants,
		c.MaxTypeLines, c.MaxEffectHooks, c.MaxTryBlocks)
	fmt.Fprintf(&sb, "%s|%s|%s|%s|%s|%s|%s|",
		c.HooksDir, c.ComponentsDir, c.TypesDir, c.InterfacesDir,
		c.ConstantsDir, c.LibDir, strings.Join(disabled, ","))
	for _, cat := range cats {
		fmt.Fprintf(&sb, "%s=%s;", cat, c.Severity[cat])
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:8])
}

// ParseConfig overlays YAML data on base. Keys absent from data keep the
// base value. The result is validated.
func ParseConfig(base Config, data []byte) (Config, error) {
	cfg := base
	cfg.Disabled = append([]string(nil), base.Disabled...)
	if base.Severity != nil {
		cfg.Severity = make(map[string]Severity, len(base.Severity))
		for k, v := range base.Severity {
			cfg.Severity[k] = v
		}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML file from fsys and overlays it on base.
func LoadConfig(fsys fs.FS, path string, base Config) (Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(base, data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
