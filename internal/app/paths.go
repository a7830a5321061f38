package app

import (
	"os"
	"path/filepath"
)

// Paths holds the resolved filesystem paths a project uses.
type Paths struct {
	Root   string // .reviewbot/
	DB     string // .reviewbot/cache.db
	Config string // .reviewbot.yaml at the project root
}

// ConfigFileName is the per-project config file looked up at the root.
const ConfigFileName = ".reviewbot.yaml"

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".reviewbot")
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "cache.db"),
		Config: filepath.Join(projectRoot, ConfigFileName),
	}
}

// EnsureDirs creates .reviewbot/. Idempotent.
func (p *Paths) EnsureDirs() error {
	return os.MkdirAll(p.Root, 0755)
}

// RemoveCache deletes the cache database. A missing file is not an error.
func (p *Paths) RemoveCache() error {
	if err := os.Remove(p.DB); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
