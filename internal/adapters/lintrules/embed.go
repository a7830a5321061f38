// Package lintrules embeds the default review thresholds.
// This is a standalone package with no imports to avoid circular dependencies.
package lintrules

import "embed"

// DefaultsFile is the path of the default configuration inside FS.
const DefaultsFile = "defaults.yaml"

//go:embed defaults.yaml
var FS embed.FS
