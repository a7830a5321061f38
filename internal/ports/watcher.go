package ports

// Watcher reports edits to reviewable source files under a project root so
// watch mode can re-review them. Skipped directories, ignored paths and
// non-source files never reach the callback.
type Watcher interface {
	// Watch begins recursive monitoring of projectPath and returns once
	// monitoring is set up. onChange receives the absolute path of a file
	// that was written, created, renamed or removed, possibly from another
	// goroutine. A missing projectPath is an error.
	Watch(projectPath string, onChange func(filePath string)) error

	// Stop ends monitoring. Pending callbacks are dropped. Calling Stop
	// more than once is fine.
	Stop() error
}
