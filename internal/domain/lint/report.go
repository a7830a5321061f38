package lint

// FileReport holds the issues found in one file.
type FileReport struct {
	Path   string  `json:"path"`
	Issues []Issue `json:"issues"`
}

// Report is the outcome of one review run, files sorted by path.
type Report struct {
	Files []FileReport `json:"files"`
	// Checked counts every file analyzed, including clean ones.
	Checked int `json:"checked"`
	// Skipped counts files left out for size or read errors.
	Skipped int `json:"skipped,omitempty"`
}

// Counts returns the number of issues at each severity.
func (r Report) Counts() (warnings, errors int) {
	for _, f := range r.Files {
		for _, is := range f.Issues {
			if is.Severity == SevError {
				errors++
			} else {
				warnings++
			}
		}
	}
	return warnings, errors
}

// IssueCount returns the total number of issues.
func (r Report) IssueCount() int {
	w, e := r.Counts()
	return w + e
}

// HasAtLeast reports whether any issue has severity sev or higher.
func (r Report) HasAtLeast(sev Severity) bool {
	for _, f := range r.Files {
		for _, is := range f.Issues {
			if is.Severity >= sev {
				return true
			}
		}
	}
	return false
}
