package cmd

import (
	"fmt"
	"strings"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// explainDBError adds guidance to a cache open failure caused by another
// process holding the lock. Other errors pass through unchanged.
func explainDBError(err error) error {
	if !isDBLockError(err) {
		return err
	}
	return fmt.Errorf("%w\n"+
		"  → the result cache is locked, usually by `reviewbot watch` in this project\n"+
		"  → stop it, or rerun with --no-cache", err)
}
