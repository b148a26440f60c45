package contract

import (
	"errors"
	"fmt"
)

// ErrNotARepository is returned when the target path has no Git metadata.
var ErrNotARepository = errors.New("current folder has no initialized git repository")

// AdapterError reports a failure while reading history from a repository.
// It is returned unmodified up to the command boundary.
type AdapterError struct {
	Op  string // Operation that failed, e.g. "list branches"
	Ref string // Branch involved, empty when not applicable
	Err error  // Underlying cause
}

func (e *AdapterError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Ref, e.Err)
}

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *AdapterError) Unwrap() error { return e.Err }
