package inspection

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyComplete = errors.New("inspection already complete")
	ErrNotCompletable  = errors.New("inspection cannot be completed")
)

// NotCompletableError lists what blocks completion. It matches
// ErrNotCompletable with errors.Is.
type NotCompletableError struct {
	Missing []string
}

func (e *NotCompletableError) Error() string {
	return ErrNotCompletable.Error() + ": missing " + strings.Join(e.Missing, ", ")
}

func (e *NotCompletableError) Is(target error) bool {
	return target == ErrNotCompletable
}
