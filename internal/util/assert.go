package util

import "fmt"

// InternalError signals a broken invariant inside the compiler, i.e. a bug in an earlier stage
// rather than a problem with the input program. It is raised via panic and must not be recovered
// from except to report it and stop.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}

// Assert panics with an *InternalError if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(&InternalError{Message: fmt.Sprintf(format, args...)})
	}
}

// Reverse reverses a slice in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
