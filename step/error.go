package step

import (
	"errors"
	"fmt"
)

// Compilation errors
var (
	// ErrInvalidEncoding indicates a literal whose bytes are not valid UTF-8.
	ErrInvalidEncoding = errors.New("literal is not valid UTF-8")

	// ErrNotYetImplemented indicates a construct the parser accepts but the
	// compiler does not lower, such as a nested empty sub-pattern or a
	// case-insensitive literal.
	ErrNotYetImplemented = errors.New("not yet implemented")

	// ErrInvalidRepetition indicates repetition bounds with min > max or min < 0.
	ErrInvalidRepetition = errors.New("invalid repetition bounds")

	// ErrTooComplex indicates the pattern nests deeper than the configured
	// recursion limit.
	ErrTooComplex = errors.New("pattern too complex")
)

// CompileError wraps compilation errors with the offending pattern.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("stepregex: compile %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("stepregex: compile: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
