package stepregex

import (
	"github.com/coregx/stepregex/hir"
	"github.com/coregx/stepregex/step"
)

// Errors returned by Compile, wrapped in a *CompileError.
var (
	// ErrGrammar indicates the pattern does not parse.
	ErrGrammar = hir.ErrGrammar

	// ErrUnsupportedLookaround indicates a zero-width assertion other than a
	// leading ^ or trailing $.
	ErrUnsupportedLookaround = hir.ErrUnsupportedLookaround

	// ErrUnsupportedAnchorPosition indicates ^ or $ somewhere other than the
	// start or end of the pattern.
	ErrUnsupportedAnchorPosition = hir.ErrUnsupportedAnchorPosition

	// ErrInvalidEncoding indicates a literal that is not valid UTF-8.
	ErrInvalidEncoding = step.ErrInvalidEncoding

	// ErrNotYetImplemented indicates a construct that parses but is not
	// compiled, such as an empty group or a case-insensitive literal.
	ErrNotYetImplemented = step.ErrNotYetImplemented

	// ErrInvalidRepetition indicates repetition bounds with min > max.
	ErrInvalidRepetition = step.ErrInvalidRepetition

	// ErrTooComplex indicates nesting deeper than Config.MaxRecursionDepth.
	ErrTooComplex = step.ErrTooComplex
)

// CompileError wraps a compilation error with the offending pattern.
type CompileError = step.CompileError

// ConfigError reports an invalid Config field.
type ConfigError = step.ConfigError
