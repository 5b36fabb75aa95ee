package hir

import "errors"

// Syntax tree errors
var (
	// ErrGrammar indicates the pattern is not a valid regular expression.
	// The underlying *syntax.Error is wrapped alongside it.
	ErrGrammar = errors.New("invalid regular expression")

	// ErrUnsupportedLookaround indicates an assertion other than start or end
	// of input, or an anchor used as the whole pattern.
	ErrUnsupportedLookaround = errors.New("unsupported lookaround")

	// ErrUnsupportedAnchorPosition indicates a start anchor that is not the
	// first element of the pattern, or an end anchor that is not the last.
	ErrUnsupportedAnchorPosition = errors.New("unsupported anchor position")
)
