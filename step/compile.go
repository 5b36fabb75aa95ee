package step

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/stepregex/hir"
	"github.com/coregx/stepregex/literal"
	"github.com/coregx/stepregex/prefilter"
)

// Compiler lowers syntax trees into Programs.
//
// A Compiler is not safe for concurrent use; the Programs it produces are.
type Compiler struct {
	config Config
	depth  int // current recursion depth
}

// NewCompiler creates a compiler with the given configuration.
// A zero MaxRecursionDepth is replaced by the default; the rest of config is
// validated by Compile and CompileNode.
func NewCompiler(config Config) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = DefaultConfig().MaxRecursionDepth
	}
	return &Compiler{config: config}
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Program, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with config. An invalid config is
// reported as a *ConfigError.
func CompileWithConfig(pattern string, config Config) (*Program, error) {
	return NewCompiler(config).Compile(pattern)
}

// Compile parses pattern and compiles it.
//
// An invalid configuration is reported as a *ConfigError before the pattern
// is parsed. Every other error is a *CompileError carrying the pattern; use errors.Is with the
// sentinel errors of this package and of package hir to tell them apart.
func (c *Compiler) Compile(pattern string) (*Program, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	node, err := hir.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	prog, err := c.CompileNode(node)
	if err != nil {
		if ce, ok := err.(*CompileError); ok {
			ce.Pattern = pattern
		}
		return nil, err
	}
	prog.pattern = pattern
	return prog, nil
}

// CompileNode compiles an already parsed syntax tree.
//
// The configuration is validated first, so a Compiler built from an invalid
// Config fails here with a *ConfigError. The top-level anchors are then
// classified (see hir.Classify); the remaining nodes are compiled under
// AbortAttempt.
func (c *Compiler) CompileNode(node hir.Node) (*Program, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	c.depth = 0

	anchors, body, err := hir.Classify(node)
	if err != nil {
		return nil, &CompileError{Err: err}
	}

	steps, err := c.compileSeq(body, AbortAttempt, nil)
	if err != nil {
		return nil, &CompileError{Err: err}
	}

	prog := &Program{
		pattern:   node.String(),
		steps:     steps,
		anchors:   anchors,
		semantics: c.config.Semantics,
	}

	if c.config.EnablePrefilter && !anchors.Start && !anchors.End {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   c.config.MaxLiterals,
			MaxLiteralLen: c.config.MaxLiteralLen,
			MaxClassSize:  c.config.MaxClassSize,
		})
		prog.prefilter = prefilter.NewBuilder(extractor.ExtractPrefixes(body...)).Build()
	}

	return prog, nil
}

// compileSeq compiles nodes in order under mode, appending to out.
func (c *Compiler) compileSeq(nodes []hir.Node, mode FailMode, out []Step) ([]Step, error) {
	for _, n := range nodes {
		var err error
		out, err = c.compileNode(n, mode, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// compileNode compiles one node under mode and appends the resulting steps.
// Concatenations are flattened into out rather than nested.
func (c *Compiler) compileNode(node hir.Node, mode FailMode, out []Step) ([]Step, error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d", ErrTooComplex, c.config.MaxRecursionDepth)
	}
	defer func() { c.depth-- }()

	switch n := node.(type) {
	case *hir.Literal:
		s, err := compileLiteral(n, mode)
		if err != nil {
			return nil, err
		}
		return append(out, s), nil

	case *hir.CharClass:
		return append(out, newClassStep(n, mode)), nil

	case *hir.Repetition:
		s, err := c.compileRepetition(n, mode)
		if err != nil {
			return nil, err
		}
		return append(out, s), nil

	case *hir.Concat:
		return c.compileSeq(n.Subs, mode, out)

	case *hir.Alternation:
		s, err := c.compileAlternation(n, mode)
		if err != nil {
			return nil, err
		}
		return append(out, s), nil

	case *hir.Group:
		body, err := c.compileNode(n.Sub, AbortAttempt, nil)
		if err != nil {
			return nil, err
		}
		return append(out, &groupStep{body: body, mode: mode}), nil

	case *hir.Anchor:
		if n.Look == hir.LookStart || n.Look == hir.LookEnd {
			return nil, fmt.Errorf("%w: %s", hir.ErrUnsupportedAnchorPosition, n.Look)
		}
		return nil, fmt.Errorf("%w: %s", hir.ErrUnsupportedLookaround, n.Look)
	}

	if node.Kind() == hir.KindEmpty {
		return nil, fmt.Errorf("%w: empty sub-pattern", ErrNotYetImplemented)
	}
	return nil, fmt.Errorf("%w: node kind %s", ErrNotYetImplemented, node.Kind())
}

func compileLiteral(n *hir.Literal, mode FailMode) (Step, error) {
	if !utf8.Valid(n.Bytes) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, n.Bytes)
	}
	if n.FoldCase {
		return nil, fmt.Errorf("%w: case-insensitive literal %s", ErrNotYetImplemented, n)
	}
	return &literalStep{lit: string(n.Bytes), mode: mode}, nil
}

// compileRepetition compiles the body once under AbortIteration. The
// repetition itself fails under the enclosing mode.
func (c *Compiler) compileRepetition(n *hir.Repetition, mode FailMode) (Step, error) {
	if n.Min < 0 || (n.Max >= 0 && n.Min > n.Max) {
		return nil, fmt.Errorf("%w: {%d,%d}", ErrInvalidRepetition, n.Min, n.Max)
	}
	body, err := c.compileNode(n.Sub, AbortIteration, nil)
	if err != nil {
		return nil, err
	}
	return &repeatStep{min: n.Min, max: n.Max, body: body, mode: mode}, nil
}

// compileAlternation compiles every branch as its own scope: a failure inside
// a branch only rejects that branch.
//
// An empty branch compiles to no steps and always succeeds. The parser
// produces one when it factors a common prefix out of branches such as ab|a.
func (c *Compiler) compileAlternation(n *hir.Alternation, mode FailMode) (Step, error) {
	branches := make([][]Step, 0, len(n.Subs))
	for _, sub := range n.Subs {
		if sub.Kind() == hir.KindEmpty {
			branches = append(branches, []Step{})
			continue
		}
		branch, err := c.compileNode(sub, AbortAttempt, nil)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return &altStep{branches: branches, mode: mode}, nil
}
