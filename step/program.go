package step

import (
	"strconv"
	"strings"

	"github.com/coregx/stepregex/hir"
	"github.com/coregx/stepregex/prefilter"
)

// Program is a compiled pattern: the top-level anchors plus the sequence of
// steps for the rest of the pattern.
//
// A Program is immutable after compilation and safe for concurrent use.
type Program struct {
	pattern   string
	steps     []Step
	anchors   hir.Anchors
	semantics Semantics
	prefilter prefilter.Prefilter
}

// Pattern returns the source pattern, or a rendering of the tree for
// programs compiled with CompileNode.
func (p *Program) Pattern() string {
	return p.pattern
}

// Anchors reports which ends of the input the program is pinned to.
func (p *Program) Anchors() hir.Anchors {
	return p.anchors
}

// Semantics reports the repetition semantics the program was compiled with.
func (p *Program) Semantics() Semantics {
	return p.semantics
}

// Steps returns the top-level steps. The slice must not be modified.
func (p *Program) Steps() []Step {
	return p.steps
}

// Len returns the number of top-level steps.
func (p *Program) Len() int {
	return len(p.steps)
}

// Prefilter returns the prefilter used for unanchored search, or nil.
func (p *Program) Prefilter() prefilter.Prefilter {
	return p.prefilter
}

// String returns a readable dump of the program. A prefilter line also shows
// whether its literals cover whole matches and how much heap it holds.
//
// Example output for ^a+b$:
//
//	pattern: "^a+b$"
//	anchors: start,end
//	semantics: greedy
//	prefilter: none
//	steps:
//	  repeat {1,} [attempt]
//	    literal "a" [iteration]
//	  literal "b" [attempt]
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("pattern: ")
	b.WriteString(strconv.Quote(p.pattern))
	b.WriteString("\nanchors: ")
	b.WriteString(p.anchors.String())
	b.WriteString("\nsemantics: ")
	b.WriteString(p.semantics.String())
	b.WriteString("\nprefilter: ")
	if pf := p.prefilter; pf != nil {
		b.WriteString(pf.String())
		b.WriteString(" complete=")
		b.WriteString(strconv.FormatBool(pf.IsComplete()))
		b.WriteString(" heap=")
		b.WriteString(strconv.Itoa(pf.HeapBytes()))
	} else {
		b.WriteString("none")
	}
	b.WriteString("\nsteps:\n")
	for _, s := range p.steps {
		s.dump(&b, 1)
	}
	return b.String()
}
