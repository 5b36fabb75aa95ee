package literal

import (
	"unicode/utf8"

	"github.com/coregx/stepregex/hir"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: keeps literals short enough to search for cheaply
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in a sequence. A node that
	// would need more yields no literals at all. Default: 64.
	MaxLiterals int

	// MaxLiteralLen truncates literals; a truncated literal is incomplete.
	// Default: 32.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// [abc] is expanded to ["a", "b", "c"]; [a-z] is not with the default.
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 32,
		MaxClassSize:  10,
	}
}

// maxDepth bounds recursion on hand-built trees.
const maxDepth = 100

// Extractor extracts prefix literals from syntax trees.
//
// The result is sound: every text matched by the tree starts with one of the
// returned literals. When no such finite set is known the Seq is empty.
//
// Example:
//
//	node, _ := hir.Parse("(hello|world)!")
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(node)
//	// prefixes = ["hello!", "world!"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
// Non-positive limits are replaced by their defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	if config.MaxClassSize <= 0 {
		config.MaxClassSize = def.MaxClassSize
	}
	return &Extractor{config: config}
}

// ExtractPrefixes returns the literals every match of the concatenation of
// nodes must start with.
//
// Handles these node kinds:
//   - Literal: the literal itself (case-insensitive literals give nothing)
//   - CharClass: one literal per character when the class is small enough
//   - Concat: cross product of consecutive complete prefixes
//   - Alternation: union of the branches, or nothing if any branch gives nothing
//   - Group: the sub-node
//   - Repetition: the sub-node's prefixes when Min > 0, else the empty literal
//   - Empty: the empty literal
//
// Examples:
//
//	"hello"        → ["hello"]
//	"(foo|bar)"    → ["foo", "bar"]
//	"[ab]c"        → ["ac", "bc"]
//	"hello.*world" → ["hello"]
//	".*foo"        → [] (no prefix requirement)
func (e *Extractor) ExtractPrefixes(nodes ...hir.Node) *Seq {
	seq := e.concat(nodes, 0)
	if seq == nil {
		return NewSeq()
	}
	return NewSeq(seq...)
}

// prefixes returns the prefix literals of node, or nil when unknown.
func (e *Extractor) prefixes(node hir.Node, depth int) []Literal {
	if depth > maxDepth {
		return nil
	}

	switch n := node.(type) {
	case *hir.Literal:
		if n.FoldCase {
			return nil
		}
		return []Literal{e.truncate(Literal{Bytes: n.Bytes, Complete: true})}

	case *hir.CharClass:
		return e.expandClass(n)

	case *hir.Concat:
		return e.concat(n.Subs, depth+1)

	case *hir.Alternation:
		var all []Literal
		for _, sub := range n.Subs {
			lits := e.prefixes(sub, depth+1)
			if lits == nil {
				return nil
			}
			all = append(all, lits...)
			if len(all) > e.config.MaxLiterals {
				return nil
			}
		}
		return all

	case *hir.Group:
		return e.prefixes(n.Sub, depth+1)

	case *hir.Repetition:
		if n.Min == 0 {
			return []Literal{{Bytes: []byte{}, Complete: false}}
		}
		lits := e.prefixes(n.Sub, depth+1)
		if lits == nil {
			return nil
		}
		if n.Min == 1 && n.Max == 1 {
			return lits
		}
		return markIncomplete(lits)
	}

	if node.Kind() == hir.KindEmpty {
		return []Literal{{Bytes: []byte{}, Complete: true}}
	}
	return nil
}

// concat extends complete literals with the prefixes of each following node
// until one of them is incomplete or a limit is reached.
func (e *Extractor) concat(nodes []hir.Node, depth int) []Literal {
	acc := []Literal{{Bytes: []byte{}, Complete: true}}
	for i, node := range nodes {
		next := e.prefixes(node, depth+1)
		if next == nil {
			if i == 0 {
				return nil
			}
			return markIncomplete(acc)
		}
		crossed, ok := e.cross(acc, next)
		if !ok {
			return markIncomplete(acc)
		}
		acc = crossed
		if !anyComplete(acc) {
			break
		}
	}
	return acc
}

// cross appends every literal of next to every complete literal of acc.
// It reports false when the product would exceed MaxLiterals.
func (e *Extractor) cross(acc, next []Literal) ([]Literal, bool) {
	size := 0
	for _, a := range acc {
		if a.Complete {
			size += len(next)
		} else {
			size++
		}
	}
	if size > e.config.MaxLiterals {
		return nil, false
	}

	out := make([]Literal, 0, size)
	for _, a := range acc {
		if !a.Complete {
			out = append(out, a)
			continue
		}
		for _, b := range next {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(joined, a.Bytes...)
			joined = append(joined, b.Bytes...)
			out = append(out, e.truncate(Literal{Bytes: joined, Complete: b.Complete}))
		}
	}
	return out, true
}

// expandClass expands a small character class into one literal per character.
func (e *Extractor) expandClass(class *hir.CharClass) []Literal {
	size := class.Size()
	if size == 0 || size > e.config.MaxClassSize || size > e.config.MaxLiterals {
		return nil
	}

	lits := make([]Literal, 0, size)
	var buf [utf8.UTFMax]byte
	for _, r := range class.Ranges {
		for c := r.Lo; c <= r.Hi; c++ {
			n := utf8.EncodeRune(buf[:], c)
			lits = append(lits, e.truncate(Literal{Bytes: append([]byte(nil), buf[:n]...), Complete: true}))
		}
	}
	return lits
}

func (e *Extractor) truncate(lit Literal) Literal {
	if len(lit.Bytes) > e.config.MaxLiteralLen {
		return Literal{Bytes: lit.Bytes[:e.config.MaxLiteralLen], Complete: false}
	}
	return lit
}

func markIncomplete(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	for i, lit := range lits {
		out[i] = Literal{Bytes: lit.Bytes, Complete: false}
	}
	return out
}

func anyComplete(lits []Literal) bool {
	for _, lit := range lits {
		if lit.Complete {
			return true
		}
	}
	return false
}
