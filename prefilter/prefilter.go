// Package prefilter provides fast candidate filtering for unanchored search
// using extracted prefix literals.
//
// A prefilter finds the next offset at which some prefix literal of the
// pattern occurs. Offsets in between cannot start a match and are skipped
// without running the compiled steps.
//
// The strategy is selected from the extracted literals:
//   - Single byte → memchr (strings.IndexByte)
//   - Single substring → memmem (strings.Index)
//   - Several single bytes → byte set scan
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	node, _ := hir.Parse("(hello|world)")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(node)
//	pf := prefilter.NewBuilder(prefixes).Build()
//	pos := pf.Find("foo hello bar world baz", 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"strconv"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/stepregex/internal/conv"
	"github.com/coregx/stepregex/literal"
)

// Prefilter is used to quickly find candidate start offsets before running
// the compiled steps.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if there is none.
	//
	// A candidate is an offset where one of the prefilter literals occurs.
	// It does NOT guarantee a match: the caller must still run the pattern
	// there.
	Find(haystack string, start int) int

	// IsComplete reports whether the literals are the whole pattern rather
	// than just its prefixes.
	IsComplete() bool

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	HeapBytes() int

	// String names the strategy, for program dumps.
	String() string
}

// Builder constructs the best prefilter for a sequence of prefix literals.
//
// Selection strategy (in order of preference):
//  1. No literals, or an empty literal → nil (no prefilter)
//  2. Single byte literal → memchr
//  3. Single substring literal → memmem
//  4. Only single-byte literals → byte set
//  5. Anything else → Aho-Corasick
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a new prefilter builder from extracted prefix literals.
// prefixes may be nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build constructs the best prefilter for the given literals, or returns nil
// when no prefilter can help.
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}

	complete := seq.AllComplete()
	seq = seq.Clone()
	seq.Minimize()

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], complete)
		}
		return newMemmemPrefilter(lit.Bytes, complete)
	}

	if maxLen(seq) == 1 {
		return newByteSetPrefilter(seq, complete)
	}

	return newAhoCorasickPrefilter(seq, complete)
}

func maxLen(seq *literal.Seq) int {
	n := 0
	for i := 0; i < seq.Len(); i++ {
		n = max(n, seq.Get(i).Len())
	}
	return n
}

// memchrPrefilter searches for a single byte.
//
// Example patterns:
//
//	/a\d+/   → search for 'a'
//	/x.*y/   → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{needle: needle, complete: complete}
}

// Find implements Prefilter.Find using strings.IndexByte.
func (p *memchrPrefilter) Find(haystack string, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := strings.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

func (p *memchrPrefilter) String() string {
	return "memchr(" + strconv.QuoteRune(rune(p.needle)) + ")"
}

// memmemPrefilter searches for a single substring.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/foo|foobar/  → after minimization → search for "foo"
//	/prefix.*/    → search for "prefix"
type memmemPrefilter struct {
	needle   string
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	return &memmemPrefilter{needle: string(needle), complete: complete}
}

// Find implements Prefilter.Find using strings.Index.
func (p *memmemPrefilter) Find(haystack string, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := strings.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

func (p *memmemPrefilter) String() string {
	return "memmem(" + strconv.Quote(p.needle) + ")"
}

// byteSetPrefilter searches for any byte of a small set. It serves patterns
// that must start with one character of a small class, such as [0-9] or
// (a|b|c).
type byteSetPrefilter struct {
	set      [256]bool
	count    int
	complete bool
}

func newByteSetPrefilter(seq *literal.Seq, complete bool) Prefilter {
	p := &byteSetPrefilter{complete: complete}
	for i := 0; i < seq.Len(); i++ {
		b := seq.Get(i).Bytes[0]
		if !p.set[b] {
			p.set[b] = true
			p.count++
		}
	}
	return p
}

// Find implements Prefilter.Find.
func (p *byteSetPrefilter) Find(haystack string, start int) int {
	if start < 0 {
		return -1
	}
	for i := start; i < len(haystack); i++ {
		if p.set[haystack[i]] {
			return i
		}
	}
	return -1
}

// IsComplete implements Prefilter.IsComplete.
func (p *byteSetPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *byteSetPrefilter) HeapBytes() int {
	return len(p.set)
}

func (p *byteSetPrefilter) String() string {
	return "byteset(" + strconv.Itoa(p.count) + " bytes)"
}

// ahoCorasickPrefilter searches for any of several literals with an
// Aho-Corasick automaton.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	count    int
	size     int
	complete bool
}

// newAhoCorasickPrefilter returns nil if the automaton cannot be built.
func newAhoCorasickPrefilter(seq *literal.Seq, complete bool) Prefilter {
	builder := ahocorasick.NewBuilder()
	size := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		size += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto, count: seq.Len(), size: size, complete: complete}
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack string, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(conv.Bytes(haystack), start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// HeapBytes implements Prefilter.HeapBytes.
// The automaton does not report its size; the pattern bytes are a lower bound.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.size
}

func (p *ahoCorasickPrefilter) String() string {
	return "aho-corasick(" + strconv.Itoa(p.count) + " literals)"
}
