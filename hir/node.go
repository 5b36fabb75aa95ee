// Package hir defines the syntax tree consumed by the step compiler.
//
// The tree is a small tagged variant over the constructs the compiler knows
// how to lower: literals, character classes, anchors, repetitions,
// concatenations, alternations and groups. It is produced from the output of
// Go's regexp/syntax parser (see Parse and FromSyntax) or built by hand, and is
// never mutated after construction.
//
// Example:
//
//	node, err := hir.Parse(`^(ab|cd)+$`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	anchors, body, err := hir.Classify(node)
//	// anchors = {Start: true, End: true}, body = [Repetition{1,-1,Group(...)}]
package hir

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindEmpty matches the empty string.
	KindEmpty Kind = iota
	// KindLiteral matches a fixed UTF-8 byte sequence.
	KindLiteral
	// KindCharClass matches a single character from a set of ranges.
	KindCharClass
	// KindAnchor is a zero-width assertion.
	KindAnchor
	// KindRepetition repeats a sub-node between Min and Max times.
	KindRepetition
	// KindConcat matches its sub-nodes in sequence.
	KindConcat
	// KindAlternation matches one of its sub-nodes.
	KindAlternation
	// KindGroup is a parenthesized sub-pattern.
	KindGroup
)

var kindNames = [...]string{
	KindEmpty:       "Empty",
	KindLiteral:     "Literal",
	KindCharClass:   "CharClass",
	KindAnchor:      "Anchor",
	KindRepetition:  "Repetition",
	KindConcat:      "Concat",
	KindAlternation: "Alternation",
	KindGroup:       "Group",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a syntax tree node.
type Node interface {
	// Kind reports the variant of the node.
	Kind() Kind

	// String returns a compact, regex-like rendering used in diagnostics.
	String() string
}

// Look is the kind of a zero-width assertion.
type Look uint8

const (
	// LookStart asserts the beginning of the input (^ or \A).
	LookStart Look = iota
	// LookEnd asserts the end of the input ($ or \z).
	LookEnd
	// LookStartLine asserts the beginning of a line ((?m)^).
	LookStartLine
	// LookEndLine asserts the end of a line ((?m)$).
	LookEndLine
	// LookWordBoundary asserts an ASCII word boundary (\b).
	LookWordBoundary
	// LookNoWordBoundary asserts the absence of a word boundary (\B).
	LookNoWordBoundary
)

var lookNames = [...]string{
	LookStart:          "Start",
	LookEnd:            "End",
	LookStartLine:      "StartLine",
	LookEndLine:        "EndLine",
	LookWordBoundary:   "WordBoundary",
	LookNoWordBoundary: "NoWordBoundary",
}

// String returns the name of the look.
func (l Look) String() string {
	if int(l) < len(lookNames) {
		return lookNames[l]
	}
	return "Look(" + strconv.Itoa(int(l)) + ")"
}

// Empty matches the empty string.
type Empty struct{}

// Kind implements Node.
func (Empty) Kind() Kind { return KindEmpty }

func (Empty) String() string { return "(?:)" }

// Literal matches an exact byte sequence.
// Bytes is expected to hold valid UTF-8; the compiler rejects anything else.
// FoldCase records a case-insensitive literal from the source pattern.
type Literal struct {
	Bytes    []byte
	FoldCase bool
}

// NewLiteral returns a Literal holding the UTF-8 encoding of s.
func NewLiteral(s string) *Literal {
	return &Literal{Bytes: []byte(s)}
}

// Kind implements Node.
func (*Literal) Kind() Kind { return KindLiteral }

func (n *Literal) String() string {
	if !utf8.Valid(n.Bytes) {
		return strconv.Quote(string(n.Bytes))
	}
	if n.FoldCase {
		return "(?i:" + quoteLiteral(string(n.Bytes)) + ")"
	}
	return quoteLiteral(string(n.Bytes))
}

// Range is an inclusive range of code points.
type Range struct {
	Lo, Hi rune
}

// Contains reports whether r falls inside the range.
func (r Range) Contains(c rune) bool {
	return r.Lo <= c && c <= r.Hi
}

// CharClass matches one character belonging to any of its ranges.
// Ranges are kept in the order given; the parser hands them over sorted and
// merged. A class with no ranges never matches.
type CharClass struct {
	Ranges []Range
}

// Kind implements Node.
func (*CharClass) Kind() Kind { return KindCharClass }

// Contains reports whether c belongs to the class.
func (n *CharClass) Contains(c rune) bool {
	for _, r := range n.Ranges {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Size returns the number of code points in the class.
func (n *CharClass) Size() int {
	size := 0
	for _, r := range n.Ranges {
		size += int(r.Hi-r.Lo) + 1
	}
	return size
}

func (n *CharClass) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range n.Ranges {
		writeClassRune(&b, r.Lo)
		if r.Hi != r.Lo {
			b.WriteByte('-')
			writeClassRune(&b, r.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Anchor is a zero-width assertion.
type Anchor struct {
	Look Look
}

// Kind implements Node.
func (*Anchor) Kind() Kind { return KindAnchor }

func (n *Anchor) String() string {
	switch n.Look {
	case LookStart:
		return `\A`
	case LookEnd:
		return `\z`
	case LookStartLine:
		return `(?m:^)`
	case LookEndLine:
		return `(?m:$)`
	case LookWordBoundary:
		return `\b`
	case LookNoWordBoundary:
		return `\B`
	}
	return n.Look.String()
}

// Repetition matches Sub at least Min and at most Max times.
// A negative Max means there is no upper bound.
type Repetition struct {
	Min int
	Max int
	Sub Node
}

// Kind implements Node.
func (*Repetition) Kind() Kind { return KindRepetition }

// Unbounded reports whether the repetition has no upper bound.
func (n *Repetition) Unbounded() bool {
	return n.Max < 0
}

func (n *Repetition) String() string {
	sub := n.Sub.String()
	if needsParens(n.Sub) {
		sub = "(?:" + sub + ")"
	}
	switch {
	case n.Min == 0 && n.Max < 0:
		return sub + "*"
	case n.Min == 1 && n.Max < 0:
		return sub + "+"
	case n.Min == 0 && n.Max == 1:
		return sub + "?"
	case n.Max < 0:
		return sub + "{" + strconv.Itoa(n.Min) + ",}"
	case n.Min == n.Max:
		return sub + "{" + strconv.Itoa(n.Min) + "}"
	}
	return sub + "{" + strconv.Itoa(n.Min) + "," + strconv.Itoa(n.Max) + "}"
}

// Concat matches each of Subs in order.
type Concat struct {
	Subs []Node
}

// Kind implements Node.
func (*Concat) Kind() Kind { return KindConcat }

func (n *Concat) String() string {
	var b strings.Builder
	for _, sub := range n.Subs {
		b.WriteString(sub.String())
	}
	return b.String()
}

// Alternation matches any one of Subs.
type Alternation struct {
	Subs []Node
}

// Kind implements Node.
func (*Alternation) Kind() Kind { return KindAlternation }

func (n *Alternation) String() string {
	parts := make([]string, len(n.Subs))
	for i, sub := range n.Subs {
		parts[i] = sub.String()
	}
	return "(?:" + strings.Join(parts, "|") + ")"
}

// Group is a parenthesized sub-pattern. Index and Name mirror the capture
// numbering of the source pattern; no submatch is ever recorded.
type Group struct {
	Index int
	Name  string
	Sub   Node
}

// Kind implements Node.
func (*Group) Kind() Kind { return KindGroup }

func (n *Group) String() string {
	if n.Name != "" {
		return "(?P<" + n.Name + ">" + n.Sub.String() + ")"
	}
	return "(" + n.Sub.String() + ")"
}

const metaChars = `\.+*?()|[]{}^$`

func quoteLiteral(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c < utf8.RuneSelf && strings.IndexByte(metaChars, byte(c)) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

func writeClassRune(b *strings.Builder, c rune) {
	switch {
	case c == '\\' || c == ']' || c == '[' || c == '-' || c == '^':
		b.WriteByte('\\')
		b.WriteRune(c)
	case c < ' ' || c == 0x7f || c > utf8.MaxRune:
		b.WriteString(`\x{` + strconv.FormatInt(int64(c), 16) + `}`)
	default:
		b.WriteRune(c)
	}
}

func needsParens(n Node) bool {
	switch n := n.(type) {
	case *Concat, *Repetition:
		return true
	case *Literal:
		return utf8.RuneCount(n.Bytes) > 1 && !n.FoldCase
	}
	return false
}
