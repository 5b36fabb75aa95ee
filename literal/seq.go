// Package literal extracts the literal prefixes every match of a pattern must
// start with.
//
// The primary use case is the unanchored search loop: instead of attempting a
// match at every offset, the executor jumps to offsets where one of the
// extracted prefixes occurs.
//
// Key concepts:
//   - A Literal is a byte sequence a match begins with
//   - A Seq is a set of alternative literals (e.g., from alternations like /foo|bar/)
//   - An empty Seq means no useful prefix requirement is known
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte sequence every match of some node starts with.
//
// Complete is set when the bytes are everything the node matches, as for
// hello; a node such as hello\d+ yields "hello" with Complete unset. Only
// complete literals are extended by the node that follows them.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// Seq is a set of alternative literals: a match starts with at least one of
// them. A nil Seq behaves as an empty one.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// HasEmpty reports whether any literal in the sequence is the empty string.
// Such a sequence constrains nothing: every offset is a candidate.
func (s *Seq) HasEmpty() bool {
	if s == nil {
		return false
	}
	for _, lit := range s.literals {
		if len(lit.Bytes) == 0 {
			return true
		}
	}
	return false
}

// AllComplete reports whether the sequence is non-empty and every literal in
// it is complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{
			Bytes:    bytes.Clone(lit.Bytes),
			Complete: lit.Complete,
		}
	}
	return &Seq{literals: cloned}
}

// Minimize drops every literal that has a shorter kept literal as a prefix,
// duplicates included. Any offset where a dropped literal occurs is already a
// candidate for the literal that covers it, so the set of candidates found by
// a prefix search does not change.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	// Stable so that equal-length literals keep their pattern order.
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(current.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}

	s.literals = kept
}
