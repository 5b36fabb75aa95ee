// Package step compiles a syntax tree into a tree of matching steps and runs
// it against input text.
//
// A compiled Program is the pattern's structure turned into control flow: a
// literal becomes a prefix check, a character class a single-character test,
// a repetition a counted loop around its compiled body, and so on. Matching
// walks the steps over a cursor (the unconsumed remainder of the input)
// without building or interpreting an automaton.
//
// Every step is compiled under a failure mode. Steps at the top level of the
// pattern, and inside groups and alternation branches, abort the current
// attempt when they fail. Steps inside a repetition body only end that
// repetition's loop, after which the repetition checks its count.
//
// Example:
//
//	prog, err := step.Compile(`^https?://[a-z.]+$`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	prog.IsMatch("https://example.com") // true
//	fmt.Print(prog)                     // dump of the compiled steps
package step

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/stepregex/hir"
)

// FailMode is what a step's failure does to the surrounding match.
type FailMode uint8

const (
	// AbortAttempt abandons the match attempt at the current start offset.
	AbortAttempt FailMode = iota

	// AbortIteration ends the innermost enclosing repetition loop.
	AbortIteration
)

// String returns the name of the mode.
func (m FailMode) String() string {
	if m == AbortIteration {
		return "iteration"
	}
	return "attempt"
}

// failure converts the mode into the outcome a failing step reports.
func (m FailMode) failure() outcome {
	if m == AbortIteration {
		return failedIteration
	}
	return failedAttempt
}

// outcome is the result of running a step or a step sequence.
type outcome uint8

const (
	advanced outcome = iota
	failedAttempt
	failedIteration
)

// Step is one compiled unit of matching work.
type Step interface {
	// Mode reports the failure mode the step was compiled under.
	Mode() FailMode

	// exec runs the step greedily. On success it returns the new cursor
	// position and advanced.
	exec(text string, pos int) (int, outcome)

	// backtrack runs the step in continuation-passing style, calling k with
	// every cursor position the step can end at until k returns true.
	backtrack(text string, pos int, k func(int) bool) bool

	dump(b *strings.Builder, depth int)
}

// runSeq runs steps in order from pos, stopping at the first failure.
func runSeq(steps []Step, text string, pos int) (int, outcome) {
	for _, s := range steps {
		next, out := s.exec(text, pos)
		if out != advanced {
			return pos, out
		}
		pos = next
	}
	return pos, advanced
}

// backtrackSeq runs steps in order, backtracking into earlier steps when a
// later one cannot continue.
func backtrackSeq(steps []Step, text string, pos int, k func(int) bool) bool {
	if len(steps) == 0 {
		return k(pos)
	}
	rest := steps[1:]
	return steps[0].backtrack(text, pos, func(next int) bool {
		return backtrackSeq(rest, text, next, k)
	})
}

// literalStep matches a fixed string.
type literalStep struct {
	lit  string
	mode FailMode
}

func (s *literalStep) Mode() FailMode { return s.mode }

func (s *literalStep) exec(text string, pos int) (int, outcome) {
	if strings.HasPrefix(text[pos:], s.lit) {
		return pos + len(s.lit), advanced
	}
	return pos, s.mode.failure()
}

func (s *literalStep) backtrack(text string, pos int, k func(int) bool) bool {
	return strings.HasPrefix(text[pos:], s.lit) && k(pos+len(s.lit))
}

func (s *literalStep) dump(b *strings.Builder, depth int) {
	writeLine(b, depth, "literal "+strconv.Quote(s.lit), s.mode)
}

// classStep matches one character from a set of ranges. ASCII membership is
// precomputed into a bitmap; other characters are tested range by range.
type classStep struct {
	ranges []hir.Range
	ascii  [2]uint64
	mode   FailMode
}

func newClassStep(class *hir.CharClass, mode FailMode) *classStep {
	s := &classStep{ranges: class.Ranges, mode: mode}
	for c := rune(0); c < utf8.RuneSelf; c++ {
		if class.Contains(c) {
			s.ascii[c>>6] |= 1 << (uint(c) & 63)
		}
	}
	return s
}

func (s *classStep) Mode() FailMode { return s.mode }

// next reports the width of the character at pos when it belongs to the class.
func (s *classStep) next(text string, pos int) (int, bool) {
	if pos >= len(text) {
		return 0, false
	}
	if c := text[pos]; c < utf8.RuneSelf {
		return 1, s.ascii[c>>6]&(1<<(uint(c)&63)) != 0
	}
	c, width := utf8.DecodeRuneInString(text[pos:])
	for _, r := range s.ranges {
		if r.Lo <= c && c <= r.Hi {
			return width, true
		}
	}
	return 0, false
}

func (s *classStep) exec(text string, pos int) (int, outcome) {
	if width, ok := s.next(text, pos); ok {
		return pos + width, advanced
	}
	return pos, s.mode.failure()
}

func (s *classStep) backtrack(text string, pos int, k func(int) bool) bool {
	width, ok := s.next(text, pos)
	return ok && k(pos+width)
}

func (s *classStep) dump(b *strings.Builder, depth int) {
	class := hir.CharClass{Ranges: s.ranges}
	writeLine(b, depth, "class "+class.String(), s.mode)
}

// repeatStep runs its body in a loop. The body is compiled with
// AbortIteration so a failed iteration ends the loop instead of the attempt.
type repeatStep struct {
	min  int
	max  int // negative: unbounded
	body []Step
	mode FailMode
}

func (s *repeatStep) Mode() FailMode { return s.mode }

func (s *repeatStep) exec(text string, pos int) (int, outcome) {
	count := 0
	for s.max < 0 || count < s.max {
		next, out := runSeq(s.body, text, pos)
		if out == failedIteration {
			break
		}
		if out != advanced {
			return pos, out
		}
		count++
		if next == pos {
			// The body matched without consuming anything, so every further
			// iteration would do the same: the count saturates.
			count = max(count, s.min)
			break
		}
		pos = next
	}
	if count < s.min {
		return pos, s.mode.failure()
	}
	return pos, advanced
}

func (s *repeatStep) backtrack(text string, pos int, k func(int) bool) bool {
	return s.iterate(text, pos, 0, k)
}

// iterate tries one more iteration first and falls back to stopping here.
func (s *repeatStep) iterate(text string, pos, count int, k func(int) bool) bool {
	if s.max < 0 || count < s.max {
		more := backtrackSeq(s.body, text, pos, func(next int) bool {
			if next == pos && count >= s.min {
				return false
			}
			return s.iterate(text, next, count+1, k)
		})
		if more {
			return true
		}
	}
	return count >= s.min && k(pos)
}

func (s *repeatStep) dump(b *strings.Builder, depth int) {
	bounds := "{" + strconv.Itoa(s.min) + ","
	if s.max >= 0 {
		bounds += strconv.Itoa(s.max)
	}
	bounds += "}"
	writeLine(b, depth, "repeat "+bounds, s.mode)
	for _, child := range s.body {
		child.dump(b, depth+1)
	}
}

// groupStep runs its body as an isolated sub-attempt.
type groupStep struct {
	body []Step
	mode FailMode
}

func (s *groupStep) Mode() FailMode { return s.mode }

func (s *groupStep) exec(text string, pos int) (int, outcome) {
	next, out := runSeq(s.body, text, pos)
	if out == advanced {
		return next, advanced
	}
	return pos, s.mode.failure()
}

func (s *groupStep) backtrack(text string, pos int, k func(int) bool) bool {
	return backtrackSeq(s.body, text, pos, k)
}

func (s *groupStep) dump(b *strings.Builder, depth int) {
	writeLine(b, depth, "group", s.mode)
	for _, child := range s.body {
		child.dump(b, depth+1)
	}
}

// altStep tries each branch from the same cursor, left to right.
type altStep struct {
	branches [][]Step
	mode     FailMode
}

func (s *altStep) Mode() FailMode { return s.mode }

func (s *altStep) exec(text string, pos int) (int, outcome) {
	for _, branch := range s.branches {
		if next, out := runSeq(branch, text, pos); out == advanced {
			return next, advanced
		}
	}
	return pos, s.mode.failure()
}

func (s *altStep) backtrack(text string, pos int, k func(int) bool) bool {
	for _, branch := range s.branches {
		if backtrackSeq(branch, text, pos, k) {
			return true
		}
	}
	return false
}

func (s *altStep) dump(b *strings.Builder, depth int) {
	writeLine(b, depth, "alternation", s.mode)
	for i, branch := range s.branches {
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString("branch ")
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('\n')
		for _, child := range branch {
			child.dump(b, depth+2)
		}
	}
}

func writeLine(b *strings.Builder, depth int, text string, mode FailMode) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(text)
	b.WriteString(" [")
	b.WriteString(mode.String())
	b.WriteString("]\n")
}
