// Package stepregex compiles regular expressions into trees of matching steps.
//
// A pattern is parsed once with Go's regexp/syntax, translated into a small
// syntax tree (package hir) and lowered into a sequence of steps (package
// step). Matching walks those steps over the input; there is no NFA or DFA
// interpreted at match time.
//
// Basic usage:
//
//	re, err := stepregex.Compile(`^\d{3}-\d{4}$`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.IsMatch("555-0100") // true
//
// Repetitions are greedy and do not backtrack by default, so a pattern such as
// a*a never matches. Select backtracking semantics to get the answers of an
// ordinary regular expression engine:
//
//	config := stepregex.DefaultConfig()
//	config.Semantics = step.Backtracking
//	re, err := stepregex.CompileWithConfig(`a*a`, config)
//
// Limitations:
//   - No capture extraction; groups only scope failures
//   - No case-insensitive or multiline flags
//   - ^ and $ only at the very start and end of the pattern
package stepregex

import (
	"sync/atomic"

	"github.com/coregx/stepregex/internal/conv"
	"github.com/coregx/stepregex/step"
	"golang.org/x/sys/cpu"
)

// Config controls compilation. See step.Config.
type Config = step.Config

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := stepregex.MustCompile(`hello`)
//	if re.IsMatch("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	prog    *step.Program
	pattern string
	stats   *counters
}

// counters keeps the per-search counters on separate cache lines so
// concurrent searches do not contend on one line. The prefilter counters are
// only touched by prefiltered searches and share a line.
type counters struct {
	searches   atomic.Uint64
	_          cpu.CacheLinePad
	matches    atomic.Uint64
	_          cpu.CacheLinePad
	candidates atomic.Uint64
	skipped    atomic.Uint64
	abandoned  atomic.Uint64
	_          cpu.CacheLinePad
}

// Stats holds search statistics of a Regex.
type Stats struct {
	// Searches counts IsMatch, Match and MatchString calls.
	Searches uint64

	// Matches counts searches that found a match.
	Matches uint64

	// PrefilterCandidates counts offsets proposed by the literal prefilter.
	PrefilterCandidates uint64

	// PrefilterSkipped counts input bytes the prefilter let searches skip.
	PrefilterSkipped uint64

	// PrefilterAbandoned counts searches that switched the prefilter off
	// because its candidates were too dense.
	PrefilterAbandoned uint64
}

// Compile compiles a regular expression pattern with the default
// configuration.
//
// Syntax is Perl-compatible (same as Go's stdlib regexp), restricted to the
// constructs the step compiler lowers. Errors are *CompileError values; use
// errors.Is with the Err* variables of this package to classify them.
//
// Example:
//
//	re, err := stepregex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var emailRegex = stepregex.MustCompile(`[a-z]+@[a-z]+\.[a-z]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("stepregex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := stepregex.DefaultConfig()
//	config.EnablePrefilter = false
//	re, err := stepregex.CompileWithConfig(`(foo|bar)\d+`, config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	prog, err := step.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		prog:    prog,
		pattern: pattern,
		stats:   &counters{},
	}, nil
}

// DefaultConfig returns the default configuration for compilation: greedy
// semantics with the literal prefilter enabled.
func DefaultConfig() Config {
	return step.DefaultConfig()
}

// QuoteMeta returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression matching
// the literal text.
//
// Example:
//
//	escaped := stepregex.QuoteMeta("hello.world")
//	// escaped = "hello\\.world"
//	re := stepregex.MustCompile(escaped)
//	re.IsMatch("hello.world") // true
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// IsMatch reports whether text contains a match of the pattern.
//
// Example:
//
//	re := stepregex.MustCompile(`^abc$`)
//	re.IsMatch("abc")  // true
//	re.IsMatch("abcd") // false
func (r *Regex) IsMatch(text string) bool {
	matched, ss := r.prog.IsMatchStats(text)
	r.stats.searches.Add(1)
	if matched {
		r.stats.matches.Add(1)
	}
	if ss.Candidates > 0 {
		r.stats.candidates.Add(ss.Candidates)
		r.stats.skipped.Add(ss.Skipped)
	}
	if ss.Abandoned {
		r.stats.abandoned.Add(1)
	}
	return matched
}

// Match reports whether the byte slice b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.IsMatch(conv.String(b))
}

// MatchString reports whether the string s contains any match of the pattern.
// It is the same as IsMatch.
func (r *Regex) MatchString(s string) bool {
	return r.IsMatch(s)
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Program returns the compiled step program. Its String method dumps the
// steps together with their failure modes.
func (r *Regex) Program() *step.Program {
	return r.prog
}

// Stats returns a snapshot of the search statistics.
func (r *Regex) Stats() Stats {
	return Stats{
		Searches:            r.stats.searches.Load(),
		Matches:             r.stats.matches.Load(),
		PrefilterCandidates: r.stats.candidates.Load(),
		PrefilterSkipped:    r.stats.skipped.Load(),
		PrefilterAbandoned:  r.stats.abandoned.Load(),
	}
}

// ResetStats zeroes the search statistics.
func (r *Regex) ResetStats() {
	r.stats.searches.Store(0)
	r.stats.matches.Store(0)
	r.stats.candidates.Store(0)
	r.stats.skipped.Store(0)
	r.stats.abandoned.Store(0)
}
