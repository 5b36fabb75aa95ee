package stepregex

import (
	"github.com/hashicorp/go-multierror"
)

// Set is a list of compiled patterns matched together.
type Set struct {
	regexes []*Regex
}

// CompileSet compiles every pattern with config.
//
// All patterns are compiled even after a failure; the returned error is a
// *multierror.Error listing one *CompileError per bad pattern, and the Set is
// nil in that case.
func CompileSet(patterns []string, config Config) (*Set, error) {
	var result *multierror.Error
	set := &Set{regexes: make([]*Regex, 0, len(patterns))}

	for _, p := range patterns {
		re, err := CompileWithConfig(p, config)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		set.regexes = append(set.regexes, re)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return set, nil
}

// IsMatch reports whether any pattern of the set matches text.
func (s *Set) IsMatch(text string) bool {
	for _, re := range s.regexes {
		if re.IsMatch(text) {
			return true
		}
	}
	return false
}

// Matches returns the indexes of the patterns that match text, in pattern
// order. It returns nil when nothing matches.
func (s *Set) Matches(text string) []int {
	var out []int
	for i, re := range s.regexes {
		if re.IsMatch(text) {
			out = append(out, i)
		}
	}
	return out
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	return len(s.regexes)
}

// Regex returns the i-th compiled pattern.
func (s *Set) Regex(i int) *Regex {
	return s.regexes[i]
}

// Patterns returns the source text of every pattern.
func (s *Set) Patterns() []string {
	out := make([]string, len(s.regexes))
	for i, re := range s.regexes {
		out[i] = re.pattern
	}
	return out
}
