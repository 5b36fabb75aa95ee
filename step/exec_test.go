package step

import (
	"regexp"
	"strings"
	"sync"
	"testing"
)

func mustCompile(t testing.TB, pattern string, config Config) *Program {
	t.Helper()
	prog, err := CompileWithConfig(pattern, config)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return prog
}

func backtracking() Config {
	config := DefaultConfig()
	config.Semantics = Backtracking
	return config
}

// TestIsMatch covers the documented behavior of the greedy matcher.
func TestIsMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		// anchors
		{"^abc$", "abc", true},
		{"^abc$", "abcd", false},
		{"^abc$", "ab", false},
		{"^abc", "abcd", true},
		{"^abc", "xabc", false},
		{"abc$", "xxabc", true},
		{"abc$", "abcx", false},
		{"^$", "", true},
		{"^$", "x", false},

		// unanchored search
		{"abc", "abcd", true},
		{"abc", "ab", false},
		{"abc", "xxabc", true},
		{"", "", true},
		{"", "anything", true},

		// repetition
		{"a*", "", true},
		{"a+", "", false},
		{"a{2,4}", "a", false},
		{"a{2,4}", "aaa", true},
		{"a{3}", "aa", false},
		{"a{3}", "baaab", true},
		{"a?", "", true},
		{"^a+b$", "aaab", true},
		{"^(?:ab)*$", "ababab", true},
		{"^(?:ab)*$", "ababa", false},

		// classes
		{"[abc]", "d", false},
		{"[abc]", "xxc", true},
		{`\d+`, "abc", false},
		{`\d+`, "123abc", true},
		{`\w+`, "!!", false},
		{`\w+`, "!x!", true},
		{`\s+`, "nospace", false},
		{`\s+`, "a b", true},
		{"a.c", "abc", true},
		{"a.c", "a\nc", false},
		{"[^a]b", "ab", false},
		{"[^a]b", "ab cb", true},

		// groups and alternation
		{"(a)(b)", "ab", true},
		{"(a)(b)", "ba", false},
		{"ab|cd", "xcd", true},
		{"ab|cd", "ac", false},
		{"^(ab|cd)+$", "abcdab", true},
		{"(ab|cd)+$", "xabcd", true},
		{"ab|a", "ac", true},

		// multi-byte text
		{"ひらがな|カタカナ", "漢字", false},
		{"ひらがな|カタカナ", "漢字カタカナ", true},
		{"^.$", "漢", true},
		{"^..$", "漢", false},
		{"字$", "漢字", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			prog := mustCompile(t, tt.pattern, DefaultConfig())
			if got := prog.IsMatch(tt.input); got != tt.want {
				t.Errorf("IsMatch(%q) = %v, want %v\n%s", tt.input, got, tt.want, prog)
			}
			if got := prog.Match([]byte(tt.input)); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestGreedyRepetition documents where the greedy matcher and ordinary
// regular expression semantics disagree.
func TestGreedyRepetition(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		greedy  bool
	}{
		{"a*a", "aaa", false},
		{"(a|ab)c", "abc", false},
		{`\d+5`, "12345", false},
		{"^a{1,3}ab$", "aaab", false},

		// Failed iterations give back what they consumed.
		{"(ab)*ac", "abac", true},
		{`(?:a\d)*ax`, "a1ax", true},
		// A nested count failure only ends the outer iteration.
		{"(?:b{2,}c)*bd", "bbcbd", true},
		// Iterations that consume nothing end the loop.
		{"(?:a*)*b", "b", true},
		{"^(?:a?){3}b$", "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			greedy := mustCompile(t, tt.pattern, DefaultConfig())
			if got := greedy.IsMatch(tt.input); got != tt.greedy {
				t.Errorf("greedy IsMatch(%q) = %v, want %v\n%s", tt.input, got, tt.greedy, greedy)
			}

			want := regexp.MustCompile(tt.pattern).MatchString(tt.input)
			bt := mustCompile(t, tt.pattern, backtracking())
			if got := bt.IsMatch(tt.input); got != want {
				t.Errorf("backtracking IsMatch(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

var oraclePatterns = []string{
	"abc",
	"^abc$",
	"a*a",
	"(a|ab)c",
	`\d+5`,
	"a{2,4}",
	"[abc]",
	`\d+`,
	"ab|cd",
	"ab|a",
	"(ab)+c",
	"^a.*b$",
	"x(a|b)*y",
	"(a|b|cd)*d$",
	"a+$",
	"^(?:ab)*$",
	"[^a]b",
	"ひらがな|カタカナ",
	"(?:a?){3}b",
	"(?:a*)*b",
	"(foo|foobar)x",
	`(?:b{2,}c)*bd`,
	`\w+@\w+\.com`,
	"a{3}",
	"(?:a|b)+?b",
}

var oracleInputs = []string{
	"", "a", "aa", "aaa", "b", "ab", "abc", "abcd", "abab", "aab", "xaby",
	"xy", "12345", "cdd", "acd", "foobarx", "fooxy", "ひらがな", "漢字カタカナ",
	"bbcbd", "me@example.com", "a\nb", "aaab",
}

// TestBacktrackingMatchesRegexp compares backtracking semantics with the
// standard library on every pattern and input.
func TestBacktrackingMatchesRegexp(t *testing.T) {
	for _, pattern := range oraclePatterns {
		re := regexp.MustCompile(pattern)
		prog := mustCompile(t, pattern, backtracking())
		for _, input := range oracleInputs {
			want := re.MatchString(input)
			if got := prog.IsMatch(input); got != want {
				t.Errorf("IsMatch(%q, %q) = %v, regexp says %v", pattern, input, got, want)
			}
		}
	}
}

// TestGreedyIsSound checks that every greedy match is a real match.
func TestGreedyIsSound(t *testing.T) {
	for _, pattern := range oraclePatterns {
		re := regexp.MustCompile(pattern)
		prog := mustCompile(t, pattern, DefaultConfig())
		for _, input := range oracleInputs {
			if prog.IsMatch(input) && !re.MatchString(input) {
				t.Errorf("IsMatch(%q, %q) = true, regexp says false", pattern, input)
			}
		}
	}
}

// TestPrefilterEquivalence checks that the prefilter never changes a result.
func TestPrefilterEquivalence(t *testing.T) {
	inputs := append([]string{
		strings.Repeat("x", 300) + "foobarx",
		strings.Repeat("ab", 200),
		strings.Repeat("a", 500) + "b",
	}, oracleInputs...)

	for _, semantics := range []Semantics{Greedy, Backtracking} {
		with := DefaultConfig()
		with.Semantics = semantics
		without := with
		without.EnablePrefilter = false

		for _, pattern := range oraclePatterns {
			pf := mustCompile(t, pattern, with)
			plain := mustCompile(t, pattern, without)
			if plain.Prefilter() != nil {
				t.Fatalf("%q: prefilter built while disabled", pattern)
			}
			for _, input := range inputs {
				if a, b := pf.IsMatch(input), plain.IsMatch(input); a != b {
					t.Errorf("%s %q on %q: prefilter %v, plain %v", semantics, pattern, input, a, b)
				}
			}
		}
	}
}

// TestIdempotentCompile checks that compiling the same pattern twice gives
// programs that agree on every input.
func TestIdempotentCompile(t *testing.T) {
	for _, pattern := range oraclePatterns {
		a := mustCompile(t, pattern, DefaultConfig())
		b := mustCompile(t, pattern, DefaultConfig())
		if a.String() != b.String() {
			t.Errorf("%q: dumps differ:\n%s\n%s", pattern, a, b)
		}
		for _, input := range oracleInputs {
			if a.IsMatch(input) != b.IsMatch(input) {
				t.Errorf("%q on %q: results differ", pattern, input)
			}
		}
	}
}

// TestUnanchoredProperty checks IsMatch against a direct evaluation of every
// start offset, including the end of the input.
func TestUnanchoredProperty(t *testing.T) {
	for _, pattern := range []string{"a*", "ab", `\d+`, "(a|b)c", "x?"} {
		prog := mustCompile(t, pattern, DefaultConfig())
		for _, input := range oracleInputs {
			want := false
			for pos := 0; pos <= len(input); pos++ {
				if prog.matchAt(input, pos) {
					want = true
					break
				}
			}
			if got := prog.IsMatch(input); got != want {
				t.Errorf("IsMatch(%q, %q) = %v, want %v", pattern, input, got, want)
			}
		}
	}
}

// TestConcurrentIsMatch runs one program from many goroutines.
func TestConcurrentIsMatch(t *testing.T) {
	prog := mustCompile(t, `(foo|bar)\d+`, DefaultConfig())
	inputs := map[string]bool{
		"xxfoo123": true,
		"bar":      false,
		"bar9":     true,
		"baz9":     false,
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				for input, want := range inputs {
					if got := prog.IsMatch(input); got != want {
						t.Errorf("IsMatch(%q) = %v, want %v", input, got, want)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestIsMatchStats(t *testing.T) {
	prog := mustCompile(t, `a[0-9_]`, DefaultConfig())
	if prog.Prefilter() == nil {
		t.Fatalf("no prefilter:\n%s", prog)
	}

	matched, st := prog.IsMatchStats(strings.Repeat("x", 50) + "a1")
	if !matched || st != (SearchStats{Candidates: 1, Skipped: 50}) {
		t.Errorf("sparse text: IsMatchStats() = %v, %+v", matched, st)
	}

	// Every offset is a candidate: the prefilter is dropped at the end of
	// its warmup and the search goes on without it.
	matched, st = prog.IsMatchStats(strings.Repeat("a", 1000) + "1")
	if !matched {
		t.Error("dense text: no match")
	}
	if !st.Abandoned || st.Candidates != 128 || st.Skipped != 0 {
		t.Errorf("dense text: IsMatchStats() = %+v", st)
	}

	for _, pattern := range []string{`^a\d`, `a\d$`} {
		p := mustCompile(t, pattern, DefaultConfig())
		if _, st := p.IsMatchStats("xxa1"); st != (SearchStats{}) {
			t.Errorf("%q: anchored search reported prefilter stats %+v", pattern, st)
		}
	}
}

func BenchmarkIsMatch(b *testing.B) {
	patterns := []struct {
		name    string
		pattern string
	}{
		{"alternation", `(foo|bar)\d+`},
		{"literal", `needle\w`},
		{"class", `\d{3}-\d{4}`},
	}

	// The match sits at the very end, so every search scans the whole text.
	haystack := strings.Repeat("the quick brown fox jumps over the lazy dog ", 1500) + "foo42 needlex 555-0100"

	for _, p := range patterns {
		for _, semantics := range []Semantics{Greedy, Backtracking} {
			for _, pf := range []bool{true, false} {
				config := DefaultConfig()
				config.Semantics = semantics
				config.EnablePrefilter = pf
				prog := mustCompile(b, p.pattern, config)

				name := p.name + "/" + semantics.String() + "/prefilter"
				if !pf {
					name = p.name + "/" + semantics.String() + "/plain"
				}
				b.Run(name, func(b *testing.B) {
					b.SetBytes(int64(len(haystack)))
					b.ReportAllocs()
					b.ResetTimer()
					for i := 0; i < b.N; i++ {
						if !prog.IsMatch(haystack) {
							b.Fatal("no match")
						}
					}
				})
			}
		}
	}

	std := regexp.MustCompile(patterns[0].pattern)
	b.Run("alternation/stdlib", func(b *testing.B) {
		b.SetBytes(int64(len(haystack)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			std.MatchString(haystack)
		}
	})
}
