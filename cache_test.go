package stepregex

import (
	"errors"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
)

func TestCacheGet(t *testing.T) {
	c := NewCache(DefaultConfig())

	a, err := c.Get(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Get(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Get returned different Regex values for the same pattern")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	if _, err := c.Get("a$b"); !errors.Is(err, ErrUnsupportedAnchorPosition) {
		t.Errorf("Get(a$b) error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("failed compile was cached, Len() = %d", c.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache(DefaultConfig())
	patterns := []string{"a+", "b+", `\w+`, "^x$"}

	var wg sync.WaitGroup
	results := make([][]*Regex, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, p := range patterns {
				re, err := c.Get(p)
				if err != nil {
					t.Error(err)
					return
				}
				results[i] = append(results[i], re)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != len(patterns) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(patterns))
	}
	for i := 1; i < len(results); i++ {
		for j := range patterns {
			if results[i][j] != results[0][j] {
				t.Errorf("goroutine %d got a different Regex for %q", i, patterns[j])
			}
		}
	}
}

func TestCached(t *testing.T) {
	a, err := Cached("cached-pattern")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Cached("cached-pattern")
	if a != b {
		t.Error("Cached returned different values")
	}
}

func TestCompileSet(t *testing.T) {
	set, err := CompileSet([]string{`^\d+$`, "foo", "bar$"}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len() = %d", set.Len())
	}

	tests := []struct {
		input string
		want  []int
	}{
		{"123", []int{0}},
		{"foobar", []int{1, 2}},
		{"xyz", nil},
	}
	for _, tt := range tests {
		got := set.Matches(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		}
		if set.IsMatch(tt.input) != (len(tt.want) > 0) {
			t.Errorf("IsMatch(%q) disagrees with Matches", tt.input)
		}
	}

	if p := set.Patterns(); p[2] != "bar$" {
		t.Errorf("Patterns() = %v", p)
	}
	if set.Regex(1).String() != "foo" {
		t.Errorf("Regex(1) = %v", set.Regex(1))
	}
}

func TestCompileSetErrors(t *testing.T) {
	set, err := CompileSet([]string{"ok", "a$b", "(", `\bx`}, DefaultConfig())
	if set != nil {
		t.Error("CompileSet returned a set despite errors")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("error %T is not a *multierror.Error", err)
	}
	if len(merr.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(merr.Errors), err)
	}
	if !errors.Is(err, ErrGrammar) {
		t.Error("aggregated error does not contain ErrGrammar")
	}
	for _, e := range merr.Errors {
		var ce *CompileError
		if !errors.As(e, &ce) {
			t.Errorf("%v is not a *CompileError", e)
		}
	}
}
