package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/coregx/stepregex"
	"github.com/coregx/stepregex/step"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const maxLineSize = 1 << 20

var errNoPattern = errors.New("no pattern given")

// collectPatterns gathers the -e and -f patterns. Without either, the first
// argument is the pattern. The remaining arguments are the input files.
//
// The -e patterns come from viper, so STEPGREP_REGEXP (whitespace separated)
// and a regexp list in the config file work like repeated -e flags.
func (a *app) collectPatterns(args []string) ([]namedPattern, []string, error) {
	var patterns []namedPattern

	for _, e := range a.v.GetStringSlice("regexp") {
		patterns = append(patterns, namedPattern{Name: e, Pattern: e})
	}

	if path := a.v.GetString("file"); path != "" {
		loaded, err := loadPatternFile(path)
		if err != nil {
			return nil, nil, err
		}
		patterns = append(patterns, loaded...)
	}

	if len(patterns) == 0 {
		if len(args) == 0 {
			return nil, nil, errNoPattern
		}
		patterns = append(patterns, namedPattern{Name: args[0], Pattern: args[0]})
		args = args[1:]
	}
	return patterns, args, nil
}

func (a *app) compileConfig() stepregex.Config {
	config := stepregex.DefaultConfig()
	if a.v.GetBool("backtrack") {
		config.Semantics = step.Backtracking
	}
	config.EnablePrefilter = !a.v.GetBool("no-prefilter")
	return config
}

func (a *app) run(_ *cobra.Command, args []string) error {
	log, err := a.logger()
	if err != nil {
		return err
	}

	patterns, files, err := a.collectPatterns(args)
	if err != nil {
		return err
	}

	sources := make([]string, len(patterns))
	for i, p := range patterns {
		sources[i] = p.Pattern
	}
	set, err := stepregex.CompileSet(sources, a.compileConfig())
	if err != nil {
		return err
	}

	for i, p := range patterns {
		prog := set.Regex(i).Program()
		ev := log.Debug().
			Str("name", p.Name).
			Str("pattern", prog.Pattern()).
			Str("anchors", prog.Anchors().String()).
			Str("semantics", prog.Semantics().String()).
			Stringer("prefilter", prog.Prefilter())
		if pf := prog.Prefilter(); pf != nil {
			ev = ev.Bool("prefilter_complete", pf.IsComplete()).
				Int("prefilter_heap_bytes", pf.HeapBytes())
		}
		ev.Int("steps", prog.Len()).Msg("compiled pattern")
	}

	if a.v.GetBool("dump") {
		for i, p := range patterns {
			fmt.Fprintf(a.stdout, "# %s\n%s", p.Name, set.Regex(i).Program())
		}
		a.status = exitMatch
		return nil
	}

	if len(files) == 0 {
		files = []string{"-"}
	}
	s := &searcher{
		set:   set,
		log:   log,
		count: a.v.GetBool("count"),
		quiet: a.v.GetBool("quiet"),
		out:   newPrinter(a.stdout, a.useColor(a.stdout), len(files) > 1, a.v.GetBool("line-number")),
	}
	a.status = s.searchFiles(files, a.stdin)

	for i, p := range patterns {
		st := set.Regex(i).Stats()
		log.Debug().
			Str("name", p.Name).
			Uint64("searches", st.Searches).
			Uint64("matches", st.Matches).
			Uint64("prefilter_candidates", st.PrefilterCandidates).
			Uint64("prefilter_skipped", st.PrefilterSkipped).
			Uint64("prefilter_abandoned", st.PrefilterAbandoned).
			Msg("search stats")
	}
	return nil
}

// searcher runs a pattern set over input files.
type searcher struct {
	set   *stepregex.Set
	log   zerolog.Logger
	out   *printer
	count bool
	quiet bool
}

// searchFiles searches every file and returns the exit status. A file that
// cannot be read is logged and makes the status exitError, unless quiet mode
// already found a match.
func (s *searcher) searchFiles(files []string, stdin io.Reader) int {
	matched, failed := false, false

	for _, name := range files {
		n, err := s.searchFile(name, stdin)
		if n > 0 {
			matched = true
			if s.quiet {
				return exitMatch
			}
		}
		if err != nil {
			s.log.Error().Err(err).Str("file", name).Msg("search failed")
			failed = true
		}
	}

	switch {
	case failed:
		return exitError
	case matched:
		return exitMatch
	}
	return exitNoMatch
}

func (s *searcher) searchFile(name string, stdin io.Reader) (int, error) {
	if name == "-" {
		return s.search("(standard input)", stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return s.search(name, f)
}

// search scans r line by line and returns the number of matching lines.
func (s *searcher) search(name string, r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	matches := 0
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if !s.set.IsMatch(line) {
			continue
		}
		matches++
		if s.quiet {
			return matches, nil
		}
		if !s.count {
			s.out.line(name, lineNo, line)
		}
	}
	if err := sc.Err(); err != nil {
		return matches, err
	}

	if s.count {
		s.out.count(name, matches)
	}
	s.log.Debug().Str("file", name).Int("matches", matches).Msg("searched")
	return matches, nil
}
