package step

import (
	"unicode/utf8"

	"github.com/coregx/stepregex/internal/conv"
	"github.com/coregx/stepregex/prefilter"
)

// IsMatch reports whether text contains a match of the program.
//
// The start offsets tried depend on the anchors:
//   - start anchored: offset 0 only
//   - end anchored: every character boundary from len(text) down to 0, and a
//     match must end exactly at len(text)
//   - unanchored: every character boundary from 0 up to len(text)
//
// The first successful attempt wins.
func (p *Program) IsMatch(text string) bool {
	matched, _ := p.IsMatchStats(text)
	return matched
}

// Match reports whether b contains a match of the program.
func (p *Program) Match(b []byte) bool {
	return p.IsMatch(conv.String(b))
}

// SearchStats describes the prefilter work done by one search. It is zero for
// searches that run without a prefilter.
type SearchStats struct {
	// Candidates is the number of offsets the prefilter proposed.
	Candidates uint64

	// Skipped is the number of bytes jumped over to reach them.
	Skipped uint64

	// Abandoned is set when the prefilter was switched off part way through
	// because its candidates were too dense.
	Abandoned bool
}

// IsMatchStats is IsMatch that also reports the prefilter work it did.
func (p *Program) IsMatchStats(text string) (bool, SearchStats) {
	switch {
	case p.anchors.Start:
		return p.matchAt(text, 0), SearchStats{}
	case p.anchors.End:
		return p.matchBackward(text), SearchStats{}
	case p.prefilter != nil:
		return p.matchPrefiltered(text)
	}
	return p.matchForward(text, 0), SearchStats{}
}

// matchForward tries every rune boundary from pos on.
func (p *Program) matchForward(text string, pos int) bool {
	for {
		if p.matchAt(text, pos) {
			return true
		}
		if pos >= len(text) {
			return false
		}
		_, width := utf8.DecodeRuneInString(text[pos:])
		pos += width
	}
}

func (p *Program) matchBackward(text string) bool {
	for pos := len(text); ; {
		if p.matchAt(text, pos) {
			return true
		}
		if pos <= 0 {
			return false
		}
		_, width := utf8.DecodeLastRuneInString(text[:pos])
		pos -= width
	}
}

// matchPrefiltered only attempts offsets where a prefix literal occurs. Once
// the tracker gives up on the prefilter, the rest of the text is walked like
// an unfiltered search.
func (p *Program) matchPrefiltered(text string) (bool, SearchStats) {
	tracker := prefilter.NewTracker(p.prefilter)
	matched := false
	for at := 0; at <= len(text); {
		if !tracker.IsActive() {
			matched = p.matchForward(text, at)
			break
		}
		pos := tracker.Find(text, at)
		if pos < 0 {
			break
		}
		if p.matchAt(text, pos) {
			matched = true
			break
		}
		_, width := utf8.DecodeRuneInString(text[pos:])
		at = pos + max(width, 1)
	}

	candidates, skipped, active := tracker.Stats()
	return matched, SearchStats{Candidates: candidates, Skipped: skipped, Abandoned: !active}
}

// matchAt runs one attempt starting at pos.
func (p *Program) matchAt(text string, pos int) bool {
	if p.semantics == Backtracking {
		if !p.anchors.End {
			return backtrackSeq(p.steps, text, pos, acceptAny)
		}
		return backtrackSeq(p.steps, text, pos, func(end int) bool {
			return end == len(text)
		})
	}

	end, out := runSeq(p.steps, text, pos)
	return out == advanced && (!p.anchors.End || end == len(text))
}

func acceptAny(int) bool { return true }
