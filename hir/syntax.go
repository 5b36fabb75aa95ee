package hir

import (
	"fmt"
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// Parse parses pattern with Perl-compatible syntax (the flags used by Go's
// regexp package) and translates the result into a Node.
//
// Parse errors wrap both ErrGrammar and the *syntax.Error from the parser.
func Parse(pattern string) (Node, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGrammar, err)
	}
	return FromSyntax(re)
}

// FromSyntax translates a parsed regexp/syntax tree.
//
// Star, plus, quest and counted repetition all become Repetition; captures
// become Group; '.' becomes a CharClass. The tree is not simplified, so a{2,4}
// stays one Repetition instead of being unrolled.
func FromSyntax(re *syntax.Regexp) (Node, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return &CharClass{}, nil
	case syntax.OpEmptyMatch:
		return Empty{}, nil
	case syntax.OpLiteral:
		buf := make([]byte, 0, len(re.Rune))
		for _, r := range re.Rune {
			buf = utf8.AppendRune(buf, r)
		}
		return &Literal{Bytes: buf, FoldCase: re.Flags&syntax.FoldCase != 0}, nil
	case syntax.OpCharClass:
		return classFromPairs(re.Rune), nil
	case syntax.OpAnyCharNotNL:
		return &CharClass{Ranges: []Range{{0, '\n' - 1}, {'\n' + 1, unicode.MaxRune}}}, nil
	case syntax.OpAnyChar:
		return &CharClass{Ranges: []Range{{0, unicode.MaxRune}}}, nil
	case syntax.OpBeginLine:
		return &Anchor{Look: LookStartLine}, nil
	case syntax.OpEndLine:
		return &Anchor{Look: LookEndLine}, nil
	case syntax.OpBeginText:
		return &Anchor{Look: LookStart}, nil
	case syntax.OpEndText:
		return &Anchor{Look: LookEnd}, nil
	case syntax.OpWordBoundary:
		return &Anchor{Look: LookWordBoundary}, nil
	case syntax.OpNoWordBoundary:
		return &Anchor{Look: LookNoWordBoundary}, nil
	case syntax.OpCapture:
		sub, err := FromSyntax(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return &Group{Index: re.Cap, Name: re.Name, Sub: sub}, nil
	case syntax.OpStar:
		return repetition(re.Sub[0], 0, -1)
	case syntax.OpPlus:
		return repetition(re.Sub[0], 1, -1)
	case syntax.OpQuest:
		return repetition(re.Sub[0], 0, 1)
	case syntax.OpRepeat:
		return repetition(re.Sub[0], re.Min, re.Max)
	case syntax.OpConcat:
		subs, err := fromSyntaxAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return &Concat{Subs: subs}, nil
	case syntax.OpAlternate:
		subs, err := fromSyntaxAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return &Alternation{Subs: subs}, nil
	}
	return nil, fmt.Errorf("%w: unknown operator %v", ErrGrammar, re.Op)
}

func fromSyntaxAll(res []*syntax.Regexp) ([]Node, error) {
	nodes := make([]Node, 0, len(res))
	for _, re := range res {
		n, err := FromSyntax(re)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func repetition(sub *syntax.Regexp, minCount, maxCount int) (Node, error) {
	n, err := FromSyntax(sub)
	if err != nil {
		return nil, err
	}
	return &Repetition{Min: minCount, Max: maxCount, Sub: n}, nil
}

// classFromPairs converts the [lo0, hi0, lo1, hi1, ...] layout used by
// regexp/syntax into ranges.
func classFromPairs(pairs []rune) *CharClass {
	ranges := make([]Range, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ranges = append(ranges, Range{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return &CharClass{Ranges: ranges}
}
