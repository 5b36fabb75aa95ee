package hir

import "fmt"

// Anchors records which ends of the input a pattern is pinned to.
type Anchors struct {
	// Start is true when the pattern begins with ^ (or \A).
	Start bool
	// End is true when the pattern ends with $ (or \z).
	End bool
}

// String returns a short description such as "start,end" or "none".
func (a Anchors) String() string {
	switch {
	case a.Start && a.End:
		return "start,end"
	case a.Start:
		return "start"
	case a.End:
		return "end"
	}
	return "none"
}

// Classify strips the top-level anchors from node and returns them together
// with the remaining sequence of nodes to compile.
//
// A start anchor is accepted only as the first element of the top-level
// concatenation and an end anchor only as the last one. Anchors anywhere else,
// including inside groups, alternations and repetitions, fail with
// ErrUnsupportedAnchorPosition. Any other assertion (line anchors, word
// boundaries) fails with ErrUnsupportedLookaround, as does a pattern made of a
// single bare anchor.
//
// Example:
//
//	node, _ := hir.Parse(`^abc$`)
//	anchors, body, _ := hir.Classify(node)
//	// anchors = {Start: true, End: true}, body = [Literal("abc")]
func Classify(node Node) (Anchors, []Node, error) {
	var anchors Anchors

	switch n := node.(type) {
	case *Anchor:
		return anchors, nil, fmt.Errorf("%w: %s cannot be used alone", ErrUnsupportedLookaround, n.Look)
	case *Concat:
		body := n.Subs
		if len(body) > 0 {
			if a, ok := body[0].(*Anchor); ok {
				switch a.Look {
				case LookStart:
					anchors.Start = true
					body = body[1:]
				case LookEnd:
					return anchors, nil, fmt.Errorf("%w: End cannot start the pattern", ErrUnsupportedAnchorPosition)
				default:
					return anchors, nil, fmt.Errorf("%w: %s", ErrUnsupportedLookaround, a.Look)
				}
			}
		}
		if len(body) > 0 {
			if a, ok := body[len(body)-1].(*Anchor); ok {
				switch a.Look {
				case LookEnd:
					anchors.End = true
					body = body[:len(body)-1]
				case LookStart:
					return anchors, nil, fmt.Errorf("%w: Start cannot end the pattern", ErrUnsupportedAnchorPosition)
				default:
					return anchors, nil, fmt.Errorf("%w: %s", ErrUnsupportedLookaround, a.Look)
				}
			}
		}
		for _, sub := range body {
			if err := checkNoAnchors(sub); err != nil {
				return anchors, nil, err
			}
		}
		return anchors, body, nil
	}

	if node.Kind() == KindEmpty {
		return anchors, nil, nil
	}
	if err := checkNoAnchors(node); err != nil {
		return anchors, nil, err
	}
	return anchors, []Node{node}, nil
}

// checkNoAnchors rejects any assertion found in node or its descendants.
func checkNoAnchors(node Node) error {
	switch n := node.(type) {
	case *Anchor:
		switch n.Look {
		case LookStart, LookEnd:
			return fmt.Errorf("%w: %s must be the first or last element of the pattern",
				ErrUnsupportedAnchorPosition, n.Look)
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedLookaround, n.Look)
	case *Repetition:
		return checkNoAnchors(n.Sub)
	case *Group:
		return checkNoAnchors(n.Sub)
	case *Concat:
		return checkNoAnchorsAll(n.Subs)
	case *Alternation:
		return checkNoAnchorsAll(n.Subs)
	}
	return nil
}

func checkNoAnchorsAll(nodes []Node) error {
	for _, n := range nodes {
		if err := checkNoAnchors(n); err != nil {
			return err
		}
	}
	return nil
}
