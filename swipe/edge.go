// SPDX-License-Identifier: Unlicense OR MIT

package swipe

import (
	"fmt"
	"strings"
)

// Edge of the container a bottom element is revealed from.
type Edge uint8

// EdgeMask is a set of edges, as accepted by the drag_edge option.
type EdgeMask uint8

// RevealStyle selects how the bottom element appears while the
// surface moves.
type RevealStyle uint8

// Status of a control, derived from the surface position.
type Status uint8

const (
	Left Edge = iota
	Top
	Right
	Bottom
)

// edgeCount is the number of valid edges.
const edgeCount = 4

const (
	DragLeft   EdgeMask = 1
	DragRight  EdgeMask = 2
	DragTop    EdgeMask = 4
	DragBottom EdgeMask = 8
)

const (
	// SlideOver moves the bottom element together with the surface,
	// pulling it in from outside the container bounds.
	SlideOver RevealStyle = iota
	// SlideUnder keeps the bottom element fixed underneath the
	// surface and uncovers it as the surface moves away.
	SlideUnder
)

const (
	Closed Status = iota
	Open
	// Middle is any surface position between Closed and Open.
	Middle
)

var edges = [edgeCount]Edge{Left, Top, Right, Bottom}

// Valid reports whether e is one of the four edges.
func (e Edge) Valid() bool {
	return e < edgeCount
}

// Horizontal reports whether e is dragged along the x axis.
func (e Edge) Horizontal() bool {
	return e == Left || e == Right
}

// Mask returns the EdgeMask bit for e.
func (e Edge) Mask() EdgeMask {
	switch e {
	case Left:
		return DragLeft
	case Right:
		return DragRight
	case Top:
		return DragTop
	case Bottom:
		return DragBottom
	default:
		return 0
	}
}

func (e Edge) String() string {
	switch e {
	case Left:
		return "Left"
	case Top:
		return "Top"
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	default:
		return fmt.Sprintf("Edge(%d)", uint8(e))
	}
}

// Has reports whether e is in the mask.
func (m EdgeMask) Has(e Edge) bool {
	return e.Valid() && m&e.Mask() != 0
}

// Edges returns the edges in m in Left, Top, Right, Bottom order.
func (m EdgeMask) Edges() []Edge {
	var res []Edge
	for _, e := range edges {
		if m.Has(e) {
			res = append(res, e)
		}
	}
	return res
}

func (m EdgeMask) String() string {
	var names []string
	for _, e := range m.Edges() {
		names = append(names, strings.ToLower(e.String()))
	}
	return strings.Join(names, "|")
}

// ParseEdges parses a "|" or "," separated list of edge names such
// as "left|right".
func ParseEdges(s string) (EdgeMask, error) {
	var m EdgeMask
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "left":
			m |= DragLeft
		case "right":
			m |= DragRight
		case "top":
			m |= DragTop
		case "bottom":
			m |= DragBottom
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidEdge, f)
		}
	}
	return m, nil
}

// Valid reports whether s is a known reveal style.
func (s RevealStyle) Valid() bool {
	return s == SlideOver || s == SlideUnder
}

func (s RevealStyle) String() string {
	switch s {
	case SlideOver:
		return "SlideOver"
	case SlideUnder:
		return "SlideUnder"
	default:
		return fmt.Sprintf("RevealStyle(%d)", uint8(s))
	}
}

// ParseRevealStyle accepts "pull_out"/"slide_over" and
// "lay_down"/"slide_under".
func ParseRevealStyle(s string) (RevealStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pull_out", "pullout", "slide_over", "slideover":
		return SlideOver, nil
	case "lay_down", "laydown", "slide_under", "slideunder":
		return SlideUnder, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRevealStyle, s)
	}
}

func (s Status) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case Middle:
		return "Middle"
	default:
		panic("invalid Status")
	}
}
