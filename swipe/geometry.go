// SPDX-License-Identifier: Unlicense OR MIT

package swipe

import (
	"fmt"
	"image"
)

// Geometry computes surface and bottom element rectangles in
// container coordinates. It is a value type without state; the
// same Geometry answers both final position and current position
// queries.
type Geometry struct {
	// Padding is the container's left and top padding.
	Padding image.Point
	// Size is the measured container size.
	Size image.Point
	// Edge is the active drag edge.
	Edge Edge
	// Distance is the drag distance in pixels.
	Distance int
	Style    RevealStyle
	// BottomSize is the measured size of the active bottom element.
	BottomSize image.Point
}

func (g Geometry) check() error {
	if !g.Edge.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidEdge, g.Edge)
	}
	if !g.Style.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRevealStyle, g.Style)
	}
	return nil
}

// OpenOffset returns the displacement of the open surface relative
// to the closed surface: positive for Left and Top, negative for
// Right and Bottom.
func (g Geometry) OpenOffset() (image.Point, error) {
	if !g.Edge.Valid() {
		return image.Point{}, fmt.Errorf("%w: %v", ErrInvalidEdge, g.Edge)
	}
	d := g.Distance
	switch g.Edge {
	case Left:
		return image.Pt(d, 0), nil
	case Right:
		return image.Pt(-d, 0), nil
	case Top:
		return image.Pt(0, d), nil
	default:
		return image.Pt(0, -d), nil
	}
}

// Surface returns the surface rectangle when open or closed.
func (g Geometry) Surface(open bool) (image.Rectangle, error) {
	if err := g.check(); err != nil {
		return image.Rectangle{}, err
	}
	r := image.Rectangle{Min: g.Padding, Max: g.Padding.Add(g.Size)}
	if !open {
		return r, nil
	}
	off, err := g.OpenOffset()
	if err != nil {
		return image.Rectangle{}, err
	}
	return r.Add(off), nil
}

// Bottom returns the bottom element rectangle for the given surface
// rectangle. For SlideOver the element sits against the surface side
// facing the drag edge; for SlideUnder it is a fixed strip of the drag
// distance flush against the edge, independent of surface.
func (g Geometry) Bottom(surface image.Rectangle) (image.Rectangle, error) {
	if err := g.check(); err != nil {
		return image.Rectangle{}, err
	}
	if g.Style == SlideUnder {
		closed, _ := g.Surface(false)
		return g.strip(closed), nil
	}
	r := surface
	switch g.Edge {
	case Left:
		r.Min.X = surface.Min.X - g.Distance
	case Right:
		r.Min.X = surface.Max.X
	case Top:
		r.Min.Y = surface.Min.Y - g.Distance
	case Bottom:
		r.Min.Y = surface.Max.Y
	}
	if g.Edge.Horizontal() {
		r.Max.X = r.Min.X + g.BottomSize.X
	} else {
		r.Max.Y = r.Min.Y + g.BottomSize.Y
	}
	return r, nil
}

// strip returns the drag distance wide band of closed along the edge.
func (g Geometry) strip(closed image.Rectangle) image.Rectangle {
	r := closed
	switch g.Edge {
	case Left:
		r.Max.X = r.Min.X + g.Distance
	case Right:
		r.Min.X = r.Max.X - g.Distance
	case Top:
		r.Max.Y = r.Min.Y + g.Distance
	case Bottom:
		r.Min.Y = r.Max.Y - g.Distance
	}
	return r
}

// Clamp restricts the surface origin p to the travel range of the
// edge. The coordinate across the drag axis is pinned to the padding.
func (g Geometry) Clamp(p image.Point) image.Point {
	lo, hi := 0, 0
	switch g.Edge {
	case Left, Top:
		hi = g.Distance
	case Right, Bottom:
		lo = -g.Distance
	}
	if g.Edge.Horizontal() {
		return image.Pt(g.Padding.X+clamp(p.X-g.Padding.X, lo, hi), g.Padding.Y)
	}
	return image.Pt(g.Padding.X, g.Padding.Y+clamp(p.Y-g.Padding.Y, lo, hi))
}

// Status derives the status of a surface with origin p.
func (g Geometry) Status(p image.Point) Status {
	pad := g.Padding
	if p == pad {
		return Closed
	}
	d := g.Distance
	if p.X == pad.X-d || p.X == pad.X+d || p.Y == pad.Y-d || p.Y == pad.Y+d {
		return Open
	}
	return Middle
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
