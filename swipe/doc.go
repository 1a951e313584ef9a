// SPDX-License-Identifier: Unlicense OR MIT

/*
Package swipe implements swipeable containers: a surface element
stacked over bottom elements attached to the container edges.

A Controller consumes the host's layout passes and pointer events,
selects the drag edge from the gesture angle, clamps the surface
while dragging and settles it open or closed on release based on
the release velocity and the revealed fraction. Positions are
reported back as rectangles in container coordinates through
SurfaceRect and BottomRect; the host draws its elements there.

Status is never stored. It is derived from the surface position on
every query: at the padding origin the control is Closed, displaced
by exactly the drag distance it is Open, anywhere else it is Middle.

All methods must be called from the goroutine that owns the host's
event loop.
*/
package swipe

import "errors"

var (
	// ErrUnknownChild is returned when a reveal listener is registered
	// for an element that no registered bottom element contains.
	ErrUnknownChild = errors.New("swipe: child does not belong to the control")
	// ErrInvalidEdge is returned for an edge value outside Left..Bottom.
	ErrInvalidEdge = errors.New("swipe: invalid edge")
	// ErrInvalidRevealStyle is returned for an unknown reveal style.
	ErrInvalidRevealStyle = errors.New("swipe: invalid reveal style")
	// ErrInvalidOption is returned by Options.Validate.
	ErrInvalidOption = errors.New("swipe: invalid option")
)
