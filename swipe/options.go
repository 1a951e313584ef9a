// SPDX-License-Identifier: Unlicense OR MIT

package swipe

import (
	"fmt"
	"log/slog"

	"github.com/zorro/swipe/gesture"
)

const (
	// DefaultAfterOpen is the revealed fraction an already open control
	// must keep on release to stay open.
	DefaultAfterOpen = 0.75
	// DefaultAfterClose is the revealed fraction a closed control must
	// exceed on release to open.
	DefaultAfterClose = 0.25
	// DefaultMinFlingVelocity in pixels per second.
	DefaultMinFlingVelocity = 50
	// DefaultEdge is the active edge of a new control.
	DefaultEdge = Right
)

// Options configure a Controller. The zero value is not valid; start
// from DefaultOptions.
type Options struct {
	// Edges lists the edges a bottom element may be registered for.
	Edges EdgeMask
	// Offsets is subtracted, per edge, from the bottom element size to
	// obtain the drag distance.
	Offsets [edgeCount]int
	Style   RevealStyle
	// ClickToClose closes an open control when its surface is tapped.
	ClickToClose bool
	AfterOpen    float32
	AfterClose   float32
	// TouchSlop is the displacement in pixels that starts a drag.
	TouchSlop float32
	// MinFlingVelocity is the release speed in pixels per second above
	// which the release direction decides the outcome.
	MinFlingVelocity float32
	Logger           *slog.Logger
}

// DefaultOptions returns the options of a right edge, slide over control.
func DefaultOptions() Options {
	return Options{
		Edges:            DefaultEdge.Mask(),
		Style:            SlideOver,
		AfterOpen:        DefaultAfterOpen,
		AfterClose:       DefaultAfterClose,
		TouchSlop:        gesture.TouchSlop,
		MinFlingVelocity: DefaultMinFlingVelocity,
	}
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	if !o.Style.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRevealStyle, o.Style)
	}
	if o.Edges&^(DragLeft|DragRight|DragTop|DragBottom) != 0 {
		return fmt.Errorf("%w: edge mask %#x", ErrInvalidEdge, uint8(o.Edges))
	}
	if o.AfterOpen < 0 || o.AfterOpen > 1 {
		return fmt.Errorf("%w: after open threshold %v not in [0,1]", ErrInvalidOption, o.AfterOpen)
	}
	if o.AfterClose < 0 || o.AfterClose > 1 {
		return fmt.Errorf("%w: after close threshold %v not in [0,1]", ErrInvalidOption, o.AfterClose)
	}
	for i, off := range o.Offsets {
		if off < 0 {
			return fmt.Errorf("%w: negative %v offset %d", ErrInvalidOption, edges[i], off)
		}
	}
	if o.TouchSlop < 0 || o.MinFlingVelocity < 0 {
		return fmt.Errorf("%w: negative touch slop or fling velocity", ErrInvalidOption)
	}
	return nil
}
