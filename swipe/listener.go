// SPDX-License-Identifier: Unlicense OR MIT

package swipe

import "github.com/zorro/swipe/gesture"

// SwipeListener receives the lifecycle of a control's surface.
//
// Within one gesture OnStartOpen or OnStartClose is delivered once,
// before any OnUpdate; OnOpen or OnClose terminates the sequence
// when the surface settles.
type SwipeListener interface {
	OnStartOpen(c *Controller)
	OnOpen(c *Controller)
	OnStartClose(c *Controller)
	OnClose(c *Controller)
	// OnUpdate reports the surface offset relative to the closed
	// position.
	OnUpdate(c *Controller, dx, dy int)
	// OnHandRelease reports the release velocity in pixels per
	// second when the user lets go of a dragged surface.
	OnHandRelease(c *Controller, vx, vy float32)
}

// BaseSwipeListener implements SwipeListener with no-ops. Embed it to
// implement a subset of the callbacks.
type BaseSwipeListener struct{}

func (BaseSwipeListener) OnStartOpen(*Controller) {}
func (BaseSwipeListener) OnOpen(*Controller) {}
func (BaseSwipeListener) OnStartClose(*Controller) {}
func (BaseSwipeListener) OnClose(*Controller) {}
func (BaseSwipeListener) OnUpdate(*Controller, int, int) {}
func (BaseSwipeListener) OnHandRelease(*Controller, float32, float32) {}

// SwipeFuncs adapts optional functions to a SwipeListener. Register
// it by pointer so it can be removed again.
type SwipeFuncs struct {
	StartOpen   func(c *Controller)
	Opened      func(c *Controller)
	StartClose  func(c *Controller)
	Closed      func(c *Controller)
	Update      func(c *Controller, dx, dy int)
	HandRelease func(c *Controller, vx, vy float32)
}

func (f *SwipeFuncs) OnStartOpen(c *Controller) {
	if f.StartOpen != nil {
		f.StartOpen(c)
	}
}

func (f *SwipeFuncs) OnOpen(c *Controller) {
	if f.Opened != nil {
		f.Opened(c)
	}
}

func (f *SwipeFuncs) OnStartClose(c *Controller) {
	if f.StartClose != nil {
		f.StartClose(c)
	}
}

func (f *SwipeFuncs) OnClose(c *Controller) {
	if f.Closed != nil {
		f.Closed(c)
	}
}

func (f *SwipeFuncs) OnUpdate(c *Controller, dx, dy int) {
	if f.Update != nil {
		f.Update(c, dx, dy)
	}
}

func (f *SwipeFuncs) OnHandRelease(c *Controller, vx, vy float32) {
	if f.HandRelease != nil {
		f.HandRelease(c, vx, vy)
	}
}

// RevealListener is notified about the visible fraction of a bottom
// element's descendant. Distance is the number of pixels of the
// child that are uncovered.
type RevealListener func(child string, edge Edge, fraction float32, distance int)

// SwipeDenier vetoes gestures, typically for a nested child that
// handles the same gesture itself. Deniers are consulted when a
// gesture starts.
type SwipeDenier interface {
	DenySwipe(e gesture.Event) bool
}

// LayoutListener is called at the end of every layout pass.
type LayoutListener interface {
	OnLayout(c *Controller)
}

// ItemClicker is an optional capability of the control's parent. List
// hosts that expect item click semantics implement it to receive the
// taps a Closed control would otherwise swallow.
type ItemClicker interface {
	PerformItemClick(c *Controller) bool
}

// ItemLongClicker is the long press counterpart of ItemClicker.
type ItemLongClicker interface {
	PerformItemLongClick(c *Controller) bool
}
