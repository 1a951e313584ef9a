// SPDX-License-Identifier: Unlicense OR MIT

package swipe

import (
	"image"
	"log/slog"
	"math"

	"gioui.org/f32"
	"golang.org/x/exp/slices"

	"github.com/zorro/swipe/gesture"
	"github.com/zorro/swipe/internal/fling"
)

type dragState struct {
	// tracking is set between a press and its release.
	tracking bool
	// denied ignores the rest of a gesture vetoed by a SwipeDenier.
	denied   bool
	dragging bool
	pid      gesture.ID
	start    f32.Point
	last     f32.Point
	// closedBefore records whether the control was Closed when the
	// gesture began, selecting the release threshold.
	closedBefore bool
	vx, vy       fling.Extrapolation
}

// Event processes a pointer event and reports whether the control
// claims the gesture: while a drag is in progress, when a press lands
// on a control in the Middle, and when a tap may close an open
// control. Hosts stop delivering a claimed gesture to other handlers.
func (c *Controller) Event(e gesture.Event) bool {
	if c.swipeDisabled || !c.hasSurface {
		return false
	}
	if e.Type == gesture.Press {
		c.drag.denied = c.denied(e)
		if c.drag.denied {
			c.log.Debug("swipe: gesture denied", slog.Any("position", e.Position))
			return false
		}
	} else if c.drag.denied {
		if e.Type == gesture.Release || e.Type == gesture.Cancel {
			c.drag.denied = false
		}
		return false
	}
	claimed := c.ClickToClose && c.Status() == Open && c.onSurface(e.Position)
	clicks := c.click.Update(e)
	switch e.Type {
	case gesture.Press:
		c.press(e)
	case gesture.Move:
		c.move(e)
	case gesture.Release:
		claimed = c.release(e, false) || claimed
	case gesture.Cancel:
		claimed = c.release(e, true) || claimed
	}
	c.handleClicks(clicks)
	return claimed || c.drag.dragging
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.drag.dragging
}

// Abort drops the gesture in progress and stops an active settle
// without dispatching events. The surface stays where it is until the
// next Open or Close; the rest of the gesture is ignored.
func (c *Controller) Abort() {
	c.settle.Stop()
	c.drag = dragState{}
	c.click = gesture.Click{}
	c.eventCounter = 0
}

func (c *Controller) denied(e gesture.Event) bool {
	for _, d := range slices.Clone(c.deniers) {
		if d.DenySwipe(e) {
			return true
		}
	}
	return false
}

func (c *Controller) press(e gesture.Event) {
	// A press interrupts a settle and leaves the surface where it is.
	c.settle.Stop()
	c.drag.tracking = true
	c.drag.dragging = false
	c.drag.pid = e.PointerID
	c.drag.start = e.Position
	c.drag.last = e.Position
	c.drag.vx.Reset()
	c.drag.vy.Reset()
	c.drag.vx.Sample(e.Time, e.Position.X)
	c.drag.vy.Sample(e.Time, e.Position.Y)
	st := c.Status()
	c.drag.closedBefore = st == Closed
	if st == Middle {
		c.drag.dragging = true
	}
}

func (c *Controller) move(e gesture.Event) {
	if !c.drag.tracking || e.PointerID != c.drag.pid {
		return
	}
	c.drag.vx.Sample(e.Time, e.Position.X)
	c.drag.vy.Sample(e.Time, e.Position.Y)
	if !c.drag.dragging {
		c.checkCanDrag(e.Position)
	}
	if c.drag.dragging {
		delta := round(e.Position).Sub(round(c.drag.last))
		c.moveSurface(c.geometry().Clamp(c.surface.Min.Add(delta)))
	}
	c.drag.last = e.Position
}

func (c *Controller) release(e gesture.Event, cancel bool) bool {
	if !c.drag.tracking || (!cancel && e.PointerID != c.drag.pid) {
		return false
	}
	wasDragging := c.drag.dragging
	c.drag.tracking = false
	c.drag.dragging = false
	if !wasDragging {
		return false
	}
	var vx, vy float32
	if !cancel {
		c.drag.vx.Sample(e.Time, e.Position.X)
		c.drag.vy.Sample(e.Time, e.Position.Y)
		vx = c.drag.vx.Estimate().Velocity
		vy = c.drag.vy.Estimate().Velocity
	}
	c.processHandRelease(vx, vy)
	for _, l := range slices.Clone(c.swipeListeners) {
		l.OnHandRelease(c, vx, vy)
	}
	return true
}

// checkCanDrag decides whether the movement from the press position
// starts a drag. A Closed control first selects the drag edge from
// the gesture angle; the drag then starts once the displacement toward
// the edge's open or close direction exceeds the touch slop and the
// angle matches the edge's axis.
func (c *Controller) checkCanDrag(p f32.Point) {
	st := c.Status()
	if st == Middle {
		c.drag.dragging = true
		return
	}
	d := p.Sub(c.drag.start)
	if d.X == 0 && d.Y == 0 {
		return
	}
	angle := gestureAngle(d)
	if st == Closed {
		e, ok := c.selectEdge(d, angle)
		if !ok {
			return
		}
		if e != c.edge {
			c.setEdge(e)
		}
	}
	if canDrag(c.edge, st, d, angle, c.slop) {
		c.drag.dragging = true
		c.log.Debug("swipe: drag started", slog.String("edge", c.edge.String()), slog.String("status", st.String()))
	}
}

// selectEdge picks the edge a gesture from a Closed control pulls
// toward. Horizontal gestures prefer the horizontal edges.
func (c *Controller) selectEdge(d f32.Point, angle float64) (Edge, bool) {
	if angle < 45 {
		switch {
		case d.X > 0 && c.EdgeEnabled(Left):
			return Left, true
		case d.X < 0 && c.EdgeEnabled(Right):
			return Right, true
		}
		return 0, false
	}
	switch {
	case d.Y > 0 && c.EdgeEnabled(Top):
		return Top, true
	case d.Y < 0 && c.EdgeEnabled(Bottom):
		return Bottom, true
	}
	return 0, false
}

// canDrag reports whether displacement d at the given angle in degrees
// starts a drag for edge e in status st.
func canDrag(e Edge, st Status, d f32.Point, angle float64, slop float32) bool {
	open, closed, middle := st == Open, st == Closed, st == Middle
	switch e {
	case Right:
		ok := (open && d.X > slop) || (closed && d.X < -slop) || middle
		return ok && angle <= 30
	case Left:
		ok := (open && d.X < -slop) || (closed && d.X > slop) || middle
		return ok && angle <= 30
	case Top:
		ok := (open && d.Y < -slop) || (closed && d.Y > slop) || middle
		return ok && angle >= 60
	case Bottom:
		ok := (open && d.Y > slop) || (closed && d.Y < -slop) || middle
		return ok && angle >= 60
	}
	return false
}

// gestureAngle returns the angle of d to the horizontal axis in
// degrees, in [0, 90].
func gestureAngle(d f32.Point) float64 {
	return math.Atan2(math.Abs(float64(d.Y)), math.Abs(float64(d.X))) * 180 / math.Pi
}

// processHandRelease settles the surface after a drag. A release
// faster than the minimum fling velocity settles in the direction of
// travel; otherwise the revealed fraction is compared against the
// threshold for the status the gesture started from.
func (c *Controller) processHandRelease(vx, vy float32) {
	pad := c.bounds.Padding
	s := c.surface.Min
	var v float32
	var travelled int
	switch c.edge {
	case Left:
		v, travelled = vx, s.X-pad.X
	case Right:
		v, travelled = -vx, pad.X-s.X
	case Top:
		v, travelled = vy, s.Y-pad.Y
	case Bottom:
		v, travelled = -vy, pad.Y-s.Y
	}
	threshold := c.AfterOpen
	if c.drag.closedBefore {
		threshold = c.AfterClose
	}
	open := releaseOpens(v, travelled, c.distance, threshold, c.minFling)
	c.log.Debug("swipe: hand release",
		slog.String("edge", c.edge.String()),
		slog.Float64("velocity", float64(v)),
		slog.Int("travelled", travelled),
		slog.Bool("open", open))
	if open {
		c.Open(true, true)
	} else {
		c.Close(true, true)
	}
}

// releaseOpens decides a release. v is the velocity toward the open
// position and travelled the displacement from the closed position.
func releaseOpens(v float32, travelled, distance int, threshold, minFling float32) bool {
	switch {
	case v > minFling:
		return true
	case v < -minFling:
		return false
	case distance <= 0:
		return false
	}
	return float32(travelled)/float32(distance) > threshold
}

func (c *Controller) onSurface(p f32.Point) bool {
	return round(p).In(c.surface)
}

func (c *Controller) handleClicks(clicks []gesture.ClickEvent) {
	for _, ce := range clicks {
		switch ce.Type {
		case gesture.TypeClick:
			if ce.NumClicks == 2 && c.OnDoubleClick != nil {
				c.OnDoubleClick(c, !c.insideBottom(ce.Position))
			}
			c.tap(ce.Position)
		case gesture.TypeLongClick:
			c.longClick()
		}
	}
}

// insideBottom reports whether p lies strictly inside the active
// bottom element.
func (c *Controller) insideBottom(p f32.Point) bool {
	b := c.currentBottom()
	if b == nil {
		return false
	}
	r := b.rect
	return p.X > float32(r.Min.X) && p.X < float32(r.Max.X) &&
		p.Y > float32(r.Min.Y) && p.Y < float32(r.Max.Y)
}

func (c *Controller) tap(p f32.Point) {
	if c.ClickToClose && c.Status() == Open && c.onSurface(p) {
		c.Close(true, true)
		return
	}
	if c.OnClick != nil {
		c.OnClick(c)
		return
	}
	if c.Status() != Closed {
		return
	}
	if ic, ok := c.parent.(ItemClicker); ok {
		if !ic.PerformItemClick(c) {
			c.log.Debug("swipe: item click not handled")
		}
	}
}

func (c *Controller) longClick() {
	if c.OnLongClick != nil {
		c.OnLongClick(c)
		return
	}
	if c.Status() != Closed {
		return
	}
	if ic, ok := c.parent.(ItemLongClicker); ok {
		if !ic.PerformItemLongClick(c) {
			c.log.Debug("swipe: item long click not handled")
		}
	}
}

func round(p f32.Point) image.Point {
	return image.Pt(int(math.Round(float64(p.X))), int(math.Round(float64(p.Y))))
}
