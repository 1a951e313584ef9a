// SPDX-License-Identifier: Unlicense OR MIT

// Package gioswipe hosts swipe controllers in Gio user interfaces.
package gioswipe

import (
	"image"

	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"github.com/zorro/swipe/gesture"
	"github.com/zorro/swipe/swipe"
)

// Bottom is a bottom element attached to an edge.
type Bottom struct {
	Edge   swipe.Edge
	Widget layout.Widget
	// Children optionally lists the bounds of descendants, relative to
	// the element, for reveal listeners.
	Children map[string]image.Rectangle
}

// Swipe is a swipeable container widget.
type Swipe struct {
	Controller *swipe.Controller
}

// New returns a Swipe with a controller configured by opts.
func New(opts swipe.Options) (*Swipe, error) {
	c, err := swipe.New(opts)
	if err != nil {
		return nil, err
	}
	return &Swipe{Controller: c}, nil
}

// Update processes the pointer events of the widget.
func (s *Swipe) Update(gtx layout.Context) {
	for _, ev := range gtx.Events(s) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		var t gesture.Type
		switch e.Type {
		case pointer.Press:
			if e.Source == pointer.Mouse && e.Buttons&pointer.ButtonPrimary == 0 {
				continue
			}
			t = gesture.Press
		case pointer.Drag:
			t = gesture.Move
		case pointer.Release:
			t = gesture.Release
		case pointer.Cancel:
			t = gesture.Cancel
		default:
			continue
		}
		s.Controller.Event(gesture.Event{
			Type:      t,
			Position:  e.Position,
			Time:      e.Time,
			PointerID: gesture.ID(e.PointerID),
		})
	}
}

// Layout the surface over the bottom elements. The surface determines
// the size of the widget; bottom elements are measured against it
// along the edge they are attached to.
func (s *Swipe) Layout(gtx layout.Context, surface layout.Widget, bottoms ...Bottom) layout.Dimensions {
	c := s.Controller
	s.Update(gtx)

	macro := op.Record(gtx.Ops)
	dims := surface(gtx)
	surfaceCall := macro.Stop()
	size := dims.Size

	var calls [4]op.CallOp
	for _, b := range bottoms {
		if !b.Edge.Valid() {
			continue
		}
		bgtx := gtx
		bgtx.Constraints = layout.Constraints{Max: gtx.Constraints.Max}
		if b.Edge.Horizontal() {
			bgtx.Constraints.Min.Y = size.Y
			bgtx.Constraints.Max.Y = size.Y
		} else {
			bgtx.Constraints.Min.X = size.X
			bgtx.Constraints.Max.X = size.X
		}
		macro := op.Record(gtx.Ops)
		bdims := b.Widget(bgtx)
		calls[b.Edge] = macro.Stop()
		c.SetBottom(b.Edge, swipe.Element{Size: bdims.Size, Children: b.Children})
	}

	c.AttachSurface()
	c.Layout(swipe.Bounds{Size: size})
	if c.Animate(gtx.Now) {
		op.InvalidateOp{}.Add(gtx.Ops)
	}

	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	if e := c.Edge(); c.BottomVisible(e) {
		r, _ := c.BottomRect(e)
		t := op.Offset(r.Min).Push(gtx.Ops)
		calls[e].Add(gtx.Ops)
		t.Pop()
	}
	t := op.Offset(c.SurfaceRect().Min).Push(gtx.Ops)
	surfaceCall.Add(gtx.Ops)
	t.Pop()

	pass := pointer.PassOp{}.Push(gtx.Ops)
	pointer.InputOp{
		Tag:   s,
		Grab:  c.Dragging(),
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
	}.Add(gtx.Ops)
	pass.Pop()

	return layout.Dimensions{Size: size}
}
