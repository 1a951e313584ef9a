// SPDX-License-Identifier: Unlicense OR MIT

package gioswipe

import (
	"image"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/router"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"

	"github.com/zorro/swipe/swipe"
)

func fixed(w, h int) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Dimensions{Size: image.Pt(w, h)}
	}
}

func TestSwipeDrag(t *testing.T) {
	s, err := New(swipe.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	var r router.Router
	now := time.Now()
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(400, 100)),
		Queue:       &r,
		Now:         now,
	}
	frame := func() {
		gtx.Ops.Reset()
		s.Layout(gtx, fixed(400, 100), Bottom{Edge: swipe.Right, Widget: fixed(100, 100)})
		r.Frame(gtx.Ops)
	}
	frame()
	if got := s.Controller.DragDistance(); got != 100 {
		t.Fatalf("drag distance %d", got)
	}

	r.Queue(
		pointer.Event{
			Type:     pointer.Press,
			Source:   pointer.Mouse,
			Buttons:  pointer.ButtonPrimary,
			Position: f32.Pt(200, 50),
		},
		pointer.Event{
			Type:     pointer.Move,
			Source:   pointer.Mouse,
			Buttons:  pointer.ButtonPrimary,
			Position: f32.Pt(160, 50),
			Time:     time.Second,
		},
		pointer.Event{
			Type:     pointer.Release,
			Source:   pointer.Mouse,
			Position: f32.Pt(160, 50),
			Time:     2 * time.Second,
		},
	)
	frame()
	if !s.Controller.Settling() {
		t.Fatalf("release did not settle, surface at %v", s.Controller.SurfaceRect())
	}
	gtx.Now = now.Add(time.Second)
	frame()
	if got := s.Controller.Status(); got != swipe.Open {
		t.Errorf("status %v", got)
	}
	if got, want := s.Controller.SurfaceRect(), image.Rect(-100, 0, 300, 100); got != want {
		t.Errorf("surface %v, want %v", got, want)
	}
	if !s.Controller.BottomVisible(swipe.Right) {
		t.Error("bottom hidden while open")
	}
}

// pressed reports whether events holds a press.
func pressed(events []event.Event) bool {
	for _, e := range events {
		if e, ok := e.(pointer.Event); ok && e.Type == pointer.Press {
			return true
		}
	}
	return false
}

func TestSwipeOffsetsSurface(t *testing.T) {
	s, err := New(swipe.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	var r router.Router
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(400, 100)),
		Queue:       &r,
		Now:         time.Now(),
	}
	tag := new(int)
	surface := func(gtx layout.Context) layout.Dimensions {
		size := image.Pt(400, 100)
		defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
		pointer.InputOp{Tag: tag, Types: pointer.Press | pointer.Release}.Add(gtx.Ops)
		return layout.Dimensions{Size: size}
	}
	frame := func() {
		gtx.Ops.Reset()
		s.Layout(gtx, surface, Bottom{Edge: swipe.Right, Widget: fixed(100, 100)})
		r.Frame(gtx.Ops)
	}
	frame()
	s.Controller.Open(false, false)
	frame()
	r.Events(tag)

	// The open surface covers [-100, 300) and the bottom the rest.
	r.Queue(
		pointer.Event{Type: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(350, 50)},
		pointer.Event{Type: pointer.Release, Source: pointer.Mouse, Position: f32.Pt(350, 50)},
	)
	if pressed(r.Events(tag)) {
		t.Error("press over the revealed bottom reached the surface")
	}
	r.Queue(
		pointer.Event{Type: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(250, 50)},
		pointer.Event{Type: pointer.Release, Source: pointer.Mouse, Position: f32.Pt(250, 50)},
	)
	if !pressed(r.Events(tag)) {
		t.Error("press over the shifted surface missed it")
	}
}

func TestSwipeDimensions(t *testing.T) {
	opts := swipe.DefaultOptions()
	opts.Edges = swipe.DragLeft
	s, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Constraints{Max: image.Pt(500, 500)},
	}
	dims := s.Layout(gtx, fixed(300, 40), Bottom{Edge: swipe.Left, Widget: fixed(80, 40)})
	if got, want := dims.Size, image.Pt(300, 40); got != want {
		t.Errorf("dimensions %v, want %v", got, want)
	}
	if got, _ := s.Controller.BottomRect(swipe.Left); got.Dx() != 80 {
		t.Errorf("bottom %v", got)
	}
}

func TestListRecycles(t *testing.T) {
	l := &List{List: layout.List{Axis: layout.Vertical}}
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(400, 100)),
		Now:         time.Now(),
	}
	row := func(gtx layout.Context, index int, s *Swipe) layout.Dimensions {
		return s.Layout(gtx, fixed(400, 50), Bottom{Edge: swipe.Right, Widget: fixed(100, 50)})
	}
	l.Layout(gtx, 10, row)
	first, ok := l.Swipe(0)
	if !ok {
		t.Fatal("first item not laid out")
	}
	if _, ok := l.Swipe(5); ok {
		t.Fatal("invisible item laid out")
	}

	l.Manager.OpenItem(1)
	gtx.Ops.Reset()
	l.Layout(gtx, 10, row)
	s1, _ := l.Swipe(1)
	if got := s1.Controller.Status(); got != swipe.Open {
		t.Errorf("item 1 status %v", got)
	}

	// Scroll item 1 out of view. Its widget returns to the pool and
	// displays another position on the next scroll.
	l.Position.First = 4
	gtx.Ops.Reset()
	l.Layout(gtx, 10, row)
	if _, ok := l.Swipe(1); ok {
		t.Error("scrolled out item still laid out")
	}
	l.Position.First = 6
	gtx.Ops.Reset()
	l.Layout(gtx, 10, row)
	if _, ok := l.Swipe(7); !ok {
		t.Fatal("item 7 not laid out")
	}
	reused := false
	for i := 0; i < 10; i++ {
		s, ok := l.Swipe(i)
		if !ok {
			continue
		}
		if s == first || s == s1 {
			reused = true
		}
		if got := s.Controller.Status(); got != swipe.Closed {
			t.Errorf("recycled item %d status %v", i, got)
		}
	}
	if !reused {
		t.Error("no widget was recycled")
	}
	if got := l.Manager.OpenItems(); len(got) != 1 || got[0] != 1 {
		t.Errorf("open items %v", got)
	}
}

func TestListItemClick(t *testing.T) {
	var clicked []int
	l := &List{
		List:        layout.List{Axis: layout.Vertical},
		OnItemClick: func(i int) { clicked = append(clicked, i) },
	}
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(400, 100)),
	}
	l.Layout(gtx, 2, func(gtx layout.Context, index int, s *Swipe) layout.Dimensions {
		return s.Layout(gtx, fixed(400, 50), Bottom{Edge: swipe.Right, Widget: fixed(100, 50)})
	})
	s, _ := l.Swipe(1)
	if !l.PerformItemClick(s.Controller) {
		t.Fatal("click not handled")
	}
	if len(clicked) != 1 || clicked[0] != 1 {
		t.Errorf("clicked %v", clicked)
	}
}
