// SPDX-License-Identifier: Unlicense OR MIT

package swipe

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/exp/slices"

	"github.com/zorro/swipe/gesture"
	"github.com/zorro/swipe/internal/fling"
)

// Bounds describes the container during a layout pass.
type Bounds struct {
	// Padding is the left and top padding.
	Padding image.Point
	// Size is the measured size of the container and its surface.
	Size image.Point
}

// Element describes a bottom element.
type Element struct {
	// Size is the measured size of the element.
	Size image.Point
	// Children maps the IDs of descendants that reveal listeners may
	// observe to their bounds, relative to the element's origin.
	Children map[string]image.Rectangle
}

type bottomState struct {
	Element
	rect    image.Rectangle
	visible bool
	cached  bool
}

type revealState struct {
	listeners     []RevealListener
	shownEntirely bool
}

// Controller is the state of one swipeable container.
type Controller struct {
	// ClickToClose closes an open control when its surface is tapped.
	ClickToClose bool
	// AfterOpen is the revealed fraction above which a control that was
	// open when the drag began settles open.
	AfterOpen float32
	// AfterClose is the revealed fraction above which a control that was
	// closed when the drag began settles open.
	AfterClose float32
	// OnClick, if set, receives taps that do not close the control.
	OnClick func(c *Controller)
	// OnLongClick, if set, receives long presses.
	OnLongClick func(c *Controller) bool
	// OnDoubleClick receives double taps, reporting whether the
	// second tap landed on the surface rather than the bottom element.
	OnDoubleClick func(c *Controller, surface bool)

	log *slog.Logger

	edge     Edge
	style    RevealStyle
	mask     EdgeMask
	offsets  [edgeCount]int
	slop     float32
	minFling float32

	swipeDisabled bool
	edgeDisabled  [edgeCount]bool

	distance int
	bounds   Bounds
	// cacheGeom is the geometry the cached bounds were captured with.
	cacheGeom Geometry

	hasSurface   bool
	surface      image.Rectangle
	surfaceCache bool
	bottoms      [edgeCount]*bottomState

	swipeListeners  []SwipeListener
	deniers         []SwipeDenier
	layoutListeners []LayoutListener
	reveals         map[string]*revealState
	revealOrder     []string
	parent          any

	// eventCounter counts swipe dispatches since the last terminal
	// event; the first one carries the start event.
	eventCounter int
	// dispatchSeq detects swipe dispatches nested in listener callbacks.
	dispatchSeq int

	drag   dragState
	settle fling.Settle
	click  gesture.Click
}

// New returns a controller configured by opts.
func New(opts Options) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		ClickToClose: opts.ClickToClose,
		AfterOpen:    opts.AfterOpen,
		AfterClose:   opts.AfterClose,
		log:          opts.Logger,
		style:        opts.Style,
		mask:         opts.Edges,
		offsets:      opts.Offsets,
		slop:         opts.TouchSlop,
		minFling:     opts.MinFlingVelocity,
		reveals:      make(map[string]*revealState),
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.edge = DefaultEdge
	if es := c.mask.Edges(); len(es) > 0 && !c.mask.Has(DefaultEdge) {
		c.edge = es[0]
	}
	return c, nil
}

// AttachSurface marks the surface element present. Until a surface
// is attached every operation is a no-op and the status is Closed.
func (c *Controller) AttachSurface() {
	if c.hasSurface {
		return
	}
	c.hasSurface = true
	c.relayout()
}

// DetachSurface removes the surface element.
func (c *Controller) DetachSurface() {
	c.hasSurface = false
	c.settle.Stop()
	c.drag = dragState{}
	c.dropCaches()
	c.surface = image.Rectangle{}
	c.safeBottomView()
}

// SetBottom registers b as the bottom element for edge e, replacing
// any previous element. Re-registering the active edge recomputes the
// drag distance.
func (c *Controller) SetBottom(e Edge, b Element) error {
	if !e.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidEdge, e)
	}
	if s := c.bottoms[e]; s != nil {
		s.Element = b
	} else {
		c.bottoms[e] = &bottomState{Element: b}
	}
	if e == c.edge {
		c.relayout()
	}
	return nil
}

// AddBottom registers b for the first edge of the configured edge mask
// that has no bottom element yet.
func (c *Controller) AddBottom(b Element) (Edge, bool) {
	for _, e := range c.mask.Edges() {
		if c.bottoms[e] == nil {
			c.SetBottom(e, b)
			return e, true
		}
	}
	return 0, false
}

// SetDrag replaces all bottom elements with b at edge e.
func (c *Controller) SetDrag(e Edge, b Element) error {
	if !e.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidEdge, e)
	}
	c.ClearDragEdges()
	return c.SetBottom(e, b)
}

// RemoveBottom unregisters the bottom element of edge e.
func (c *Controller) RemoveBottom(e Edge) {
	if !e.Valid() || c.bottoms[e] == nil {
		return
	}
	c.bottoms[e] = nil
	if e == c.edge {
		c.relayout()
	}
}

// ClearDragEdges unregisters every bottom element.
func (c *Controller) ClearDragEdges() {
	c.bottoms = [edgeCount]*bottomState{}
	c.relayout()
}

// DragEdges returns the edges with a registered bottom element.
func (c *Controller) DragEdges() []Edge {
	var res []Edge
	for _, e := range edges {
		if c.bottoms[e] != nil {
			res = append(res, e)
		}
	}
	return res
}

// SetParent records the container of the control. If the parent
// implements ItemClicker or ItemLongClicker, taps on a Closed control
// without OnClick or OnLongClick handlers are forwarded to it.
func (c *Controller) SetParent(p any) {
	c.parent = p
}

// Layout runs a layout pass: it positions the surface and the active
// bottom element, restoring the bounds captured during the last drag,
// and then notifies the layout listeners.
func (c *Controller) Layout(b Bounds) {
	c.bounds = b
	c.relayout()
	for _, l := range slices.Clone(c.layoutListeners) {
		l.OnLayout(c)
	}
}

// Animate advances an active settle to now. It reports whether
// the settle continues and the host must schedule another frame.
func (c *Controller) Animate(now time.Time) bool {
	if !c.settle.Active() {
		return false
	}
	p, active := c.settle.Tick(now)
	c.moveSurface(p)
	return active && c.settle.Active()
}

// Settling reports whether a settle animation is in progress.
func (c *Controller) Settling() bool {
	return c.settle.Active()
}

// Status returns the status derived from the surface position.
func (c *Controller) Status() Status {
	if !c.hasSurface {
		return Closed
	}
	return c.geometry().Status(c.surface.Min)
}

// Edge returns the active drag edge.
func (c *Controller) Edge() Edge {
	return c.edge
}

// DragDistance returns the maximum travel of the surface in pixels.
func (c *Controller) DragDistance() int {
	return c.distance
}

// RevealStyle returns the reveal style.
func (c *Controller) RevealStyle() RevealStyle {
	return c.style
}

// SetRevealStyle changes the reveal style and lays the elements out again.
func (c *Controller) SetRevealStyle(s RevealStyle) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRevealStyle, s)
	}
	if s != c.style {
		c.style = s
		c.relayout()
	}
	return nil
}

// SurfaceRect returns the current surface rectangle.
func (c *Controller) SurfaceRect() image.Rectangle {
	return c.surface
}

// BottomRect returns the current rectangle of the bottom element of e.
func (c *Controller) BottomRect(e Edge) (image.Rectangle, bool) {
	if !e.Valid() || c.bottoms[e] == nil {
		return image.Rectangle{}, false
	}
	return c.bottoms[e].rect, true
}

// BottomVisible reports whether the bottom element of e should be
// shown and hit tested. Bottom elements are hidden while Closed.
func (c *Controller) BottomVisible(e Edge) bool {
	return e.Valid() && c.bottoms[e] != nil && c.bottoms[e].visible
}

// SetSwipeEnabled enables or disables all gesture handling.
func (c *Controller) SetSwipeEnabled(enabled bool) {
	c.swipeDisabled = !enabled
}

// SwipeEnabled reports whether gestures are handled.
func (c *Controller) SwipeEnabled() bool {
	return !c.swipeDisabled
}

// SetEdgeEnabled enables or disables dragging toward e.
func (c *Controller) SetEdgeEnabled(e Edge, enabled bool) {
	if e.Valid() {
		c.edgeDisabled[e] = !enabled
	}
}

// EdgeEnabled reports whether a drag may select e: the edge must be
// enabled and have a bottom element.
func (c *Controller) EdgeEnabled(e Edge) bool {
	return e.Valid() && c.hasSurface && c.bottoms[e] != nil && !c.edgeDisabled[e]
}

// Open moves the surface to the open position of the active edge.
// A smooth open is completed by Animate. An immediate open applies the
// position at once and, if notify is set, dispatches reveal and swipe
// events as a completed drag would; otherwise the position is applied
// silently.
func (c *Controller) Open(smooth, notify bool) {
	c.moveTo(true, smooth, notify)
}

// OpenEdge makes e the active edge and opens it.
func (c *Controller) OpenEdge(e Edge, smooth, notify bool) {
	if !e.Valid() {
		return
	}
	c.setEdge(e)
	c.Open(smooth, notify)
}

// Close moves the surface to the closed position. See Open.
func (c *Controller) Close(smooth, notify bool) {
	c.moveTo(false, smooth, notify)
}

// Toggle closes an open control and opens a closed one, notifying
// listeners. A control in the Middle is left alone.
func (c *Controller) Toggle(smooth bool) {
	switch c.Status() {
	case Open:
		c.Close(smooth, true)
	case Closed:
		c.Open(smooth, true)
	}
}

// AddSwipeListener registers l. Listeners must be comparable, such as
// pointers, to be removable.
func (c *Controller) AddSwipeListener(l SwipeListener) {
	c.swipeListeners = append(c.swipeListeners, l)
}

// RemoveSwipeListener unregisters l.
func (c *Controller) RemoveSwipeListener(l SwipeListener) {
	if i := slices.Index(c.swipeListeners, l); i >= 0 {
		c.swipeListeners = slices.Delete(c.swipeListeners, i, i+1)
	}
}

// RemoveAllSwipeListeners unregisters every swipe listener.
func (c *Controller) RemoveAllSwipeListeners() {
	c.swipeListeners = nil
}

// AddSwipeDenier registers d.
func (c *Controller) AddSwipeDenier(d SwipeDenier) {
	c.deniers = append(c.deniers, d)
}

// RemoveSwipeDenier unregisters d.
func (c *Controller) RemoveSwipeDenier(d SwipeDenier) {
	if i := slices.Index(c.deniers, d); i >= 0 {
		c.deniers = slices.Delete(c.deniers, i, i+1)
	}
}

// RemoveAllSwipeDeniers unregisters every denier.
func (c *Controller) RemoveAllSwipeDeniers() {
	c.deniers = nil
}

// AddLayoutListener registers l.
func (c *Controller) AddLayoutListener(l LayoutListener) {
	c.layoutListeners = append(c.layoutListeners, l)
}

// RemoveLayoutListener unregisters l.
func (c *Controller) RemoveLayoutListener(l LayoutListener) {
	if i := slices.Index(c.layoutListeners, l); i >= 0 {
		c.layoutListeners = slices.Delete(c.layoutListeners, i, i+1)
	}
}

func (c *Controller) geometry() Geometry {
	g := Geometry{
		Padding:  c.bounds.Padding,
		Size:     c.bounds.Size,
		Edge:     c.edge,
		Distance: c.distance,
		Style:    c.style,
	}
	if b := c.bottoms[c.edge]; b != nil {
		g.BottomSize = b.Size
	}
	return g
}

func (c *Controller) currentBottom() *bottomState {
	return c.bottoms[c.edge]
}

func (c *Controller) setEdge(e Edge) {
	c.edge = e
	c.relayout()
}

// relayout recomputes the drag distance and positions the surface and
// the active bottom element from the cached bounds, if they are still
// valid, or from their closed positions.
func (c *Controller) relayout() {
	prev := Closed
	if c.hasSurface && c.surfaceCache {
		prev = c.cacheGeom.Status(c.surface.Min)
	}
	c.distance = 0
	if b := c.currentBottom(); b != nil {
		size := b.Size.Y
		if c.edge.Horizontal() {
			size = b.Size.X
		}
		c.distance = size - c.offsets[c.edge]
		if c.distance < 0 {
			c.distance = 0
		}
	}
	if !c.hasSurface {
		c.safeBottomView()
		return
	}
	g := c.geometry()
	reopen := false
	if g != c.cacheGeom {
		c.dropCaches()
		c.cacheGeom = g
		reopen = prev == Open
	}
	if !c.surfaceCache {
		c.surface, _ = g.Surface(false)
	}
	if b := c.currentBottom(); b != nil && !b.cached {
		b.rect, _ = g.Bottom(c.surface)
	}
	if reopen {
		r, _ := g.Surface(true)
		c.place(r, false)
	}
	c.safeBottomView()
}

func (c *Controller) moveTo(open, smooth, notify bool) {
	if !c.hasSurface {
		return
	}
	r, err := c.geometry().Surface(open)
	if err != nil {
		c.log.Debug("swipe: no target rectangle", slog.String("error", err.Error()))
		return
	}
	if smooth {
		c.settle.Start(c.surface.Min, r.Min, c.distance)
		return
	}
	c.settle.Stop()
	c.place(r, notify)
}

// place applies the surface rectangle r immediately.
func (c *Controller) place(r image.Rectangle, notify bool) {
	d := r.Min.Sub(c.surface.Min)
	c.surface = r
	if b := c.currentBottom(); b != nil {
		b.rect, _ = c.geometry().Bottom(r)
	}
	switch {
	case notify && d != (image.Point{}):
		c.dispatchReveal()
		c.dispatchSwipe(d)
	default:
		c.safeBottomView()
	}
	c.captureBounds()
}

// moveSurface moves the surface origin to p, dragging the active
// bottom element along for SlideOver and keeping it at its strip for
// SlideUnder, and dispatches the resulting events.
func (c *Controller) moveSurface(p image.Point) {
	if !c.hasSurface {
		return
	}
	d := p.Sub(c.surface.Min)
	if d == (image.Point{}) {
		return
	}
	c.surface = c.surface.Add(d)
	if b := c.currentBottom(); b != nil {
		if c.style == SlideOver {
			if c.edge.Horizontal() {
				b.rect = b.rect.Add(image.Pt(d.X, 0))
			} else {
				b.rect = b.rect.Add(image.Pt(0, d.Y))
			}
		} else {
			b.rect, _ = c.geometry().Bottom(c.surface)
		}
	}
	c.dispatchReveal()
	c.dispatchSwipe(d)
	c.captureBounds()
}

// captureBounds saves the surface and bottom bounds so that the next
// layout pass restores them. A Closed control has nothing to restore.
func (c *Controller) captureBounds() {
	if c.Status() == Closed {
		c.dropCaches()
		return
	}
	c.cacheGeom = c.geometry()
	c.surfaceCache = true
	if b := c.currentBottom(); b != nil {
		b.cached = true
	}
}

func (c *Controller) dropCaches() {
	c.surfaceCache = false
	for _, b := range c.bottoms {
		if b != nil {
			b.cached = false
		}
	}
}

// safeBottomView hides the bottom elements of a Closed control so
// they cannot receive pointer events.
func (c *Controller) safeBottomView() {
	closed := c.Status() == Closed
	for e, b := range c.bottoms {
		if b != nil {
			b.visible = !closed && Edge(e) == c.edge
		}
	}
}

// dispatchSwipe dispatches swipe events for a surface moved by d.
func (c *Controller) dispatchSwipe(d image.Point) {
	open := true
	switch c.edge {
	case Left:
		open = d.X >= 0
	case Right:
		open = d.X <= 0
	case Top:
		open = d.Y >= 0
	case Bottom:
		open = d.Y <= 0
	}
	c.dispatchSwipeEvent(open)
}

func (c *Controller) dispatchSwipeEvent(open bool) {
	c.safeBottomView()
	if len(c.swipeListeners) == 0 {
		return
	}
	c.dispatchSeq++
	seq := c.dispatchSeq
	c.eventCounter++
	first := c.eventCounter == 1
	off := c.surface.Min.Sub(c.bounds.Padding)
	ls := slices.Clone(c.swipeListeners)
	// A listener moving the surface again starts a nested dispatch for
	// the newer position, which supersedes the rest of this one.
	if first {
		for _, l := range ls {
			if open {
				l.OnStartOpen(c)
			} else {
				l.OnStartClose(c)
			}
			if c.dispatchSeq != seq {
				return
			}
		}
	}
	for _, l := range ls {
		l.OnUpdate(c, off.X, off.Y)
		if c.dispatchSeq != seq {
			return
		}
	}
	switch c.Status() {
	case Closed:
		c.eventCounter = 0
		for _, l := range ls {
			l.OnClose(c)
		}
	case Open:
		c.eventCounter = 0
		for _, l := range ls {
			l.OnOpen(c)
		}
	}
}
