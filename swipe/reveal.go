// SPDX-License-Identifier: Unlicense OR MIT

package swipe

import (
	"fmt"
	"image"

	"golang.org/x/exp/slices"
)

// AddRevealListener registers l for the descendant child of a
// registered bottom element.
func (c *Controller) AddRevealListener(child string, l RevealListener) error {
	if !c.knownChild(child) {
		return fmt.Errorf("%w: %q", ErrUnknownChild, child)
	}
	st, ok := c.reveals[child]
	if !ok {
		st = new(revealState)
		c.reveals[child] = st
		c.revealOrder = append(c.revealOrder, child)
	}
	st.listeners = append(st.listeners, l)
	st.shownEntirely = false
	return nil
}

// AddRevealListeners registers l for every child. Children are
// checked before any listener is added.
func (c *Controller) AddRevealListeners(children []string, l RevealListener) error {
	for _, id := range children {
		if !c.knownChild(id) {
			return fmt.Errorf("%w: %q", ErrUnknownChild, id)
		}
	}
	for _, id := range children {
		c.AddRevealListener(id, l)
	}
	return nil
}

// RemoveRevealListeners unregisters every reveal listener of child.
func (c *Controller) RemoveRevealListeners(child string) {
	if _, ok := c.reveals[child]; !ok {
		return
	}
	delete(c.reveals, child)
	if i := slices.Index(c.revealOrder, child); i >= 0 {
		c.revealOrder = slices.Delete(c.revealOrder, i, i+1)
	}
}

// RemoveAllRevealListeners unregisters every reveal listener.
func (c *Controller) RemoveAllRevealListeners() {
	c.reveals = make(map[string]*revealState)
	c.revealOrder = nil
}

func (c *Controller) knownChild(id string) bool {
	for _, b := range c.bottoms {
		if b == nil {
			continue
		}
		if _, ok := b.Children[id]; ok {
			return true
		}
	}
	return false
}

// dispatchReveal notifies the reveal listeners of the active bottom
// element's children that are partially uncovered, and delivers a
// single fraction 1 event the first time a child is uncovered entirely.
func (c *Controller) dispatchReveal() {
	if len(c.reveals) == 0 {
		return
	}
	b := c.currentBottom()
	if b == nil {
		return
	}
	for _, id := range slices.Clone(c.revealOrder) {
		st, ok := c.reveals[id]
		if !ok {
			continue
		}
		local, ok := b.Children[id]
		if !ok {
			continue
		}
		r := local.Add(b.rect.Min)
		size := r.Dy()
		if c.edge.Horizontal() {
			size = r.Dx()
		}
		if size <= 0 {
			continue
		}
		ls := slices.Clone(st.listeners)
		if c.childShowing(r) {
			st.shownEntirely = false
			dist := abs(c.revealDistance(r))
			frac := float32(dist) / float32(size)
			for _, l := range ls {
				l(id, c.edge, frac, dist)
			}
		}
		if !st.shownEntirely && c.childShownEntirely(r) {
			st.shownEntirely = true
			for _, l := range ls {
				l(id, c.edge, 1, size)
			}
		}
	}
}

// container returns the closed surface rectangle, the area the
// container displays.
func (c *Controller) container() image.Rectangle {
	return image.Rectangle{Min: c.bounds.Padding, Max: c.bounds.Padding.Add(c.bounds.Size)}
}

// childShowing reports whether the child rectangle r straddles the
// boundary that uncovers it: the moving surface side for SlideUnder,
// the container side for SlideOver.
func (c *Controller) childShowing(r image.Rectangle) bool {
	s := c.surface
	if c.style == SlideUnder {
		switch c.edge {
		case Right:
			return r.Min.X < s.Max.X && s.Max.X <= r.Max.X
		case Left:
			return r.Min.X <= s.Min.X && s.Min.X < r.Max.X
		case Top:
			return r.Min.Y <= s.Min.Y && s.Min.Y < r.Max.Y
		case Bottom:
			return r.Min.Y < s.Max.Y && s.Max.Y <= r.Max.Y
		}
		return false
	}
	k := c.container()
	switch c.edge {
	case Right:
		return r.Min.X <= k.Max.X && k.Max.X < r.Max.X
	case Left:
		return r.Min.X < k.Min.X && k.Min.X <= r.Max.X
	case Top:
		return r.Min.Y < k.Min.Y && k.Min.Y <= r.Max.Y
	case Bottom:
		return r.Min.Y <= k.Max.Y && k.Max.Y < r.Max.Y
	}
	return false
}

// revealDistance returns the signed extent of r that is uncovered.
func (c *Controller) revealDistance(r image.Rectangle) int {
	s := c.surface
	if c.style == SlideUnder {
		switch c.edge {
		case Left:
			return r.Min.X - s.Min.X
		case Right:
			return r.Max.X - s.Max.X
		case Top:
			return r.Min.Y - s.Min.Y
		default:
			return r.Max.Y - s.Max.Y
		}
	}
	k := c.container()
	switch c.edge {
	case Left:
		return r.Max.X - k.Min.X
	case Right:
		return r.Min.X - k.Max.X
	case Top:
		return r.Max.Y - k.Min.Y
	default:
		return r.Min.Y - k.Max.Y
	}
}

func (c *Controller) childShownEntirely(r image.Rectangle) bool {
	s := c.surface
	if c.style == SlideUnder {
		switch c.edge {
		case Right:
			return s.Max.X <= r.Min.X
		case Left:
			return s.Min.X >= r.Max.X
		case Top:
			return s.Min.Y >= r.Max.Y
		default:
			return s.Max.Y <= r.Min.Y
		}
	}
	k := c.container()
	switch c.edge {
	case Right:
		return r.Max.X <= k.Max.X
	case Left:
		return r.Min.X >= k.Min.X
	case Top:
		return r.Min.Y >= k.Min.Y
	default:
		return r.Max.Y <= k.Max.Y
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
