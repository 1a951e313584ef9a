// SPDX-License-Identifier: Unlicense OR MIT

package gioswipe

import (
	"fmt"

	"gioui.org/layout"
	"gioui.org/op"
	"golang.org/x/exp/slices"

	"github.com/zorro/swipe/items"
	"github.com/zorro/swipe/swipe"
)

// ListElement lays out the item at index inside s.
type ListElement func(gtx layout.Context, index int, s *Swipe) layout.Dimensions

// List is a scrollable list of swipeable items. Swipe widgets are
// recycled as items scroll out of view; the Manager keeps the open
// state of every position regardless of which widget displays it.
type List struct {
	layout.List
	// Options configures new item controllers. The zero value selects
	// swipe.DefaultOptions.
	Options swipe.Options
	// Manager is created on first layout if nil.
	Manager *items.Manager
	// CloseOnScroll closes every open item when the user scrolls.
	CloseOnScroll bool
	// OnItemClick, if set, receives taps on Closed items that have no
	// click handler of their own.
	OnItemClick func(index int)
	// OnItemLongClick is the long press counterpart of OnItemClick.
	OnItemLongClick func(index int)

	slots map[int]*Swipe
	free  []*Swipe
	laid  map[int]bool
	dirty bool
}

// NotifyDataSetChanged implements items.Notifier.
func (l *List) NotifyDataSetChanged() {
	l.dirty = true
}

// PerformItemClick implements swipe.ItemClicker.
func (l *List) PerformItemClick(c *swipe.Controller) bool {
	pos, ok := l.Manager.Position(c)
	if !ok || l.OnItemClick == nil {
		return false
	}
	l.OnItemClick(pos)
	return true
}

// PerformItemLongClick implements swipe.ItemLongClicker.
func (l *List) PerformItemLongClick(c *swipe.Controller) bool {
	pos, ok := l.Manager.Position(c)
	if !ok || l.OnItemLongClick == nil {
		return false
	}
	l.OnItemLongClick(pos)
	return true
}

// Layout the list of n items.
func (l *List) Layout(gtx layout.Context, n int, w ListElement) layout.Dimensions {
	if l.Manager == nil {
		l.Manager = items.New(l)
	}
	if l.slots == nil {
		l.slots = make(map[int]*Swipe)
		l.laid = make(map[int]bool)
	}
	for k := range l.laid {
		delete(l.laid, k)
	}
	dims := l.List.Layout(gtx, n, func(gtx layout.Context, index int) layout.Dimensions {
		s := l.slot(index)
		l.laid[index] = true
		l.Manager.Bind(s.Controller, index)
		return w(gtx, index, s)
	})
	var gone []int
	for index := range l.slots {
		if !l.laid[index] {
			gone = append(gone, index)
		}
	}
	slices.Sort(gone)
	for _, index := range gone {
		l.free = append(l.free, l.slots[index])
		delete(l.slots, index)
	}
	if l.CloseOnScroll && l.List.Dragging() && len(l.Manager.OpenItems()) > 0 {
		l.Manager.CloseAllItems()
		l.dirty = true
	}
	if l.dirty {
		l.dirty = false
		op.InvalidateOp{}.Add(gtx.Ops)
	}
	return dims
}

// Swipe returns the widget displaying index, if it is laid out.
func (l *List) Swipe(index int) (*Swipe, bool) {
	s, ok := l.slots[index]
	return s, ok
}

func (l *List) slot(index int) *Swipe {
	if s, ok := l.slots[index]; ok {
		return s
	}
	var s *Swipe
	if k := len(l.free); k > 0 {
		s = l.free[k-1]
		l.free = l.free[:k-1]
	} else {
		opts := l.Options
		if opts == (swipe.Options{}) {
			opts = swipe.DefaultOptions()
		}
		var err error
		s, err = New(opts)
		if err != nil {
			panic(fmt.Errorf("gioswipe: %w", err))
		}
		s.Controller.SetParent(l)
	}
	l.slots[index] = s
	return s
}
