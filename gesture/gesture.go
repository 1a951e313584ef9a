// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture defines the host independent pointer stream consumed
by swipe controllers and implements the tap gestures derived from it.

Hosts translate their native pointer events (Gio pointer.Event,
terminal mouse messages, test fixtures) into Events. Click reduces
the stream to taps, double taps and long presses.
*/
package gesture

import (
	"time"

	"gioui.org/f32"
)

// Type of an Event.
type Type uint8

// ID uniquely identifies a pointer during a gesture.
type ID uint16

// Event is a pointer event delivered to a control. Positions are in
// the control's local coordinate space.
type Event struct {
	Type     Type
	Position f32.Point
	// Time is when the event was received. The timestamp is relative
	// to an undefined base.
	Time      time.Duration
	PointerID ID
}

// Click detects taps in the form of ClickEvents.
type Click struct {
	// clickedAt is the timestamp at which
	// the last click occurred.
	clickedAt time.Duration
	// clicks is incremented if successive clicks
	// are performed within a fixed duration.
	clicks int
	// pressed tracks whether the pointer is pressed.
	pressed bool
	// pressedAt is the press timestamp of the current tap.
	pressedAt time.Duration
	start     f32.Point
	pid       ID
}

// ClickEvent represent a tap action.
type ClickEvent struct {
	Type     ClickType
	Position f32.Point
	// NumClicks records successive clicks occurring
	// within a short duration of each other.
	NumClicks int
}

type ClickType uint8

const (
	// Cancel is reported when the pointer stream is aborted by
	// the host.
	Cancel Type = iota
	// Press of a pointer.
	Press
	// Move of a pressed pointer.
	Move
	// Release of a pointer.
	Release
)

const (
	// TypeClick is reported when a tap is complete.
	TypeClick ClickType = iota
	// TypeLongClick is reported instead of TypeClick when
	// the pointer was held for at least LongPressDuration.
	TypeLongClick
	// TypeCancel is reported when the tap turned into a
	// drag or the pointer was cancelled.
	TypeCancel
)

const (
	// DoubleClickDuration bounds the gap between successive
	// clicks counted in ClickEvent.NumClicks.
	DoubleClickDuration = 200 * time.Millisecond
	// LongPressDuration is the minimum press length of a long click.
	LongPressDuration = 500 * time.Millisecond
	// TouchSlop is the distance in pixels a pointer may travel
	// before a tap is considered a drag.
	TouchSlop = 3
)

// Pressed returns whether a pointer is pressing.
func (c *Click) Pressed() bool {
	return c.pressed
}

// Update feeds e to the detector and returns the resulting
// click events, if any.
func (c *Click) Update(e Event) []ClickEvent {
	var events []ClickEvent
	switch e.Type {
	case Press:
		if c.pressed {
			break
		}
		c.pressed = true
		c.pid = e.PointerID
		c.start = e.Position
		c.pressedAt = e.Time
	case Move:
		if !c.pressed || c.pid != e.PointerID {
			break
		}
		if d := e.Position.Sub(c.start); d.X*d.X+d.Y*d.Y > TouchSlop*TouchSlop {
			c.pressed = false
			c.clicks = 0
			events = append(events, ClickEvent{Type: TypeCancel, Position: e.Position})
		}
	case Release:
		if !c.pressed || c.pid != e.PointerID {
			break
		}
		c.pressed = false
		if e.Time-c.pressedAt >= LongPressDuration {
			c.clicks = 0
			events = append(events, ClickEvent{Type: TypeLongClick, Position: e.Position, NumClicks: 1})
			break
		}
		if c.clicks > 0 && e.Time-c.clickedAt < DoubleClickDuration {
			c.clicks++
		} else {
			c.clicks = 1
		}
		c.clickedAt = e.Time
		events = append(events, ClickEvent{Type: TypeClick, Position: e.Position, NumClicks: c.clicks})
	case Cancel:
		wasPressed := c.pressed
		c.pressed = false
		c.clicks = 0
		if wasPressed {
			events = append(events, ClickEvent{Type: TypeCancel})
		}
	}
	return events
}

func (t Type) String() string {
	switch t {
	case Cancel:
		return "Cancel"
	case Press:
		return "Press"
	case Move:
		return "Move"
	case Release:
		return "Release"
	default:
		panic("unknown Type")
	}
}

func (ct ClickType) String() string {
	switch ct {
	case TypeClick:
		return "TypeClick"
	case TypeLongClick:
		return "TypeLongClick"
	case TypeCancel:
		return "TypeCancel"
	default:
		panic("invalid ClickType")
	}
}
