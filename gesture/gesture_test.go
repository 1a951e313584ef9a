// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"testing"
	"time"

	"gioui.org/f32"
)

func TestClicks(t *testing.T) {
	for _, tc := range []struct {
		label  string
		events []Event
		clicks []int // number of combined clicks per click (single, double...)
	}{
		{
			label:  "single click",
			events: tapEvents(200 * time.Millisecond),
			clicks: []int{1},
		},
		{
			label: "double click",
			events: tapEvents(
				100*time.Millisecond,
				100*time.Millisecond+DoubleClickDuration-1),
			clicks: []int{1, 2},
		},
		{
			label: "two single clicks",
			events: tapEvents(
				100*time.Millisecond,
				100*time.Millisecond+DoubleClickDuration+1),
			clicks: []int{1, 1},
		},
	} {
		t.Run(tc.label, func(t *testing.T) {
			var click Click
			var events []ClickEvent
			for _, e := range tc.events {
				events = append(events, click.Update(e)...)
			}
			clicks := filterClicks(events, TypeClick)
			if got, want := len(clicks), len(tc.clicks); got != want {
				t.Fatalf("got %d clicks, expected %d", got, want)
			}
			for i, click := range clicks {
				if got, want := click.NumClicks, tc.clicks[i]; got != want {
					t.Errorf("got %d combined clicks, expected %d", got, want)
				}
			}
		})
	}
}

func TestClickBecomesDrag(t *testing.T) {
	var click Click
	click.Update(Event{Type: Press})
	events := click.Update(Event{Type: Move, Position: f32.Pt(TouchSlop+1, 0), Time: time.Millisecond})
	if len(events) != 1 || events[0].Type != TypeCancel {
		t.Fatalf("expected a single TypeCancel, got %v", events)
	}
	events = click.Update(Event{Type: Release, Time: 2 * time.Millisecond})
	if len(events) != 0 {
		t.Errorf("release after drag reported %v", events)
	}
}

func TestLongClick(t *testing.T) {
	var click Click
	click.Update(Event{Type: Press})
	events := click.Update(Event{Type: Release, Time: LongPressDuration})
	if got := filterClicks(events, TypeLongClick); len(got) != 1 {
		t.Fatalf("expected a long click, got %v", events)
	}
	if got := filterClicks(events, TypeClick); len(got) != 0 {
		t.Errorf("long press also reported a click: %v", got)
	}
}

func TestCancelResetsTap(t *testing.T) {
	var click Click
	click.Update(Event{Type: Press})
	events := click.Update(Event{Type: Cancel})
	if len(events) != 1 || events[0].Type != TypeCancel {
		t.Fatalf("expected TypeCancel, got %v", events)
	}
	if click.Pressed() {
		t.Error("click still pressed after cancel")
	}
}

func tapEvents(times ...time.Duration) []Event {
	events := make([]Event, 0, 2*len(times))
	for _, t := range times {
		press := Event{Type: Press, Time: t - time.Millisecond}
		release := press
		release.Type = Release
		release.Time = t
		events = append(events, press, release)
	}
	return events
}

func filterClicks(events []ClickEvent, typ ClickType) []ClickEvent {
	var clicks []ClickEvent
	for _, ev := range events {
		if ev.Type == typ {
			clicks = append(clicks, ev)
		}
	}
	return clicks
}
