// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"image"
	"time"
)

// Settle moves a point linearly toward a target over a duration
// derived from the distance travelled.
type Settle struct {
	from, to image.Point
	// Initial time, zero until the first Tick.
	t0       time.Time
	duration time.Duration
	active   bool
}

const (
	baseSettleDuration = 256 * time.Millisecond
	maxSettleDuration  = 600 * time.Millisecond
)

// Start a settle from from to to. The span is the full travel range
// and scales the duration; a zero span uses the base duration.
// Start reports whether there is any distance to cover.
func (s *Settle) Start(from, to image.Point, span int) bool {
	*s = Settle{}
	if from == to {
		return false
	}
	d := to.Sub(from)
	dist := abs(d.X) + abs(d.Y)
	dur := baseSettleDuration
	if span > 0 {
		dur = time.Duration(float64(baseSettleDuration) * (1 + float64(dist)/float64(span)))
	}
	if dur > maxSettleDuration {
		dur = maxSettleDuration
	}
	s.from, s.to = from, to
	s.duration = dur
	s.active = true
	return true
}

// Active reports whether the settle is in progress.
func (s *Settle) Active() bool {
	return s.active
}

// Target returns the destination of the settle.
func (s *Settle) Target() image.Point {
	return s.to
}

// Stop the settle at its current position.
func (s *Settle) Stop() {
	s.active = false
}

// Tick returns the position at now and whether the settle is
// still in progress. The first Tick after Start fixes the
// starting time.
func (s *Settle) Tick(now time.Time) (image.Point, bool) {
	if !s.active {
		return s.to, false
	}
	if s.t0.IsZero() {
		s.t0 = now
	}
	elapsed := now.Sub(s.t0)
	if elapsed >= s.duration {
		s.active = false
		return s.to, false
	}
	f := float64(elapsed) / float64(s.duration)
	d := s.to.Sub(s.from)
	p := s.from.Add(image.Pt(int(float64(d.X)*f), int(float64(d.Y)*f)))
	return p, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
