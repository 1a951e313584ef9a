// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"image"
	"testing"
	"time"
)

func TestFit(t *testing.T) {
	X := []float32{-1, 0, 1}
	Y := []float32{2, 0, 2}

	got, ok := polyFit(X, Y)
	if !ok {
		t.Fatal("polyFit failed")
	}
	want := coefficients{0, 0, 2}
	if !got.approxEqual(want) {
		t.Fatalf("polyFit: got %v want %v", got, want)
	}
}

func TestFitInsufficient(t *testing.T) {
	if _, ok := polyFit([]float32{0, 1}, []float32{0, 1}); ok {
		t.Error("polyFit succeeded with two points")
	}
}

func TestEstimateVelocity(t *testing.T) {
	for _, tc := range []struct {
		label string
		speed float32 // units per second
	}{
		{"increasing", 1000},
		{"decreasing", -600},
	} {
		t.Run(tc.label, func(t *testing.T) {
			var e Extrapolation
			for i := 0; i < 6; i++ {
				ts := time.Duration(i) * 10 * time.Millisecond
				e.Sample(ts, tc.speed*float32(ts.Seconds()))
			}
			est := e.Estimate()
			if d := est.Velocity - tc.speed; d < -1 || d > 1 {
				t.Errorf("velocity: got %v want %v", est.Velocity, tc.speed)
			}
			if want := tc.speed * 0.05; est.Distance-want < -0.01 || est.Distance-want > 0.01 {
				t.Errorf("distance: got %v want %v", est.Distance, want)
			}
		})
	}
}

func TestEstimateIgnoresStaleSamples(t *testing.T) {
	var e Extrapolation
	e.Sample(0, 0)
	e.Sample(10*time.Millisecond, 100)
	e.Sample(20*time.Millisecond, 200)
	// A pause longer than maxSampleGap separates the hold from the fling.
	e.Sample(time.Second, 200)
	if est := e.Estimate(); est.Velocity != 0 {
		t.Errorf("held pointer reported velocity %v", est.Velocity)
	}
}

func TestSettle(t *testing.T) {
	var s Settle
	if s.Start(image.Pt(5, 0), image.Pt(5, 0), 100) {
		t.Fatal("Start reported movement for an empty settle")
	}
	if !s.Start(image.Pt(0, 0), image.Pt(100, 0), 100) {
		t.Fatal("Start failed")
	}
	now := time.Unix(0, 0)
	p, active := s.Tick(now)
	if !active || p != image.Pt(0, 0) {
		t.Fatalf("first tick: got %v, %v", p, active)
	}
	p, active = s.Tick(now.Add(s.duration / 2))
	if !active || p.X <= 0 || p.X >= 100 || p.Y != 0 {
		t.Errorf("halfway tick: got %v, %v", p, active)
	}
	p, active = s.Tick(now.Add(maxSettleDuration))
	if active || p != image.Pt(100, 0) {
		t.Errorf("final tick: got %v, %v", p, active)
	}
	if s.Active() {
		t.Error("settle still active after completion")
	}
}
