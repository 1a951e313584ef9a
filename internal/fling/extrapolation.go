// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using the least squares
// fit of a 2nd order polynomial.
type Extrapolation struct {
	// Index into samples.
	idx int
	// Circular buffer of samples.
	samples []sample
	// Pre-allocated cache for samples.
	cache [historySize]sample
}

type sample struct {
	t time.Duration
	v float32
}

// Estimate is the result of an Extrapolation.
type Estimate struct {
	// Velocity in units per second. A positive velocity
	// means increasing values.
	Velocity float32
	// Distance covered by the samples used for the estimate.
	Distance float32
}

type coefficients [degree + 1]float32

const (
	degree       = 2
	historySize  = 20
	maxAge       = 100 * time.Millisecond
	maxSampleGap = 40 * time.Millisecond
)

// Reset discards all samples.
func (e *Extrapolation) Reset() {
	e.idx = 0
	e.samples = e.cache[:0]
}

// Sample adds an absolute sample to the estimation.
func (e *Extrapolation) Sample(t time.Duration, val float32) {
	if e.samples == nil {
		e.samples = e.cache[:0]
	}
	s := sample{t: t, v: val}
	if e.idx == len(e.samples) && e.idx < cap(e.samples) {
		e.samples = append(e.samples, s)
	} else {
		e.samples[e.idx] = s
	}
	e.idx++
	if e.idx == cap(e.samples) {
		e.idx = 0
	}
}

// Estimate returns an estimate of the implied velocity and
// distance for the points sampled, or zero if the estimation method
// failed.
func (e *Extrapolation) Estimate() Estimate {
	if len(e.samples) == 0 {
		return Estimate{}
	}
	var (
		values [historySize]float32
		times  [historySize]float32
	)
	n := 0
	latest := e.get(0)
	t := latest.t
	// Walk backwards collecting samples.
	for i := 0; i < len(e.samples); i++ {
		p := e.get(-i)
		age := latest.t - p.t
		if age >= maxAge || t-p.t >= maxSampleGap {
			break
		}
		t = p.t
		values[n] = p.v - latest.v
		times[n] = float32((-age).Seconds())
		n++
	}
	coef, ok := polyFit(times[:n], values[:n])
	if !ok {
		return Estimate{}
	}
	return Estimate{
		Velocity: coef[1],
		Distance: values[0] - values[n-1],
	}
}

func (e *Extrapolation) get(i int) sample {
	idx := (e.idx + i - 1 + len(e.samples)) % len(e.samples)
	return e.samples[idx]
}

// polyFit computes the least squares polynomial fit for
// the set of points in X, Y by solving the normal equations
// (AᵀA)B = AᵀY. It returns false for insufficient or
// degenerate data.
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) {
		panic("X and Y lengths differ")
	}
	if len(X) <= degree {
		// Not enough points to fit a curve.
		return coefficients{}, false
	}
	const n = degree + 1
	// Augmented matrix of the normal equations, in float64 to
	// keep the squared time terms precise.
	var m [n][n + 1]float64
	for i, x := range X {
		var pow [2*degree + 1]float64
		pow[0] = 1
		for k := 1; k < len(pow); k++ {
			pow[k] = pow[k-1] * float64(x)
		}
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				m[r][c] += pow[r+c]
			}
			m[r][n] += pow[r] * float64(Y[i])
		}
	}
	// Gaussian elimination with partial pivoting.
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			// Degenerate data, no solution.
			return coefficients{}, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}
	var B coefficients
	for r := n - 1; r >= 0; r-- {
		v := m[r][n]
		for c := r + 1; c < n; c++ {
			v -= m[r][c] * float64(B[c])
		}
		B[r] = float32(v / m[r][r])
	}
	return B, true
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	const epsilon = 0.00001
	for i, v := range c {
		if d := c2[i] - v; d < -epsilon || d > epsilon {
			return false
		}
	}
	return true
}
