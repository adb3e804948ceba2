// Package curve provides one-dimensional interpolated curves together with
// the unit parameter sensitivities needed to project point sensitivities
// onto curve node parameters.
package curve

import (
	"math"
	"sort"
)

// Interpolator evaluates a curve between nodes and reports the gradient of
// the interpolated value with respect to each node value. Extrapolation is
// flat on both sides.
type Interpolator interface {
	// Name identifies the scheme (used by curve definitions and storage).
	Name() string
	// Value interpolates at x over nodes (xs, ys); xs is strictly increasing.
	Value(xs, ys []float64, x float64) float64
	// Gradient returns d Value / d ys[i] for every node i.
	Gradient(xs, ys []float64, x float64) []float64
}

// bracket returns the node interval [i, i+1] containing x together with the
// interpolation weight on the right node, or a flat-extrapolation node index
// when x is outside the node range.
func bracket(xs []float64, x float64) (lo int, w float64, flat bool) {
	n := len(xs)
	if x <= xs[0] {
		return 0, 0, true
	}
	if x >= xs[n-1] {
		return n - 1, 0, true
	}
	hi := sort.SearchFloat64s(xs, x)
	lo = hi - 1
	w = (x - xs[lo]) / (xs[hi] - xs[lo])
	return lo, w, false
}

// LinearInterpolator interpolates node values linearly. The natural choice
// for zero-rate curves.
type LinearInterpolator struct{}

func (LinearInterpolator) Name() string { return "linear" }

func (LinearInterpolator) Value(xs, ys []float64, x float64) float64 {
	lo, w, flat := bracket(xs, x)
	if flat {
		return ys[lo]
	}
	return (1-w)*ys[lo] + w*ys[lo+1]
}

func (LinearInterpolator) Gradient(xs, ys []float64, x float64) []float64 {
	grad := make([]float64, len(ys))
	lo, w, flat := bracket(xs, x)
	if flat {
		grad[lo] = 1
		return grad
	}
	grad[lo] = 1 - w
	grad[lo+1] = w
	return grad
}

// LogLinearInterpolator interpolates the logarithm of node values linearly,
// equivalent to piecewise-constant forward rates when the values are
// discount factors. Node values must be strictly positive.
type LogLinearInterpolator struct{}

func (LogLinearInterpolator) Name() string { return "log-linear" }

func (LogLinearInterpolator) Value(xs, ys []float64, x float64) float64 {
	lo, w, flat := bracket(xs, x)
	if flat {
		return ys[lo]
	}
	return math.Exp((1-w)*math.Log(ys[lo]) + w*math.Log(ys[lo+1]))
}

func (LogLinearInterpolator) Gradient(xs, ys []float64, x float64) []float64 {
	grad := make([]float64, len(ys))
	lo, w, flat := bracket(xs, x)
	if flat {
		grad[lo] = 1
		return grad
	}
	v := math.Exp((1-w)*math.Log(ys[lo]) + w*math.Log(ys[lo+1]))
	grad[lo] = v * (1 - w) / ys[lo]
	grad[lo+1] = v * w / ys[lo+1]
	return grad
}

// InterpolatorByName resolves an interpolation scheme name. Supported:
// "linear", "log-linear".
func InterpolatorByName(name string) (Interpolator, bool) {
	switch name {
	case "linear":
		return LinearInterpolator{}, true
	case "log-linear":
		return LogLinearInterpolator{}, true
	}
	return nil, false
}
