package curve

import (
	"fmt"

	"github.com/quantfoundry/curverisk/pkg/daycount"
)

// Name uniquely identifies a curve within a provider. Two distinct curve
// instances never share parameter indices.
type Name string

// ErrParameterLength is returned when a parameter vector does not match a
// curve's node count.
var ErrParameterLength = fmt.Errorf("parameter vector length mismatch")

// InterpolatedCurve is an immutable one-dimensional curve defined by node
// (time, value) pairs and an interpolation scheme. Times are year fractions
// from the valuation date under the curve's day count.
type InterpolatedCurve struct {
	name     Name
	times    []float64
	values   []float64
	interp   Interpolator
	dayCount daycount.Convention
	calib    *CalibrationInfo
}

// NewInterpolatedCurve validates nodes and builds a curve.
func NewInterpolatedCurve(name Name, times, values []float64, interp Interpolator, dc daycount.Convention) (*InterpolatedCurve, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("curve %s: no nodes", name)
	}
	if len(times) != len(values) {
		return nil, fmt.Errorf("curve %s: %w: %d times, %d values", name, ErrParameterLength, len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("curve %s: node times must be strictly increasing", name)
		}
	}
	if interp == nil {
		return nil, fmt.Errorf("curve %s: nil interpolator", name)
	}
	return &InterpolatedCurve{
		name:     name,
		times:    append([]float64(nil), times...),
		values:   append([]float64(nil), values...),
		interp:   interp,
		dayCount: dc,
	}, nil
}

func (c *InterpolatedCurve) Name() Name                    { return c.name }
func (c *InterpolatedCurve) ParameterCount() int           { return len(c.values) }
func (c *InterpolatedCurve) Parameter(i int) float64       { return c.values[i] }
func (c *InterpolatedCurve) NodeTime(i int) float64        { return c.times[i] }
func (c *InterpolatedCurve) DayCount() daycount.Convention { return c.dayCount }
func (c *InterpolatedCurve) Interpolator() Interpolator    { return c.interp }

// Parameters returns a copy of the node values.
func (c *InterpolatedCurve) Parameters() []float64 {
	return append([]float64(nil), c.values...)
}

// Value evaluates the curve at time t.
func (c *InterpolatedCurve) Value(t float64) float64 {
	return c.interp.Value(c.times, c.values, t)
}

// UnitParameterSensitivity returns the derivative of Value(t) with respect
// to each node parameter. Index i corresponds to Parameter(i).
func (c *InterpolatedCurve) UnitParameterSensitivity(t float64) []float64 {
	return c.interp.Gradient(c.times, c.values, t)
}

// WithParameters returns a copy of the curve with new node values on the
// same node times. Calibration metadata is not carried over.
func (c *InterpolatedCurve) WithParameters(values []float64) (*InterpolatedCurve, error) {
	if len(values) != len(c.values) {
		return nil, fmt.Errorf("curve %s: %w: have %d, want %d", c.name, ErrParameterLength, len(values), len(c.values))
	}
	return &InterpolatedCurve{
		name:     c.name,
		times:    c.times,
		values:   append([]float64(nil), values...),
		interp:   c.interp,
		dayCount: c.dayCount,
	}, nil
}

// WithParameter returns a copy with a single node value replaced. Used by
// finite-difference checks and calibration diagnostics.
func (c *InterpolatedCurve) WithParameter(i int, value float64) (*InterpolatedCurve, error) {
	if i < 0 || i >= len(c.values) {
		return nil, fmt.Errorf("curve %s: parameter index %d out of range", c.name, i)
	}
	values := append([]float64(nil), c.values...)
	values[i] = value
	return c.WithParameters(values)
}

// WithCalibrationInfo returns a copy annotated with calibration metadata.
func (c *InterpolatedCurve) WithCalibrationInfo(info *CalibrationInfo) *InterpolatedCurve {
	copied := *c
	copied.calib = info
	return &copied
}

// CalibrationInfo returns the attached calibration metadata, or nil when
// the curve was not produced by a calibration run.
func (c *InterpolatedCurve) CalibrationInfo() *CalibrationInfo { return c.calib }
