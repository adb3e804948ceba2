// Package rates binds curves to market observables: discount factors per
// currency and forward rates per index. Each family owns the derivative
// chain from its own parameterization back to curve node parameters, so
// the aggregation layer never needs to know how a curve is parameterized.
package rates

import (
	"fmt"
	"math"
	"time"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
)

// ErrMissingFixing is returned when a required historical fixing is absent.
var ErrMissingFixing = fmt.Errorf("historical fixing not available")

// DiscountFactors provides discount factors for one currency and converts
// yield-space (continuously-compounded zero rate) sensitivities into the
// underlying curve's parameter space.
//
// Point sensitivity coefficients for this family are expressed in yield
// space: dPV/dz(t) where DF(t) = exp(-z*t). A pricer holding dPV/dDF
// multiplies by DiscountFactorYieldDerivative to obtain the yield-space
// coefficient; ParameterSensitivity then applies the scheme-specific chain
// rule down to node parameters.
type DiscountFactors interface {
	Currency() market.Currency
	ValuationDate() time.Time
	Name() curve.Name
	ParameterCount() int
	Curve() *curve.InterpolatedCurve

	// RelativeTime converts a date to a year fraction from the valuation
	// date under the curve's day count. Negative for past dates.
	RelativeTime(date time.Time) float64
	// DiscountFactor at the date; 1.0 at or before the valuation date.
	DiscountFactor(date time.Time) float64
	// ZeroRate is the continuously-compounded zero rate at the date.
	ZeroRate(date time.Time) float64
	// DiscountFactorYieldDerivative returns dDF/dz at the date, -t*DF(t);
	// zero at or before the valuation date.
	DiscountFactorYieldDerivative(date time.Time) float64
	// ParameterSensitivity projects a yield-space coefficient at the date
	// onto the curve parameters.
	ParameterSensitivity(date time.Time, yieldCoeff float64) []float64
	// WithCurve rebinds the same currency and valuation date to a new
	// curve, preserving the parameterization scheme.
	WithCurve(c *curve.InterpolatedCurve) DiscountFactors
}

// ZeroRateDiscountFactors derives discount factors from a curve whose
// native parameters are continuously-compounded zero rates.
type ZeroRateDiscountFactors struct {
	currency      market.Currency
	valuationDate time.Time
	crv           *curve.InterpolatedCurve
}

// NewZeroRateDiscountFactors binds a zero-rate curve to a currency.
func NewZeroRateDiscountFactors(ccy market.Currency, valuationDate time.Time, c *curve.InterpolatedCurve) *ZeroRateDiscountFactors {
	return &ZeroRateDiscountFactors{currency: ccy, valuationDate: valuationDate, crv: c}
}

func (d *ZeroRateDiscountFactors) Currency() market.Currency       { return d.currency }
func (d *ZeroRateDiscountFactors) ValuationDate() time.Time        { return d.valuationDate }
func (d *ZeroRateDiscountFactors) Name() curve.Name                { return d.crv.Name() }
func (d *ZeroRateDiscountFactors) ParameterCount() int             { return d.crv.ParameterCount() }
func (d *ZeroRateDiscountFactors) Curve() *curve.InterpolatedCurve { return d.crv }

func (d *ZeroRateDiscountFactors) RelativeTime(date time.Time) float64 {
	return daycount.YearFraction(d.valuationDate, date, d.crv.DayCount())
}

func (d *ZeroRateDiscountFactors) DiscountFactor(date time.Time) float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return 1.0
	}
	return math.Exp(-d.crv.Value(t) * t)
}

func (d *ZeroRateDiscountFactors) ZeroRate(date time.Time) float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return d.crv.Value(0)
	}
	return d.crv.Value(t)
}

func (d *ZeroRateDiscountFactors) DiscountFactorYieldDerivative(date time.Time) float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return 0
	}
	return -t * d.DiscountFactor(date)
}

func (d *ZeroRateDiscountFactors) ParameterSensitivity(date time.Time, yieldCoeff float64) []float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return make([]float64, d.crv.ParameterCount())
	}
	unit := d.crv.UnitParameterSensitivity(t)
	out := make([]float64, len(unit))
	for i, u := range unit {
		out[i] = yieldCoeff * u
	}
	return out
}

func (d *ZeroRateDiscountFactors) WithCurve(c *curve.InterpolatedCurve) DiscountFactors {
	return NewZeroRateDiscountFactors(d.currency, d.valuationDate, c)
}

// SimpleDiscountFactors derives discount factors from a curve whose native
// parameters are the discount factors themselves (log-linear nodes). The
// yield-space chain rule differs from the zero-rate case: dz/dDF at time t
// is -1/(t*DF), applied before the curve's unit sensitivities.
type SimpleDiscountFactors struct {
	currency      market.Currency
	valuationDate time.Time
	crv           *curve.InterpolatedCurve
}

// NewSimpleDiscountFactors binds a discount-factor curve to a currency.
func NewSimpleDiscountFactors(ccy market.Currency, valuationDate time.Time, c *curve.InterpolatedCurve) *SimpleDiscountFactors {
	return &SimpleDiscountFactors{currency: ccy, valuationDate: valuationDate, crv: c}
}

func (d *SimpleDiscountFactors) Currency() market.Currency       { return d.currency }
func (d *SimpleDiscountFactors) ValuationDate() time.Time        { return d.valuationDate }
func (d *SimpleDiscountFactors) Name() curve.Name                { return d.crv.Name() }
func (d *SimpleDiscountFactors) ParameterCount() int             { return d.crv.ParameterCount() }
func (d *SimpleDiscountFactors) Curve() *curve.InterpolatedCurve { return d.crv }

func (d *SimpleDiscountFactors) RelativeTime(date time.Time) float64 {
	return daycount.YearFraction(d.valuationDate, date, d.crv.DayCount())
}

func (d *SimpleDiscountFactors) DiscountFactor(date time.Time) float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return 1.0
	}
	return d.crv.Value(t)
}

func (d *SimpleDiscountFactors) ZeroRate(date time.Time) float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return 0
	}
	return -math.Log(d.crv.Value(t)) / t
}

func (d *SimpleDiscountFactors) DiscountFactorYieldDerivative(date time.Time) float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return 0
	}
	return -t * d.crv.Value(t)
}

func (d *SimpleDiscountFactors) ParameterSensitivity(date time.Time, yieldCoeff float64) []float64 {
	t := d.RelativeTime(date)
	if t <= 0 {
		return make([]float64, d.crv.ParameterCount())
	}
	// dPV/dp = dPV/dz * dz/dDF * dDF/dp, with dz/dDF = -1/(t*DF).
	dzdDF := -1.0 / (t * d.crv.Value(t))
	unit := d.crv.UnitParameterSensitivity(t)
	out := make([]float64, len(unit))
	for i, u := range unit {
		out[i] = yieldCoeff * dzdDF * u
	}
	return out
}

func (d *SimpleDiscountFactors) WithCurve(c *curve.InterpolatedCurve) DiscountFactors {
	return NewSimpleDiscountFactors(d.currency, d.valuationDate, c)
}
