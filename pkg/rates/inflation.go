package rates

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/market"
)

// PriceIndexValues projects price-index levels (CPI-style) from a curve of
// forward index values. The curve x-axis counts months from the valuation
// month; published months are always read from the fixing series.
type PriceIndexValues struct {
	index         market.PriceIndex
	valuationDate time.Time
	fixings       market.TimeSeries
	crv           *curve.InterpolatedCurve
}

// NewPriceIndexValues builds price-index values; the fixing series must
// contain at least one publication, the base fixing the forward curve is
// anchored on.
func NewPriceIndexValues(index market.PriceIndex, valuationDate time.Time, fixings market.TimeSeries, c *curve.InterpolatedCurve) (*PriceIndexValues, error) {
	if fixings.Empty() {
		return nil, fmt.Errorf("%w: price index %s requires a historical fixing series", ErrMissingFixing, index.Name())
	}
	return &PriceIndexValues{index: index, valuationDate: valuationDate, fixings: fixings, crv: c}, nil
}

func (v *PriceIndexValues) Index() market.PriceIndex        { return v.index }
func (v *PriceIndexValues) Fixings() market.TimeSeries      { return v.fixings }
func (v *PriceIndexValues) Curve() *curve.InterpolatedCurve { return v.crv }
func (v *PriceIndexValues) Name() curve.Name                { return v.crv.Name() }
func (v *PriceIndexValues) ParameterCount() int             { return v.crv.ParameterCount() }
func (v *PriceIndexValues) ValuationDate() time.Time        { return v.valuationDate }

// monthsFromValuation counts whole months between the valuation month and
// the reference month.
func (v *PriceIndexValues) monthsFromValuation(month time.Time) float64 {
	years := month.Year() - v.valuationDate.Year()
	months := int(month.Month()) - int(v.valuationDate.Month())
	return float64(12*years + months)
}

// Value returns the index level for the reference month: the published
// fixing when available, otherwise the curve's forward value.
func (v *PriceIndexValues) Value(month time.Time) (float64, error) {
	if fix, ok := v.fixings.Value(firstOfMonth(month)); ok {
		return fix, nil
	}
	m := v.monthsFromValuation(month)
	if m < 0 {
		return 0, fmt.Errorf("%w: %s for %s", ErrMissingFixing, v.index.Name(), month.Format("2006-01"))
	}
	return v.crv.Value(m), nil
}

// ParameterSensitivity projects an index-level coefficient onto the curve
// parameters. Index levels are the curve's native coordinate, so no space
// conversion applies. Published months carry no sensitivity.
func (v *PriceIndexValues) ParameterSensitivity(month time.Time, coeff float64) []float64 {
	if _, ok := v.fixings.Value(firstOfMonth(month)); ok {
		return make([]float64, v.crv.ParameterCount())
	}
	m := v.monthsFromValuation(month)
	if m < 0 {
		return make([]float64, v.crv.ParameterCount())
	}
	unit := v.crv.UnitParameterSensitivity(m)
	out := make([]float64, len(unit))
	for i, u := range unit {
		out[i] = coeff * u
	}
	return out
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
