package rates

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
)

// IborIndexRates projects forward rates for a term index from a
// discount-style forward curve, falling back to historical fixings for
// past fixing dates.
type IborIndexRates struct {
	index   market.IborIndex
	fixings market.TimeSeries
	dfs     DiscountFactors
}

// NewIborIndexRates binds an index to its forward curve and fixing series.
func NewIborIndexRates(index market.IborIndex, fixings market.TimeSeries, dfs DiscountFactors) *IborIndexRates {
	return &IborIndexRates{index: index, fixings: fixings, dfs: dfs}
}

func (r *IborIndexRates) Index() market.IborIndex          { return r.index }
func (r *IborIndexRates) Fixings() market.TimeSeries       { return r.fixings }
func (r *IborIndexRates) DiscountFactors() DiscountFactors { return r.dfs }
func (r *IborIndexRates) Name() curve.Name                 { return r.dfs.Name() }
func (r *IborIndexRates) ParameterCount() int              { return r.dfs.ParameterCount() }

// Rate returns the index rate for a fixing date: the historical fixing for
// past dates (the forward estimate on the valuation date when no fixing has
// been published yet), otherwise the simply-compounded forward implied by
// the curve over the index accrual period.
func (r *IborIndexRates) Rate(fixing time.Time) (float64, error) {
	val := r.dfs.ValuationDate()
	if !fixing.After(val) {
		if v, ok := r.fixings.Value(fixing); ok {
			return v, nil
		}
		if fixing.Before(val) {
			return 0, fmt.Errorf("%w: %s on %s", ErrMissingFixing, r.index.Name(), fixing.Format("2006-01-02"))
		}
	}
	return r.forward(fixing), nil
}

func (r *IborIndexRates) forward(fixing time.Time) float64 {
	start := r.index.EffectiveFromFixing(fixing)
	end := r.index.MaturityFromEffective(start)
	accrual := daycount.YearFraction(start, end, r.index.DayCount)
	return (r.dfs.DiscountFactor(start)/r.dfs.DiscountFactor(end) - 1) / accrual
}

// ParameterSensitivity projects a forward-rate coefficient for the fixing
// onto the forward curve's parameters using the analytic derivatives of
// Fwd = (DF(start)/DF(end) - 1)/accrual:
//
//	dFwd/dDF(start) = 1/(DF(end)*accrual)
//	dFwd/dDF(end)   = -DF(start)/(DF(end)^2*accrual)
//
// Each discount-factor derivative is converted to yield space before the
// curve family applies its own parameter chain. Fixed (historical) rates
// carry no sensitivity.
func (r *IborIndexRates) ParameterSensitivity(fixing time.Time, coeff float64) []float64 {
	val := r.dfs.ValuationDate()
	if !fixing.After(val) {
		if _, ok := r.fixings.Value(fixing); ok || fixing.Before(val) {
			return make([]float64, r.dfs.ParameterCount())
		}
	}
	start := r.index.EffectiveFromFixing(fixing)
	end := r.index.MaturityFromEffective(start)
	accrual := daycount.YearFraction(start, end, r.index.DayCount)
	return forwardParameterSensitivity(r.dfs, start, end, accrual, coeff)
}

// forwardParameterSensitivity applies the simply-compounded forward chain
// rule shared by the Ibor and overnight families.
func forwardParameterSensitivity(dfs DiscountFactors, start, end time.Time, accrual, coeff float64) []float64 {
	dfStart := dfs.DiscountFactor(start)
	dfEnd := dfs.DiscountFactor(end)
	dFwdStart := 1 / (dfEnd * accrual)
	dFwdEnd := -dfStart / (dfEnd * dfEnd * accrual)

	sens := dfs.ParameterSensitivity(start, coeff*dFwdStart*dfs.DiscountFactorYieldDerivative(start))
	endSens := dfs.ParameterSensitivity(end, coeff*dFwdEnd*dfs.DiscountFactorYieldDerivative(end))
	floats.Add(sens, endSens)
	return sens
}

// OvernightIndexRates projects forward rates for an overnight index. The
// accrual period of a single fixing spans one day from the fixing's
// effective date.
type OvernightIndexRates struct {
	index   market.OvernightIndex
	fixings market.TimeSeries
	dfs     DiscountFactors
}

// NewOvernightIndexRates binds an index to its forward curve and fixings.
func NewOvernightIndexRates(index market.OvernightIndex, fixings market.TimeSeries, dfs DiscountFactors) *OvernightIndexRates {
	return &OvernightIndexRates{index: index, fixings: fixings, dfs: dfs}
}

func (r *OvernightIndexRates) Index() market.OvernightIndex     { return r.index }
func (r *OvernightIndexRates) Fixings() market.TimeSeries       { return r.fixings }
func (r *OvernightIndexRates) DiscountFactors() DiscountFactors { return r.dfs }
func (r *OvernightIndexRates) Name() curve.Name                 { return r.dfs.Name() }
func (r *OvernightIndexRates) ParameterCount() int              { return r.dfs.ParameterCount() }

// Rate returns the overnight rate fixing on the given date, forward-implied
// when not yet published.
func (r *OvernightIndexRates) Rate(fixing time.Time) (float64, error) {
	val := r.dfs.ValuationDate()
	if !fixing.After(val) {
		if v, ok := r.fixings.Value(fixing); ok {
			return v, nil
		}
		if fixing.Before(val) {
			return 0, fmt.Errorf("%w: %s on %s", ErrMissingFixing, r.index.Name(), fixing.Format("2006-01-02"))
		}
	}
	start := r.index.EffectiveFromFixing(fixing)
	end := r.index.MaturityFromEffective(start)
	accrual := daycount.YearFraction(start, end, r.index.DayCount)
	return (r.dfs.DiscountFactor(start)/r.dfs.DiscountFactor(end) - 1) / accrual, nil
}

// PeriodRate returns the simply-compounded rate implied by the curve over
// an arbitrary [start, end) period, as used by OIS accrual periods.
func (r *OvernightIndexRates) PeriodRate(start, end time.Time) float64 {
	accrual := daycount.YearFraction(start, end, r.index.DayCount)
	return (r.dfs.DiscountFactor(start)/r.dfs.DiscountFactor(end) - 1) / accrual
}

// ParameterSensitivity projects a period-rate coefficient onto the forward
// curve parameters; see IborIndexRates.ParameterSensitivity for the chain.
func (r *OvernightIndexRates) ParameterSensitivity(start, end time.Time, coeff float64) []float64 {
	if !end.After(r.dfs.ValuationDate()) {
		return make([]float64, r.dfs.ParameterCount())
	}
	accrual := daycount.YearFraction(start, end, r.index.DayCount)
	return forwardParameterSensitivity(r.dfs, start, end, accrual, coeff)
}
