package rates

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/pkg/market"
)

// FxIndexRates projects FX index fixings from the spot rate and the two
// discount curves of the pair: the forward for delivery at maturity M is
//
//	fwd(B,C) = spot(B,C) * DF_B(M) / DF_C(M)
//
// Published fixings are read from the series for past fixing dates.
type FxIndexRates struct {
	index      market.FxIndex
	fixings    market.TimeSeries
	spot       float64
	baseDfs    DiscountFactors
	counterDfs DiscountFactors
}

// NewFxIndexRates binds an FX index to its spot rate and discount curves.
func NewFxIndexRates(index market.FxIndex, fixings market.TimeSeries, spot float64, baseDfs, counterDfs DiscountFactors) (*FxIndexRates, error) {
	if baseDfs.Currency() != index.Pair.Base || counterDfs.Currency() != index.Pair.Counter {
		return nil, fmt.Errorf("fx index %s: discount curves %s/%s do not match pair %s",
			index.Name(), baseDfs.Currency(), counterDfs.Currency(), index.Pair)
	}
	return &FxIndexRates{index: index, fixings: fixings, spot: spot, baseDfs: baseDfs, counterDfs: counterDfs}, nil
}

func (r *FxIndexRates) Index() market.FxIndex      { return r.index }
func (r *FxIndexRates) Fixings() market.TimeSeries { return r.fixings }
func (r *FxIndexRates) Spot() float64              { return r.spot }
func (r *FxIndexRates) ValuationDate() time.Time   { return r.baseDfs.ValuationDate() }

func (r *FxIndexRates) BaseDiscountFactors() DiscountFactors    { return r.baseDfs }
func (r *FxIndexRates) CounterDiscountFactors() DiscountFactors { return r.counterDfs }

// Rate returns the index rate converting one unit of the reference
// currency into the other pair currency, for the given fixing date.
func (r *FxIndexRates) Rate(reference market.Currency, fixing time.Time) (float64, error) {
	inverse, err := r.orientation(reference)
	if err != nil {
		return 0, err
	}
	val := r.ValuationDate()
	if !fixing.After(val) {
		if v, ok := r.fixings.Value(fixing); ok {
			if inverse {
				return 1 / v, nil
			}
			return v, nil
		}
		if fixing.Before(val) {
			return 0, fmt.Errorf("%w: %s on %s", ErrMissingFixing, r.index.Name(), fixing.Format("2006-01-02"))
		}
	}
	fwd := r.Forward(fixing)
	if inverse {
		return 1 / fwd, nil
	}
	return fwd, nil
}

// Forward returns the base/counter forward rate for delivery at the
// maturity implied by the fixing date.
func (r *FxIndexRates) Forward(fixing time.Time) float64 {
	maturity := r.index.MaturityFromFixing(fixing)
	return r.spot * r.baseDfs.DiscountFactor(maturity) / r.counterDfs.DiscountFactor(maturity)
}

// IsFixed reports whether the fixing has already been published, in which
// case the observed rate carries no curve sensitivity.
func (r *FxIndexRates) IsFixed(fixing time.Time) bool {
	if fixing.After(r.ValuationDate()) {
		return false
	}
	_, ok := r.fixings.Value(fixing)
	return ok
}

func (r *FxIndexRates) orientation(reference market.Currency) (inverse bool, err error) {
	switch reference {
	case r.index.Pair.Base:
		return false, nil
	case r.index.Pair.Counter:
		return true, nil
	}
	return false, fmt.Errorf("fx index %s: reference currency %s not in pair %s", r.index.Name(), reference, r.index.Pair)
}

// ReferenceCoefficient converts a sensitivity coefficient expressed against
// the rate seen from the reference currency into a coefficient against the
// base/counter forward. Observing from the counter side means observing the
// reciprocal rate: d(1/f)/df = -1/f^2.
func (r *FxIndexRates) ReferenceCoefficient(reference market.Currency, fixing time.Time, coeff float64) (float64, error) {
	inverse, err := r.orientation(reference)
	if err != nil {
		return 0, err
	}
	if !inverse {
		return coeff, nil
	}
	fwd := r.Forward(fixing)
	return -coeff / (fwd * fwd), nil
}
