package sensitivity

import (
	"fmt"
)

// Resolver rewrites FX-index point sensitivities into equivalent pairs of
// zero-rate sensitivities on the pair's discount curves. FX index values
// are themselves derived from discount factor ratios, so the rewrite is the
// exact analytic derivative of the forward-FX formula, not an
// approximation.
type Resolver struct{}

// NewResolver builds a resolver. Callers inject the instance they want;
// there is no process-wide default.
func NewResolver() *Resolver { return &Resolver{} }

// Resolve returns the sensitivities with every FX-index variant replaced by
// its zero-rate decomposition. All other variants pass through unchanged.
//
// For a sensitivity with coefficient c to the forward fx(B,C) observed for
// fixing F with delivery M:
//
//	fwd = spot(B,C) * DF_B(M) / DF_C(M)
//	dPV/dDF_B = +c * spot / DF_C(M)
//	dPV/dDF_C = -c * spot * DF_B(M) / DF_C(M)^2
//
// each converted to yield space through the owning curve family before
// being emitted in the original settlement currency. Fixings already
// published carry no curve sensitivity and resolve to nothing.
func (r *Resolver) Resolve(sensitivities []PointSensitivity, provider Provider) ([]PointSensitivity, error) {
	resolved := make([]PointSensitivity, 0, len(sensitivities))
	for _, s := range sensitivities {
		fx, ok := s.(FxIndexSensitivity)
		if !ok {
			resolved = append(resolved, s)
			continue
		}
		pair, err := r.resolveFxIndex(fx, provider)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, pair...)
	}
	return resolved, nil
}

func (r *Resolver) resolveFxIndex(s FxIndexSensitivity, provider Provider) ([]PointSensitivity, error) {
	fxRates, err := provider.FxIndexRatesFor(s.Index)
	if err != nil {
		return nil, err
	}
	if fxRates.IsFixed(s.FixingDate) {
		return nil, nil
	}

	// Re-express the coefficient against the base/counter forward when the
	// rate was observed from the counter side.
	coeff, err := fxRates.ReferenceCoefficient(s.Reference, s.FixingDate, s.Sensitivity)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.Index.Name(), err)
	}

	maturity := s.Index.MaturityFromFixing(s.FixingDate)
	baseDfs := fxRates.BaseDiscountFactors()
	counterDfs := fxRates.CounterDiscountFactors()
	spot := fxRates.Spot()
	dfBase := baseDfs.DiscountFactor(maturity)
	dfCounter := counterDfs.DiscountFactor(maturity)

	dPVdDfBase := coeff * spot / dfCounter
	dPVdDfCounter := -coeff * spot * dfBase / (dfCounter * dfCounter)

	base := NewZeroRateSensitivity(s.Index.Pair.Base, maturity,
		dPVdDfBase*baseDfs.DiscountFactorYieldDerivative(maturity)).WithSettlement(s.Settlement)
	counter := NewZeroRateSensitivity(s.Index.Pair.Counter, maturity,
		dPVdDfCounter*counterDfs.DiscountFactorYieldDerivative(maturity)).WithSettlement(s.Settlement)
	return []PointSensitivity{base, counter}, nil
}
