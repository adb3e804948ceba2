package sensitivity

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/quantfoundry/curverisk/pkg/curve"
)

// Aggregator groups resolved point sensitivities by (curve, settlement
// currency) and projects each group onto the owning curve's parameter
// space through the chain rule. Vectors are never merged across curves,
// even when parameter counts coincide.
type Aggregator struct{}

// NewAggregator builds an aggregator. Callers inject the instance they
// want; there is no process-wide default.
func NewAggregator() *Aggregator { return &Aggregator{} }

// Aggregate projects the sensitivities onto curve parameters. The input
// must already be resolved: an FX-index variant is an error, not a silent
// drop. The accumulator is local to the call; concurrent calls against the
// same provider are safe.
func (a *Aggregator) Aggregate(sensitivities []PointSensitivity, provider Provider) (ParameterSensitivities, error) {
	acc := make(map[Key][]float64)

	accumulate := func(key Key, vec []float64) error {
		if existing, ok := acc[key]; ok {
			if len(existing) != len(vec) {
				return fmt.Errorf("curve %s: %w: have %d, want %d",
					key.CurveName, curve.ErrParameterLength, len(vec), len(existing))
			}
			floats.Add(existing, vec)
			return nil
		}
		acc[key] = vec
		return nil
	}

	for _, s := range sensitivities {
		var (
			name curve.Name
			vec  []float64
		)
		switch s := s.(type) {
		case ZeroRateSensitivity:
			dfs, err := provider.DiscountFactorsFor(s.CurveCurrency)
			if err != nil {
				return ParameterSensitivities{}, err
			}
			name = dfs.Name()
			vec = dfs.ParameterSensitivity(s.Date, s.Sensitivity)
		case IborRateSensitivity:
			ibor, err := provider.IborRatesFor(s.Index)
			if err != nil {
				return ParameterSensitivities{}, err
			}
			name = ibor.Name()
			vec = ibor.ParameterSensitivity(s.FixingDate, s.Sensitivity)
		case OvernightRateSensitivity:
			on, err := provider.OvernightRatesFor(s.Index)
			if err != nil {
				return ParameterSensitivities{}, err
			}
			name = on.Name()
			vec = on.ParameterSensitivity(s.Start, s.End, s.Sensitivity)
		case InflationRateSensitivity:
			piv, err := provider.PriceIndexValuesFor(s.Index)
			if err != nil {
				return ParameterSensitivities{}, err
			}
			name = piv.Name()
			vec = piv.ParameterSensitivity(s.Month, s.Sensitivity)
		case FxIndexSensitivity:
			return ParameterSensitivities{}, fmt.Errorf("%w: %s fixing %s",
				ErrUnresolvedSensitivity, s.Index.Name(), s.FixingDate.Format("2006-01-02"))
		}
		key := Key{CurveName: name, Currency: s.SettlementCurrency()}
		if err := accumulate(key, vec); err != nil {
			return ParameterSensitivities{}, err
		}
	}

	items := make([]ParameterSensitivity, 0, len(acc))
	for key, vec := range acc {
		items = append(items, ParameterSensitivity{CurveName: key.CurveName, Currency: key.Currency, Sensitivity: vec})
	}
	return NewParameterSensitivities(items...)
}
