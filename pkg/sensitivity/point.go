// Package sensitivity implements the sensitivity propagation engine: the
// point-sensitivity model, the FX-index resolver, and the projection of
// point sensitivities onto curve parameters.
package sensitivity

import (
	"time"

	"github.com/quantfoundry/curverisk/pkg/market"
)

// PointSensitivity is one of a closed set of variants: a derivative of a
// computed value with respect to a single market observation, before
// projection onto curve parameters. The set is closed by the unexported
// marker method, so dispatch over variants is exhaustive by construction
// and an "unknown kind" cannot arise.
//
// Coefficients for the zero-rate variant are expressed in yield space
// (dPV/dz with DF = exp(-z*t)); forward-rate variants carry dPV/dRate.
type PointSensitivity interface {
	// SettlementCurrency is the currency the sensitivity value is
	// expressed in; it may differ from the curve's native currency.
	SettlementCurrency() market.Currency
	// Value is the sensitivity coefficient.
	Value() float64

	pointSensitivity()
}

// ZeroRateSensitivity is a sensitivity to the zero rate of one currency's
// discount curve observed at a date.
type ZeroRateSensitivity struct {
	CurveCurrency market.Currency
	Date          time.Time
	Settlement    market.Currency
	Sensitivity   float64
}

// NewZeroRateSensitivity builds a zero-rate sensitivity settled in the
// curve currency.
func NewZeroRateSensitivity(curveCcy market.Currency, date time.Time, value float64) ZeroRateSensitivity {
	return ZeroRateSensitivity{CurveCurrency: curveCcy, Date: date, Settlement: curveCcy, Sensitivity: value}
}

func (s ZeroRateSensitivity) SettlementCurrency() market.Currency { return s.Settlement }
func (s ZeroRateSensitivity) Value() float64                      { return s.Sensitivity }
func (s ZeroRateSensitivity) pointSensitivity()                   {}

// WithSettlement returns the sensitivity re-expressed in another currency.
func (s ZeroRateSensitivity) WithSettlement(ccy market.Currency) ZeroRateSensitivity {
	s.Settlement = ccy
	return s
}

// IborRateSensitivity is a sensitivity to a term-index forward rate for a
// fixing date; the accrual period derives from the index conventions.
type IborRateSensitivity struct {
	Index       market.IborIndex
	FixingDate  time.Time
	Settlement  market.Currency
	Sensitivity float64
}

// NewIborRateSensitivity builds an Ibor sensitivity settled in the index
// currency.
func NewIborRateSensitivity(index market.IborIndex, fixing time.Time, value float64) IborRateSensitivity {
	return IborRateSensitivity{Index: index, FixingDate: fixing, Settlement: index.Currency(), Sensitivity: value}
}

func (s IborRateSensitivity) SettlementCurrency() market.Currency { return s.Settlement }
func (s IborRateSensitivity) Value() float64                      { return s.Sensitivity }
func (s IborRateSensitivity) pointSensitivity()                   {}

// OvernightRateSensitivity is a sensitivity to a compounded overnight rate
// over an explicit [Start, End) accrual period.
type OvernightRateSensitivity struct {
	Index       market.OvernightIndex
	Start       time.Time
	End         time.Time
	Settlement  market.Currency
	Sensitivity float64
}

// NewOvernightRateSensitivity builds an overnight sensitivity settled in
// the index currency.
func NewOvernightRateSensitivity(index market.OvernightIndex, start, end time.Time, value float64) OvernightRateSensitivity {
	return OvernightRateSensitivity{Index: index, Start: start, End: end, Settlement: index.Currency(), Sensitivity: value}
}

func (s OvernightRateSensitivity) SettlementCurrency() market.Currency { return s.Settlement }
func (s OvernightRateSensitivity) Value() float64                      { return s.Sensitivity }
func (s OvernightRateSensitivity) pointSensitivity()                   {}

// FxIndexSensitivity is a sensitivity to an FX index fixing, observed from
// the reference currency's side of the pair. It never survives resolution:
// the resolver rewrites it into zero-rate sensitivities on the pair's two
// discount curves.
type FxIndexSensitivity struct {
	Index       market.FxIndex
	Reference   market.Currency
	FixingDate  time.Time
	Settlement  market.Currency
	Sensitivity float64
}

// NewFxIndexSensitivity builds an FX-index sensitivity settled in the
// non-reference currency of the pair, the currency the observed rate pays
// in.
func NewFxIndexSensitivity(index market.FxIndex, reference market.Currency, fixing time.Time, value float64) FxIndexSensitivity {
	settlement := index.Pair.Counter
	if reference == index.Pair.Counter {
		settlement = index.Pair.Base
	}
	return FxIndexSensitivity{Index: index, Reference: reference, FixingDate: fixing, Settlement: settlement, Sensitivity: value}
}

func (s FxIndexSensitivity) SettlementCurrency() market.Currency { return s.Settlement }
func (s FxIndexSensitivity) Value() float64                      { return s.Sensitivity }
func (s FxIndexSensitivity) pointSensitivity()                   {}

// InflationRateSensitivity is a sensitivity to a price-index level for a
// reference month.
type InflationRateSensitivity struct {
	Index       market.PriceIndex
	Month       time.Time
	Settlement  market.Currency
	Sensitivity float64
}

// NewInflationRateSensitivity builds an inflation sensitivity settled in
// the index currency.
func NewInflationRateSensitivity(index market.PriceIndex, month time.Time, value float64) InflationRateSensitivity {
	return InflationRateSensitivity{Index: index, Month: month, Settlement: index.Currency(), Sensitivity: value}
}

func (s InflationRateSensitivity) SettlementCurrency() market.Currency { return s.Settlement }
func (s InflationRateSensitivity) Value() float64                      { return s.Sensitivity }
func (s InflationRateSensitivity) pointSensitivity()                   {}
