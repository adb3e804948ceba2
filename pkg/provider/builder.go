package provider

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/rates"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// CurveKind selects the native parameterization of a discount-style curve.
type CurveKind string

const (
	// ZeroRateKind curves store continuously-compounded zero rates.
	ZeroRateKind CurveKind = "zero-rate"
	// DiscountFactorKind curves store discount factors directly.
	DiscountFactorKind CurveKind = "discount-factor"
)

func newDiscountFactors(kind CurveKind, ccy market.Currency, valuationDate time.Time, c *curve.InterpolatedCurve) (rates.DiscountFactors, error) {
	switch kind {
	case ZeroRateKind, "":
		return rates.NewZeroRateDiscountFactors(ccy, valuationDate, c), nil
	case DiscountFactorKind:
		return rates.NewSimpleDiscountFactors(ccy, valuationDate, c), nil
	}
	return nil, fmt.Errorf("unknown curve kind %q", kind)
}

// Builder assembles a RatesProvider. The builder is mutable; the built
// provider is immutable and safe to share.
type Builder struct {
	valuationDate time.Time
	dayCount      daycount.Convention

	discount   map[market.Currency]rates.DiscountFactors
	iborCurves map[market.IborIndex]rates.DiscountFactors
	onCurves   map[market.OvernightIndex]rates.DiscountFactors
	priceCrvs  map[market.PriceIndex]*curve.InterpolatedCurve
	fxIndices  []market.FxIndex
	fxRates    map[market.FxPair]float64
	timeSeries map[string]market.TimeSeries

	resolver   *sensitivity.Resolver
	aggregator *sensitivity.Aggregator

	err error
}

// NewBuilder starts a provider for a valuation date; relative times use
// ACT/365F unless overridden.
func NewBuilder(valuationDate time.Time) *Builder {
	return &Builder{
		valuationDate: valuationDate,
		dayCount:      daycount.Act365F,
		discount:      make(map[market.Currency]rates.DiscountFactors),
		iborCurves:    make(map[market.IborIndex]rates.DiscountFactors),
		onCurves:      make(map[market.OvernightIndex]rates.DiscountFactors),
		priceCrvs:     make(map[market.PriceIndex]*curve.InterpolatedCurve),
		fxRates:       make(map[market.FxPair]float64),
		timeSeries:    make(map[string]market.TimeSeries),
		resolver:      sensitivity.NewResolver(),
		aggregator:    sensitivity.NewAggregator(),
	}
}

// DayCount overrides the relative-time convention.
func (b *Builder) DayCount(dc daycount.Convention) *Builder {
	b.dayCount = dc
	return b
}

// Resolver injects the FX-index resolver used by ParameterSensitivity.
func (b *Builder) Resolver(r *sensitivity.Resolver) *Builder {
	b.resolver = r
	return b
}

// Aggregator injects the aggregator used by ParameterSensitivity.
func (b *Builder) Aggregator(a *sensitivity.Aggregator) *Builder {
	b.aggregator = a
	return b
}

// DiscountCurve assigns a discounting curve to a currency.
func (b *Builder) DiscountCurve(ccy market.Currency, c *curve.InterpolatedCurve, kind CurveKind) *Builder {
	dfs, err := newDiscountFactors(kind, ccy, b.valuationDate, c)
	if err != nil {
		b.fail(err)
		return b
	}
	b.discount[ccy] = dfs
	return b
}

// IborCurve assigns a forward curve to a term index.
func (b *Builder) IborCurve(index market.IborIndex, c *curve.InterpolatedCurve, kind CurveKind) *Builder {
	dfs, err := newDiscountFactors(kind, index.Currency(), b.valuationDate, c)
	if err != nil {
		b.fail(err)
		return b
	}
	b.iborCurves[index] = dfs
	return b
}

// OvernightCurve assigns a forward curve to an overnight index.
func (b *Builder) OvernightCurve(index market.OvernightIndex, c *curve.InterpolatedCurve, kind CurveKind) *Builder {
	dfs, err := newDiscountFactors(kind, index.Currency(), b.valuationDate, c)
	if err != nil {
		b.fail(err)
		return b
	}
	b.onCurves[index] = dfs
	return b
}

// PriceIndexCurve assigns a forward value curve to a price index. A fixing
// series for the index must also be supplied before Build.
func (b *Builder) PriceIndexCurve(index market.PriceIndex, c *curve.InterpolatedCurve) *Builder {
	b.priceCrvs[index] = c
	return b
}

// FxIndex registers an FX index; its rates derive from the spot matrix and
// the pair's discount curves at Build time.
func (b *Builder) FxIndex(index market.FxIndex) *Builder {
	b.fxIndices = append(b.fxIndices, index)
	return b
}

// FxRate registers a spot rate.
func (b *Builder) FxRate(pair market.FxPair, rate float64) *Builder {
	b.fxRates[pair] = rate
	return b
}

// TimeSeries registers historical fixings for an index name.
func (b *Builder) TimeSeries(indexName string, ts market.TimeSeries) *Builder {
	b.timeSeries[indexName] = ts
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) seriesFor(indexName string) market.TimeSeries {
	return b.timeSeries[indexName]
}

// Build validates the assembly and returns the immutable provider.
func (b *Builder) Build() (*RatesProvider, error) {
	if b.err != nil {
		return nil, b.err
	}

	p := &RatesProvider{
		valuationDate: b.valuationDate,
		dayCount:      b.dayCount,
		discount:      make(map[market.Currency]rates.DiscountFactors, len(b.discount)),
		ibor:          make(map[market.IborIndex]*rates.IborIndexRates, len(b.iborCurves)),
		overnight:     make(map[market.OvernightIndex]*rates.OvernightIndexRates, len(b.onCurves)),
		priceIndex:    make(map[market.PriceIndex]*rates.PriceIndexValues, len(b.priceCrvs)),
		fxIndex:       make(map[market.FxIndex]*rates.FxIndexRates, len(b.fxIndices)),
		fx:            market.NewFxMatrix(b.fxRates),
		timeSeries:    make(map[string]market.TimeSeries, len(b.timeSeries)),
		resolver:      b.resolver,
		aggregator:    b.aggregator,
	}
	for ccy, dfs := range b.discount {
		p.discount[ccy] = dfs
	}
	for name, ts := range b.timeSeries {
		p.timeSeries[name] = ts
	}
	for index, dfs := range b.iborCurves {
		p.ibor[index] = rates.NewIborIndexRates(index, b.seriesFor(index.Name()), dfs)
	}
	for index, dfs := range b.onCurves {
		p.overnight[index] = rates.NewOvernightIndexRates(index, b.seriesFor(index.Name()), dfs)
	}
	for index, c := range b.priceCrvs {
		piv, err := rates.NewPriceIndexValues(index, b.valuationDate, b.seriesFor(index.Name()), c)
		if err != nil {
			return nil, err
		}
		p.priceIndex[index] = piv
	}
	for _, index := range b.fxIndices {
		fxr, err := buildFxIndexRates(index, p.discount, p.fx, b.seriesFor(index.Name()))
		if err != nil {
			return nil, err
		}
		p.fxIndex[index] = fxr
	}
	return p, nil
}

func buildFxIndexRates(index market.FxIndex, discount map[market.Currency]rates.DiscountFactors, fx *market.FxMatrix, ts market.TimeSeries) (*rates.FxIndexRates, error) {
	baseDfs, ok := discount[index.Pair.Base]
	if !ok {
		return nil, fmt.Errorf("%w: discount curve for %s (fx index %s)", ErrMarketDataNotFound, index.Pair.Base, index.Name())
	}
	counterDfs, ok := discount[index.Pair.Counter]
	if !ok {
		return nil, fmt.Errorf("%w: discount curve for %s (fx index %s)", ErrMarketDataNotFound, index.Pair.Counter, index.Name())
	}
	spot, err := fx.Rate(index.Pair.Base, index.Pair.Counter)
	if err != nil {
		return nil, fmt.Errorf("fx index %s: %w", index.Name(), err)
	}
	return rates.NewFxIndexRates(index, ts, spot, baseDfs, counterDfs)
}
