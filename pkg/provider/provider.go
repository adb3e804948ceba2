// Package provider assembles immutable market-data snapshots: discount
// curves per currency, forward curves per index, FX rates and historical
// fixings, all queried through one interface by pricers. It also rebuilds
// snapshots from flat calibration parameter vectors.
package provider

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/rates"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// ErrMarketDataNotFound mirrors the sensitivity package sentinel so callers
// can test either.
var ErrMarketDataNotFound = sensitivity.ErrMarketDataNotFound

// RatesProvider is an immutable market-data snapshot. All queries are safe
// for concurrent use; missing data is an explicit error, never a default.
type RatesProvider struct {
	valuationDate time.Time
	dayCount      daycount.Convention

	discount   map[market.Currency]rates.DiscountFactors
	ibor       map[market.IborIndex]*rates.IborIndexRates
	overnight  map[market.OvernightIndex]*rates.OvernightIndexRates
	priceIndex map[market.PriceIndex]*rates.PriceIndexValues
	fxIndex    map[market.FxIndex]*rates.FxIndexRates
	fx         *market.FxMatrix
	timeSeries map[string]market.TimeSeries

	resolver   *sensitivity.Resolver
	aggregator *sensitivity.Aggregator
}

// ValuationDate returns the snapshot's valuation date.
func (p *RatesProvider) ValuationDate() time.Time { return p.valuationDate }

// RelativeTime converts a date to a year fraction from the valuation date
// under the provider's day count. Negative for past dates.
func (p *RatesProvider) RelativeTime(date time.Time) float64 {
	return daycount.YearFraction(p.valuationDate, date, p.dayCount)
}

// DiscountFactorsFor returns the discount-factor family for a currency.
func (p *RatesProvider) DiscountFactorsFor(ccy market.Currency) (rates.DiscountFactors, error) {
	dfs, ok := p.discount[ccy]
	if !ok {
		return nil, fmt.Errorf("%w: discount curve for %s", ErrMarketDataNotFound, ccy)
	}
	return dfs, nil
}

// DiscountFactor returns the discounting factor for a currency at a date;
// 1.0 at or before the valuation date.
func (p *RatesProvider) DiscountFactor(ccy market.Currency, date time.Time) (float64, error) {
	dfs, err := p.DiscountFactorsFor(ccy)
	if err != nil {
		return 0, err
	}
	return dfs.DiscountFactor(date), nil
}

// FxRate returns the spot rate converting one unit of base into counter.
func (p *RatesProvider) FxRate(base, counter market.Currency) (float64, error) {
	return p.fx.Rate(base, counter)
}

// IborRatesFor returns the forward-rate family for a term index.
func (p *RatesProvider) IborRatesFor(index market.IborIndex) (*rates.IborIndexRates, error) {
	r, ok := p.ibor[index]
	if !ok {
		return nil, fmt.Errorf("%w: forward curve for %s", ErrMarketDataNotFound, index.Name())
	}
	return r, nil
}

// IborRate returns the index rate for a fixing date.
func (p *RatesProvider) IborRate(index market.IborIndex, fixing time.Time) (float64, error) {
	r, err := p.IborRatesFor(index)
	if err != nil {
		return 0, err
	}
	return r.Rate(fixing)
}

// OvernightRatesFor returns the forward-rate family for an overnight index.
func (p *RatesProvider) OvernightRatesFor(index market.OvernightIndex) (*rates.OvernightIndexRates, error) {
	r, ok := p.overnight[index]
	if !ok {
		return nil, fmt.Errorf("%w: forward curve for %s", ErrMarketDataNotFound, index.Name())
	}
	return r, nil
}

// OvernightRate returns the overnight rate for a fixing date.
func (p *RatesProvider) OvernightRate(index market.OvernightIndex, fixing time.Time) (float64, error) {
	r, err := p.OvernightRatesFor(index)
	if err != nil {
		return 0, err
	}
	return r.Rate(fixing)
}

// PriceIndexValuesFor returns the value family for a price index.
func (p *RatesProvider) PriceIndexValuesFor(index market.PriceIndex) (*rates.PriceIndexValues, error) {
	v, ok := p.priceIndex[index]
	if !ok {
		return nil, fmt.Errorf("%w: price index curve for %s", ErrMarketDataNotFound, index.Name())
	}
	return v, nil
}

// PriceIndexValue returns the index level for a reference month.
func (p *RatesProvider) PriceIndexValue(index market.PriceIndex, month time.Time) (float64, error) {
	v, err := p.PriceIndexValuesFor(index)
	if err != nil {
		return 0, err
	}
	return v.Value(month)
}

// FxIndexRatesFor returns the rate family for an FX index.
func (p *RatesProvider) FxIndexRatesFor(index market.FxIndex) (*rates.FxIndexRates, error) {
	r, ok := p.fxIndex[index]
	if !ok {
		return nil, fmt.Errorf("%w: fx index %s", ErrMarketDataNotFound, index.Name())
	}
	return r, nil
}

// FxIndexRate returns the FX index rate for a fixing date, observed from
// the reference currency's side of the pair.
func (p *RatesProvider) FxIndexRate(index market.FxIndex, reference market.Currency, fixing time.Time) (float64, error) {
	r, err := p.FxIndexRatesFor(index)
	if err != nil {
		return 0, err
	}
	return r.Rate(reference, fixing)
}

// TimeSeries returns the historical fixing series for an index name.
func (p *RatesProvider) TimeSeries(indexName string) (market.TimeSeries, error) {
	ts, ok := p.timeSeries[indexName]
	if !ok {
		return market.TimeSeries{}, fmt.Errorf("%w: time series for %s", ErrMarketDataNotFound, indexName)
	}
	return ts, nil
}

// ParameterSensitivity resolves FX-index point sensitivities and projects
// everything onto per-curve parameter vectors: the single entry point
// combining resolution and aggregation.
func (p *RatesProvider) ParameterSensitivity(sensitivities []sensitivity.PointSensitivity) (sensitivity.ParameterSensitivities, error) {
	resolved, err := p.resolver.Resolve(sensitivities, p)
	if err != nil {
		return sensitivity.ParameterSensitivities{}, err
	}
	return p.aggregator.Aggregate(resolved, p)
}

// Currencies returns the currencies with a discount curve.
func (p *RatesProvider) Currencies() []market.Currency {
	out := make([]market.Currency, 0, len(p.discount))
	for ccy := range p.discount {
		out = append(out, ccy)
	}
	return out
}
