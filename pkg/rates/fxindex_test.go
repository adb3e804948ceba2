package rates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfoundry/curverisk/pkg/market"
)

const spotEurUsd = 1.0842

func newFxIndexRates(t *testing.T, fixings map[time.Time]float64) *FxIndexRates {
	t.Helper()
	index, err := market.NewFxIndex("EUR/USD-WM", market.FxPair{Base: market.EUR, Counter: market.USD}, 2)
	require.NoError(t, err)

	eurDfs := NewZeroRateDiscountFactors(market.EUR, valuation, flatZeroCurve(t, 0.02))
	usdDfs := NewZeroRateDiscountFactors(market.USD, valuation, flatZeroCurve(t, 0.03))
	r, err := NewFxIndexRates(index, market.NewTimeSeries(fixings), spotEurUsd, eurDfs, usdDfs)
	require.NoError(t, err)
	return r
}

func TestNewFxIndexRates_CurrencyMismatch(t *testing.T) {
	index, err := market.NewFxIndex("EUR/USD-WM", market.FxPair{Base: market.EUR, Counter: market.USD}, 2)
	require.NoError(t, err)

	eurDfs := NewZeroRateDiscountFactors(market.EUR, valuation, flatZeroCurve(t, 0.02))
	_, err = NewFxIndexRates(index, market.TimeSeries{}, spotEurUsd, eurDfs, eurDfs)
	assert.Error(t, err)
}

func TestFxIndexRates_Forward(t *testing.T) {
	r := newFxIndexRates(t, nil)

	fixing := valuation.AddDate(1, 0, 0)
	maturity := r.Index().MaturityFromFixing(fixing)
	expected := spotEurUsd * r.BaseDiscountFactors().DiscountFactor(maturity) /
		r.CounterDiscountFactors().DiscountFactor(maturity)

	assert.InDelta(t, expected, r.Forward(fixing), 1e-12)
	// Higher counter rates push the base currency forward above spot.
	assert.Greater(t, r.Forward(fixing), spotEurUsd)
}

func TestFxIndexRates_RateOrientation(t *testing.T) {
	r := newFxIndexRates(t, nil)
	fixing := valuation.AddDate(0, 6, 0)
	fwd := r.Forward(fixing)

	base, err := r.Rate(market.EUR, fixing)
	require.NoError(t, err)
	assert.InDelta(t, fwd, base, 1e-12)

	counter, err := r.Rate(market.USD, fixing)
	require.NoError(t, err)
	assert.InDelta(t, 1/fwd, counter, 1e-12)

	_, err = r.Rate(market.JPY, fixing)
	assert.Error(t, err)
}

func TestFxIndexRates_PublishedFixing(t *testing.T) {
	past := valuation.AddDate(0, 0, -1)
	r := newFxIndexRates(t, map[time.Time]float64{past: 1.0810})

	assert.True(t, r.IsFixed(past))
	assert.False(t, r.IsFixed(valuation.AddDate(0, 6, 0)))

	got, err := r.Rate(market.EUR, past)
	require.NoError(t, err)
	assert.Equal(t, 1.0810, got)

	inv, err := r.Rate(market.USD, past)
	require.NoError(t, err)
	assert.InDelta(t, 1/1.0810, inv, 1e-12)

	_, err = r.Rate(market.EUR, valuation.AddDate(0, 0, -9))
	assert.True(t, errors.Is(err, ErrMissingFixing))
}

func TestFxIndexRates_ReferenceCoefficient(t *testing.T) {
	r := newFxIndexRates(t, nil)
	fixing := valuation.AddDate(0, 6, 0)
	fwd := r.Forward(fixing)

	// Base-side observation passes through.
	got, err := r.ReferenceCoefficient(market.EUR, fixing, 3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got)

	// Counter-side observation differentiates the reciprocal rate.
	got, err = r.ReferenceCoefficient(market.USD, fixing, 3.5)
	require.NoError(t, err)
	assert.InDelta(t, -3.5/(fwd*fwd), got, 1e-12)

	_, err = r.ReferenceCoefficient(market.GBP, fixing, 1.0)
	assert.Error(t, err)
}
