package provider_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

var valuation = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

var (
	eurNodeTimes  = []float64{0.25, 1, 2, 5}
	eurNodeValues = []float64{0.021, 0.023, 0.026, 0.03}
	usdNodeTimes  = []float64{0.25, 1, 2, 5}
	usdNodeValues = []float64{0.99061, 0.96310, 0.92857, 0.83527}
)

func eurCurve(t *testing.T, values []float64) *curve.InterpolatedCurve {
	t.Helper()
	c, err := curve.NewInterpolatedCurve("EUR-DSC", eurNodeTimes, values, curve.LinearInterpolator{}, daycount.Act365F)
	require.NoError(t, err)
	return c
}

func usdCurve(t *testing.T, values []float64) *curve.InterpolatedCurve {
	t.Helper()
	c, err := curve.NewInterpolatedCurve("USD-DSC", usdNodeTimes, values, curve.LogLinearInterpolator{}, daycount.Act365F)
	require.NoError(t, err)
	return c
}

func eurUsdIndex(t *testing.T) market.FxIndex {
	t.Helper()
	index, err := market.NewFxIndex("EUR/USD-WM", market.FxPair{Base: market.EUR, Counter: market.USD}, 2)
	require.NoError(t, err)
	return index
}

// snapshot assembles the standard two-currency test provider.
func snapshot(t *testing.T, eurValues, usdValues []float64) *provider.RatesProvider {
	t.Helper()
	p, err := provider.NewBuilder(valuation).
		DiscountCurve(market.EUR, eurCurve(t, eurValues), provider.ZeroRateKind).
		IborCurve(market.Euribor3M, eurCurve(t, eurValues), provider.ZeroRateKind).
		OvernightCurve(market.Estr, eurCurve(t, eurValues), provider.ZeroRateKind).
		DiscountCurve(market.USD, usdCurve(t, usdValues), provider.DiscountFactorKind).
		FxRate(market.FxPair{Base: market.EUR, Counter: market.USD}, 1.0842).
		FxIndex(eurUsdIndex(t)).
		Build()
	require.NoError(t, err)
	return p
}

func TestRatesProvider_Queries(t *testing.T) {
	p := snapshot(t, eurNodeValues, usdNodeValues)

	assert.Equal(t, valuation, p.ValuationDate())
	assert.InDelta(t, 1.0, p.RelativeTime(valuation.AddDate(0, 0, 365)), 1e-12)

	df, err := p.DiscountFactor(market.EUR, valuation.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Greater(t, df, 0.0)
	assert.Less(t, df, 1.0)

	spot, err := p.FxRate(market.EUR, market.USD)
	require.NoError(t, err)
	assert.Equal(t, 1.0842, spot)

	rate, err := p.IborRate(market.Euribor3M, valuation.AddDate(0, 6, 0))
	require.NoError(t, err)
	assert.Greater(t, rate, 0.0)

	on, err := p.OvernightRate(market.Estr, valuation.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Greater(t, on, 0.0)

	fx, err := p.FxIndexRate(eurUsdIndex(t), market.EUR, valuation.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Greater(t, fx, 1.0842)

	assert.ElementsMatch(t, []market.Currency{market.EUR, market.USD}, p.Currencies())
}

func TestRatesProvider_MissingDataErrors(t *testing.T) {
	p := snapshot(t, eurNodeValues, usdNodeValues)

	_, err := p.DiscountFactor(market.GBP, valuation.AddDate(1, 0, 0))
	assert.True(t, errors.Is(err, provider.ErrMarketDataNotFound))

	_, err = p.IborRate(market.USDLibor3M, valuation.AddDate(0, 6, 0))
	assert.True(t, errors.Is(err, provider.ErrMarketDataNotFound))

	_, err = p.OvernightRate(market.Sofr, valuation.AddDate(0, 1, 0))
	assert.True(t, errors.Is(err, provider.ErrMarketDataNotFound))

	_, err = p.PriceIndexValue(market.EUHICP, valuation.AddDate(1, 0, 0))
	assert.True(t, errors.Is(err, provider.ErrMarketDataNotFound))

	_, err = p.FxRate(market.EUR, market.JPY)
	assert.True(t, errors.Is(err, market.ErrFxRateNotFound))

	_, err = p.TimeSeries("EURIBOR-3M")
	assert.True(t, errors.Is(err, provider.ErrMarketDataNotFound))
}

func TestBuilder_UnknownCurveKind(t *testing.T) {
	_, err := provider.NewBuilder(valuation).
		DiscountCurve(market.EUR, eurCurve(t, eurNodeValues), provider.CurveKind("spliney")).
		Build()
	assert.Error(t, err)
}

func TestBuilder_FxIndexRequiresDiscountCurvesAndSpot(t *testing.T) {
	_, err := provider.NewBuilder(valuation).
		DiscountCurve(market.EUR, eurCurve(t, eurNodeValues), provider.ZeroRateKind).
		FxIndex(eurUsdIndex(t)).
		Build()
	assert.True(t, errors.Is(err, provider.ErrMarketDataNotFound))

	_, err = provider.NewBuilder(valuation).
		DiscountCurve(market.EUR, eurCurve(t, eurNodeValues), provider.ZeroRateKind).
		DiscountCurve(market.USD, usdCurve(t, usdNodeValues), provider.DiscountFactorKind).
		FxIndex(eurUsdIndex(t)).
		Build()
	assert.True(t, errors.Is(err, market.ErrFxRateNotFound))
}

// TestParameterSensitivity_SingleCurveIbor is the reference scenario: one
// curve serving both discounting and the 3-month forward, one Ibor
// sensitivity with coefficient 1.0, checked node by node against a central
// finite difference of the forward rate.
func TestParameterSensitivity_SingleCurveIbor(t *testing.T) {
	const h = 1e-6
	singleCurve := func(values []float64) *provider.RatesProvider {
		p, err := provider.NewBuilder(valuation).
			DiscountCurve(market.EUR, eurCurve(t, values), provider.ZeroRateKind).
			IborCurve(market.Euribor3M, eurCurve(t, values), provider.ZeroRateKind).
			Build()
		require.NoError(t, err)
		return p
	}

	fixing := valuation.AddDate(0, 6, 0)
	point := sensitivity.NewIborRateSensitivity(market.Euribor3M, fixing, 1.0)

	p := singleCurve(eurNodeValues)
	params, err := p.ParameterSensitivity([]sensitivity.PointSensitivity{point})
	require.NoError(t, err)
	require.Equal(t, 1, params.Size())

	vec, ok := params.Find(sensitivity.Key{CurveName: "EUR-DSC", Currency: market.EUR})
	require.True(t, ok)
	require.Len(t, vec.Sensitivity, len(eurNodeValues))

	for i := range eurNodeValues {
		up := append([]float64(nil), eurNodeValues...)
		dn := append([]float64(nil), eurNodeValues...)
		up[i] += h
		dn[i] -= h
		upRate, err := singleCurve(up).IborRate(market.Euribor3M, fixing)
		require.NoError(t, err)
		dnRate, err := singleCurve(dn).IborRate(market.Euribor3M, fixing)
		require.NoError(t, err)
		numeric := (upRate - dnRate) / (2 * h)
		assert.InDelta(t, numeric, vec.Sensitivity[i], 1e-9, "node %d", i)
	}
}
