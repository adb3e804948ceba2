package rates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
)

func newPriceIndexValues(t *testing.T) *PriceIndexValues {
	t.Helper()
	// x-axis counts months from the valuation month.
	c, err := curve.NewInterpolatedCurve("EU-HICP",
		[]float64{1, 12, 24, 60},
		[]float64{126.5, 128.0, 131.0, 139.0},
		curve.LinearInterpolator{}, daycount.Act365F)
	require.NoError(t, err)

	fixings := market.NewTimeSeries(map[time.Time]float64{
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC): 125.8,
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC): 126.1,
	})
	v, err := NewPriceIndexValues(market.EUHICP, valuation, fixings, c)
	require.NoError(t, err)
	return v
}

func TestNewPriceIndexValues_RequiresFixings(t *testing.T) {
	c, err := curve.NewInterpolatedCurve("EU-HICP", []float64{1}, []float64{126.5},
		curve.LinearInterpolator{}, daycount.Act365F)
	require.NoError(t, err)

	_, err = NewPriceIndexValues(market.EUHICP, valuation, market.TimeSeries{}, c)
	assert.True(t, errors.Is(err, ErrMissingFixing))
}

func TestPriceIndexValues_PublishedMonth(t *testing.T) {
	v := newPriceIndexValues(t)

	// Any day within a published month resolves to its fixing.
	got, err := v.Value(time.Date(2026, 7, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 126.1, got)
}

func TestPriceIndexValues_ForwardMonth(t *testing.T) {
	v := newPriceIndexValues(t)

	// Twelve months out reads the curve at x=12.
	got, err := v.Value(time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 128.0, got, 1e-12)
}

func TestPriceIndexValues_PastMonthWithoutFixing(t *testing.T) {
	v := newPriceIndexValues(t)

	_, err := v.Value(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, errors.Is(err, ErrMissingFixing))
}

func TestPriceIndexValues_ParameterSensitivity(t *testing.T) {
	v := newPriceIndexValues(t)

	// Published months carry nothing.
	sens := v.ParameterSensitivity(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 2.0)
	require.Len(t, sens, 4)
	for _, s := range sens {
		assert.Zero(t, s)
	}

	// Forward months scale the curve's unit sensitivities.
	month := time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC)
	sens = v.ParameterSensitivity(month, 2.0)
	unit := v.Curve().UnitParameterSensitivity(12)
	require.Len(t, sens, len(unit))
	for i := range sens {
		assert.InDelta(t, 2.0*unit[i], sens[i], 1e-12)
	}
}
