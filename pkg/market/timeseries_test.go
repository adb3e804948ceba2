package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSeries_Value(t *testing.T) {
	ts := NewTimeSeries(map[time.Time]float64{
		time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC):  0.0230,
		time.Date(2026, 8, 27, 11, 30, 0, 0, time.UTC): 0.0231,
	})

	require.Equal(t, 2, ts.Size())
	assert.False(t, ts.Empty())

	// Lookups are calendar-date exact regardless of time of day.
	v, ok := ts.Value(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 0.0231, v)

	v, ok = ts.Value(time.Date(2026, 8, 26, 17, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 0.0230, v)

	_, ok = ts.Value(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestTimeSeries_ValueOnOrBefore(t *testing.T) {
	ts := NewTimeSeries(map[time.Time]float64{
		time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC): 1.0,
		time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC): 2.0,
	})

	v, ok := ts.ValueOnOrBefore(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = ts.ValueOnOrBefore(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = ts.ValueOnOrBefore(time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestTimeSeries_Empty(t *testing.T) {
	ts := NewTimeSeries(nil)
	assert.True(t, ts.Empty())
	assert.Equal(t, 0, ts.Size())

	_, ok := ts.Value(time.Now())
	assert.False(t, ok)
}
