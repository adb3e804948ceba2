package daycount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearFraction(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		convention Convention
		expected   float64
	}{
		{
			name:       "Act365F full year",
			start:      date(2026, time.January, 1),
			end:        date(2027, time.January, 1),
			convention: Act365F,
			expected:   1.0,
		},
		{
			name:       "Act365F half year",
			start:      date(2026, time.August, 28),
			end:        date(2027, time.February, 28),
			convention: Act365F,
			expected:   184.0 / 365.0,
		},
		{
			name:       "Act360 half year",
			start:      date(2026, time.January, 1),
			end:        date(2026, time.July, 1),
			convention: Act360,
			expected:   181.0 / 360.0,
		},
		{
			name:       "Thirty360 aligned dates",
			start:      date(2026, time.January, 15),
			end:        date(2026, time.July, 15),
			convention: Thirty360,
			expected:   0.5,
		},
		{
			name:       "Thirty360 month end clamps to 30",
			start:      date(2026, time.January, 31),
			end:        date(2026, time.July, 31),
			convention: Thirty360,
			expected:   0.5,
		},
		{
			name:       "unknown convention falls back to Act365F",
			start:      date(2026, time.January, 1),
			end:        date(2027, time.January, 1),
			convention: Convention("ACT/ACT"),
			expected:   1.0,
		},
		{
			name:       "negative for reversed dates",
			start:      date(2027, time.January, 1),
			end:        date(2026, time.January, 1),
			convention: Act365F,
			expected:   -1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, YearFraction(tt.start, tt.end, tt.convention), 1e-12)
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"regular date", date(2026, time.January, 15), 1, date(2026, time.February, 15)},
		{"month end rolls back", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"leap year February", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"31st into 30 day month", date(2026, time.March, 31), 1, date(2026, time.April, 30)},
		{"three month tenor", date(2026, time.August, 28), 3, date(2026, time.November, 28)},
		{"negative months", date(2026, time.March, 15), -2, date(2026, time.January, 15)},
		{"year boundary", date(2026, time.November, 30), 3, date(2027, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestTenorYears(t *testing.T) {
	tests := []struct {
		tenor    string
		expected float64
	}{
		{"1D", 1.0 / 365.0},
		{"2W", 14.0 / 365.0},
		{"3M", 0.25},
		{"18M", 1.5},
		{"10Y", 10},
		{"1y", 1},
		{" 5Y ", 5},
		{"2.5", 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.tenor, func(t *testing.T) {
			got, err := TenorYears(tt.tenor)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestTenorYears_Invalid(t *testing.T) {
	for _, tenor := range []string{"", "M", "3X", "abc"} {
		t.Run(tenor, func(t *testing.T) {
			_, err := TenorYears(tenor)
			assert.Error(t, err)
		})
	}
}
