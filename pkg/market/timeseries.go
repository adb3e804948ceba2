package market

import (
	"sort"
	"time"
)

// TimeSeries is an immutable date-indexed series of historical fixings.
// Dates are normalized to midnight UTC so lookups are calendar-date exact.
type TimeSeries struct {
	dates  []time.Time
	values map[time.Time]float64
}

// NewTimeSeries builds a series from date/value pairs.
func NewTimeSeries(points map[time.Time]float64) TimeSeries {
	values := make(map[time.Time]float64, len(points))
	dates := make([]time.Time, 0, len(points))
	for d, v := range points {
		nd := normalize(d)
		values[nd] = v
		dates = append(dates, nd)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return TimeSeries{dates: dates, values: values}
}

func normalize(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Value returns the fixing on the given date, if present.
func (ts TimeSeries) Value(date time.Time) (float64, bool) {
	v, ok := ts.values[normalize(date)]
	return v, ok
}

// ValueOnOrBefore returns the most recent fixing at or before the date.
func (ts TimeSeries) ValueOnOrBefore(date time.Time) (float64, bool) {
	nd := normalize(date)
	i := sort.Search(len(ts.dates), func(i int) bool { return ts.dates[i].After(nd) })
	if i == 0 {
		return 0, false
	}
	return ts.values[ts.dates[i-1]], true
}

// Empty reports whether the series has no fixings.
func (ts TimeSeries) Empty() bool { return len(ts.dates) == 0 }

// Size returns the number of fixings.
func (ts TimeSeries) Size() int { return len(ts.dates) }
