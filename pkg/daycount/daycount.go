// Package daycount provides day-count conventions and year-fraction
// calculations used for curve time axes and accrual factors.
package daycount

import (
	"time"
)

// Convention identifies a day-count convention.
type Convention string

const (
	// Act365F is the standard convention for curve time axes
	// (QuantLib/Bloomberg discount curve interpolation).
	Act365F Convention = "ACT/365F"
	// Act360 is the money-market convention (USD/EUR floating legs).
	Act360 Convention = "ACT/360"
	// Thirty360 is the 30E/360 Eurobond basis used by fixed legs.
	Thirty360 Convention = "30/360"
)

// YearFraction computes the year fraction between two dates under the
// convention. Unknown conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention Convention) float64 {
	switch convention {
	case Act360:
		return days(start, end) / 360.0
	case Thirty360:
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return days(start, end) / 365.0
	}
}

func days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// AddMonths behaves like Excel's EDATE: month-end dates roll to the last
// day of the target month instead of spilling into the next one.
func AddMonths(t time.Time, months int) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	shifted := t.AddDate(0, months, 0)
	if shifted.Month() == firstOfMonth.Month() {
		return shifted
	}
	for shifted.Month() != firstOfMonth.Month() {
		shifted = shifted.AddDate(0, 0, -1)
	}
	return shifted
}
