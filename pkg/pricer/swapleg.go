package pricer

import (
	"time"

	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// AccrualPeriod is one pre-scheduled accrual period. Schedule generation
// and business-day adjustment happen upstream; periods arrive here final.
type AccrualPeriod struct {
	Start   time.Time
	End     time.Time
	Payment time.Time
}

// FixedLeg pays Rate on the notional over each period.
type FixedLeg struct {
	Ccy      market.Currency
	Notional float64
	Rate     float64
	DayCount daycount.Convention
	Periods  []AccrualPeriod
}

// PresentValue returns the sum of discounted fixed coupons.
func (l FixedLeg) PresentValue(p *provider.RatesProvider) (float64, error) {
	dfs, err := p.DiscountFactorsFor(l.Ccy)
	if err != nil {
		return 0, err
	}
	pv := 0.0
	for _, per := range l.Periods {
		a := daycount.YearFraction(per.Start, per.End, l.DayCount)
		pv += l.Notional * l.Rate * a * dfs.DiscountFactor(per.Payment)
	}
	return pv, nil
}

// PointSensitivities returns one discounting sensitivity per coupon.
func (l FixedLeg) PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error) {
	dfs, err := p.DiscountFactorsFor(l.Ccy)
	if err != nil {
		return nil, err
	}
	out := make([]sensitivity.PointSensitivity, 0, len(l.Periods))
	for _, per := range l.Periods {
		a := daycount.YearFraction(per.Start, per.End, l.DayCount)
		out = append(out, sensitivity.NewZeroRateSensitivity(l.Ccy, per.Payment,
			l.Notional*l.Rate*a*dfs.DiscountFactorYieldDerivative(per.Payment)))
	}
	return out, nil
}

// IborRatePeriod is one floating coupon: the fixing determines the accrual
// period through the index conventions; payment may lag the accrual end.
type IborRatePeriod struct {
	FixingDate time.Time
	Payment    time.Time
}

// IborLeg pays the index fixing plus spread on the notional.
type IborLeg struct {
	Index    market.IborIndex
	Notional float64
	Spread   float64
	Periods  []IborRatePeriod
}

func (l IborLeg) accrual(fixing time.Time) float64 {
	start := l.Index.EffectiveFromFixing(fixing)
	end := l.Index.MaturityFromEffective(start)
	return daycount.YearFraction(start, end, l.Index.DayCount)
}

// PresentValue returns the sum of discounted projected coupons.
func (l IborLeg) PresentValue(p *provider.RatesProvider) (float64, error) {
	dfs, err := p.DiscountFactorsFor(l.Index.Currency())
	if err != nil {
		return 0, err
	}
	pv := 0.0
	for _, per := range l.Periods {
		rate, err := p.IborRate(l.Index, per.FixingDate)
		if err != nil {
			return 0, err
		}
		pv += l.Notional * (rate + l.Spread) * l.accrual(per.FixingDate) * dfs.DiscountFactor(per.Payment)
	}
	return pv, nil
}

// PointSensitivities returns forward-rate and discounting sensitivities
// per coupon.
func (l IborLeg) PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error) {
	ccy := l.Index.Currency()
	dfs, err := p.DiscountFactorsFor(ccy)
	if err != nil {
		return nil, err
	}
	out := make([]sensitivity.PointSensitivity, 0, 2*len(l.Periods))
	for _, per := range l.Periods {
		rate, err := p.IborRate(l.Index, per.FixingDate)
		if err != nil {
			return nil, err
		}
		a := l.accrual(per.FixingDate)
		df := dfs.DiscountFactor(per.Payment)
		out = append(out,
			sensitivity.NewIborRateSensitivity(l.Index, per.FixingDate, l.Notional*a*df),
			sensitivity.NewZeroRateSensitivity(ccy, per.Payment,
				l.Notional*(rate+l.Spread)*a*dfs.DiscountFactorYieldDerivative(per.Payment)))
	}
	return out, nil
}

// OvernightLeg pays the compounded overnight rate over each period.
type OvernightLeg struct {
	Index    market.OvernightIndex
	Notional float64
	Periods  []AccrualPeriod
}

// PresentValue returns the sum of discounted compounded coupons.
func (l OvernightLeg) PresentValue(p *provider.RatesProvider) (float64, error) {
	dfs, err := p.DiscountFactorsFor(l.Index.Currency())
	if err != nil {
		return 0, err
	}
	on, err := p.OvernightRatesFor(l.Index)
	if err != nil {
		return 0, err
	}
	pv := 0.0
	for _, per := range l.Periods {
		a := daycount.YearFraction(per.Start, per.End, l.Index.DayCount)
		pv += l.Notional * on.PeriodRate(per.Start, per.End) * a * dfs.DiscountFactor(per.Payment)
	}
	return pv, nil
}

// PointSensitivities returns period-rate and discounting sensitivities per
// coupon.
func (l OvernightLeg) PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error) {
	ccy := l.Index.Currency()
	dfs, err := p.DiscountFactorsFor(ccy)
	if err != nil {
		return nil, err
	}
	on, err := p.OvernightRatesFor(l.Index)
	if err != nil {
		return nil, err
	}
	out := make([]sensitivity.PointSensitivity, 0, 2*len(l.Periods))
	for _, per := range l.Periods {
		a := daycount.YearFraction(per.Start, per.End, l.Index.DayCount)
		df := dfs.DiscountFactor(per.Payment)
		rate := on.PeriodRate(per.Start, per.End)
		out = append(out,
			sensitivity.NewOvernightRateSensitivity(l.Index, per.Start, per.End, l.Notional*a*df),
			sensitivity.NewZeroRateSensitivity(ccy, per.Payment,
				l.Notional*rate*a*dfs.DiscountFactorYieldDerivative(per.Payment)))
	}
	return out, nil
}
