// Package pricer implements closed-form present values and point
// sensitivities for simple rates instruments. Pricers consume only the
// provider query interface; they are the collaborators the sensitivity
// engine serves, kept here so the engine can be exercised end-to-end by
// the risk service and the finite-difference tests.
package pricer

import (
	"time"

	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// TermDeposit is a single-period deposit: pay the notional at start,
// receive notional plus simple interest at end.
type TermDeposit struct {
	Ccy      market.Currency
	Start    time.Time
	End      time.Time
	Notional float64
	Rate     float64
	DayCount daycount.Convention
}

func (d TermDeposit) accrual() float64 {
	return daycount.YearFraction(d.Start, d.End, d.DayCount)
}

// PresentValue returns N*(DF(end)*(1+r*a) - DF(start)).
func (d TermDeposit) PresentValue(p *provider.RatesProvider) (float64, error) {
	dfs, err := p.DiscountFactorsFor(d.Ccy)
	if err != nil {
		return 0, err
	}
	a := d.accrual()
	return d.Notional * (dfs.DiscountFactor(d.End)*(1+d.Rate*a) - dfs.DiscountFactor(d.Start)), nil
}

// PointSensitivities returns the analytic derivative of the present value
// with respect to the discount curve, as zero-rate point sensitivities.
func (d TermDeposit) PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error) {
	dfs, err := p.DiscountFactorsFor(d.Ccy)
	if err != nil {
		return nil, err
	}
	a := d.accrual()
	return []sensitivity.PointSensitivity{
		sensitivity.NewZeroRateSensitivity(d.Ccy, d.End,
			d.Notional*(1+d.Rate*a)*dfs.DiscountFactorYieldDerivative(d.End)),
		sensitivity.NewZeroRateSensitivity(d.Ccy, d.Start,
			-d.Notional*dfs.DiscountFactorYieldDerivative(d.Start)),
	}, nil
}
