package pricer

import (
	"time"

	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// ForwardRateAgreement exchanges the index fixing against a fixed rate over
// one accrual period, settled at period end. The accrual period derives
// from the index conventions; discounting uses the currency's discount
// curve, which may differ from the forward curve (multi-curve).
type ForwardRateAgreement struct {
	Index      market.IborIndex
	FixingDate time.Time
	Notional   float64
	FixedRate  float64
}

func (f ForwardRateAgreement) period() (start, end time.Time, accrual float64) {
	start = f.Index.EffectiveFromFixing(f.FixingDate)
	end = f.Index.MaturityFromEffective(start)
	accrual = daycount.YearFraction(start, end, f.Index.DayCount)
	return start, end, accrual
}

// PresentValue returns N*a*(F-K)*DF(end) in the index currency.
func (f ForwardRateAgreement) PresentValue(p *provider.RatesProvider) (float64, error) {
	fwd, err := p.IborRate(f.Index, f.FixingDate)
	if err != nil {
		return 0, err
	}
	_, end, a := f.period()
	df, err := p.DiscountFactor(f.Index.Currency(), end)
	if err != nil {
		return 0, err
	}
	return f.Notional * a * (fwd - f.FixedRate) * df, nil
}

// PointSensitivities splits the derivative across the forward rate and the
// discount factor at payment.
func (f ForwardRateAgreement) PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error) {
	ccy := f.Index.Currency()
	fwd, err := p.IborRate(f.Index, f.FixingDate)
	if err != nil {
		return nil, err
	}
	dfs, err := p.DiscountFactorsFor(ccy)
	if err != nil {
		return nil, err
	}
	_, end, a := f.period()
	df := dfs.DiscountFactor(end)
	return []sensitivity.PointSensitivity{
		sensitivity.NewIborRateSensitivity(f.Index, f.FixingDate, f.Notional*a*df),
		sensitivity.NewZeroRateSensitivity(ccy, end,
			f.Notional*a*(fwd-f.FixedRate)*dfs.DiscountFactorYieldDerivative(end)),
	}, nil
}
