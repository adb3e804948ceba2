package pricer

import (
	"math"
	"time"

	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// ZeroCouponInflationSwap exchanges realized index growth against a
// compounded fixed rate in a single payment at maturity:
//
//	PV = N * (I(ref)/I(base) - (1+k)^years) * DF(payment)
//
// The base month must be published (a fixing); the reference month is
// typically forward and carries the inflation sensitivity.
type ZeroCouponInflationSwap struct {
	Index          market.PriceIndex
	BaseMonth      time.Time
	ReferenceMonth time.Time
	Payment        time.Time
	Notional       float64
	FixedRate      float64
	Years          int
}

// PresentValue prices the inflation-receiver side.
func (s ZeroCouponInflationSwap) PresentValue(p *provider.RatesProvider) (float64, error) {
	baseLevel, err := p.PriceIndexValue(s.Index, s.BaseMonth)
	if err != nil {
		return 0, err
	}
	refLevel, err := p.PriceIndexValue(s.Index, s.ReferenceMonth)
	if err != nil {
		return 0, err
	}
	df, err := p.DiscountFactor(s.Index.Currency(), s.Payment)
	if err != nil {
		return 0, err
	}
	fixed := math.Pow(1+s.FixedRate, float64(s.Years))
	return s.Notional * (refLevel/baseLevel - fixed) * df, nil
}

// PointSensitivities splits the derivative across the reference index
// level and the discount factor at payment. The base level is a published
// fixing and carries no curve sensitivity.
func (s ZeroCouponInflationSwap) PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error) {
	ccy := s.Index.Currency()
	baseLevel, err := p.PriceIndexValue(s.Index, s.BaseMonth)
	if err != nil {
		return nil, err
	}
	refLevel, err := p.PriceIndexValue(s.Index, s.ReferenceMonth)
	if err != nil {
		return nil, err
	}
	dfs, err := p.DiscountFactorsFor(ccy)
	if err != nil {
		return nil, err
	}
	df := dfs.DiscountFactor(s.Payment)
	fixed := math.Pow(1+s.FixedRate, float64(s.Years))
	return []sensitivity.PointSensitivity{
		sensitivity.NewInflationRateSensitivity(s.Index, s.ReferenceMonth, s.Notional*df/baseLevel),
		sensitivity.NewZeroRateSensitivity(ccy, s.Payment,
			s.Notional*(refLevel/baseLevel-fixed)*dfs.DiscountFactorYieldDerivative(s.Payment)),
	}, nil
}
