package pricer

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// FxResetPayment is a notional in the reference currency converted at an
// FX index fixing and paid in the other pair currency:
//
//	PV = N * fxIndexRate(reference, fixing) * DF_pay(payment)
//
// expressed in the payment currency. This is the cross-currency building
// block that produces FX-index point sensitivities for the resolver.
type FxResetPayment struct {
	Index      market.FxIndex
	Reference  market.Currency
	FixingDate time.Time
	Payment    time.Time
	Notional   float64
}

func (f FxResetPayment) paymentCurrency() (market.Currency, error) {
	switch f.Reference {
	case f.Index.Pair.Base:
		return f.Index.Pair.Counter, nil
	case f.Index.Pair.Counter:
		return f.Index.Pair.Base, nil
	}
	return "", fmt.Errorf("fx reset: reference currency %s not in pair %s", f.Reference, f.Index.Pair)
}

// PresentValue returns the discounted converted notional in the payment
// currency.
func (f FxResetPayment) PresentValue(p *provider.RatesProvider) (float64, error) {
	payCcy, err := f.paymentCurrency()
	if err != nil {
		return 0, err
	}
	rate, err := p.FxIndexRate(f.Index, f.Reference, f.FixingDate)
	if err != nil {
		return 0, err
	}
	df, err := p.DiscountFactor(payCcy, f.Payment)
	if err != nil {
		return 0, err
	}
	return f.Notional * rate * df, nil
}

// PointSensitivities returns the FX-index sensitivity plus the discounting
// sensitivity in the payment currency.
func (f FxResetPayment) PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error) {
	payCcy, err := f.paymentCurrency()
	if err != nil {
		return nil, err
	}
	rate, err := p.FxIndexRate(f.Index, f.Reference, f.FixingDate)
	if err != nil {
		return nil, err
	}
	dfs, err := p.DiscountFactorsFor(payCcy)
	if err != nil {
		return nil, err
	}
	df := dfs.DiscountFactor(f.Payment)
	fxSens := sensitivity.NewFxIndexSensitivity(f.Index, f.Reference, f.FixingDate, f.Notional*df)
	discSens := sensitivity.NewZeroRateSensitivity(payCcy, f.Payment,
		f.Notional*rate*dfs.DiscountFactorYieldDerivative(f.Payment))
	return []sensitivity.PointSensitivity{fxSens, discSens}, nil
}
