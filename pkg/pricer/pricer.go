package pricer

import (
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// Instrument is anything with a present value and analytic point
// sensitivities against a market snapshot.
type Instrument interface {
	PresentValue(p *provider.RatesProvider) (float64, error)
	PointSensitivities(p *provider.RatesProvider) ([]sensitivity.PointSensitivity, error)
}
