package sensitivity

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/rates"
)

// ErrMarketDataNotFound is returned when a curve, rate or series required
// for resolution or aggregation is absent from the provider.
var ErrMarketDataNotFound = fmt.Errorf("market data not available")

// ErrUnresolvedSensitivity is returned when an FX-index sensitivity reaches
// the aggregator without having been resolved into zero-rate sensitivities
// first.
var ErrUnresolvedSensitivity = fmt.Errorf("unresolved fx index sensitivity")

// Provider is the narrow market view the resolver and aggregator need.
// *provider.RatesProvider implements it.
type Provider interface {
	ValuationDate() time.Time
	DiscountFactorsFor(ccy market.Currency) (rates.DiscountFactors, error)
	IborRatesFor(index market.IborIndex) (*rates.IborIndexRates, error)
	OvernightRatesFor(index market.OvernightIndex) (*rates.OvernightIndexRates, error)
	PriceIndexValuesFor(index market.PriceIndex) (*rates.PriceIndexValues, error)
	FxIndexRatesFor(index market.FxIndex) (*rates.FxIndexRates, error)
}
