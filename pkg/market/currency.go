// Package market defines the market-data reference types: currencies,
// FX pairs and spot rates, rate indices with their date arithmetic, and
// historical fixing time series.
package market

import "fmt"

// Currency is an ISO-style currency code. Equality is by code.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	KRW Currency = "KRW"
)

func (c Currency) String() string { return string(c) }

// FxPair is an ordered currency pair quoted base/counter: one unit of the
// base currency is worth Rate units of the counter currency.
type FxPair struct {
	Base    Currency
	Counter Currency
}

func (p FxPair) String() string { return fmt.Sprintf("%s/%s", p.Base, p.Counter) }

// Inverse returns the pair with base and counter swapped.
func (p FxPair) Inverse() FxPair { return FxPair{Base: p.Counter, Counter: p.Base} }

// ErrFxRateNotFound is returned when a spot rate cannot be resolved.
var ErrFxRateNotFound = fmt.Errorf("fx rate not available")

// FxMatrix holds spot FX rates. Lookups resolve the direct pair, its
// inverse, or the identity rate for a degenerate pair; anything else is an
// explicit error, never a silent default.
type FxMatrix struct {
	rates map[FxPair]float64
}

// NewFxMatrix builds an immutable matrix from the given rates.
func NewFxMatrix(rates map[FxPair]float64) *FxMatrix {
	copied := make(map[FxPair]float64, len(rates))
	for p, r := range rates {
		copied[p] = r
	}
	return &FxMatrix{rates: copied}
}

// Rate returns the spot rate converting one unit of base into counter.
func (m *FxMatrix) Rate(base, counter Currency) (float64, error) {
	if base == counter {
		return 1.0, nil
	}
	if m != nil {
		if r, ok := m.rates[FxPair{Base: base, Counter: counter}]; ok {
			return r, nil
		}
		if r, ok := m.rates[FxPair{Base: counter, Counter: base}]; ok {
			return 1.0 / r, nil
		}
	}
	return 0, fmt.Errorf("%w: %s/%s", ErrFxRateNotFound, base, counter)
}
