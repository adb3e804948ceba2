package risk

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/internal/config"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/pricer"
)

// DemoBook builds a representative instrument per configured curve role so
// a revaluation exercises every sensitivity family the snapshot supports.
func DemoBook(cs *config.CurveSet, valuation time.Time) ([]BookEntry, error) {
	var book []BookEntry

	for _, spec := range cs.Curves {
		for _, ccy := range spec.DiscountCurrencies {
			book = append(book, BookEntry{
				Description: fmt.Sprintf("%s 1y deposit", ccy),
				Currency:    market.Currency(ccy),
				Instrument: pricer.TermDeposit{
					Ccy:      market.Currency(ccy),
					Start:    valuation.AddDate(0, 0, 2),
					End:      valuation.AddDate(1, 0, 2),
					Notional: 1_000_000,
					Rate:     0.02,
					DayCount: daycount.Act360,
				},
			})
		}
		for _, name := range spec.IborIndices {
			index, ok := market.IborIndexByName(name)
			if !ok {
				return nil, fmt.Errorf("demo book: unknown ibor index %q", name)
			}
			book = append(book, BookEntry{
				Description: fmt.Sprintf("%s 6m fra", name),
				Currency:    index.Currency(),
				Instrument: pricer.ForwardRateAgreement{
					Index:      index,
					FixingDate: valuation.AddDate(0, 6, 0),
					Notional:   1_000_000,
					FixedRate:  0.02,
				},
			})
		}
		for _, name := range spec.OvernightIndices {
			index, ok := market.OvernightIndexByName(name)
			if !ok {
				return nil, fmt.Errorf("demo book: unknown overnight index %q", name)
			}
			start := valuation.AddDate(0, 0, 2)
			book = append(book, BookEntry{
				Description: fmt.Sprintf("%s 1y ois leg", name),
				Currency:    index.Currency(),
				Instrument: pricer.OvernightLeg{
					Index:    index,
					Notional: 1_000_000,
					Periods: []pricer.AccrualPeriod{
						{Start: start, End: start.AddDate(0, 6, 0), Payment: start.AddDate(0, 6, 0)},
						{Start: start.AddDate(0, 6, 0), End: start.AddDate(1, 0, 0), Payment: start.AddDate(1, 0, 0)},
					},
				},
			})
		}
		for _, name := range spec.PriceIndices {
			index, ok := market.PriceIndexByName(name)
			if !ok {
				return nil, fmt.Errorf("demo book: unknown price index %q", name)
			}
			book = append(book, BookEntry{
				Description: fmt.Sprintf("%s 5y zc inflation swap", name),
				Currency:    index.Currency(),
				Instrument: pricer.ZeroCouponInflationSwap{
					Index:          index,
					BaseMonth:      valuation.AddDate(0, -1, 0),
					ReferenceMonth: valuation.AddDate(5, -1, 0),
					Payment:        valuation.AddDate(5, 0, 0),
					Notional:       1_000_000,
					FixedRate:      0.02,
					Years:          5,
				},
			})
		}
	}

	for _, spec := range cs.FxIndices {
		index, err := market.NewFxIndex(spec.Name,
			market.FxPair{Base: market.Currency(spec.Base), Counter: market.Currency(spec.Counter)},
			spec.MaturityLagDays)
		if err != nil {
			return nil, err
		}
		book = append(book, BookEntry{
			Description: fmt.Sprintf("%s 1y fx reset", spec.Name),
			Currency:    index.Pair.Counter,
			Instrument: pricer.FxResetPayment{
				Index:      index,
				Reference:  index.Pair.Base,
				FixingDate: valuation.AddDate(1, 0, 0),
				Payment:    valuation.AddDate(1, 0, index.MaturityLagDays),
				Notional:   1_000_000,
			},
		})
	}

	return book, nil
}
