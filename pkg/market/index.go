package market

import (
	"fmt"
	"time"

	"github.com/quantfoundry/curverisk/pkg/daycount"
)

func errDegeneratePair(p FxPair) error {
	return fmt.Errorf("fx index pair must have distinct currencies: %s", p)
}

// IborIndex describes a term interbank offered rate (LIBOR-style) index.
// Date arithmetic is deterministic calendar arithmetic: business-day
// adjustment is an external concern resolved before dates reach this
// library.
type IborIndex struct {
	IndexName     string
	Ccy           Currency
	TenorMonths   int
	FixingLagDays int
	DayCount      daycount.Convention
}

func (i IborIndex) Name() string       { return i.IndexName }
func (i IborIndex) Currency() Currency { return i.Ccy }

// EffectiveFromFixing returns the accrual start implied by a fixing date.
func (i IborIndex) EffectiveFromFixing(fixing time.Time) time.Time {
	return fixing.AddDate(0, 0, i.FixingLagDays)
}

// MaturityFromEffective returns the accrual end implied by a start date.
func (i IborIndex) MaturityFromEffective(effective time.Time) time.Time {
	return daycount.AddMonths(effective, i.TenorMonths)
}

// OvernightIndex describes a single-day benchmark (SOFR/ESTR/TONAR style).
type OvernightIndex struct {
	IndexName string
	Ccy       Currency
	DayCount  daycount.Convention
}

func (i OvernightIndex) Name() string       { return i.IndexName }
func (i OvernightIndex) Currency() Currency { return i.Ccy }

// EffectiveFromFixing returns the accrual start for an overnight fixing.
func (i OvernightIndex) EffectiveFromFixing(fixing time.Time) time.Time {
	return fixing
}

// MaturityFromEffective returns the next calendar day.
func (i OvernightIndex) MaturityFromEffective(effective time.Time) time.Time {
	return effective.AddDate(0, 0, 1)
}

// FxIndex describes a published FX fixing (WM/Reuters style) with a
// settlement lag between fixing and delivery. Construction with identical
// base and counter currencies is invalid and rejected by NewFxIndex.
type FxIndex struct {
	IndexName       string
	Pair            FxPair
	MaturityLagDays int
}

// NewFxIndex validates and builds an FX index definition.
func NewFxIndex(name string, pair FxPair, maturityLagDays int) (FxIndex, error) {
	if pair.Base == pair.Counter {
		return FxIndex{}, errDegeneratePair(pair)
	}
	return FxIndex{IndexName: name, Pair: pair, MaturityLagDays: maturityLagDays}, nil
}

func (i FxIndex) Name() string { return i.IndexName }

// MaturityFromFixing returns the delivery date implied by a fixing date.
func (i FxIndex) MaturityFromFixing(fixing time.Time) time.Time {
	return fixing.AddDate(0, 0, i.MaturityLagDays)
}

// PriceIndex describes a consumer price index published monthly.
type PriceIndex struct {
	IndexName string
	Ccy       Currency
}

func (i PriceIndex) Name() string       { return i.IndexName }
func (i PriceIndex) Currency() Currency { return i.Ccy }

// Common benchmark definitions.
var (
	Euribor3M = IborIndex{IndexName: "EURIBOR-3M", Ccy: EUR, TenorMonths: 3, FixingLagDays: 2, DayCount: daycount.Act360}
	Euribor6M = IborIndex{IndexName: "EURIBOR-6M", Ccy: EUR, TenorMonths: 6, FixingLagDays: 2, DayCount: daycount.Act360}
	USDLibor3M = IborIndex{IndexName: "USD-LIBOR-3M", Ccy: USD, TenorMonths: 3, FixingLagDays: 2, DayCount: daycount.Act360}

	Sofr  = OvernightIndex{IndexName: "SOFR", Ccy: USD, DayCount: daycount.Act360}
	Estr  = OvernightIndex{IndexName: "ESTR", Ccy: EUR, DayCount: daycount.Act360}
	Tonar = OvernightIndex{IndexName: "TONAR", Ccy: JPY, DayCount: daycount.Act365F}

	EUHICP = PriceIndex{IndexName: "EU-HICP", Ccy: EUR}
	USCPIU = PriceIndex{IndexName: "US-CPI-U", Ccy: USD}
)
