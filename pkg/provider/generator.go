package provider

import (
	"fmt"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/rates"
)

// CurveDefinition describes how to build one curve from a parameter
// sub-vector, and which discounting and forwarding roles the result takes
// in the regenerated provider.
type CurveDefinition struct {
	Name         curve.Name
	Interpolator curve.Interpolator
	// NodeTimes are the curve node times in years; the parameter count of
	// the definition is the number of nodes.
	NodeTimes []float64
	DayCount  daycount.Convention
	Kind      CurveKind

	DiscountCurrencies []market.Currency
	IborIndices        []market.IborIndex
	OvernightIndices   []market.OvernightIndex
	PriceIndices       []market.PriceIndex
}

// ParameterCount returns the number of parameters the definition consumes
// from the flat calibration vector.
func (d CurveDefinition) ParameterCount() int { return len(d.NodeTimes) }

// Generator rebuilds providers from flat parameter vectors during
// calibration. It is stateless; one instance may serve concurrent
// calibrations.
type Generator struct{}

// NewGenerator builds a generator. Callers inject the instance they want;
// there is no process-wide default.
func NewGenerator() *Generator { return &Generator{} }

// Generate builds a provider from the base snapshot and a trial parameter
// vector. Definitions are walked in order, each slicing its declared
// parameter count from the vector: definitions and parameters must come
// from the same upstream assembly and must never be reordered
// independently. Curves not named by any definition are carried over by
// reference; the base provider is never mutated.
//
// Calibration metadata is attached to a curve when calibrationInfo holds
// an entry for its name; names without a matching definition are ignored.
// Price-index definitions require an existing fixing series in the base.
func (g *Generator) Generate(
	base *RatesProvider,
	definitions []CurveDefinition,
	parameters []float64,
	calibrationInfo map[curve.Name]*curve.CalibrationInfo,
) (*RatesProvider, error) {
	p := &RatesProvider{
		valuationDate: base.valuationDate,
		dayCount:      base.dayCount,
		discount:      make(map[market.Currency]rates.DiscountFactors, len(base.discount)),
		ibor:          make(map[market.IborIndex]*rates.IborIndexRates, len(base.ibor)),
		overnight:     make(map[market.OvernightIndex]*rates.OvernightIndexRates, len(base.overnight)),
		priceIndex:    make(map[market.PriceIndex]*rates.PriceIndexValues, len(base.priceIndex)),
		fxIndex:       make(map[market.FxIndex]*rates.FxIndexRates, len(base.fxIndex)),
		fx:            base.fx,
		timeSeries:    base.timeSeries,
		resolver:      base.resolver,
		aggregator:    base.aggregator,
	}
	// Structural sharing: unaffected entries are reused by reference.
	for ccy, dfs := range base.discount {
		p.discount[ccy] = dfs
	}
	for index, r := range base.ibor {
		p.ibor[index] = r
	}
	for index, r := range base.overnight {
		p.overnight[index] = r
	}
	for index, v := range base.priceIndex {
		p.priceIndex[index] = v
	}

	offset := 0
	for _, def := range definitions {
		k := def.ParameterCount()
		if offset+k > len(parameters) {
			return nil, fmt.Errorf("curve %s: %w: need parameters [%d:%d), have %d",
				def.Name, curve.ErrParameterLength, offset, offset+k, len(parameters))
		}
		sub := parameters[offset : offset+k]
		offset += k

		crv, err := curve.NewInterpolatedCurve(def.Name, def.NodeTimes, sub, def.Interpolator, def.DayCount)
		if err != nil {
			return nil, err
		}
		if info, ok := calibrationInfo[def.Name]; ok {
			crv = crv.WithCalibrationInfo(info)
		}

		for _, ccy := range def.DiscountCurrencies {
			dfs, err := newDiscountFactors(def.Kind, ccy, base.valuationDate, crv)
			if err != nil {
				return nil, err
			}
			p.discount[ccy] = dfs
		}
		for _, index := range def.IborIndices {
			dfs, err := newDiscountFactors(def.Kind, index.Currency(), base.valuationDate, crv)
			if err != nil {
				return nil, err
			}
			p.ibor[index] = rates.NewIborIndexRates(index, p.timeSeries[index.Name()], dfs)
		}
		for _, index := range def.OvernightIndices {
			dfs, err := newDiscountFactors(def.Kind, index.Currency(), base.valuationDate, crv)
			if err != nil {
				return nil, err
			}
			p.overnight[index] = rates.NewOvernightIndexRates(index, p.timeSeries[index.Name()], dfs)
		}
		for _, index := range def.PriceIndices {
			piv, err := rates.NewPriceIndexValues(index, base.valuationDate, p.timeSeries[index.Name()], crv)
			if err != nil {
				return nil, err
			}
			p.priceIndex[index] = piv
		}
	}
	if offset != len(parameters) {
		return nil, fmt.Errorf("%w: definitions consume %d parameters, vector has %d",
			curve.ErrParameterLength, offset, len(parameters))
	}

	// FX index rates reference the pair's discount curves, so they are
	// rewired against the regenerated discount map.
	for index, fxr := range base.fxIndex {
		rebuilt, err := buildFxIndexRates(index, p.discount, p.fx, fxr.Fixings())
		if err != nil {
			return nil, err
		}
		p.fxIndex[index] = rebuilt
	}
	return p, nil
}
