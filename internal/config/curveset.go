package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/daycount"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/provider"
)

var validate = validator.New()

// CurveSet is the YAML description of a full market snapshot: curve
// definitions with node quotes, spot FX rates and historical fixings.
type CurveSet struct {
	ValuationDate string        `yaml:"valuation_date" validate:"required"`
	DayCount      string        `yaml:"day_count" default:"ACT/365F"`
	Curves        []CurveSpec   `yaml:"curves" validate:"required,min=1,dive"`
	FxRates       []FxRateSpec  `yaml:"fx_rates" validate:"dive"`
	FxIndices     []FxIndexSpec `yaml:"fx_indices" validate:"dive"`
	Fixings       []FixingSpec  `yaml:"fixings" validate:"dive"`
}

// CurveSpec describes one curve and its provider roles.
type CurveSpec struct {
	Name         string     `yaml:"name" validate:"required"`
	Interpolator string     `yaml:"interpolator" default:"linear"`
	Kind         string     `yaml:"kind" default:"zero-rate" validate:"oneof=zero-rate discount-factor"`
	DayCount     string     `yaml:"day_count" default:"ACT/365F"`
	Nodes        []NodeSpec `yaml:"nodes" validate:"required,min=1,dive"`

	DiscountCurrencies []string `yaml:"discount_currencies"`
	IborIndices        []string `yaml:"ibor_indices"`
	OvernightIndices   []string `yaml:"overnight_indices"`
	PriceIndices       []string `yaml:"price_indices"`
}

// NodeSpec is one curve node: a tenor and its value (zero rate, discount
// factor or index level depending on the curve kind).
type NodeSpec struct {
	Tenor string  `yaml:"tenor" validate:"required"`
	Value float64 `yaml:"value"`
}

// FxRateSpec is one spot rate.
type FxRateSpec struct {
	Base    string  `yaml:"base" validate:"required,len=3"`
	Counter string  `yaml:"counter" validate:"required,len=3"`
	Rate    float64 `yaml:"rate" validate:"required,gt=0"`
}

// FxIndexSpec declares an FX fixing index backed by the snapshot's curves.
type FxIndexSpec struct {
	Name            string `yaml:"name" validate:"required"`
	Base            string `yaml:"base" validate:"required,len=3"`
	Counter         string `yaml:"counter" validate:"required,len=3"`
	MaturityLagDays int    `yaml:"maturity_lag_days" default:"2"`
}

// FixingSpec is a historical fixing series for one index.
type FixingSpec struct {
	Index  string      `yaml:"index" validate:"required"`
	Points []PointSpec `yaml:"points" validate:"required,min=1,dive"`
}

// PointSpec is one dated fixing.
type PointSpec struct {
	Date  string  `yaml:"date" validate:"required"`
	Value float64 `yaml:"value"`
}

// LoadCurveSet reads, defaults and validates a curve-set file.
func LoadCurveSet(path string) (*CurveSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curve set: %w", err)
	}
	var cs CurveSet
	if err := yaml.Unmarshal(raw, &cs); err != nil {
		return nil, fmt.Errorf("parse curve set: %w", err)
	}
	if err := defaults.Set(&cs); err != nil {
		return nil, fmt.Errorf("apply curve set defaults: %w", err)
	}
	if err := validate.Struct(&cs); err != nil {
		return nil, fmt.Errorf("validate curve set: %w", err)
	}
	return &cs, nil
}

const dateLayout = "2006-01-02"

// BuildProvider assembles an immutable provider from the curve set.
// Extra fixing series (e.g. loaded from storage) supplement the file's own
// fixings; series declared in the file win on conflicts.
func (cs *CurveSet) BuildProvider(extraFixings map[string]market.TimeSeries) (*provider.RatesProvider, error) {
	valuation, err := time.Parse(dateLayout, cs.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("valuation date: %w", err)
	}

	b := provider.NewBuilder(valuation).DayCount(daycount.Convention(cs.DayCount))

	for name, ts := range extraFixings {
		b.TimeSeries(name, ts)
	}
	for _, fx := range cs.FxRates {
		b.FxRate(market.FxPair{Base: market.Currency(fx.Base), Counter: market.Currency(fx.Counter)}, fx.Rate)
	}
	for _, fs := range cs.Fixings {
		points := make(map[time.Time]float64, len(fs.Points))
		for _, pt := range fs.Points {
			d, err := time.Parse(dateLayout, pt.Date)
			if err != nil {
				return nil, fmt.Errorf("fixing date for %s: %w", fs.Index, err)
			}
			points[d] = pt.Value
		}
		b.TimeSeries(fs.Index, market.NewTimeSeries(points))
	}

	for _, spec := range cs.Curves {
		crv, err := spec.build()
		if err != nil {
			return nil, err
		}
		kind := provider.CurveKind(spec.Kind)
		for _, ccy := range spec.DiscountCurrencies {
			b.DiscountCurve(market.Currency(ccy), crv, kind)
		}
		for _, name := range spec.IborIndices {
			index, ok := market.IborIndexByName(name)
			if !ok {
				return nil, fmt.Errorf("curve %s: unknown ibor index %q", spec.Name, name)
			}
			b.IborCurve(index, crv, kind)
		}
		for _, name := range spec.OvernightIndices {
			index, ok := market.OvernightIndexByName(name)
			if !ok {
				return nil, fmt.Errorf("curve %s: unknown overnight index %q", spec.Name, name)
			}
			b.OvernightCurve(index, crv, kind)
		}
		for _, name := range spec.PriceIndices {
			index, ok := market.PriceIndexByName(name)
			if !ok {
				return nil, fmt.Errorf("curve %s: unknown price index %q", spec.Name, name)
			}
			b.PriceIndexCurve(index, crv)
		}
	}

	for _, spec := range cs.FxIndices {
		index, err := market.NewFxIndex(spec.Name,
			market.FxPair{Base: market.Currency(spec.Base), Counter: market.Currency(spec.Counter)},
			spec.MaturityLagDays)
		if err != nil {
			return nil, err
		}
		b.FxIndex(index)
	}

	return b.Build()
}

// Definitions converts the curve set into ordered generator definitions,
// the companion to BuildProvider for calibration runs.
func (cs *CurveSet) Definitions() ([]provider.CurveDefinition, []float64, error) {
	defs := make([]provider.CurveDefinition, 0, len(cs.Curves))
	var params []float64
	for _, spec := range cs.Curves {
		times, values, interp, err := spec.nodes()
		if err != nil {
			return nil, nil, err
		}
		def := provider.CurveDefinition{
			Name:         curve.Name(spec.Name),
			Interpolator: interp,
			NodeTimes:    times,
			DayCount:     daycount.Convention(spec.DayCount),
			Kind:         provider.CurveKind(spec.Kind),
		}
		for _, ccy := range spec.DiscountCurrencies {
			def.DiscountCurrencies = append(def.DiscountCurrencies, market.Currency(ccy))
		}
		for _, name := range spec.IborIndices {
			index, ok := market.IborIndexByName(name)
			if !ok {
				return nil, nil, fmt.Errorf("curve %s: unknown ibor index %q", spec.Name, name)
			}
			def.IborIndices = append(def.IborIndices, index)
		}
		for _, name := range spec.OvernightIndices {
			index, ok := market.OvernightIndexByName(name)
			if !ok {
				return nil, nil, fmt.Errorf("curve %s: unknown overnight index %q", spec.Name, name)
			}
			def.OvernightIndices = append(def.OvernightIndices, index)
		}
		for _, name := range spec.PriceIndices {
			index, ok := market.PriceIndexByName(name)
			if !ok {
				return nil, nil, fmt.Errorf("curve %s: unknown price index %q", spec.Name, name)
			}
			def.PriceIndices = append(def.PriceIndices, index)
		}
		defs = append(defs, def)
		params = append(params, values...)
	}
	return defs, params, nil
}

func (spec CurveSpec) nodes() (times, values []float64, interp curve.Interpolator, err error) {
	interp, ok := curve.InterpolatorByName(spec.Interpolator)
	if !ok {
		return nil, nil, nil, fmt.Errorf("curve %s: unknown interpolator %q", spec.Name, spec.Interpolator)
	}
	times = make([]float64, 0, len(spec.Nodes))
	values = make([]float64, 0, len(spec.Nodes))
	for _, n := range spec.Nodes {
		t, err := daycount.TenorYears(n.Tenor)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("curve %s: %w", spec.Name, err)
		}
		// Price-index curves live on a month axis: forward index levels
		// are looked up by whole months from the valuation month.
		if len(spec.PriceIndices) > 0 {
			t *= 12
		}
		times = append(times, t)
		values = append(values, n.Value)
	}
	return times, values, interp, nil
}

func (spec CurveSpec) build() (*curve.InterpolatedCurve, error) {
	times, values, interp, err := spec.nodes()
	if err != nil {
		return nil, err
	}
	return curve.NewInterpolatedCurve(curve.Name(spec.Name), times, values, interp, daycount.Convention(spec.DayCount))
}
