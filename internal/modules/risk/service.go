// Package risk exposes the pricing library as a service module: it builds
// a provider from the configured curve set and stored fixings, prices a
// book and reports present values and curve parameter sensitivities.
package risk

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfoundry/curverisk/internal/config"
	"github.com/quantfoundry/curverisk/internal/database/repositories"
	"github.com/quantfoundry/curverisk/pkg/market"
	"github.com/quantfoundry/curverisk/pkg/pricer"
	"github.com/quantfoundry/curverisk/pkg/provider"
	"github.com/quantfoundry/curverisk/pkg/sensitivity"
)

// Service prices the configured book against the current snapshot.
type Service struct {
	log  zerolog.Logger
	cs   *config.CurveSet
	repo *repositories.RiskRepository

	mu         sync.RWMutex
	lastReport *Report
}

// Report is the result of one revaluation.
type Report struct {
	RunAt         time.Time                   `json:"run_at"`
	ValuationDate time.Time                   `json:"valuation_date"`
	PresentValues map[market.Currency]float64 `json:"present_values"`
	Sensitivities []ParameterSensitivityView  `json:"sensitivities"`
	InstrumentPVs []InstrumentView            `json:"instruments"`
}

// ParameterSensitivityView flattens one (curve, currency) vector for JSON.
type ParameterSensitivityView struct {
	CurveName   string    `json:"curve_name"`
	Currency    string    `json:"currency"`
	Sensitivity []float64 `json:"sensitivity"`
}

// InstrumentView is one priced instrument.
type InstrumentView struct {
	Description  string  `json:"description"`
	Currency     string  `json:"currency"`
	PresentValue float64 `json:"present_value"`
}

// BookEntry pairs an instrument with reporting metadata.
type BookEntry struct {
	Description string
	Currency    market.Currency
	Instrument  pricer.Instrument
}

// NewService creates the risk service.
func NewService(cs *config.CurveSet, repo *repositories.RiskRepository, log zerolog.Logger) *Service {
	return &Service{
		log:  log.With().Str("component", "risk").Logger(),
		cs:   cs,
		repo: repo,
	}
}

// Revalue rebuilds the provider from configuration and stored fixings,
// prices the demo book and stores the result.
func (s *Service) Revalue() (*Report, error) {
	prov, err := s.buildProvider()
	if err != nil {
		return nil, err
	}

	book, err := DemoBook(s.cs, prov.ValuationDate())
	if err != nil {
		return nil, err
	}

	report, err := s.price(prov, book)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	if s.repo != nil {
		sens, err := s.parameterSensitivities(prov, book)
		if err == nil {
			if err := s.repo.SaveRun(prov.ValuationDate(), report.PresentValues, sens); err != nil {
				s.log.Error().Err(err).Msg("Failed to store risk run")
			}
		}
	}
	return report, nil
}

// LastReport returns the most recent revaluation, if any.
func (s *Service) LastReport() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport
}

// CurveView summarises one configured curve.
type CurveView struct {
	Name               string     `json:"name"`
	Kind               string     `json:"kind"`
	Interpolator       string     `json:"interpolator"`
	DayCount           string     `json:"day_count"`
	Nodes              []NodeView `json:"nodes"`
	DiscountCurrencies []string   `json:"discount_currencies,omitempty"`
	IborIndices        []string   `json:"ibor_indices,omitempty"`
	OvernightIndices   []string   `json:"overnight_indices,omitempty"`
	PriceIndices       []string   `json:"price_indices,omitempty"`
}

// NodeView is one configured curve node.
type NodeView struct {
	Tenor string  `json:"tenor"`
	Value float64 `json:"value"`
}

// Curves lists the configured curve definitions.
func (s *Service) Curves() []CurveView {
	views := make([]CurveView, 0, len(s.cs.Curves))
	for _, spec := range s.cs.Curves {
		v := CurveView{
			Name:               spec.Name,
			Kind:               spec.Kind,
			Interpolator:       spec.Interpolator,
			DayCount:           spec.DayCount,
			DiscountCurrencies: spec.DiscountCurrencies,
			IborIndices:        spec.IborIndices,
			OvernightIndices:   spec.OvernightIndices,
			PriceIndices:       spec.PriceIndices,
		}
		for _, n := range spec.Nodes {
			v.Nodes = append(v.Nodes, NodeView{Tenor: n.Tenor, Value: n.Value})
		}
		views = append(views, v)
	}
	return views
}

func (s *Service) buildProvider() (*provider.RatesProvider, error) {
	var stored map[string]market.TimeSeries
	if s.repo != nil {
		var err error
		stored, err = s.repo.LoadFixings()
		if err != nil {
			return nil, err
		}
	}
	return s.cs.BuildProvider(stored)
}

func (s *Service) price(prov *provider.RatesProvider, book []BookEntry) (*Report, error) {
	report := &Report{
		RunAt:         time.Now().UTC(),
		ValuationDate: prov.ValuationDate(),
		PresentValues: make(map[market.Currency]float64),
	}
	var points []sensitivity.PointSensitivity
	for _, entry := range book {
		pv, err := entry.Instrument.PresentValue(prov)
		if err != nil {
			return nil, fmt.Errorf("price %s: %w", entry.Description, err)
		}
		report.PresentValues[entry.Currency] += pv
		report.InstrumentPVs = append(report.InstrumentPVs, InstrumentView{
			Description:  entry.Description,
			Currency:     string(entry.Currency),
			PresentValue: pv,
		})

		sens, err := entry.Instrument.PointSensitivities(prov)
		if err != nil {
			return nil, fmt.Errorf("sensitivities %s: %w", entry.Description, err)
		}
		points = append(points, sens...)
	}

	params, err := prov.ParameterSensitivity(points)
	if err != nil {
		return nil, fmt.Errorf("aggregate sensitivities: %w", err)
	}
	for _, ps := range params.List() {
		report.Sensitivities = append(report.Sensitivities, ParameterSensitivityView{
			CurveName:   string(ps.CurveName),
			Currency:    string(ps.Currency),
			Sensitivity: ps.Sensitivity,
		})
	}
	return report, nil
}

func (s *Service) parameterSensitivities(prov *provider.RatesProvider, book []BookEntry) (sensitivity.ParameterSensitivities, error) {
	var points []sensitivity.PointSensitivity
	for _, entry := range book {
		sens, err := entry.Instrument.PointSensitivities(prov)
		if err != nil {
			return sensitivity.ParameterSensitivities{}, err
		}
		points = append(points, sens...)
	}
	return prov.ParameterSensitivity(points)
}
