package risk

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfoundry/curverisk/internal/config"
	"github.com/quantfoundry/curverisk/pkg/market"
)

func testCurveSet() *config.CurveSet {
	return &config.CurveSet{
		ValuationDate: "2026-08-28",
		DayCount:      "ACT/365F",
		Curves: []config.CurveSpec{
			{
				Name:         "EUR-DSC",
				Interpolator: "linear",
				Kind:         "zero-rate",
				DayCount:     "ACT/365F",
				Nodes: []config.NodeSpec{
					{Tenor: "3M", Value: 0.021},
					{Tenor: "1Y", Value: 0.023},
					{Tenor: "5Y", Value: 0.030},
					{Tenor: "10Y", Value: 0.032},
				},
				DiscountCurrencies: []string{"EUR"},
				IborIndices:        []string{"EURIBOR-3M"},
				OvernightIndices:   []string{"ESTR"},
			},
			{
				Name:         "USD-DSC",
				Interpolator: "log-linear",
				Kind:         "discount-factor",
				DayCount:     "ACT/365F",
				Nodes: []config.NodeSpec{
					{Tenor: "1Y", Value: 0.96310},
					{Tenor: "5Y", Value: 0.83527},
					{Tenor: "10Y", Value: 0.69768},
				},
				DiscountCurrencies: []string{"USD"},
			},
			{
				Name:         "EU-HICP",
				Interpolator: "linear",
				Kind:         "zero-rate",
				DayCount:     "ACT/365F",
				Nodes: []config.NodeSpec{
					{Tenor: "1Y", Value: 128.0},
					{Tenor: "5Y", Value: 139.0},
					{Tenor: "10Y", Value: 154.0},
				},
				PriceIndices: []string{"EU-HICP"},
			},
		},
		FxRates: []config.FxRateSpec{
			{Base: "EUR", Counter: "USD", Rate: 1.0842},
		},
		FxIndices: []config.FxIndexSpec{
			{Name: "EUR/USD-WM", Base: "EUR", Counter: "USD", MaturityLagDays: 2},
		},
		Fixings: []config.FixingSpec{
			{Index: "EU-HICP", Points: []config.PointSpec{
				{Date: "2026-06-01", Value: 125.8},
				{Date: "2026-07-01", Value: 126.1},
			}},
		},
	}
}

func TestDemoBook_CoversConfiguredRoles(t *testing.T) {
	cs := testCurveSet()
	p, err := cs.BuildProvider(nil)
	require.NoError(t, err)

	book, err := DemoBook(cs, p.ValuationDate())
	require.NoError(t, err)

	// One deposit per discount currency, one FRA, one OIS leg, one
	// inflation swap, one fx reset.
	require.Len(t, book, 6)
	for _, entry := range book {
		assert.NotEmpty(t, entry.Description)
		pv, err := entry.Instrument.PresentValue(p)
		require.NoError(t, err, entry.Description)
		assert.False(t, math.IsNaN(pv), "NaN pv for %s", entry.Description)
	}
}

func TestService_Revalue(t *testing.T) {
	svc := NewService(testCurveSet(), nil, zerolog.Nop())

	report, err := svc.Revalue()
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.False(t, report.RunAt.IsZero())
	assert.Equal(t, 2026, report.ValuationDate.Year())
	assert.Len(t, report.InstrumentPVs, 6)
	assert.Contains(t, report.PresentValues, market.EUR)
	assert.Contains(t, report.PresentValues, market.USD)

	// Every configured curve shows up in at least one sensitivity vector.
	curves := make(map[string]bool)
	for _, s := range report.Sensitivities {
		curves[s.CurveName] = true
		assert.NotEmpty(t, s.Sensitivity)
	}
	assert.True(t, curves["EUR-DSC"])
	assert.True(t, curves["USD-DSC"])
	assert.True(t, curves["EU-HICP"])

	assert.Same(t, report, svc.LastReport())
}

func TestService_LastReportBeforeRevalue(t *testing.T) {
	svc := NewService(testCurveSet(), nil, zerolog.Nop())
	assert.Nil(t, svc.LastReport())
}

func TestService_Curves(t *testing.T) {
	svc := NewService(testCurveSet(), nil, zerolog.Nop())

	views := svc.Curves()
	require.Len(t, views, 3)
	assert.Equal(t, "EUR-DSC", views[0].Name)
	assert.Equal(t, []string{"EURIBOR-3M"}, views[0].IborIndices)
	assert.Equal(t, "discount-factor", views[1].Kind)
	require.Len(t, views[2].Nodes, 3)
	assert.Equal(t, "1Y", views[2].Nodes[0].Tenor)
}
