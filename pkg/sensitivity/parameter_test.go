package sensitivity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfoundry/curverisk/pkg/curve"
	"github.com/quantfoundry/curverisk/pkg/market"
)

func TestNewParameterSensitivities_MergesByKey(t *testing.T) {
	ps, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1, 2}},
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{10, 20}},
		ParameterSensitivity{CurveName: "USD-DSC", Currency: market.USD, Sensitivity: []float64{5}},
	)
	require.NoError(t, err)
	require.Equal(t, 2, ps.Size())

	merged, ok := ps.Find(Key{CurveName: "EUR-DSC", Currency: market.EUR})
	require.True(t, ok)
	assert.Equal(t, []float64{11, 22}, merged.Sensitivity)
}

func TestNewParameterSensitivities_KeepsCurrenciesApart(t *testing.T) {
	// The same curve in two settlement currencies never merges.
	ps, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1}},
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.USD, Sensitivity: []float64{2}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, ps.Size())
}

func TestNewParameterSensitivities_LengthMismatch(t *testing.T) {
	_, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1, 2}},
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1}},
	)
	assert.True(t, errors.Is(err, curve.ErrParameterLength))
}

func TestParameterSensitivities_SortedByKey(t *testing.T) {
	ps, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "USD-DSC", Currency: market.USD, Sensitivity: []float64{1}},
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.USD, Sensitivity: []float64{2}},
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{3}},
	)
	require.NoError(t, err)

	list := ps.List()
	require.Len(t, list, 3)
	assert.Equal(t, Key{CurveName: "EUR-DSC", Currency: market.EUR}, list[0].Key())
	assert.Equal(t, Key{CurveName: "EUR-DSC", Currency: market.USD}, list[1].Key())
	assert.Equal(t, Key{CurveName: "USD-DSC", Currency: market.USD}, list[2].Key())
}

func TestParameterSensitivities_CombinedWith(t *testing.T) {
	a, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1, 2}},
	)
	require.NoError(t, err)
	b, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{3, 4}},
		ParameterSensitivity{CurveName: "USD-DSC", Currency: market.USD, Sensitivity: []float64{5}},
	)
	require.NoError(t, err)

	combined, err := a.CombinedWith(b)
	require.NoError(t, err)
	require.Equal(t, 2, combined.Size())

	eur, ok := combined.Find(Key{CurveName: "EUR-DSC", Currency: market.EUR})
	require.True(t, ok)
	assert.Equal(t, []float64{4, 6}, eur.Sensitivity)

	// Inputs are untouched.
	orig, _ := a.Find(Key{CurveName: "EUR-DSC", Currency: market.EUR})
	assert.Equal(t, []float64{1, 2}, orig.Sensitivity)
}

func TestParameterSensitivities_MultipliedBy(t *testing.T) {
	ps, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1, -2}},
	)
	require.NoError(t, err)

	scaled := ps.MultipliedBy(10)
	got, _ := scaled.Find(Key{CurveName: "EUR-DSC", Currency: market.EUR})
	assert.Equal(t, []float64{10, -20}, got.Sensitivity)

	assert.InDelta(t, -10.0, scaled.Total(), 1e-12)
}

func TestParameterSensitivities_EqualWithTolerance(t *testing.T) {
	a, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1, 2}},
	)
	require.NoError(t, err)
	b, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "EUR-DSC", Currency: market.EUR, Sensitivity: []float64{1 + 1e-10, 2}},
	)
	require.NoError(t, err)

	assert.True(t, a.EqualWithTolerance(b, 1e-9))
	assert.False(t, a.EqualWithTolerance(b, 1e-12))

	c, err := NewParameterSensitivities(
		ParameterSensitivity{CurveName: "USD-DSC", Currency: market.USD, Sensitivity: []float64{1, 2}},
	)
	require.NoError(t, err)
	assert.False(t, a.EqualWithTolerance(c, 1.0))
}
