package curve

import (
	"gonum.org/v1/gonum/mat"
)

// CalibrationInfo carries curve-level annotations produced during
// calibration. They feed risk reporting (converting parameter sensitivities
// into market-quote sensitivities) and are never consulted while pricing.
type CalibrationInfo struct {
	// Jacobian is the derivative of the curve parameters with respect to
	// the calibration instrument market quotes, ordered like the curve
	// parameters on rows and the quotes on columns.
	Jacobian *mat.Dense
	// MarketQuoteSensitivity maps a unit present-value move to market
	// quotes, one entry per calibration instrument.
	MarketQuoteSensitivity []float64
}

// NewCalibrationInfo builds calibration metadata.
func NewCalibrationInfo(jacobian *mat.Dense, marketQuoteSensitivity []float64) *CalibrationInfo {
	return &CalibrationInfo{
		Jacobian:               jacobian,
		MarketQuoteSensitivity: append([]float64(nil), marketQuoteSensitivity...),
	}
}

// MarketQuoteSensitivityOf converts a parameter sensitivity vector into
// market-quote space using the Jacobian: result = J^T * paramSens.
func (ci *CalibrationInfo) MarketQuoteSensitivityOf(paramSens []float64) []float64 {
	if ci == nil || ci.Jacobian == nil {
		return nil
	}
	rows, cols := ci.Jacobian.Dims()
	if rows != len(paramSens) {
		return nil
	}
	out := make([]float64, cols)
	v := mat.NewVecDense(rows, append([]float64(nil), paramSens...))
	res := mat.NewVecDense(cols, out)
	res.MulVec(ci.Jacobian.T(), v)
	return out
}
