package phetrima

import (
	"errors"
	"math"
)

var ErrResLenMismatch = errors.New("actual and forecast have different lengths")

// Scores holds forecast accuracy metrics for one (country, model) pair.
// Metrics that cannot be computed are NaN.
type Scores struct {
	MAE  float64 // mean absolute error
	RMSE float64 // root mean squared error
	MAPE float64 // mean absolute percent error over non-zero actuals
}

// NewScores computes MAE, RMSE, and MAPE between equal-length actual and
// forecast sequences. Positions where either value is NaN are dropped; if no
// positions remain all metrics are NaN. MAPE only considers positions with a
// non-zero actual and is NaN if there are none.
func NewScores(actual, forecast []float64) (*Scores, error) {
	if len(actual) != len(forecast) {
		return nil, ErrResLenMismatch
	}

	var absSum, sqSum float64
	var n int
	var pctSum float64
	var nPct int
	for i := 0; i < len(actual); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(forecast[i]) {
			continue
		}
		diff := actual[i] - forecast[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		n++

		if actual[i] != 0 {
			pctSum += math.Abs(diff / actual[i])
			nPct++
		}
	}

	s := &Scores{
		MAE:  math.NaN(),
		RMSE: math.NaN(),
		MAPE: math.NaN(),
	}
	if n == 0 {
		return s, nil
	}
	s.MAE = absSum / float64(n)
	s.RMSE = math.Sqrt(sqSum / float64(n))
	if nPct > 0 {
		s.MAPE = pctSum / float64(nPct) * 100.0
	}
	return s, nil
}
