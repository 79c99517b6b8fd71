package phetrima

import (
	"math"
	"testing"

	"github.com/lyonad/Phetrima/gdpseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSeries(t *testing.T, country, continent string, startYear int, values []float64) *gdpseries.Series {
	t.Helper()
	years := make([]int, len(values))
	for i := range years {
		years[i] = startYear + i
	}
	s, err := gdpseries.New(country, continent, years, values)
	require.NoError(t, err)
	return s
}

// growthValues returns n yearly values following exponential growth with a
// small deterministic wiggle so model fits have non-zero residual variance.
func growthValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 100.0 * math.Exp(0.04*float64(i)) * (1.0 + 0.01*math.Sin(float64(i)))
	}
	return values
}

func TestEvaluatorSkipsShortHistory(t *testing.T) {
	testData := map[string]struct {
		values []float64
	}{
		// 14 training years before the 2022 cutoff plus 2 test years
		"insufficient training": {append(growthValues(14), 500.0, 510.0)},
		// 20 training years but nothing at or after the cutoff
		"empty test split": {growthValues(20)},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var startYear int
			switch name {
			case "insufficient training":
				startYear = 2008
			default:
				startYear = 2000
			}
			s := makeSeries(t, "Testland", "Europe", startYear, td.values)
			res := New(nil).Run([]*gdpseries.Series{s})
			assert.Empty(t, res.Countries)
			assert.Empty(t, res.Forecasts)
		})
	}
}

func TestEvaluatorMissingTrainingValuesCountTowardSkip(t *testing.T) {
	// 22 year slots but only 14 valid training observations
	values := growthValues(26)
	for i := 0; i < 8; i++ {
		values[i] = math.NaN()
	}
	s := makeSeries(t, "Gapland", "Asia", 2000, values)

	res := New(nil).Run([]*gdpseries.Series{s})
	assert.Empty(t, res.Countries)
}

func TestEvaluatorEmitsCompleteForecasts(t *testing.T) {
	series := []*gdpseries.Series{
		makeSeries(t, "Alpha", "Europe", 2000, growthValues(26)),
		makeSeries(t, "Beta", "Asia", 2000, growthValues(26)),
		makeSeries(t, "Gamma", "Europe", 2000, growthValues(26)),
	}

	res := New(nil).Run(series)
	require.Len(t, res.Countries, 3)

	var wantRecords int
	for _, c := range res.Countries {
		wantRecords += 2 * c.NTest
		assert.Equal(t, 26, c.NObservations)
		assert.Equal(t, 22, c.NTrain)
		assert.Equal(t, 4, c.NTest)

		assert.False(t, math.IsNaN(c.ARIMAMAE))
		assert.False(t, math.IsNaN(c.ARIMARMSE))
		assert.False(t, math.IsNaN(c.ARIMAMAPE))
		assert.False(t, math.IsNaN(c.ProphetMAE))
		assert.False(t, math.IsNaN(c.ProphetRMSE))
		assert.False(t, math.IsNaN(c.ProphetMAPE))
	}
	require.Len(t, res.Forecasts, wantRecords)

	for _, r := range res.Forecasts {
		assert.False(t, math.IsNaN(r.Forecast), "missing forecast for %s %s %d", r.Country, r.Model, r.Year)
		assert.GreaterOrEqual(t, r.Year, 2022)
	}

	// countries stay in input order
	assert.Equal(t, "Alpha", res.Countries[0].Country)
	assert.Equal(t, "Beta", res.Countries[1].Country)
	assert.Equal(t, "Gamma", res.Countries[2].Country)
}

func TestEvaluatorParallelMatchesSequential(t *testing.T) {
	series := []*gdpseries.Series{
		makeSeries(t, "Alpha", "Europe", 2000, growthValues(26)),
		makeSeries(t, "Beta", "Asia", 2000, growthValues(26)),
		makeSeries(t, "Gamma", "Europe", 2000, growthValues(26)),
		makeSeries(t, "Delta", "Africa", 2000, growthValues(26)),
	}

	seq := New(nil).Run(series)

	opt := NewDefaultOptions()
	opt.Parallelism = 4
	par := New(opt).Run(series)

	assert.Equal(t, seq, par)
}

func TestEvaluatorConstantSeriesFallsBackToPersistence(t *testing.T) {
	// A constant training series gives every ARIMA candidate zero residual
	// variance and an undefined AIC, so the grid search finds no viable model
	// and the persistence fallback must kick in.
	values := make([]float64, 26)
	for i := range values {
		values[i] = 100.0
	}
	// monotonically increasing test years
	values[22], values[23], values[24], values[25] = 110, 120, 130, 140

	s := makeSeries(t, "Flatland", "Oceania", 2000, values)
	res := New(nil).Run([]*gdpseries.Series{s})
	require.Len(t, res.Countries, 1)

	c := res.Countries[0]
	assert.True(t, c.ARIMAFallback)
	assert.Nil(t, c.ARIMAOrder)

	// MAE of a persistence forecast against the test values
	wantMAE := (10.0 + 20.0 + 30.0 + 40.0) / 4.0
	assert.InDelta(t, wantMAE, c.ARIMAMAE, 1e-9)

	for _, r := range res.Forecasts {
		if r.Model == ModelARIMA {
			assert.Equal(t, 100.0, r.Forecast)
		}
	}
}

func TestEvaluatorSeasonalFallbackOnNonPositiveValues(t *testing.T) {
	// A zero in training breaks the multiplicative (log space) fit, so the
	// Prophet side must fall back to persistence while ARIMA proceeds.
	values := growthValues(26)
	values[3] = 0.0

	s := makeSeries(t, "Zeroland", "Africa", 2000, values)
	res := New(nil).Run([]*gdpseries.Series{s})
	require.Len(t, res.Countries, 1)

	c := res.Countries[0]
	assert.True(t, c.ProphetFallback)

	last := values[21]
	for _, r := range res.Forecasts {
		if r.Model == ModelProphet {
			assert.Equal(t, last, r.Forecast)
		}
	}
}

func TestPersistenceForecast(t *testing.T) {
	fc := persistenceForecast(42.5, 3)
	assert.Equal(t, []float64{42.5, 42.5, 42.5}, fc)
}

func TestReconcileLength(t *testing.T) {
	testData := map[string]struct {
		fc       []float64
		h        int
		expected []float64
	}{
		"exact":    {[]float64{1, 2, 3}, 3, []float64{1, 2, 3}},
		"truncate": {[]float64{1, 2, 3, 4}, 2, []float64{1, 2}},
		"pad":      {[]float64{1, 2}, 4, []float64{1, 2, 2, 2}},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, reconcileLength(td.fc, td.h))
		})
	}
}
