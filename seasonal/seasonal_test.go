package seasonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearsFrom(start, n int) []int {
	years := make([]int, n)
	for i := range years {
		years[i] = start + i
	}
	return years
}

func TestFitValidation(t *testing.T) {
	testData := map[string]struct {
		years  []int
		values []float64
		err    error
	}{
		"length mismatch": {
			years:  []int{2000, 2001},
			values: []float64{1},
			err:    ErrSeriesLenMismatch,
		},
		"too short": {
			years:  []int{2000, 2001},
			values: []float64{1, 2},
			err:    ErrInsufficientData,
		},
		"zero value": {
			years:  []int{2000, 2001, 2002, 2003},
			values: []float64{1, 0, 3, 4},
			err:    ErrNonPositive,
		},
		"negative value": {
			years:  []int{2000, 2001, 2002, 2003},
			values: []float64{1, -2, 3, 4},
			err:    ErrNonPositive,
		},
		"nan value": {
			years:  []int{2000, 2001, 2002, 2003},
			values: []float64{1, math.NaN(), 3, 4},
			err:    ErrNonPositive,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := New(nil).Fit(td.years, td.values)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestFitAndForecastExponentialGrowth(t *testing.T) {
	// exact exponential growth is linear in log space so the fit recovers it
	n := 20
	years := yearsFrom(2000, n)
	values := make([]float64, n)
	for i := range values {
		values[i] = 100.0 * math.Exp(0.05*float64(i))
	}

	f := New(nil)
	require.NoError(t, f.Fit(years, values))

	fc, err := f.Forecast(3)
	require.NoError(t, err)
	require.Len(t, fc, 3)

	for i, v := range fc {
		want := 100.0 * math.Exp(0.05*float64(n+i))
		assert.InEpsilon(t, want, v, 1e-6, "step %d", i+1)
	}
	assert.Greater(t, fc[1], fc[0])
	assert.Greater(t, fc[2], fc[1])
}

func TestFitPrunesDegenerateSeasonality(t *testing.T) {
	// at calendar-year sampling the yearly phase never varies, so only the
	// trend column survives collinearity pruning
	years := yearsFrom(2000, 18)
	values := make([]float64, len(years))
	for i := range values {
		values[i] = 50.0 * math.Exp(0.02*float64(i))
	}

	f := New(nil)
	require.NoError(t, f.Fit(years, values))
	assert.Equal(t, []string{"trend"}, f.FeatureLabels())
}

func TestForecastErrors(t *testing.T) {
	f := New(nil)
	_, err := f.Forecast(2)
	assert.ErrorIs(t, err, ErrUntrained)

	years := yearsFrom(2000, 16)
	values := make([]float64, len(years))
	for i := range values {
		values[i] = 10.0 + float64(i)
	}
	require.NoError(t, f.Fit(years, values))
	_, err = f.Forecast(0)
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}

func TestForecastContiguousHorizon(t *testing.T) {
	// constant series forecasts stay at the constant for every step of the
	// horizon with no gaps
	years := yearsFrom(2005, 15)
	values := make([]float64, len(years))
	for i := range values {
		values[i] = 250.0
	}

	f := New(nil)
	require.NoError(t, f.Fit(years, values))

	fc, err := f.Forecast(5)
	require.NoError(t, err)
	require.Len(t, fc, 5)
	for i, v := range fc {
		assert.InDelta(t, 250.0, v, 1e-6, "step %d", i+1)
	}
}

func TestBuildColumns(t *testing.T) {
	cols := buildColumns([]int{2000, 2001, 2002}, 2000, 2)
	require.Len(t, cols, 5)
	assert.Equal(t, "trend", cols[0].label)
	assert.Equal(t, []float64{0, 1, 2}, cols[0].data)
	assert.Equal(t, "seas_yearly_01_sin", cols[1].label)
	assert.Equal(t, "seas_yearly_02_cos", cols[4].label)
}

func TestPruneConstantKeepsTrend(t *testing.T) {
	cols := []column{
		{label: labelTrend, data: []float64{0, 0, 0}},
		{label: "seas_yearly_01_sin", data: []float64{0, 0, 0}},
		{label: "seas_yearly_01_cos", data: []float64{1, 1, 1}},
		{label: "varying", data: []float64{1, 2, 3}},
	}
	kept := pruneConstant(cols)
	require.Len(t, kept, 2)
	assert.Equal(t, labelTrend, kept[0].label)
	assert.Equal(t, "varying", kept[1].label)
}
