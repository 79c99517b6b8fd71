package arima

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyTrend returns n values following a linear trend with a deterministic
// sinusoidal perturbation so residual variance stays positive.
func noisyTrend(n int) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = 100.0 + 2.0*float64(i) + 3.0*math.Sin(1.7*float64(i))
	}
	return y
}

func TestOrderString(t *testing.T) {
	assert.Equal(t, "(1,0,2)", Order{P: 1, D: 0, Q: 2}.String())
}

func TestModelFitInsufficientData(t *testing.T) {
	m := New(Order{P: 2, D: 1, Q: 2}, nil)
	err := m.Fit(noisyTrend(10))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestModelFitAndForecast(t *testing.T) {
	testData := map[string]Order{
		"ar only":     {P: 1, D: 0, Q: 0},
		"ma only":     {P: 0, D: 0, Q: 1},
		"differenced": {P: 1, D: 1, Q: 0},
		"full":        {P: 2, D: 1, Q: 2},
	}

	y := noisyTrend(22)
	for name, order := range testData {
		t.Run(name, func(t *testing.T) {
			m := New(order, nil)
			require.NoError(t, m.Fit(y))
			assert.False(t, math.IsNaN(m.AIC()))

			fc, err := m.Forecast(4)
			require.NoError(t, err)
			require.Len(t, fc, 4)
			for i, v := range fc {
				assert.False(t, math.IsNaN(v), "step %d", i+1)
				assert.False(t, math.IsInf(v, 0), "step %d", i+1)
			}
		})
	}
}

func TestModelForecastTracksTrend(t *testing.T) {
	// a differenced model on a steadily increasing series should keep
	// forecasting values near or beyond the end of training
	y := noisyTrend(22)
	m := New(Order{P: 0, D: 1, Q: 0}, nil)
	require.NoError(t, m.Fit(y))

	fc, err := m.Forecast(3)
	require.NoError(t, err)
	last := y[len(y)-1]
	for _, v := range fc {
		assert.Greater(t, v, last-10.0)
	}
	assert.Greater(t, fc[2], fc[0])
}

func TestModelForecastErrors(t *testing.T) {
	m := New(Order{P: 1, D: 0, Q: 0}, nil)
	_, err := m.Forecast(2)
	assert.ErrorIs(t, err, ErrUntrainedModel)

	require.NoError(t, m.Fit(noisyTrend(20)))
	_, err = m.Forecast(0)
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}

func TestModelAICUnfit(t *testing.T) {
	m := New(Order{P: 1, D: 0, Q: 0}, nil)
	assert.True(t, math.IsNaN(m.AIC()))
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, difference([]float64{0, 1, 3, 6}))
	assert.Nil(t, difference([]float64{1}))
}

func TestACF(t *testing.T) {
	y := noisyTrend(30)
	r := acf(y, 3)
	require.Len(t, r, 4)
	assert.Equal(t, 1.0, r[0])
	// strong positive lag-1 autocorrelation for a trending series
	assert.Greater(t, r[1], 0.5)

	flat := acf([]float64{5, 5, 5, 5}, 2)
	assert.Equal(t, []float64{1, 0, 0}, flat)
}

func TestYuleWalker(t *testing.T) {
	// AR(1) with phi = 0.6 has acf r[k] = 0.6^k
	phi := yuleWalker([]float64{1, 0.6}, 1)
	require.Len(t, phi, 1)
	assert.InDelta(t, 0.6, phi[0], 1e-12)

	phi = yuleWalker([]float64{1, 0.6, 0.36}, 2)
	require.Len(t, phi, 2)
	assert.InDelta(t, 0.6, phi[0], 1e-9)
	assert.InDelta(t, 0.0, phi[1], 1e-9)

	assert.Nil(t, yuleWalker([]float64{1}, 1))
}
