// Package seasonal implements a trend plus yearly-seasonality forecaster for
// yearly observed series. The composition is multiplicative: the model is fit
// by ordinary least squares in log space, so the seasonal component scales
// with the trend level. Yearly Fourier columns whose phase does not vary
// across the training sample are pruned as collinear with the intercept,
// which is always the case at calendar-year sampling.
package seasonal

import (
	"errors"
	"fmt"
	"math"

	"github.com/lyonad/Phetrima/models"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInsufficientData  = errors.New("insufficient training data")
	ErrSeriesLenMismatch = errors.New("years have a different length than values")
	ErrNonPositive       = errors.New("multiplicative composition requires positive values")
	ErrUntrained         = errors.New("forecaster has not been fit yet")
	ErrInvalidHorizon    = errors.New("forecast horizon must be at least one step")
	ErrDegenerateFit     = errors.New("fit produced non-finite forecasts")
)

// MinTrainingObservations is the fewest points the trend fit will accept.
const MinTrainingObservations = 3

// Options configures the seasonal forecaster.
type Options struct {
	// YearlyOrders is the number of Fourier orders for the yearly component.
	YearlyOrders int
}

// NewDefaultOptions returns the default forecaster options.
func NewDefaultOptions() *Options {
	return &Options{
		YearlyOrders: 3,
	}
}

// Forecaster fits a multiplicative trend+seasonality model to one series and
// generates forecasts for the years immediately following training.
type Forecaster struct {
	opt *Options

	model     *models.OLSRegression
	labels    []string
	firstYear int
	lastYear  int
	trained   bool
}

// New creates a forecaster with the given options. If none are provided a
// default is used.
func New(opt *Options) *Forecaster {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Forecaster{opt: opt}
}

// Fit estimates the trend and seasonal coefficients from yearly training
// observations. Years must be strictly increasing and all values positive.
func (f *Forecaster) Fit(years []int, values []float64) error {
	if len(years) != len(values) {
		return fmt.Errorf(
			"years has length of %d, but values has a length of %d, %w",
			len(years), len(values), ErrSeriesLenMismatch,
		)
	}
	if len(values) < MinTrainingObservations {
		return fmt.Errorf("%d observations, %w", len(values), ErrInsufficientData)
	}
	for i, v := range values {
		if v <= 0 || math.IsNaN(v) {
			return fmt.Errorf("value %f at index %d, %w", v, i, ErrNonPositive)
		}
	}

	f.firstYear = years[0]
	f.lastYear = years[len(years)-1]

	cols := buildColumns(years, f.firstYear, f.opt.YearlyOrders)
	cols = pruneConstant(cols)
	f.labels = columnLabels(cols)

	logY := make([]float64, len(values))
	for i, v := range values {
		logY[i] = math.Log(v)
	}

	f.model = models.NewOLSRegression(nil)
	if err := f.model.Fit(designMatrix(cols, len(years)), mat.NewDense(len(logY), 1, logY)); err != nil {
		return fmt.Errorf("unable to fit trend and seasonality, %w", err)
	}
	f.trained = true
	return nil
}

// Forecast produces predictions for exactly the next h contiguous years
// following the last training year.
func (f *Forecaster) Forecast(h int) ([]float64, error) {
	if !f.trained {
		return nil, ErrUntrained
	}
	if h < 1 {
		return nil, ErrInvalidHorizon
	}

	years := make([]int, h)
	for i := range years {
		years[i] = f.lastYear + i + 1
	}

	cols := buildColumns(years, f.firstYear, f.opt.YearlyOrders)
	cols = selectColumns(cols, f.labels)

	logPred, err := f.model.Predict(designMatrix(cols, h))
	if err != nil {
		return nil, fmt.Errorf("unable to predict from seasonal model, %w", err)
	}

	res := make([]float64, h)
	for i, v := range logPred {
		res[i] = math.Exp(v)
		if math.IsNaN(res[i]) || math.IsInf(res[i], 0) {
			return nil, fmt.Errorf("at step %d, %w", i+1, ErrDegenerateFit)
		}
	}
	return res, nil
}

// FeatureLabels returns the design-matrix column labels retained after
// collinearity pruning.
func (f *Forecaster) FeatureLabels() []string {
	labels := make([]string, len(f.labels))
	copy(labels, f.labels)
	return labels
}
