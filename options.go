package phetrima

import (
	"github.com/lyonad/Phetrima/arima"
	"github.com/lyonad/Phetrima/seasonal"
)

// Options configures the evaluation pipeline.
type Options struct {
	// CutoffYear is the first test year; training uses years strictly before it.
	CutoffYear int

	// MinTrainingObs is the fewest valid training observations a country needs
	// to be processed at all.
	MinTrainingObs int

	// Parallelism is the number of countries processed concurrently. Values
	// below 2 process countries sequentially. Output ordering is unaffected.
	Parallelism int

	ARIMAOptions    *arima.Options
	SeasonalOptions *seasonal.Options
}

// NewDefaultOptions returns pipeline options matching the source study:
// train through 2021, test from 2022 on, at least 15 training observations.
func NewDefaultOptions() *Options {
	return &Options{
		CutoffYear:      2022,
		MinTrainingObs:  15,
		Parallelism:     1,
		ARIMAOptions:    arima.NewDefaultOptions(),
		SeasonalOptions: seasonal.NewDefaultOptions(),
	}
}
