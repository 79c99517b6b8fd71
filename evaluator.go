// Package phetrima evaluates ARIMA against a trend+seasonality ("Prophet"
// style) forecaster on per-country GDP series. Each country gets a
// walk-forward split, both models forecast the held-out years, and accuracy
// metrics are aggregated globally, per continent, and as win counts.
package phetrima

import (
	"math"
	"sync"

	"github.com/lyonad/Phetrima/arima"
	"github.com/lyonad/Phetrima/gdpseries"
	"github.com/lyonad/Phetrima/seasonal"
)

// Evaluator runs the per-country forecasting-and-evaluation pipeline.
type Evaluator struct {
	opt *Options
}

// New creates an Evaluator using the provided options. If no options are
// provided a default is used.
func New(opt *Options) *Evaluator {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	return &Evaluator{opt: opt}
}

type countryOutcome struct {
	result  *CountryResult
	records []ForecastRecord
}

// Run processes every country independently and collects the results in input
// order. Countries that fail the minimum-history precondition are excluded
// without aborting the run.
func (e *Evaluator) Run(series []*gdpseries.Series) *Results {
	if len(series) == 0 {
		return &Results{}
	}
	outcomes := make([]countryOutcome, len(series))

	workers := e.opt.Parallelism
	if workers < 1 {
		workers = 1
	}
	if workers > len(series) {
		workers = len(series)
	}

	if workers == 1 {
		for i, s := range series {
			outcomes[i] = e.processCountry(s)
		}
	} else {
		idxCh := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range idxCh {
					outcomes[i] = e.processCountry(series[i])
				}
			}()
		}
		for i := range series {
			idxCh <- i
		}
		close(idxCh)
		wg.Wait()
	}

	res := &Results{}
	for _, o := range outcomes {
		if o.result == nil {
			continue
		}
		res.Countries = append(res.Countries, *o.result)
		res.Forecasts = append(res.Forecasts, o.records...)
	}
	return res
}

// processCountry runs split, both forecasters, metric computation, and record
// emission for one country. A zero outcome means the country was skipped.
func (e *Evaluator) processCountry(s *gdpseries.Series) countryOutcome {
	train, test := s.Split(e.opt.CutoffYear)
	if train.Len() < e.opt.MinTrainingObs || test.Len() == 0 {
		return countryOutcome{}
	}

	h := test.Len()
	arimaFC, order, arimaFB := e.forecastARIMA(train, h)
	prophetFC, prophetFB := e.forecastSeasonal(train, h)

	arimaFC = reconcileLength(arimaFC, h)
	prophetFC = reconcileLength(prophetFC, h)

	arimaScores, err := NewScores(test.Values, arimaFC)
	if err != nil {
		return countryOutcome{}
	}
	prophetScores, err := NewScores(test.Values, prophetFC)
	if err != nil {
		return countryOutcome{}
	}

	result := &CountryResult{
		Country:       s.Country,
		Continent:     s.Continent,
		NObservations: s.Len(),
		NTrain:        train.Len(),
		NTest:         test.Len(),
		ARIMAMAE:      nanToZero(arimaScores.MAE),
		ARIMARMSE:     nanToZero(arimaScores.RMSE),
		ARIMAMAPE:     nanToZero(arimaScores.MAPE),
		ProphetMAE:    nanToZero(prophetScores.MAE),
		ProphetRMSE:   nanToZero(prophetScores.RMSE),
		ProphetMAPE:   nanToZero(prophetScores.MAPE),

		ARIMAOrder:      order,
		ARIMAFallback:   arimaFB,
		ProphetFallback: prophetFB,
	}

	records := make([]ForecastRecord, 0, 2*h)
	for i, yr := range test.Years {
		records = append(records, ForecastRecord{
			Country:   s.Country,
			Continent: s.Continent,
			Model:     ModelARIMA,
			Year:      yr,
			Actual:    test.Values[i],
			Forecast:  arimaFC[i],
		})
		records = append(records, ForecastRecord{
			Country:   s.Country,
			Continent: s.Continent,
			Model:     ModelProphet,
			Year:      yr,
			Actual:    test.Values[i],
			Forecast:  prophetFC[i],
		})
	}
	return countryOutcome{result: result, records: records}
}

// forecastARIMA grid-searches model orders and forecasts h steps. Any failure
// along the way falls back to a persistence forecast.
func (e *Evaluator) forecastARIMA(train *gdpseries.Series, h int) ([]float64, *arima.Order, bool) {
	res, err := arima.Search(train.Values, e.opt.ARIMAOptions)
	if err != nil {
		return persistenceForecast(train.Last(), h), nil, true
	}
	fc, err := res.Model.Forecast(h)
	if err != nil || containsNonFinite(fc) {
		return persistenceForecast(train.Last(), h), nil, true
	}
	order := res.Order
	return fc, &order, false
}

// forecastSeasonal fits the trend+seasonality model and forecasts h steps,
// falling back to a persistence forecast on any failure.
func (e *Evaluator) forecastSeasonal(train *gdpseries.Series, h int) ([]float64, bool) {
	f := seasonal.New(e.opt.SeasonalOptions)
	if err := f.Fit(train.Years, train.Values); err != nil {
		return persistenceForecast(train.Last(), h), true
	}
	fc, err := f.Forecast(h)
	if err != nil || containsNonFinite(fc) {
		return persistenceForecast(train.Last(), h), true
	}
	return fc, false
}

// persistenceForecast predicts every future step as the last training value.
// Both forecasters share this as their fallback so a processed country always
// yields a complete forecast vector.
func persistenceForecast(last float64, h int) []float64 {
	fc := make([]float64, h)
	for i := range fc {
		fc[i] = last
	}
	return fc
}

// reconcileLength normalizes a forecast vector to exactly h values, extending
// a short vector by repeating its own last value and truncating a long one.
func reconcileLength(fc []float64, h int) []float64 {
	if len(fc) == h {
		return fc
	}
	if len(fc) > h {
		return fc[:h]
	}
	out := make([]float64, h)
	copy(out, fc)
	last := math.NaN()
	if len(fc) > 0 {
		last = fc[len(fc)-1]
	}
	for i := len(fc); i < h; i++ {
		out[i] = last
	}
	return out
}

func containsNonFinite(fc []float64) bool {
	for _, v := range fc {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0.0
	}
	return v
}
