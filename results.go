package phetrima

import (
	"github.com/lyonad/Phetrima/arima"
)

// Model names as they appear in the output tables.
const (
	ModelARIMA   = "ARIMA"
	ModelProphet = "Prophet"
)

// CountryResult is the aggregate record for one processed country. The six
// metric fields are never NaN; undefined metrics are normalized to 0.0 at
// emission. The trailing diagnostic fields are carried in the JSON run report
// only and are not part of the CSV contract.
type CountryResult struct {
	Country       string  `json:"country"`
	Continent     string  `json:"continent"`
	NObservations int     `json:"n_observations"`
	NTrain        int     `json:"n_train"`
	NTest         int     `json:"n_test"`
	ARIMAMAE      float64 `json:"arima_mae"`
	ARIMARMSE     float64 `json:"arima_rmse"`
	ARIMAMAPE     float64 `json:"arima_mape"`
	ProphetMAE    float64 `json:"prophet_mae"`
	ProphetRMSE   float64 `json:"prophet_rmse"`
	ProphetMAPE   float64 `json:"prophet_mape"`

	ARIMAOrder      *arima.Order `json:"arima_order,omitempty"`
	ARIMAFallback   bool         `json:"arima_fallback"`
	ProphetFallback bool         `json:"prophet_fallback"`
}

// ForecastRecord is one long-format row per (country, model, test year).
type ForecastRecord struct {
	Country   string  `json:"Country"`
	Continent string  `json:"Continent"`
	Model     string  `json:"Model"`
	Year      int     `json:"Year"`
	Actual    float64 `json:"Actual"`
	Forecast  float64 `json:"Forecast"`
}

// Results collects every emitted country record and forecast row from one
// pipeline run, in input country order.
type Results struct {
	Countries []CountryResult  `json:"countries"`
	Forecasts []ForecastRecord `json:"forecasts"`
}
