package phetrima

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// Output table writers. Rows are written in result order and floats with the
// shortest round-trip representation, so identical results always produce
// byte-identical files.

// WriteCountryPerformance writes the model_performance_by_country table.
func WriteCountryPerformance(w io.Writer, results []CountryResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"country", "continent", "n_observations", "n_train", "n_test",
		"arima_mae", "arima_rmse", "arima_mape",
		"prophet_mae", "prophet_rmse", "prophet_mape",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}
	for _, r := range results {
		row := []string{
			r.Country, r.Continent,
			strconv.Itoa(r.NObservations), strconv.Itoa(r.NTrain), strconv.Itoa(r.NTest),
			formatFloat(r.ARIMAMAE), formatFloat(r.ARIMARMSE), formatFloat(r.ARIMAMAPE),
			formatFloat(r.ProphetMAE), formatFloat(r.ProphetRMSE), formatFloat(r.ProphetMAPE),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write row for %q, %w", r.Country, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGlobalSummary writes the summary_global table.
func WriteGlobalSummary(w io.Writer, rows []MetricValue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Metric", "Value"}); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Metric, formatFloat(r.Value)}); err != nil {
			return fmt.Errorf("unable to write row for %q, %w", r.Metric, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteContinentSummary writes the summary_by_continent table.
func WriteContinentSummary(w io.Writer, rows []ContinentMetrics) error {
	cw := csv.NewWriter(w)
	header := []string{
		"continent",
		"arima_mae", "arima_rmse", "arima_mape",
		"prophet_mae", "prophet_rmse", "prophet_mape",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}
	for _, r := range rows {
		row := []string{
			r.Continent,
			formatFloat(r.ARIMAMAE), formatFloat(r.ARIMARMSE), formatFloat(r.ARIMAMAPE),
			formatFloat(r.ProphetMAE), formatFloat(r.ProphetRMSE), formatFloat(r.ProphetMAPE),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write row for %q, %w", r.Continent, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWinsSummary writes the summary_wins table.
func WriteWinsSummary(w io.Writer, rows []WinCount) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"better_model", "Count"}); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.BetterModel, strconv.Itoa(r.Count)}); err != nil {
			return fmt.Errorf("unable to write row for %q, %w", r.BetterModel, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteForecastOutputs writes the long-format forecast_outputs table.
func WriteForecastOutputs(w io.Writer, records []ForecastRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Country", "Continent", "Model", "Year", "Actual", "Forecast"}); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Country, r.Continent, r.Model,
			strconv.Itoa(r.Year),
			formatFloat(r.Actual), formatFloat(r.Forecast),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write row for %q year %d, %w", r.Country, r.Year, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSONReport writes the full run results, including the per-country
// diagnostics that the CSV tables omit.
func WriteJSONReport(w io.Writer, r *Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("unable to encode run report, %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
