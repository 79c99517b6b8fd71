package phetrima

// MetricValue is one row of the global summary table.
type MetricValue struct {
	Metric string  `json:"Metric"`
	Value  float64 `json:"Value"`
}

// ContinentMetrics is one row of the per-continent summary table.
type ContinentMetrics struct {
	Continent   string  `json:"continent"`
	ARIMAMAE    float64 `json:"arima_mae"`
	ARIMARMSE   float64 `json:"arima_rmse"`
	ARIMAMAPE   float64 `json:"arima_mape"`
	ProphetMAE  float64 `json:"prophet_mae"`
	ProphetRMSE float64 `json:"prophet_rmse"`
	ProphetMAPE float64 `json:"prophet_mape"`
}

// WinCount is one row of the wins summary table.
type WinCount struct {
	BetterModel string `json:"better_model"`
	Count       int    `json:"Count"`
}

type metricSums struct {
	arimaMAE    float64
	arimaRMSE   float64
	arimaMAPE   float64
	prophetMAE  float64
	prophetRMSE float64
	prophetMAPE float64
	n           int
}

func (m *metricSums) add(r CountryResult) {
	m.arimaMAE += r.ARIMAMAE
	m.arimaRMSE += r.ARIMARMSE
	m.arimaMAPE += r.ARIMAMAPE
	m.prophetMAE += r.ProphetMAE
	m.prophetRMSE += r.ProphetRMSE
	m.prophetMAPE += r.ProphetMAPE
	m.n++
}

func (m *metricSums) mean(sum float64) float64 {
	if m.n == 0 {
		return 0.0
	}
	return sum / float64(m.n)
}

// GlobalSummary returns the unweighted mean of each metric across all emitted
// countries, one row per metric in a fixed order.
func (r *Results) GlobalSummary() []MetricValue {
	var sums metricSums
	for _, c := range r.Countries {
		sums.add(c)
	}
	return []MetricValue{
		{Metric: "arima_mae", Value: sums.mean(sums.arimaMAE)},
		{Metric: "arima_rmse", Value: sums.mean(sums.arimaRMSE)},
		{Metric: "arima_mape", Value: sums.mean(sums.arimaMAPE)},
		{Metric: "prophet_mae", Value: sums.mean(sums.prophetMAE)},
		{Metric: "prophet_rmse", Value: sums.mean(sums.prophetRMSE)},
		{Metric: "prophet_mape", Value: sums.mean(sums.prophetMAPE)},
	}
}

// ContinentSummary returns per-continent metric means in first-seen continent
// order over the emitted country results.
func (r *Results) ContinentSummary() []ContinentMetrics {
	var order []string
	byContinent := make(map[string]*metricSums)
	for _, c := range r.Countries {
		sums, exists := byContinent[c.Continent]
		if !exists {
			sums = &metricSums{}
			byContinent[c.Continent] = sums
			order = append(order, c.Continent)
		}
		sums.add(c)
	}

	rows := make([]ContinentMetrics, 0, len(order))
	for _, continent := range order {
		sums := byContinent[continent]
		rows = append(rows, ContinentMetrics{
			Continent:   continent,
			ARIMAMAE:    sums.mean(sums.arimaMAE),
			ARIMARMSE:   sums.mean(sums.arimaRMSE),
			ARIMAMAPE:   sums.mean(sums.arimaMAPE),
			ProphetMAE:  sums.mean(sums.prophetMAE),
			ProphetRMSE: sums.mean(sums.prophetRMSE),
			ProphetMAPE: sums.mean(sums.prophetMAPE),
		})
	}
	return rows
}

// WinsSummary counts, per model, the countries where that model's MAE was
// strictly lower than the other's. Ties count for neither model.
func (r *Results) WinsSummary() []WinCount {
	var arimaWins, prophetWins int
	for _, c := range r.Countries {
		switch {
		case c.ARIMAMAE < c.ProphetMAE:
			arimaWins++
		case c.ProphetMAE < c.ARIMAMAE:
			prophetWins++
		}
	}
	return []WinCount{
		{BetterModel: ModelARIMA, Count: arimaWins},
		{BetterModel: ModelProphet, Count: prophetWins},
	}
}
