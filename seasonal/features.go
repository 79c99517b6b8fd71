package seasonal

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// constVarianceTol is the variance below which a feature column is treated as
// constant and pruned as collinear with the intercept.
const constVarianceTol = 1e-12

const labelTrend = "trend"

type column struct {
	label string
	data  []float64
}

func seasonalityLabel(order int, comp string) string {
	return fmt.Sprintf("seas_yearly_%02d_%s", order, comp)
}

// buildColumns generates the trend column and the yearly Fourier columns for
// the given observation years. The yearly phase of a year label is taken at
// the start of that year.
func buildColumns(years []int, firstYear, yearlyOrders int) []column {
	n := len(years)

	trend := make([]float64, n)
	phase := make([]float64, n)
	for i, yr := range years {
		trend[i] = float64(yr - firstYear)
		t := time.Date(yr, time.January, 1, 0, 0, 0, 0, time.UTC)
		phase[i] = float64(t.YearDay()-1) / 365.25
	}

	cols := make([]column, 0, 1+2*yearlyOrders)
	cols = append(cols, column{label: labelTrend, data: trend})
	for order := 1; order <= yearlyOrders; order++ {
		sinFeat := make([]float64, n)
		cosFeat := make([]float64, n)
		omega := 2.0 * math.Pi * float64(order)
		for i, ph := range phase {
			sinFeat[i] = math.Sin(omega * ph)
			cosFeat[i] = math.Cos(omega * ph)
		}
		cols = append(cols, column{label: seasonalityLabel(order, "sin"), data: sinFeat})
		cols = append(cols, column{label: seasonalityLabel(order, "cos"), data: cosFeat})
	}
	return cols
}

// pruneConstant drops feature columns with no variance across the training
// sample. The trend column is always retained.
func pruneConstant(cols []column) []column {
	kept := cols[:0:0]
	for _, c := range cols {
		if c.label != labelTrend && variance(c.data) < constVarianceTol {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// selectColumns restricts cols to those whose labels were retained at fit
// time, preserving label order.
func selectColumns(cols []column, labels []string) []column {
	byLabel := make(map[string]column, len(cols))
	for _, c := range cols {
		byLabel[c.label] = c
	}
	kept := make([]column, 0, len(labels))
	for _, label := range labels {
		if c, exists := byLabel[label]; exists {
			kept = append(kept, c)
		}
	}
	return kept
}

func columnLabels(cols []column) []string {
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.label
	}
	return labels
}

func designMatrix(cols []column, rows int) *mat.Dense {
	x := mat.NewDense(rows, len(cols), nil)
	for j, c := range cols {
		for i := 0; i < rows; i++ {
			x.Set(i, j, c.data[i])
		}
	}
	return x
}

func variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return ss / float64(len(x))
}
