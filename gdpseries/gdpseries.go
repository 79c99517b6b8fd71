// Package gdpseries loads wide per-country-per-year GDP tables and reshapes
// them into long per-country time series. A Series is read-only after load;
// the walk-forward split produces fresh training and test subsequences.
package gdpseries

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoObservations    = errors.New("no observations in series")
	ErrSeriesLenMismatch = errors.New("years have a different length than values")
	ErrNonMonotonicYears = errors.New("years are not strictly increasing")
)

// Series represents one country's yearly observations. Years are strictly
// increasing with no duplicates and missing values are stored as NaN.
type Series struct {
	Country   string
	Continent string
	Years     []int
	Values    []float64
}

// New returns a Series given a year and value slice, validating the year
// ordering invariant.
func New(country, continent string, years []int, values []float64) (*Series, error) {
	if len(years) == 0 {
		return nil, ErrNoObservations
	}
	if len(years) != len(values) {
		return nil, fmt.Errorf(
			"years has length of %d, but values has a length of %d, %w",
			len(years), len(values), ErrSeriesLenMismatch,
		)
	}
	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonicYears)
		}
	}

	yr := make([]int, len(years))
	val := make([]float64, len(values))
	copy(yr, years)
	copy(val, values)
	return &Series{
		Country:   country,
		Continent: continent,
		Years:     yr,
		Values:    val,
	}, nil
}

// Len returns the number of year slots including missing values.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Years)
}

// Observed returns the number of non-missing values.
func (s *Series) Observed() int {
	if s == nil {
		return 0
	}
	var n int
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Last returns the final value of the series or NaN if the series is empty.
func (s *Series) Last() float64 {
	if s.Len() == 0 {
		return math.NaN()
	}
	return s.Values[len(s.Values)-1]
}

// Copy returns a deep copy of the series.
func (s *Series) Copy() *Series {
	if s == nil {
		return nil
	}
	yr := make([]int, len(s.Years))
	val := make([]float64, len(s.Values))
	copy(yr, s.Years)
	copy(val, s.Values)
	return &Series{
		Country:   s.Country,
		Continent: s.Continent,
		Years:     yr,
		Values:    val,
	}
}

// Split partitions the series into a training subsequence with years strictly
// before the cutoff year and a test subsequence with years at or after it.
// Missing values are dropped from each side independently. Either side may be
// empty.
func (s *Series) Split(cutoff int) (train, test *Series) {
	train = &Series{Country: s.Country, Continent: s.Continent}
	test = &Series{Country: s.Country, Continent: s.Continent}
	for i, yr := range s.Years {
		if math.IsNaN(s.Values[i]) {
			continue
		}
		if yr < cutoff {
			train.Years = append(train.Years, yr)
			train.Values = append(train.Values, s.Values[i])
			continue
		}
		test.Years = append(test.Years, yr)
		test.Values = append(test.Values, s.Values[i])
	}
	return train, test
}
