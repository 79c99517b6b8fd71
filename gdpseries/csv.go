package gdpseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNoYearColumns = errors.New("no year columns detected in header")
	ErrMissingColumn = errors.New("missing identifying column")
	ErrEmptyTable    = errors.New("input table has no header row")
)

// LoadOptions configures which header names identify a country row. Any
// column whose header parses as an integer is treated as a year column.
type LoadOptions struct {
	CountryColumn   string
	ContinentColumn string
}

// NewDefaultLoadOptions returns load options matching the source GDP table.
func NewDefaultLoadOptions() *LoadOptions {
	return &LoadOptions{
		CountryColumn:   "Name of country",
		ContinentColumn: "Continent",
	}
}

// LoadWide reads a wide table with one row per country and one column per
// year and reshapes it into one Series per country in row order. Cells that
// are empty or unparseable are recorded as NaN. Schema violations are fatal.
func LoadWide(r io.Reader, opt *LoadOptions) ([]*Series, error) {
	if opt == nil {
		opt = NewDefaultLoadOptions()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header row, %w", err)
	}

	countryIdx := -1
	continentIdx := -1
	type yearCol struct {
		year int
		idx  int
	}
	var yearCols []yearCol
	for i, col := range header {
		name := strings.TrimSpace(col)
		if yr, err := strconv.Atoi(name); err == nil {
			yearCols = append(yearCols, yearCol{year: yr, idx: i})
			continue
		}
		switch name {
		case opt.CountryColumn:
			countryIdx = i
		case opt.ContinentColumn:
			continentIdx = i
		}
	}

	if len(yearCols) == 0 {
		return nil, ErrNoYearColumns
	}
	if countryIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opt.CountryColumn, ErrMissingColumn)
	}
	if continentIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opt.ContinentColumn, ErrMissingColumn)
	}

	sort.Slice(yearCols, func(i, j int) bool {
		return yearCols[i].year < yearCols[j].year
	})

	years := make([]int, len(yearCols))
	for i, yc := range yearCols {
		years[i] = yc.year
	}

	var series []*Series
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read row %d, %w", len(series)+2, err)
		}

		values := make([]float64, len(yearCols))
		for i, yc := range yearCols {
			values[i] = parseCell(record, yc.idx)
		}

		s, err := New(cell(record, countryIdx), cell(record, continentIdx), years, values)
		if err != nil {
			return nil, fmt.Errorf("unable to build series for row %d, %w", len(series)+2, err)
		}
		series = append(series, s)
	}
	return series, nil
}

// LoadWideFile opens path and loads the wide table from it.
func LoadWideFile(path string, opt *LoadOptions) ([]*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input table, %w", err)
	}
	defer f.Close()
	return LoadWide(f, opt)
}

func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseCell(record []string, idx int) float64 {
	c := cell(record, idx)
	if c == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(c, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
