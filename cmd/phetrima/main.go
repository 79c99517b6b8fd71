// Command phetrima runs the GDP forecasting evaluation batch job: it loads
// the wide GDP table, evaluates ARIMA against the Prophet-style forecaster
// per country, and writes the report tables.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	phetrima "github.com/lyonad/Phetrima"
	"github.com/lyonad/Phetrima/gdpseries"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func main() {
	configPath := flag.String("config", "", "path to an optional config file")
	flag.Parse()

	v := viper.New()
	v.SetDefault("data.input", "Data/gdp_2000_2025.csv")
	v.SetDefault("data.reports_dir", "reports")
	v.SetDefault("pipeline.cutoff_year", 2022)
	v.SetDefault("pipeline.min_training_obs", 15)
	v.SetDefault("pipeline.parallelism", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("profiling.enabled", false)
	v.SetEnvPrefix("PHETRIMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger := newLogger(v.GetString("log.level"))

	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("unable to read config file")
		}
		logger = newLogger(v.GetString("log.level"))
	}

	if v.GetBool("profiling.enabled") {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if err := run(logger, v); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()
}

func run(logger zerolog.Logger, v *viper.Viper) error {
	input := v.GetString("data.input")
	series, err := gdpseries.LoadWideFile(input, nil)
	if err != nil {
		return fmt.Errorf("unable to load %q, %w", input, err)
	}
	logger.Info().Str("input", input).Int("countries", len(series)).Msg("loaded input table")

	opt := phetrima.NewDefaultOptions()
	opt.CutoffYear = v.GetInt("pipeline.cutoff_year")
	opt.MinTrainingObs = v.GetInt("pipeline.min_training_obs")
	opt.Parallelism = v.GetInt("pipeline.parallelism")

	start := time.Now()
	results := phetrima.New(opt).Run(series)
	logger.Info().
		Int("processed", len(results.Countries)).
		Int("skipped", len(series)-len(results.Countries)).
		Dur("elapsed", time.Since(start)).
		Msg("processed countries")

	reportsDir := v.GetString("data.reports_dir")
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return fmt.Errorf("unable to create reports directory, %w", err)
	}

	reports := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"model_performance_by_country.csv", func(w io.Writer) error {
			return phetrima.WriteCountryPerformance(w, results.Countries)
		}},
		{"summary_global.csv", func(w io.Writer) error {
			return phetrima.WriteGlobalSummary(w, results.GlobalSummary())
		}},
		{"summary_by_continent.csv", func(w io.Writer) error {
			return phetrima.WriteContinentSummary(w, results.ContinentSummary())
		}},
		{"summary_wins.csv", func(w io.Writer) error {
			return phetrima.WriteWinsSummary(w, results.WinsSummary())
		}},
		{"forecast_outputs.csv", func(w io.Writer) error {
			return phetrima.WriteForecastOutputs(w, results.Forecasts)
		}},
		{"run_report.json", func(w io.Writer) error {
			return phetrima.WriteJSONReport(w, results)
		}},
	}
	for _, r := range reports {
		path := filepath.Join(reportsDir, r.name)
		if err := writeFile(path, r.write); err != nil {
			return fmt.Errorf("unable to write %q, %w", path, err)
		}
		logger.Info().Str("path", path).Msg("saved report")
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
