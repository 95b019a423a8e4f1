// Command et0 computes FAO-56 Penman-Monteith reference evapotranspiration
// for a CSV file of daily weather observations and writes a result CSV with
// the input columns plus an ET0 column.
//
// Usage:
//
//	et0 -f observations.csv -r results.csv [--on-invalid skip|mark]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/akamensky/argparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/agroclim/et0-service/internal/adapter/csvfile"
	"github.com/agroclim/et0-service/internal/domain"
	"github.com/agroclim/et0-service/internal/observability"
)

func main() {
	parser := argparse.NewParser("et0", "Computes daily reference evapotranspiration (FAO-56 Penman-Monteith) from a CSV of weather observations")

	input := parser.String("f", "file", &argparse.Options{
		Required: true,
		Help:     "input CSV of daily observations"})

	output := parser.String("r", "result", &argparse.Options{
		Required: true,
		Help:     "output CSV path"})

	onInvalid := parser.Selector("", "on-invalid", []string{"skip", "mark"}, &argparse.Options{
		Default: "skip",
		Help:    "what to do with rejected rows: drop them or keep them with the error noted"})

	logLevel := parser.String("", "log-level", &argparse.Options{
		Default: "info",
		Help:    "log level (debug, info, warn, error)"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(2)
	}

	logger := observability.NewLogger(*logLevel, "text")

	if err := run(*input, *output, csvfile.InvalidPolicy(*onInvalid), logger); err != nil {
		logger.Error("et0 run failed", "error", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string, policy csvfile.InvalidPolicy, logger *slog.Logger) error {
	f, err := csvfile.Read(inputPath)
	if err != nil {
		return err
	}
	logger.Info("observations loaded", "file", inputPath, "rows", len(f.Rows))

	results := make([]csvfile.ResultRow, 0, len(f.Rows))
	values := make([]float64, 0, len(f.Rows))

	for _, row := range f.Rows {
		result, err := computeRow(row.Record)
		if err != nil {
			logger.Warn("row rejected", "line", row.Line, "error", err)
			results = append(results, csvfile.ResultRow{Row: row, Err: err})
			continue
		}
		results = append(results, csvfile.ResultRow{Row: row, ET0: result.ET0})
		values = append(values, result.ET0)
	}

	if err := csvfile.WriteResults(outputPath, f.Header, results, policy); err != nil {
		return err
	}

	rejected := len(f.Rows) - len(values)
	logger.Info("results written", "file", outputPath, "computed", len(values), "rejected", rejected)
	printSummary(values)
	return nil
}

func computeRow(rec domain.RawObservation) (domain.ET0Result, error) {
	obs, err := domain.ParseObservation(rec)
	if err != nil {
		return domain.ET0Result{}, err
	}
	if err := domain.Validate(obs); err != nil {
		return domain.ET0Result{}, err
	}
	return domain.ComputeET0(obs)
}

// printSummary reports distribution statistics over the computed ET0 values.
func printSummary(values []float64) {
	if len(values) == 0 {
		fmt.Println("No rows computed.")
		return
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}

	fmt.Printf("ET0 summary (%d rows):\n", len(values))
	fmt.Printf("  mean   %8.4f mm/day\n", mean)
	fmt.Printf("  stddev %8.4f mm/day\n", std)
	fmt.Printf("  min    %8.4f mm/day\n", floats.Min(values))
	fmt.Printf("  max    %8.4f mm/day\n", floats.Max(values))
}
