// Command genobs generates synthetic daily weather observation fixtures for
// the test suites: an observation CSV in the collector's column format and a
// JSON file of the expected computed results. It uses the actual domain
// package so the expected output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genobs \
//	  -csv-out data/mock/observations.csv \
//	  -json-out data/mock/expected_results.json \
//	  -days 30
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agroclim/et0-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// station is a synthetic observation site spanning the latitude range the
// pipeline has to handle, from equatorial to polar.
type station struct {
	name     string
	lat      float64
	altitude float64
	baseTemp float64 // midsummer daily mean, degrees C
	seasonal float64 // summer-to-winter swing amplitude
}

var stations = []station{
	{name: "equatorial", lat: 3.5, altitude: 15, baseTemp: 27, seasonal: 1.5},
	{name: "tropical", lat: 13.73, altitude: 2, baseTemp: 26, seasonal: 3},
	{name: "temperate", lat: 50.80, altitude: 100, baseTemp: 17, seasonal: 9},
	{name: "highland", lat: -16.4, altitude: 1800, baseTemp: 12, seasonal: 4},
	{name: "subpolar", lat: 64.8, altitude: 40, baseTemp: 11, seasonal: 14},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvOut := flag.String("csv-out", "", "output path for the observation CSV fixture")
	jsonOut := flag.String("json-out", "", "output path for the expected results JSON fixture")
	days := flag.Int("days", 30, "number of days to generate per station")
	seed := flag.Int64("seed", 20260806, "random seed, fixed by default for reproducible fixtures")
	flag.Parse()

	if *csvOut == "" || *jsonOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-out, -json-out")
	}

	// Fix the clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.August, 6, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(*seed))

	var records []domain.RawObservation
	var results []domain.ET0Result

	for _, st := range stations {
		for d := 0; d < *days; d++ {
			doy := 1 + rng.Intn(365)
			rec := synthesize(rng, st, doy)
			records = append(records, rec)

			obs, err := domain.ParseObservation(rec)
			if err != nil {
				return fmt.Errorf("%s doy %d: parse: %w", st.name, doy, err)
			}
			if err := domain.Validate(obs); err != nil {
				return fmt.Errorf("%s doy %d: validate: %w", st.name, doy, err)
			}
			result, err := domain.ComputeET0(obs)
			if err != nil {
				return fmt.Errorf("%s doy %d: compute: %w", st.name, doy, err)
			}
			results = append(results, result)
		}
		log.Printf("%s: %d observations", st.name, *days)
	}

	if err := writeCSV(*csvOut, records); err != nil {
		return fmt.Errorf("writing observation fixture: %w", err)
	}
	log.Printf("wrote observation fixture: %s", *csvOut)

	if err := writeJSON(*jsonOut, results); err != nil {
		return fmt.Errorf("writing expected results fixture: %w", err)
	}
	log.Printf("wrote expected results fixture: %s", *jsonOut)

	printStats(results)
	return nil
}

// synthesize builds one plausible observation for a station and day of year.
// Seasonal temperature follows a sine over the year, flipped for the
// southern hemisphere.
func synthesize(rng *rand.Rand, st station, doy int) domain.RawObservation {
	phase := 2 * math.Pi * (float64(doy) - 196) / 365
	season := math.Cos(phase)
	if st.lat < 0 {
		season = -season
	}

	tMean := st.baseTemp + st.seasonal*season + rng.NormFloat64()*1.5
	halfRange := 3.5 + rng.Float64()*3
	tMin := tMean - halfRange
	tMax := tMean + halfRange

	rhMin := 35 + rng.Float64()*30
	rhMax := rhMin + 15 + rng.Float64()*(95-rhMin-15)

	wind := 0.5 + rng.Float64()*5
	sunshine := rng.Float64() * 12

	return domain.RawObservation{
		Lat:      formatFloat(st.lat, 2),
		TempMin:  formatFloat(tMin, 1),
		TempMax:  formatFloat(tMax, 1),
		TempMean: formatFloat(tMean, 1),
		RHMin:    formatFloat(rhMin, 0),
		RHMax:    formatFloat(rhMax, 0),
		Wind:     formatFloat(wind, 2),
		Sunshine: formatFloat(sunshine, 2),
		DOY:      strconv.Itoa(doy),
		Altitude: formatFloat(st.altitude, 0),
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func writeCSV(path string, records []domain.RawObservation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"lat", "Tmin", "Tmax", "Tmean", "RHmin", "RHmax", "uz", "n", "pressure", "doy", "z"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Lat, r.TempMin, r.TempMax, r.TempMean, r.RHMin, r.RHMax, r.Wind, r.Sunshine, r.Pressure, r.DOY, r.Altitude}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(results []domain.ET0Result) {
	if len(results) == 0 {
		return
	}

	minV, maxV := results[0].ET0, results[0].ET0
	var sum float64
	for _, r := range results {
		sum += r.ET0
		if r.ET0 < minV {
			minV = r.ET0
		}
		if r.ET0 > maxV {
			maxV = r.ET0
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(results))
	fmt.Printf("ET0 mean: %.4f mm/day\n", sum/float64(len(results)))
	fmt.Printf("ET0 range: %.4f .. %.4f mm/day\n", minV, maxV)
}
