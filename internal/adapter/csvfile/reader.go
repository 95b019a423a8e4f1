// Package csvfile reads daily weather observations from CSV files and writes
// result CSVs for the batch command. Columns use the collector's header names
// (lat, Tmin, Tmax, Tmean, RHmin, RHmax, uz, n, pressure, doy, z); pressure
// and z are optional, everything else is required.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/agroclim/et0-service/internal/domain"
)

var requiredColumns = []string{"lat", "Tmin", "Tmax", "Tmean", "RHmin", "RHmax", "uz", "n", "doy"}

// Row is one parsed observation row, keeping the raw fields so writers can
// pass input columns through to the output file.
type Row struct {
	Line   int // 1-based line number in the source file, header is line 1
	Fields []string
	Record domain.RawObservation
}

// File is a fully read observation CSV.
type File struct {
	Header []string
	Rows   []Row
}

// Read loads an observation CSV. It fails on a missing required column or a
// malformed CSV; per-row value problems are left to validation so a bad row
// does not abort the whole file.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Ragged rows are tolerated here; missing values surface as field-level
	// validation errors instead of aborting the whole file.
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := make([]string, len(all[0]))
	for i, h := range all[0] {
		header[i] = strings.TrimSpace(h)
	}

	cols, err := columnIndex(header, path)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(all)-1)
	for i, raw := range all[1:] {
		rows = append(rows, Row{
			Line:   i + 2,
			Fields: raw,
			Record: mapRecord(raw, cols),
		})
	}
	return &File{Header: header, Rows: rows}, nil
}

// columnIndex maps header names to positions and verifies required columns.
func columnIndex(header []string, path string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required columns: %s", path, strings.Join(missing, ", "))
	}
	return cols, nil
}

func mapRecord(fields []string, cols map[string]int) domain.RawObservation {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}
	return domain.RawObservation{
		Lat:      get("lat"),
		TempMin:  get("Tmin"),
		TempMax:  get("Tmax"),
		TempMean: get("Tmean"),
		RHMin:    get("RHmin"),
		RHMax:    get("RHmax"),
		Wind:     get("uz"),
		Sunshine: get("n"),
		Pressure: get("pressure"),
		DOY:      get("doy"),
		Altitude: get("z"),
	}
}
