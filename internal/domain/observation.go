package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agroclim/et0-service/internal/fao56"
)

// RawObservation is the flat JSON/CSV wire record produced by the collector.
// Field names match the historical CSV column headers; see the package
// documentation for units.
type RawObservation struct {
	Lat      string `json:"lat"`
	TempMin  string `json:"Tmin"`
	TempMax  string `json:"Tmax"`
	TempMean string `json:"Tmean"`
	RHMin    string `json:"RHmin"`
	RHMax    string `json:"RHmax"`
	Wind     string `json:"uz"`
	Sunshine string `json:"n"`
	Pressure string `json:"pressure"`
	DOY      string `json:"doy"`
	Altitude string `json:"z"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// DailyObservation is the typed, immutable input record of the computation
// pipeline. Validation tags carry the physical ranges; json tags double as
// the field names reported in validation errors.
type DailyObservation struct {
	Latitude      float64 `json:"latitude" validate:"gte=-90,lte=90"`
	TempMin       float64 `json:"temperature_min" validate:"gte=-90,lte=60"`
	TempMax       float64 `json:"temperature_max" validate:"gte=-90,lte=60"`
	TempMean      float64 `json:"temperature_mean" validate:"gte=-90,lte=60"`
	HumidityMin   float64 `json:"humidity_min" validate:"gte=0,lte=100"`
	HumidityMax   float64 `json:"humidity_max" validate:"gte=0,lte=100"`
	WindSpeed2m   float64 `json:"wind_speed_2m" validate:"gte=0"`
	SunshineHours float64 `json:"sunshine_hours" validate:"gte=0,lte=24"`
	Pressure      float64 `json:"pressure" validate:"gt=0"`
	DayOfYear     int     `json:"day_of_year" validate:"gte=1,lte=366"`
	Altitude      float64 `json:"altitude"`
}

// ET0Result is the computed output for one accepted observation. DayOfYear
// and Latitude identify the source record; Source carries the raw row for
// writers that pass input columns through.
type ET0Result struct {
	DayOfYear   int       `json:"day_of_year"`
	Latitude    float64   `json:"latitude"`
	ET0         float64   `json:"et0_mm_day"`
	ProcessedAt time.Time `json:"processed_at"`

	Source RawObservation `json:"-"`
}

// Key returns the identifying key carried through to the output record.
func (r ET0Result) Key() string {
	return fmt.Sprintf("%03d", r.DayOfYear)
}

// ParseRawEvent deserializes a RawEvent's value into a DailyObservation.
// It expects the flat CSV-style JSON produced by the collector.
func ParseRawEvent(raw RawEvent) (DailyObservation, RawObservation, error) {
	var rec RawObservation
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return DailyObservation{}, RawObservation{}, fmt.Errorf("parse raw event: %w", err)
	}
	obs, err := ParseObservation(rec)
	return obs, rec, err
}

// ParseObservation converts the string-valued wire record into a typed
// DailyObservation. Every field is parsed explicitly; a missing or
// non-numeric value yields a ValidationError naming the field. A missing
// pressure is derived from altitude via the standard atmosphere (FAO-56
// Eq. 7); a supplied pressure always wins.
func ParseObservation(rec RawObservation) (DailyObservation, error) {
	var obs DailyObservation
	var err error

	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"latitude", rec.Lat, &obs.Latitude},
		{"temperature_min", rec.TempMin, &obs.TempMin},
		{"temperature_max", rec.TempMax, &obs.TempMax},
		{"temperature_mean", rec.TempMean, &obs.TempMean},
		{"humidity_min", rec.RHMin, &obs.HumidityMin},
		{"humidity_max", rec.RHMax, &obs.HumidityMax},
		{"wind_speed_2m", rec.Wind, &obs.WindSpeed2m},
		{"sunshine_hours", rec.Sunshine, &obs.SunshineHours},
	}
	for _, f := range fields {
		if *f.dst, err = parseFloatField(f.name, f.raw); err != nil {
			return DailyObservation{}, err
		}
	}

	if obs.DayOfYear, err = parseDayOfYear(rec.DOY); err != nil {
		return DailyObservation{}, err
	}

	// Altitude is informational unless pressure must be derived from it.
	if strings.TrimSpace(rec.Altitude) != "" {
		if obs.Altitude, err = parseFloatField("altitude", rec.Altitude); err != nil {
			return DailyObservation{}, err
		}
	}

	if strings.TrimSpace(rec.Pressure) == "" {
		obs.Pressure = fao56.PressureAtAltitude(obs.Altitude)
	} else if obs.Pressure, err = parseFloatField("pressure", rec.Pressure); err != nil {
		return DailyObservation{}, err
	}

	return obs, nil
}

func parseFloatField(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: name, Constraint: "required field is missing"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ValidationError{Field: name, Constraint: fmt.Sprintf("not a number: %q", raw)}
	}
	return v, nil
}

func parseDayOfYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: "day_of_year", Constraint: "required field is missing"}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: "day_of_year", Constraint: fmt.Sprintf("not an integer: %q", raw)}
	}
	return v, nil
}
