package domain

import (
	"fmt"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// temperatureOrderingTolerance absorbs rounding in source data: stations
// report temperatures to 0.1 °C and the mean is often computed from more
// samples than the extremes, so Tmin ≤ Tmean ≤ Tmax is enforced with half a
// degree of slack.
const temperatureOrderingTolerance = 0.5

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under the json tag names so operators see the same
	// field names the wire format uses.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("json")
	})

	v.RegisterStructValidation(observationCrossChecks, DailyObservation{})
	return v
}

// observationCrossChecks enforces the orderings that single-field range tags
// cannot express.
func observationCrossChecks(sl validator.StructLevel) {
	obs := sl.Current().Interface().(DailyObservation)

	if obs.TempMin > obs.TempMean+temperatureOrderingTolerance {
		sl.ReportError(obs.TempMean, "temperature_mean", "TempMean", "tmin_lte_tmean", "")
	}
	if obs.TempMean > obs.TempMax+temperatureOrderingTolerance {
		sl.ReportError(obs.TempMean, "temperature_mean", "TempMean", "tmean_lte_tmax", "")
	}
	if obs.HumidityMin > obs.HumidityMax {
		sl.ReportError(obs.HumidityMin, "humidity_min", "HumidityMin", "rhmin_lte_rhmax", "")
	}
}

// Validate checks a parsed observation for finiteness, physical ranges, and
// cross-field orderings. It returns nil or a *ValidationError naming the
// first offending field; no side effects.
func Validate(obs DailyObservation) error {
	if err := checkFinite(obs); err != nil {
		return err
	}

	err := validate.Struct(obs)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &ValidationError{Field: "observation", Constraint: err.Error()}
	}
	return &ValidationError{Field: errs[0].Field(), Constraint: constraintText(errs[0])}
}

func checkFinite(obs DailyObservation) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"latitude", obs.Latitude},
		{"temperature_min", obs.TempMin},
		{"temperature_max", obs.TempMax},
		{"temperature_mean", obs.TempMean},
		{"humidity_min", obs.HumidityMin},
		{"humidity_max", obs.HumidityMax},
		{"wind_speed_2m", obs.WindSpeed2m},
		{"sunshine_hours", obs.SunshineHours},
		{"pressure", obs.Pressure},
		{"altitude", obs.Altitude},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Field: f.name, Constraint: "must be finite"}
		}
	}
	return nil
}

func constraintText(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", fe.Param())
	case "tmin_lte_tmean":
		return "temperature_min must not exceed temperature_mean"
	case "tmean_lte_tmax":
		return "temperature_mean must not exceed temperature_max"
	case "rhmin_lte_rhmax":
		return "humidity_min must not exceed humidity_max"
	default:
		return fmt.Sprintf("violates %q", fe.Tag())
	}
}
