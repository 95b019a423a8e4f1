package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validObservation() DailyObservation {
	return DailyObservation{
		Latitude:      50.80,
		TempMin:       12.3,
		TempMax:       21.5,
		TempMean:      16.9,
		HumidityMin:   63,
		HumidityMax:   84,
		WindSpeed2m:   2.78,
		SunshineHours: 9.25,
		Pressure:      100.1,
		DayOfYear:     187,
		Altitude:      100,
	}
}

func assertRejected(t *testing.T, obs DailyObservation, field string) {
	t.Helper()
	err := Validate(obs)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
	assert.NotEmpty(t, verr.Constraint)
}

func TestValidate_AcceptsValidObservation(t *testing.T) {
	assert.NoError(t, Validate(validObservation()))
}

func TestValidate_RangeViolations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DailyObservation)
		field  string
	}{
		{"latitude too large", func(o *DailyObservation) { o.Latitude = 91 }, "latitude"},
		{"latitude too small", func(o *DailyObservation) { o.Latitude = -90.5 }, "latitude"},
		{"humidity_min above 100", func(o *DailyObservation) { o.HumidityMin = 120; o.HumidityMax = 120 }, "humidity_min"},
		{"negative humidity", func(o *DailyObservation) { o.HumidityMin = -1 }, "humidity_min"},
		{"negative wind", func(o *DailyObservation) { o.WindSpeed2m = -0.1 }, "wind_speed_2m"},
		{"sunshine beyond a day", func(o *DailyObservation) { o.SunshineHours = 25 }, "sunshine_hours"},
		{"zero pressure", func(o *DailyObservation) { o.Pressure = 0 }, "pressure"},
		{"day zero", func(o *DailyObservation) { o.DayOfYear = 0 }, "day_of_year"},
		{"day 367", func(o *DailyObservation) { o.DayOfYear = 367 }, "day_of_year"},
		{"implausibly hot", func(o *DailyObservation) { o.TempMax = 75; o.TempMean = 70 }, "temperature_max"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs := validObservation()
			tc.mutate(&obs)
			assertRejected(t, obs, tc.field)
		})
	}
}

func TestValidate_TemperatureOrdering(t *testing.T) {
	obs := validObservation()
	obs.TempMean = 10 // below TempMin = 12.3
	assertRejected(t, obs, "temperature_mean")

	obs = validObservation()
	obs.TempMean = 25 // above TempMax = 21.5
	assertRejected(t, obs, "temperature_mean")

	// Rounding slack: a mean a few tenths outside the extremes passes.
	obs = validObservation()
	obs.TempMean = obs.TempMin - 0.3
	assert.NoError(t, Validate(obs))
}

func TestValidate_HumidityOrdering(t *testing.T) {
	obs := validObservation()
	obs.HumidityMin = 90
	obs.HumidityMax = 80
	assertRejected(t, obs, "humidity_min")
}

func TestValidate_NonFiniteValues(t *testing.T) {
	obs := validObservation()
	obs.Pressure = math.NaN()
	assertRejected(t, obs, "pressure")

	obs = validObservation()
	obs.WindSpeed2m = math.Inf(1)
	assertRejected(t, obs, "wind_speed_2m")
}

func TestValidate_PolarLatitudesAccepted(t *testing.T) {
	obs := validObservation()
	obs.Latitude = 90
	assert.NoError(t, Validate(obs))

	obs.Latitude = -90
	assert.NoError(t, Validate(obs))
}
