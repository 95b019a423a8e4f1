package fao56

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestET0_FAO56Example18(t *testing.T) {
	// Uccle (Brussels), 50.80°N, 100 m, 6 July: FAO-56 publishes
	// ET0 = 3.9 mm/day after rounding intermediate terms; the exact
	// double-precision evaluation is 3.9748.
	atm := NewAtmosphere(12.3, 21.5, 16.9, 63, 84, PressureAtAltitude(100))
	rad := NewRadiation(50.80, 187, 9.25, 100, 12.3, 21.5, atm.ActualVP)

	et0, err := ET0(atm, rad, 2.78, 16.9, SoilHeatFluxDaily)
	require.NoError(t, err)

	assert.InDelta(t, 3.9748269207, et0, 1e-6)
	assert.InDelta(t, 3.9, et0, 0.1)
}

func TestET0_TropicalStation(t *testing.T) {
	// 13.73°N near sea level, day 246, moderate wind and humidity.
	atm := NewAtmosphere(19.1, 25.1, 22.1, 54, 82, PressureAtAltitude(2))
	rad := NewRadiation(13.73, 246, 9.25, 2, 19.1, 25.1, atm.ActualVP)

	et0, err := ET0(atm, rad, 2.078, 22.1, SoilHeatFluxDaily)
	require.NoError(t, err)

	assert.InDelta(t, 4.6813601676, et0, 1e-6)
}

func TestET0_PolarNightGoesSlightlyNegative(t *testing.T) {
	atm := NewAtmosphere(-30, -20, -25, 70, 90, PressureAtAltitude(10))
	rad := NewRadiation(80, 355, 0, 10, -30, -20, atm.ActualVP)

	et0, err := ET0(atm, rad, 2.0, -25, SoilHeatFluxDaily)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(et0))
	assert.Less(t, et0, 0.0, "radiative cooling dominates with no sun")
	assert.Greater(t, et0, -0.5, "magnitude stays small")
}

func TestET0_DegenerateDenominator(t *testing.T) {
	atm := Atmosphere{Delta: 0, Gamma: 0}
	rad := Radiation{Rn: 10}

	_, err := ET0(atm, rad, 0, 20, SoilHeatFluxDaily)
	assert.ErrorIs(t, err, ErrDegenerateDenominator)
}

func TestET0_FiniteAcrossInputGrid(t *testing.T) {
	for _, lat := range []float64{-90, -45, 0, 45, 90} {
		for _, doy := range []int{1, 100, 183, 246, 366} {
			for _, wind := range []float64{0, 2, 15} {
				atm := NewAtmosphere(5, 25, 15, 20, 80, 101.3)
				rad := NewRadiation(lat, doy, 6, 50, 5, 25, atm.ActualVP)

				et0, err := ET0(atm, rad, wind, 15, SoilHeatFluxDaily)
				require.NoError(t, err)
				require.False(t, math.IsNaN(et0) || math.IsInf(et0, 0),
					"lat=%.0f doy=%d u2=%.0f", lat, doy, wind)
			}
		}
	}
}

func TestWindSpeedAt2m(t *testing.T) {
	// FAO-56 Example 14: 3.2 m/s measured at 10 m → 2.4 m/s at 2 m.
	assert.InDelta(t, 2.3934434405, WindSpeedAt2m(3.2, 10), 1e-8)

	// Measurements already at 2 m pass through unchanged.
	assert.Equal(t, 2.078, WindSpeedAt2m(2.078, 2))
}
