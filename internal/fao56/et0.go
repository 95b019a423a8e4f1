package fao56

import (
	"errors"
	"math"
)

// SoilHeatFluxDaily is G for a daily timestep. Soil heat storage over a full
// day is negligible relative to Rn, so FAO-56 sets G = 0 for daily
// computations (the simplification is deliberate, not an omission; sub-daily
// timesteps would need Eqs. 45/46 instead).
const SoilHeatFluxDaily = 0.0

// ErrDegenerateDenominator reports that Δ + γ(1 + 0.34·u2) evaluated to a
// value unusable for division. Reachable only with degenerate inputs that
// validation should have excluded.
var ErrDegenerateDenominator = errors.New("penman-monteith denominator is zero or non-finite")

// ET0 combines the atmospheric and radiation terms into reference
// evapotranspiration in mm day⁻¹ via the FAO-56 combination equation (Eq. 6):
//
//	ET0 = [0.408·Δ·(Rn − G) + γ·(900/(Tmean+273))·u2·(es − ea)] / [Δ + γ·(1 + 0.34·u2)]
//
// The result is not clamped at zero; see the package documentation.
func ET0(atm Atmosphere, rad Radiation, windSpeed2m, tMeanC, soilHeatFlux float64) (float64, error) {
	denom := atm.Delta + atm.Gamma*(1+0.34*windSpeed2m)
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return 0, ErrDegenerateDenominator
	}

	radiationTerm := 0.408 * atm.Delta * (rad.Rn - soilHeatFlux)
	aerodynamicTerm := atm.Gamma * (900 / (tMeanC + 273)) * windSpeed2m * atm.VaporPressureDeficit()

	return (radiationTerm + aerodynamicTerm) / denom, nil
}
