package domain

import (
	"errors"
	"math"

	"github.com/agroclim/et0-service/internal/fao56"
)

// ComputeET0 runs the Penman-Monteith pipeline for one validated observation:
// atmospheric terms, radiation balance, and wind normalization feed the
// combination equation. The three term groups are independent of each other;
// only the combiner needs all of them.
//
// Callers must validate the observation first. ComputeET0 still refuses to
// emit a non-finite value: degenerate numeric states surface as a
// *ComputationError, never as NaN in the output stream.
func ComputeET0(obs DailyObservation) (ET0Result, error) {
	atm := fao56.NewAtmosphere(
		obs.TempMin, obs.TempMax, obs.TempMean,
		obs.HumidityMin, obs.HumidityMax,
		obs.Pressure,
	)
	rad := fao56.NewRadiation(
		obs.Latitude, obs.DayOfYear,
		obs.SunshineHours, obs.Altitude,
		obs.TempMin, obs.TempMax,
		atm.ActualVP,
	)
	// The input contract fixes measurement height at 2 m, so this is a
	// pass-through today; the seam stays so other anemometer heights only
	// touch this call site.
	u2 := fao56.WindSpeedAt2m(obs.WindSpeed2m, 2)

	et0, err := fao56.ET0(atm, rad, u2, obs.TempMean, fao56.SoilHeatFluxDaily)
	if err != nil {
		if errors.Is(err, fao56.ErrDegenerateDenominator) {
			return ET0Result{}, &ComputationError{Term: "denominator", Reason: err.Error()}
		}
		return ET0Result{}, &ComputationError{Term: "et0", Reason: err.Error()}
	}
	if math.IsNaN(et0) || math.IsInf(et0, 0) {
		return ET0Result{}, &ComputationError{Term: "et0", Reason: "result is not finite"}
	}

	return ET0Result{
		DayOfYear:   obs.DayOfYear,
		Latitude:    obs.Latitude,
		ET0:         et0,
		ProcessedAt: clock.Now(),
	}, nil
}
