package fao56

import "math"

// PsychrometricGamma is the proportionality constant of FAO-56 Eq. 8,
// kPa °C⁻¹ per kPa of atmospheric pressure.
const PsychrometricGamma = 0.000665

// SaturationVaporPressure returns e°(T) in kPa for an air temperature in °C
// (FAO-56 Eq. 11, Tetens form). Strictly increasing in T.
func SaturationVaporPressure(tempC float64) float64 {
	return 0.6108 * math.Exp(17.27*tempC/(tempC+237.3))
}

// SaturationSlope returns Δ, the slope of the saturation vapor pressure curve
// at the mean air temperature, in kPa °C⁻¹ (FAO-56 Eq. 13).
func SaturationSlope(tMeanC float64) float64 {
	d := tMeanC + 237.3
	return 4098 * SaturationVaporPressure(tMeanC) / (d * d)
}

// PsychrometricConstant returns γ in kPa °C⁻¹ for an atmospheric pressure in
// kPa (FAO-56 Eq. 8).
func PsychrometricConstant(pressureKPa float64) float64 {
	return PsychrometricGamma * pressureKPa
}

// PressureAtAltitude returns the standard-atmosphere pressure in kPa at an
// elevation in meters above sea level (FAO-56 Eq. 7). Used when a station
// supplies altitude but no barometric reading.
func PressureAtAltitude(altitudeM float64) float64 {
	return 101.3 * math.Pow((293.0-0.0065*altitudeM)/293.0, 5.26)
}

// Atmosphere bundles the humidity, temperature, and pressure dependent terms
// consumed by the combination equation.
type Atmosphere struct {
	Gamma        float64 // psychrometric constant γ, kPa °C⁻¹
	Delta        float64 // slope of the saturation vapor pressure curve Δ, kPa °C⁻¹
	SaturationVP float64 // mean saturation vapor pressure es, kPa
	ActualVP     float64 // actual vapor pressure ea, kPa
}

// VaporPressureDeficit returns es − ea in kPa.
func (a Atmosphere) VaporPressureDeficit() float64 {
	return a.SaturationVP - a.ActualVP
}

// NewAtmosphere derives the atmospheric terms from the daily temperature
// extremes, relative humidity extremes (%), and atmospheric pressure (kPa).
//
// The actual vapor pressure pairs e°(Tmin) with RHmax and e°(Tmax) with RHmin
// (FAO-56 Eq. 17). The daily extremes are physically correlated — the coolest
// moment of the day is the most humid — so this pairing must not be replaced
// by the naive es × mean(RH) approximation.
func NewAtmosphere(tMinC, tMaxC, tMeanC, rhMin, rhMax, pressureKPa float64) Atmosphere {
	e0Min := SaturationVaporPressure(tMinC)
	e0Max := SaturationVaporPressure(tMaxC)

	return Atmosphere{
		Gamma:        PsychrometricConstant(pressureKPa),
		Delta:        SaturationSlope(tMeanC),
		SaturationVP: (e0Min + e0Max) / 2,
		ActualVP:     (e0Min*rhMax/100 + e0Max*rhMin/100) / 2,
	}
}
