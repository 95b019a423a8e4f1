// Package fao56 implements the physical sub-formulas of the FAO-56
// Penman-Monteith reference evapotranspiration method.
//
// # Conventions
//
// All functions are pure and operate in the units used throughout FAO
// Irrigation and Drainage Paper 56:
//
//	temperature      °C (Kelvin only inside the longwave balance)
//	vapor pressure   kPa
//	pressure         kPa
//	radiation        MJ m⁻² day⁻¹
//	wind speed       m s⁻¹ at 2 m reference height
//	latitude         decimal degrees (converted to radians internally)
//	ET0              mm day⁻¹
//
// Equation numbers in comments refer to FAO-56. The reference surface is the
// standardized clipped grass (albedo 0.23, height 0.12 m).
//
// # Sign of ET0
//
// ET0 is not clamped at zero. On near-zero-radiation days (high latitude,
// winter, overcast) the combination equation can legitimately produce a
// slightly negative value (condensation exceeds evaporative demand); callers
// decide how to present it.
package fao56
