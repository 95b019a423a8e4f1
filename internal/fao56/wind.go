package fao56

import "math"

// WindSpeedAt2m converts a wind speed measured at heightM meters above ground
// to the 2 m reference height using the logarithmic profile over clipped
// grass (FAO-56 Eq. 47). Measurements already taken at 2 m pass through
// unchanged; the station network feeding this service reports at 2 m, so in
// practice this is an identity kept as the seam for other anemometer heights.
func WindSpeedAt2m(speed, heightM float64) float64 {
	if heightM == 2 {
		return speed
	}
	return speed * 4.87 / math.Log(67.8*heightM-5.42)
}
