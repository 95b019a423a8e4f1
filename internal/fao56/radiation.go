package fao56

import "math"

const (
	// SolarConstant in MJ m⁻² min⁻¹ (FAO-56 Eq. 21).
	SolarConstant = 0.0820

	// Albedo of the reference grass surface (FAO-56 Eq. 38).
	Albedo = 0.23

	// Angstrom coefficients for estimating solar radiation from sunshine
	// duration when no calibrated local values exist (FAO-56 Eq. 35).
	AngstromAs = 0.25
	AngstromBs = 0.50

	// StefanBoltzmann in MJ K⁻⁴ m⁻² day⁻¹ (FAO-56 Eq. 39).
	StefanBoltzmann = 4.903e-9

	// kelvinOffset converts °C to K in the longwave balance.
	kelvinOffset = 273.16
)

// SolarDeclination returns δ in radians for a day of the year (FAO-56 Eq. 24).
func SolarDeclination(dayOfYear int) float64 {
	return 0.409 * math.Sin(2*math.Pi*float64(dayOfYear)/365-1.39)
}

// InverseRelativeDistance returns dr, the inverse relative Earth-Sun distance
// (FAO-56 Eq. 23).
func InverseRelativeDistance(dayOfYear int) float64 {
	return 1 + 0.033*math.Cos(2*math.Pi*float64(dayOfYear)/365)
}

// SunsetHourAngle returns ωs in radians from latitude and solar declination,
// both in radians (FAO-56 Eq. 25). The arccos argument is clamped to [-1, 1]:
// beyond the polar circles -tan(φ)tan(δ) leaves the domain, and even at
// moderate latitudes floating-point overshoot can nudge it past ±1. A clamped
// argument of -1 yields ωs = π (polar day), +1 yields ωs = 0 (polar night).
func SunsetHourAngle(latitudeRad, declination float64) float64 {
	arg := -math.Tan(latitudeRad) * math.Tan(declination)
	if arg < -1 {
		arg = -1
	} else if arg > 1 {
		arg = 1
	}
	return math.Acos(arg)
}

// DaylightHours returns N, the maximum possible sunshine duration in hours,
// from the sunset hour angle (FAO-56 Eq. 34).
func DaylightHours(sunsetHourAngle float64) float64 {
	return 24 / math.Pi * sunsetHourAngle
}

// ExtraterrestrialRadiation returns Ra in MJ m⁻² day⁻¹ for a latitude in
// decimal degrees and a day of the year (FAO-56 Eq. 21).
func ExtraterrestrialRadiation(latitudeDeg float64, dayOfYear int) float64 {
	phi := latitudeDeg * math.Pi / 180
	decl := SolarDeclination(dayOfYear)
	dr := InverseRelativeDistance(dayOfYear)
	ws := SunsetHourAngle(phi, decl)

	return 24 * 60 / math.Pi * SolarConstant * dr *
		(ws*math.Sin(phi)*math.Sin(decl) + math.Cos(phi)*math.Cos(decl)*math.Sin(ws))
}

// Radiation bundles the radiation balance terms for one day at one site.
type Radiation struct {
	Ra            float64 // extraterrestrial radiation, MJ m⁻² day⁻¹
	DaylightHours float64 // maximum possible sunshine duration N, hours
	Rs            float64 // incoming solar radiation, MJ m⁻² day⁻¹
	Rso           float64 // clear-sky solar radiation, MJ m⁻² day⁻¹
	Rns           float64 // net shortwave radiation, MJ m⁻² day⁻¹
	Rnl           float64 // net outgoing longwave radiation, MJ m⁻² day⁻¹
	Rn            float64 // net radiation at the crop surface, MJ m⁻² day⁻¹
}

// NewRadiation computes the daily radiation balance from latitude (decimal
// degrees), day of the year, actual sunshine duration (hours), station
// elevation (m), temperature extremes (°C), and actual vapor pressure (kPa).
//
// Solar radiation comes from the Angstrom relation (FAO-56 Eq. 35) with the
// default as/bs coefficients, clear-sky radiation from Eq. 37, net shortwave
// from Eq. 38, and net longwave from Eq. 39. The Rs/Rso cloudiness ratio is
// clamped to [0, 1] so sensor noise at low sun angles cannot push the
// longwave correction outside its calibrated range.
func NewRadiation(latitudeDeg float64, dayOfYear int, sunshineHours, altitudeM, tMinC, tMaxC, actualVP float64) Radiation {
	r := Radiation{
		Ra: ExtraterrestrialRadiation(latitudeDeg, dayOfYear),
	}

	phi := latitudeDeg * math.Pi / 180
	ws := SunsetHourAngle(phi, SolarDeclination(dayOfYear))
	r.DaylightHours = DaylightHours(ws)

	if r.DaylightHours > 0 {
		r.Rs = (AngstromAs + AngstromBs*sunshineHours/r.DaylightHours) * r.Ra
	}
	r.Rso = (0.75 + 2e-5*altitudeM) * r.Ra
	r.Rns = (1 - Albedo) * r.Rs

	// Polar night: no shortwave at all, so the cloudiness ratio is
	// undefined. Treat the sky as clear for the longwave balance.
	relativeShortwave := 1.0
	if r.Rso > 0 {
		relativeShortwave = r.Rs / r.Rso
		if relativeShortwave < 0 {
			relativeShortwave = 0
		} else if relativeShortwave > 1 {
			relativeShortwave = 1
		}
	}

	tMinK := tMinC + kelvinOffset
	tMaxK := tMaxC + kelvinOffset
	r.Rnl = StefanBoltzmann *
		(math.Pow(tMaxK, 4)+math.Pow(tMinK, 4))/2 *
		(0.34 - 0.14*math.Sqrt(actualVP)) *
		(1.35*relativeShortwave - 0.35)

	r.Rn = r.Rns - r.Rnl
	return r
}
