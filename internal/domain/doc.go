// Package domain models daily meteorological observations and their FAO-56
// reference evapotranspiration results.
//
// # Data Source
//
// Observations originate as rows of daily station CSV files. The upstream
// collector publishes each row as flat JSON keyed by the historical column
// names, all values as strings:
//
//	lat       latitude, decimal degrees
//	Tmin      minimum air temperature, °C
//	Tmax      maximum air temperature, °C
//	Tmean     mean air temperature, °C
//	RHmin     minimum relative humidity, %
//	RHmax     maximum relative humidity, %
//	uz        wind speed at 2 m, m/s
//	n         actual sunshine duration, hours
//	pressure  atmospheric pressure, kPa (optional; derived from z when empty)
//	doy       day of year, 1-366
//	z         station elevation, m above sea level
//
// The batch CLI reads the same columns directly from CSV files.
//
// # Record lifecycle
//
// A raw record is parsed into a typed DailyObservation (explicit strconv
// parsing; no silent coercions), validated against physical ranges and
// cross-field orderings, and consumed exactly once by ComputeET0. Records are
// never mutated and nothing is shared between records, so callers may process
// observations in any order or in parallel.
//
// # Errors
//
// Rejections carry enough detail for operators to correct source data:
// ValidationError names the offending field and the violated constraint;
// ComputationError names the degenerate term. Both are per-record — one bad
// row never aborts a run.
package domain
