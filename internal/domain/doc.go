// Package domain converts PurpleAir PM2.5 sensor readings into US EPA Air
// Quality Index values, severity levels, and trend indicators.
//
// # Data Source
//
// Readings come from the PurpleAir legacy JSON endpoint
// (https://www.purpleair.com/json?show=<sensor id>). Each physical sensor has
// two laser counters reported as two entries in "results": entry 0 is channel
// A and carries the station metadata (humidity, Stats, LastSeen, Label, Lat,
// Lon); entry 1 is channel B. The purpleair adapter resolves that document into
// a [SensorSnapshot] before anything in this package runs.
//
// # Conventions
//
// Numeric fields:
//
//	PurpleAir reports most values as JSON strings ("12.34"). They are parsed
//	leniently as integers: leading whitespace, optional sign, then digits.
//	Anything after the digits is dropped, so "12.9" reads as 12.
//
// Parse failures are handled differently per stage:
//
//	PM correction inputs (pm2_5_cf_1 for A and B, humidity) must parse, or the
//	reading is rejected with [ErrInvalidInput].
//	Trend statistics (Stats v1, v2) read as 0 when they do not parse.
//
// # EPA Correction
//
// The US-wide correction for PurpleAir sensors under wood smoke conditions:
//
//	PM2.5 = 0.52 * avg(cf_1 A, cf_1 B) - 0.085 * RH + 5.71
//
// Results are not clamped. A negative corrected value yields [UndefinedAQI].
//
// # AQI Breakpoints
//
//	  C > 350.5   401-500
//	  C > 250.5   301-400
//	  C > 150.5   201-300
//	  C > 55.5    151-200
//	  C > 35.5    101-150
//	  C > 12.1     51-100
//	  C >= 0        0-50
//
// Within a segment: I = (Ih - Il) / (Ch - Cl) * (C - Cl) + Il, rounded half
// away from zero. See [PM25Breakpoints].
//
// # Levels
//
// A level applies when its threshold is strictly below the AQI. AQI 0 maps to
// the threshold-0 floor ("Good"). See [Levels] and [LevelCatalog.Classify].
//
// # Trend
//
// Stats v1 is the short window average and v2 the longer one. A difference
// (v2 - v1) above 5 is Improving, below -5 Worsening, otherwise Stable.
package domain
