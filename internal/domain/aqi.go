package domain

import "strconv"

// AQI is a US EPA Air Quality Index value. Negative values mean undefined.
type AQI int

// UndefinedAQI marks a concentration that cannot be indexed.
const UndefinedAQI AQI = -1

// Defined reports whether a holds a real index value.
func (a AQI) Defined() bool {
	return a >= 0
}

// String returns the index, or "-" when undefined.
func (a AQI) String() string {
	if !a.Defined() {
		return "-"
	}
	return strconv.Itoa(int(a))
}

// ToAQI converts a corrected PM2.5 concentration (µg/m³) to an AQI using the
// EPA PM2.5 breakpoints. Negative concentrations return UndefinedAQI.
func ToAQI(concentration float64) AQI {
	return BreakpointTable(pm25Segments[:]).AQI(concentration)
}
