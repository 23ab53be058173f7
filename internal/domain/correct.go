package domain

import "fmt"

// EPA wood smoke correction for PurpleAir cf_1 readings.
const (
	correctionSlope     = 0.52
	humidityCoefficient = 0.085
	correctionIntercept = 5.71
)

// CorrectPM25 averages the two channel readings and applies the EPA
// correction. All three inputs must parse; the result is not clamped, so it
// can be negative.
func CorrectPM25(channelA, channelB, humidity string) (float64, error) {
	a, err := parseReading("channel_a", channelA)
	if err != nil {
		return 0, err
	}
	b, err := parseReading("channel_b", channelB)
	if err != nil {
		return 0, err
	}
	rh, err := parseReading("humidity", humidity)
	if err != nil {
		return 0, err
	}

	average := (float64(a) + float64(b)) / 2
	return correctionSlope*average - humidityCoefficient*float64(rh) + correctionIntercept, nil
}

func parseReading(field, value string) (int, error) {
	v, ok := parseLeadingInt(value)
	if !ok {
		return 0, fmt.Errorf("%s %q: %w", field, value, ErrInvalidInput)
	}
	return v, nil
}
