package domain

// TrendDirection is the short-term direction of particulate levels.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendWorsening TrendDirection = "worsening"
	TrendStable    TrendDirection = "stable"
)

// trendThreshold is the smallest change between windows that counts as a trend.
const trendThreshold = 5

// Trend is the result of comparing the short and long window averages.
type Trend struct {
	Direction TrendDirection `json:"direction"`
	Delta     int            `json:"delta"` // long window minus short window
}

// AnalyzeTrend compares the short and long window statistics. Values that do
// not parse count as 0 rather than failing.
func AnalyzeTrend(statShortWindow, statLongWindow string) Trend {
	delta := parseIntOrZero(statLongWindow) - parseIntOrZero(statShortWindow)

	switch {
	case delta > trendThreshold:
		return Trend{Direction: TrendImproving, Delta: delta}
	case delta < -trendThreshold:
		return Trend{Direction: TrendWorsening, Delta: delta}
	default:
		return Trend{Direction: TrendStable, Delta: delta}
	}
}

// Suffix returns the text appended to the "AQI" header: " Improving",
// " Worsening", or nothing when stable.
func (t Trend) Suffix() string {
	switch t.Direction {
	case TrendImproving:
		return " Improving"
	case TrendWorsening:
		return " Worsening"
	default:
		return ""
	}
}
