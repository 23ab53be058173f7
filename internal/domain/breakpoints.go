package domain

import (
	"errors"
	"fmt"
	"math"
)

// BreakpointSegment maps one concentration range onto one AQI range.
type BreakpointSegment struct {
	ConcHigh  float64 `json:"conc_high"`
	ConcLow   float64 `json:"conc_low"`
	IndexHigh float64 `json:"index_high"`
	IndexLow  float64 `json:"index_low"`
}

// Interpolate returns the unrounded index for concentration c on this segment.
func (s BreakpointSegment) Interpolate(c float64) float64 {
	return (s.IndexHigh-s.IndexLow)/(s.ConcHigh-s.ConcLow)*(c-s.ConcLow) + s.IndexLow
}

// Index returns the rounded AQI for concentration c on this segment.
func (s BreakpointSegment) Index(c float64) AQI {
	return AQI(math.Round(s.Interpolate(c)))
}

// BreakpointTable is an ordered set of segments, highest concentration first.
// The last segment is the floor and also admits its lower bound.
type BreakpointTable []BreakpointSegment

var pm25Segments = [...]BreakpointSegment{
	{ConcHigh: 500.0, ConcLow: 350.5, IndexHigh: 500, IndexLow: 401},
	{ConcHigh: 350.4, ConcLow: 250.5, IndexHigh: 400, IndexLow: 301},
	{ConcHigh: 250.4, ConcLow: 150.5, IndexHigh: 300, IndexLow: 201},
	{ConcHigh: 150.4, ConcLow: 55.5, IndexHigh: 200, IndexLow: 151},
	{ConcHigh: 55.4, ConcLow: 35.5, IndexHigh: 150, IndexLow: 101},
	{ConcHigh: 35.4, ConcLow: 12.1, IndexHigh: 100, IndexLow: 51},
	{ConcHigh: 12.0, ConcLow: 0.0, IndexHigh: 50, IndexLow: 0},
}

// PM25Breakpoints returns a copy of the EPA PM2.5 breakpoint table.
func PM25Breakpoints() BreakpointTable {
	t := make(BreakpointTable, len(pm25Segments))
	copy(t, pm25Segments[:])
	return t
}

// Segment returns the segment covering concentration c: the first one whose
// lower bound is strictly below c, or the floor when c equals its lower bound.
func (t BreakpointTable) Segment(c float64) (BreakpointSegment, bool) {
	last := len(t) - 1
	for i, seg := range t {
		if c > seg.ConcLow || (i == last && c == seg.ConcLow) {
			return seg, true
		}
	}
	return BreakpointSegment{}, false
}

// AQI interpolates concentration c. Concentrations below the floor, NaN, and
// infinities have no index.
func (t BreakpointTable) AQI(c float64) AQI {
	if math.IsInf(c, 0) {
		return UndefinedAQI
	}
	seg, ok := t.Segment(c)
	if !ok {
		return UndefinedAQI
	}
	return seg.Index(c)
}

// Validate checks that every segment has increasing bounds and that segments
// are ordered by strictly descending lower bound.
func (t BreakpointTable) Validate() error {
	if len(t) == 0 {
		return errors.New("breakpoint table is empty")
	}
	for i, seg := range t {
		if seg.ConcHigh <= seg.ConcLow {
			return fmt.Errorf("segment %d: conc_high %g <= conc_low %g", i, seg.ConcHigh, seg.ConcLow)
		}
		if seg.IndexHigh <= seg.IndexLow {
			return fmt.Errorf("segment %d: index_high %g <= index_low %g", i, seg.IndexHigh, seg.IndexLow)
		}
		if i > 0 && seg.ConcLow >= t[i-1].ConcLow {
			return fmt.Errorf("segment %d: conc_low %g not below segment %d conc_low %g", i, seg.ConcLow, i-1, t[i-1].ConcLow)
		}
	}
	return nil
}
