package domain

import (
	"errors"
	"fmt"
)

// ColorSet is a background gradient and text color, as hex RGB without "#".
type ColorSet struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

// LevelEntry describes one AQI severity tier and how to present it.
type LevelEntry struct {
	Threshold   int      `json:"threshold"`
	Label       string   `json:"label"`
	LightColors ColorSet `json:"light_colors"`
	DarkColors  ColorSet `json:"dark_colors"`
	TextSize    float64  `json:"text_size"`
}

// Colors picks the color set for the caller's appearance mode.
func (e LevelEntry) Colors(dark bool) ColorSet {
	if dark {
		return e.DarkColors
	}
	return e.LightColors
}

// LevelCatalog is a set of level entries with unique thresholds.
type LevelCatalog []LevelEntry

var levelEntries = [...]LevelEntry{
	{
		Threshold:   300,
		Label:       "Hazardous",
		LightColors: ColorSet{Start: "9e2043", End: "7e0023", Text: "ffffff"},
		DarkColors:  ColorSet{Start: "9e2043", End: "7e0023", Text: "ffffff"},
		TextSize:    20,
	},
	{
		Threshold:   200,
		Label:       "Very Unhealthy",
		LightColors: ColorSet{Start: "8f3f97", End: "6f1f77", Text: "ffffff"},
		DarkColors:  ColorSet{Start: "8f3f97", End: "6f1f77", Text: "ffffff"},
		TextSize:    15,
	},
	{
		Threshold:   150,
		Label:       "Unhealthy",
		LightColors: ColorSet{Start: "FF3D3D", End: "D60000", Text: "000000"},
		DarkColors:  ColorSet{Start: "FF3D3D", End: "D60000", Text: "000000"},
		TextSize:    20,
	},
	{
		Threshold:   100,
		Label:       "Unhealthy (S.G.)",
		LightColors: ColorSet{Start: "FFA63D", End: "D67200", Text: "000000"},
		DarkColors:  ColorSet{Start: "FFA63D", End: "D67200", Text: "000000"},
		TextSize:    15,
	},
	{
		Threshold:   50,
		Label:       "Moderate",
		LightColors: ColorSet{Start: "ffff00", End: "cccc00", Text: "000000"},
		DarkColors:  ColorSet{Start: "ffff00", End: "cccc00", Text: "000000"},
		TextSize:    20,
	},
	{
		Threshold:   0,
		Label:       "Good",
		LightColors: ColorSet{Start: "ffffff", End: "ffffff", Text: "00e400"},
		DarkColors:  ColorSet{Start: "000000", End: "000000", Text: "00e400"},
		TextSize:    20,
	},
}

// Levels returns a copy of the AQI level catalog, highest threshold first.
func Levels() LevelCatalog {
	c := make(LevelCatalog, len(levelEntries))
	copy(c, levelEntries[:])
	return c
}

// Floor returns the threshold-0 entry.
func (c LevelCatalog) Floor() (LevelEntry, bool) {
	for _, e := range c {
		if e.Threshold == 0 {
			return e, true
		}
	}
	return LevelEntry{}, false
}

// Validate checks that thresholds are non-negative and unique and that
// exactly one entry is the threshold-0 floor.
func (c LevelCatalog) Validate() error {
	if len(c) == 0 {
		return errors.New("level catalog is empty")
	}
	seen := make(map[int]string, len(c))
	for _, e := range c {
		if e.Threshold < 0 {
			return fmt.Errorf("level %q: negative threshold %d", e.Label, e.Threshold)
		}
		if other, ok := seen[e.Threshold]; ok {
			return fmt.Errorf("levels %q and %q share threshold %d", other, e.Label, e.Threshold)
		}
		seen[e.Threshold] = e.Label
	}
	if _, ok := seen[0]; !ok {
		return errors.New("level catalog has no threshold 0 floor")
	}
	return nil
}
