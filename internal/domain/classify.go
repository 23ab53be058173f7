package domain

import "fmt"

// Classify returns the level for aqi from the default catalog.
func Classify(aqi AQI) (LevelEntry, error) {
	return LevelCatalog(levelEntries[:]).Classify(aqi)
}

// Classify returns the entry with the largest threshold strictly below aqi.
// An AQI equal to the floor threshold (0) maps to the floor entry, since the
// strict rule would otherwise leave it unclassified.
func (c LevelCatalog) Classify(aqi AQI) (LevelEntry, error) {
	if !aqi.Defined() {
		return LevelEntry{}, fmt.Errorf("classify aqi %s: %w", aqi, ErrUnclassifiedLevel)
	}

	var (
		best  LevelEntry
		found bool
	)
	for _, e := range c {
		if e.Threshold < int(aqi) && (!found || e.Threshold > best.Threshold) {
			best = e
			found = true
		}
	}
	if found {
		return best, nil
	}

	if floor, ok := c.Floor(); ok && int(aqi) == floor.Threshold {
		return floor, nil
	}
	return LevelEntry{}, fmt.Errorf("classify aqi %s: %w", aqi, ErrUnclassifiedLevel)
}
