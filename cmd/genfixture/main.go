// Command genfixture reads saved PurpleAir JSON responses and generates a
// fixture of snapshots and evaluated results. It uses the real adapter and
// domain packages so the fixture matches live pipeline behavior; tablecheck
// can later re-evaluate it to catch drift.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -in internal/adapter/purpleair/testdata \
//	  -sensor 34663 \
//	  -out testdata/fixture.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchcryptid/purpleair-aqi/internal/adapter/purpleair"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
)

type fixtureRecord struct {
	Source   string                     `json:"source"`
	Snapshot domain.SensorSnapshot      `json:"snapshot"`
	Result   *domain.PresentationResult `json:"result,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "PurpleAir JSON file or directory of *.json files")
	sensorID := flag.String("sensor", "", "sensor ID recorded on each snapshot")
	out := flag.String("out", "", "output path for the fixture JSON")
	flag.Parse()

	if *in == "" || *sensorID == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -in, -sensor, -out")
	}

	paths, err := inputFiles(*in)
	if err != nil {
		return err
	}

	records, err := buildRecords(paths, *sensorID)
	if err != nil {
		return err
	}

	if err := writeJSON(*out, records); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", len(records), *out)
	printStats(records)
	return nil
}

func inputFiles(in string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{in}, nil
	}
	paths, err := filepath.Glob(filepath.Join(in, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no *.json files in %s", in)
	}
	sort.Strings(paths)
	return paths, nil
}

// buildRecords parses each response and evaluates it. Responses that do not
// parse abort the run; readings that fail evaluation are recorded with their
// error so the fixture covers both paths.
func buildRecords(paths []string, sensorID string) ([]fixtureRecord, error) {
	records := make([]fixtureRecord, 0, len(paths))
	for _, path := range paths {
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		snap, err := purpleair.ParseResponse(sensorID, body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		rec := fixtureRecord{Source: filepath.Base(path), Snapshot: snap}
		result, err := domain.Evaluate(snap)
		if err != nil {
			rec.Error = err.Error()
		} else {
			rec.Result = &result
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printStats(records []fixtureRecord) {
	byLevel := make(map[string]int)
	failed := 0
	for _, rec := range records {
		if rec.Result == nil {
			failed++
			continue
		}
		byLevel[rec.Result.Level.Label]++
	}

	fmt.Println("\nLevels:")
	for _, level := range domain.Levels() {
		if n := byLevel[level.Label]; n > 0 {
			fmt.Printf("  %-18s %d\n", level.Label, n)
		}
	}
	if failed > 0 {
		fmt.Printf("  %-18s %d\n", "(not evaluated)", failed)
	}
}
