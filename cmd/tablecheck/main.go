// Command tablecheck verifies the PM2.5 breakpoint table and AQI level
// catalog, prints the index on either side of every segment boundary, and
// optionally re-evaluates a fixture produced by genfixture to confirm the
// stored results still match the domain package.
//
// Usage:
//
//	go run ./cmd/tablecheck
//	go run ./cmd/tablecheck -fixture testdata/fixture.json
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/purpleair-aqi/internal/domain"
)

// maxIndex is the top of the EPA scale; every index up to it must classify.
const maxIndex = 500

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// fixtureRecord matches the records written by genfixture.
type fixtureRecord struct {
	Source   string                     `json:"source"`
	Snapshot domain.SensorSnapshot      `json:"snapshot"`
	Result   *domain.PresentationResult `json:"result,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

func main() {
	fixture := flag.String("fixture", "", "optional path to a genfixture JSON file to re-evaluate")
	flag.Parse()

	os.Exit(run(*fixture))
}

func run(fixturePath string) int {
	fmt.Println("=== AQI Table Validation ===")
	fmt.Println()

	table := domain.PM25Breakpoints()
	levels := domain.Levels()

	phases := []*phase{
		validateBreakpoints(table),
		validateContinuity(table),
		validateLevels(levels),
		validateCoverage(levels),
	}

	if fixturePath != "" {
		records, err := loadFixture(fixturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
			return 1
		}
		phases = append(phases, validateFixture(records))
	}

	return report(phases)
}

func report(phases []*phase) int {
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateBreakpoints(table domain.BreakpointTable) *phase {
	p := &phase{name: "Breakpoint table structure"}
	if err := table.Validate(); err != nil {
		p.errorf("%v", err)
		return p
	}

	floor := table[len(table)-1]
	if floor.ConcLow != 0 || floor.IndexLow != 0 {
		p.errorf("floor segment starts at %g/%g, want 0/0", floor.ConcLow, floor.IndexLow)
	}

	// Each segment picks up one index point and one tenth of a µg/m³ above
	// the segment below it.
	for i := 0; i < len(table)-1; i++ {
		upper, lower := table[i], table[i+1]
		if upper.IndexLow != lower.IndexHigh+1 {
			p.errorf("segment %d index_low %g, want %g", i, upper.IndexLow, lower.IndexHigh+1)
		}
		if gap := upper.ConcLow - lower.ConcHigh; math.Abs(gap-0.1) > 1e-9 {
			p.errorf("segment %d conc gap %.3f, want 0.1", i, gap)
		}
	}
	return p
}

func validateContinuity(table domain.BreakpointTable) *phase {
	p := &phase{name: "Boundary continuity (≤ 1 AQI)"}
	for i := 0; i < len(table)-1; i++ {
		boundary := table[i].ConcLow
		fromAbove := table[i].Index(boundary)
		fromBelow := table[i+1].Index(boundary)
		diff := int(fromAbove) - int(fromBelow)

		fmt.Printf("  %6.1f µg/m³  above=%3d  below=%3d  ToAQI=%3d\n",
			boundary, fromAbove, fromBelow, domain.ToAQI(boundary))

		if diff > 1 || diff < -1 {
			p.errorf("boundary %.1f: above %d, below %d", boundary, fromAbove, fromBelow)
		}
	}
	return p
}

func validateLevels(levels domain.LevelCatalog) *phase {
	p := &phase{name: "Level catalog structure"}
	if err := levels.Validate(); err != nil {
		p.errorf("%v", err)
		return p
	}

	floor, _ := levels.Floor()
	got, err := levels.Classify(0)
	if err != nil {
		p.errorf("classify 0: %v", err)
	} else if got.Label != floor.Label {
		p.errorf("classify 0 = %q, want floor %q", got.Label, floor.Label)
	}
	return p
}

func validateCoverage(levels domain.LevelCatalog) *phase {
	p := &phase{name: fmt.Sprintf("Level coverage 0..%d", maxIndex)}
	prev := -1
	for aqi := domain.AQI(0); aqi <= maxIndex; aqi++ {
		level, err := levels.Classify(aqi)
		if err != nil {
			p.errorf("aqi %d: %v", aqi, err)
			continue
		}
		if level.Threshold < prev {
			p.errorf("aqi %d: level %q steps down from threshold %d", aqi, level.Label, prev)
		}
		prev = level.Threshold
	}
	return p
}

func validateFixture(records []fixtureRecord) *phase {
	p := &phase{name: fmt.Sprintf("Fixture re-evaluation (%d records)", len(records))}
	for i, rec := range records {
		result, err := domain.Evaluate(rec.Snapshot)
		switch {
		case err != nil && rec.Error == "":
			p.errorf("[%d] %s: unexpected error %v", i, rec.Source, err)
		case err == nil && rec.Error != "":
			p.errorf("[%d] %s: expected error %q, got aqi %d", i, rec.Source, rec.Error, result.AQI)
		case err != nil:
			if err.Error() != rec.Error {
				p.errorf("[%d] %s: error %q, fixture has %q", i, rec.Source, err, rec.Error)
			}
		default:
			compareResult(p, i, rec, result)
		}
	}
	return p
}

func compareResult(p *phase, i int, rec fixtureRecord, got domain.PresentationResult) {
	if rec.Result == nil {
		p.errorf("[%d] %s: fixture has neither result nor error", i, rec.Source)
		return
	}
	want, err := json.Marshal(rec.Result)
	if err != nil {
		p.errorf("[%d] %s: marshal fixture: %v", i, rec.Source, err)
		return
	}
	have, err := json.Marshal(got)
	if err != nil {
		p.errorf("[%d] %s: marshal result: %v", i, rec.Source, err)
		return
	}
	if !bytes.Equal(want, have) {
		p.errorf("[%d] %s: aqi %d/%s, fixture has %d/%s",
			i, rec.Source, got.AQI, got.Level.Label, rec.Result.AQI, rec.Result.Level.Label)
	}
}

func loadFixture(path string) ([]fixtureRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []fixtureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
