package main

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/urfave/cli/v2"

	"github.com/halocline/station-map-etl/internal/adapter/csvfile"
	"github.com/halocline/station-map-etl/internal/adapter/geojsonfile"
	"github.com/halocline/station-map-etl/internal/domain"
)

// coordTolerance bounds the decimal-degree drift allowed between a
// re-parsed log coordinate and the emitted geometry.
const coordTolerance = 1e-9

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "cross-check an emitted GeoJSON station map against its source log",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "station log CSV", Required: true},
			&cli.StringFlag{Name: "features", Aliases: []string{"f"}, Usage: "emitted GeoJSON station map", Required: true},
			&cli.StringFlag{Name: "cast-type", Value: "Bongo", Usage: "cast type the map was built with, empty for all"},
			&cli.StringFlag{Name: "separator", Usage: "degrees-minutes separator, detected from the first record when empty"},
			&cli.StringFlag{Name: "convention", Value: "northwest", Usage: "hemisphere convention: northwest or signed"},
		},
		Action: runValidate,
	}
}

func runValidate(c *cli.Context) error {
	opts, err := parseOptionsFromFlags(c)
	if err != nil {
		return err
	}

	records, err := csvfile.Read(c.String("input"), c.String("cast-type"))
	if err != nil {
		return fmt.Errorf("read station log: %w", err)
	}

	emitted, err := geojsonfile.Load(c.String("features"))
	if err != nil {
		return fmt.Errorf("load station map: %w", err)
	}

	phases := []*phase{
		validateRowParity(records, emitted),
		validateCoordinates(records, emitted, opts),
		validateProperties(records, emitted),
	}

	fmt.Println("=== Station Map Validation ===")
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-32s %s\n", p.name, status)
	}
	fmt.Printf("Records: %d station log, %d GeoJSON features\n", len(records), len(emitted.Features))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if !allPassed {
		return cli.Exit("validation failed", 1)
	}
	fmt.Println("\nAll validations passed.")
	return nil
}

// validateRowParity verifies the map holds exactly one feature per retained
// log row, in input order.
func validateRowParity(records []domain.RawStationRecord, emitted *geojson.FeatureCollection) *phase {
	p := &phase{name: "row parity"}
	if len(records) != len(emitted.Features) {
		p.errorf("expected %d features, got %d", len(records), len(emitted.Features))
	}
	return p
}

// validateCoordinates re-parses every log coordinate and compares it with
// the emitted geometry.
func validateCoordinates(records []domain.RawStationRecord, emitted *geojson.FeatureCollection, opts domain.ParseOptions) *phase {
	p := &phase{name: "coordinate round-trip"}

	lats := make([]string, len(records))
	lons := make([]string, len(records))
	for i, r := range records {
		lats[i] = r.Lat
		lons[i] = r.Lon
	}

	coords, err := domain.ParseCoordinatePairs(lats, lons, opts)
	if err != nil {
		p.errorf("re-parse station log: %v", err)
		return p
	}

	for i, feature := range emitted.Features {
		if i >= len(coords) {
			break
		}
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			p.errorf("feature %d: geometry is %T, want point", i, feature.Geometry)
			continue
		}
		if math.Abs(point.Lon()-coords[i].Lon) > coordTolerance {
			p.errorf("feature %d: lon %.9f differs from log value %.9f", i, point.Lon(), coords[i].Lon)
		}
		if math.Abs(point.Lat()-coords[i].Lat) > coordTolerance {
			p.errorf("feature %d: lat %.9f differs from log value %.9f", i, point.Lat(), coords[i].Lat)
		}
	}
	return p
}

// validateProperties verifies station names, tow flags, and datum tags.
func validateProperties(records []domain.RawStationRecord, emitted *geojson.FeatureCollection) *phase {
	p := &phase{name: "feature properties"}

	for i, feature := range emitted.Features {
		if i >= len(records) {
			break
		}
		record := records[i]

		if got := feature.Properties.MustString("station", ""); got != record.Station {
			p.errorf("feature %d: station %q, log says %q", i, got, record.Station)
		}
		if got := feature.Properties.MustString("crs", ""); got != domain.CRSCode {
			p.errorf("feature %d: crs %q, want %q", i, got, domain.CRSCode)
		}
		want := domain.DeriveTowFlag(record.TowStartTime)
		if got := feature.Properties.MustString("tow_occurred", ""); got != want {
			p.errorf("feature %d: tow_occurred %q, log implies %q", i, got, want)
		}
	}
	return p
}
