package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/halocline/station-map-etl/internal/adapter/csvfile"
	"github.com/halocline/station-map-etl/internal/adapter/geojsonfile"
	"github.com/halocline/station-map-etl/internal/domain"
	"github.com/halocline/station-map-etl/internal/zones"
)

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "convert a station log CSV into a GeoJSON station map",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "station log CSV", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "GeoJSON output path", Required: true},
			&cli.StringFlag{Name: "cast-type", Value: "Bongo", Usage: "cast type to keep, empty for all"},
			&cli.StringFlag{Name: "separator", Usage: "degrees-minutes separator, detected from the first record when empty"},
			&cli.StringFlag{Name: "convention", Value: "northwest", Usage: "hemisphere convention: northwest or signed"},
			&cli.StringFlag{Name: "zones", Usage: "optional management zone GeoJSON for enrichment"},
			&cli.StringFlag{Name: "zone-property", Value: zones.DefaultLabelProperty, Usage: "property holding the zone label"},
		},
		Action: runBuild,
	}
}

func runBuild(c *cli.Context) error {
	logger := newCLILogger()

	opts, err := parseOptionsFromFlags(c)
	if err != nil {
		return err
	}

	records, err := csvfile.Read(c.String("input"), c.String("cast-type"))
	if err != nil {
		return fmt.Errorf("read station log: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no matching station records in %s", c.String("input"))
	}

	collection, err := domain.BuildFeatureCollection(records, opts)
	if err != nil {
		return err
	}

	if zonesPath := c.String("zones"); zonesPath != "" {
		if err := enrichCollection(c, &collection, zonesPath, logger); err != nil {
			return err
		}
	}

	if err := geojsonfile.Write(c.String("output"), collection); err != nil {
		return fmt.Errorf("write station map: %w", err)
	}

	logger.Info("station map written",
		"stations", len(collection.Features),
		"output", c.String("output"),
	)
	return nil
}

// enrichCollection tags every station with the management zone containing it.
func enrichCollection(c *cli.Context, collection *domain.FeatureCollection, zonesPath string, logger *slog.Logger) error {
	data, err := os.ReadFile(zonesPath)
	if err != nil {
		return fmt.Errorf("read zones: %w", err)
	}

	set, err := zones.FromGeoJSON(data, c.String("zone-property"))
	if err != nil {
		return fmt.Errorf("index zones: %w", err)
	}
	logger.Info("zone enrichment enabled", "zones", set.Len())

	for i := range collection.Features {
		collection.Features[i] = domain.EnrichWithZone(c.Context, collection.Features[i], set, logger)
	}
	return nil
}
