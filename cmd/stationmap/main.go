// Command stationmap turns shipboard station logs into GeoJSON station maps.
//
// The build subcommand reads a cruise's station log CSV, converts the
// degrees-minutes coordinates to decimal degrees, and writes the stations
// as a GeoJSON FeatureCollection. The validate subcommand cross-checks an
// emitted GeoJSON file against its source log.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/halocline/station-map-etl/internal/domain"
)

func main() {
	app := &cli.App{
		Name:  "stationmap",
		Usage: "build and check GeoJSON station maps from survey station logs",
		Commands: []*cli.Command{
			buildCommand(),
			validateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("stationmap failed", "error", err)
		os.Exit(1)
	}
}

func newCLILogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// parseOptionsFromFlags builds coordinate parse options from the shared
// --separator and --convention flags.
func parseOptionsFromFlags(c *cli.Context) (domain.ParseOptions, error) {
	var opts domain.ParseOptions

	if sep := c.String("separator"); sep != "" {
		r, size := utf8.DecodeRuneInString(sep)
		if r == utf8.RuneError || size != len(sep) {
			return opts, fmt.Errorf("separator must be a single character, got %q", sep)
		}
		opts.Separator = r
	}

	convention, err := domain.ParseConvention(c.String("convention"))
	if err != nil {
		return opts, err
	}
	opts.Convention = convention

	return opts, nil
}
