package domain

import (
	"context"
	"log/slog"

	"github.com/paulmach/orb"
)

// ZoneLocator answers which fishery-management zone contains a point.
type ZoneLocator interface {
	// Locate returns the zone label containing the point, or ok=false when
	// the point falls outside every zone.
	Locate(ctx context.Context, point orb.Point) (label string, ok bool, err error)
}

// EnrichWithZone attempts to tag a feature with the management zone
// containing its station. If locator is nil the feature is returned
// unchanged; lookup misses leave the zone empty and failures are logged,
// never fatal (graceful degradation).
func EnrichWithZone(ctx context.Context, feature StationFeature, locator ZoneLocator, logger *slog.Logger) StationFeature {
	if locator == nil {
		return feature
	}

	label, ok, err := locator.Locate(ctx, feature.Point)
	if err != nil {
		logger.Warn("zone lookup failed",
			"station", feature.Station,
			"lon", feature.Point.Lon(),
			"lat", feature.Point.Lat(),
			"error", err,
		)
		return feature
	}
	if ok {
		feature.Zone = label
	}
	return feature
}
