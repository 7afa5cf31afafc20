package pipeline

import (
	"context"
	"log/slog"

	"github.com/halocline/station-map-etl/internal/domain"
	"github.com/halocline/station-map-etl/internal/observability"
)

// StationTransformer converts raw station log events into GeoJSON point
// feature events, optionally tagging each station with its management zone.
type StationTransformer struct {
	locator domain.ZoneLocator
	opts    domain.ParseOptions
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStationTransformer creates a transformer. locator may be nil, in which
// case features are emitted without a zone.
func NewStationTransformer(locator domain.ZoneLocator, opts domain.ParseOptions, logger *slog.Logger, metrics *observability.Metrics) *StationTransformer {
	return &StationTransformer{
		locator: locator,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// Transform parses the raw event into a station feature and serializes it
// for the sink topic. Coordinate and geometry failures are returned to the
// caller, which decides whether to skip the record.
func (t *StationTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	feature, err := domain.ParseRawEvent(raw, t.opts)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	if t.locator != nil {
		feature = domain.EnrichWithZone(ctx, feature, t.locator, t.logger)
		result := "miss"
		if feature.Zone != "" {
			result = "hit"
		}
		t.metrics.ZoneLookups.WithLabelValues(result).Inc()
	}

	return domain.SerializeFeature(feature)
}
