package domain

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

type stubLocator struct {
	label string
	ok    bool
	err   error
}

func (s stubLocator) Locate(context.Context, orb.Point) (string, bool, error) {
	return s.label, s.ok, s.err
}

func TestEnrichWithZone(t *testing.T) {
	ctx := context.Background()
	feature := StationFeature{Station: "ST-01", Point: orb.Point{-70.5, 40.25}}

	t.Run("nil locator leaves feature unchanged", func(t *testing.T) {
		got := EnrichWithZone(ctx, feature, nil, slog.Default())
		assert.Equal(t, feature, got)
	})

	t.Run("hit tags the zone", func(t *testing.T) {
		got := EnrichWithZone(ctx, feature, stubLocator{label: "GOM", ok: true}, slog.Default())
		assert.Equal(t, "GOM", got.Zone)
	})

	t.Run("miss leaves zone empty", func(t *testing.T) {
		got := EnrichWithZone(ctx, feature, stubLocator{}, slog.Default())
		assert.Empty(t, got.Zone)
	})

	t.Run("lookup failure is not fatal", func(t *testing.T) {
		got := EnrichWithZone(ctx, feature, stubLocator{err: errors.New("index offline")}, slog.Default())
		assert.Empty(t, got.Zone)
		assert.Equal(t, feature.Station, got.Station)
	})
}
