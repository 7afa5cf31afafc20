package domain

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPoint(t *testing.T) {
	t.Run("round-trip", func(t *testing.T) {
		lon, lat := -70.5, 40+15.5/60

		pt, err := BuildPoint(lon, lat)
		require.NoError(t, err)
		assert.Equal(t, lon, pt.Lon())
		assert.Equal(t, lat, pt.Lat())
	})

	tests := []struct {
		name string
		lon  float64
		lat  float64
	}{
		{"NaN longitude", math.NaN(), 40.0},
		{"Inf latitude", -70.0, math.Inf(1)},
		{"longitude too far west", -180.5, 40.0},
		{"longitude too far east", 181.0, 40.0},
		{"latitude below range", -70.0, -90.5},
		{"latitude above range", -70.0, 91.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPoint(tt.lon, tt.lat)
			var ge *GeometryError
			require.ErrorAs(t, err, &ge)
			assert.Contains(t, ge.Error(), "row 0")
		})
	}
}

func TestBuildPoints(t *testing.T) {
	t.Run("maps batch without mutating input", func(t *testing.T) {
		pairs := []ParsedCoordinate{
			{Lat: 40.25, Lon: -70.5},
			{Lat: 41.0, Lon: -69.75},
		}

		points, err := BuildPoints(pairs)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, orb.Point{-70.5, 40.25}, points[0])
		assert.Equal(t, orb.Point{-69.75, 41.0}, points[1])

		// Inputs untouched.
		assert.Equal(t, ParsedCoordinate{Lat: 40.25, Lon: -70.5}, pairs[0])
	})

	t.Run("error carries failing row", func(t *testing.T) {
		pairs := []ParsedCoordinate{
			{Lat: 40.25, Lon: -70.5},
			{Lat: 95.0, Lon: -69.75},
		}

		_, err := BuildPoints(pairs)
		var ge *GeometryError
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, 1, ge.Row)
		assert.Equal(t, 95.0, ge.Lat)
	})

	t.Run("empty batch", func(t *testing.T) {
		points, err := BuildPoints(nil)
		require.NoError(t, err)
		assert.Empty(t, points)
	})
}
