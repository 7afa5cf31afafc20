package zones

import (
	"context"
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareZone builds a GeoJSON feature for a square zone polygon.
func squareZone(label string, minLon, minLat, maxLon, maxLat float64) string {
	return fmt.Sprintf(`{
		"type": "Feature",
		"properties": {"zone": %q},
		"geometry": {
			"type": "Polygon",
			"coordinates": [[[%[2]g,%[3]g],[%[4]g,%[3]g],[%[4]g,%[5]g],[%[2]g,%[5]g],[%[2]g,%[3]g]]]
		}
	}`, label, minLon, minLat, maxLon, maxLat)
}

func collection(features ...string) []byte {
	out := `{"type":"FeatureCollection","features":[`
	for i, f := range features {
		if i > 0 {
			out += ","
		}
		out += f
	}
	return []byte(out + "]}")
}

func TestFromGeoJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("locates station in its zone", func(t *testing.T) {
		set, err := FromGeoJSON(collection(
			squareZone("GOM", -71, 41, -68, 44),
			squareZone("GB", -69, 40, -66, 42),
		), "")
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())
		assert.Equal(t, []string{"GB", "GOM"}, set.Labels())

		label, ok, err := set.Locate(ctx, orb.Point{-70.5, 43.0})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "GOM", label)

		label, ok, err = set.Locate(ctx, orb.Point{-67.0, 40.5})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "GB", label)
	})

	t.Run("point outside every zone", func(t *testing.T) {
		set, err := FromGeoJSON(collection(squareZone("GOM", -71, 41, -68, 44)), "")
		require.NoError(t, err)

		_, ok, err := set.Locate(ctx, orb.Point{-75.0, 36.0})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("bbox hit but polygon miss", func(t *testing.T) {
		// Triangle whose bounding box covers the query point while the
		// polygon itself does not: the R-tree candidate must still fail
		// the exact containment test.
		triangle := `{
			"type":"Feature",
			"properties":{"zone":"GOM"},
			"geometry":{"type":"Polygon","coordinates":[[[-71,41],[-69,41],[-71,44],[-71,41]]]}
		}`
		set, err := FromGeoJSON(collection(triangle), "")
		require.NoError(t, err)

		_, ok, err := set.Locate(ctx, orb.Point{-69.2, 42.0})
		require.NoError(t, err)
		assert.False(t, ok)

		label, ok, err := set.Locate(ctx, orb.Point{-70.8, 41.2})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "GOM", label)
	})

	t.Run("custom label property", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[{
			"type":"Feature",
			"properties":{"EPU":"MAB"},
			"geometry":{"type":"Polygon","coordinates":[[[-76,36],[-70,36],[-70,41],[-76,41],[-76,36]]]}
		}]}`)
		set, err := FromGeoJSON(data, "EPU")
		require.NoError(t, err)

		label, ok, err := set.Locate(ctx, orb.Point{-73.0, 39.0})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "MAB", label)
	})

	t.Run("missing label property", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[{
			"type":"Feature",
			"properties":{},
			"geometry":{"type":"Polygon","coordinates":[[[-76,36],[-70,36],[-70,41],[-76,41],[-76,36]]]}
		}]}`)
		_, err := FromGeoJSON(data, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"zone" property`)
	})

	t.Run("non-polygon geometry rejected", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[{
			"type":"Feature",
			"properties":{"zone":"GOM"},
			"geometry":{"type":"Point","coordinates":[-70,42]}
		}]}`)
		_, err := FromGeoJSON(data, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Polygon")
	})

	t.Run("foreign CRS rejected", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection",
			"crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::32619"}},
			"features":[]}`)
		_, err := FromGeoJSON(data, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EPSG:4326")
	})

	t.Run("explicit WGS-84 CRS accepted", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection",
			"crs":{"type":"name","properties":{"name":"urn:ogc:def:crs:OGC:1.3:CRS84"}},
			"features":[]}`)
		set, err := FromGeoJSON(data, "")
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
	})
}

func TestLocateEmptySet(t *testing.T) {
	set, err := FromGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`), "")
	require.NoError(t, err)

	_, ok, err := set.Locate(context.Background(), orb.Point{-70, 42})
	require.NoError(t, err)
	assert.False(t, ok)
}

type mapFetcher map[string][]byte

func (m mapFetcher) FetchZone(_ context.Context, label string) ([]byte, error) {
	data, ok := m[label]
	if !ok {
		return nil, fmt.Errorf("no payload for %q", label)
	}
	return data, nil
}

func TestLoadRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("merges per-label payloads", func(t *testing.T) {
		fetcher := mapFetcher{
			"GOM": collection(squareZone("GOM", -71, 41, -68, 44)),
			"GB":  collection(squareZone("GB", -69, 40, -66, 41)),
		}

		set, err := LoadRemote(ctx, fetcher, []string{"GOM", "GB"}, "")
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())

		label, ok, err := set.Locate(ctx, orb.Point{-70.5, 43.0})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "GOM", label)
	})

	t.Run("label falls back to requested subset name", func(t *testing.T) {
		unlabeled := []byte(`{"type":"FeatureCollection","features":[{
			"type":"Feature",
			"properties":{},
			"geometry":{"type":"Polygon","coordinates":[[[-71,41],[-68,41],[-68,44],[-71,44],[-71,41]]]}
		}]}`)
		set, err := LoadRemote(ctx, mapFetcher{"GOM": unlabeled}, []string{"GOM"}, "")
		require.NoError(t, err)

		label, ok, err := set.Locate(ctx, orb.Point{-70.0, 42.0})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "GOM", label)
	})

	t.Run("fetch failure aborts the load", func(t *testing.T) {
		_, err := LoadRemote(ctx, mapFetcher{}, []string{"GOM"}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `fetch zone "GOM"`)
	})
}
