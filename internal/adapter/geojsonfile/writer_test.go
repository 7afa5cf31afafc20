package geojsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halocline/station-map-etl/internal/domain"
)

func TestWriteAndLoad(t *testing.T) {
	fc := domain.FeatureCollection{
		CRS: domain.CRSCode,
		Features: []domain.StationFeature{
			{
				Station:     "ST-01",
				CastType:    "Bongo",
				Point:       orb.Point{-70.5, 40.25},
				CRS:         domain.CRSCode,
				TowOccurred: "Y",
				Row:         0,
				ProcessedAt: time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC),
			},
			{
				Station:     "ST-02",
				Point:       orb.Point{-69.75, 41.0},
				CRS:         domain.CRSCode,
				TowOccurred: "N",
				Row:         1,
			},
		},
		GeneratedAt: time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "out", "features.geojson")
	require.NoError(t, Write(path, fc))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Features, 2)

	first := loaded.Features[0]
	assert.Equal(t, orb.Point{-70.5, 40.25}, first.Geometry)
	assert.Equal(t, "ST-01", first.Properties.MustString("station"))
	assert.Equal(t, "Y", first.Properties.MustString("tow_occurred"))
	assert.Equal(t, domain.CRSCode, first.Properties.MustString("crs"))
	assert.InDelta(t, 0, first.Properties.MustFloat64("row"), 1e-9)

	second := loaded.Features[1]
	assert.Equal(t, "N", second.Properties.MustString("tow_occurred"))
	assert.InDelta(t, 1, second.Properties.MustFloat64("row"), 1e-9)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.geojson"))
	require.Error(t, err)
}

func TestLoad_NotGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.geojson")
	require.NoError(t, os.WriteFile(path, []byte("not geojson"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
