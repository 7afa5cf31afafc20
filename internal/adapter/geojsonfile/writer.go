// Package geojsonfile emits assembled feature collections as GeoJSON files,
// the handoff format consumed by the map-rendering side.
package geojsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/halocline/station-map-etl/internal/domain"
)

// Write marshals the collection as indented GeoJSON and writes it to path,
// creating parent directories as needed.
func Write(path string, fc domain.FeatureCollection) error {
	return writeJSON(path, fc.GeoJSON())
}

// Load reads a GeoJSON FeatureCollection back from disk. Used by trace
// validation to compare emitted output against its source log.
func Load(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feature file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature file %s: %w", path, err)
	}
	return fc, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
