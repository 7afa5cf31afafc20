// Package zones holds fishery-management zone polygons and answers
// point-in-zone queries for station features.
//
// Zones are loaded from GeoJSON — a local file or per-label payloads from a
// remote endpoint — and indexed with an R-tree so a lookup only tests the
// polygons whose bounding boxes contain the query point.
//
// Payloads must be in EPSG:4326 (or CRS-less GeoJSON, which defaults to
// WGS-84 lon/lat). A declared foreign CRS is rejected at load: reprojection
// is the rendering side's job, not this pipeline's.
package zones

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// DefaultLabelProperty is the GeoJSON property carrying the zone label.
const DefaultLabelProperty = "zone"

// rectTolerance pads degenerate bounding boxes so rtreego accepts them.
const rectTolerance = 1e-9

// Set is an immutable collection of named zone polygons with a spatial index.
type Set struct {
	index  *rtreego.Rtree
	labels []string
	count  int
}

type zoneEntry struct {
	label string
	geom  orb.Geometry // Polygon or MultiPolygon
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *zoneEntry) Bounds() rtreego.Rect { return e.rect }

// Fetcher supplies the GeoJSON payload for one named zone subset.
type Fetcher interface {
	FetchZone(ctx context.Context, label string) ([]byte, error)
}

// FromGeoJSON builds a Set from a single GeoJSON FeatureCollection whose
// features carry their zone label in labelProperty.
func FromGeoJSON(data []byte, labelProperty string) (*Set, error) {
	entries, err := parsePayload(data, labelProperty, "")
	if err != nil {
		return nil, err
	}
	return newSet(entries), nil
}

// LoadRemote builds a Set by fetching each named zone subset from a Fetcher.
// Features without a label property fall back to the requested label.
func LoadRemote(ctx context.Context, fetcher Fetcher, labels []string, labelProperty string) (*Set, error) {
	var entries []*zoneEntry
	for _, label := range labels {
		data, err := fetcher.FetchZone(ctx, label)
		if err != nil {
			return nil, fmt.Errorf("fetch zone %q: %w", label, err)
		}
		parsed, err := parsePayload(data, labelProperty, label)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", label, err)
		}
		entries = append(entries, parsed...)
	}
	return newSet(entries), nil
}

func newSet(entries []*zoneEntry) *Set {
	tree := rtreego.NewTree(2, 25, 50)
	seen := map[string]bool{}
	var labels []string
	for _, e := range entries {
		tree.Insert(e)
		if !seen[e.label] {
			seen[e.label] = true
			labels = append(labels, e.label)
		}
	}
	sort.Strings(labels)
	return &Set{index: tree, labels: labels, count: len(entries)}
}

func parsePayload(data []byte, labelProperty, fallbackLabel string) ([]*zoneEntry, error) {
	if err := checkCRS(data); err != nil {
		return nil, err
	}
	if labelProperty == "" {
		labelProperty = DefaultLabelProperty
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode zone geojson: %w", err)
	}

	entries := make([]*zoneEntry, 0, len(fc.Features))
	for i, feature := range fc.Features {
		label := feature.Properties.MustString(labelProperty, fallbackLabel)
		if label == "" {
			return nil, fmt.Errorf("zone feature %d has no %q property", i, labelProperty)
		}

		switch feature.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, fmt.Errorf("zone feature %d (%s): geometry is %s, want Polygon or MultiPolygon",
				i, label, feature.Geometry.GeoJSONType())
		}

		rect, err := boundToRect(feature.Geometry.Bound())
		if err != nil {
			return nil, fmt.Errorf("zone feature %d (%s): %w", i, label, err)
		}
		entries = append(entries, &zoneEntry{label: label, geom: feature.Geometry, rect: rect})
	}
	return entries, nil
}

// checkCRS rejects payloads declaring a non-WGS-84 coordinate system.
// GeoJSON without a crs member is WGS-84 by definition (RFC 7946).
func checkCRS(data []byte) error {
	var envelope struct {
		CRS *struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
		} `json:"crs"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decode zone geojson: %w", err)
	}
	if envelope.CRS == nil {
		return nil
	}
	name := envelope.CRS.Properties.Name
	if strings.Contains(name, "4326") || strings.Contains(name, "CRS84") {
		return nil
	}
	return fmt.Errorf("zone payload declares CRS %q: reproject to EPSG:4326 before loading", name)
}

func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	lengths := []float64{
		maxFloat(b.Max[0]-b.Min[0], rectTolerance),
		maxFloat(b.Max[1]-b.Min[1], rectTolerance),
	}
	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
	if err != nil {
		return rtreego.Rect{}, fmt.Errorf("index bounds: %w", err)
	}
	return rect, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Locate returns the label of the zone containing the point. Candidates come
// from the R-tree; exact containment is decided by planar point-in-polygon
// tests. Satisfies the pipeline's zone locator contract; the error return is
// always nil for an in-memory set.
func (s *Set) Locate(_ context.Context, point orb.Point) (string, bool, error) {
	if s == nil || s.count == 0 {
		return "", false, nil
	}

	query := rtreego.Point{point.Lon(), point.Lat()}.ToRect(rectTolerance)
	for _, candidate := range s.index.SearchIntersect(query) {
		e := candidate.(*zoneEntry)
		if containsPoint(e.geom, point) {
			return e.label, true, nil
		}
	}
	return "", false, nil
}

func containsPoint(geom orb.Geometry, point orb.Point) bool {
	switch g := geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, point)
	}
	return false
}

// Len reports the number of indexed zone polygons.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Labels returns the distinct zone labels in the set, sorted.
func (s *Set) Labels() []string {
	if s == nil {
		return nil
	}
	return s.labels
}
