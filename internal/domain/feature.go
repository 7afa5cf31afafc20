package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DeriveTowFlag reports whether a tow occurred at a station: "Y" when the
// tow start time is recorded, "N" otherwise. Kept categorical because the
// flag is rendered directly as a legend value.
func DeriveTowFlag(towStartTime string) string {
	if strings.TrimSpace(towStartTime) == "" {
		return "N"
	}
	return "Y"
}

// AssembleFeatures merges records with their row-aligned point geometries
// into a FeatureCollection. Inputs are not mutated; feature order preserves
// record order one-to-one. Fails with an *AlignmentError when the sequences
// differ in length — no partial collection is produced.
func AssembleFeatures(records []RawStationRecord, points []orb.Point) (FeatureCollection, error) {
	if len(records) != len(points) {
		return FeatureCollection{}, &AlignmentError{Records: len(records), Geometries: len(points)}
	}

	now := timeSource.Now()
	features := make([]StationFeature, len(records))
	for i := range records {
		features[i] = StationFeature{
			Station:      records[i].Station,
			CastType:     records[i].CastType,
			Point:        points[i],
			CRS:          CRSCode,
			TowOccurred:  DeriveTowFlag(records[i].TowStartTime),
			TowStartTime: records[i].TowStartTime,
			Date:         records[i].Date,
			Row:          i,
			ProcessedAt:  now,
		}
	}

	return FeatureCollection{
		CRS:         CRSCode,
		Features:    features,
		GeneratedAt: now,
	}, nil
}

// BuildFeatureCollection runs the whole batch transform: degrees-minutes
// strings → decimal pairs → point geometries → assembled features.
func BuildFeatureCollection(records []RawStationRecord, opts ParseOptions) (FeatureCollection, error) {
	lats := make([]string, len(records))
	lons := make([]string, len(records))
	for i := range records {
		lats[i] = records[i].Lat
		lons[i] = records[i].Lon
	}

	pairs, err := ParseCoordinatePairs(lats, lons, opts)
	if err != nil {
		return FeatureCollection{}, err
	}

	points, err := BuildPoints(pairs)
	if err != nil {
		return FeatureCollection{}, err
	}

	return AssembleFeatures(records, points)
}

// ParseRawEvent deserializes a RawEvent's value into a StationFeature.
// It expects the flat JSON produced by the station log collector. Each
// message is its own single-row batch: the separator is detected from the
// message itself unless opts pins one. Row carries the message offset so a
// bad record can still be traced to its source.
func ParseRawEvent(raw RawEvent, opts ParseOptions) (StationFeature, error) {
	var rec RawStationRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return StationFeature{}, fmt.Errorf("parse raw event: %w", err)
	}

	pairs, err := ParseCoordinatePairs([]string{rec.Lat}, []string{rec.Lon}, opts)
	if err != nil {
		return StationFeature{}, stampRow(err, int(raw.Offset))
	}

	point, err := BuildPoint(pairs[0].Lon, pairs[0].Lat)
	if err != nil {
		return StationFeature{}, stampRow(err, int(raw.Offset))
	}

	return StationFeature{
		Station:      rec.Station,
		CastType:     rec.CastType,
		Point:        point,
		CRS:          CRSCode,
		TowOccurred:  DeriveTowFlag(rec.TowStartTime),
		TowStartTime: rec.TowStartTime,
		Date:         rec.Date,
		Row:          int(raw.Offset),
		ProcessedAt:  timeSource.Now(),
	}, nil
}

// stampRow rewrites the row index on a domain error so stream-mode errors
// point at the message offset rather than the within-message index.
func stampRow(err error, row int) error {
	switch e := err.(type) {
	case *ParseError:
		e.Row = row
	case *GeometryError:
		e.Row = row
	}
	return err
}

// SerializeFeature marshals a StationFeature into an OutputEvent for the
// sink topic. The value is a GeoJSON Feature document.
func SerializeFeature(f StationFeature) (OutputEvent, error) {
	data, err := f.GeoJSON().MarshalJSON()
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize station feature: %w", err)
	}
	return OutputEvent{
		Key:   []byte(f.Station),
		Value: data,
		Headers: map[string]string{
			"station":      f.Station,
			"processed_at": f.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// GeoJSON converts a StationFeature to a GeoJSON Feature with the record
// attributes as properties.
func (f StationFeature) GeoJSON() *geojson.Feature {
	gf := geojson.NewFeature(f.Point)
	gf.ID = f.Station
	gf.Properties["station"] = f.Station
	gf.Properties["crs"] = f.CRS
	gf.Properties["tow_occurred"] = f.TowOccurred
	gf.Properties["row"] = f.Row
	if f.CastType != "" {
		gf.Properties["cast_type"] = f.CastType
	}
	if f.TowStartTime != "" {
		gf.Properties["tow_start_time"] = f.TowStartTime
	}
	if f.Zone != "" {
		gf.Properties["zone"] = f.Zone
	}
	if f.Date != "" {
		gf.Properties["date"] = f.Date
	}
	if !f.ProcessedAt.IsZero() {
		gf.Properties["processed_at"] = f.ProcessedAt.Format(time.RFC3339)
	}
	return gf
}

// GeoJSON converts the collection to a GeoJSON FeatureCollection, the
// handoff format consumed by the rendering side.
func (fc FeatureCollection) GeoJSON() *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for i := range fc.Features {
		out.Append(fc.Features[i].GeoJSON())
	}
	return out
}
