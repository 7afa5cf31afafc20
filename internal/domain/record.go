package domain

import (
	"context"
	"time"

	"github.com/paulmach/orb"
)

// CRSCode is the geodetic datum every emitted feature is tagged with.
const CRSCode = "EPSG:4326"

// RawStationRecord is one survey sampling event as ingested from the
// station log. Field tags cover both the CSV header names used by the
// shipboard logs and the flat JSON published by the collector.
type RawStationRecord struct {
	Station      string `csv:"Station" json:"Station"`
	CastType     string `csv:"Cast_type" json:"Cast_type"`
	Lat          string `csv:"Lat" json:"Lat"` // degrees-minutes string, e.g. "40°15.5'"
	Lon          string `csv:"Lon" json:"Lon"` // degrees-minutes string, unsigned magnitude
	Filtered     string `csv:"Filtered" json:"Filtered"`
	TowStartTime string `csv:"Tow_start_time" json:"Tow_start_time"`
	Date         string `csv:"Date" json:"Date"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ParsedCoordinate is a decimal-degree pair derived from a record's
// degrees-minutes strings, after the hemisphere convention is applied.
type ParsedCoordinate struct {
	Lat float64
	Lon float64
}

// StationFeature is a RawStationRecord augmented with its point geometry,
// datum tag, and derived tow flag. Row is the zero-based index of the
// source record, kept for traceability back to the input line.
type StationFeature struct {
	Station      string    `json:"station"`
	CastType     string    `json:"cast_type,omitempty"`
	Point        orb.Point `json:"point"` // [lon, lat]
	CRS          string    `json:"crs"`
	TowOccurred  string    `json:"tow_occurred"` // "Y" or "N"
	TowStartTime string    `json:"tow_start_time,omitempty"`
	Zone         string    `json:"zone,omitempty"` // management zone label, set by enrichment
	Date         string    `json:"date,omitempty"`
	Row          int       `json:"row"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// FeatureCollection is the ordered output of a batch run. Feature order
// matches input row order one-to-one.
type FeatureCollection struct {
	CRS         string           `json:"crs"`
	Features    []StationFeature `json:"features"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
