package domain

import "fmt"

// ParseError reports a coordinate string that could not be converted to
// decimal degrees. Row is the zero-based index of the offending record.
type ParseError struct {
	Row    int
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse coordinate: row %d: %q: %s", e.Row, e.Value, e.Reason)
}

// GeometryError reports a decimal pair that cannot form a valid point.
type GeometryError struct {
	Row    int
	Lon    float64
	Lat    float64
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("build geometry: row %d: (lon=%g, lat=%g): %s", e.Row, e.Lon, e.Lat, e.Reason)
}

// AlignmentError reports a record/geometry count mismatch during assembly.
type AlignmentError struct {
	Records    int
	Geometries int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("assemble features: %d records but %d geometries", e.Records, e.Geometries)
}
