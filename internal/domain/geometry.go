package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// BuildPoint turns one decimal-degree pair into a point geometry. Pure
// function: the returned point reads back exactly the values passed in.
func BuildPoint(lon, lat float64) (orb.Point, error) {
	if err := validatePair(0, lon, lat); err != nil {
		return orb.Point{}, err
	}
	return orb.Point{lon, lat}, nil
}

// BuildPoints maps a parsed batch to a new slice of point geometries.
// It never mutates its input; the first invalid pair aborts with a
// *GeometryError carrying the row index.
func BuildPoints(pairs []ParsedCoordinate) ([]orb.Point, error) {
	points := make([]orb.Point, len(pairs))
	for i, pair := range pairs {
		if err := validatePair(i, pair.Lon, pair.Lat); err != nil {
			return nil, err
		}
		points[i] = orb.Point{pair.Lon, pair.Lat}
	}
	return points, nil
}

func validatePair(row int, lon, lat float64) error {
	switch {
	case math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0):
		return &GeometryError{Row: row, Lon: lon, Lat: lat, Reason: "coordinate is not finite"}
	case lon < -180 || lon > 180:
		return &GeometryError{Row: row, Lon: lon, Lat: lat, Reason: "longitude outside [-180,180]"}
	case lat < -90 || lat > 90:
		return &GeometryError{Row: row, Lon: lon, Lat: lat, Reason: "latitude outside [-90,90]"}
	}
	return nil
}
