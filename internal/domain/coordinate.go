package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// minutesMarker terminates the minutes segment of a degrees-minutes string.
const minutesMarker = "'"

// Convention names the hemisphere sign rule applied to parsed coordinates.
type Convention string

const (
	// ConventionNorthwest forces latitudes positive and longitudes negative.
	// Survey logs in the northwest Atlantic record unsigned magnitudes.
	ConventionNorthwest Convention = "northwest"

	// ConventionSigned keeps coordinate signs exactly as written.
	ConventionSigned Convention = "signed"
)

// ParseConvention validates a convention name from config or CLI flags.
func ParseConvention(s string) (Convention, error) {
	switch Convention(s) {
	case ConventionNorthwest, ConventionSigned:
		return Convention(s), nil
	case "":
		return ConventionNorthwest, nil
	default:
		return "", fmt.Errorf("unknown hemisphere convention %q (want %q or %q)", s, ConventionNorthwest, ConventionSigned)
	}
}

// ParseOptions controls coordinate parsing for a batch.
// A zero Separator means detect it from the first record.
type ParseOptions struct {
	Separator  rune
	Convention Convention
}

// DetectSeparator returns the degrees/minutes separator of a coordinate
// string: the first rune that cannot belong to the numeric degrees segment.
func DetectSeparator(sample string) (rune, error) {
	s := strings.TrimSpace(sample)
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || (i == 0 && (r == '-' || r == '+')) {
			continue
		}
		if string(r) == minutesMarker {
			return 0, fmt.Errorf("detect separator: %q has no degrees/minutes boundary before the minutes marker", sample)
		}
		return r, nil
	}
	return 0, fmt.Errorf("detect separator: %q contains no non-numeric boundary", sample)
}

// ParseDM converts one degrees-minutes string to decimal degrees:
// decimal = degrees + minutes/60. The string must split into exactly two
// numeric segments on sep; the minutes marker is stripped before conversion.
func ParseDM(value string, sep rune) (float64, error) {
	parts := strings.Split(strings.TrimSpace(value), string(sep))
	if len(parts) != 2 {
		return 0, fmt.Errorf("does not split into degrees and minutes on %q", string(sep))
	}

	degrees, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("degrees segment %q is not numeric", parts[0])
	}

	minStr := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[1]), minutesMarker))
	minutes, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		return 0, fmt.Errorf("minutes segment %q is not numeric", parts[1])
	}
	if minutes < 0 || minutes >= 60 {
		return 0, fmt.Errorf("minutes %g outside [0,60)", minutes)
	}

	sign := 1.0
	if math.Signbit(degrees) {
		sign = -1.0
	}
	return degrees + sign*minutes/60, nil
}

// ParseCoordinatePairs converts row-aligned latitude and longitude strings
// into decimal-degree pairs. The separator is taken from opts or detected
// from the first record, then validated on every row: a row written with a
// different separator fails with a *ParseError naming the row instead of
// propagating a wrong split.
func ParseCoordinatePairs(lats, lons []string, opts ParseOptions) ([]ParsedCoordinate, error) {
	if len(lats) != len(lons) {
		return nil, &AlignmentError{Records: len(lats), Geometries: len(lons)}
	}
	if len(lats) == 0 {
		return []ParsedCoordinate{}, nil
	}

	conv := opts.Convention
	if conv == "" {
		conv = ConventionNorthwest
	}

	sep := opts.Separator
	if sep == 0 {
		detected, err := DetectSeparator(lats[0])
		if err != nil {
			return nil, &ParseError{Row: 0, Value: lats[0], Reason: err.Error()}
		}
		sep = detected
	}

	pairs := make([]ParsedCoordinate, len(lats))
	for i := range lats {
		lat, err := ParseDM(lats[i], sep)
		if err != nil {
			return nil, &ParseError{Row: i, Value: lats[i], Reason: err.Error()}
		}
		lon, err := ParseDM(lons[i], sep)
		if err != nil {
			return nil, &ParseError{Row: i, Value: lons[i], Reason: err.Error()}
		}
		pairs[i] = applyConvention(ParsedCoordinate{Lat: lat, Lon: lon}, conv)
	}
	return pairs, nil
}

// applyConvention resolves the hemisphere of an unsigned-magnitude pair.
func applyConvention(c ParsedCoordinate, conv Convention) ParsedCoordinate {
	if conv == ConventionNorthwest {
		c.Lat = math.Abs(c.Lat)
		c.Lon = -math.Abs(c.Lon)
	}
	return c
}
