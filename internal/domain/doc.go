// Package domain models oceanographic survey station logs and their
// transformation into map-ready point features.
//
// # Data Source
//
// Station logs come from shipboard survey event records: one row per
// sampling event with the station id, the cast type (e.g. "Bongo", "CTD"),
// the coordinates as degrees-minutes strings, a filter-status flag, and the
// tow start time when a net tow was performed. Upstream ingestion filters
// rows by cast type and non-empty filter status before they reach this
// package; the JSON shape of a row is [RawStationRecord].
//
// # Coordinate Conventions
//
// Coordinates are recorded as sexagesimal degrees-minutes strings:
//
//	"40°15.5'"  →  40 + 15.5/60 = 40.258333° (decimal degrees)
//
// The character between degrees and minutes varies by cruise (degree sign,
// space, dash). It is either configured explicitly or detected from the
// first record of a batch, and every row is validated against it — a row
// written with a different separator fails with a *ParseError rather than
// being silently mis-split. The trailing apostrophe is the minutes marker
// and is stripped before numeric conversion.
//
// Survey logs store coordinate magnitudes unsigned. Which hemisphere those
// magnitudes live in is a per-dataset convention, not a geodetic rule, so it
// is an explicit [Convention]: the default [ConventionNorthwest] forces
// latitudes positive and longitudes negative (northwest Atlantic survey
// area), while [ConventionSigned] takes values as written.
//
// # Tow Flag
//
// A station "towed" when its Tow_start_time field is non-empty. The flag is
// kept as "Y"/"N" rather than a bool because it is rendered directly as a
// categorical legend value downstream.
//
// # Geometry
//
// Parsed pairs become [orb.Point] values tagged with the fixed geodetic
// datum EPSG:4326 (WGS-84). Points outside [-180,180] longitude or [-90,90]
// latitude, or with non-finite components, fail with a *GeometryError.
//
// # Failure Semantics
//
// ParseError, GeometryError, and AlignmentError are terminal for the batch
// being processed: there is no retry and no partial FeatureCollection. Each
// carries the source row index and the offending value so the bad input
// line can be located.
package domain
