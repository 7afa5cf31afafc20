// Package csvfile ingests shipboard station logs from CSV. It performs the
// upstream filtering the transform core assumes has already happened:
// rows are kept only when they match the requested cast type and carry a
// non-empty filter-status value.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/halocline/station-map-etl/internal/domain"
)

// Read loads, filters, and returns the station records of one log file.
// An empty castType keeps every cast type.
func Read(path, castType string) ([]domain.RawStationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open station log: %w", err)
	}
	defer f.Close()

	records, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("read station log %s: %w", path, err)
	}
	return Filter(records, castType), nil
}

func decode(r io.Reader) ([]domain.RawStationRecord, error) {
	// Survey logs occasionally have ragged rows; let gocsv skip the
	// missing trailing columns instead of failing the whole file.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.FieldsPerRecord = -1
		return cr
	})

	var records []domain.RawStationRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Filter keeps rows matching the cast type (empty matches all) that have a
// non-empty filter-status value. Row order is preserved.
func Filter(records []domain.RawStationRecord, castType string) []domain.RawStationRecord {
	kept := make([]domain.RawStationRecord, 0, len(records))
	for _, rec := range records {
		if castType != "" && rec.CastType != castType {
			continue
		}
		if strings.TrimSpace(rec.Filtered) == "" {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
