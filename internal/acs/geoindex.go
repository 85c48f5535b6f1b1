package acs

import (
	"fmt"
	"io"

	"github.com/ian-campbell/acs-to-csv/pkg/csvio"
)

// GeoRow pairs a geographic identifier with its logical record number.
type GeoRow struct {
	GeoID  string
	LogRec string
}

// GeoIndex is the geography extract of one (state, level) partition,
// filtered to the requested summary level and projected down to the two
// join keys. Row order follows the extract.
type GeoIndex struct {
	level    string
	rows     []GeoRow
	byLogRec map[string]string
}

// NewGeoIndex reads a raw geography extract. The extract is header-less;
// geoCols supplies its column names. Only rows matching the summary-level
// code are kept. Duplicate identifiers or record numbers within the level
// mean a malformed source and fail the partition rather than merge.
func NewGeoIndex(r io.Reader, geoCols []string, level string) (*GeoIndex, error) {
	geoIdx := indexOf(geoCols, cGeoIDColumn)
	logIdx := indexOf(geoCols, cLogRecColumn)
	levIdx := indexOf(geoCols, cSumLevColumn)
	if geoIdx < 0 || logIdx < 0 || levIdx < 0 {
		return nil, &GeographyReadError{Level: level,
			Reason: "geography template is missing an identifier, record number or summary level column"}
	}

	g := new(GeoIndex)
	g.level = level
	g.rows = make([]GeoRow, 0)
	g.byLogRec = make(map[string]string)
	seenGeoID := make(map[string]bool)

	reader := csvio.NewReader(r)
	lineNo := 0
	for reader.Next() {
		lineNo++
		values := reader.Values()
		if normalizeValue(fieldAt(values, levIdx)) != level {
			continue
		}
		geoID := normalizeValue(fieldAt(values, geoIdx))
		logRec := normalizeValue(fieldAt(values, logIdx))
		if geoID == "" || logRec == "" {
			return nil, &GeographyReadError{Level: level,
				Reason: fmt.Sprintf("row %d has no geographic identifier or record number", lineNo)}
		}
		if seenGeoID[geoID] {
			return nil, &GeographyReadError{Level: level,
				Reason: fmt.Sprintf("duplicate geographic identifier %s", geoID)}
		}
		if _, ok := g.byLogRec[logRec]; ok {
			return nil, &GeographyReadError{Level: level,
				Reason: fmt.Sprintf("duplicate logical record number %s", logRec)}
		}
		seenGeoID[geoID] = true
		g.byLogRec[logRec] = geoID
		g.rows = append(g.rows, GeoRow{GeoID: geoID, LogRec: logRec})
	}
	if err := reader.Err(); err != nil {
		return nil, &GeographyReadError{Level: level, Reason: "read failed", Err: err}
	}
	return g, nil
}

func (g *GeoIndex) Level() string {
	return g.level
}

func (g *GeoIndex) Len() int {
	return len(g.rows)
}

// Rows returns the (identifier, record number) pairs in extract order.
func (g *GeoIndex) Rows() []GeoRow {
	return g.rows
}

func (g *GeoIndex) GeoIDFor(logRec string) (string, bool) {
	geoID, ok := g.byLogRec[logRec]
	return geoID, ok
}

func indexOf(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}

func fieldAt(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}

// normalizeValue maps the extract's "no value" sentinels to the empty
// string so absence tests are uniform downstream.
func normalizeValue(s string) string {
	for _, na := range naValues {
		if s == na {
			return ""
		}
	}
	return s
}
