package acs

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// AssembledRow is one output row: a geographic identifier and the values
// of every projected column, absent values as empty strings.
type AssembledRow struct {
	GeoID  string
	Values []string
}

// AssembledTable is the result of assembling one table for one
// partition, in geography-extract row order.
type AssembledTable struct {
	Name     string
	IDColumn string
	Columns  []string
	Rows     []AssembledRow
}

// Vacuous reports whether the table holds no value at all for this
// partition. Rows whose value columns are all absent are dropped during
// assembly, so an empty row set is the vacuity test.
func (t *AssembledTable) Vacuous() bool {
	return len(t.Rows) == 0
}

// Assembler builds tables by slicing sequence extracts against the
// catalog's column ranges and joining them on logical record number.
type Assembler struct {
	catalog   *Catalog
	templates *Templates
}

func NewAssembler(catalog *Catalog, templates *Templates) *Assembler {
	a := new(Assembler)
	a.catalog = catalog
	a.templates = templates
	return a
}

type slicePart struct {
	cols    []string
	byGeoID map[string][]string
}

// Assemble builds one table for one partition. A sequence that cannot be
// read fails the whole table; slices already read are discarded so a
// partial table is never produced. A table with no catalog entry
// assembles to a vacuous result rather than an error.
func (a *Assembler) Assemble(table string, geo *GeoIndex, part Partition) (*AssembledTable, error) {
	out := new(AssembledTable)
	out.Name = table
	out.IDColumn = cGeoIDColumn

	slices := a.catalog.SlicesFor(table)
	if len(slices) == 0 {
		logrus.WithField("table", table).Debug("Table has no catalog slices")
		return out, nil
	}

	parts := make([]slicePart, 0, len(slices))
	for _, sl := range slices {
		cols, err := a.templates.ColumnsFor(sl.Seq)
		if err != nil {
			return nil, err
		}
		if sl.End > len(cols) {
			return nil, &SequenceReadError{Seq: sl.Seq, Reason: fmt.Sprintf(
				"template has %d columns but the catalog slice needs %d-%d",
				len(cols), sl.Start, sl.End)}
		}

		rc, err := part.Sequence(sl.Seq)
		if err != nil {
			return nil, err
		}
		st, err := ReadSequence(rc, sl.Seq, cols)
		rc.Close()
		if err != nil {
			return nil, err
		}

		// Inner join against the geography index on logical record
		// number, then project the 1-based inclusive range [Start, End]
		// as 0-based half-open [Start-1, End).
		p := slicePart{
			cols:    cols[sl.Start-1 : sl.End],
			byGeoID: make(map[string][]string, geo.Len()),
		}
		for _, gr := range geo.Rows() {
			if row, ok := st.Row(gr.LogRec); ok {
				p.byGeoID[gr.GeoID] = row[sl.Start-1 : sl.End]
			}
		}
		parts = append(parts, p)
	}

	width := 0
	for _, p := range parts {
		out.Columns = append(out.Columns, p.cols...)
		width += len(p.cols)
	}

	// Column-wise concatenation is an outer union over identifiers: an
	// identifier missing from one slice's join keeps its row with absent
	// fill. Rows with every value absent are dropped entirely.
	for _, gr := range geo.Rows() {
		values := make([]string, 0, width)
		present := false
		for _, p := range parts {
			if v, ok := p.byGeoID[gr.GeoID]; ok {
				for _, s := range v {
					if s != "" {
						present = true
					}
				}
				values = append(values, v...)
			} else {
				values = append(values, make([]string, len(p.cols))...)
			}
		}
		if present {
			out.Rows = append(out.Rows, AssembledRow{GeoID: gr.GeoID, Values: values})
		}
	}
	return out, nil
}
