package acs

import (
	"io"

	"github.com/ian-campbell/acs-to-csv/pkg/csvio"
)

// SequenceTable is one numbered estimate extract, addressable by logical
// record number. Rows are padded to the template width so slice
// projection can index columns directly.
type SequenceTable struct {
	seq  string
	cols []string
	rows map[string][]string
}

// ReadSequence parses a header-less estimate extract using the sequence's
// column template as field names, with the same sentinel normalization as
// the geography reader.
func ReadSequence(r io.Reader, seq string, cols []string) (*SequenceTable, error) {
	logIdx := indexOf(cols, cSeqLogRecCol)
	if logIdx < 0 {
		return nil, &SequenceReadError{Seq: seq,
			Reason: "template has no " + cSeqLogRecCol + " column"}
	}

	t := new(SequenceTable)
	t.seq = seq
	t.cols = cols
	t.rows = make(map[string][]string)

	reader := csvio.NewReader(r)
	for reader.Next() {
		values := reader.Values()
		row := make([]string, len(cols))
		for i := range cols {
			row[i] = normalizeValue(fieldAt(values, i))
		}
		logRec := row[logIdx]
		if logRec == "" {
			continue
		}
		t.rows[logRec] = row
	}
	if err := reader.Err(); err != nil {
		return nil, &SequenceReadError{Seq: seq, Reason: "read failed", Err: err}
	}
	return t, nil
}

func (t *SequenceTable) Seq() string {
	return t.seq
}

func (t *SequenceTable) Columns() []string {
	return t.cols
}

func (t *SequenceTable) Len() int {
	return len(t.rows)
}

// Row returns the full template-width record for a logical record number.
func (t *SequenceTable) Row(logRec string) ([]string, bool) {
	row, ok := t.rows[logRec]
	return row, ok
}
