package acs

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// LoadAppendix reads Appendix A from the summary-file technical
// documentation workbook into catalog rows. Column order follows the
// published sheet: name, title, restriction, sequence, start-end range,
// topics, universe.
func LoadAppendix(path string) ([]CatalogRow, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(rows) < 2 {
		return nil, errors.New("appendix workbook has no data rows")
	}

	out := make([]CatalogRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := CatalogRow{
			Name:        cellAt(row, 0),
			Title:       cellAt(row, 1),
			Restriction: cellAt(row, 2),
			Seq:         cellAt(row, 3),
			StartEnd:    cellAt(row, 4),
			Topics:      cellAt(row, 5),
			Universe:    cellAt(row, 6),
		}
		if r.Name == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
