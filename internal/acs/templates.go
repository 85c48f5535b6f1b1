package acs

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

// Templates holds the column-name schema for every sequence file plus the
// geography file under the "geo" key. Immutable once built.
type Templates struct {
	columns map[string][]string
}

// NewTemplates builds the registry from already-parsed header rows. Column
// names equal to the reserved placeholder are disambiguated with their
// positional index; downstream joins need unique names.
func NewTemplates(sheets map[string][]string) *Templates {
	t := new(Templates)
	t.columns = make(map[string][]string, len(sheets))
	for key, cols := range sheets {
		fixed := make([]string, len(cols))
		for i, col := range cols {
			if col == cReservedLabel {
				col = col + strconv.Itoa(i)
			}
			fixed[i] = col
		}
		t.columns[key] = fixed
	}
	return t
}

// ColumnsFor returns the column names for a sequence id or for "geo".
func (t *Templates) ColumnsFor(key string) ([]string, error) {
	cols, ok := t.columns[key]
	if !ok {
		return nil, &UnknownSequenceError{Key: key}
	}
	return cols, nil
}

func (t *Templates) Has(key string) bool {
	_, ok := t.columns[key]
	return ok
}

// LoadTemplates reads the summary-file templates zip archive. Each member
// workbook named seq<N>.xlsx contributes the template for sequence N; the
// Geo member contributes the geography template. The column names are the
// first data row of each sheet, under the human-readable header row.
func LoadTemplates(zipPath string) (*Templates, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer zr.Close()

	sheets := make(map[string][]string)
	for _, f := range zr.File {
		key := templateKeyFor(f.Name)
		if key == "" {
			logrus.WithField("member", f.Name).Debug("Skipping non-template archive member")
			continue
		}
		cols, err := readTemplateSheet(f)
		if err != nil {
			return nil, errors.Wrapf(err, "template member %s", f.Name)
		}
		sheets[key] = cols
	}
	if len(sheets) == 0 {
		return nil, errors.New("templates archive contains no template sheets")
	}
	if _, ok := sheets[cGeoTemplateKey]; !ok {
		return nil, errors.New("templates archive is missing the geography template")
	}
	return NewTemplates(sheets), nil
}

// templateKeyFor maps an archive member name to its registry key, or ""
// for members that are not templates (directories, documentation).
func templateKeyFor(name string) string {
	base := path.Base(name)
	if idx := strings.Index(base, "seq"); idx >= 0 {
		s := base[idx+3:]
		s = strings.SplitN(s, ".", 2)[0]
		if !utils.IsInt(s) {
			return ""
		}
		return utils.ZeroPad(s, cSeqIDWidth)
	}
	if strings.Contains(base, "Geo") {
		return cGeoTemplateKey
	}
	return ""
}

func readTemplateSheet(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	// The first sheet row is a heading; the second carries the column names.
	if len(rows) < 2 {
		return nil, errors.New("template sheet has no data row")
	}
	return rows[1], nil
}
