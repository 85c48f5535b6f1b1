package acs

import (
	"strconv"
	"strings"

	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

// CatalogRow is one parsed Appendix A record.
type CatalogRow struct {
	Name        string
	Title       string
	Restriction string
	Seq         string
	StartEnd    string
	Topics      string
	Universe    string
}

// SequenceSlice locates one contiguous run of a table's columns inside a
// numbered sequence file. Start and End are 1-based inclusive positions in
// the sequence's column template.
type SequenceSlice struct {
	Seq   string
	Start int
	End   int
}

func (s SequenceSlice) Width() int {
	return s.End - s.Start + 1
}

// Catalog maps table names to the ordered sequence slices that hold their
// columns. Built once from Appendix A and immutable afterwards.
type Catalog struct {
	order  []string
	titles map[string]string
	slices map[string][]SequenceSlice
}

// NewCatalog parses Appendix A rows. A start-end range that does not split
// into exactly two numeric parts is a *CatalogFormatError; the catalog is
// load-bearing for every table request, so callers must treat that as
// fatal for the run.
func NewCatalog(rows []CatalogRow) (*Catalog, error) {
	c := new(Catalog)
	c.order = make([]string, 0, len(rows))
	c.titles = make(map[string]string)
	c.slices = make(map[string][]SequenceSlice)

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		start, end, err := parseStartEnd(name, row.StartEnd)
		if err != nil {
			return nil, err
		}
		seq := strings.TrimSpace(row.Seq)
		if utils.IsInt(seq) {
			seq = utils.ZeroPad(seq, cSeqIDWidth)
		}
		if _, ok := c.titles[name]; !ok {
			c.order = append(c.order, name)
			c.titles[name] = strings.TrimSpace(row.Title)
		}
		c.slices[name] = append(c.slices[name], SequenceSlice{Seq: seq, Start: start, End: end})
	}
	return c, nil
}

func parseStartEnd(table, value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 2 {
		return 0, 0, &CatalogFormatError{Table: table, Value: value,
			Reason: "expected <start>-<end>"}
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, &CatalogFormatError{Table: table, Value: value,
			Reason: "start is not numeric"}
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, &CatalogFormatError{Table: table, Value: value,
			Reason: "end is not numeric"}
	}
	if start < 1 || end < start {
		return 0, 0, &CatalogFormatError{Table: table, Value: value,
			Reason: "range must satisfy 1 <= start <= end"}
	}
	return start, end, nil
}

// Tables returns every table name in catalog order.
func (c *Catalog) Tables() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) HasTable(name string) bool {
	_, ok := c.titles[name]
	return ok
}

func (c *Catalog) Title(name string) string {
	return c.titles[name]
}

// SlicesFor returns the table's slices in concatenation order, or nil for
// an unknown name. The caller decides whether unknown is an error.
func (c *Catalog) SlicesFor(name string) []SequenceSlice {
	return c.slices[name]
}
