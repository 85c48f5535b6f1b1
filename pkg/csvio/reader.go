package csvio

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Reader walks delimited text one record at a time. The summary extracts
// are header-less, so the caller supplies column semantics itself.
type Reader struct {
	fr     *os.File
	zr     *gzip.Reader
	reader *csv.Reader
	values []string
	err    error
}

// NewReader reads CSV records from an already-open stream.
func NewReader(r io.Reader) *Reader {
	c := new(Reader)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	c.reader = cr
	return c
}

// OpenFile opens a CSV file for reading, transparently decompressing
// .gz/.gzip extensions.
func OpenFile(path string) (*Reader, error) {
	fr, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	c := new(Reader)
	c.fr = fr

	ext := filepath.Ext(path)
	if ext == ".gz" || ext == ".gzip" {
		zr, err := gzip.NewReader(fr)
		if err != nil {
			fr.Close()
			return nil, errors.WithStack(err)
		}
		c.zr = zr
		c.reader = csv.NewReader(zr)
	} else {
		c.reader = csv.NewReader(fr)
	}
	c.reader.FieldsPerRecord = -1
	return c, nil
}

// Next advances to the next record. It returns false at EOF or on error;
// Err distinguishes the two.
func (c *Reader) Next() bool {
	values, err := c.reader.Read()
	if err == io.EOF {
		c.err = nil
		return false
	}
	if err != nil {
		c.err = errors.WithStack(err)
		return false
	}
	c.values = values
	c.err = nil
	return true
}

func (c *Reader) Values() []string {
	return c.values
}

func (c *Reader) Err() error {
	return c.err
}

func (c *Reader) Close() {
	if c.zr != nil {
		c.zr.Close()
		c.zr = nil
	}
	if c.fr != nil {
		c.fr.Close()
		c.fr = nil
	}
}
