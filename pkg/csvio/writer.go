package csvio

import (
	"compress/gzip"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Writer struct {
	fw     *os.File
	zw     *gzip.Writer
	writer *csv.Writer
	path   string
	mode   string
}

// NewWriter opens path for writing. CWriteModeWrite truncates, anything
// else appends. Files with a .gz/.gzip extension are compressed.
func NewWriter(path, writeMode string) (*Writer, error) {
	ext := filepath.Ext(path)
	var fw *os.File
	var zw *gzip.Writer
	var writer *csv.Writer
	mode := ""

	flags := 0
	switch writeMode {
	case CWriteModeWrite:
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	default:
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	fw, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if ext == ".gz" || ext == ".gzip" {
		zw = gzip.NewWriter(fw)
		writer = csv.NewWriter(zw)
		mode = cModeGZip
	} else {
		writer = csv.NewWriter(fw)
		mode = cModePlain
	}

	c := new(Writer)
	c.path = path
	c.writer = writer
	c.fw = fw
	c.zw = zw
	c.mode = mode

	return c, nil
}

func (c *Writer) Write(record []string) error {
	return c.writer.Write(record)
}

func (c *Writer) Flush() error {
	c.writer.Flush()
	return errors.WithStack(c.writer.Error())
}

func (c *Writer) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return errors.WithStack(err)
	}
	if c.zw != nil {
		if err := c.zw.Close(); err != nil {
			return errors.WithStack(err)
		}
	}
	if c.fw != nil {
		if err := c.fw.Close(); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
