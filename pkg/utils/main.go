package utils

import (
	"encoding/csv"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// PathExist ..
func PathExist(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return true
}

func EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil && !os.IsExist(err) {
		return errors.WithStack(err)
	}
	return nil
}

func IsInt(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// ZeroPad left-pads s with zeros to the given width. Strings already at
// or over the width are returned unchanged.
func ZeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// ReadCsv reads a whole CSV file, returning the header line and the
// remaining records.
func ReadCsv(csvfile string) ([]string, [][]string, error) {
	file, err := os.Open(csvfile)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	var records [][]string
	for {
		line, err := reader.Read()
		if err != nil {
			break // EOF or error
		}
		records = append(records, line)
	}

	return header, records, nil
}
