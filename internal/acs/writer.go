package acs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"

	"github.com/ian-campbell/acs-to-csv/pkg/csvio"
	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

const cArtifactIni = "artifacts.tbl.ini"

// Writer streams assembled tables into output artifacts. In consolidated
// mode every partition's rows for a table accumulate in one <table>.csv;
// otherwise each state gets its own <state><table>.csv. The header is
// written exactly once per artifact per run, so repeated writes across
// partitions append rows under a single header.
type Writer struct {
	outDir      string
	consolidate bool
	iniFile     string
	rowCounts   map[string]int
}

func NewWriter(outDir string, consolidate bool) (*Writer, error) {
	if err := utils.EnsureDir(outDir); err != nil {
		return nil, err
	}
	w := new(Writer)
	w.outDir = outDir
	w.consolidate = consolidate
	w.iniFile = filepath.Join(outDir, cArtifactIni)
	w.rowCounts = make(map[string]int)
	return w, nil
}

func (w *Writer) Consolidated() bool {
	return w.consolidate
}

// ArtifactName returns the output file name a (state, table) pair lands in.
func (w *Writer) ArtifactName(state, table string) string {
	if w.consolidate {
		return table + ".csv"
	}
	return state + table + ".csv"
}

// Write appends one assembled table. Vacuous tables are dropped; the
// returned flag reports built (true) vs dropped (false). The run's first
// write to an artifact truncates anything a previous run left behind and
// writes the header; later writes append rows only, so re-running over
// unchanged inputs reproduces identical artifacts. The artifact is
// opened and closed per call, no handle survives across partitions.
func (w *Writer) Write(state, table string, at *AssembledTable) (bool, error) {
	if at == nil || at.Vacuous() {
		return false, nil
	}

	name := w.ArtifactName(state, table)
	path := filepath.Join(w.outDir, name)
	_, appending := w.rowCounts[name]
	writeHeader := !appending

	writeMode := csvio.CWriteModeWrite
	if appending {
		writeMode = csvio.CWriteModeAppend
	}
	cw, err := csvio.NewWriter(path, writeMode)
	if err != nil {
		return false, err
	}
	if writeHeader {
		if err := cw.Write(append([]string{at.IDColumn}, at.Columns...)); err != nil {
			cw.Close()
			return false, errors.WithStack(err)
		}
	}
	for _, row := range at.Rows {
		if err := cw.Write(append([]string{row.GeoID}, row.Values...)); err != nil {
			cw.Close()
			return false, errors.WithStack(err)
		}
	}
	if err := cw.Close(); err != nil {
		return false, err
	}

	w.rowCounts[name] += len(at.Rows)
	if err := w.updateRegistry(name, at); err != nil {
		return false, err
	}
	return true, nil
}

// updateRegistry records the artifact's columns and this run's
// accumulated row count in the output directory's ini ledger.
func (w *Writer) updateRegistry(name string, at *AssembledTable) error {
	file, err := os.OpenFile(w.iniFile, os.O_CREATE, 0640)
	if err != nil {
		return errors.WithStack(err)
	}
	file.Close()

	cfg, err := ini.Load(w.iniFile)
	if err != nil {
		return errors.WithStack(err)
	}
	sec := cfg.Section(name)
	sec.Key("columns").SetValue(strings.Join(append([]string{at.IDColumn}, at.Columns...), ","))
	sec.Key("rows").SetValue(strconv.Itoa(w.rowCounts[name]))

	if err := cfg.SaveTo(w.iniFile); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// WriteTableIndex saves the catalog's table names and titles as a CSV
// index next to the assembled tables.
func WriteTableIndex(outDir string, catalog *Catalog) error {
	cw, err := csvio.NewWriter(filepath.Join(outDir, cAllTablesFile), csvio.CWriteModeWrite)
	if err != nil {
		return err
	}
	if err := cw.Write([]string{"name", "title"}); err != nil {
		cw.Close()
		return errors.WithStack(err)
	}
	for _, name := range catalog.Tables() {
		if err := cw.Write([]string{name, catalog.Title(name)}); err != nil {
			cw.Close()
			return errors.WithStack(err)
		}
	}
	return cw.Close()
}
