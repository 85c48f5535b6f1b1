package acs

import (
	"github.com/sirupsen/logrus"
)

// StateSummary counts one state's outcomes across every requested
// summary level: tables written, tables dropped as vacuous, and tables
// skipped after a scoped read failure.
type StateSummary struct {
	State   string
	Built   int
	Dropped int
	Failed  int
}

// Builder drives the full run: states (outer) x summary levels (middle)
// x tables (inner), in fixed order. Scoped failures are reported and the
// enclosing loop moves to the next sibling; only the catalog load, which
// happens before a Builder exists, is fatal.
type Builder struct {
	cfg       *Config
	catalog   *Catalog
	templates *Templates
	assembler *Assembler
	writer    *Writer
	provider  ArchiveProvider
	tables    []string
}

func NewBuilder(cfg *Config, catalog *Catalog, templates *Templates,
	provider ArchiveProvider) (*Builder, error) {
	writer, err := NewWriter(cfg.OutDir, cfg.Consolidated())
	if err != nil {
		return nil, err
	}

	b := new(Builder)
	b.cfg = cfg
	b.catalog = catalog
	b.templates = templates
	b.assembler = NewAssembler(catalog, templates)
	b.writer = writer
	b.provider = provider

	b.tables = cfg.Tables
	if len(b.tables) == 0 {
		b.tables = catalog.Tables()
	}
	return b, nil
}

func (b *Builder) Writer() *Writer {
	return b.writer
}

// Run builds every requested table for every (state, level) partition and
// returns the per-state summaries.
func (b *Builder) Run() ([]StateSummary, error) {
	geoCols, err := b.templates.ColumnsFor(cGeoTemplateKey)
	if err != nil {
		// Without the geography template no partition can be joined.
		return nil, err
	}

	summaries := make([]StateSummary, 0, len(b.cfg.States))
	for _, state := range b.cfg.States {
		logrus.WithField("state", state).Info("Building tables")
		sum := StateSummary{State: state}
		for _, level := range b.cfg.LevelCodes() {
			b.buildPartition(state, level, geoCols, &sum)
		}
		logrus.WithFields(logrus.Fields{
			"state":   state,
			"built":   sum.Built,
			"dropped": sum.Dropped,
			"failed":  sum.Failed,
		}).Info("State complete")
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// buildPartition assembles every table for one (state, level) pair. A
// partition or geography failure skips the pair; a sequence or template
// failure skips only the table at hand.
func (b *Builder) buildPartition(state, level string, geoCols []string, sum *StateSummary) {
	part, err := b.provider.Open(state, archiveClassFor(level))
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"state": state,
			"level": level,
		}).Error("Skipping partition")
		return
	}
	defer part.Close()

	rc, err := part.Geography()
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"state": state,
			"level": level,
		}).Error("Geography file unreadable, skipping partition")
		return
	}
	geo, geoErr := NewGeoIndex(rc, geoCols, level)
	rc.Close()
	if geoErr != nil {
		logrus.WithError(geoErr).WithFields(logrus.Fields{
			"state": state,
			"level": level,
		}).Error("Geography index failed, skipping partition")
		return
	}
	logrus.WithFields(logrus.Fields{
		"state": state,
		"level": level,
		"rows":  geo.Len(),
	}).Debug("Geography index loaded")

	for _, table := range b.tables {
		at, err := b.assembler.Assemble(table, geo, part)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"state": state,
				"level": level,
				"table": table,
			}).Warn("Skipping table")
			sum.Failed++
			continue
		}
		built, err := b.writer.Write(state, table, at)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"state": state,
				"level": level,
				"table": table,
			}).Warn("Write failed, skipping table")
			sum.Failed++
			continue
		}
		if built {
			sum.Built++
		} else {
			sum.Dropped++
		}
	}
}
