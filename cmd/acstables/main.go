package main

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ian-campbell/acs-to-csv/internal/acs"
	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

// Define command line arguments
var (
	configPath string

	debug     bool
	silent    bool
	offline   bool
	year      string
	states    string
	levels    string
	tables    string
	sourceDir string
	outDir    string
)

func init() {
	// Set up command line flags
	flag.StringVar(&configPath, "c", "", "Path to the configuration file")
	flag.BoolVar(&debug, "debug", false, "Enable debug mode")
	flag.BoolVar(&silent, "silent", false, "Enable silent mode")
	flag.BoolVar(&offline, "o", false, "Offline mode. Do not download source archives.")
	flag.StringVar(&year, "y", "", "ACS release year")
	flag.StringVar(&states, "s", "", "Comma separated state codes, or 'all'")
	flag.StringVar(&levels, "l", "", "Comma separated summary levels (names or codes)")
	flag.StringVar(&tables, "t", "", "Comma separated table names (default: all tables)")
	flag.StringVar(&sourceDir, "d", "", "Path to the source data directory")
	flag.StringVar(&outDir, "out", "", "Path to the output directory")

	// Set up logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 1024)
			n := runtime.Stack(buf, false)
			logrus.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(buf[:n]),
			}).Error("A panic occurred")
		}
	}()

	flag.CommandLine.Parse(os.Args[1:])

	// Set log level
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else if silent {
		logrus.SetLevel(logrus.ErrorLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.Info("Starting application")

	cfg, err := buildConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	if err := run(cfg); err != nil {
		logrus.WithError(err).Fatal("Application encountered an error")
	}

	logrus.Info("Application finished successfully")
}

/*
*
---
year: "2019"
states: [al, ak]
levels: [census_tract]
tables: [B01001]
sourceDir: ACS_data_2019
outDir: ACS_data_2019/ACS_tables
offline: false
*
*/
func buildConfig() (*acs.Config, error) {
	cfg := new(acs.Config)
	if configPath != "" {
		logrus.WithField("path", configPath).Info("Loading configuration")
		loaded, err := acs.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Command line flags win over the config file
	if year != "" {
		cfg.Year = year
	}
	if states != "" {
		cfg.States = splitList(states)
	}
	if levels != "" {
		cfg.Levels = splitList(levels)
	}
	if tables != "" {
		cfg.Tables = splitList(tables)
	}
	if sourceDir != "" {
		cfg.SourceDir = sourceDir
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if offline {
		cfg.Offline = true
	}

	// Defaults
	if cfg.Year == "" {
		cfg.Year = "2019"
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = "ACS_data_" + cfg.Year
	}
	if cfg.OutDir == "" {
		cfg.OutDir = filepath.Join(cfg.SourceDir, "ACS_tables")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func run(cfg *acs.Config) error {
	if err := utils.EnsureDir(cfg.SourceDir); err != nil {
		return err
	}
	if err := utils.EnsureDir(cfg.OutDir); err != nil {
		return err
	}

	if !cfg.Offline {
		d := acs.NewDownloader(cfg.BaseURL())
		d.FetchAll(d.URLs(cfg), cfg.SourceDir)
	}

	rows, err := acs.LoadAppendix(filepath.Join(cfg.SourceDir, cfg.AppendixFile()))
	if err != nil {
		return err
	}
	catalog, err := acs.NewCatalog(rows)
	if err != nil {
		// A malformed catalog poisons every table lookup
		return err
	}

	if err := acs.WriteTableIndex(cfg.OutDir, catalog); err != nil {
		return err
	}

	templates, err := acs.LoadTemplates(filepath.Join(cfg.SourceDir, cfg.TemplatesFile()))
	if err != nil {
		return err
	}

	builder, err := acs.NewBuilder(cfg, catalog, templates, acs.NewZipProvider(cfg.SourceDir))
	if err != nil {
		return err
	}
	summaries, err := builder.Run()
	if err != nil {
		return err
	}
	for _, s := range summaries {
		logrus.WithFields(logrus.Fields{
			"state":   s.State,
			"built":   s.Built,
			"dropped": s.Dropped,
			"failed":  s.Failed,
		}).Info("Tables summary")
	}
	return nil
}
