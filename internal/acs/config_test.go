package acs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

func validTestConfig() *Config {
	return &Config{
		Year:      "2019",
		States:    []string{"al", "ak"},
		Levels:    []string{"state"},
		SourceDir: "src",
		OutDir:    "out",
	}
}

func Test_ConfigValidate(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("level code", cfg.LevelCodes()[0], "040"); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("consolidated", cfg.Consolidated(), false); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("appendix file", cfg.AppendixFile(),
		"ACS_2019_SF_5YR_Appendices.xlsx"); err != nil {
		t.Errorf("%v", err)
		return
	}

	// Raw codes pass through unchanged
	cfg = validTestConfig()
	cfg.Levels = []string{"140", "place"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("code passthrough", cfg.LevelCodes()[0], "140"); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("name resolved", cfg.LevelCodes()[1], "160"); err != nil {
		t.Errorf("%v", err)
		return
	}
}

func Test_ConfigAllStates(t *testing.T) {
	cfg := validTestConfig()
	cfg.States = []string{"all"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("expanded states", len(cfg.States), len(StateCodes)); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("consolidated", cfg.Consolidated(), true); err != nil {
		t.Errorf("%v", err)
		return
	}
}

func Test_ConfigErrors(t *testing.T) {
	checkField := func(mutate func(*Config), field string) error {
		cfg := validTestConfig()
		mutate(cfg)
		err := cfg.Validate()
		var ce *ConfigError
		if !errors.As(err, &ce) {
			return utils.GetGotExpErr("error type for "+field, err, "*ConfigError")
		}
		return utils.GetGotExpErr("field", ce.Field, field)
	}

	cases := []struct {
		mutate func(*Config)
		field  string
	}{
		{func(c *Config) { c.Year = "" }, "year"},
		{func(c *Config) { c.States = nil }, "states"},
		{func(c *Config) { c.States = []string{"zz"} }, "states"},
		{func(c *Config) { c.Levels = nil }, "levels"},
		{func(c *Config) { c.Levels = []string{"galaxy"} }, "levels"},
		{func(c *Config) { c.SourceDir = "" }, "sourceDir"},
		{func(c *Config) { c.OutDir = "" }, "outDir"},
	}
	for _, tc := range cases {
		if err := checkField(tc.mutate, tc.field); err != nil {
			t.Errorf("%v", err)
			return
		}
	}
}

func Test_LoadConfig(t *testing.T) {
	dir, err := utils.InitTestDir("configTest")
	if err != nil {
		t.Errorf("%v", err)
		return
	}

	os.Setenv("ACS_TEST_OUTDIR", "envout")
	defer os.Unsetenv("ACS_TEST_OUTDIR")

	content := `
year: "2019"
states: [al, ak]
levels: [census_tract]
tables: [B01001]
sourceDir: srcdir
outDir: "{{ ACS_TEST_OUTDIR }}"
offline: true
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Errorf("%v", err)
		return
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("year", cfg.Year, "2019"); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("states", len(cfg.States), 2); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("tables", cfg.Tables[0], "B01001"); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("env placeholder", cfg.OutDir, "envout"); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("offline", cfg.Offline, true); err != nil {
		t.Errorf("%v", err)
		return
	}
}
