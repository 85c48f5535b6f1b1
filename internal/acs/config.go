package acs

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the validated run configuration. Every field is checked by
// Validate before any I/O begins; there are no silent defaults past that
// point.
type Config struct {
	Year      string   `yaml:"year"`
	States    []string `yaml:"states"`
	Levels    []string `yaml:"levels"`
	Tables    []string `yaml:"tables"`
	SourceDir string   `yaml:"sourceDir"`
	OutDir    string   `yaml:"outDir"`
	Offline   bool     `yaml:"offline"`

	levelCodes []string
	allStates  bool
}

// LoadConfig reads a YAML config file, expanding {{ VAR }} placeholders
// from the environment first.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	re := regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)
	expanded := re.ReplaceAllStringFunc(string(content), func(placeholder string) string {
		varName := re.FindStringSubmatch(placeholder)[1]
		return os.Getenv(varName)
	})

	c := new(Config)
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return nil, errors.WithStack(err)
	}
	return c, nil
}

// Validate checks every required field and resolves level names to codes
// and the "all" states sentinel to the canonical state list.
func (c *Config) Validate() error {
	if c.Year == "" {
		return &ConfigError{Field: "year", Reason: "required"}
	}
	if len(c.States) == 0 {
		return &ConfigError{Field: "states", Reason: "at least one state is required"}
	}
	if len(c.Levels) == 0 {
		return &ConfigError{Field: "levels", Reason: "at least one summary level is required"}
	}
	if c.SourceDir == "" {
		return &ConfigError{Field: "sourceDir", Reason: "required"}
	}
	if c.OutDir == "" {
		return &ConfigError{Field: "outDir", Reason: "required"}
	}

	known := make(map[string]bool, len(StateCodes))
	for _, s := range StateCodes {
		known[s] = true
	}
	if len(c.States) == 1 && c.States[0] == cAllStates {
		c.States = append([]string(nil), StateCodes...)
		c.allStates = true
	} else {
		for _, s := range c.States {
			if !known[s] {
				return &ConfigError{Field: "states", Reason: fmt.Sprintf("unknown state %q", s)}
			}
		}
		c.allStates = len(c.States) == len(StateCodes)
	}

	codes := make(map[string]bool, len(SummaryLevels))
	for _, code := range SummaryLevels {
		codes[code] = true
	}
	c.levelCodes = make([]string, 0, len(c.Levels))
	for _, lv := range c.Levels {
		if code, ok := SummaryLevels[lv]; ok {
			c.levelCodes = append(c.levelCodes, code)
			continue
		}
		if codes[lv] {
			c.levelCodes = append(c.levelCodes, lv)
			continue
		}
		return &ConfigError{Field: "levels", Reason: fmt.Sprintf("unknown summary level %q", lv)}
	}
	return nil
}

// LevelCodes returns the requested summary levels as codes, in request
// order. Only valid after Validate.
func (c *Config) LevelCodes() []string {
	return c.levelCodes
}

// Consolidated reports whether output artifacts are shared across states:
// true when the run covers the full canonical state set.
func (c *Config) Consolidated() bool {
	return c.allStates
}

func (c *Config) AppendixFile() string {
	return fmt.Sprintf(cAppendixPattern, c.Year)
}

func (c *Config) TemplatesFile() string {
	return fmt.Sprintf(cTemplatesPattern, c.Year)
}

func (c *Config) BaseURL() string {
	return fmt.Sprintf(cBaseURLPattern, c.Year)
}
