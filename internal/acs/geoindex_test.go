package acs

import (
	"errors"
	"strings"
	"testing"

	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

var testGeoCols = []string{"FILEID", "STUSAB", "Summary Level",
	"Logical Record Number", "Geographic Identifier", "Name"}

func Test_GeoIndex(t *testing.T) {
	raw := strings.Join([]string{
		"ACSSF,al,040,1,0400000US01,Alabama",
		"ACSSF,al,050,2,0500000US01001,Autauga County",
		"ACSSF,al,050,3,0500000US01003,Baldwin County",
		"ACSSF,al,140,4,1400000US01001020100,Tract 201",
	}, "\n")

	g, err := NewGeoIndex(strings.NewReader(raw), testGeoCols, "050")
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("row count", g.Len(), 2); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("level", g.Level(), "050"); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("first geoID", g.Rows()[0].GeoID, "0500000US01001"); err != nil {
		t.Errorf("%v", err)
		return
	}
	geoID, ok := g.GeoIDFor("3")
	if err := utils.GetGotExpErr("lookup ok", ok, true); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("lookup geoID", geoID, "0500000US01003"); err != nil {
		t.Errorf("%v", err)
		return
	}
	_, ok = g.GeoIDFor("1")
	if err := utils.GetGotExpErr("other level excluded", ok, false); err != nil {
		t.Errorf("%v", err)
		return
	}

	// A level absent from the extract yields an empty index, not an error
	g, err = NewGeoIndex(strings.NewReader(raw), testGeoCols, "160")
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("absent level rows", g.Len(), 0); err != nil {
		t.Errorf("%v", err)
		return
	}
}

func Test_GeoIndexErrors(t *testing.T) {
	checkErr := func(title, raw string, cols []string) error {
		_, err := NewGeoIndex(strings.NewReader(raw), cols, "050")
		var gre *GeographyReadError
		if !errors.As(err, &gre) {
			return utils.GetGotExpErr(title, err, "*GeographyReadError")
		}
		return nil
	}

	// Duplicate geographic identifier within the level
	raw := "ACSSF,al,050,2,0500000US01001,A\nACSSF,al,050,3,0500000US01001,B"
	if err := checkErr("duplicate geoID", raw, testGeoCols); err != nil {
		t.Errorf("%v", err)
		return
	}

	// Duplicate logical record number within the level
	raw = "ACSSF,al,050,2,0500000US01001,A\nACSSF,al,050,2,0500000US01003,B"
	if err := checkErr("duplicate logrec", raw, testGeoCols); err != nil {
		t.Errorf("%v", err)
		return
	}

	// Sentinel-valued join key is treated as absent, hence malformed
	raw = "ACSSF,al,050,.,0500000US01001,A"
	if err := checkErr("sentinel logrec", raw, testGeoCols); err != nil {
		t.Errorf("%v", err)
		return
	}

	// Template missing a required column
	if err := checkErr("missing column", "a,b,c", []string{"FILEID", "STUSAB", "Summary Level"}); err != nil {
		t.Errorf("%v", err)
		return
	}
}

func Test_NormalizeValue(t *testing.T) {
	checks := [][]string{
		{".", ""},
		{"-1", ""},
		{"", ""},
		{"100", "100"},
		{"-12", "-12"},
		{"..", ".."},
	}
	for _, chk := range checks {
		if err := utils.GetGotExpErr("normalize "+chk[0], normalizeValue(chk[0]), chk[1]); err != nil {
			t.Errorf("%v", err)
			return
		}
	}
}
