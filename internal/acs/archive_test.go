package acs

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

func Test_ParseSequenceID(t *testing.T) {
	seq, err := parseSequenceID("e20195al0001000.txt")
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("seq", seq, "0001"); err != nil {
		t.Errorf("%v", err)
		return
	}

	seq, err = parseSequenceID("e20195wy0122000.txt")
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("seq", seq, "0122"); err != nil {
		t.Errorf("%v", err)
		return
	}

	for _, name := range []string{"e2019", "e20195al00x1000.txt", "estimates.txt"} {
		if _, err := parseSequenceID(name); err == nil {
			t.Errorf("expected error for %s", name)
			return
		}
	}
}

func Test_ArchiveClassFor(t *testing.T) {
	checks := [][]string{
		{"140", cTractsSuffix},
		{"150", cTractsSuffix},
		{"040", cAllGeoSuffix},
		{"050", cAllGeoSuffix},
		{"160", cAllGeoSuffix},
	}
	for _, chk := range checks {
		if err := utils.GetGotExpErr("class for "+chk[0], archiveClassFor(chk[0]), chk[1]); err != nil {
			t.Errorf("%v", err)
			return
		}
	}
}

// writeTestArchive builds a by-state zip with the given members.
func writeTestArchive(path string, members map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return f.Close()
}

func Test_ZipProvider(t *testing.T) {
	dir, err := utils.InitTestDir("zipProviderTest")
	if err != nil {
		t.Errorf("%v", err)
		return
	}

	members := map[string]string{
		"g20195al.csv":        "ACSSF,al,040,42,0400000US01,Alabama",
		"e20195al0001000.txt": "0001,42,100",
		"e20195al0002000.txt": "0002,42,200",
		"readme.txt":          "not an extract",
	}
	if err := writeTestArchive(filepath.Join(dir, "al"+cAllGeoSuffix), members); err != nil {
		t.Errorf("%v", err)
		return
	}

	p := NewZipProvider(dir)
	part, err := p.Open("al", cAllGeoSuffix)
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	defer part.Close()

	if err := utils.GetGotExpErr("has 0001", part.HasSequence("0001"), true); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("has 0003", part.HasSequence("0003"), false); err != nil {
		t.Errorf("%v", err)
		return
	}

	rc, err := part.Geography()
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("geo content", string(data), members["g20195al.csv"]); err != nil {
		t.Errorf("%v", err)
		return
	}

	rc, err = part.Sequence("0002")
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	data, err = io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := utils.GetGotExpErr("seq content", string(data), members["e20195al0002000.txt"]); err != nil {
		t.Errorf("%v", err)
		return
	}

	_, err = part.Sequence("0003")
	var sre *SequenceReadError
	if !errors.As(err, &sre) {
		t.Errorf("expected *SequenceReadError, got %v", err)
		return
	}
}

func Test_ZipProviderErrors(t *testing.T) {
	dir, err := utils.InitTestDir("zipProviderErrTest")
	if err != nil {
		t.Errorf("%v", err)
		return
	}

	checkPartitionErr := func(title, state string) error {
		_, err := NewZipProvider(dir).Open(state, cAllGeoSuffix)
		var pre *PartitionReadError
		if !errors.As(err, &pre) {
			return utils.GetGotExpErr(title, err, "*PartitionReadError")
		}
		return nil
	}

	// Archive missing entirely
	if err := checkPartitionErr("missing archive", "al"); err != nil {
		t.Errorf("%v", err)
		return
	}

	// Archive without a geography member
	if err := writeTestArchive(filepath.Join(dir, "ak"+cAllGeoSuffix), map[string]string{
		"e20195ak0001000.txt": "0001,1,1",
	}); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := checkPartitionErr("no geography member", "ak"); err != nil {
		t.Errorf("%v", err)
		return
	}

	// Estimate member that does not match the naming convention
	if err := writeTestArchive(filepath.Join(dir, "az"+cAllGeoSuffix), map[string]string{
		"g20195az.csv": "ACSSF,az,040,1,0400000US04,Arizona",
		"e-bogus.txt":  "1,1,1",
	}); err != nil {
		t.Errorf("%v", err)
		return
	}
	if err := checkPartitionErr("bad estimate name", "az"); err != nil {
		t.Errorf("%v", err)
		return
	}
}
