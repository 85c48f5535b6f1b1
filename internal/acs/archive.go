package acs

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

// Partition gives byte access to one source archive: one geography file
// and one estimate file per sequence id.
type Partition interface {
	Geography() (io.ReadCloser, error)
	Sequence(seq string) (io.ReadCloser, error)
	HasSequence(seq string) bool
	Close() error
}

// ArchiveProvider resolves a (state, level-class) selector to its source
// archive partition.
type ArchiveProvider interface {
	Open(state, class string) (Partition, error)
}

// archiveClassFor returns the archive suffix holding a summary level's
// data. Tract and block-group extracts ship in their own partition.
func archiveClassFor(levelCode string) string {
	if tractLevelCodes[levelCode] {
		return cTractsSuffix
	}
	return cAllGeoSuffix
}

// parseSequenceID recovers the sequence id embedded at a fixed offset in
// an estimate member name, e.g. e20195al0001000.txt -> "0001". Archives
// that do not match the naming convention fail loudly here instead of
// yielding a silently wrong slice.
func parseSequenceID(name string) (string, error) {
	if len(name) < cSeqIDOffset+cSeqIDWidth {
		return "", errors.New(fmt.Sprintf(
			"estimate member %s is too short to hold a sequence id at bytes %d..%d",
			name, cSeqIDOffset, cSeqIDOffset+cSeqIDWidth))
	}
	seq := name[cSeqIDOffset : cSeqIDOffset+cSeqIDWidth]
	if !utils.IsInt(seq) {
		return "", errors.New(fmt.Sprintf(
			"estimate member %s: %q at bytes %d..%d is not a %d-digit sequence id",
			name, seq, cSeqIDOffset, cSeqIDOffset+cSeqIDWidth, cSeqIDWidth))
	}
	return seq, nil
}

// ZipProvider serves partitions from the downloaded by-state zip
// archives in a source directory.
type ZipProvider struct {
	sourceDir string
}

func NewZipProvider(sourceDir string) *ZipProvider {
	p := new(ZipProvider)
	p.sourceDir = sourceDir
	return p
}

func (p *ZipProvider) Open(state, class string) (Partition, error) {
	zipPath := filepath.Join(p.sourceDir, state+class)
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &PartitionReadError{State: state, Class: class,
			Reason: "cannot open archive", Err: err}
	}

	z := new(zipPartition)
	z.state = state
	z.class = class
	z.zr = zr
	z.seqNames = make(map[string]string)

	for _, f := range zr.File {
		base := path.Base(f.Name)
		switch {
		case strings.HasPrefix(base, "g") && strings.HasSuffix(base, ".csv"):
			if z.geoName == "" {
				z.geoName = f.Name
			}
		case strings.HasPrefix(base, "e"):
			seq, err := parseSequenceID(base)
			if err != nil {
				zr.Close()
				return nil, &PartitionReadError{State: state, Class: class,
					Reason: "unexpected estimate member name", Err: err}
			}
			z.seqNames[seq] = f.Name
		}
	}
	if z.geoName == "" {
		zr.Close()
		return nil, &PartitionReadError{State: state, Class: class,
			Reason: "archive has no geography member"}
	}
	return z, nil
}

type zipPartition struct {
	state    string
	class    string
	zr       *zip.ReadCloser
	geoName  string
	seqNames map[string]string
}

func (z *zipPartition) Geography() (io.ReadCloser, error) {
	rc, err := z.openMember(z.geoName)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return rc, nil
}

func (z *zipPartition) Sequence(seq string) (io.ReadCloser, error) {
	name, ok := z.seqNames[seq]
	if !ok {
		return nil, &SequenceReadError{Seq: seq, Reason: "archive has no estimate member"}
	}
	rc, err := z.openMember(name)
	if err != nil {
		return nil, &SequenceReadError{Seq: seq, Reason: "cannot open estimate member", Err: err}
	}
	return rc, nil
}

func (z *zipPartition) HasSequence(seq string) bool {
	_, ok := z.seqNames[seq]
	return ok
}

func (z *zipPartition) Close() error {
	return z.zr.Close()
}

func (z *zipPartition) openMember(name string) (io.ReadCloser, error) {
	for _, f := range z.zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, errors.New(fmt.Sprintf("archive member %s not found", name))
}
