package acs

import "fmt"

// ConfigError reports a missing or invalid configuration value. Raised
// before any I/O begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// CatalogFormatError reports a malformed start-end range in Appendix A.
// Every table lookup depends on the catalog, so this aborts the whole run.
type CatalogFormatError struct {
	Table  string
	Value  string
	Reason string
}

func (e *CatalogFormatError) Error() string {
	return fmt.Sprintf("catalog entry %s: bad start-end range %q: %s", e.Table, e.Value, e.Reason)
}

// UnknownSequenceError reports a sequence id (or the geo key) with no
// column template. Aborts only the table being assembled.
type UnknownSequenceError struct {
	Key string
}

func (e *UnknownSequenceError) Error() string {
	return fmt.Sprintf("no column template for sequence %q", e.Key)
}

// GeographyReadError reports an unreadable or malformed geography file.
// Scoped to one (state, level) partition.
type GeographyReadError struct {
	Level  string
	Reason string
	Err    error
}

func (e *GeographyReadError) Error() string {
	return fmt.Sprintf("geography extract (level %s): %s", e.Level, e.Reason)
}

func (e *GeographyReadError) Unwrap() error { return e.Err }

// PartitionReadError reports a source archive that cannot be opened or is
// missing its geography member. Scoped to one (state, level) partition.
type PartitionReadError struct {
	State  string
	Class  string
	Reason string
	Err    error
}

func (e *PartitionReadError) Error() string {
	return fmt.Sprintf("archive partition %s%s: %s", e.State, e.Class, e.Reason)
}

func (e *PartitionReadError) Unwrap() error { return e.Err }

// SequenceReadError reports an unreadable or missing numbered estimate
// file. Scoped to the current table within the current partition; partial
// assembly is discarded.
type SequenceReadError struct {
	Seq    string
	Reason string
	Err    error
}

func (e *SequenceReadError) Error() string {
	return fmt.Sprintf("sequence %s: %s", e.Seq, e.Reason)
}

func (e *SequenceReadError) Unwrap() error { return e.Err }
