package importer

import (
	"errors"
	"fmt"
)

// Sentinel errors for the no-write abort paths. Callers match with errors.Is
// and decide how to report and whether to exit.
var (
	// ErrSchemaMissing means the players table has not been created yet.
	ErrSchemaMissing = errors.New("the 'players' table does not exist; run the init-db script first")

	// ErrEmptyInput means the file resolved to zero player records.
	ErrEmptyInput = errors.New("no players found in the JSON file")
)

// ParseError reports a file whose content is not valid JSON (or whose records
// do not decode into the expected field types).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports a top-level JSON shape the importer does not
// recognize. Hint is the user-facing remediation sentence for the variant.
type UnsupportedFormatError struct {
	Path string
	Hint string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported JSON format in %s", e.Path)
}

// UpsertError wraps any database failure during the batched write. The
// transaction is rolled back before this is returned; nothing was committed.
type UpsertError struct {
	Err error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("upsert players: %v", e.Err)
}

func (e *UpsertError) Unwrap() error { return e.Err }
