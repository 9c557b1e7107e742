package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	rosterFormatHint = "Please provide a list of players or an object with a 'players' array."
	worldsFormatHint = "Please provide an object mapping player keys to player records."
)

// ReadRosterFile loads a roster JSON document and resolves it to an ordered
// record list. Three top-level shapes are accepted:
//
//   - an array of player records
//   - an object with a "players" array property
//   - an object mapping arbitrary keys to player records
//
// The shape decision is made once, here; the rest of the pipeline only ever
// sees a flat record list in file order.
func ReadRosterFile(path string) ([]json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return resolveRosterRecords(raw, path)
}

func resolveRosterRecords(raw []byte, path string) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// Top-level scalar: valid JSON, but not an importable document.
		return nil, &UnsupportedFormatError{Path: path, Hint: rosterFormatHint}
	}

	switch delim {
	case '[':
		records, err := decodeArray(dec, path)
		if err != nil {
			return nil, err
		}
		if err := requireEOF(dec, path); err != nil {
			return nil, err
		}
		return records, nil
	case '{':
		entries, err := decodeObjectEntries(dec, path)
		if err != nil {
			return nil, err
		}
		if err := requireEOF(dec, path); err != nil {
			return nil, err
		}
		// An object carrying a "players" array wins over the values shape.
		for _, e := range entries {
			if e.key == "players" {
				if list, ok := tryArray(e.value); ok {
					return list, nil
				}
			}
		}
		values := make([]json.RawMessage, len(entries))
		for i, e := range entries {
			values[i] = e.value
		}
		return values, nil
	default:
		return nil, &UnsupportedFormatError{Path: path, Hint: rosterFormatHint}
	}
}

// WorldsEntry is one key → record pair from a worlds tournament file, in
// file order. The key becomes the player's unique name.
type WorldsEntry struct {
	Key string
	Raw json.RawMessage
}

// ReadWorldsFile loads a worlds tournament file. Exactly one shape is
// accepted: a flat object mapping player keys to record objects.
func ReadWorldsFile(path string) ([]WorldsEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &UnsupportedFormatError{Path: path, Hint: worldsFormatHint}
	}

	entries, err := decodeObjectEntries(dec, path)
	if err != nil {
		return nil, err
	}
	if err := requireEOF(dec, path); err != nil {
		return nil, err
	}
	result := make([]WorldsEntry, len(entries))
	for i, e := range entries {
		result[i] = WorldsEntry{Key: e.key, Raw: e.value}
	}
	return result, nil
}

// --------------------------------------------------------------------------
// Decode helpers
// --------------------------------------------------------------------------

type objectEntry struct {
	key   string
	value json.RawMessage
}

// decodeArray consumes the elements of an already-opened JSON array.
func decodeArray(dec *json.Decoder, path string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	for dec.More() {
		var rec json.RawMessage
		if err := dec.Decode(&rec); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil { // closing ]
		return nil, &ParseError{Path: path, Err: err}
	}
	return records, nil
}

// decodeObjectEntries consumes the members of an already-opened JSON object.
// Unlike a map decode, this preserves the key order of the source document,
// which fixes the row order of the batch. A duplicate key overwrites the
// earlier value in place (last wins, first position kept), so one batch
// never carries the same name twice.
func decodeObjectEntries(dec *json.Decoder, path string) ([]objectEntry, error) {
	var entries []objectEntry
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("object key is %T, not string", keyTok)}
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		if i, dup := seen[key]; dup {
			entries[i].value = value
			continue
		}
		seen[key] = len(entries)
		entries = append(entries, objectEntry{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil { // closing }
		return nil, &ParseError{Path: path, Err: err}
	}
	return entries, nil
}

// requireEOF rejects trailing content after the top-level JSON value.
func requireEOF(dec *json.Decoder, path string) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("trailing data after top-level value")
		}
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// tryArray reports whether raw is a JSON array, returning its elements.
func tryArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, false
	}
	if list == nil {
		list = []json.RawMessage{}
	}
	return list, true
}
