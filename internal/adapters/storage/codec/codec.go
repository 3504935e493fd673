// Package codec serializes the record collection to and from the snapshot
// document format shared by the primary file and every backup artifact.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/okian/podium/internal/domain/model"
)

// Stats describes what Decode had to tolerate while normalizing input.
type Stats struct {
	// Dropped counts sequence entries that were not record objects.
	Dropped int
	// Unrecognized is set when the top-level value was valid JSON but neither
	// a record sequence nor a wrapped document.
	Unrecognized bool
}

// document is the canonical on-disk shape.
type document struct {
	Items []model.Record `json:"items"`
}

// Decode normalizes a snapshot into a record collection. Two legacy shapes are
// accepted: a bare array of records, or an object wrapping the array under
// "items". Any other valid JSON value yields an empty collection with
// Stats.Unrecognized set rather than an error; only malformed JSON errors.
func Decode(b []byte) ([]model.Record, Stats, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, Stats{Unrecognized: true}, nil
	}

	switch trimmed[0] {
	case '{':
		var doc struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, Stats{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		// A missing or null "items" key means no sequence is present; both are
		// foreign documents, not empty collections.
		if len(doc.Items) == 0 || bytes.Equal(doc.Items, []byte("null")) {
			return nil, Stats{Unrecognized: true}, nil
		}
		return decodeItems(doc.Items)
	case '[':
		return decodeItems(trimmed)
	default:
		if !json.Valid(trimmed) {
			return nil, Stats{}, fmt.Errorf("%w: not valid JSON", ErrMalformed)
		}
		return nil, Stats{Unrecognized: true}, nil
	}
}

// decodeItems parses a sequence, skipping and counting anything that is not a
// record object.
func decodeItems(raw json.RawMessage) ([]model.Record, Stats, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, Stats{Unrecognized: true}, nil
	}
	records := make([]model.Record, 0, len(items))
	var stats Stats
	for _, item := range items {
		entry := bytes.TrimSpace(item)
		if len(entry) == 0 || entry[0] != '{' {
			stats.Dropped++
			continue
		}
		var rec model.Record
		if err := json.Unmarshal(entry, &rec); err != nil {
			stats.Dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, stats, nil
}

// Encode renders the collection in the canonical wrapped shape with two-space
// indentation and a trailing newline. Backup tooling and the recovery scan
// parse this output directly, so the formatting is part of the contract.
func Encode(records []model.Record) ([]byte, error) {
	doc := document{Items: records}
	if doc.Items == nil {
		doc.Items = []model.Record{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(b, '\n'), nil
}
