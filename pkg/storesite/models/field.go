// Package models defines data structures for listing sites.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one cell of a listing row, labelled by its column header.
type Field struct {
	// Header is the column header label from the header row.
	Header string `json:"header"`
	// Value is the cleaned cell text.
	Value string `json:"value"`
}

// Fields is an ordered header-to-value mapping.
// It is encoded as a JSON object whose keys keep the sheet column order.
type Fields []Field

// Get returns the value stored under header.
func (fs Fields) Get(header string) (string, bool) {
	for _, f := range fs {
		if f.Header == header {
			return f.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the fields as an object in column order.
func (fs Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(f.Header); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object into fields, keeping key order.
func (fs *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields: expected object, got %v", tok)
	}

	out := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("fields: expected string key, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("fields: value for %q: %w", key, err)
		}
		out = append(out, Field{Header: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*fs = out
	return nil
}
