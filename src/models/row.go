package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Cell is a single header/value pair of a Row.
type Cell struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// Row is one spreadsheet record with the headers in the exact order the source delivered them.
// Field resolution breaks ties on this order, so it must never be rebuilt from a Go map.
type Row []Cell

// NewRow zips headers and values into a Row. Missing trailing values become empty strings,
// surplus values without a header are dropped.
func NewRow(headers, values []string) Row {
	row := make(Row, 0, len(headers))
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		row = append(row, Cell{Header: h, Value: v})
	}
	return row
}

// Get returns the value of the first cell whose header equals header exactly.
func (r Row) Get(header string) (string, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, true
		}
	}
	return "", false
}

// Headers lists the row's headers in source order.
func (r Row) Headers() []string {
	headers := make([]string, len(r))
	for i, c := range r {
		headers[i] = c.Header
	}
	return headers
}

// IsBlank reports whether every cell of the row is empty after trimming.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if strings.TrimSpace(c.Value) != "" {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the row as a JSON object whose keys keep the source order.
// A repeated header is written once, with its first value.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool, len(r))
	first := true
	for _, c := range r {
		if seen[c.Header] {
			continue
		}
		seen[c.Header] = true
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(c.Header)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into a Row, keeping the key order of the document.
// Non-string values are kept in their JSON text form.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object, got %v", tok)
	}
	row := Row{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(raw)
			if s == "null" {
				s = ""
			}
		}
		row = append(row, Cell{Header: key, Value: s})
	}
	*r = row
	return nil
}
