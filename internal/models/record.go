package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one item of a backup list. Field sets are not fixed, so a record
// keeps every key it was loaded with. Numbers are held as json.Number so they
// are written back exactly as read.
type Record map[string]any

// Has reports whether the field is present
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// ID returns the integer id of the record, if it has one
func (r Record) ID() (int, bool) {
	return toInt(r["id"])
}

// SetID overwrites the id field
func (r Record) SetID(id int) {
	r["id"] = id
}

// String returns the field formatted for display and whether it was present
func (r Record) String(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	return FormatValue(v), true
}

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatValue renders a field value the way the console shows it
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case json.Number:
		return val.String()
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

// DecodeRecords decodes a JSON array of objects, keeping numbers as json.Number
func DecodeRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil && f == float64(int(f)) {
			return int(f), true
		}
	}
	return 0, false
}
