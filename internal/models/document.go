package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Names of the record lists the tools work on
const (
	ListNews        = "news"
	ListProducts    = "products"
	ListPermissions = "permissions"
)

// Document is a parsed backup file. The three edited lists are decoded into
// records; every other top-level key is kept as raw JSON and written back
// unchanged.
type Document struct {
	News        []Record
	Products    []Record
	Permissions []Record

	// Extra holds the top-level keys the tools never inspect
	Extra map[string]json.RawMessage

	// present tracks which lists existed in the source so that saving does
	// not introduce keys the file never had
	present map[string]bool
}

// NewDocument returns an empty document that will write all three lists
func NewDocument() *Document {
	return &Document{
		Extra:   make(map[string]json.RawMessage),
		present: map[string]bool{ListNews: true, ListProducts: true, ListPermissions: true},
	}
}

// List returns a pointer to the named list, or nil for an unknown name
func (d *Document) List(name string) *[]Record {
	switch name {
	case ListNews:
		return &d.News
	case ListProducts:
		return &d.Products
	case ListPermissions:
		return &d.Permissions
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("backup document must be a JSON object")
	}

	d.Extra = make(map[string]json.RawMessage, len(raw))
	d.present = make(map[string]bool, 3)

	for key, value := range raw {
		list := d.List(key)
		if list == nil {
			d.Extra[key] = value
			continue
		}
		records, err := DecodeRecords(value)
		if err != nil {
			return fmt.Errorf("invalid %q list: %w", key, err)
		}
		*list = records
		d.present[key] = true
	}

	return nil
}

// MarshalJSON implements json.Marshaler. HTML characters are not escaped so
// text fields are written exactly as they were read.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+3)
	for key, value := range d.Extra {
		out[key] = value
	}
	for _, name := range []string{ListNews, ListProducts, ListPermissions} {
		list := *d.List(name)
		if !d.present[name] && len(list) == 0 {
			continue
		}
		if list == nil {
			list = []Record{}
		}
		out[name] = list
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
