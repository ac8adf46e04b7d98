package models

import (
	"encoding/json"
	"strconv"
)

// Product is the typed view of a product record
type Product struct {
	ID         int            `json:"id" db:"id"`
	Name       *string        `json:"name" db:"name"`
	Price      *json.Number   `json:"price" db:"price"`
	Desc       *string        `json:"desc" db:"desc"`
	Attributes map[string]any `json:"-" db:"attributes"`
}

var productFields = []string{"id", "name", "price", "desc"}

// ProductFromRecord splits a product record. Name, price and desc stay nil
// when the record does not carry them, so a round trip adds no keys.
func ProductFromRecord(r Record) *Product {
	id, _ := r.ID()
	p := &Product{
		ID:         id,
		Attributes: attributes(r, productFields),
	}
	if s, ok := r["name"].(string); ok {
		p.Name = &s
	}
	if s, ok := r["desc"].(string); ok {
		p.Desc = &s
	}
	if n, ok := NumberValue(r["price"]); ok {
		p.Price = &n
	}
	return p
}

// Record merges the known fields back over the attributes
func (p *Product) Record() Record {
	r := fromAttributes(p.Attributes)
	r["id"] = p.ID
	if p.Name != nil {
		r["name"] = *p.Name
	}
	if p.Price != nil {
		r["price"] = *p.Price
	}
	if p.Desc != nil {
		r["desc"] = *p.Desc
	}
	return r
}

// NumberValue returns v as a json.Number if it is numeric or a numeric string
func NumberValue(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		return n, true
	case int:
		return json.Number(strconv.Itoa(n)), true
	case string:
		num := json.Number(n)
		if _, err := num.Float64(); err == nil && json.Valid([]byte(n)) {
			return num, true
		}
	}
	return "", false
}
