// Package backup loads, edits and saves backup documents.
package backup

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/slug"
)

var (
	// ErrRecordNotFound is returned when no record has the requested id
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidField is returned when editing a field the record does not have
	ErrInvalidField = errors.New("invalid field")
)

// NewsLines yields "id: title" for every news record
func NewsLines(list []models.Record) iter.Seq[string] {
	return lines(list, "title", "")
}

// ProductLines yields "id: name" for every product, "No name" when unnamed
func ProductLines(list []models.Record) iter.Seq[string] {
	return lines(list, "name", "No name")
}

func lines(list []models.Record, field, fallback string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, r := range list {
			label, ok := r.String(field)
			if !ok {
				label = fallback
			}
			if !yield(fmt.Sprintf("%s: %s", models.FormatValue(r["id"]), label)) {
				return
			}
		}
	}
}

// FindByID returns the first record whose id equals id
func FindByID(list []models.Record, id int) (models.Record, error) {
	for _, r := range list {
		if rid, ok := r.ID(); ok && rid == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("id %d: %w", id, ErrRecordNotFound)
}

// SetField overwrites an existing field with the operator input as typed
func SetField(r models.Record, field, input string) error {
	if _, ok := r[field]; !ok {
		return fmt.Errorf("%q: %w", field, ErrInvalidField)
	}
	r[field] = input
	return nil
}

// SetNewsField is SetField for news records, where "published" takes true
// only for "true", "1" or "yes" (any case) and false otherwise
func SetNewsField(r models.Record, field, input string) error {
	if field != "published" {
		return SetField(r, field, input)
	}
	if _, ok := r[field]; !ok {
		return fmt.Errorf("%q: %w", field, ErrInvalidField)
	}
	r[field] = Truthy(input)
	return nil
}

// Truthy reports whether operator input means yes
func Truthy(input string) bool {
	switch strings.ToLower(input) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// Renumber sets every id to its 1-based position in the list
func Renumber(list []models.Record) {
	for i, r := range list {
		r.SetID(i + 1)
	}
}

// RenumberPermissions renumbers permissions and recomputes each slug from its name
func RenumberPermissions(list []models.Record) {
	for i, r := range list {
		r.SetID(i + 1)
		name, _ := r.String("name")
		r["slug"] = slug.Make(name)
	}
}
