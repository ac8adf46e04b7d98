package models

// Permission is the typed view of a permission record
type Permission struct {
	ID         int            `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	Slug       string         `json:"slug" db:"slug"`
	Method     string         `json:"method" db:"method"`
	Route      string         `json:"route" db:"route"`
	Attributes map[string]any `json:"-" db:"attributes"`
}

var permissionFields = []string{"id", "name", "slug", "method", "route"}

// PermissionFromRecord splits a permission record
func PermissionFromRecord(r Record) *Permission {
	id, _ := r.ID()
	return &Permission{
		ID:         id,
		Name:       stringField(r, "name"),
		Slug:       stringField(r, "slug"),
		Method:     stringField(r, "method"),
		Route:      stringField(r, "route"),
		Attributes: attributes(r, permissionFields),
	}
}

// Record merges the known fields back over the attributes
func (p *Permission) Record() Record {
	r := fromAttributes(p.Attributes)
	r["id"] = p.ID
	r["name"] = p.Name
	r["slug"] = p.Slug
	if p.Method != "" {
		r["method"] = p.Method
	}
	if p.Route != "" {
		r["route"] = p.Route
	}
	return r
}
