package models

// News is the typed view of a news record
type News struct {
	ID         int            `json:"id" db:"id"`
	Title      string         `json:"title" db:"title"`
	Desc       string         `json:"desc" db:"desc"`
	Content    string         `json:"content" db:"content"`
	Thumbnail  string         `json:"thumbnail" db:"thumbnail"`
	Published  bool           `json:"published" db:"published"`
	Attributes map[string]any `json:"-" db:"attributes"` // every other field
}

var newsFields = []string{"id", "title", "desc", "content", "thumbnail", "published"}

// NewsFromRecord splits a record into known fields and attributes.
// Callers validate the record first; mistyped known fields become zero values.
func NewsFromRecord(r Record) *News {
	id, _ := r.ID()
	published, _ := r["published"].(bool)
	return &News{
		ID:         id,
		Title:      stringField(r, "title"),
		Desc:       stringField(r, "desc"),
		Content:    stringField(r, "content"),
		Thumbnail:  stringField(r, "thumbnail"),
		Published:  published,
		Attributes: attributes(r, newsFields),
	}
}

// Record merges the known fields back over the attributes
func (n *News) Record() Record {
	r := fromAttributes(n.Attributes)
	r["id"] = n.ID
	r["title"] = n.Title
	r["desc"] = n.Desc
	r["content"] = n.Content
	r["thumbnail"] = n.Thumbnail
	r["published"] = n.Published
	return r
}

func stringField(r Record, field string) string {
	s, _ := r[field].(string)
	return s
}

func attributes(r Record, known []string) map[string]any {
	skip := make(map[string]bool, len(known))
	for _, k := range known {
		skip[k] = true
	}
	out := make(map[string]any)
	for k, v := range r {
		if !skip[k] {
			out[k] = v
		}
	}
	return out
}

func fromAttributes(attrs map[string]any) Record {
	r := make(Record, len(attrs)+6)
	for k, v := range attrs {
		r[k] = v
	}
	return r
}
