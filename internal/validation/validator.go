package validation

import (
	"fmt"
	"regexp"

	"github.com/backup-toolkit/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator checks backup records before they are written to the database.
// It remembers ids it has accepted so duplicates within a list are caught.
type Validator struct {
	newsIDCache       map[int]bool
	productIDCache    map[int]bool
	permissionIDCache map[int]bool
	permissionSlugs   map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		newsIDCache:       make(map[int]bool),
		productIDCache:    make(map[int]bool),
		permissionIDCache: make(map[int]bool),
		permissionSlugs:   make(map[string]bool),
	}
}

// AddNewsID adds an accepted news id to the uniqueness cache
func (v *Validator) AddNewsID(id int) {
	v.newsIDCache[id] = true
}

// AddProductID adds an accepted product id to the uniqueness cache
func (v *Validator) AddProductID(id int) {
	v.productIDCache[id] = true
}

// AddPermission adds an accepted permission id and slug to the uniqueness caches
func (v *Validator) AddPermission(id int, slug string) {
	v.permissionIDCache[id] = true
	v.permissionSlugs[slug] = true
}

// ValidateNews validates a news record
func (v *Validator) ValidateNews(r models.Record) []ValidationError {
	errors := validateID(r, v.newsIDCache)

	// Validate title
	if title, ok := r["title"].(string); !ok || title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required", Value: r["title"]})
	}

	for _, field := range []string{"desc", "content", "thumbnail"} {
		if value, ok := r[field]; ok && value != nil {
			if _, isString := value.(string); !isString {
				errors = append(errors, ValidationError{Field: field, Message: field + " must be a string", Value: value})
			}
		}
	}

	// Validate published (boolean)
	if value, ok := r["published"]; ok {
		if _, isBool := value.(bool); !isBool {
			errors = append(errors, ValidationError{Field: "published", Message: "published must be true or false", Value: value})
		}
	}

	return errors
}

// ValidateProduct validates a product record
func (v *Validator) ValidateProduct(r models.Record) []ValidationError {
	errors := validateID(r, v.productIDCache)

	if value, ok := r["name"]; ok && value != nil {
		if _, isString := value.(string); !isString {
			errors = append(errors, ValidationError{Field: "name", Message: "name must be a string", Value: value})
		}
	}

	// Validate price (numeric, non-negative)
	if value, ok := r["price"]; ok && value != nil {
		n, isNumber := models.NumberValue(value)
		if !isNumber {
			errors = append(errors, ValidationError{Field: "price", Message: "price must be a number", Value: value})
		} else if f, _ := n.Float64(); f < 0 {
			errors = append(errors, ValidationError{Field: "price", Message: "price must not be negative", Value: value})
		}
	}

	return errors
}

// ValidatePermission validates a permission record
func (v *Validator) ValidatePermission(r models.Record) []ValidationError {
	errors := validateID(r, v.permissionIDCache)

	// Validate name
	if name, ok := r["name"].(string); !ok || name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required", Value: r["name"]})
	}

	// Validate slug
	slug, _ := r["slug"].(string)
	if slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required, renumber permissions to derive it"})
	} else if !slugRegex.MatchString(slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: slug})
	} else if v.permissionSlugs[slug] {
		errors = append(errors, ValidationError{Field: "slug", Message: "duplicate slug", Value: slug})
	}

	return errors
}

// ValidateSeedUser validates a generated user before it is sent
func ValidateSeedUser(u *models.SeedUser) []ValidationError {
	var errors []ValidationError

	if u.FullName == "" {
		errors = append(errors, ValidationError{Field: "fullName", Message: "fullName is required"})
	}

	// Validate email
	if u.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(u.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: u.Email})
	}

	if u.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}

	// Validate phone
	if !phoneRegex.MatchString(u.Phone) {
		errors = append(errors, ValidationError{Field: "phone", Message: "phone must be 10 digits", Value: u.Phone})
	}

	return errors
}

// validateID checks the id is a positive integer not seen before in the list
func validateID(r models.Record, seen map[int]bool) []ValidationError {
	var errors []ValidationError

	raw, present := r["id"]
	id, ok := r.ID()
	switch {
	case !present:
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	case !ok:
		errors = append(errors, ValidationError{Field: "id", Message: "id must be an integer", Value: raw})
	case id <= 0:
		errors = append(errors, ValidationError{Field: "id", Message: "id must be positive", Value: id})
	case seen[id]:
		errors = append(errors, ValidationError{Field: "id", Message: fmt.Sprintf("duplicate id %d", id), Value: id})
	}

	return errors
}
