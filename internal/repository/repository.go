package repository

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/backup-toolkit/internal/database"
	"github.com/backup-toolkit/internal/models"
)

// RecordRepository defines the data operations shared by every backup list
type RecordRepository[T any] interface {
	BatchInsert(ctx context.Context, records []*T) (int, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
	StreamAll(ctx context.Context, callback func(*T) error) error
}

// NewsRepository stores news records
type NewsRepository = RecordRepository[models.News]

// ProductRepository stores product records
type ProductRepository = RecordRepository[models.Product]

// PermissionRepository stores permission records
type PermissionRepository = RecordRepository[models.Permission]

// Repositories holds all repository interfaces
type Repositories struct {
	News       NewsRepository
	Product    ProductRepository
	Permission PermissionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		News:       NewNewsRepo(db),
		Product:    NewProductRepo(db),
		Permission: NewPermissionRepo(db),
	}
}

// encodeAttributes renders the overflow fields for the JSONB column
func encodeAttributes(attrs map[string]any) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeAttributes keeps numbers as json.Number so they round-trip unchanged
func decodeAttributes(data []byte) (map[string]any, error) {
	attrs := make(map[string]any)
	if len(data) == 0 {
		return attrs, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}
