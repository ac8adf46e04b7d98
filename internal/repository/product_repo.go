package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/backup-toolkit/internal/database"
	"github.com/backup-toolkit/internal/models"
	"github.com/lib/pq"
)

// productRepo is the concrete implementation of ProductRepository
type productRepo struct {
	db *database.DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *database.DB) ProductRepository {
	return &productRepo{db: db}
}

// BatchInsert inserts multiple products using PostgreSQL COPY
func (r *productRepo) BatchInsert(ctx context.Context, records []*models.Product) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("products",
		"id", "name", "price", "description", "attributes",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, p := range records {
		attrs, err := encodeAttributes(p.Attributes)
		if err != nil {
			return 0, err
		}
		var price any
		if p.Price != nil {
			price = p.Price.String()
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, price, p.Desc, attrs); err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(records), nil
}

// Count returns the total number of products
func (r *productRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

// DeleteAll empties the products table
func (r *productRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM products")
	return err
}

// StreamAll streams all products in id order
func (r *productRepo) StreamAll(ctx context.Context, callback func(*models.Product) error) error {
	query := `SELECT id, name, price::text, description, attributes FROM products ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		var name, price, desc sql.NullString
		var attrs []byte
		if err := rows.Scan(&p.ID, &name, &price, &desc, &attrs); err != nil {
			return err
		}
		if name.Valid {
			p.Name = &name.String
		}
		if price.Valid {
			n := json.Number(price.String)
			p.Price = &n
		}
		if desc.Valid {
			p.Desc = &desc.String
		}

		if p.Attributes, err = decodeAttributes(attrs); err != nil {
			return err
		}

		if err := callback(&p); err != nil {
			return err
		}
	}

	return rows.Err()
}
