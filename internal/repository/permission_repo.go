package repository

import (
	"context"
	"database/sql"

	"github.com/backup-toolkit/internal/database"
	"github.com/backup-toolkit/internal/models"
	"github.com/lib/pq"
)

// permissionRepo is the concrete implementation of PermissionRepository
type permissionRepo struct {
	db *database.DB
}

// NewPermissionRepo creates a new permission repository
func NewPermissionRepo(db *database.DB) PermissionRepository {
	return &permissionRepo{db: db}
}

// BatchInsert inserts multiple permissions using PostgreSQL COPY.
// The slug column is unique, so a duplicate fails the whole batch.
func (r *permissionRepo) BatchInsert(ctx context.Context, records []*models.Permission) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("permissions",
		"id", "name", "slug", "method", "route", "attributes",
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
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Slug, nullString(p.Method), nullString(p.Route), attrs,
		); err != nil {
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

// Count returns the total number of permissions
func (r *permissionRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM permissions").Scan(&count)
	return count, err
}

// DeleteAll empties the permissions table
func (r *permissionRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM permissions")
	return err
}

// StreamAll streams all permissions in id order
func (r *permissionRepo) StreamAll(ctx context.Context, callback func(*models.Permission) error) error {
	query := `SELECT id, name, slug, method, route, attributes FROM permissions ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Permission
		var method, route sql.NullString
		var attrs []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &method, &route, &attrs); err != nil {
			return err
		}
		p.Method, p.Route = method.String, route.String

		if p.Attributes, err = decodeAttributes(attrs); err != nil {
			return err
		}

		if err := callback(&p); err != nil {
			return err
		}
	}

	return rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
