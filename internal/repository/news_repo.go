package repository

import (
	"context"
	"database/sql"

	"github.com/backup-toolkit/internal/database"
	"github.com/backup-toolkit/internal/models"
	"github.com/lib/pq"
)

// newsRepo is the concrete implementation of NewsRepository
type newsRepo struct {
	db *database.DB
}

// NewNewsRepo creates a new news repository
func NewNewsRepo(db *database.DB) NewsRepository {
	return &newsRepo{db: db}
}

// BatchInsert inserts multiple news records using PostgreSQL COPY
func (r *newsRepo) BatchInsert(ctx context.Context, records []*models.News) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("news",
		"id", "title", "description", "content", "thumbnail", "published", "attributes",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, n := range records {
		attrs, err := encodeAttributes(n.Attributes)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx,
			n.ID, n.Title, n.Desc, n.Content, n.Thumbnail, n.Published, attrs,
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

// Count returns the total number of news records
func (r *newsRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news").Scan(&count)
	return count, err
}

// DeleteAll empties the news table
func (r *newsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM news")
	return err
}

// StreamAll streams all news records in id order
func (r *newsRepo) StreamAll(ctx context.Context, callback func(*models.News) error) error {
	query := `SELECT id, title, description, content, thumbnail, published, attributes FROM news ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var n models.News
		var desc, content, thumbnail sql.NullString
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.Title, &desc, &content, &thumbnail, &n.Published, &attrs); err != nil {
			return err
		}
		n.Desc, n.Content, n.Thumbnail = desc.String, content.String, thumbnail.String

		if n.Attributes, err = decodeAttributes(attrs); err != nil {
			return err
		}

		if err := callback(&n); err != nil {
			return err
		}
	}

	return rows.Err()
}
