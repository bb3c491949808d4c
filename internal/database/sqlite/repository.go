package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/resource-saver/internal/database"
	"github.com/vadimbarashkov/resource-saver/internal/models"
)

type resourceRecord struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *resourceRecord) ToResource() *models.Resource {
	return &models.Resource{
		ID:        r.ID,
		Title:     r.Title,
		URL:       r.URL,
		Type:      r.Type,
		CreatedAt: r.CreatedAt,
	}
}

// ResourceRepository persists catalog resources in a single SQLite table.
// Every method runs one statement, so each call is its own transaction.
type ResourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{
		db: db,
	}
}

// Create inserts a new resource and returns the stored record with the
// assigned id and creation timestamp.
func (r *ResourceRepository) Create(ctx context.Context, title, url, typ string) (*models.Resource, error) {
	const op = "database.sqlite.ResourceRepository.Create"

	rec := new(resourceRecord)
	query := `INSERT INTO resources(title, url, type, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, title, url, typ, time.Now().UTC())
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrResourceExists)
		}

		return nil, fmt.Errorf("%s: failed to create resource record: %w", op, err)
	}

	return rec.ToResource(), nil
}

// List returns the full catalog snapshot in insertion order.
func (r *ResourceRepository) List(ctx context.Context) ([]*models.Resource, error) {
	const op = "database.sqlite.ResourceRepository.List"

	var recs []resourceRecord
	query := `SELECT * FROM resources
		ORDER BY created_at, id`

	err := r.db.SelectContext(ctx, &recs, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list resource records: %w", op, err)
	}

	resources := make([]*models.Resource, 0, len(recs))
	for i := range recs {
		resources = append(resources, recs[i].ToResource())
	}

	return resources, nil
}

// Delete removes the resource with the given id. It reports whether a record
// was removed; a missing id is not an error at this layer.
func (r *ResourceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const op = "database.sqlite.ResourceRepository.Delete"

	query := `DELETE FROM resources
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("%s: failed to delete resource record: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return affected > 0, nil
}
