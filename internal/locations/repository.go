package locations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/event-organizer/backend/internal/models"
)

// Repository handles location persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a location repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const locationColumns = `id, name, COALESCE(address,''), COALESCE(city,''), capacity, is_one_time, created_at, updated_at`

func scanLocation(row pgx.Row) (*models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.Capacity, &l.IsOneTime, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new location.
func (r *Repository) Create(ctx context.Context, l *models.Location) error {
	const q = `INSERT INTO locations (name, address, city, capacity, is_one_time)
		VALUES ($1, NULLIF($2,''), NULLIF($3,''), $4, $5)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, l.Name, l.Address, l.City, l.Capacity, l.IsOneTime).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// GetByID returns a location by ID, one-time ones included.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	const q = `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	return scanLocation(r.pool.QueryRow(ctx, q, id))
}

// List returns reusable locations. One-time locations exist only as event
// venue snapshots and are never offered in pickers.
func (r *Repository) List(ctx context.Context) ([]models.Location, error) {
	const q = `SELECT ` + locationColumns + ` FROM locations WHERE NOT is_one_time ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

// Update replaces the mutable fields of a location.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, address, city string, capacity *int) (*models.Location, error) {
	const q = `UPDATE locations SET name = $1, address = NULLIF($2,''), city = NULLIF($3,''), capacity = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + locationColumns
	return scanLocation(r.pool.QueryRow(ctx, q, name, address, city, capacity, id))
}

// Delete removes a location by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
