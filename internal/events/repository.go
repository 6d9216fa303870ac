package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/event-organizer/backend/internal/models"
)

// ErrInvalidTimeRange is returned when end_time is not strictly after
// start_time.
var ErrInvalidTimeRange = errors.New("end_time must be after start_time")

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an event repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, title, description, start_time, end_time, location_id, category_id, is_public, author_id, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime,
		&e.LocationID, &e.CategoryID, &e.IsPublic, &e.AuthorID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	if !e.EndTime.After(e.StartTime) {
		return ErrInvalidTimeRange
	}
	const q = `INSERT INTO events (title, description, start_time, end_time, location_id, category_id, is_public, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, e.Title, e.Description, e.StartTime, e.EndTime,
		e.LocationID, e.CategoryID, e.IsPublic, e.AuthorID).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID returns an event by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, q, id))
}

// List returns all events, newest start first.
func (r *Repository) List(ctx context.Context) ([]models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events ORDER BY start_time DESC`
	return r.queryList(ctx, q)
}

// ListPublic returns public events for the unauthenticated listing.
func (r *Repository) ListPublic(ctx context.Context) ([]models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE is_public ORDER BY start_time DESC`
	return r.queryList(ctx, q)
}

func (r *Repository) queryList(ctx context.Context, q string) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// Update merges a partial update onto the stored event.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(e)
	if !e.EndTime.After(e.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	const q = `UPDATE events SET title = $1, description = $2, start_time = $3, end_time = $4,
		location_id = $5, category_id = $6, is_public = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, q, e.Title, e.Description, e.StartTime, e.EndTime,
		e.LocationID, e.CategoryID, e.IsPublic, id).Scan(&e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an event by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
