package categories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/event-organizer/backend/internal/models"
)

// Repository handles category persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a category repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SlugTaken reports whether slug belongs to a category other than selfID.
func (r *Repository) SlugTaken(ctx context.Context, slug string, selfID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`
	var taken bool
	if err := r.pool.QueryRow(ctx, q, slug, selfID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// ResolveSlug derives a unique slug for name, or validates the explicit one.
// selfID is uuid.Nil when creating.
func (r *Repository) ResolveSlug(ctx context.Context, name, explicit string, selfID uuid.UUID) (string, error) {
	base := explicit
	if base == "" {
		base = Slugify(name)
	}
	return UniqueSlug(base, selfID, func(slug string, self uuid.UUID) (bool, error) {
		return r.SlugTaken(ctx, slug, self)
	})
}

// Create inserts a new category.
func (r *Repository) Create(ctx context.Context, c *models.Category) error {
	const q = `INSERT INTO categories (name, slug) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID returns a category by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	const q = `SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`
	var cat models.Category
	err := r.pool.QueryRow(ctx, q, id).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}

// Update replaces name and slug of a category.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, slug string) (*models.Category, error) {
	const q = `UPDATE categories SET name = $1, slug = $2, updated_at = NOW() WHERE id = $3
		RETURNING id, name, slug, created_at, updated_at`
	var cat models.Category
	err := r.pool.QueryRow(ctx, q, name, slug, id).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete removes a category by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
