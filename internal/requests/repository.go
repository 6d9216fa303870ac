package requests

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/event-organizer/backend/internal/models"
)

// submitGuardTTL bounds the window in which an identical payload from the
// same user counts as a duplicate submission.
const submitGuardTTL = 10 * time.Second

// ListScope restricts which requests a caller may see.
type ListScope struct {
	// UserID, when set, limits the list to that submitter's requests.
	UserID *uuid.UUID
	// Status, when set, limits the list to one status.
	Status *models.RequestStatus
}

// ScopeFor returns the list scope appropriate for a role: users see only
// their own requests, moderators see the pending queue, admins see all.
func ScopeFor(role models.Role, callerID uuid.UUID) ListScope {
	switch role {
	case models.RoleModerator:
		pending := models.StatusPending
		return ListScope{Status: &pending}
	case models.RoleAdmin:
		return ListScope{}
	default:
		id := callerID
		return ListScope{UserID: &id}
	}
}

// Repository handles request persistence plus the Redis duplicate-submit
// guard.
type Repository struct {
	pool  *pgxpool.Pool
	cache *redis.Client
}

// NewRepository creates a request repository. cache may be nil, which
// disables the duplicate-submit guard.
func NewRepository(pool *pgxpool.Pool, cache *redis.Client) *Repository {
	return &Repository{pool: pool, cache: cache}
}

const requestColumns = `id, request_type, action, event_id, data, user_id, status, reviewed_by, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.Request, error) {
	var req models.Request
	var data []byte
	err := row.Scan(&req.ID, &req.RequestType, &req.Action, &req.EventID, &data,
		&req.UserID, &req.Status, &req.ReviewedBy, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &req.Data); err != nil {
		return nil, fmt.Errorf("decode request data: %w", err)
	}
	return &req, nil
}

// ErrDuplicateSubmit is returned when the same payload arrives again before
// the guard window elapsed (the double-click case).
var ErrDuplicateSubmit = fmt.Errorf("identical request already submitted")

// submitGuardKey derives the duplicate-submit key. The target event id is
// part of the key: delete and sparse-update payloads can be byte-identical
// for different targets and must not collide.
func submitGuardKey(userID uuid.UUID, req *models.Request, data []byte) string {
	target := ""
	if req.EventID != nil {
		target = req.EventID.String()
	}
	header := string(req.RequestType) + ":" + string(req.Action) + ":" + target + ":"
	sum := sha256.Sum256(append([]byte(header), data...))
	return "requests:submit:" + userID.String() + ":" + hex.EncodeToString(sum[:])
}

// Submit stores a new pending request for user.
func (r *Repository) Submit(ctx context.Context, req *models.Request, userID uuid.UUID) error {
	data, err := json.Marshal(req.Data)
	if err != nil {
		return fmt.Errorf("encode request data: %w", err)
	}

	if r.cache != nil {
		key := submitGuardKey(userID, req, data)
		ok, err := r.cache.SetNX(ctx, key, 1, submitGuardTTL).Result()
		if err == nil && !ok {
			return ErrDuplicateSubmit
		}
		// Guard errors are ignored: losing the guard must not block submission.
	}

	const q = `INSERT INTO requests (request_type, action, event_id, data, user_id, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, status, created_at, updated_at`
	req.UserID = userID
	return r.pool.QueryRow(ctx, q, req.RequestType, req.Action, req.EventID, data, userID).
		Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

// GetByID returns a request by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	return scanRequest(r.pool.QueryRow(ctx, q, id))
}

// List returns requests visible under scope, newest first.
func (r *Repository) List(ctx context.Context, scope ListScope) ([]models.Request, error) {
	q := `SELECT ` + requestColumns + ` FROM requests`
	var args []interface{}
	var cond string
	if scope.UserID != nil {
		args = append(args, *scope.UserID)
		cond = fmt.Sprintf(" WHERE user_id = $%d", len(args))
	}
	if scope.Status != nil {
		args = append(args, *scope.Status)
		if cond == "" {
			cond = fmt.Sprintf(" WHERE status = $%d", len(args))
		} else {
			cond += fmt.Sprintf(" AND status = $%d", len(args))
		}
	}
	rows, err := r.pool.Query(ctx, q+cond+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *req)
	}
	return list, rows.Err()
}
