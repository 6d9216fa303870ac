package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/event-organizer/backend/internal/categories"
	"github.com/event-organizer/backend/internal/models"
	"github.com/event-organizer/backend/pkg/queue"
)

var (
	// ErrAlreadyReviewed is returned when the request already left the
	// pending state. Reviews are one-shot.
	ErrAlreadyReviewed = errors.New("request already reviewed")
	// ErrSelfReview is returned when a reviewer tries to decide their own
	// request.
	ErrSelfReview = errors.New("cannot review own request")
	// ErrInvalidDecision is returned for a decision other than approved or
	// rejected.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

// CheckTransition validates a review decision against the request's current
// state. It does not touch storage.
func CheckTransition(req *models.Request, reviewer uuid.UUID, decision models.RequestStatus) error {
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return ErrInvalidDecision
	}
	if req.Status != models.StatusPending {
		return ErrAlreadyReviewed
	}
	if req.UserID == reviewer {
		return ErrSelfReview
	}
	return nil
}

// Engine reviews pending requests. Approval applies the requested change to
// the live entities inside the same transaction that records the decision,
// so a failed apply leaves the request pending.
type Engine struct {
	pool   *pgxpool.Pool
	queue  *queue.Queue
	logger *zap.Logger
}

// NewEngine creates a moderation engine. q may be nil to skip notifications.
func NewEngine(pool *pgxpool.Pool, q *queue.Queue, logger *zap.Logger) *Engine {
	return &Engine{pool: pool, queue: q, logger: logger}
}

// Review decides a pending request. On approve the change is applied before
// commit; any apply error rolls the whole review back.
func (e *Engine) Review(ctx context.Context, requestID, reviewer uuid.UUID, decision models.RequestStatus) (*models.Request, error) {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin review: %w", err)
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + requestColumns + ` FROM requests WHERE id = $1 FOR UPDATE`
	req, err := scanRequest(tx.QueryRow(ctx, lockQ, requestID))
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(req, reviewer, decision); err != nil {
		return nil, err
	}

	if decision == models.StatusApproved {
		if err := e.apply(ctx, tx, req); err != nil {
			return nil, fmt.Errorf("apply %s %s: %w", req.Action, req.RequestType, err)
		}
	}

	const updateQ = `UPDATE requests SET status = $1, reviewed_by = $2, updated_at = NOW()
		WHERE id = $3 RETURNING updated_at`
	if err := tx.QueryRow(ctx, updateQ, decision, reviewer, requestID).Scan(&req.UpdatedAt); err != nil {
		return nil, err
	}
	req.Status = decision
	req.ReviewedBy = &reviewer

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit review: %w", err)
	}

	if e.queue != nil {
		notice := queue.ReviewNoticePayload{
			RequestID:   req.ID,
			UserID:      req.UserID,
			RequestType: req.RequestType,
			Action:      req.Action,
			Status:      req.Status,
		}
		if err := e.queue.EnqueueReviewNotice(ctx, notice); err != nil {
			e.logger.Warn("failed to enqueue review notice",
				zap.String("request_id", req.ID.String()), zap.Error(err))
		}
	}
	return req, nil
}

func (e *Engine) apply(ctx context.Context, tx pgx.Tx, req *models.Request) error {
	switch req.RequestType {
	case models.RequestTypeEvent:
		switch req.Action {
		case models.ActionCreate:
			return e.createEvent(ctx, tx, req)
		case models.ActionUpdate:
			return e.updateEvent(ctx, tx, req)
		case models.ActionDelete:
			return e.deleteEvent(ctx, tx, req)
		}
	case models.RequestTypeLocation:
		return e.createLocation(ctx, tx, req)
	case models.RequestTypeCategory:
		return e.createCategory(ctx, tx, req)
	}
	return fmt.Errorf("unsupported request %s/%s", req.RequestType, req.Action)
}

func (e *Engine) createEvent(ctx context.Context, tx pgx.Tx, req *models.Request) error {
	d := req.Data
	locationID := d.LocationID
	if d.LocationIsOneTime {
		// One-time venues exist only for this event and never show up in
		// the reusable location list.
		id, err := e.createOneTimeLocation(ctx, tx, d)
		if err != nil {
			return err
		}
		locationID = &id
	}

	title, desc := deref(d.Title), deref(d.Description)
	isPublic := true
	if d.IsPublic != nil {
		isPublic = *d.IsPublic
	}
	if d.StartTime == nil || d.EndTime == nil {
		return ErrMissingTimes
	}
	if !d.EndTime.After(*d.StartTime) {
		return ErrInvalidTimeRange
	}
	const q = `INSERT INTO events (title, description, start_time, end_time, location_id, category_id, is_public, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.Exec(ctx, q, title, desc, *d.StartTime, *d.EndTime, locationID, d.CategoryID, isPublic, req.UserID)
	return err
}

func (e *Engine) updateEvent(ctx context.Context, tx pgx.Tx, req *models.Request) error {
	if req.EventID == nil {
		return ErrTargetRequired
	}
	const getQ = `SELECT title, COALESCE(description, ''), start_time, end_time, location_id, category_id, is_public
		FROM events WHERE id = $1 FOR UPDATE`
	var ev models.Event
	err := tx.QueryRow(ctx, getQ, *req.EventID).Scan(&ev.Title, &ev.Description,
		&ev.StartTime, &ev.EndTime, &ev.LocationID, &ev.CategoryID, &ev.IsPublic)
	if err != nil {
		return err
	}

	patch := req.Data.EventPatch()
	if req.Data.LocationIsOneTime {
		id, err := e.createOneTimeLocation(ctx, tx, req.Data)
		if err != nil {
			return err
		}
		patch.LocationID = &id
	}
	patch.Apply(&ev)
	if !ev.EndTime.After(ev.StartTime) {
		return ErrInvalidTimeRange
	}
	const q = `UPDATE events SET title = $1, description = $2, start_time = $3,
		end_time = $4, location_id = $5, category_id = $6, is_public = $7, updated_at = NOW()
		WHERE id = $8`
	_, err = tx.Exec(ctx, q, ev.Title, ev.Description, ev.StartTime, ev.EndTime,
		ev.LocationID, ev.CategoryID, ev.IsPublic, *req.EventID)
	return err
}

func (e *Engine) deleteEvent(ctx context.Context, tx pgx.Tx, req *models.Request) error {
	if req.EventID == nil {
		return ErrTargetRequired
	}
	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, *req.EventID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (e *Engine) createOneTimeLocation(ctx context.Context, tx pgx.Tx, d models.RequestData) (uuid.UUID, error) {
	name := deref(d.LocationName)
	if name == "" {
		return uuid.Nil, ErrOneTimeNameMissing
	}
	const q = `INSERT INTO locations (name, address, city, capacity, is_one_time)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, TRUE) RETURNING id`
	var id uuid.UUID
	err := tx.QueryRow(ctx, q, name, deref(d.LocationAddress), deref(d.LocationCity), d.LocationCapacity).Scan(&id)
	return id, err
}

func (e *Engine) createLocation(ctx context.Context, tx pgx.Tx, req *models.Request) error {
	d := req.Data
	if deref(d.Name) == "" {
		return ErrMissingName
	}
	const q = `INSERT INTO locations (name, address, city, capacity, is_one_time)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, FALSE)`
	_, err := tx.Exec(ctx, q, *d.Name, deref(d.Address), deref(d.City), d.Capacity)
	return err
}

func (e *Engine) createCategory(ctx context.Context, tx pgx.Tx, req *models.Request) error {
	d := req.Data
	if deref(d.Name) == "" {
		return ErrMissingName
	}
	base := deref(d.Slug)
	if base == "" {
		base = categories.Slugify(*d.Name)
	}
	slug, err := categories.UniqueSlug(base, uuid.Nil, func(candidate string, selfID uuid.UUID) (bool, error) {
		var taken bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, candidate).Scan(&taken)
		return taken, err
	})
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO categories (name, slug) VALUES ($1, $2)`, *d.Name, slug)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
