package requests

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/event-organizer/backend/internal/auth"
	"github.com/event-organizer/backend/internal/models"
	"github.com/event-organizer/backend/pkg/response"
)

// Handler serves the request workflow endpoints.
type Handler struct {
	repo       *Repository
	engine     *Engine
	events     EventSource
	locations  LocationSource
	categories CategorySource
	logger     *zap.Logger
}

func NewHandler(repo *Repository, engine *Engine, events EventSource, locations LocationSource, categories CategorySource, logger *zap.Logger) *Handler {
	return &Handler{
		repo:       repo,
		engine:     engine,
		events:     events,
		locations:  locations,
		categories: categories,
		logger:     logger,
	}
}

// SubmitRequest is the submission payload. Which fields matter depends on
// request_type and action.
type SubmitRequest struct {
	RequestType string  `json:"request_type" binding:"required"`
	Action      string  `json:"action" binding:"required"`
	Event       *string `json:"event"`

	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	LocationID  string `json:"location_id"`
	CategoryID  string `json:"category_id"`
	IsPublic    *bool  `json:"is_public"`

	OneTimeLocation  bool   `json:"one_time_location"`
	LocationName     string `json:"location_name"`
	LocationCity     string `json:"location_city"`
	LocationAddress  string `json:"location_address"`
	LocationCapacity *int   `json:"location_capacity"`

	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Capacity *int   `json:"capacity"`
	Slug     string `json:"slug"`
}

// ReviewRequest carries the moderation decision.
type ReviewRequest struct {
	Status models.RequestStatus `json:"status" binding:"required"`
}

// Submit handles POST /requests.
func (h *Handler) Submit(c *gin.Context) {
	var body SubmitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var target *uuid.UUID
	if body.Event != nil && *body.Event != "" {
		id, err := uuid.Parse(*body.Event)
		if err != nil {
			response.BadRequest(c, "invalid event id")
			return
		}
		target = &id
	}

	isPublic := true
	if body.IsPublic != nil {
		isPublic = *body.IsPublic
	}
	form := FormState{
		Title:            body.Title,
		Description:      body.Description,
		StartTime:        body.StartTime,
		EndTime:          body.EndTime,
		LocationID:       body.LocationID,
		CategoryID:       body.CategoryID,
		IsPublic:         isPublic,
		OneTimeLocation:  body.OneTimeLocation,
		LocationName:     body.LocationName,
		LocationCity:     body.LocationCity,
		LocationAddress:  body.LocationAddress,
		LocationCapacity: body.LocationCapacity,
		Name:             body.Name,
		City:             body.City,
		Address:          body.Address,
		Capacity:         body.Capacity,
		Slug:             body.Slug,
	}

	req, err := Build(models.RequestType(body.RequestType), models.RequestAction(body.Action), target, form)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := c.MustGet(auth.ContextUserID).(uuid.UUID)
	if err := h.repo.Submit(c.Request.Context(), req, userID); err != nil {
		if errors.Is(err, ErrDuplicateSubmit) {
			response.Conflict(c, "identical request already submitted")
			return
		}
		h.logger.Error("failed to submit request", zap.Error(err))
		response.Internal(c, "failed to submit request")
		return
	}
	response.Created(c, req)
}

// List handles GET /requests. Visibility follows role: own requests for
// users, the pending queue for moderators, everything for admins.
func (h *Handler) List(c *gin.Context) {
	userID := c.MustGet(auth.ContextUserID).(uuid.UUID)
	role := c.MustGet(auth.ContextUserRole).(models.Role)

	list, err := h.repo.List(c.Request.Context(), ScopeFor(role, userID))
	if err != nil {
		h.logger.Error("failed to list requests", zap.Error(err))
		response.Internal(c, "failed to list requests")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /requests/:id.
func (h *Handler) GetByID(c *gin.Context) {
	req, ok := h.visibleRequest(c)
	if !ok {
		return
	}
	response.OK(c, req)
}

// Diff handles GET /requests/:id/diff.
func (h *Handler) Diff(c *gin.Context) {
	req, ok := h.visibleRequest(c)
	if !ok {
		return
	}
	presenter := NewPresenter(h.events, h.locations, h.categories)
	view, err := presenter.Build(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("failed to build request diff",
			zap.String("request_id", req.ID.String()), zap.Error(err))
		response.Internal(c, "failed to build diff")
		return
	}
	response.OK(c, view)
}

// Review handles PATCH /requests/:id.
func (h *Handler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	var body ReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	reviewer := c.MustGet(auth.ContextUserID).(uuid.UUID)

	req, err := h.engine.Review(c.Request.Context(), id, reviewer, body.Status)
	switch {
	case err == nil:
		response.OK(c, req)
	case errors.Is(err, pgx.ErrNoRows):
		response.NotFound(c, "request not found")
	case errors.Is(err, ErrInvalidDecision):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrAlreadyReviewed):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrSelfReview):
		response.Forbidden(c, err.Error())
	case errors.Is(err, ErrInvalidTimeRange), errors.Is(err, ErrMissingTimes),
		errors.Is(err, ErrMissingName), errors.Is(err, ErrOneTimeNameMissing),
		errors.Is(err, ErrTargetRequired):
		response.BadRequest(c, err.Error())
	default:
		h.logger.Error("failed to review request",
			zap.String("request_id", id.String()), zap.Error(err))
		response.Internal(c, "failed to review request")
	}
}

// visibleRequest loads the request in the URL and enforces the caller's
// visibility scope. It writes the error response itself on failure.
func (h *Handler) visibleRequest(c *gin.Context) (*models.Request, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return nil, false
	}
	req, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		response.NotFound(c, "request not found")
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load request", zap.Error(err))
		response.Internal(c, "failed to load request")
		return nil, false
	}

	userID := c.MustGet(auth.ContextUserID).(uuid.UUID)
	role := c.MustGet(auth.ContextUserRole).(models.Role)
	scope := ScopeFor(role, userID)
	if scope.UserID != nil && req.UserID != *scope.UserID {
		// Out-of-scope requests are indistinguishable from missing ones.
		response.NotFound(c, "request not found")
		return nil, false
	}
	return req, true
}
