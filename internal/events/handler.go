package events

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/event-organizer/backend/internal/auth"
	"github.com/event-organizer/backend/internal/models"
	"github.com/event-organizer/backend/pkg/response"
)

// CreateRequest is the body for POST /events.
type CreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	LocationID  *string `json:"location_id"`
	CategoryID  *string `json:"category_id"`
	IsPublic    *bool   `json:"is_public"`
}

// UpdateRequest is the body for PUT /events/:id. Absent fields keep the
// current value.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	LocationID  *string `json:"location_id"`
	CategoryID  *string `json:"category_id"`
	IsPublic    *bool   `json:"is_public"`
}

// Handler handles event HTTP endpoints. Write endpoints are mounted behind
// the moderator/admin capability gate; user-role principals go through the
// request workflow instead.
type Handler struct {
	repo *Repository
}

// NewHandler creates an event handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func parseOptionalID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	startTime, err := models.ParseInstant(req.StartTime)
	if err != nil {
		response.BadRequest(c, "invalid start_time")
		return
	}
	endTime, err := models.ParseInstant(req.EndTime)
	if err != nil {
		response.BadRequest(c, "invalid end_time")
		return
	}
	locationID, err := parseOptionalID(req.LocationID)
	if err != nil {
		response.BadRequest(c, "invalid location_id")
		return
	}
	categoryID, err := parseOptionalID(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "invalid category_id")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	e := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		LocationID:  locationID,
		CategoryID:  categoryID,
		IsPublic:    isPublic,
		AuthorID:    c.MustGet(auth.ContextUserID).(uuid.UUID),
	}
	if err := h.repo.Create(c.Request.Context(), e); err != nil {
		if errors.Is(err, ErrInvalidTimeRange) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Internal(c, "failed to create event")
		return
	}
	response.Created(c, e)
}

// GetByID handles GET /events/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, e)
}

// List handles GET /events (authenticated listing).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// ListPublic handles GET /public/events: the unauthenticated listing of
// public events only.
func (h *Handler) ListPublic(c *gin.Context) {
	list, err := h.repo.ListPublic(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// Update handles PUT /events/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	patch := models.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if req.StartTime != nil {
		t, err := models.ParseInstant(*req.StartTime)
		if err != nil {
			response.BadRequest(c, "invalid start_time")
			return
		}
		patch.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := models.ParseInstant(*req.EndTime)
		if err != nil {
			response.BadRequest(c, "invalid end_time")
			return
		}
		patch.EndTime = &t
	}
	if req.LocationID != nil {
		locID, err := parseOptionalID(req.LocationID)
		if err != nil {
			response.BadRequest(c, "invalid location_id")
			return
		}
		patch.LocationID = locID
	}
	if req.CategoryID != nil {
		catID, err := parseOptionalID(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "invalid category_id")
			return
		}
		patch.CategoryID = catID
	}

	updated, err := h.repo.Update(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTimeRange):
			response.BadRequest(c, err.Error())
		case errors.Is(err, pgx.ErrNoRows):
			response.NotFound(c, "event not found")
		default:
			response.Internal(c, "failed to update event")
		}
		return
	}
	response.OK(c, updated)
}

// Delete handles DELETE /events/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "event not found")
			return
		}
		response.Internal(c, "failed to delete event")
		return
	}
	response.NoContent(c)
}
