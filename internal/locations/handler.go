package locations

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/event-organizer/backend/internal/models"
	"github.com/event-organizer/backend/pkg/response"
)

// LocationRequest is the body for POST and PUT on locations.
type LocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity *int   `json:"capacity" binding:"omitempty,min=0"`
}

// Handler handles location HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a location handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /locations. Direct creation is always a reusable
// location; one-time venues only come out of approved event requests.
func (h *Handler) Create(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	l := &models.Location{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Capacity: req.Capacity,
	}
	if err := h.repo.Create(c.Request.Context(), l); err != nil {
		response.Internal(c, "failed to create location")
		return
	}
	response.Created(c, l)
}

// List handles GET /locations.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list locations")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /locations/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}
	l, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "location not found")
		return
	}
	response.OK(c, l)
}

// Update handles PUT /locations/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	l, err := h.repo.Update(c.Request.Context(), id, req.Name, req.Address, req.City, req.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "location not found")
			return
		}
		response.Internal(c, "failed to update location")
		return
	}
	response.OK(c, l)
}

// Delete handles DELETE /locations/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid location id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "location not found")
			return
		}
		response.Internal(c, "failed to delete location")
		return
	}
	response.NoContent(c)
}
