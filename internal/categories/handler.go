package categories

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/event-organizer/backend/internal/models"
	"github.com/event-organizer/backend/pkg/response"
)

// CategoryRequest is the body for POST and PUT on categories. Slug is
// optional; when empty it is derived from the name.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2"`
	Slug string `json:"slug"`
}

// Handler handles category HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a category handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /categories.
func (h *Handler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	slug, err := h.repo.ResolveSlug(c.Request.Context(), req.Name, req.Slug, uuid.Nil)
	if err != nil {
		response.Internal(c, "failed to derive slug")
		return
	}
	cat := &models.Category{Name: req.Name, Slug: slug}
	if err := h.repo.Create(c.Request.Context(), cat); err != nil {
		response.Internal(c, "failed to create category")
		return
	}
	response.Created(c, cat)
}

// List handles GET /categories.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list categories")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /categories/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	cat, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "category not found")
		return
	}
	response.OK(c, cat)
}

// Update handles PUT /categories/:id. Slug collisions exclude the category
// itself, so saving with an unchanged name keeps the slug stable.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	slug, err := h.repo.ResolveSlug(c.Request.Context(), req.Name, req.Slug, id)
	if err != nil {
		response.Internal(c, "failed to derive slug")
		return
	}
	cat, err := h.repo.Update(c.Request.Context(), id, req.Name, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "category not found")
			return
		}
		response.Internal(c, "failed to update category")
		return
	}
	response.OK(c, cat)
}

// Delete handles DELETE /categories/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "category not found")
			return
		}
		response.Internal(c, "failed to delete category")
		return
	}
	response.NoContent(c)
}
