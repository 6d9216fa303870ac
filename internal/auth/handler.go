package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/event-organizer/backend/internal/models"
	"github.com/event-organizer/backend/pkg/response"
	"github.com/event-organizer/backend/pkg/utils"
)

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Password2 string `json:"password2" binding:"required"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with the bearer token.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// UpdateRoleRequest is the body for PATCH /users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Handler handles auth and user-management HTTP endpoints.
type Handler struct {
	repo     *Repository
	jwt      *JWTService
	resolver *Resolver
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, resolver *Resolver, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, resolver: resolver, logger: logger}
}

// Register handles POST /auth/register. New accounts always get role user.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Password != req.Password2 {
		response.BadRequest(c, "passwords do not match")
		return
	}

	if _, err := h.repo.GetByUsername(c.Request.Context(), req.Username); err == nil {
		response.Conflict(c, "username already taken")
		return
	}
	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.Conflict(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	u, err := h.repo.Create(c.Request.Context(), req.Username, req.Email, hash)
	if err != nil {
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}
	response.Created(c, u.ToPublic())
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	u, err := h.repo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil || !utils.CheckPassword(req.Password, u.Password) {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := h.jwt.Generate(u.ID, u.Username, u.Role)
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: u.ToPublic()})
}

// Role handles GET /auth/role: the caller's current role and username.
// Resolution failures surface as role user, never an error.
func (h *Handler) Role(c *gin.Context) {
	userID := c.MustGet(ContextUserID).(uuid.UUID)
	username, _ := c.MustGet(ContextUsername).(string)
	role := h.resolver.Resolve(c.Request.Context(), userID)
	response.OK(c, gin.H{"role": role, "username": username})
}

// List handles GET /users (admin only).
func (h *Handler) List(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, users)
}

// UpdateRole handles PATCH /users/:id/role (admin only) and invalidates the
// target's cached role so the change applies to in-flight sessions.
func (h *Handler) UpdateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		response.BadRequest(c, "invalid role")
		return
	}
	if err := h.repo.UpdateRole(c.Request.Context(), id, role); err != nil {
		response.NotFound(c, "user not found")
		return
	}
	h.resolver.Invalidate(c.Request.Context(), id)
	response.OK(c, gin.H{"id": id, "role": role})
}
