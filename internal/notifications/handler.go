package notifications

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/event-organizer/backend/internal/auth"
	"github.com/event-organizer/backend/pkg/response"
)

// Handler serves notification endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /notifications, returning the caller's notifications.
func (h *Handler) List(c *gin.Context) {
	userID := c.MustGet(auth.ContextUserID).(uuid.UUID)

	list, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err))
		response.Internal(c, "failed to list notifications")
		return
	}
	response.OK(c, list)
}
