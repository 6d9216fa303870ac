package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/event-organizer/backend/internal/access"
	"github.com/event-organizer/backend/internal/auth"
	"github.com/event-organizer/backend/pkg/response"
)

// Require returns a middleware that resolves the caller's current role and
// allows the request only if the capability matrix grants the action on the
// resource. The resolved role is stored in context for handlers.
func Require(resolver *auth.Resolver, resource access.Resource, action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		idVal, ok := c.Get(auth.ContextUserID)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		userID, _ := idVal.(uuid.UUID)
		role := resolver.Resolve(c.Request.Context(), userID)
		c.Set(auth.ContextUserRole, role)
		if !access.Can(role, resource, action) {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
