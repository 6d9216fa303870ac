package auth

// Gin context keys set by the JWT middleware. They live here rather than in
// the middleware package so handlers can reference them without a cycle.
const (
	// ContextUserID is the key for the authenticated user's ID.
	ContextUserID = "user_id"
	// ContextUsername is the key for the authenticated user's username.
	ContextUsername = "username"
	// ContextUserRole is the key for the resolved role.
	ContextUserRole = "user_role"
)
