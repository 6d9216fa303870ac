// Package access holds the role capability matrix: a single lookup from role
// to permitted actions per resource, consulted by the HTTP gate instead of
// ad-hoc role comparisons at call sites.
package access

import "github.com/event-organizer/backend/internal/models"

// Resource is a protected resource kind.
type Resource string

const (
	ResourceEvents        Resource = "events"
	ResourceLocations     Resource = "locations"
	ResourceCategories    Resource = "categories"
	ResourceRequests      Resource = "requests"
	ResourceUsers         Resource = "users"
	ResourceNotifications Resource = "notifications"
)

// Action is an operation on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionSubmit Action = "submit"
	ActionReview Action = "review"
)

type capability struct {
	resource Resource
	action   Action
}

// The matrix mirrors the server-side permission rules: users read entities
// and submit requests, moderators additionally write entities and review,
// admins additionally manage users.
var matrix = map[models.Role]map[capability]bool{
	models.RoleUser: {
		{ResourceEvents, ActionRead}:        true,
		{ResourceLocations, ActionRead}:     true,
		{ResourceCategories, ActionRead}:    true,
		{ResourceRequests, ActionRead}:      true,
		{ResourceRequests, ActionSubmit}:    true,
		{ResourceNotifications, ActionRead}: true,
	},
	models.RoleModerator: {
		{ResourceEvents, ActionRead}:        true,
		{ResourceEvents, ActionWrite}:       true,
		{ResourceLocations, ActionRead}:     true,
		{ResourceLocations, ActionWrite}:    true,
		{ResourceCategories, ActionRead}:    true,
		{ResourceCategories, ActionWrite}:   true,
		{ResourceRequests, ActionRead}:      true,
		{ResourceRequests, ActionSubmit}:    true,
		{ResourceRequests, ActionReview}:    true,
		{ResourceNotifications, ActionRead}: true,
	},
	models.RoleAdmin: {
		{ResourceEvents, ActionRead}:        true,
		{ResourceEvents, ActionWrite}:       true,
		{ResourceLocations, ActionRead}:     true,
		{ResourceLocations, ActionWrite}:    true,
		{ResourceCategories, ActionRead}:    true,
		{ResourceCategories, ActionWrite}:   true,
		{ResourceRequests, ActionRead}:      true,
		{ResourceRequests, ActionSubmit}:    true,
		{ResourceRequests, ActionReview}:    true,
		{ResourceUsers, ActionRead}:         true,
		{ResourceUsers, ActionWrite}:        true,
		{ResourceNotifications, ActionRead}: true,
	},
}

// Can reports whether role may perform action on resource. Unknown roles
// have no capabilities.
func Can(role models.Role, resource Resource, action Action) bool {
	return matrix[role][capability{resource, action}]
}
