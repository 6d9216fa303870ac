package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/event-organizer/backend/internal/models"
)

// RoleLoader loads a principal's current role from the user store.
type RoleLoader interface {
	RoleOf(ctx context.Context, id uuid.UUID) (models.Role, error)
}

// Resolver resolves the acting principal's role, cached in Redis for the
// session lifetime. Every failure path yields RoleUser: the resolver
// degrades to least privilege and never elevates on error.
type Resolver struct {
	loader RoleLoader
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResolver creates a role resolver. cache may be nil, in which case every
// resolution hits the loader.
func NewResolver(loader RoleLoader, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{loader: loader, cache: cache, ttl: ttl, logger: logger}
}

func roleKey(id uuid.UUID) string {
	return "role:" + id.String()
}

// Resolve returns the role for userID. Cache errors are treated as misses;
// loader errors fall back to the least-privileged role with no retry.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) models.Role {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, roleKey(userID)).Result(); err == nil {
			if role, ok := models.ParseRole(cached); ok {
				return role
			}
		}
	}

	role, err := r.loader.RoleOf(ctx, userID)
	if err != nil {
		r.logger.Warn("role resolution failed, defaulting to user",
			zap.String("user_id", userID.String()), zap.Error(err))
		return models.RoleUser
	}
	if _, ok := models.ParseRole(string(role)); !ok {
		return models.RoleUser
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, roleKey(userID), string(role), r.ttl).Err(); err != nil {
			r.logger.Warn("role cache write failed", zap.Error(err))
		}
	}
	return role
}

// Invalidate drops the cached role, e.g. after an admin changes it.
func (r *Resolver) Invalidate(ctx context.Context, userID uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(ctx, roleKey(userID)).Err(); err != nil {
		r.logger.Warn("role cache invalidation failed", zap.Error(err))
	}
}
