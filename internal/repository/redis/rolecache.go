package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrovia/farm-api/internal/domain"
)

const (
	roleCacheKey = "reference:roles"
	roleCacheTTL = 30 * time.Minute
)

// RoleCache caches the role catalog in Redis. Roles and permissions are
// reference data seeded by migrations, so a generous TTL is safe.
type RoleCache struct {
	client *Client
}

// NewRoleCache creates a new role cache
func NewRoleCache(client *Client) *RoleCache {
	return &RoleCache{client: client}
}

// Get retrieves the cached role catalog
func (c *RoleCache) Get(ctx context.Context) ([]domain.Role, error) {
	data, err := c.client.rdb.Get(ctx, roleCacheKey).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var roles []domain.Role
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roles: %w", err)
	}

	return roles, nil
}

// Set caches the role catalog
func (c *RoleCache) Set(ctx context.Context, roles []domain.Role) error {
	data, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("failed to marshal roles: %w", err)
	}

	return c.client.rdb.Set(ctx, roleCacheKey, data, roleCacheTTL).Err()
}

// Invalidate removes the cached role catalog
func (c *RoleCache) Invalidate(ctx context.Context) error {
	return c.client.rdb.Del(ctx, roleCacheKey).Err()
}
