package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const (
	defaultMenuTTL = 10 * time.Minute
	versionKey     = "menu:version"
)

// MenuCache stores resolved menus per role.
// Key format: menu:v<catalog_version>.<role_version>:role:<role_id>
//
// A catalog change bumps the catalog version and an access change bumps the
// version of one role. Either way the old keys are never read again and
// expire with their TTL.
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMenuCache creates a MenuCache wrapping the given Redis client.
func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	if ttl <= 0 {
		ttl = defaultMenuTTL
	}
	return &MenuCache{client: client, ttl: ttl}
}

// Generation returns the current cache generation of a role.
func (c *MenuCache) Generation(ctx context.Context, roleID int64) (string, error) {
	vals, err := c.client.MGet(ctx, versionKey, roleVersionKey(roleID)).Result()
	if err != nil {
		return "", fmt.Errorf("menu cache version: %w", err)
	}
	if len(vals) != 2 {
		return "", fmt.Errorf("menu cache version: got %d values", len(vals))
	}
	all, err := counter(vals[0])
	if err != nil {
		return "", err
	}
	role, err := counter(vals[1])
	if err != nil {
		return "", err
	}
	return generation(all, role), nil
}

// Get returns the menu cached for a role under gen, if any.
func (c *MenuCache) Get(ctx context.Context, roleID int64, gen string) (domain.VisibleMenu, bool, error) {
	raw, err := c.client.Get(ctx, menuKey(gen, roleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("menu cache get: %w", err)
	}
	menu, err := decodeMenu(raw)
	if err != nil {
		return nil, false, err
	}
	return menu, true, nil
}

func (c *MenuCache) Set(ctx context.Context, roleID int64, gen string, menu domain.VisibleMenu) error {
	raw, err := json.Marshal(menu)
	if err != nil {
		return fmt.Errorf("menu cache encode: %w", err)
	}
	if err := c.client.Set(ctx, menuKey(gen, roleID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("menu cache set: %w", err)
	}
	return nil
}

func (c *MenuCache) InvalidateRole(ctx context.Context, roleID int64) error {
	if err := c.client.Incr(ctx, roleVersionKey(roleID)).Err(); err != nil {
		return fmt.Errorf("menu cache invalidate role %d: %w", roleID, err)
	}
	return nil
}

func (c *MenuCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("menu cache invalidate: %w", err)
	}
	return nil
}

// counter parses one MGET value. A missing key reads as zero.
func counter(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("menu cache version %q: %w", x, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("menu cache version: unexpected %T", v)
	}
}

func generation(all, role int64) string {
	return strconv.FormatInt(all, 10) + "." + strconv.FormatInt(role, 10)
}

func roleVersionKey(roleID int64) string {
	return "menu:role:" + strconv.FormatInt(roleID, 10) + ":version"
}

func menuKey(gen string, roleID int64) string {
	return "menu:v" + gen + ":role:" + strconv.FormatInt(roleID, 10)
}

// decodeMenu never returns a nil menu for a valid payload.
func decodeMenu(raw []byte) (domain.VisibleMenu, error) {
	menu := domain.VisibleMenu{}
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, fmt.Errorf("menu cache decode: %w", err)
	}
	if menu == nil {
		menu = domain.VisibleMenu{}
	}
	return menu, nil
}
