package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// MenuRepository is the menu catalog source.
type MenuRepository interface {
	// ListItems returns every menu item in catalog order.
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	FindItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
}

// AccessRepository is the role-scoped access list source.
type AccessRepository interface {
	ListByRole(ctx context.Context, roleID int64) ([]domain.AccessEntry, error)
	FindByID(ctx context.Context, id int64) (*domain.AccessEntry, error)
	SetState(ctx context.Context, id int64, state domain.AccessState) (*domain.AccessEntry, error)
	// Seed inserts a disabled entry for every (role, item) pair that has none.
	Seed(ctx context.Context, roleIDs, itemIDs []int64) error
}

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	List(ctx context.Context) ([]domain.Role, error)
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
}

// MenuCache stores resolved menus per role under a generation. Callers read
// the generation before fetching the menu inputs and write under it, so an
// invalidation in between leaves the write unreachable.
type MenuCache interface {
	Generation(ctx context.Context, roleID int64) (string, error)
	Get(ctx context.Context, roleID int64, gen string) (domain.VisibleMenu, bool, error)
	Set(ctx context.Context, roleID int64, gen string, menu domain.VisibleMenu) error
	// InvalidateRole moves the role to a new generation.
	InvalidateRole(ctx context.Context, roleID int64) error
	// InvalidateAll drops the cached menus of every role.
	InvalidateAll(ctx context.Context) error
}
