package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// MenuItemInput carries the editable fields of a menu item.
type MenuItemInput struct {
	Label      string
	Kind       string
	Icon       string
	LinkTarget *string
	ParentID   *int64
	Status     string
}

// MenuAdminItem is a catalog row as shown on the menu administration screen.
type MenuAdminItem struct {
	domain.MenuItem
	ParentLabel string `json:"parent_label,omitempty"`
}

// MenuService resolves and administers navigation menus.
type MenuService interface {
	Catalog(ctx context.Context) ([]domain.MenuItem, error)
	AccessEntries(ctx context.Context, roleID int64) ([]domain.AccessEntry, error)
	// Resolve never fails: any input that cannot be fetched is treated as
	// empty, which yields an empty menu.
	Resolve(ctx context.Context, roleID int64) domain.VisibleMenu
	SetAccessState(ctx context.Context, entryID int64, state string) (*domain.AccessEntry, error)
	AdminItems(ctx context.Context) ([]MenuAdminItem, error)
	CreateItem(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, id int64, in MenuItemInput) (*domain.MenuItem, error)
}

// RoleService administers roles.
type RoleService interface {
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, name, status string) (*domain.Role, error)
	Update(ctx context.Context, id int64, name, status string) (*domain.Role, error)
}
