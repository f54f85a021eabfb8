package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// CatalogRepository stores the reference tables.
type CatalogRepository interface {
	List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error)
	FindByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogEntry, error)
	Create(ctx context.Context, entry *domain.CatalogEntry) (*domain.CatalogEntry, error)
	Update(ctx context.Context, entry *domain.CatalogEntry) (*domain.CatalogEntry, error)
}

// AreaRepository stores organisational areas.
type AreaRepository interface {
	List(ctx context.Context) ([]domain.Area, error)
	ListByEntity(ctx context.Context, entityID int64) ([]domain.Area, error)
	FindByID(ctx context.Context, id int64) (*domain.Area, error)
	Create(ctx context.Context, area *domain.Area) (*domain.Area, error)
	Update(ctx context.Context, area *domain.Area) (*domain.Area, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogEntryInput carries the editable fields of a reference row.
type CatalogEntryInput struct {
	Code   string
	Name   string
	Status string
}

// AreaInput carries the editable fields of an area.
type AreaInput struct {
	EntityID int64
	Name     string
	Status   string
}

// CatalogService administers reference tables and areas.
type CatalogService interface {
	List(ctx context.Context, kind string) ([]domain.CatalogEntry, error)
	Create(ctx context.Context, kind string, in CatalogEntryInput) (*domain.CatalogEntry, error)
	Update(ctx context.Context, kind string, id int64, in CatalogEntryInput) (*domain.CatalogEntry, error)

	Areas(ctx context.Context) ([]domain.Area, error)
	AreasByEntity(ctx context.Context, entityID int64) ([]domain.Area, error)
	CreateArea(ctx context.Context, in AreaInput) (*domain.Area, error)
	UpdateArea(ctx context.Context, id int64, in AreaInput) (*domain.Area, error)
	DeleteArea(ctx context.Context, id int64) error

	// UserContext describes the area, entity and sector of an area id.
	UserContext(ctx context.Context, areaID int64) (*domain.UserContext, error)
}
