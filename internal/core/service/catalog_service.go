package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// noValue is shown in a user context when a level of the organisation cannot
// be determined.
const noValue = "-"

// CatalogService administers the reference tables and organisational areas.
type CatalogService struct {
	catalogs   ports.CatalogRepository
	areas      ports.AreaRepository
	indicators ports.IndicatorRepository
	logger     zerolog.Logger
}

func NewCatalogService(
	catalogs ports.CatalogRepository,
	areas ports.AreaRepository,
	indicators ports.IndicatorRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{catalogs: catalogs, areas: areas, indicators: indicators, logger: logger}
}

func (s *CatalogService) List(ctx context.Context, kind string) ([]domain.CatalogEntry, error) {
	k, err := domain.ParseCatalogKind(kind)
	if err != nil {
		return nil, err
	}
	return s.catalogs.List(ctx, k)
}

func (s *CatalogService) Create(ctx context.Context, kind string, in ports.CatalogEntryInput) (*domain.CatalogEntry, error) {
	k, err := domain.ParseCatalogKind(kind)
	if err != nil {
		return nil, err
	}
	entry, err := buildCatalogEntry(domain.CatalogEntry{Kind: k}, in)
	if err != nil {
		return nil, err
	}
	created, err := s.catalogs.Create(ctx, &entry)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("catalog", kind).Int64("id", created.ID).Msg("catalog entry created")
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, kind string, id int64, in ports.CatalogEntryInput) (*domain.CatalogEntry, error) {
	k, err := domain.ParseCatalogKind(kind)
	if err != nil {
		return nil, err
	}
	current, err := s.catalogs.FindByID(ctx, k, id)
	if err != nil {
		return nil, err
	}
	entry, err := buildCatalogEntry(*current, in)
	if err != nil {
		return nil, err
	}
	return s.catalogs.Update(ctx, &entry)
}

func buildCatalogEntry(base domain.CatalogEntry, in ports.CatalogEntryInput) (domain.CatalogEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return base, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	code := strings.TrimSpace(in.Code)
	if base.Kind.Coded() && code == "" {
		return base, fmt.Errorf("%w: code is required for %s", domain.ErrInvalidInput, base.Kind)
	}
	if !base.Kind.Coded() {
		code = ""
	}
	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		return base, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}
	base.Name = name
	base.Code = code
	base.Status = status
	return base, nil
}

func (s *CatalogService) Areas(ctx context.Context) ([]domain.Area, error) {
	return s.areas.List(ctx)
}

func (s *CatalogService) AreasByEntity(ctx context.Context, entityID int64) ([]domain.Area, error) {
	return s.areas.ListByEntity(ctx, entityID)
}

func (s *CatalogService) CreateArea(ctx context.Context, in ports.AreaInput) (*domain.Area, error) {
	area, err := s.buildArea(ctx, domain.Area{}, in)
	if err != nil {
		return nil, err
	}
	return s.areas.Create(ctx, &area)
}

func (s *CatalogService) UpdateArea(ctx context.Context, id int64, in ports.AreaInput) (*domain.Area, error) {
	current, err := s.areas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	area, err := s.buildArea(ctx, *current, in)
	if err != nil {
		return nil, err
	}
	return s.areas.Update(ctx, &area)
}

func (s *CatalogService) DeleteArea(ctx context.Context, id int64) error {
	if err := s.areas.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("area_id", id).Msg("area deleted")
	return nil
}

func (s *CatalogService) buildArea(ctx context.Context, base domain.Area, in ports.AreaInput) (domain.Area, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return base, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if _, err := s.catalogs.FindByID(ctx, domain.CatalogEntities, in.EntityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return base, fmt.Errorf("%w: unknown entity %d", domain.ErrInvalidInput, in.EntityID)
		}
		return base, err
	}
	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		return base, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}
	base.Name = name
	base.EntityID = in.EntityID
	base.Status = status
	return base, nil
}

// UserContext names the area, its entity and the sector of the first
// indicator registered for the area. Levels that cannot be resolved are
// reported as "-".
func (s *CatalogService) UserContext(ctx context.Context, areaID int64) (*domain.UserContext, error) {
	area, err := s.areas.FindByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	out := &domain.UserContext{Area: area.Name, Entity: noValue, Sector: noValue}

	entity, err := s.catalogs.FindByID(ctx, domain.CatalogEntities, area.EntityID)
	switch {
	case err == nil:
		out.Entity = entity.Name
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	indicators, err := s.indicators.ListByArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	for _, ind := range indicators {
		if ind.SectorID == nil {
			continue
		}
		sector, err := s.catalogs.FindByID(ctx, domain.CatalogSectors, *ind.SectorID)
		switch {
		case err == nil:
			out.Sector = sector.Name
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		break
	}
	return out, nil
}
