package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mmaya/sms-monitoreo/internal/api/metrics"
	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// MenuService resolves role menus and administers the menu catalog.
type MenuService struct {
	menus  ports.MenuRepository
	access ports.AccessRepository
	roles  ports.RoleRepository
	cache  ports.MenuCache
	logger zerolog.Logger
}

// NewMenuService returns a MenuService. cache may be nil.
func NewMenuService(
	menus ports.MenuRepository,
	access ports.AccessRepository,
	roles ports.RoleRepository,
	cache ports.MenuCache,
	logger zerolog.Logger,
) *MenuService {
	return &MenuService{menus: menus, access: access, roles: roles, cache: cache, logger: logger}
}

func (s *MenuService) Catalog(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menus.ListItems(ctx)
}

// AccessEntries returns the access list of a role with each entry labelled
// after its menu item.
func (s *MenuService) AccessEntries(ctx context.Context, roleID int64) ([]domain.AccessEntry, error) {
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return nil, err
	}

	var (
		items   []domain.MenuItem
		entries []domain.AccessEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.menus.ListItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.access.ListByRole(gctx, roleID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	labels := make(map[int64]string, len(items))
	for _, it := range items {
		labels[it.ID] = it.Label
	}
	for i := range entries {
		entries[i].Label = labels[entries[i].MenuItemID]
	}
	return entries, nil
}

// Resolve returns the menu visible to a role. Cached menus are served first.
// When the catalog or the access list cannot be read the role gets an empty
// menu, which is not cached. A resolved menu is cached under the generation
// read before its inputs, so an invalidation that lands mid-resolve wins.
func (s *MenuService) Resolve(ctx context.Context, roleID int64) domain.VisibleMenu {
	var (
		gen    string
		cached bool
	)
	if s.cache != nil {
		var err error
		gen, err = s.cache.Generation(ctx, roleID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("role_id", roleID).Msg("menu cache version unavailable")
		} else {
			cached = true
			menu, ok, err := s.cache.Get(ctx, roleID, gen)
			if err != nil {
				s.logger.Warn().Err(err).Int64("role_id", roleID).Msg("menu cache read failed")
			} else if ok {
				metrics.MenuResolutionsTotal.WithLabelValues("cache").Inc()
				return menu
			}
		}
	}

	var (
		catalog []domain.MenuItem
		access  []domain.AccessEntry
		g       errgroup.Group
	)
	g.Go(func() error {
		items, err := s.menus.ListItems(ctx)
		if err != nil {
			metrics.MenuFetchFailuresTotal.WithLabelValues("catalog").Inc()
			return fmt.Errorf("fetch menu catalog: %w", err)
		}
		catalog = domain.ActiveItems(items)
		return nil
	})
	g.Go(func() error {
		entries, err := s.access.ListByRole(ctx, roleID)
		if err != nil {
			metrics.MenuFetchFailuresTotal.WithLabelValues("access").Inc()
			return fmt.Errorf("fetch access entries: %w", err)
		}
		access = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int64("role_id", roleID).Msg("menu inputs unavailable, serving empty menu")
		return domain.VisibleMenu{}
	}

	menu := domain.ResolveMenu(catalog, access)
	metrics.MenuResolutionsTotal.WithLabelValues("store").Inc()
	metrics.MenuVisibleLeaves.Observe(float64(menu.LeafCount()))

	if cached {
		if err := s.cache.Set(ctx, roleID, gen, menu); err != nil {
			s.logger.Warn().Err(err).Int64("role_id", roleID).Msg("menu cache write failed")
		}
	}
	return menu
}

// SetAccessState enables or disables one access entry and drops the cached
// menu of its role.
func (s *MenuService) SetAccessState(ctx context.Context, entryID int64, state string) (*domain.AccessEntry, error) {
	st := domain.ParseAccessState(state)
	if st == domain.StateUnknown {
		return nil, fmt.Errorf("%w: unknown access state %q", domain.ErrInvalidInput, state)
	}

	entry, err := s.access.SetState(ctx, entryID, st)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRole(ctx, entry.RoleID); err != nil {
			s.logger.Warn().Err(err).Int64("role_id", entry.RoleID).Msg("menu cache invalidation failed")
		}
	}
	s.logger.Info().Int64("entry_id", entryID).Int64("role_id", entry.RoleID).Str("state", string(st)).Msg("access entry updated")
	return entry, nil
}

func (s *MenuService) AdminItems(ctx context.Context) ([]ports.MenuAdminItem, error) {
	items, err := s.menus.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	labels := make(map[int64]string, len(items))
	for _, it := range items {
		labels[it.ID] = it.Label
	}
	out := make([]ports.MenuAdminItem, 0, len(items))
	for _, it := range items {
		row := ports.MenuAdminItem{MenuItem: it}
		if it.ParentID != nil {
			row.ParentLabel = labels[*it.ParentID]
		}
		out = append(out, row)
	}
	return out, nil
}

// CreateItem adds a menu item and seeds a disabled access entry for it in
// every role.
func (s *MenuService) CreateItem(ctx context.Context, in ports.MenuItemInput) (*domain.MenuItem, error) {
	item, err := s.buildItem(ctx, domain.MenuItem{}, in)
	if err != nil {
		return nil, err
	}

	created, err := s.menus.CreateItem(ctx, &item)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed access entries: %w", err)
	}
	roleIDs := make([]int64, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}
	if err := s.access.Seed(ctx, roleIDs, []int64{created.ID}); err != nil {
		return nil, fmt.Errorf("seed access entries: %w", err)
	}

	s.invalidateAll(ctx)
	s.logger.Info().Int64("item_id", created.ID).Str("kind", string(created.Kind)).Msg("menu item created")
	return created, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id int64, in ports.MenuItemInput) (*domain.MenuItem, error) {
	current, err := s.menus.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item, err := s.buildItem(ctx, *current, in)
	if err != nil {
		return nil, err
	}

	updated, err := s.menus.UpdateItem(ctx, &item)
	if err != nil {
		return nil, err
	}

	s.invalidateAll(ctx)
	s.logger.Info().Int64("item_id", id).Msg("menu item updated")
	return updated, nil
}

// buildItem applies in onto base. Sections sit at the top level; a leaf must
// hang from an existing section.
func (s *MenuService) buildItem(ctx context.Context, base domain.MenuItem, in ports.MenuItemInput) (domain.MenuItem, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return base, fmt.Errorf("%w: label is required", domain.ErrInvalidInput)
	}
	kind := domain.ParseMenuKind(in.Kind)
	if kind == domain.KindUnknown {
		return base, fmt.Errorf("%w: unknown menu kind %q", domain.ErrInvalidInput, in.Kind)
	}
	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		return base, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}

	switch kind {
	case domain.KindSection:
		if in.ParentID != nil {
			return base, fmt.Errorf("%w: sections cannot have a parent", domain.ErrInvalidInput)
		}
	case domain.KindLeaf:
		if in.ParentID == nil {
			return base, fmt.Errorf("%w: a leaf needs a parent section", domain.ErrInvalidInput)
		}
		if *in.ParentID == base.ID {
			return base, fmt.Errorf("%w: an item cannot be its own parent", domain.ErrInvalidInput)
		}
		parent, err := s.menus.FindItem(ctx, *in.ParentID)
		if err != nil {
			return base, fmt.Errorf("%w: parent %d: %v", domain.ErrInvalidInput, *in.ParentID, err)
		}
		if parent.Kind != domain.KindSection {
			return base, fmt.Errorf("%w: parent %d is not a section", domain.ErrInvalidInput, parent.ID)
		}
	}

	base.Label = label
	base.Kind = kind
	base.Icon = strings.TrimSpace(in.Icon)
	base.LinkTarget = nil
	if in.LinkTarget != nil && strings.TrimSpace(*in.LinkTarget) != "" {
		target := strings.TrimSpace(*in.LinkTarget)
		base.LinkTarget = &target
	}
	base.ParentID = in.ParentID
	base.Status = status
	return base, nil
}

func (s *MenuService) invalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}
