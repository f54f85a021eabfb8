package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type RoleService struct {
	roles  ports.RoleRepository
	menus  ports.MenuRepository
	access ports.AccessRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, menus ports.MenuRepository, access ports.AccessRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, menus: menus, access: access, logger: logger}
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// Create adds a role with every menu item disabled.
func (s *RoleService) Create(ctx context.Context, name, status string) (*domain.Role, error) {
	role, err := buildRole(domain.Role{}, name, status)
	if err != nil {
		return nil, err
	}

	created, err := s.roles.Create(ctx, &role)
	if err != nil {
		return nil, err
	}

	items, err := s.menus.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed access entries: %w", err)
	}
	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}
	if err := s.access.Seed(ctx, []int64{created.ID}, itemIDs); err != nil {
		return nil, fmt.Errorf("seed access entries: %w", err)
	}

	s.logger.Info().Int64("role_id", created.ID).Str("role", created.Name).Msg("role created")
	return created, nil
}

func (s *RoleService) Update(ctx context.Context, id int64, name, status string) (*domain.Role, error) {
	current, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := buildRole(*current, name, status)
	if err != nil {
		return nil, err
	}
	return s.roles.Update(ctx, &role)
}

func buildRole(base domain.Role, name, status string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return base, fmt.Errorf("%w: role name is required", domain.ErrInvalidInput)
	}
	st, ok := domain.ParseStatus(status)
	if !ok {
		return base, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	base.Name = name
	base.Status = st
	return base, nil
}
