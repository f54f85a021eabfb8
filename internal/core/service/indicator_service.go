package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type IndicatorService struct {
	repo   ports.IndicatorRepository
	logger zerolog.Logger
}

func NewIndicatorService(repo ports.IndicatorRepository, logger zerolog.Logger) *IndicatorService {
	return &IndicatorService{repo: repo, logger: logger}
}

func (s *IndicatorService) List(ctx context.Context) ([]domain.Indicator, error) {
	return s.repo.List(ctx)
}

func (s *IndicatorService) ListByArea(ctx context.Context, areaID int64) ([]domain.Indicator, error) {
	return s.repo.ListByArea(ctx, areaID)
}

func (s *IndicatorService) Create(ctx context.Context, ind domain.Indicator) (*domain.Indicator, error) {
	ind.ID = 0
	if err := normalizeIndicator(&ind); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, &ind)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("indicator_id", created.ID).Str("code", created.Code).Msg("indicator created")
	return created, nil
}

func (s *IndicatorService) Update(ctx context.Context, id int64, ind domain.Indicator) (*domain.Indicator, error) {
	ind.ID = id
	if err := normalizeIndicator(&ind); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &ind)
}

func normalizeIndicator(ind *domain.Indicator) error {
	ind.Description = strings.TrimSpace(ind.Description)
	ind.Code = strings.TrimSpace(ind.Code)
	if ind.Description == "" {
		return fmt.Errorf("%w: indicador_resultado is required", domain.ErrInvalidInput)
	}
	if ind.BaseYear != nil && ind.TargetYear != nil && *ind.TargetYear < *ind.BaseYear {
		return fmt.Errorf("%w: anio_logro precedes anio_base", domain.ErrInvalidInput)
	}
	status, ok := domain.ParseStatus(string(ind.Status))
	if !ok {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, ind.Status)
	}
	ind.Status = status
	return nil
}
