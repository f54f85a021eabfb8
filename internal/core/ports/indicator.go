package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// IndicatorRepository stores the parameter matrix.
type IndicatorRepository interface {
	List(ctx context.Context) ([]domain.Indicator, error)
	ListByArea(ctx context.Context, areaID int64) ([]domain.Indicator, error)
	Create(ctx context.Context, ind *domain.Indicator) (*domain.Indicator, error)
	Update(ctx context.Context, ind *domain.Indicator) (*domain.Indicator, error)
}

// IndicatorService administers indicators.
type IndicatorService interface {
	List(ctx context.Context) ([]domain.Indicator, error)
	ListByArea(ctx context.Context, areaID int64) ([]domain.Indicator, error)
	Create(ctx context.Context, ind domain.Indicator) (*domain.Indicator, error)
	Update(ctx context.Context, id int64, ind domain.Indicator) (*domain.Indicator, error)
}
