package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// TrackingRepository stores yearly tracking records.
type TrackingRepository interface {
	// Find returns domain.ErrNotFound when no record exists.
	Find(ctx context.Context, indicatorID int64, year int) (*domain.TrackingRecord, error)
	// Save inserts the record when its ID is zero, otherwise replaces the
	// stored record if it still carries rec.Version. The returned record
	// holds the new version. domain.ErrConflict means another write landed
	// first.
	Save(ctx context.Context, rec *domain.TrackingRecord) (*domain.TrackingRecord, error)
	ListByYear(ctx context.Context, year int) ([]domain.TrackingRecord, error)
}

// TrackingService reads and updates tracking records.
type TrackingService interface {
	// Get returns nil, nil when the indicator has no record for the year.
	Get(ctx context.Context, indicatorID int64, year int) (*domain.TrackingRecord, error)
	Save(ctx context.Context, patch domain.TrackingPatch, username string) (*domain.TrackingRecord, error)
	Columns() []domain.Column
}
