package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// EventRepository persists the tracking audit trail.
type EventRepository interface {
	// InsertEvent appends an event to the rendicion_events audit collection.
	InsertEvent(ctx context.Context, event *domain.TrackingEvent) error
}
