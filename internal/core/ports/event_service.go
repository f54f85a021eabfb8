package ports

import (
	"context"
	"time"
)

// TrackingEventInput is the DTO handed to the audit dispatcher after a
// tracking record is saved.
type TrackingEventInput struct {
	IndicatorID int64
	Year        int
	Username    string
	Fields      []string
	Timestamp   time.Time
}

// EventService records tracking audit events.
type EventService interface {
	Process(ctx context.Context, event TrackingEventInput) error
}
