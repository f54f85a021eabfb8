package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type eventService struct {
	eventRepo ports.EventRepository
	log       zerolog.Logger
}

// NewEventService returns the EventService that writes the tracking audit
// trail.
func NewEventService(eventRepo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{eventRepo: eventRepo, log: log}
}

// Process validates and persists a single audit event.
func (s *eventService) Process(ctx context.Context, in ports.TrackingEventInput) error {
	if in.IndicatorID <= 0 || in.Year <= 0 {
		return fmt.Errorf("process audit event: %w", domain.ErrInvalidInput)
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	event := &domain.TrackingEvent{
		IndicatorID: in.IndicatorID,
		Year:        in.Year,
		Username:    in.Username,
		Fields:      in.Fields,
		Timestamp:   ts.UTC(),
	}
	if err := s.eventRepo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Int64("indicator_id", in.IndicatorID).
		Int("year", in.Year).
		Str("username", in.Username).
		Int("fields", len(in.Fields)).
		Msg("audit event recorded")
	return nil
}
