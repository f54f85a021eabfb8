package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/api/metrics"
	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// AuditPublisher abstracts the asynchronous audit queue.
type AuditPublisher interface {
	// Enqueue hands the event over without blocking. It reports false when
	// the event was dropped.
	Enqueue(event ports.TrackingEventInput) bool
}

const (
	minYear = 2000
	maxYear = 2100

	// maxSaveAttempts bounds the read-apply-write cycle when other saves
	// keep landing on the same record.
	maxSaveAttempts = 5
)

type TrackingService struct {
	repo   ports.TrackingRepository
	audit  AuditPublisher
	logger zerolog.Logger
	now    func() time.Time
}

// NewTrackingService returns a TrackingService. audit may be nil.
func NewTrackingService(repo ports.TrackingRepository, audit AuditPublisher, logger zerolog.Logger) *TrackingService {
	return &TrackingService{repo: repo, audit: audit, logger: logger, now: time.Now}
}

func (s *TrackingService) Get(ctx context.Context, indicatorID int64, year int) (*domain.TrackingRecord, error) {
	rec, err := s.repo.Find(ctx, indicatorID, year)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Save creates or updates the record of (indicator, year). Only the fields
// present in the patch change. The patch is reapplied on a fresh read when
// another save lands first.
func (s *TrackingService) Save(ctx context.Context, patch domain.TrackingPatch, username string) (*domain.TrackingRecord, error) {
	if patch.IndicatorID <= 0 {
		return nil, fmt.Errorf("%w: id_indicador is required", domain.ErrInvalidInput)
	}
	if patch.Year < minYear || patch.Year > maxYear {
		return nil, fmt.Errorf("%w: gestion %d out of range", domain.ErrInvalidInput, patch.Year)
	}

	var saved *domain.TrackingRecord
	for attempt := 1; ; attempt++ {
		rec, err := s.repo.Find(ctx, patch.IndicatorID, patch.Year)
		if errors.Is(err, domain.ErrNotFound) {
			rec = &domain.TrackingRecord{IndicatorID: patch.IndicatorID, Year: patch.Year}
		} else if err != nil {
			return nil, err
		}

		if err := rec.Apply(patch); err != nil {
			return nil, err
		}
		rec.UpdatedAt = s.now().UTC()

		saved, err = s.repo.Save(ctx, rec)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrConflict) && attempt < maxSaveAttempts {
			s.logger.Debug().Int64("indicator_id", patch.IndicatorID).Int("year", patch.Year).Int("attempt", attempt).Msg("tracking record changed, retrying save")
			continue
		}
		s.logger.Error().Err(err).Int64("indicator_id", patch.IndicatorID).Int("year", patch.Year).Msg("failed to save tracking record")
		return nil, err
	}
	metrics.TrackingSavesTotal.Inc()

	s.publish(ports.TrackingEventInput{
		IndicatorID: saved.IndicatorID,
		Year:        saved.Year,
		Username:    username,
		Fields:      touchedFields(patch),
		Timestamp:   saved.UpdatedAt,
	})
	return saved, nil
}

func (s *TrackingService) Columns() []domain.Column {
	return domain.TrackingColumns()
}

func (s *TrackingService) publish(event ports.TrackingEventInput) {
	if s.audit == nil {
		return
	}
	if !s.audit.Enqueue(event) {
		s.logger.Warn().Int64("indicator_id", event.IndicatorID).Int("year", event.Year).Msg("audit queue full, event dropped")
	}
}

// touchedFields lists the keys a patch writes, sorted.
func touchedFields(p domain.TrackingPatch) []string {
	fields := make([]string, 0, len(p.Values)+3)
	for k := range p.Values {
		fields = append(fields, k)
	}
	if p.SetProgrammed {
		fields = append(fields, "programado")
	}
	if p.Qualitative != nil {
		fields = append(fields, "descripcion_cualitativa")
	}
	if p.Modifications != nil {
		fields = append(fields, "modificaciones")
	}
	sort.Strings(fields)
	return fields
}
