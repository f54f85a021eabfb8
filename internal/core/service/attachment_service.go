package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/api/metrics"
	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// AttachmentService stores files supporting tracking records. Metadata goes to
// the repository, content to the blob store under "<uuid><ext>".
type AttachmentService struct {
	repo     ports.AttachmentRepository
	blobs    ports.BlobStore
	maxBytes int64
	logger   zerolog.Logger
}

func NewAttachmentService(repo ports.AttachmentRepository, blobs ports.BlobStore, maxBytes int64, logger zerolog.Logger) *AttachmentService {
	return &AttachmentService{repo: repo, blobs: blobs, maxBytes: maxBytes, logger: logger}
}

func (s *AttachmentService) List(ctx context.Context, indicatorID int64, year int) ([]domain.Attachment, error) {
	return s.repo.List(ctx, indicatorID, year)
}

func (s *AttachmentService) Upload(ctx context.Context, in ports.UploadInput) (*domain.Attachment, error) {
	if in.IndicatorID <= 0 || in.Year <= 0 {
		return nil, fmt.Errorf("%w: id_indicador and gestion are required", domain.ErrInvalidInput)
	}
	name := filepath.Base(strings.TrimSpace(in.OriginalName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}

	id := uuid.NewString()
	a := &domain.Attachment{
		ID:           id,
		IndicatorID:  in.IndicatorID,
		Year:         in.Year,
		OriginalName: name,
		StoredName:   id + strings.ToLower(filepath.Ext(name)),
		Description:  strings.TrimSpace(in.Description),
		UploadedAt:   time.Now().UTC(),
	}

	n, err := s.blobs.Put(ctx, a.StoredName, in.Content, s.maxBytes)
	if err != nil {
		return nil, err
	}
	a.Size = n

	if err := s.repo.Insert(ctx, a); err != nil {
		if delErr := s.blobs.Delete(ctx, a.StoredName); delErr != nil {
			s.logger.Warn().Err(delErr).Str("stored_name", a.StoredName).Msg("failed to remove orphaned blob")
		}
		return nil, err
	}

	metrics.AttachmentsUploadedBytesTotal.Add(float64(n))
	s.logger.Info().Str("attachment_id", id).Int64("indicator_id", in.IndicatorID).Int("year", in.Year).Int64("size", n).Msg("attachment uploaded")
	return a, nil
}

func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, a.StoredName); err != nil {
		s.logger.Warn().Err(err).Str("stored_name", a.StoredName).Msg("failed to remove blob")
	}
	return nil
}

func (s *AttachmentService) Open(ctx context.Context, id string) (*domain.Attachment, io.ReadCloser, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(ctx, a.StoredName)
	if err != nil {
		return nil, nil, err
	}
	return a, rc, nil
}

func (s *AttachmentService) SweepOrphans(ctx context.Context, minAge time.Duration) (int, error) {
	blobs, err := s.blobs.List(ctx)
	if err != nil {
		return 0, err
	}
	referenced, err := s.repo.StoredNames(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-minAge)
	removed := 0
	for _, b := range blobs {
		if _, ok := referenced[b.Name]; ok || b.ModTime.After(cutoff) {
			continue
		}
		if err := s.blobs.Delete(ctx, b.Name); err != nil {
			s.logger.Warn().Err(err).Str("stored_name", b.Name).Msg("failed to remove orphaned blob")
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("orphaned blobs swept")
	}
	return removed, nil
}
