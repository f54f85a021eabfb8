package ports

import (
	"context"
	"io"
	"time"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// AttachmentRepository stores attachment metadata.
type AttachmentRepository interface {
	List(ctx context.Context, indicatorID int64, year int) ([]domain.Attachment, error)
	FindByID(ctx context.Context, id string) (*domain.Attachment, error)
	Insert(ctx context.Context, a *domain.Attachment) error
	Delete(ctx context.Context, id string) error
	// StoredNames returns the blob names referenced by any attachment.
	StoredNames(ctx context.Context) (map[string]struct{}, error)
}

// BlobInfo describes a stored blob.
type BlobInfo struct {
	Name    string
	ModTime time.Time
}

// BlobStore stores attachment content.
type BlobStore interface {
	// Put writes at most limit bytes and returns the number written. It
	// returns domain.ErrFileTooLarge, leaving nothing behind, when the content
	// is longer.
	Put(ctx context.Context, name string, r io.Reader, limit int64) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]BlobInfo, error)
}

// UploadInput describes a file being attached to a tracking record.
type UploadInput struct {
	IndicatorID  int64
	Year         int
	Description  string
	OriginalName string
	Content      io.Reader
}

// AttachmentService manages tracking attachments.
type AttachmentService interface {
	List(ctx context.Context, indicatorID int64, year int) ([]domain.Attachment, error)
	Upload(ctx context.Context, in UploadInput) (*domain.Attachment, error)
	Delete(ctx context.Context, id string) error
	// Open returns the metadata and content of an attachment. The caller
	// closes the reader.
	Open(ctx context.Context, id string) (*domain.Attachment, io.ReadCloser, error)
	// SweepOrphans deletes blobs older than minAge that no attachment
	// references and returns how many were removed.
	SweepOrphans(ctx context.Context, minAge time.Duration) (int, error)
}

// DashboardService computes the home screen aggregates.
type DashboardService interface {
	Summary(ctx context.Context, year int) (*domain.Dashboard, error)
}
