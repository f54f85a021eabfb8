package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type stubAttachmentRepo struct {
	items     map[string]domain.Attachment
	insertErr error
}

func newStubAttachmentRepo() *stubAttachmentRepo {
	return &stubAttachmentRepo{items: make(map[string]domain.Attachment)}
}

func (r *stubAttachmentRepo) List(_ context.Context, indicatorID int64, year int) ([]domain.Attachment, error) {
	var out []domain.Attachment
	for _, a := range r.items {
		if a.IndicatorID == indicatorID && a.Year == year {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAttachmentRepo) FindByID(_ context.Context, id string) (*domain.Attachment, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAttachmentNotFound
	}
	return &a, nil
}

func (r *stubAttachmentRepo) Insert(_ context.Context, a *domain.Attachment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.items[a.ID] = *a
	return nil
}

func (r *stubAttachmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrAttachmentNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubAttachmentRepo) StoredNames(_ context.Context) (map[string]struct{}, error) {
	names := make(map[string]struct{}, len(r.items))
	for _, a := range r.items {
		names[a.StoredName] = struct{}{}
	}
	return names, nil
}

type memBlobStore struct {
	blobs   map[string][]byte
	modTime map[string]time.Time
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte), modTime: make(map[string]time.Time)}
}

func (s *memBlobStore) List(_ context.Context) ([]ports.BlobInfo, error) {
	var out []ports.BlobInfo
	for name := range s.blobs {
		out = append(out, ports.BlobInfo{Name: name, ModTime: s.modTime[name]})
	}
	return out, nil
}

func (s *memBlobStore) Put(_ context.Context, name string, r io.Reader, limit int64) (int64, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return 0, err
	}
	if int64(len(data)) > limit {
		return 0, domain.ErrFileTooLarge
	}
	s.blobs[name] = data
	return int64(len(data)), nil
}

func (s *memBlobStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, domain.ErrAttachmentNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memBlobStore) Delete(_ context.Context, name string) error {
	delete(s.blobs, name)
	return nil
}

func TestAttachmentService_UploadAndOpen(t *testing.T) {
	repo := newStubAttachmentRepo()
	blobs := newMemBlobStore()
	svc := NewAttachmentService(repo, blobs, 1024, zerolog.Nop())
	ctx := context.Background()

	a, err := svc.Upload(ctx, ports.UploadInput{
		IndicatorID:  3,
		Year:         2025,
		Description:  " informe trimestral ",
		OriginalName: "../../Informe.PDF",
		Content:      strings.NewReader("hello"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Informe.PDF", a.OriginalName)
	assert.Equal(t, a.ID+".pdf", a.StoredName)
	assert.Equal(t, "informe trimestral", a.Description)
	assert.EqualValues(t, 5, a.Size)
	assert.Contains(t, blobs.blobs, a.StoredName)

	listed, err := svc.List(ctx, 3, 2025)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	meta, rc, err := svc.Open(ctx, a.ID)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, a.ID, meta.ID)
}

func TestAttachmentService_UploadTooLarge(t *testing.T) {
	repo := newStubAttachmentRepo()
	blobs := newMemBlobStore()
	svc := NewAttachmentService(repo, blobs, 4, zerolog.Nop())

	_, err := svc.Upload(context.Background(), ports.UploadInput{
		IndicatorID: 3, Year: 2025, OriginalName: "a.txt", Content: strings.NewReader("hello"),
	})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Empty(t, repo.items)
	assert.Empty(t, blobs.blobs)
}

func TestAttachmentService_UploadValidation(t *testing.T) {
	svc := NewAttachmentService(newStubAttachmentRepo(), newMemBlobStore(), 1024, zerolog.Nop())

	_, err := svc.Upload(context.Background(), ports.UploadInput{Year: 2025, OriginalName: "a.txt", Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Upload(context.Background(), ports.UploadInput{IndicatorID: 1, Year: 2025, OriginalName: " ", Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAttachmentService_InsertFailureRemovesBlob(t *testing.T) {
	repo := newStubAttachmentRepo()
	repo.insertErr = errors.New("mongo down")
	blobs := newMemBlobStore()
	svc := NewAttachmentService(repo, blobs, 1024, zerolog.Nop())

	_, err := svc.Upload(context.Background(), ports.UploadInput{
		IndicatorID: 3, Year: 2025, OriginalName: "a.txt", Content: strings.NewReader("hello"),
	})
	assert.Error(t, err)
	assert.Empty(t, blobs.blobs)
}

func TestAttachmentService_Delete(t *testing.T) {
	repo := newStubAttachmentRepo()
	blobs := newMemBlobStore()
	svc := NewAttachmentService(repo, blobs, 1024, zerolog.Nop())
	ctx := context.Background()

	a, err := svc.Upload(ctx, ports.UploadInput{IndicatorID: 3, Year: 2025, OriginalName: "a.txt", Content: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Empty(t, repo.items)
	assert.Empty(t, blobs.blobs)

	assert.ErrorIs(t, svc.Delete(ctx, a.ID), domain.ErrAttachmentNotFound)
}

func TestAttachmentService_SweepOrphans(t *testing.T) {
	repo := newStubAttachmentRepo()
	blobs := newMemBlobStore()
	svc := NewAttachmentService(repo, blobs, 1024, zerolog.Nop())
	ctx := context.Background()

	kept, err := svc.Upload(ctx, ports.UploadInput{IndicatorID: 3, Year: 2025, OriginalName: "a.txt", Content: strings.NewReader("x")})
	require.NoError(t, err)
	old := time.Now().Add(-2 * time.Hour)
	blobs.modTime[kept.StoredName] = old
	blobs.blobs["orphan.pdf"] = []byte("y")
	blobs.modTime["orphan.pdf"] = old
	blobs.blobs["fresh.pdf"] = []byte("z")
	blobs.modTime["fresh.pdf"] = time.Now()

	removed, err := svc.SweepOrphans(ctx, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.Contains(t, blobs.blobs, kept.StoredName)
	assert.Contains(t, blobs.blobs, "fresh.pdf", "recent uploads may still be in flight")
	assert.NotContains(t, blobs.blobs, "orphan.pdf")
}
