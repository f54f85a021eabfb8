package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type stubAttachments struct {
	ports.AttachmentService
	minAge time.Duration
	calls  int
	err    error
}

func (s *stubAttachments) SweepOrphans(_ context.Context, minAge time.Duration) (int, error) {
	s.calls++
	s.minAge = minAge
	return 0, s.err
}

func TestScheduler_StartRejectsBadSpec(t *testing.T) {
	s := New(&stubAttachments{}, time.Hour, zerolog.Nop())
	if err := s.Start("not a cron spec"); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}

func TestScheduler_SweepPassesMinAge(t *testing.T) {
	att := &stubAttachments{}
	s := New(att, 90*time.Minute, zerolog.Nop())

	s.sweepOrphans()
	att.err = errors.New("disk unavailable")
	s.sweepOrphans()

	if att.calls != 2 {
		t.Fatalf("expected 2 sweeps, got %d", att.calls)
	}
	if att.minAge != 90*time.Minute {
		t.Fatalf("unexpected min age: %v", att.minAge)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(&stubAttachments{}, time.Hour, zerolog.Nop())
	if err := s.Start("30 2 * * *"); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
}
