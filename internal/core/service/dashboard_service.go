package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type DashboardService struct {
	indicators ports.IndicatorRepository
	tracking   ports.TrackingRepository
	catalogs   ports.CatalogRepository
	logger     zerolog.Logger
}

func NewDashboardService(
	indicators ports.IndicatorRepository,
	tracking ports.TrackingRepository,
	catalogs ports.CatalogRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{indicators: indicators, tracking: tracking, catalogs: catalogs, logger: logger}
}

// Summary aggregates indicators and the tracking records of a year.
func (s *DashboardService) Summary(ctx context.Context, year int) (*domain.Dashboard, error) {
	var (
		indicators []domain.Indicator
		records    []domain.TrackingRecord
		sectors    []domain.CatalogEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		indicators, err = s.indicators.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.tracking.ListByYear(gctx, year)
		return err
	})
	g.Go(func() (err error) {
		sectors, err = s.catalogs.List(gctx, domain.CatalogSectors)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &domain.Dashboard{
		Year:               year,
		Indicators:         len(indicators),
		TrackingRecords:    len(records),
		IndicatorsBySector: []domain.SectorCount{},
	}

	sectorNames := make(map[int64]string, len(sectors))
	for _, sec := range sectors {
		sectorNames[sec.ID] = sec.Name
	}
	counts := make(map[int64]int)
	for _, ind := range indicators {
		if ind.Status.Active() {
			d.ActiveIndicators++
		}
		var sectorID int64
		if ind.SectorID != nil {
			sectorID = *ind.SectorID
		}
		counts[sectorID]++
	}
	for id, n := range counts {
		name, ok := sectorNames[id]
		if !ok {
			name = noValue
		}
		d.IndicatorsBySector = append(d.IndicatorsBySector, domain.SectorCount{SectorID: id, Sector: name, Count: n})
	}
	sort.Slice(d.IndicatorsBySector, func(i, j int) bool {
		a, b := d.IndicatorsBySector[i], d.IndicatorsBySector[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.SectorID < b.SectorID
	})

	for i := range records {
		rec := &records[i]
		if rec.Programmed != nil {
			d.ProgrammedTotal += *rec.Programmed
		}
		for m, mv := range rec.Months {
			if mv.Executed != nil {
				d.ExecutedByMonth[m] += *mv.Executed
			}
		}
		d.ExecutedTotal += rec.ExecutedTotal()
	}
	if d.ProgrammedTotal > 0 {
		d.ExecutionRatio = d.ExecutedTotal / d.ProgrammedTotal
	}
	return d, nil
}
