package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const reportDateLayout = "2006-01-02"

type dashboardService struct {
	gw    ports.StatsGateway
	cache ports.Cache
	log   zerolog.Logger
}

// NewDashboardService returns a DashboardService implementation.
func NewDashboardService(gw ports.StatsGateway, cache ports.Cache, log zerolog.Logger) ports.DashboardService {
	return &dashboardService{gw: gw, cache: cache, log: log}
}

func (s *dashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if found, err := s.cache.Get(ctx, ports.CacheKeyDashboard, &stats); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache read failed")
	} else if found {
		return &stats, nil
	}

	fresh, err := s.gw.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	if err := s.cache.Set(ctx, ports.CacheKeyDashboard, fresh); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache write failed")
	}
	return fresh, nil
}

// Report returns activity between from and to (inclusive, YYYY-MM-DD). Either
// bound may be empty.
func (s *dashboardService) Report(ctx context.Context, from, to string) (*domain.Report, error) {
	var fromT, toT time.Time
	var err error
	if from != "" {
		if fromT, err = time.Parse(reportDateLayout, from); err != nil {
			return nil, domain.Invalid("from must be a YYYY-MM-DD date")
		}
	}
	if to != "" {
		if toT, err = time.Parse(reportDateLayout, to); err != nil {
			return nil, domain.Invalid("to must be a YYYY-MM-DD date")
		}
	}
	if from != "" && to != "" && toT.Before(fromT) {
		return nil, domain.Invalid("to must not be before from")
	}

	rep, err := s.gw.Report(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return rep, nil
}
