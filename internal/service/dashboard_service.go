package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/lifematch-service/internal/cache"
	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/repository"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// DashboardService aggregates the headline counters shown on the dashboard.
type DashboardService struct {
	donors     repository.DonorRepository
	recipients repository.RecipientRepository
	matches    repository.MatchRepository
	cache      cache.StatsCache
	logger     *zap.Logger
	now        func() time.Time
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	DonorRepo     repository.DonorRepository
	RecipientRepo repository.RecipientRepository
	MatchRepo     repository.MatchRepository
	StatsCache    cache.StatsCache
	Logger        *zap.Logger
}

// NewDashboardService constructs the service. A nil cache computes on every call.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		donors:     deps.DonorRepo,
		recipients: deps.RecipientRepo,
		matches:    deps.MatchRepo,
		cache:      deps.StatsCache,
		logger:     logger,
		now:        time.Now,
	}
}

// Stats returns the cached snapshot when present, computing and caching it otherwise.
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		} else if ok {
			return *cached, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the snapshot from the repositories and stores it.
func (s *DashboardService) Refresh(ctx context.Context) (domain.DashboardStats, error) {
	stats, err := s.compute(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *DashboardService) compute(ctx context.Context) (domain.DashboardStats, error) {
	available := domain.DonorStatusAvailable
	active := domain.RecipientStatusActive
	critical := domain.UrgencyCritical
	matched := domain.MatchStatusMatched

	var stats domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.ActiveDonors, err = s.donors.Count(gctx, repository.DonorFilter{Status: &available})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalDonors, err = s.donors.Count(gctx, repository.DonorFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.PendingRequests, err = s.recipients.Count(gctx, repository.RecipientFilter{Status: &active})
		return err
	})
	g.Go(func() (err error) {
		stats.CriticalAlerts, err = s.recipients.Count(gctx, repository.RecipientFilter{Status: &active, Urgency: &critical})
		return err
	})
	g.Go(func() (err error) {
		stats.SuccessfulMatches, err = s.matches.Count(gctx, repository.MatchFilter{Status: &matched})
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, apperrors.MapError(err)
	}
	stats.GeneratedAt = s.now().UTC()
	return stats, nil
}
