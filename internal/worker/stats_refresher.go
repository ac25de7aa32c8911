package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/observability"
)

// StatsSource recomputes and stores a dashboard snapshot.
type StatsSource interface {
	Refresh(ctx context.Context) (domain.DashboardStats, error)
}

// StatsRefresher recomputes the dashboard snapshot on a fixed interval.
type StatsRefresher struct {
	source   StatsSource
	interval time.Duration
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewStatsRefresher builds a refresher. Non-positive intervals fall back to ten seconds.
func NewStatsRefresher(source StatsSource, interval time.Duration, logger *zap.Logger, metrics *observability.Metrics) *StatsRefresher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsRefresher{source: source, interval: interval, logger: logger, metrics: metrics}
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (r *StatsRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("stats refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *StatsRefresher) refresh(ctx context.Context) {
	stats, err := r.source.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.metrics.RecordStatsRefresh("error")
		r.logger.Warn("stats refresh failed", zap.Error(err))
		return
	}
	r.metrics.RecordStatsRefresh("ok")
	r.logger.Debug("stats refreshed",
		zap.Int("active_donors", stats.ActiveDonors),
		zap.Int("pending_requests", stats.PendingRequests),
		zap.Int("critical_alerts", stats.CriticalAlerts))
}
