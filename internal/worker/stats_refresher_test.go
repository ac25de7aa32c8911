package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingSource struct {
	calls atomic.Int32
	err   error
}

func (c *countingSource) Refresh(context.Context) (domain.DashboardStats, error) {
	c.calls.Add(1)
	return domain.DashboardStats{ActiveDonors: 2}, c.err
}

func TestStatsRefresherRefreshesOnEveryTick(t *testing.T) {
	source := &countingSource{}
	metrics := observability.NewMetrics()
	refresher := NewStatsRefresher(source, 5*time.Millisecond, nil, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return source.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.StatsRefreshes.WithLabelValues("ok")), float64(3))
}

func TestStatsRefresherRecordsFailures(t *testing.T) {
	source := &countingSource{err: errors.New("store unavailable")}
	metrics := observability.NewMetrics()
	refresher := NewStatsRefresher(source, time.Hour, nil, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.StatsRefreshes.WithLabelValues("error")) == 1
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, int32(1), source.calls.Load())
}

func TestStatsRefresherDefaultsInterval(t *testing.T) {
	refresher := NewStatsRefresher(&countingSource{}, 0, nil, nil)
	assert.Equal(t, 10*time.Second, refresher.interval)
}
