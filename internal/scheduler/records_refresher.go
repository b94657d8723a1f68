package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// Counter reports the current size of the catalog.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Gauge receives the refreshed size.
type Gauge interface {
	ObserveRecords(n int)
}

// RecordsRefresher periodically re-reads the catalog size so the records gauge
// stays correct when another process writes to a shared backend.
type RecordsRefresher struct {
	counter  Counter
	gauge    Gauge
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewRecordsRefresher(counter Counter, gauge Gauge, log logger.Logger, interval time.Duration) *RecordsRefresher {
	return &RecordsRefresher{
		counter:  counter,
		gauge:    gauge,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start refreshes once, then every interval until Stop or ctx is done.
// A failed initial refresh is logged and the loop still starts.
// A non-positive interval only performs the initial refresh.
func (r *RecordsRefresher) Start(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn("initial record count failed, retrying on next tick",
			logger.Error(err))
	}
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.Refresh(ctx); err != nil {
					r.logger.Warn("failed to refresh record count",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the periodic refresh. It is safe to call more than once.
func (r *RecordsRefresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Refresh counts the catalog and publishes the result.
func (r *RecordsRefresher) Refresh(ctx context.Context) error {
	n, err := r.counter.Count(ctx)
	if err != nil {
		return err
	}
	r.gauge.ObserveRecords(n)
	r.logger.Debug("record count refreshed", logger.Int("count", n))
	return nil
}
