package worker

import (
	"context"
	"log/slog"
	"time"

	"littletreat/internal/metrics"
	"littletreat/internal/service"
)

// SessionSweeper periodically evicts idle cart sessions.
type SessionSweeper struct {
	sessions *service.CartSessions
	metrics  *metrics.Metrics
	interval time.Duration
	idle     time.Duration
}

func NewSessionSweeper(sessions *service.CartSessions, m *metrics.Metrics, interval, idle time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		metrics:  m,
		interval: interval,
		idle:     idle,
	}
}

func (w *SessionSweeper) Start(ctx context.Context) {
	slog.Info("starting session sweeper", "interval", w.interval, "idle", w.idle)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SessionSweeper) sweep() {
	if removed := w.sessions.Sweep(w.idle); removed > 0 {
		slog.Info("evicted idle cart sessions", "count", removed)
	}
	w.metrics.SetSessions(w.sessions.Len())
}
