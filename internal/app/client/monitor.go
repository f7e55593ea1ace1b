package client

import (
	"context"
	"time"

	"golang.org/x/exp/slog"
)

// Monitor keeps the store's online flag current by probing the storage
// API on its own schedule. Probes are cheaper than full fetches, so the
// monitor ticks independently of the poller.
type Monitor struct {
	api      *apiClient
	store    *Store
	log      *slog.Logger
	interval time.Duration
	timeout  time.Duration

	// onChange fires only on an actual flag transition, never on every
	// probe. onOnline additionally fires on the offline-to-online edge
	// so the app can reconcile immediately instead of waiting for the
	// next poll tick.
	onChange func(online bool)
	onOnline func(ctx context.Context)
}

func NewMonitor(api *apiClient, store *Store, interval, timeout time.Duration, log *slog.Logger) *Monitor {
	return &Monitor{
		api:      api,
		store:    store,
		log:      log.With("component", "monitor"),
		interval: interval,
		timeout:  timeout,
	}
}

// ProbeOnce runs a single bounded probe and updates the shared flag.
// Timeouts and non-2xx responses both count as offline.
func (m *Monitor) ProbeOnce(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.api.Probe(probeCtx)
	online := err == nil
	if err != nil {
		m.log.Debug("probe failed", "error", err)
	}

	if m.store.SetOnline(online) {
		m.log.Info("connectivity changed", "online", online)
		if m.onChange != nil {
			m.onChange(online)
		}
		if online && m.onOnline != nil {
			m.onOnline(ctx)
		}
	}

	return online
}

// Run probes on the configured interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("monitor stopped")
			return
		case <-ticker.C:
			m.ProbeOnce(ctx)
		}
	}
}
