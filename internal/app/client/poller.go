package client

import (
	"context"
	"errors"
	"time"

	"golang.org/x/exp/slog"

	"pricelist/internal/domain/price"
)

// Poller re-fetches the full collection on a fixed interval while
// online, replacing local state only when the fingerprint says the data
// actually changed. Polling misses are silent: surfacing an error every
// few seconds while a server reboots would just be noise.
type Poller struct {
	api      *apiClient
	store    *Store
	cache    *SnapshotCache
	log      *slog.Logger
	interval time.Duration
	refresh  time.Duration

	// onChange re-renders; onUnauthorized escalates a 401 to the
	// session guard.
	onChange       func()
	onUnauthorized func(message string)
}

func NewPoller(api *apiClient, store *Store, cache *SnapshotCache, interval, refresh time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		api:      api,
		store:    store,
		cache:    cache,
		log:      log.With("component", "poller"),
		interval: interval,
		refresh:  refresh,
	}
}

// PollOnce fetches the collection and reconciles local state. It is a
// no-op while offline.
func (p *Poller) PollOnce(ctx context.Context) error {
	if !p.store.Online() {
		return nil
	}

	fetched, err := p.api.List(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			p.log.Warn("poll rejected, session invalid")
			if p.onUnauthorized != nil {
				p.onUnauthorized("your session has expired")
			}
			return err
		}
		// transient miss, the next tick will try again
		p.log.Debug("poll failed", "error", err)
		return err
	}

	fingerprint := Fingerprint(fetched)
	if fingerprint == p.store.Fingerprint() {
		return nil
	}

	// A mutation may be between its optimistic apply and its server
	// confirmation; the server does not know its temp id yet. Carry
	// those records over instead of dropping them with the wholesale
	// replace.
	merged := mergePending(p.store.Snapshot(), fetched)
	p.store.Replace(merged, fingerprint)

	if p.cache != nil {
		if err := p.cache.Save(fetched, fingerprint); err != nil {
			p.log.Warn("failed to persist snapshot", "error", err)
		}
	}

	p.log.Debug("collection updated", "records", len(merged))
	if p.onChange != nil {
		p.onChange()
	}
	return nil
}

func mergePending(local, fetched []price.Price) []price.Price {
	present := make(map[string]struct{}, len(fetched))
	for _, p := range fetched {
		present[p.ID] = struct{}{}
	}

	merged := fetched
	for _, p := range local {
		if !IsTempID(p.ID) {
			continue
		}
		if _, ok := present[p.ID]; !ok {
			merged = append(merged, p)
		}
	}
	return merged
}

// Run polls on the configured interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Debug("poller stopped")
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// RunRefresh re-renders on a slow timer without fetching anything, so
// relative-time strings like "2min ago" stay current.
func (p *Poller) RunRefresh(ctx context.Context) {
	ticker := time.NewTicker(p.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.store.Len() > 0 && p.onChange != nil {
				p.onChange()
			}
		}
	}
}
