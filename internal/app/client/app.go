package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"pricelist/internal/app/client/config"
	"pricelist/internal/domain/price"
	"pricelist/internal/portal"
)

// App assembles the client core: shared store, API client, session
// guard, connectivity monitor, poller and mutation engine, with every
// callback wired so the pieces stay decoupled from each other.
type App struct {
	cfg      *config.Config
	log      *slog.Logger
	renderer Renderer
	notifier Notifier

	store   *Store
	api     *apiClient
	portal  *portal.Client
	guard   *Guard
	monitor *Monitor
	poller  *Poller
	engine  *Engine
	cache   *SnapshotCache

	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(cfg *config.Config, renderer Renderer, notifier Notifier, log *slog.Logger) *App {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	a := &App{
		cfg:      cfg,
		log:      log.With("component", "app"),
		renderer: renderer,
		notifier: notifier,
		store:    NewStore(),
	}

	a.api = newAPIClient(cfg.APIURL, log)
	a.portal = portal.NewClient(cfg.PortalURL, log)

	cache, err := NewSnapshotCache(cfg.CachePath)
	if err != nil {
		// the cache only feeds the first paint, the app works without it
		a.log.Warn("snapshot cache unavailable", "error", err)
	} else {
		a.cache = cache
	}

	a.guard = NewGuard(a.portal, a.api, cfg.TokenPath,
		time.Duration(cfg.SessionCheckSec)*time.Second, log)
	a.monitor = NewMonitor(a.api, a.store,
		time.Duration(cfg.ProbeIntervalSec)*time.Second,
		time.Duration(cfg.ProbeTimeoutSec)*time.Second, log)
	a.poller = NewPoller(a.api, a.store, a.cache,
		time.Duration(cfg.PollIntervalSec)*time.Second,
		time.Duration(cfg.RefreshIntervalSec)*time.Second, log)
	a.engine = NewEngine(a.api, a.store, notifier, log)

	a.guard.onInvalid = a.lockout
	a.monitor.onChange = func(bool) { a.render() }
	a.monitor.onOnline = func(ctx context.Context) { a.poller.PollOnce(ctx) }
	a.poller.onChange = a.render
	a.poller.onUnauthorized = a.guard.Invalidate
	a.engine.onChange = a.render
	a.engine.onUnauthorized = a.guard.Invalidate
	a.engine.authorized = a.guard.Authenticated

	return a
}

// Start verifies the session and brings up initial state: the cached
// snapshot for an immediate first paint, then one probe and one poll so
// the user is not waiting on the first tick.
func (a *App) Start(ctx context.Context, explicitToken string) error {
	if err := a.guard.Startup(ctx, explicitToken); err != nil {
		return err
	}

	if a.cache != nil {
		cached, fingerprint, err := a.cache.Load()
		if err != nil {
			a.log.Warn("could not load cached snapshot", "error", err)
		} else if len(cached) > 0 {
			a.store.Replace(cached, fingerprint)
			a.log.Debug("loaded cached snapshot", "records", len(cached))
		}
	}
	a.render()

	if a.monitor.ProbeOnce(ctx) {
		a.poller.PollOnce(ctx)
	}
	return nil
}

// Run drives the periodic loops until ctx is done or the session is
// invalidated, then waits for in-flight reconciliations.
func (a *App) Run(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()
	defer cancel()

	var wg sync.WaitGroup
	for _, loop := range []func(context.Context){
		a.monitor.Run,
		a.poller.Run,
		a.poller.RunRefresh,
		a.guard.Run,
	} {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(runCtx)
		}(loop)
	}

	<-runCtx.Done()
	wg.Wait()
	a.engine.Wait()
}

// lockout is the session guard's invalid callback. It surfaces the
// denial and stops the periodic loops.
func (a *App) lockout(message string) {
	a.notifier.Error(message)
	a.render()

	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) Create(ctx context.Context, fields price.Fields) (string, error) {
	return a.engine.Create(ctx, fields)
}

func (a *App) Update(ctx context.Context, id string, fields price.Fields) error {
	return a.engine.Update(ctx, id, fields)
}

func (a *App) Delete(ctx context.Context, id string) error {
	return a.engine.Delete(ctx, id)
}

func (a *App) SelectBrand(brand string) {
	a.store.SelectBrand(brand)
	a.render()
}

func (a *App) Search(term string) {
	a.store.SetSearch(term)
	a.render()
}

// View projects current state for presentation without rendering it.
func (a *App) View() View {
	snapshot := a.store.Snapshot()
	brand := a.store.SelectedBrand()
	term := a.store.SearchTerm()

	return View{
		Prices:        Project(snapshot, brand, term),
		Brands:        Brands(snapshot),
		SelectedBrand: brand,
		SearchTerm:    term,
		Online:        a.store.Online(),
	}
}

func (a *App) Online() bool {
	return a.store.Online()
}

func (a *App) Authenticated() bool {
	return a.guard.Authenticated()
}

func (a *App) Username() string {
	return a.guard.Username()
}

// PortalURL points locked-out users back at the login page.
func (a *App) PortalURL() string {
	return a.portal.BaseURL()
}

// Wait blocks until in-flight mutation reconciliations settle. One-shot
// commands call it before exiting.
func (a *App) Wait() {
	a.engine.Wait()
}

// SetRenderer swaps the presentation target. The watch command attaches
// its screen renderer here after session startup.
func (a *App) SetRenderer(r Renderer) {
	if r == nil {
		r = NopRenderer{}
	}
	a.mu.Lock()
	a.renderer = r
	a.mu.Unlock()
}

func (a *App) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

func (a *App) render() {
	a.mu.Lock()
	r := a.renderer
	a.mu.Unlock()
	r.Render(a.View())
}
