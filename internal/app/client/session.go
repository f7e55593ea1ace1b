package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"pricelist/internal/portal"
)

var (
	ErrNoSession      = errors.New("no session token available")
	ErrSessionInvalid = errors.New("session is not valid")
)

// GuardState tracks where the client stands with the portal.
type GuardState int

const (
	StateUnauthenticated GuardState = iota
	StateValidating
	StateAuthenticated
	StateInvalid
)

func (s GuardState) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateInvalid:
		return "invalid"
	default:
		return "unauthenticated"
	}
}

// Guard owns the session lifecycle: it resolves the token at startup,
// verifies it against the portal, rechecks it periodically and locks
// the application out when the portal declares the session dead.
type Guard struct {
	portal    *portal.Client
	api       *apiClient
	log       *slog.Logger
	tokenPath string
	interval  time.Duration

	// onInvalid fires once when the session transitions to invalid.
	// The app uses it to cancel its run context.
	onInvalid func(message string)

	mu       sync.Mutex
	state    GuardState
	token    string
	username string
}

func NewGuard(portalClient *portal.Client, api *apiClient, tokenPath string, interval time.Duration, log *slog.Logger) *Guard {
	return &Guard{
		portal:    portalClient,
		api:       api,
		log:       log.With("component", "session_guard"),
		tokenPath: tokenPath,
		interval:  interval,
		state:     StateUnauthenticated,
	}
}

// Startup resolves the session token and verifies it with the portal.
// An explicitly supplied token wins over the persisted one and is saved
// for later runs. Any verification failure at startup, transport
// included, denies access: the client never starts on an unverified
// session.
func (g *Guard) Startup(ctx context.Context, explicitToken string) error {
	token := strings.TrimSpace(explicitToken)
	if token != "" {
		if err := g.saveToken(token); err != nil {
			g.log.Warn("could not persist session token", "error", err)
		}
	} else {
		var err error
		token, err = g.loadToken()
		if err != nil {
			g.setState(StateUnauthenticated)
			return ErrNoSession
		}
	}

	g.setState(StateValidating)

	result, err := g.portal.VerifySession(ctx, token)
	if err != nil {
		g.invalidate("could not verify session with the portal")
		return fmt.Errorf("verifying session: %w", err)
	}
	if !result.Valid {
		g.invalidate(result.Message)
		return ErrSessionInvalid
	}

	g.mu.Lock()
	g.state = StateAuthenticated
	g.token = token
	if result.Session != nil {
		g.username = result.Session.Username
	}
	g.mu.Unlock()

	g.api.SetToken(token)
	g.log.Info("session verified", "username", g.Username())
	return nil
}

// RecheckOnce re-verifies the current session. A transport or portal
// error keeps the session alive, only an authoritative valid=false
// answer invalidates it. Transient portal outages must not log the
// user out mid-session.
func (g *Guard) RecheckOnce(ctx context.Context) {
	g.mu.Lock()
	token := g.token
	state := g.state
	g.mu.Unlock()

	if state != StateAuthenticated || token == "" {
		return
	}

	result, err := g.portal.VerifySession(ctx, token)
	if err != nil {
		g.log.Debug("session recheck failed, keeping session", "error", err)
		return
	}
	if !result.Valid {
		g.log.Info("portal invalidated the session")
		g.invalidate("your session has expired")
	}
}

// Invalidate locks the session out: the persisted token is discarded,
// the API client stops sending it and the onInvalid callback fires.
func (g *Guard) Invalidate(message string) {
	g.invalidate(message)
}

func (g *Guard) invalidate(message string) {
	g.mu.Lock()
	already := g.state == StateInvalid
	g.state = StateInvalid
	g.token = ""
	g.username = ""
	g.mu.Unlock()

	if already {
		return
	}

	g.api.SetToken("")
	if err := os.Remove(g.tokenPath); err != nil && !os.IsNotExist(err) {
		g.log.Warn("could not remove session token file", "error", err)
	}
	if message == "" {
		message = "access denied"
	}
	g.log.Info("session invalidated", "message", message)
	if g.onInvalid != nil {
		g.onInvalid(message)
	}
}

func (g *Guard) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == StateAuthenticated
}

func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guard) Username() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.username
}

// Run rechecks the session on a fixed interval until ctx is done.
func (g *Guard) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.RecheckOnce(ctx)
		}
	}
}

func (g *Guard) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(g.tokenPath), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(g.tokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

func (g *Guard) loadToken() (string, error) {
	data, err := os.ReadFile(g.tokenPath)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

func (g *Guard) setState(state GuardState) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
}
