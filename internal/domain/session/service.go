package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"pricelist/internal/portal"
)

var ErrInvalidSession = errors.New("invalid session")

// Verifier is the slice of the portal client the service needs.
type Verifier interface {
	VerifySession(ctx context.Context, token string) (*portal.VerifyResult, error)
}

type Servicer interface {
	Validate(ctx context.Context, token string) (string, error)
}

// Service validates session tokens against the portal. Positive results
// are cached briefly so a polling client does not turn every request
// into a portal round-trip. Negative results are never cached: a token
// that failed once must fail again.
type Service struct {
	verifier Verifier
	log      *slog.Logger
	ttl      time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	username  string
	expiresAt time.Time
}

func NewService(verifier Verifier, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		verifier: verifier,
		log:      log.With("component", "session_service"),
		ttl:      ttl,
		cache:    make(map[string]cacheEntry),
	}
}

// Validate returns the username bound to the token, or ErrInvalidSession.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	key := cacheKey(token)

	s.mu.Lock()
	entry, ok := s.cache[key]
	s.mu.Unlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.username, nil
	}

	result, err := s.verifier.VerifySession(ctx, token)
	if err != nil {
		s.log.Error("session verification failed", "error", err)
		return "", ErrInvalidSession
	}
	if !result.Valid {
		s.log.Debug("portal declared session invalid", "message", result.Message)
		s.mu.Lock()
		delete(s.cache, key)
		s.mu.Unlock()
		return "", ErrInvalidSession
	}

	username := ""
	if result.Session != nil {
		username = result.Session.Username
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{username: username, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return username, nil
}

// Tokens are opaque secrets; only their hash is used as a map key.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
