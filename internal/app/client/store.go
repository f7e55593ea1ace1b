package client

import (
	"strings"
	"sync"

	"pricelist/internal/domain/price"
)

// Store owns the client's view of the remote collection plus the bits
// of UI state the projector needs. It replaces the pile of module-level
// globals the browser variants carried, so several independent clients
// can coexist in one process (and in tests).
//
// All access goes through the mutex; no method suspends while holding
// it, which keeps every state transition atomic with respect to the
// polling and mutation goroutines.
type Store struct {
	mu          sync.RWMutex
	prices      []price.Price
	fingerprint string
	online      bool
	brand       string
	search      string
}

func NewStore() *Store {
	return &Store{brand: AllBrands}
}

// Snapshot returns a copy of the collection.
func (s *Store) Snapshot() []price.Price {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]price.Price, len(s.prices))
	copy(out, s.prices)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prices)
}

// Replace swaps in a whole new collection and its fingerprint. Used by
// the poller; single-record changes go through the mutation methods.
func (s *Store) Replace(prices []price.Price, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = make([]price.Price, len(prices))
	copy(s.prices, prices)
	s.fingerprint = fingerprint
}

func (s *Store) Fingerprint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprint
}

// RefreshFingerprint recomputes the fingerprint from the current
// collection, so the next poll does not mistake our own reconciled
// write for an external change.
func (s *Store) RefreshFingerprint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprint = Fingerprint(s.prices)
}

func (s *Store) Get(id string) (price.Price, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.prices {
		if p.ID == id {
			return p, true
		}
	}
	return price.Price{}, false
}

// Add appends a record. The caller guarantees the id is not present.
func (s *Store) Add(p price.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = append(s.prices, p)
}

// Swap replaces the record currently stored under oldID with p. This is
// how a temp-id record becomes the server's authoritative version. It
// reports whether oldID was found; a poll may have dropped it meanwhile,
// in which case p is stored anyway so the confirmed record is not lost.
//
// A poll can also race the confirmation the other way and fetch p's
// durable id while oldID is still present; any record already carrying
// p's id is dropped so each id stays unique.
func (s *Store) Swap(oldID string, p price.Price) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, dup := -1, -1
	for i := range s.prices {
		switch s.prices[i].ID {
		case oldID:
			old = i
		case p.ID:
			dup = i
		}
	}

	if old >= 0 {
		s.prices[old] = p
		if dup >= 0 {
			s.prices = append(s.prices[:dup], s.prices[dup+1:]...)
		}
		return true
	}
	if dup >= 0 {
		s.prices[dup] = p
		return false
	}
	s.prices = append(s.prices, p)
	return false
}

// Remove deletes the record and returns it so a failed delete can be
// rolled back.
func (s *Store) Remove(id string) (price.Price, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.prices {
		if p.ID == id {
			s.prices = append(s.prices[:i], s.prices[i+1:]...)
			return p, true
		}
	}
	return price.Price{}, false
}

// HasCode reports whether any record other than excludeID already uses
// the code, case-insensitively.
func (s *Store) HasCode(code, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.prices {
		if p.ID != excludeID && strings.EqualFold(p.Code, code) {
			return true
		}
	}
	return false
}

// SetOnline updates the connectivity flag and reports whether the value
// actually changed, so callbacks stay edge-triggered.
func (s *Store) SetOnline(online bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.online == online {
		return false
	}
	s.online = online
	return true
}

func (s *Store) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

func (s *Store) SelectBrand(brand string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brand = brand
}

func (s *Store) SelectedBrand() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brand
}

func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

func (s *Store) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}
