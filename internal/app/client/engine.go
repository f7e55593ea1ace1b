package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"pricelist/internal/domain/price"
)

// Engine applies create, update and delete operations optimistically:
// local state changes and the user sees feedback before any network
// round-trip, then a background reconciliation either confirms the
// change with the server's authoritative payload or rolls it back.
//
// There is no durable retry queue. A mutation applied while offline
// stays local until the next poll overwrites it; that is the accepted
// tradeoff, the server remains the durability authority.
type Engine struct {
	api      *apiClient
	store    *Store
	log      *slog.Logger
	notifier Notifier

	onChange       func()
	onUnauthorized func(message string)
	authorized     func() bool

	now func() time.Time
	wg  sync.WaitGroup
}

func NewEngine(api *apiClient, store *Store, notifier Notifier, log *slog.Logger) *Engine {
	return &Engine{
		api:      api,
		store:    store,
		log:      log.With("component", "engine"),
		notifier: notifier,
		now:      time.Now,
	}
}

// Wait blocks until all in-flight reconciliations finish. Used by the
// CLI before exiting and by tests.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Create validates, inserts a temp-id record synchronously and
// reconciles with the server in the background. The returned id is the
// temporary one; the server's id replaces it on confirmation.
func (e *Engine) Create(ctx context.Context, fields price.Fields) (string, error) {
	if err := e.checkSession(); err != nil {
		return "", err
	}

	fields.Normalize()
	if err := e.validate(fields, ""); err != nil {
		return "", err
	}

	tempID := nextTempID(e.now())
	e.store.Add(fields.Apply(tempID, e.now()))
	e.render()
	e.notifier.Success("record created")

	e.spawn(func() { e.reconcileCreate(ctx, tempID, fields) })
	return tempID, nil
}

func (e *Engine) reconcileCreate(ctx context.Context, tempID string, fields price.Fields) {
	if !e.store.Online() {
		e.log.Info("server offline, create kept local", "temp_id", tempID)
		e.notifier.Info("saved locally (server offline)")
		return
	}

	created, err := e.api.Create(ctx, fields)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			e.escalate()
			return
		}
		// roll back: the temp record never existed as far as the
		// server is concerned
		e.store.Remove(tempID)
		e.render()
		e.log.Error("create rejected by server", "temp_id", tempID, "error", err)
		e.notifier.Error(fmt.Sprintf("failed to save on server: %v", err))
		return
	}

	e.store.Swap(tempID, *created)
	e.store.RefreshFingerprint()
	e.render()
	e.log.Debug("create confirmed", "temp_id", tempID, "id", created.ID)
}

// Update validates, applies the new field values synchronously and
// reconciles in the background. On server rejection the pre-edit values
// are restored.
func (e *Engine) Update(ctx context.Context, id string, fields price.Fields) error {
	if err := e.checkSession(); err != nil {
		return err
	}

	previous, ok := e.store.Get(id)
	if !ok {
		return price.ErrNotFound
	}

	fields.Normalize()
	if err := e.validate(fields, id); err != nil {
		return err
	}

	e.store.Swap(id, fields.Apply(id, e.now()))
	e.render()
	e.notifier.Success("record updated")

	e.spawn(func() { e.reconcileUpdate(ctx, id, fields, previous) })
	return nil
}

func (e *Engine) reconcileUpdate(ctx context.Context, id string, fields price.Fields, previous price.Price) {
	if !e.store.Online() {
		e.log.Info("server offline, update kept local", "id", id)
		e.notifier.Info("saved locally (server offline)")
		return
	}

	updated, err := e.api.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			e.escalate()
			return
		}
		// restore the pre-edit snapshot so local state matches what
		// the server still holds
		e.store.Swap(id, previous)
		e.render()
		e.log.Error("update rejected by server", "id", id, "error", err)
		e.notifier.Error(fmt.Sprintf("failed to save on server: %v", err))
		return
	}

	e.store.Swap(id, *updated)
	e.store.RefreshFingerprint()
	e.render()
	e.log.Debug("update confirmed", "id", id)
}

// Delete removes the record synchronously and reconciles in the
// background, re-inserting it if the server refuses.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if err := e.checkSession(); err != nil {
		return err
	}

	removed, ok := e.store.Remove(id)
	if !ok {
		return price.ErrNotFound
	}
	e.render()
	e.notifier.Success("record deleted")

	e.spawn(func() { e.reconcileDelete(ctx, removed) })
	return nil
}

func (e *Engine) reconcileDelete(ctx context.Context, removed price.Price) {
	if !e.store.Online() {
		e.log.Info("server offline, deletion kept local", "id", removed.ID)
		e.notifier.Info("deletion pending (server offline)")
		return
	}

	// a record the server never saw needs no remote delete
	if IsTempID(removed.ID) {
		return
	}

	if err := e.api.Delete(ctx, removed.ID); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			e.escalate()
			return
		}
		// a poll may already have restored the record; Swap acts as
		// an upsert so the rollback cannot duplicate it
		e.store.Swap(removed.ID, removed)
		e.render()
		e.log.Error("delete rejected by server", "id", removed.ID, "error", err)
		e.notifier.Error("failed to delete on server")
		return
	}

	e.store.RefreshFingerprint()
	e.log.Debug("delete confirmed", "id", removed.ID)
}

// validate runs the field rules plus the client-side duplicate-code
// guard. The guard is UX only; the server enforces uniqueness again.
func (e *Engine) validate(fields price.Fields, excludeID string) error {
	if err := fields.Validate(); err != nil {
		e.notifier.Error(err.Error())
		return err
	}
	if e.store.HasCode(fields.Code, excludeID) {
		e.notifier.Error(fmt.Sprintf("code %q is already registered", fields.Code))
		return price.ErrDuplicateCode
	}
	return nil
}

func (e *Engine) checkSession() error {
	if e.authorized != nil && !e.authorized() {
		return ErrSessionInvalid
	}
	return nil
}

func (e *Engine) escalate() {
	if e.onUnauthorized != nil {
		e.onUnauthorized("your session has expired")
	}
}

func (e *Engine) render() {
	if e.onChange != nil {
		e.onChange()
	}
}

func (e *Engine) spawn(fn func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn()
	}()
}
