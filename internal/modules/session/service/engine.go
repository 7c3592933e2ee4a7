package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/domain"
	sessionout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/out"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/clock"
	apperrors "github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/errors"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/id"
)

// Engine owns the in-memory session and is its only mutator. Every
// successful mutation persists synchronously before returning; a save
// failure is surfaced but never rolls back the in-memory state, which stays
// the source of truth for the rest of the process's life.
//
// The device loop is the only mutating caller, but the web monitor and the
// TUI read snapshots from their own goroutines, so reads take the lock too:
// a reader must never observe a half-appended record.
type Engine struct {
	mu              sync.RWMutex
	clock           clock.Clock
	ids             id.Generator
	store           sessionout.SessionStore
	log             hclog.Logger
	capacity        int
	autoAdvanceSecs uint32
	session         domain.Session
}

func NewEngine(clk clock.Clock, ids id.Generator, store sessionout.SessionStore, capacity int, autoAdvanceSecs uint32, log hclog.Logger) *Engine {
	if capacity <= 0 {
		capacity = domain.DefaultRecordCapacity
	}
	if autoAdvanceSecs == 0 {
		autoAdvanceSecs = 86400
	}
	return &Engine{
		clock:           clk,
		ids:             ids,
		store:           store,
		log:             log.Named("drying"),
		capacity:        capacity,
		autoAdvanceSecs: autoAdvanceSecs,
		session:         domain.NewInactive(capacity),
	}
}

// Recover adopts a prior session verbatim, or degrades to a default
// inactive one when nothing was saved or the file is corrupt. It never
// starts a session on its own: that needs an operator-supplied weight.
func (e *Engine) Recover(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	loaded, err := e.store.Load(ctx)
	switch {
	case err == nil:
		e.session = loaded
		if e.session.Capacity <= 0 {
			e.session.Capacity = e.capacity
		}
		if loaded.IsActive {
			e.log.Info("active session loaded", "day", loaded.CurrentDay, "loss_pct", loaded.CurrentLossPercent())
		} else {
			e.log.Info("inactive session loaded")
		}
	case errors.Is(err, apperrors.ErrNoPriorSession):
		e.log.Info("no previous session found")
		e.session = domain.NewInactive(e.capacity)
	default:
		e.log.Warn("failed to load session, starting fresh", "error", err)
		e.session = domain.NewInactive(e.capacity)
	}
}

// StartNewSession overwrites any prior session state. This is the single
// allowed reset path.
func (e *Engine) StartNewSession(ctx context.Context, initialWeight, targetLossPercent float64) error {
	if !finite(initialWeight) || initialWeight <= 0 {
		e.log.Error("invalid initial weight", "weight", initialWeight)
		return apperrors.ErrInvalidInput
	}
	if targetLossPercent <= 0 {
		targetLossPercent = domain.DefaultTargetLossPercent
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Start(e.ids.New(), initialWeight, targetLossPercent, e.clock.NowSeconds())
	e.log.Info("new session started", "initial_g", initialWeight, "target_pct", targetLossPercent)
	return e.persist(ctx)
}

// RecordDailyWeight appends one observation and advances the day. A
// non-finite weight is no observation and must never reach the session:
// a NaN record cannot be marshalled, which would break every later save.
func (e *Engine) RecordDailyWeight(ctx context.Context, weight float64) (domain.DailyRecord, error) {
	if !finite(weight) {
		e.log.Warn("non-finite weight rejected", "weight", weight)
		return domain.DailyRecord{}, apperrors.ErrInvalidInput
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.session.IsActive {
		e.log.Warn("no active session")
		return domain.DailyRecord{}, apperrors.ErrNoActiveSession
	}
	record, ok := e.session.Append(weight, e.clock.NowSeconds())
	if !ok {
		e.log.Warn("max records reached", "capacity", e.session.Capacity)
		return domain.DailyRecord{}, apperrors.ErrCapacityExceeded
	}
	e.log.Info("day recorded", "day", record.Day, "weight_g", record.Weight, "loss_pct", record.LossPercent, "change_g", record.DayChange)
	return record, e.persist(ctx)
}

// EndSession is a no-op when already inactive. Record history is retained
// for read access until the next StartNewSession.
func (e *Engine) EndSession(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.session.IsActive {
		return nil
	}
	e.session.End()
	e.log.Info("session ended")
	return e.persist(ctx)
}

func (e *Engine) persist(ctx context.Context) error {
	if err := e.store.Save(ctx, e.session.Clone()); err != nil {
		e.log.Error("session save failed", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DueForDailyRecord reports whether the auto-advance interval elapsed since
// the last record.
func (e *Engine) DueForDailyRecord() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.DueForDailyRecord(e.clock.NowSeconds(), e.autoAdvanceSecs)
}

func (e *Engine) IsActive() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.IsActive
}

func (e *Engine) RecordCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.RecordCount()
}

// GetRecord returns a copy; false for out-of-range indices.
func (e *Engine) GetRecord(index int) (domain.DailyRecord, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	record := e.session.Record(index)
	if record == nil {
		return domain.DailyRecord{}, false
	}
	return *record, true
}

func (e *Engine) GetLastRecord() (domain.DailyRecord, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	record := e.session.LastRecord()
	if record == nil {
		return domain.DailyRecord{}, false
	}
	return *record, true
}

func (e *Engine) CurrentLossPercent() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.CurrentLossPercent()
}

func (e *Engine) RemainingLossPercent() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.RemainingLossPercent()
}

func (e *Engine) IsReady() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.IsReady()
}

func (e *Engine) EstimateDaysRemaining() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.EstimateDaysRemaining()
}

func (e *Engine) AverageDailyLoss(lastN int) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.AverageDailyLoss(lastN)
}

// Snapshot returns a deep copy for presentation readers.
func (e *Engine) Snapshot() domain.Session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.Clone()
}
