package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	out "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/adapter/out"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
	sessionin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/in"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/service"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/usecase"
	apperrors "github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/errors"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/id"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/logging"
)

type fakeClock struct {
	now uint32
}

func (f *fakeClock) NowSeconds() uint32 { return f.now }

func newStack(t *testing.T, clk *fakeClock) sessionin.Usecase {
	t.Helper()
	dir := t.TempDir()
	store := out.NewFileSessionStore(filepath.Join(dir, "state.json"))
	projector, err := out.NewSQLiteRecordProjector(filepath.Join(dir, "dryscale.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	engine := service.NewEngine(clk, id.RandomHex{}, store, 60, 86400, logging.Discard())
	engine.Recover(context.Background())
	return usecase.NewInteractor(engine, store, projector)
}

func TestFullLifecycleThroughProjection(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{}
	uc := newStack(t, clk)

	started, err := uc.Start(context.Background(), dto.StartInput{InitialWeight: 1000, TargetLossPercent: 40})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.SessionID == "" {
		t.Fatalf("session id must be set")
	}

	weights := []float64{950, 900, 850}
	for i, w := range weights {
		clk.now = uint32(86400 * (i + 1))
		if _, err := uc.RecordWeight(context.Background(), w); err != nil {
			t.Fatalf("record %v: %v", w, err)
		}
	}

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Active || status.CurrentDay != 5 || status.RecordCount != 4 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.CurrentLossPercent < 14.99 || status.CurrentLossPercent > 15.01 {
		t.Fatalf("expected 15%% loss, got %.4f", status.CurrentLossPercent)
	}
	if status.DaysRemaining != 5 {
		t.Fatalf("expected 5 projected days, got %d", status.DaysRemaining)
	}

	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 projected records, got %d", len(history))
	}
	if history[0].Day != 1 || history[0].LossPercent != 0 || history[0].DayChange != 0 {
		t.Fatalf("day-1 projection wrong: %+v", history[0])
	}
	if history[3].DayChange != 50 {
		t.Fatalf("expected 50g change on last day, got %.2f", history[3].DayChange)
	}

	if err := uc.End(context.Background()); err != nil {
		t.Fatalf("end: %v", err)
	}
	status, _ = uc.Status(context.Background())
	if status.Active {
		t.Fatalf("session must be inactive after end")
	}
	if status.RecordCount != 4 {
		t.Fatalf("history retained after end, got %d", status.RecordCount)
	}
}

func TestStartValidationAndRestartReplacesProjection(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{}
	uc := newStack(t, clk)
	if _, err := uc.Start(context.Background(), dto.StartInput{InitialWeight: -5}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	if _, err := uc.Start(context.Background(), dto.StartInput{InitialWeight: 1000, TargetLossPercent: 40}); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := uc.RecordWeight(context.Background(), 900); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := uc.End(context.Background()); err != nil {
		t.Fatalf("end: %v", err)
	}

	if _, err := uc.Start(context.Background(), dto.StartInput{InitialWeight: 500, TargetLossPercent: 40}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Weight != 500 {
		t.Fatalf("projection must reflect only the new session: %+v", history)
	}
}

func TestDefaultTargetAppliedWhenUnset(t *testing.T) {
	t.Parallel()
	uc := newStack(t, &fakeClock{})
	started, err := uc.Start(context.Background(), dto.StartInput{InitialWeight: 750})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.TargetLoss != 40 {
		t.Fatalf("expected default target 40, got %.1f", started.TargetLoss)
	}
}

func TestRecordWithoutSessionAndWipe(t *testing.T) {
	t.Parallel()
	uc := newStack(t, &fakeClock{})
	if _, err := uc.RecordWeight(context.Background(), 900); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session, got %v", err)
	}
	if _, err := uc.Start(context.Background(), dto.StartInput{InitialWeight: 1000}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := uc.Wipe(context.Background()); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Active || status.RecordCount != 0 {
		t.Fatalf("wipe must reset to the inactive default: %+v", status)
	}
}

func TestHistoryWithNoSessionIsEmpty(t *testing.T) {
	t.Parallel()
	uc := newStack(t, &fakeClock{})
	history, err := uc.History(context.Background())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d records", len(history))
	}
}
