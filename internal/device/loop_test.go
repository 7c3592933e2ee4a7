package device_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/device"
	navout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/adapter/out"
	navservice "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/service"
	navusecase "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/usecase"
	scaleout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/adapter/out"
	scaleservice "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/service"
	scaleusecase "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/usecase"
	sessionout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/adapter/out"
	sessionservice "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/service"
	sessionusecase "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/usecase"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/id"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/logging"
)

type fakeClock struct {
	seconds uint32
	millis  uint32
}

func (f *fakeClock) NowSeconds() uint32 { return f.seconds }

// advance moves both clock faces together.
func (f *fakeClock) advance(millis uint32) {
	f.millis += millis
	f.seconds = f.millis / 1000
}

type rig struct {
	loop    *device.Loop
	buttons *device.SimButtons
	source  *scaleout.SimWeightSource
	clk     *fakeClock
}

// tick runs one loop tick, advancing the clock first so consecutive calls
// never share a timestamp.
func (r *rig) tick(ctx context.Context, millis uint32) {
	r.clk.advance(millis)
	r.loop.Tick(ctx)
}

// holdC scripts a full three-second press of button C.
func (r *rig) holdC(ctx context.Context) {
	r.buttons.Set(false, false, true)
	for i := 0; i < 7; i++ {
		r.tick(ctx, 500)
	}
	r.buttons.Set(false, false, false)
	r.tick(ctx, 100)
}

func newRig(t *testing.T) *rig {
	t.Helper()
	dir := t.TempDir()
	clk := &fakeClock{}
	log := logging.Discard()

	store := sessionout.NewFileSessionStore(filepath.Join(dir, "state.json"))
	projector, err := sessionout.NewSQLiteRecordProjector(filepath.Join(dir, "dryscale.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	engine := sessionservice.NewEngine(clk, id.RandomHex{}, store, 60, 86400, log)
	engine.Recover(context.Background())
	sessions := sessionusecase.NewInteractor(engine, store, projector)

	source := scaleout.NewSimWeightSource()
	scaleSvc := scaleservice.NewScaleService(source, scaleout.NewFileSettingsStore(filepath.Join(dir, "scale.json")), log)
	scaleSvc.Recover(context.Background())
	scale := scaleusecase.NewInteractor(scaleSvc)

	machine := navservice.NewMachine(
		navout.NewSessionControlAdapter(sessions),
		navout.NewScaleControlAdapter(scale),
		200, 3000, 40.0, log,
	)
	nav := navusecase.NewInteractor(machine)
	nav.Reset(context.Background())

	buttons := device.NewSimButtons()
	loop := device.NewLoop(buttons, nav, sessions, scale, engine, func() uint32 { return clk.millis }, device.Config{
		WeightMillis:  500,
		MessageMillis: 2000,
	}, log)
	return &rig{loop: loop, buttons: buttons, source: source, clk: clk}
}

func TestScriptedHoldStartsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRig(t)
	r.source.SetWeight(1000)
	r.tick(ctx, 600) // prime the weight reading

	r.holdC(ctx)

	snap := r.loop.Snapshot(ctx)
	if snap.Nav.Mode != "drying" || !snap.Status.Active {
		t.Fatalf("hold did not start a session: %+v", snap.Nav)
	}
	if snap.Status.InitialWeight != 1000 {
		t.Fatalf("initial weight %.1f", snap.Status.InitialWeight)
	}
	if snap.Message != "Session started" {
		t.Fatalf("message %q", snap.Message)
	}
}

func TestShortPressOnCDoesNotStartSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRig(t)
	r.source.SetWeight(800)
	r.tick(ctx, 600)

	r.buttons.Set(false, false, true)
	r.tick(ctx, 300)
	r.buttons.Set(false, false, false)
	r.tick(ctx, 300)

	if snap := r.loop.Snapshot(ctx); snap.Status.Active {
		t.Fatal("short press started a session")
	}
}

func TestAutoAdvanceAppendsDailyRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRig(t)
	r.source.SetWeight(1000)
	r.tick(ctx, 600)
	r.holdC(ctx)

	r.source.SetWeight(950)
	r.clk.advance(86400 * 1000)
	r.loop.Tick(ctx)

	snap := r.loop.Snapshot(ctx)
	if snap.Status.RecordCount != 2 || snap.Status.CurrentDay != 3 {
		t.Fatalf("auto-advance did not append: %+v", snap.Status)
	}
	if snap.Status.CurrentLossPercent != 5.0 {
		t.Fatalf("loss %.2f", snap.Status.CurrentLossPercent)
	}
	if snap.Message != "Day 2 / Loss 5.0%" {
		t.Fatalf("message %q", snap.Message)
	}
}

func TestAutoAdvanceWaitsForReadableWeight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRig(t)
	r.source.SetWeight(1000)
	r.tick(ctx, 600)
	r.holdC(ctx)

	r.source.SetReady(false)
	r.clk.advance(86400 * 1000)
	r.loop.Tick(ctx)
	r.tick(ctx, 600) // refresh the cached reading to NaN
	if snap := r.loop.Snapshot(ctx); snap.Status.RecordCount != 1 {
		t.Fatalf("recorded a NaN observation: %+v", snap.Status)
	}

	// Once the sensor is back the overdue day is picked up.
	r.source.SetReady(true)
	r.source.SetWeight(940)
	r.tick(ctx, 600)
	r.tick(ctx, 100)
	if snap := r.loop.Snapshot(ctx); snap.Status.RecordCount != 2 {
		t.Fatalf("overdue day not recorded: %+v", snap.Status)
	}
}

func TestMessageExpiresAfterConfiguredWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRig(t)
	r.loop.Press(ctx, "A", false)
	if snap := r.loop.Snapshot(ctx); snap.Message != "Tared" {
		t.Fatalf("message %q", snap.Message)
	}
	r.tick(ctx, 1500)
	if snap := r.loop.Snapshot(ctx); snap.Message == "" {
		t.Fatal("message expired early")
	}
	r.tick(ctx, 600)
	if snap := r.loop.Snapshot(ctx); snap.Message != "" {
		t.Fatalf("message still shown: %q", snap.Message)
	}
}

func TestWeightReadCadence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newRig(t)
	r.source.SetWeight(200)
	r.tick(ctx, 600)
	r.source.SetWeight(300)
	r.tick(ctx, 100) // within the 500ms cadence
	if snap := r.loop.Snapshot(ctx); snap.Reading.RawGrams != 200 {
		t.Fatalf("reading refreshed too early: %.1f", snap.Reading.RawGrams)
	}
	r.tick(ctx, 500)
	if snap := r.loop.Snapshot(ctx); snap.Reading.RawGrams != 300 {
		t.Fatalf("reading not refreshed: %.1f", snap.Reading.RawGrams)
	}
}
