package usecase_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	out "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/adapter/out"
	scalein "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/in"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/service"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/usecase"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/logging"
)

func newScale(t *testing.T) (scalein.Usecase, *out.SimWeightSource, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scale.json")
	source := out.NewSimWeightSource()
	svc := service.NewScaleService(source, out.NewFileSettingsStore(path), logging.Discard())
	svc.Recover(context.Background())
	return usecase.NewInteractor(svc), source, path
}

func TestReadingConvertsToSelectedUnit(t *testing.T) {
	t.Parallel()
	uc, source, _ := newScale(t)
	source.SetWeight(1000)
	reading := uc.Reading(context.Background())
	if reading.Unit != "g" || reading.Display != 1000 {
		t.Fatalf("default reading wrong: %+v", reading)
	}
	if _, err := uc.CycleUnit(context.Background()); err != nil {
		t.Fatalf("cycle unit: %v", err)
	}
	reading = uc.Reading(context.Background())
	if reading.Unit != "kg" || reading.Display != 1.0 || reading.Precision != 3 {
		t.Fatalf("kg reading wrong: %+v", reading)
	}
}

func TestNotReadySensorYieldsNaN(t *testing.T) {
	t.Parallel()
	uc, source, _ := newScale(t)
	source.SetReady(false)
	reading := uc.Reading(context.Background())
	if !math.IsNaN(reading.RawGrams) || !math.IsNaN(reading.Display) {
		t.Fatalf("expected NaN from a sensor that is not ready: %+v", reading)
	}
}

func TestTareZeroesTheReading(t *testing.T) {
	t.Parallel()
	uc, source, _ := newScale(t)
	source.SetWeight(432)
	if err := uc.Tare(context.Background()); err != nil {
		t.Fatalf("tare: %v", err)
	}
	if got := uc.Reading(context.Background()).RawGrams; got != 0 {
		t.Fatalf("expected 0 after tare, got %.2f", got)
	}
	source.AdjustWeight(10)
	if got := uc.Reading(context.Background()).RawGrams; got != 10 {
		t.Fatalf("expected 10 after adding weight, got %.2f", got)
	}
}

func TestUnitSelectionSurvivesRestart(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "scale.json")
	source := out.NewSimWeightSource()
	store := out.NewFileSettingsStore(path)
	svc := service.NewScaleService(source, store, logging.Discard())
	svc.Recover(context.Background())
	uc := usecase.NewInteractor(svc)
	if _, err := uc.CycleUnit(context.Background()); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if _, err := uc.CycleUnit(context.Background()); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	restarted := service.NewScaleService(source, store, logging.Discard())
	restarted.Recover(context.Background())
	if got := usecase.NewInteractor(restarted).Unit(context.Background()); got != "oz" {
		t.Fatalf("expected oz after restart, got %s", got)
	}
}
