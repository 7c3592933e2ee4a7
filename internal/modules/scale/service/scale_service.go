package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/domain"
	scaleout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/out"
)

// ScaleService owns unit selection and delegates raw readings to the
// sensor. Unit changes persist immediately, like the firmware writing its
// Preferences namespace on every change.
type ScaleService struct {
	mu       sync.RWMutex
	source   scaleout.WeightSource
	store    scaleout.SettingsStore
	log      hclog.Logger
	settings domain.Settings
	unit     domain.Unit
}

func NewScaleService(source scaleout.WeightSource, store scaleout.SettingsStore, log hclog.Logger) *ScaleService {
	return &ScaleService{
		source:   source,
		store:    store,
		log:      log.Named("scale"),
		settings: domain.DefaultSettings(),
	}
}

// Recover loads persisted settings; a missing or unreadable file degrades
// to defaults.
func (s *ScaleService) Recover(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("failed to load scale settings, using defaults", "error", err)
		return
	}
	s.settings = settings
	s.unit = domain.ParseUnit(settings.Unit)
	s.log.Info("scale settings loaded", "unit", s.unit.String(), "calibrated", settings.Calibrated)
}

func (s *ScaleService) RawWeight() float64 {
	return s.source.CurrentRawWeight()
}

func (s *ScaleService) Unit() domain.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unit
}

func (s *ScaleService) Tare() {
	s.source.Tare()
	s.log.Info("tared")
}

func (s *ScaleService) CycleUnit(ctx context.Context) (domain.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unit = s.unit.Next()
	s.settings.Unit = s.unit.String()
	s.log.Info("unit changed", "unit", s.unit.String())
	if err := s.store.Save(ctx, s.settings); err != nil {
		s.log.Error("failed to persist scale settings", "error", err)
		return s.unit, err
	}
	return s.unit, nil
}
