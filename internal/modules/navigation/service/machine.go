package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/domain"
	navout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/port/out"
)

// minStartGrams rejects session starts against an empty or nearly empty
// platter. Compared against the absolute raw weight so a badly tared
// scale still qualifies.
const minStartGrams = 5.0

// Machine is the button-driven navigation state machine. It owns one
// debounce tracker per button and the mode/view/cursor position, and it
// drives the session engine and the scale through its out ports.
type Machine struct {
	mu       sync.Mutex
	session  navout.SessionControl
	scale    navout.ScaleControl
	log      hclog.Logger
	target   float64
	state    domain.State
	trackers map[domain.Button]*domain.PressTracker
}

func NewMachine(session navout.SessionControl, scale navout.ScaleControl, debounceMillis, holdMillis uint32, targetLossPercent float64, log hclog.Logger) *Machine {
	return &Machine{
		session: session,
		scale:   scale,
		log:     log.Named("buttons"),
		target:  targetLossPercent,
		trackers: map[domain.Button]*domain.PressTracker{
			domain.ButtonA: domain.NewPressTracker(debounceMillis, holdMillis, false),
			domain.ButtonB: domain.NewPressTracker(debounceMillis, holdMillis, false),
			domain.ButtonC: domain.NewPressTracker(debounceMillis, holdMillis, true),
		},
	}
}

// Reset re-derives the cold-start position from the session engine.
func (m *Machine) Reset(_ context.Context) domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = domain.Reset(m.session.Active())
	m.log.Debug("navigation reset", "mode", m.state.Mode.String())
	return m.state
}

func (m *Machine) State() domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Sample feeds one polled button level and applies whatever event the
// tracker recognizes.
func (m *Machine) Sample(ctx context.Context, b domain.Button, pressed bool, nowMillis uint32) (domain.State, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event := m.trackers[b].Step(pressed, nowMillis)
	if event == domain.EventNone {
		return m.state, "", false
	}
	return m.applyLocked(ctx, b, event)
}

// Apply injects an already-recognized event, bypassing the trackers.
func (m *Machine) Apply(ctx context.Context, b domain.Button, event domain.ButtonEvent) (domain.State, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event == domain.EventNone {
		return m.state, "", false
	}
	return m.applyLocked(ctx, b, event)
}

func (m *Machine) applyLocked(ctx context.Context, b domain.Button, event domain.ButtonEvent) (domain.State, string, bool) {
	m.log.Debug("button event", "button", b.String(), "hold", event == domain.EventHold)
	if event == domain.EventHold {
		if b != domain.ButtonC {
			return m.state, "", false
		}
		return m.holdC(ctx)
	}
	if m.state.Mode == domain.ModeNormal {
		return m.normalShort(ctx, b)
	}
	return m.dryingShort(b)
}

// holdC is the start/stop gesture. Its session-active check is what keeps
// a hold in normal mode from clobbering a recovered session.
func (m *Machine) holdC(ctx context.Context) (domain.State, string, bool) {
	if m.state.Mode == domain.ModeDrying {
		if err := m.session.End(ctx); err != nil {
			m.log.Error("failed to end session", "error", err)
			return m.state, "Save failed", true
		}
		m.state = domain.State{Mode: domain.ModeNormal}
		return m.state, "Session ended", true
	}
	if m.session.Active() {
		return m.state, "", false
	}
	w := m.scale.CurrentRawWeight()
	if math.IsNaN(w) || math.Abs(w) <= minStartGrams {
		m.log.Warn("refusing to start session", "weight", w)
		return m.state, "Invalid weight", true
	}
	if err := m.session.Start(ctx, math.Abs(w), m.target); err != nil {
		m.log.Error("failed to start session", "error", err)
		// A save failure does not roll back the engine: when the session
		// is active in memory the panel must follow it into drying mode,
		// or the active-session guard would wedge it in normal mode.
		if !m.session.Active() {
			return m.state, "Start failed", true
		}
		m.state = domain.State{Mode: domain.ModeDrying, View: domain.ViewLive}
		return m.state, "Save failed", true
	}
	m.state = domain.State{Mode: domain.ModeDrying, View: domain.ViewLive}
	return m.state, "Session started", true
}

func (m *Machine) normalShort(ctx context.Context, b domain.Button) (domain.State, string, bool) {
	switch b {
	case domain.ButtonA:
		if err := m.scale.Tare(ctx); err != nil {
			m.log.Error("tare failed", "error", err)
			return m.state, "Tare failed", true
		}
		return m.state, "Tared", true
	case domain.ButtonB:
		unit, err := m.scale.CycleUnit(ctx)
		if err != nil {
			m.log.Error("unit change not persisted", "error", err)
		}
		return m.state, fmt.Sprintf("Unit: %s", unit), true
	}
	return m.state, "", false
}

func (m *Machine) dryingShort(b domain.Button) (domain.State, string, bool) {
	count := m.session.RecordCount()
	switch m.state.View {
	case domain.ViewLive:
		switch b {
		case domain.ButtonA:
			if count >= 2 {
				m.state.View = domain.ViewHistory
				m.state.HistoryCursor = count - 2
				return m.state, "", true
			}
		case domain.ButtonB:
			m.state.View = domain.ViewStats
			return m.state, "", true
		}
	case domain.ViewStats:
		switch b {
		case domain.ButtonA, domain.ButtonC:
			m.state.View = domain.ViewLive
			return m.state, "", true
		case domain.ButtonB:
			if count >= 1 {
				m.state.View = domain.ViewHistory
				m.state.HistoryCursor = count - 1
				return m.state, "", true
			}
		}
	case domain.ViewHistory:
		switch b {
		case domain.ButtonA:
			if m.state.HistoryCursor > 0 {
				m.state.HistoryCursor--
				return m.state, "", true
			}
		case domain.ButtonB:
			if m.state.HistoryCursor < count-1 {
				m.state.HistoryCursor++
			} else {
				m.state.View = domain.ViewLive
				m.state.HistoryCursor = 0
			}
			return m.state, "", true
		case domain.ButtonC:
			m.state.View = domain.ViewLive
			m.state.HistoryCursor = 0
			return m.state, "", true
		}
	}
	return m.state, "", false
}
