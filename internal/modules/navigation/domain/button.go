package domain

// ButtonEvent is what a PressTracker emits for one polled sample.
type ButtonEvent int

const (
	EventNone ButtonEvent = iota
	EventShort
	EventHold
)

const (
	DefaultDebounceMillis uint32 = 200
	DefaultHoldMillis     uint32 = 3000
)

type pressPhase int

const (
	phaseIdle pressPhase = iota
	phasePressed
	phaseHeldConsumed
)

// PressTracker turns a polled button level into short-press and hold
// events. A short press is recognized on release; a hold fires once while
// the button is still down, after holdMillis, and swallows the release.
// Down edges inside the debounce window are ignored.
type PressTracker struct {
	debounceMillis uint32
	holdMillis     uint32
	holdEnabled    bool

	phase        pressPhase
	pressedAt    uint32
	lastEdgeAt   uint32
	sawFirstEdge bool
}

func NewPressTracker(debounceMillis, holdMillis uint32, holdEnabled bool) *PressTracker {
	return &PressTracker{
		debounceMillis: debounceMillis,
		holdMillis:     holdMillis,
		holdEnabled:    holdEnabled,
	}
}

// Step feeds one sample of the button level (true = pressed) at the given
// millisecond timestamp. Timestamps may wrap; only differences are used.
func (p *PressTracker) Step(pressed bool, nowMillis uint32) ButtonEvent {
	switch p.phase {
	case phaseIdle:
		if !pressed {
			return EventNone
		}
		if p.sawFirstEdge && nowMillis-p.lastEdgeAt < p.debounceMillis {
			return EventNone
		}
		p.phase = phasePressed
		p.pressedAt = nowMillis
		p.lastEdgeAt = nowMillis
		p.sawFirstEdge = true
		return EventNone

	case phasePressed:
		if pressed {
			if p.holdEnabled && nowMillis-p.pressedAt >= p.holdMillis {
				p.phase = phaseHeldConsumed
				return EventHold
			}
			return EventNone
		}
		p.phase = phaseIdle
		p.lastEdgeAt = nowMillis
		return EventShort

	case phaseHeldConsumed:
		if !pressed {
			p.phase = phaseIdle
			p.lastEdgeAt = nowMillis
		}
		return EventNone
	}
	return EventNone
}

// Down reports whether the tracker currently considers the button pressed.
func (p *PressTracker) Down() bool {
	return p.phase != phaseIdle
}
