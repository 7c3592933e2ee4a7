package domain

// OperatingMode splits the device between plain weighing and an active
// drying session.
type OperatingMode int

const (
	ModeNormal OperatingMode = iota
	ModeDrying
)

func (m OperatingMode) String() string {
	if m == ModeDrying {
		return "drying"
	}
	return "normal"
}

// ViewMode is the screen shown while a session is active.
type ViewMode int

const (
	ViewLive ViewMode = iota
	ViewStats
	ViewHistory
)

func (v ViewMode) String() string {
	switch v {
	case ViewStats:
		return "stats"
	case ViewHistory:
		return "history"
	default:
		return "live"
	}
}

// Button identifies a physical key on the front panel.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonC
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	default:
		return "C"
	}
}

// State is the navigation position: which mode, which view, and which
// record the history cursor points at.
type State struct {
	Mode          OperatingMode
	View          ViewMode
	HistoryCursor int
}

// Reset returns the cold-start state for a device whose session store
// says whether a session was active.
func Reset(sessionActive bool) State {
	if sessionActive {
		return State{Mode: ModeDrying, View: ViewLive}
	}
	return State{Mode: ModeNormal}
}
