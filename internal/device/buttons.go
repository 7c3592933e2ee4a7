package device

import "sync"

// Buttons reports the instantaneous level of the three front-panel keys
// (true = pressed). The loop samples it every tick.
type Buttons interface {
	Levels() (a, b, c bool)
}

// SimButtons is an in-memory button panel the TUI and tests drive.
type SimButtons struct {
	mu      sync.Mutex
	a, b, c bool
}

func NewSimButtons() *SimButtons {
	return &SimButtons{}
}

var _ Buttons = (*SimButtons)(nil)

func (s *SimButtons) Levels() (bool, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a, s.b, s.c
}

func (s *SimButtons) Set(a, b, c bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a, s.b, s.c = a, b, c
}
