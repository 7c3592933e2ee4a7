package out

import (
	"math"
	"sync"

	scaleout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/out"
)

// SimWeightSource stands in for the load cell. The TUI and tests adjust it
// directly; NaN models a sensor that is not ready.
type SimWeightSource struct {
	mu     sync.Mutex
	grams  float64
	offset float64
	ready  bool
}

func NewSimWeightSource() *SimWeightSource {
	return &SimWeightSource{ready: true}
}

var _ scaleout.WeightSource = (*SimWeightSource)(nil)

func (s *SimWeightSource) CurrentRawWeight() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return math.NaN()
	}
	return s.grams - s.offset
}

func (s *SimWeightSource) Tare() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = s.grams
}

func (s *SimWeightSource) SetWeight(grams float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grams = grams
}

func (s *SimWeightSource) AdjustWeight(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grams += delta
}

func (s *SimWeightSource) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}
