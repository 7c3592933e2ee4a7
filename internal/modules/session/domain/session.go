package domain

import "math"

const (
	DefaultTargetLossPercent = 40.0
	DefaultRecordCapacity    = 60

	// EstimateUnknown is returned when there is not enough history, no
	// measurable progress, or an implausible projection.
	EstimateUnknown = -1

	// lossWindow is the trailing day-to-day transition count used for the
	// average daily loss heuristic.
	lossWindow = 3

	// minDailyLossPercent is the epsilon below which the drying run shows
	// no real progress and days-remaining is unreliable.
	minDailyLossPercent = 0.01

	// maxEstimateDays caps the projection; anything longer is treated as a
	// measurement artifact.
	maxEstimateDays = 99
)

// DailyRecord is one day's weight observation. Immutable once appended.
type DailyRecord struct {
	Day         int     `json:"day"`
	Timestamp   uint32  `json:"timestamp"`
	Weight      float64 `json:"weight"`
	LossPercent float64 `json:"loss"`
	DayChange   float64 `json:"change"`
}

// Session is the single active (or most recently ended) drying run together
// with its ordered daily records. Records are bounded by Capacity; index 0
// is day 1.
type Session struct {
	ID                  string        `json:"id"`
	IsActive            bool          `json:"active"`
	InitialWeight       float64       `json:"initial_weight"`
	TargetLossPercent   float64       `json:"target_loss"`
	StartTimestamp      uint32        `json:"start_time"`
	CurrentDay          int           `json:"current_day"`
	LastRecordTimestamp uint32        `json:"last_record_time"`
	Records             []DailyRecord `json:"records"`
	Capacity            int           `json:"capacity"`
}

// NewInactive is the boot-time default when no prior session exists.
func NewInactive(capacity int) Session {
	if capacity <= 0 {
		capacity = DefaultRecordCapacity
	}
	return Session{
		TargetLossPercent: DefaultTargetLossPercent,
		Records:           make([]DailyRecord, 0, capacity),
		Capacity:          capacity,
	}
}

// Start resets the session for a new run and writes the day-1 record with
// zero loss. The caller validates the weight beforehand.
func (s *Session) Start(id string, initialWeight, targetLossPercent float64, now uint32) {
	capacity := s.Capacity
	if capacity <= 0 {
		capacity = DefaultRecordCapacity
	}
	*s = Session{
		ID:                  id,
		IsActive:            true,
		InitialWeight:       initialWeight,
		TargetLossPercent:   targetLossPercent,
		StartTimestamp:      now,
		CurrentDay:          1,
		LastRecordTimestamp: now,
		Records:             make([]DailyRecord, 0, capacity),
		Capacity:            capacity,
	}
	s.Records = append(s.Records, DailyRecord{
		Day:       1,
		Timestamp: now,
		Weight:    initialWeight,
	})
	s.CurrentDay = 2
}

// Append computes the derived statistics for one observation and appends it.
// It reports false without mutating when the capacity is already reached.
// Caller guarantees the session is active.
func (s *Session) Append(weight float64, now uint32) (DailyRecord, bool) {
	if len(s.Records) >= s.Capacity {
		return DailyRecord{}, false
	}
	record := DailyRecord{
		Day:         s.CurrentDay,
		Timestamp:   now,
		Weight:      weight,
		LossPercent: (s.InitialWeight - weight) / s.InitialWeight * 100.0,
	}
	if last := s.LastRecord(); last != nil {
		record.DayChange = last.Weight - weight
	}
	s.Records = append(s.Records, record)
	s.CurrentDay++
	s.LastRecordTimestamp = now
	return record, true
}

func (s *Session) End() {
	s.IsActive = false
}

func (s *Session) RecordCount() int {
	return len(s.Records)
}

// Record returns nil for out-of-range indices rather than failing.
func (s *Session) Record(index int) *DailyRecord {
	if index < 0 || index >= len(s.Records) {
		return nil
	}
	return &s.Records[index]
}

func (s *Session) LastRecord() *DailyRecord {
	return s.Record(len(s.Records) - 1)
}

// CurrentLossPercent is the last record's cumulative loss, 0 with no records.
func (s *Session) CurrentLossPercent() float64 {
	last := s.LastRecord()
	if last == nil {
		return 0
	}
	return last.LossPercent
}

func (s *Session) RemainingLossPercent() float64 {
	remaining := s.TargetLossPercent - s.CurrentLossPercent()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsReady reports whether the active run has reached its target loss.
func (s *Session) IsReady() bool {
	return s.IsActive && s.CurrentLossPercent() >= s.TargetLossPercent
}

// AverageDailyLoss is the mean absolute loss-percent change over up to the
// last lastN day-to-day transitions.
func (s *Session) AverageDailyLoss(lastN int) float64 {
	count := len(s.Records)
	if count < 2 || lastN < 1 {
		return 0
	}
	start := count - lastN - 1
	if start < 0 {
		start = 0
	}
	total := 0.0
	transitions := 0
	for i := start + 1; i < count; i++ {
		total += math.Abs(s.Records[i-1].LossPercent - s.Records[i].LossPercent)
		transitions++
	}
	if transitions == 0 {
		return 0
	}
	return total / float64(transitions)
}

// EstimateDaysRemaining projects days to target from the trailing average
// daily loss. Returns EstimateUnknown with fewer than 3 records, when the
// trailing loss shows no progress, or when the projection exceeds 99 days;
// returns 0 once the target is reached.
func (s *Session) EstimateDaysRemaining() int {
	if len(s.Records) < lossWindow {
		return EstimateUnknown
	}
	avg := s.AverageDailyLoss(lossWindow)
	if avg <= minDailyLossPercent {
		return EstimateUnknown
	}
	remaining := s.TargetLossPercent - s.CurrentLossPercent()
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / avg)
	if days > maxEstimateDays {
		return EstimateUnknown
	}
	return days
}

// DueForDailyRecord reports whether the auto-advance interval has elapsed
// since the last record. The uint32 subtraction stays correct across
// uptime wrap.
func (s *Session) DueForDailyRecord(now, intervalSecs uint32) bool {
	if !s.IsActive {
		return false
	}
	return now-s.LastRecordTimestamp >= intervalSecs
}

// Clone returns a deep copy so presentation readers never alias the records
// the engine may still append to.
func (s *Session) Clone() Session {
	copied := *s
	copied.Records = make([]DailyRecord, len(s.Records))
	copy(copied.Records, s.Records)
	return copied
}
