package clock

import "time"

// Clock abstracts uptime to keep services deterministic in tests. Seconds
// are monotonic since process start, never wall-clock: the device this
// models has no RTC and every session timestamp is relative.
type Clock interface {
	NowSeconds() uint32
}

type Uptime struct {
	start time.Time
}

func NewUptime() *Uptime {
	return &Uptime{start: time.Now()}
}

func (u *Uptime) NowSeconds() uint32 {
	return uint32(time.Since(u.start) / time.Second)
}
