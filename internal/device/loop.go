package device

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	navdto "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/dto"
	navin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/port/in"
	scaledto "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/dto"
	scalein "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/in"
	sessiondto "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
	sessionin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/in"
)

// buttonTickMillis is how often Run samples the panel; the weight cadence
// is configured separately and is much coarser.
const buttonTickMillis = 25

// DuenessSource answers whether a daily record is overdue. The session
// engine implements it.
type DuenessSource interface {
	DueForDailyRecord() bool
}

// Config carries the loop cadences, in milliseconds.
type Config struct {
	WeightMillis  uint32
	MessageMillis uint32
}

// Snapshot is what the presentation layer renders on each frame.
type Snapshot struct {
	Nav     navdto.StateOutput
	Reading scaledto.ReadingOutput
	Status  sessiondto.StatusOutput
	Message string
}

// Loop is the device's single logical thread of control: it samples the
// buttons, reads the scale on a fixed cadence, advances the day once 24h
// have passed, and expires the transient message line. All session
// mutations funnel through it.
type Loop struct {
	buttons  Buttons
	nav      navin.Usecase
	sessions sessionin.Usecase
	scale    scalein.Usecase
	due      DuenessSource
	now      func() uint32
	cfg      Config
	log      hclog.Logger

	mu           sync.Mutex
	reading      scaledto.ReadingOutput
	lastWeightAt uint32
	readWeight   bool
	message      string
	messageAt    uint32
	autoFailedAt uint32
	autoFailed   bool
}

func NewLoop(buttons Buttons, nav navin.Usecase, sessions sessionin.Usecase, scale scalein.Usecase, due DuenessSource, now func() uint32, cfg Config, log hclog.Logger) *Loop {
	if cfg.WeightMillis == 0 {
		cfg.WeightMillis = 500
	}
	if cfg.MessageMillis == 0 {
		cfg.MessageMillis = 2000
	}
	return &Loop{
		buttons:  buttons,
		nav:      nav,
		sessions: sessions,
		scale:    scale,
		due:      due,
		now:      now,
		cfg:      cfg,
		log:      log.Named("device"),
		reading:  scaledto.ReadingOutput{RawGrams: math.NaN(), Display: math.NaN()},
	}
}

// MillisSince returns a wrapping millisecond tick suitable for the loop's
// now function.
func MillisSince(start time.Time) func() uint32 {
	return func() uint32 {
		return uint32(time.Since(start).Milliseconds())
	}
}

// Run ticks the loop until the context is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(buttonTickMillis * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick advances the loop by one poll: buttons, then weight, then the
// automatic day advance, then message expiry.
func (l *Loop) Tick(ctx context.Context) {
	now := l.now()
	l.sampleButtons(ctx, now)
	l.sampleWeight(ctx, now)
	l.autoAdvance(ctx, now)
	l.expireMessage(now)
}

func (l *Loop) sampleButtons(ctx context.Context, now uint32) {
	a, b, c := l.buttons.Levels()
	for _, sample := range []navdto.SampleInput{
		{Button: "A", Pressed: a, NowMillis: now},
		{Button: "B", Pressed: b, NowMillis: now},
		{Button: "C", Pressed: c, NowMillis: now},
	} {
		out := l.nav.Sample(ctx, sample)
		if out.Changed && out.Message != "" {
			l.setMessage(out.Message, now)
		}
	}
}

func (l *Loop) sampleWeight(ctx context.Context, now uint32) {
	l.mu.Lock()
	due := !l.readWeight || now-l.lastWeightAt >= l.cfg.WeightMillis
	l.mu.Unlock()
	if !due {
		return
	}
	reading := l.scale.Reading(ctx)
	l.mu.Lock()
	l.reading = reading
	l.lastWeightAt = now
	l.readWeight = true
	l.mu.Unlock()
}

// autoAdvance appends the daily record once the engine reports one is due,
// using the latest observation. A NaN reading is no observation: the day
// stays due and is retried on the next tick.
func (l *Loop) autoAdvance(ctx context.Context, now uint32) {
	if !l.due.DueForDailyRecord() {
		return
	}
	l.mu.Lock()
	weight := l.reading.RawGrams
	backoff := l.autoFailed && now-l.autoFailedAt < l.cfg.WeightMillis
	l.mu.Unlock()
	if backoff || math.IsNaN(weight) {
		return
	}
	record, err := l.sessions.RecordWeight(ctx, weight)
	if err != nil {
		l.log.Error("automatic daily record failed", "error", err)
		l.mu.Lock()
		l.autoFailed = true
		l.autoFailedAt = now
		l.mu.Unlock()
		return
	}
	l.mu.Lock()
	l.autoFailed = false
	l.mu.Unlock()
	l.log.Info("daily record appended", "day", record.Day, "weight", record.Weight, "loss", record.LossPercent)
	l.setMessage(fmt.Sprintf("Day %d / Loss %.1f%%", record.Day, record.LossPercent), now)
}

// Press injects a recognized press from the TUI, routing its message
// through the loop's message slot.
func (l *Loop) Press(ctx context.Context, button string, hold bool) {
	out := l.nav.Press(ctx, navdto.PressInput{Button: button, Hold: hold})
	if out.Changed && out.Message != "" {
		l.setMessage(out.Message, l.now())
	}
}

func (l *Loop) setMessage(message string, now uint32) {
	l.mu.Lock()
	l.message = message
	l.messageAt = now
	l.mu.Unlock()
}

func (l *Loop) expireMessage(now uint32) {
	l.mu.Lock()
	if l.message != "" && now-l.messageAt >= l.cfg.MessageMillis {
		l.message = ""
	}
	l.mu.Unlock()
}

// Snapshot assembles the current presentation view.
func (l *Loop) Snapshot(ctx context.Context) Snapshot {
	l.mu.Lock()
	reading := l.reading
	message := l.message
	l.mu.Unlock()
	status, err := l.sessions.Status(ctx)
	if err != nil {
		l.log.Error("status read failed", "error", err)
	}
	return Snapshot{
		Nav:     l.nav.State(ctx),
		Reading: reading,
		Status:  status,
		Message: message,
	}
}
