package out

import "context"

// SessionControl is the slice of the session lifecycle the navigation
// machine drives.
type SessionControl interface {
	Active() bool
	RecordCount() int
	Start(ctx context.Context, initialWeight, targetLossPercent float64) error
	End(ctx context.Context) error
}

// ScaleControl is the slice of the scale the navigation machine drives.
type ScaleControl interface {
	CurrentRawWeight() float64
	Tare(ctx context.Context) error
	CycleUnit(ctx context.Context) (string, error)
}
