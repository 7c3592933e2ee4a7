package out

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/domain"
)

// WeightSource is the sensor abstraction. CurrentRawWeight returns grams,
// or NaN when the sensor has no reading yet; callers must treat NaN as
// "no observation" and never record it.
type WeightSource interface {
	CurrentRawWeight() float64
	Tare()
}

// SettingsStore persists unit selection and calibration data across
// restarts, the Preferences namespace of the original firmware.
type SettingsStore interface {
	Save(ctx context.Context, settings domain.Settings) error
	Load(ctx context.Context) (domain.Settings, error)
}
