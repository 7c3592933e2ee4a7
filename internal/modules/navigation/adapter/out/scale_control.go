package out

import (
	"context"

	navout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/port/out"
	scalein "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/in"
)

// ScaleControlAdapter narrows the scale usecase to what the navigation
// machine needs.
type ScaleControlAdapter struct {
	scale scalein.Usecase
}

func NewScaleControlAdapter(scale scalein.Usecase) navout.ScaleControl {
	return &ScaleControlAdapter{scale: scale}
}

func (a *ScaleControlAdapter) CurrentRawWeight() float64 {
	return a.scale.Reading(context.Background()).RawGrams
}

func (a *ScaleControlAdapter) Tare(ctx context.Context) error {
	return a.scale.Tare(ctx)
}

func (a *ScaleControlAdapter) CycleUnit(ctx context.Context) (string, error) {
	return a.scale.CycleUnit(ctx)
}
