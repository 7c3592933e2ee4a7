package usecase

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/dto"
	scalein "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/in"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/service"
)

type Interactor struct {
	svc *service.ScaleService
}

func NewInteractor(svc *service.ScaleService) scalein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Reading(_ context.Context) dto.ReadingOutput {
	raw := i.svc.RawWeight()
	unit := i.svc.Unit()
	return dto.ReadingOutput{
		RawGrams:  raw,
		Display:   unit.Convert(raw),
		Unit:      unit.String(),
		Precision: unit.DecimalPlaces(),
	}
}

func (i *Interactor) Tare(_ context.Context) error {
	i.svc.Tare()
	return nil
}

func (i *Interactor) CycleUnit(ctx context.Context) (string, error) {
	unit, err := i.svc.CycleUnit(ctx)
	return unit.String(), err
}

func (i *Interactor) Unit(_ context.Context) string {
	return i.svc.Unit().String()
}
