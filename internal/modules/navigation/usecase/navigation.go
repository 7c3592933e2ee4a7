package usecase

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/domain"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/dto"
	navin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/port/in"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/service"
)

type Interactor struct {
	machine *service.Machine
}

func NewInteractor(machine *service.Machine) navin.Usecase {
	return &Interactor{machine: machine}
}

func (i *Interactor) Sample(ctx context.Context, in dto.SampleInput) dto.PressOutput {
	state, message, changed := i.machine.Sample(ctx, parseButton(in.Button), in.Pressed, in.NowMillis)
	return toOutput(state, message, changed)
}

func (i *Interactor) Press(ctx context.Context, in dto.PressInput) dto.PressOutput {
	event := domain.EventShort
	if in.Hold {
		event = domain.EventHold
	}
	state, message, changed := i.machine.Apply(ctx, parseButton(in.Button), event)
	return toOutput(state, message, changed)
}

func (i *Interactor) Reset(ctx context.Context) dto.StateOutput {
	return toState(i.machine.Reset(ctx))
}

func (i *Interactor) State(_ context.Context) dto.StateOutput {
	return toState(i.machine.State())
}

func parseButton(name string) domain.Button {
	switch name {
	case "A":
		return domain.ButtonA
	case "B":
		return domain.ButtonB
	default:
		return domain.ButtonC
	}
}

func toState(s domain.State) dto.StateOutput {
	return dto.StateOutput{Mode: s.Mode.String(), View: s.View.String(), HistoryCursor: s.HistoryCursor}
}

func toOutput(s domain.State, message string, changed bool) dto.PressOutput {
	return dto.PressOutput{State: toState(s), Message: message, Changed: changed}
}
