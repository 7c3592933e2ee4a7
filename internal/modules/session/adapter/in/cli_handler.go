package in

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
	sessionin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, initialWeight, targetLoss float64) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{InitialWeight: initialWeight, TargetLossPercent: targetLoss})
}

func (h CLIHandler) Record(ctx context.Context, weight float64) (dto.RecordOutput, error) {
	return h.usecase.RecordWeight(ctx, weight)
}

func (h CLIHandler) End(ctx context.Context) error {
	return h.usecase.End(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) History(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Wipe(ctx context.Context) error {
	return h.usecase.Wipe(ctx)
}
