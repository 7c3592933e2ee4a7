package in

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/dto"
	scalein "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/in"
)

type CLIHandler struct {
	usecase scalein.Usecase
}

func NewCLIHandler(usecase scalein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Reading(ctx context.Context) dto.ReadingOutput {
	return h.usecase.Reading(ctx)
}

func (h CLIHandler) Tare(ctx context.Context) error {
	return h.usecase.Tare(ctx)
}

func (h CLIHandler) CycleUnit(ctx context.Context) (string, error) {
	return h.usecase.CycleUnit(ctx)
}

func (h CLIHandler) Unit(ctx context.Context) string {
	return h.usecase.Unit(ctx)
}
