package in

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	RecordWeight(ctx context.Context, weight float64) (dto.RecordOutput, error)
	End(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	History(ctx context.Context) ([]dto.RecordOutput, error)
	Wipe(ctx context.Context) error
}
