package in

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/dto"
)

type Usecase interface {
	Reading(ctx context.Context) dto.ReadingOutput
	Tare(ctx context.Context) error
	CycleUnit(ctx context.Context) (string, error)
	Unit(ctx context.Context) string
}
