package in

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/dto"
)

type Usecase interface {
	// Sample feeds one debounce-tracked button level from a polling loop.
	Sample(ctx context.Context, in dto.SampleInput) dto.PressOutput
	// Press injects an already-recognized press, bypassing debouncing.
	Press(ctx context.Context, in dto.PressInput) dto.PressOutput
	// Reset re-derives the cold-start state from the session engine.
	Reset(ctx context.Context) dto.StateOutput
	State(ctx context.Context) dto.StateOutput
}
