package usecase

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/domain"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
	sessionin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/in"
	sessionout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/out"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/service"
	apperrors "github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/errors"
)

type Interactor struct {
	engine    *service.Engine
	store     sessionout.SessionStore
	projector sessionout.RecordProjector
}

func NewInteractor(engine *service.Engine, store sessionout.SessionStore, projector sessionout.RecordProjector) sessionin.Usecase {
	return &Interactor{engine: engine, store: store, projector: projector}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	if input.InitialWeight <= 0 {
		return dto.StartOutput{}, apperrors.ErrInvalidInput
	}
	if err := i.engine.StartNewSession(ctx, input.InitialWeight, input.TargetLossPercent); err != nil {
		return dto.StartOutput{}, err
	}
	if err := i.project(ctx); err != nil {
		return dto.StartOutput{}, err
	}
	snap := i.engine.Snapshot()
	return dto.StartOutput{SessionID: snap.ID, InitialWeight: snap.InitialWeight, TargetLoss: snap.TargetLossPercent}, nil
}

func (i *Interactor) RecordWeight(ctx context.Context, weight float64) (dto.RecordOutput, error) {
	record, err := i.engine.RecordDailyWeight(ctx, weight)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	if err := i.project(ctx); err != nil {
		return dto.RecordOutput{}, err
	}
	return toRecordOutput(record), nil
}

func (i *Interactor) End(ctx context.Context) error {
	if err := i.engine.EndSession(ctx); err != nil {
		return err
	}
	return i.project(ctx)
}

func (i *Interactor) Status(_ context.Context) (dto.StatusOutput, error) {
	snap := i.engine.Snapshot()
	return dto.StatusOutput{
		Active:              snap.IsActive,
		SessionID:           snap.ID,
		InitialWeight:       snap.InitialWeight,
		TargetLossPercent:   snap.TargetLossPercent,
		CurrentLossPercent:  snap.CurrentLossPercent(),
		RemainingPercent:    snap.RemainingLossPercent(),
		CurrentDay:          snap.CurrentDay,
		RecordCount:         snap.RecordCount(),
		DaysRemaining:       snap.EstimateDaysRemaining(),
		Ready:               snap.IsReady(),
		StartTimestamp:      snap.StartTimestamp,
		LastRecordTimestamp: snap.LastRecordTimestamp,
	}, nil
}

// History reads from the projection, not the engine: the CLI query surface
// must work against what was durably projected.
func (i *Interactor) History(ctx context.Context) ([]dto.RecordOutput, error) {
	snap := i.engine.Snapshot()
	if snap.ID == "" {
		return nil, nil
	}
	records, err := i.projector.ListRecords(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordOutput(record))
	}
	return out, nil
}

// Wipe removes all persisted session data unconditionally. Not part of the
// normal lifecycle; the in-memory session is reset to the inactive default.
func (i *Interactor) Wipe(ctx context.Context) error {
	if err := i.store.Clear(ctx); err != nil {
		return err
	}
	i.engine.Recover(ctx)
	return nil
}

func (i *Interactor) project(ctx context.Context) error {
	if i.projector == nil {
		return nil
	}
	return i.projector.Project(ctx, i.engine.Snapshot())
}

func toRecordOutput(record domain.DailyRecord) dto.RecordOutput {
	return dto.RecordOutput{
		Day:         record.Day,
		Timestamp:   record.Timestamp,
		Weight:      record.Weight,
		LossPercent: record.LossPercent,
		DayChange:   record.DayChange,
	}
}
