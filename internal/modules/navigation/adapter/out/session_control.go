package out

import (
	"context"

	navout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/navigation/port/out"
	sessiondto "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
	sessionin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/in"
)

// SessionControlAdapter narrows the session usecase to what the
// navigation machine needs.
type SessionControlAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionControlAdapter(sessions sessionin.Usecase) navout.SessionControl {
	return &SessionControlAdapter{sessions: sessions}
}

func (a *SessionControlAdapter) Active() bool {
	status, err := a.sessions.Status(context.Background())
	if err != nil {
		return false
	}
	return status.Active
}

func (a *SessionControlAdapter) RecordCount() int {
	status, err := a.sessions.Status(context.Background())
	if err != nil {
		return 0
	}
	return status.RecordCount
}

func (a *SessionControlAdapter) Start(ctx context.Context, initialWeight, targetLossPercent float64) error {
	_, err := a.sessions.Start(ctx, sessiondto.StartInput{
		InitialWeight:     initialWeight,
		TargetLossPercent: targetLossPercent,
	})
	return err
}

func (a *SessionControlAdapter) End(ctx context.Context) error {
	return a.sessions.End(ctx)
}
