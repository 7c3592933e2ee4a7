package out

import (
	"context"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/domain"
)

// SessionStore persists the full session (metadata plus the whole record
// list) so a fresh process reproduces it field-for-field. Load returns
// apperrors.ErrNoPriorSession when nothing was ever saved and a wrapped
// apperrors.ErrCorruptState for malformed data; both are recoverable.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

// RecordProjector mirrors the current session's daily records into a
// queryable index. It never feeds back into engine state.
type RecordProjector interface {
	Project(ctx context.Context, session domain.Session) error
	ListRecords(ctx context.Context, sessionID string) ([]domain.DailyRecord, error)
}
