package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/domain"
	sessionout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/out"
	apperrors "github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/errors"
)

const stateSchemaVersion = 1

type stateFile struct {
	Schema  int            `json:"schema"`
	Session domain.Session `json:"session"`
}

// FileSessionStore writes the whole session to a single JSON file via
// temp-file + rename, so a crash mid-write leaves the previous state intact.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) sessionout.SessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Save(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(stateFile{Schema: stateSchemaVersion, Session: session}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session state: %w", err)
	}
	return nil
}

func (s *FileSessionStore) Load(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, apperrors.ErrNoPriorSession
		}
		return domain.Session{}, fmt.Errorf("read session state: %w", err)
	}
	var state stateFile
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.Session{}, fmt.Errorf("decode session state: %w: %w", apperrors.ErrCorruptState, err)
	}
	if state.Session.Capacity > 0 && len(state.Session.Records) > state.Session.Capacity {
		return domain.Session{}, fmt.Errorf("record count %d exceeds capacity %d: %w",
			len(state.Session.Records), state.Session.Capacity, apperrors.ErrCorruptState)
	}
	return state.Session, nil
}

func (s *FileSessionStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session state: %w", err)
	}
	return nil
}
