package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/domain"
	scaleout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/scale/port/out"
)

type FileSettingsStore struct {
	path string
}

func NewFileSettingsStore(path string) scaleout.SettingsStore {
	return &FileSettingsStore{path: path}
}

func (s *FileSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scale settings: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write scale settings: %w", err)
	}
	return nil
}

func (s *FileSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("read scale settings: %w", err)
	}
	settings := domain.DefaultSettings()
	if err := json.Unmarshal(payload, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decode scale settings: %w", err)
	}
	return settings, nil
}
