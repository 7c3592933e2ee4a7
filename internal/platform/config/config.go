package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable the firmware kept as compile-time constants.
// All fields are optional in the YAML file; zero values fall back to the
// device defaults below.
type Config struct {
	DataDir           string  `yaml:"data_dir"`
	ListenAddr        string  `yaml:"listen_addr"`
	TargetLossPercent float64 `yaml:"target_loss_percent"`
	RecordCapacity    int     `yaml:"record_capacity"`
	DebounceMillis    uint32  `yaml:"debounce_ms"`
	HoldMillis        uint32  `yaml:"hold_ms"`
	AutoAdvanceSecs   uint32  `yaml:"auto_advance_secs"`
	PollMillis        uint32  `yaml:"poll_ms"`
	MessageMillis     uint32  `yaml:"message_ms"`

	DBPath         string `yaml:"-"`
	StatePath      string `yaml:"-"`
	ScalePath      string `yaml:"-"`
	ConfigPath     string `yaml:"-"`
	LoadedFromFile bool   `yaml:"-"`
}

func Default(dataDir string) Config {
	return Config{
		DataDir:           dataDir,
		ListenAddr:        ":8080",
		TargetLossPercent: 40.0,
		RecordCapacity:    60,
		DebounceMillis:    200,
		HoldMillis:        3000,
		AutoAdvanceSecs:   86400,
		PollMillis:        500,
		MessageMillis:     2000,
	}
}

// New loads dataDir/dryscale.yaml when present and fills derived paths.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Default(dataDir)
	path := filepath.Join(dataDir, "dryscale.yaml")
	payload, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.LoadedFromFile = true
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	cfg.applyDefaults()
	cfg.ConfigPath = path
	cfg.DBPath = filepath.Join(cfg.DataDir, "dryscale.db")
	cfg.StatePath = filepath.Join(cfg.DataDir, "state.json")
	cfg.ScalePath = filepath.Join(cfg.DataDir, "scale.json")
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default(c.DataDir)
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.TargetLossPercent <= 0 {
		c.TargetLossPercent = def.TargetLossPercent
	}
	if c.RecordCapacity <= 0 {
		c.RecordCapacity = def.RecordCapacity
	}
	if c.DebounceMillis == 0 {
		c.DebounceMillis = def.DebounceMillis
	}
	if c.HoldMillis == 0 {
		c.HoldMillis = def.HoldMillis
	}
	if c.AutoAdvanceSecs == 0 {
		c.AutoAdvanceSecs = def.AutoAdvanceSecs
	}
	if c.PollMillis == 0 {
		c.PollMillis = def.PollMillis
	}
	if c.MessageMillis == 0 {
		c.MessageMillis = def.MessageMillis
	}
}
