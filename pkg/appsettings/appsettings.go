// Package appsettings loads and saves eduicons settings.
//
// Settings are stored as JSON in the user's config directory. Environment
// variables override the stored values.
package appsettings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Settings holds user preferences.
type Settings struct {
	AssetDir   string `json:"asset_dir,omitempty" env:"EDUICONS_ASSET_DIR"`
	LogLevel   string `json:"log_level,omitempty" env:"EDUICONS_LOG_LEVEL"`
	RasterSize int    `json:"raster_size,omitempty" env:"EDUICONS_RASTER_SIZE"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{LogLevel: "info", RasterSize: 16}
}

// Manager handles loading and saving settings to disk.
type Manager struct {
	appName   string
	configDir string
}

// NewManager creates a settings manager for appName under os.UserConfigDir.
func NewManager(appName string) *Manager {
	return &Manager{appName: appName}
}

// NewManagerAt creates a settings manager rooted at configDir instead of
// os.UserConfigDir.
func NewManagerAt(configDir, appName string) *Manager {
	return &Manager{appName: appName, configDir: configDir}
}

// Path returns the path to the settings file.
func (m *Manager) Path() (string, error) {
	dir := m.configDir
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("get user config dir: %w", err)
		}
	}
	return filepath.Join(dir, m.appName, "settings.json"), nil
}

// Load returns stored settings layered over Defaults, with environment
// overrides applied last. A missing file is not an error.
func (m *Manager) Load() (Settings, error) {
	s := Defaults()

	path, err := m.Path()
	if err != nil {
		return s, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		slog.Debug("No settings file, using defaults", "path", path)
	case err != nil:
		return s, fmt.Errorf("read settings file: %w", err)
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings: %w", err)
		}
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	if s.RasterSize < 0 {
		return s, fmt.Errorf("raster size must be positive, got %d", s.RasterSize)
	}
	return s, nil
}

// Save writes settings to disk.
func (m *Manager) Save(s Settings) error {
	path, err := m.Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	slog.Info("Saved settings", "path", path, "raster_size", s.RasterSize, "asset_dir", s.AssetDir)
	return nil
}
