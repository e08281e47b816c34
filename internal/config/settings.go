package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/handiism/layer-renamer/internal/history"
	"github.com/handiism/layer-renamer/internal/host"
	ioutils "github.com/handiism/layer-renamer/internal/io"
)

// AppName names the per-user configuration directory.
const AppName = "layer-renamer"

// Settings holds all configuration options.
type Settings struct {
	// Template settings
	DefaultTemplate string `json:"default_template"`

	// Recent renames
	HistoryPath string `json:"history_path"`
	HistorySize int    `json:"history_size"`

	// Image directory documents
	SanitizeNames       bool     `json:"sanitize_names"`
	MaxConcurrentProbes int      `json:"max_concurrent_probes"`
	ImageExtensions     []string `json:"image_extensions"`

	// Logging
	LogFile string `json:"log_file"`
	Verbose bool   `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultTemplate: "{layer:name}",

		HistoryPath: filepath.Join(configDir(), "recent-renames.txt"),
		HistorySize: history.DefaultLimit,

		SanitizeNames:       true,
		MaxConcurrentProbes: 8,
		ImageExtensions:     append([]string(nil), ioutils.DefaultImageExtensions...),
	}
}

// DefaultPath returns the settings file location in the user config directory.
func DefaultPath() string {
	return filepath.Join(configDir(), "settings.json")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, AppName)
}

// Load reads settings from a JSON file.
// Missing fields keep their defaults; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToImageDirOptions converts settings to host.ImageDirOptions.
func (s *Settings) ToImageDirOptions() host.ImageDirOptions {
	return host.ImageDirOptions{
		Extensions:          s.ImageExtensions,
		Sanitize:            s.SanitizeNames,
		MaxConcurrentProbes: s.MaxConcurrentProbes,
	}
}

// LoadHistory reads the recent renames file named by the settings.
func (s *Settings) LoadHistory() *history.History {
	return history.Load(s.HistoryPath, s.HistorySize)
}
