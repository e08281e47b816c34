// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/handiism/layer-renamer/internal/config"
)

// New builds the logger for the command line tool.
//
// Logs go to stderr, and additionally to the settings' log file when one is
// configured. Verbose settings enable debug level.
func New(settings *config.Settings) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if settings.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	if settings.LogFile != "" {
		if err := ensureLogDir(settings.LogFile); err != nil {
			return nil, err
		}
		cfg.OutputPaths = append(cfg.OutputPaths, settings.LogFile)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewFileOnly builds the logger for the interactive dialog, which owns the
// terminal. Without a log file it returns a no-op logger.
func NewFileOnly(settings *config.Settings) (*zap.Logger, error) {
	if settings.LogFile == "" {
		return zap.NewNop(), nil
	}
	if err := ensureLogDir(settings.LogFile); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{settings.LogFile}
	cfg.ErrorOutputPaths = []string{settings.LogFile}
	if settings.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func ensureLogDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
