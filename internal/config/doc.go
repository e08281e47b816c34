// Package config provides configuration management for layer-renamer.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to host options and the recent renames history
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Template starts as {layer:name}
//	// Five recent renames kept in <user config dir>/layer-renamer/recent-renames.txt
//	// File names sanitised in image directories
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.HistorySize = 10
//	err := settings.Save(config.DefaultPath())
//
// # Configuration Options
//
// Settings includes options for:
//   - The template the dialog starts with
//   - Recent renames file location and size
//   - Image directory handling (sanitising, probing, extensions)
//   - Log file and verbosity
package config
