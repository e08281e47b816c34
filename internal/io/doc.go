// Package ioutils provides file system and image utilities.
//
// This package contains functions for:
//   - Atomic file replacement (history and manifest files)
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Reading image dimensions without decoding pixels
//
// # File Operations
//
//	// Replace a file atomically
//	err := ioutils.WriteFileAtomic(ctx, "/path/to/file.txt", []byte("content"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Button: hover/active") // Returns "Button_ hover_active"
//
// # Image Probing
//
// The ImageService reads image headers:
//
//	svc := ioutils.NewImageService(nil)
//	info, _ := svc.Probe(ctx, "/assets/icon.webp")
//	fmt.Println(info.Width, info.Height, info.Format)
package ioutils
