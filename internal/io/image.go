package ioutils

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// DefaultImageExtensions lists the file extensions ImageService treats as
// images, each with its leading dot.
var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// ImageInfo is the header information of an image file.
type ImageInfo struct {
	Width  int
	Height int

	// Format is the decoder name, e.g. "png" or "webp".
	Format string
}

// ImageService reads image headers.
//
// Only the header is decoded, so probing a large file is cheap.
//
// Example usage:
//
//	svc := NewImageService(nil)
//	if svc.IsImage("button.png") {
//	    info, err := svc.Probe(ctx, "/assets/button.png")
//	    fmt.Println(info.Width, info.Height)
//	}
type ImageService struct {
	extensions map[string]struct{}
}

// NewImageService creates a new ImageService that accepts the given
// extensions. A nil or empty list means DefaultImageExtensions.
func NewImageService(extensions []string) *ImageService {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return &ImageService{extensions: set}
}

// IsImage reports whether name has one of the accepted extensions.
func (s *ImageService) IsImage(name string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Probe decodes the header of the image at path.
//
// Parameters:
//   - ctx: Checked before the file is opened
//   - path: Image file path (PNG, JPEG, GIF, BMP, TIFF or WebP)
func (s *ImageService) Probe(ctx context.Context, path string) (ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return ImageInfo{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
