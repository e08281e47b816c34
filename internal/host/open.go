package host

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// OpenOptions selects and configures a host adapter.
//
// Exactly one of Manifest and Dir must be set.
type OpenOptions struct {
	// Manifest is the path of a YAML document manifest.
	Manifest string

	// Dir is a directory of image files.
	Dir string

	// Select replaces the initial selection with layers whose names match
	// one of these patterns. Without patterns a manifest keeps its stored
	// selection and an image directory selects every image.
	Select []string

	ImageDir ImageDirOptions

	Logger *zap.Logger
}

// Source is a host that can also enumerate all of its layers.
type Source interface {
	Host
	Lister
}

// Open creates the host described by opts and applies the initial selection.
func Open(ctx context.Context, opts OpenOptions) (Source, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var (
		h   Source
		err error
	)
	switch {
	case opts.Manifest != "" && opts.Dir != "":
		return nil, errors.New("choose either a manifest or an image directory, not both")
	case opts.Manifest != "":
		h, err = OpenManifest(opts.Manifest, opts.Logger)
	case opts.Dir != "":
		dirOpts := opts.ImageDir
		if dirOpts.Logger == nil {
			dirOpts.Logger = opts.Logger
		}
		h, err = OpenImageDir(opts.Dir, dirOpts)
	default:
		return nil, errors.New("no document: set a manifest or an image directory")
	}
	if err != nil {
		return nil, err
	}

	patterns := opts.Select
	if len(patterns) == 0 && opts.Dir != "" {
		patterns = []string{"*"}
	}
	if len(patterns) > 0 {
		n, err := SelectMatching(ctx, h, patterns)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("Applied selection", zap.Strings("patterns", patterns), zap.Int("selected", n))
	}

	return h, nil
}
