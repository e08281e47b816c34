package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/handiism/layer-renamer/internal/io"
	"github.com/handiism/layer-renamer/internal/model"
)

// ImageDirOptions configures an ImageDir host.
type ImageDirOptions struct {
	// Extensions lists accepted image extensions. Empty means the defaults.
	Extensions []string

	// Sanitize replaces characters that are invalid in file names instead
	// of rejecting the name.
	Sanitize bool

	// MaxConcurrentProbes limits parallel image header reads.
	MaxConcurrentProbes int

	Logger *zap.Logger
}

// ImageDir is a Host that treats a directory of image files as a document.
//
// Every image file is a layer, in natural file name order ("frame2" before
// "frame10"):
//   - the layer name is the file name without extension
//   - the bounds are (0, 0, width, height) of the image
//   - a dot-prefixed file is a hidden layer
//
// The document is named after the directory, measures in pixels and is as
// large as the largest image. Identifiers are the file names at open time
// and stay valid across renames. Selection lives in memory.
type ImageDir struct {
	mu       sync.Mutex
	dir      string
	images   *ioutils.ImageService
	sanitize bool
	probes   int
	logger   *zap.Logger

	entries []*dirEntry
	byID    map[model.LayerID]*dirEntry
}

type dirEntry struct {
	id       model.LayerID
	file     string
	selected bool
	info     *ioutils.ImageInfo
}

// OpenImageDir scans dir for image files.
func OpenImageDir(dir string, opts ImageDirOptions) (*ImageDir, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxConcurrentProbes < 1 {
		opts.MaxConcurrentProbes = 4
	}

	d := &ImageDir{
		dir:      dir,
		images:   ioutils.NewImageService(opts.Extensions),
		sanitize: opts.Sanitize,
		probes:   opts.MaxConcurrentProbes,
		logger:   opts.Logger,
		byID:     make(map[model.LayerID]*dirEntry),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !d.images.IsImage(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.SliceStable(files, func(i, j int) bool {
		return naturalLess(displayKey(files[i]), displayKey(files[j]))
	})

	for _, f := range files {
		e := &dirEntry{id: model.LayerID(f), file: f}
		d.entries = append(d.entries, e)
		d.byID[e.id] = e
	}

	d.logger.Debug("Opened image directory", zap.String("dir", dir), zap.Int("layers", len(files)))
	return d, nil
}

// displayKey orders hidden files among visible ones.
func displayKey(file string) string {
	return strings.ToLower(strings.TrimPrefix(file, "."))
}

// Document returns the directory as a document.
func (d *ImageDir) Document(ctx context.Context) (model.Document, error) {
	d.mu.Lock()
	all := append([]*dirEntry(nil), d.entries...)
	d.mu.Unlock()

	layers, err := d.snapshot(ctx, all)
	if err != nil {
		return model.Document{}, err
	}

	doc := model.Document{Name: filepath.Base(d.dir), RulerUnit: "pixels"}
	for _, l := range layers {
		if l.Bounds.Right > doc.Width {
			doc.Width = l.Bounds.Right
		}
		if l.Bounds.Bottom > doc.Height {
			doc.Height = l.Bounds.Bottom
		}
	}
	return doc, nil
}

// Layers returns every image in display order.
func (d *ImageDir) Layers(ctx context.Context) ([]model.Layer, error) {
	d.mu.Lock()
	all := append([]*dirEntry(nil), d.entries...)
	d.mu.Unlock()

	return d.snapshot(ctx, all)
}

// SelectedLayers returns the selected images in display order.
func (d *ImageDir) SelectedLayers(ctx context.Context) ([]model.Layer, error) {
	d.mu.Lock()
	var sel []*dirEntry
	for _, e := range d.entries {
		if e.selected {
			sel = append(sel, e)
		}
	}
	d.mu.Unlock()

	return d.snapshot(ctx, sel)
}

// snapshot probes image sizes concurrently and builds layers in the order
// of entries. An unreadable image becomes a layer with empty bounds.
func (d *ImageDir) snapshot(ctx context.Context, entries []*dirEntry) ([]model.Layer, error) {
	infos := make([]ioutils.ImageInfo, len(entries))
	files := make([]string, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.probes)

	for i, e := range entries {
		d.mu.Lock()
		files[i] = e.file
		cached := e.info
		d.mu.Unlock()

		if cached != nil {
			infos[i] = *cached
			continue
		}

		i, e := i, e
		g.Go(func() error {
			info, err := d.images.Probe(gctx, filepath.Join(d.dir, files[i]))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				d.logger.Warn("Could not read image size", zap.String("file", files[i]), zap.Error(err))
				return nil
			}
			infos[i] = info

			d.mu.Lock()
			e.info = &info
			d.mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	layers := make([]model.Layer, len(entries))
	for i, e := range entries {
		layers[i] = model.Layer{
			ID:      e.id,
			Name:    layerName(files[i]),
			Bounds:  model.Bounds{Right: float64(infos[i].Width), Bottom: float64(infos[i].Height)},
			Visible: !strings.HasPrefix(files[i], "."),
		}
	}
	return layers, nil
}

// SetName renames the image file, keeping its extension and hidden prefix.
// Names starting with a dot are rejected with ErrInvalidName.
func (d *ImageDir) SetName(ctx context.Context, id model.LayerID, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}

	if d.sanitize {
		name = ioutils.SanitizeFileName(name)
	}
	// A leading dot marks a hidden file.
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	prefix := ""
	if strings.HasPrefix(e.file, ".") {
		prefix = "."
	}
	return d.move(e, prefix+name+filepath.Ext(e.file))
}

// Visibility reports whether the image file is not dot-prefixed.
func (d *ImageDir) Visibility(ctx context.Context, id model.LayerID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.byID[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	return !strings.HasPrefix(e.file, "."), nil
}

// SetVisibility adds or removes the dot prefix of the image file.
func (d *ImageDir) SetVisibility(ctx context.Context, id model.LayerID, visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}

	hidden := strings.HasPrefix(e.file, ".")
	switch {
	case visible && hidden:
		return d.move(e, strings.TrimPrefix(e.file, "."))
	case !visible && !hidden:
		return d.move(e, "."+e.file)
	}
	return nil
}

// Select changes the in-memory selection.
func (d *ImageDir) Select(ctx context.Context, id model.LayerID, mode model.SelectMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	if mode == model.SelectReplace {
		for _, other := range d.entries {
			other.selected = false
		}
	}
	e.selected = true
	return nil
}

// move renames e's file to target within the directory. Callers hold d.mu.
func (d *ImageDir) move(e *dirEntry, target string) error {
	if target == e.file {
		return nil
	}

	from := filepath.Join(d.dir, e.file)
	to := filepath.Join(d.dir, target)

	// A case-only rename on a case-insensitive filesystem finds the source
	// itself at the target path; anything else there is another file.
	if dst, err := os.Stat(to); err == nil {
		src, err := os.Stat(from)
		if err != nil {
			return err
		}
		if !os.SameFile(src, dst) {
			return fmt.Errorf("%w: %s", ErrNameTaken, target)
		}
	}

	if err := os.Rename(from, to); err != nil {
		return err
	}

	d.logger.Debug("Renamed image", zap.String("from", e.file), zap.String("to", target))
	e.file = target
	return nil
}

func layerName(file string) string {
	return strings.TrimSuffix(strings.TrimPrefix(file, "."), filepath.Ext(file))
}
