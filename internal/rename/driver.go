package rename

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/handiism/layer-renamer/internal/host"
	"github.com/handiism/layer-renamer/internal/model"
	"github.com/handiism/layer-renamer/internal/template"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a batch progress update.
//
// Step counts finished steps out of Total. A batch of N layers has 2×N
// steps: one per rename and one per reselect. Events without a step
// (Total == 0) are informational.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Step    int
	Total   int
}

// Renamed records a layer that got its new name.
type Renamed struct {
	ID      model.LayerID
	OldName string
	NewName string
}

// Stage names the batch step a failure happened in.
type Stage string

const (
	StageRename   Stage = "rename"
	StageReselect Stage = "reselect"
)

// Failure records a layer the batch could not fully process.
type Failure struct {
	ID      model.LayerID
	OldName string
	NewName string
	Stage   Stage
	Err     error
}

// Error implements error.
func (f Failure) Error() string {
	return fmt.Sprintf("%s %s (%q): %v", f.Stage, f.ID, f.OldName, f.Err)
}

// Unwrap returns the host error.
func (f Failure) Unwrap() error {
	return f.Err
}

// Result summarises a batch.
type Result struct {
	Renamed    []Renamed
	Failed     []Failure
	Reselected int
}

// OK reports whether every step of the batch succeeded.
func (r *Result) OK() bool {
	return len(r.Failed) == 0
}

// PlannedRename is one entry of a dry run.
type PlannedRename struct {
	ID      model.LayerID
	OldName string
	NewName string
}

// Driver renames the selected layers of a host from a template.
type Driver struct {
	host       host.Host
	logger     *zap.Logger
	onProgress func(ProgressEvent)
	now        func() time.Time

	done  int32
	total int32
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(d *Driver) {
		d.onProgress = fn
	}
}

// WithClock sets the clock the batch date is read from.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDriver creates a Driver for h.
func NewDriver(h host.Host, opts ...Option) *Driver {
	d := &Driver{
		host:   h,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Progress returns the finished and total step counts of the running or
// last batch.
func (d *Driver) Progress() (done, total int32) {
	return atomic.LoadInt32(&d.done), atomic.LoadInt32(&d.total)
}

// Run renames every selected layer.
//
// The selection is snapshotted first, in display order. Each layer gets the
// template resolved against its own context; its visibility is re-applied
// after the rename. A failing layer is recorded in the result and the batch
// carries on. Afterwards the original selection is restored and, for hosts
// that buffer changes, committed once.
//
// An error is returned only when the batch could not start or the final
// commit failed.
func (d *Driver) Run(ctx context.Context, tmpl string) (*Result, error) {
	batch, layers, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	n := len(layers)
	atomic.StoreInt32(&d.done, 0)
	atomic.StoreInt32(&d.total, int32(2*n))

	if n == 0 {
		d.logger.Info("No layers selected")
		d.progress(ProgressEvent{Message: "No layers selected", Level: LevelInfo})
		return result, nil
	}

	d.logger.Debug("Starting batch", zap.String("template", tmpl), zap.Int("layers", n))

	for i, layer := range layers {
		rctx := template.NewRenderContext(batch, layer, i, n)
		name := template.Resolve(tmpl, rctx)

		if err := d.renameOne(ctx, layer.ID, name); err != nil {
			f := Failure{ID: layer.ID, OldName: layer.Name, NewName: name, Stage: StageRename, Err: err}
			result.Failed = append(result.Failed, f)
			d.logger.Warn("Rename failed", zap.String("layer", string(layer.ID)), zap.String("name", name), zap.Error(err))
			d.step(ProgressEvent{Message: f.Error(), Level: LevelError})
			continue
		}

		result.Renamed = append(result.Renamed, Renamed{ID: layer.ID, OldName: layer.Name, NewName: name})
		d.step(ProgressEvent{Message: fmt.Sprintf("%s → %s", layer.Name, name), Level: LevelVerbose})
	}

	for i, layer := range layers {
		mode := model.SelectAdd
		if i == 0 {
			mode = model.SelectReplace
		}

		if err := d.host.Select(ctx, layer.ID, mode); err != nil {
			f := Failure{ID: layer.ID, OldName: layer.Name, Stage: StageReselect, Err: err}
			result.Failed = append(result.Failed, f)
			d.logger.Warn("Reselect failed", zap.String("layer", string(layer.ID)), zap.Error(err))
			d.step(ProgressEvent{Message: f.Error(), Level: LevelError})
			continue
		}

		result.Reselected++
		d.step(ProgressEvent{Message: fmt.Sprintf("Reselected %s", layer.Name), Level: LevelVerbose})
	}

	if c, ok := d.host.(host.Committer); ok {
		if err := c.Commit(ctx); err != nil {
			return result, fmt.Errorf("commit: %w", err)
		}
	}

	d.logger.Info("Renamed layers",
		zap.Int("renamed", len(result.Renamed)),
		zap.Int("failed", len(result.Failed)))

	if result.OK() {
		d.progress(ProgressEvent{Message: fmt.Sprintf("Renamed %d layer(s)", len(result.Renamed)), Level: LevelSuccess})
	} else {
		d.progress(ProgressEvent{Message: fmt.Sprintf("Renamed %d layer(s), %d failure(s)", len(result.Renamed), len(result.Failed)), Level: LevelWarning})
	}

	return result, nil
}

// Plan returns the names Run would assign, without changing anything.
func (d *Driver) Plan(ctx context.Context, tmpl string) ([]PlannedRename, error) {
	batch, layers, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	plan := make([]PlannedRename, 0, len(layers))
	for i, layer := range layers {
		rctx := template.NewRenderContext(batch, layer, i, len(layers))
		plan = append(plan, PlannedRename{
			ID:      layer.ID,
			OldName: layer.Name,
			NewName: template.Resolve(tmpl, rctx),
		})
	}
	return plan, nil
}

// Preview resolves tmpl for the first selected layer with pending counters,
// the way the dialog shows it while the template is typed. With nothing
// selected the layer facts are empty.
func (d *Driver) Preview(ctx context.Context, tmpl string) (string, error) {
	pc, err := d.PreviewContext(ctx)
	if err != nil {
		return "", err
	}
	return template.Resolve(tmpl, pc), nil
}

// PreviewContext builds the render context used by Preview. Callers that
// preview on every keystroke build it once and call template.Resolve.
func (d *Driver) PreviewContext(ctx context.Context) (template.RenderContext, error) {
	batch, layers, err := d.snapshot(ctx)
	if err != nil {
		return template.RenderContext{}, err
	}

	var first model.Layer
	if len(layers) > 0 {
		first = layers[0]
	}
	return template.NewPreviewContext(batch, first), nil
}

func (d *Driver) snapshot(ctx context.Context) (template.BatchContext, []model.Layer, error) {
	doc, err := d.host.Document(ctx)
	if err != nil {
		return template.BatchContext{}, nil, fmt.Errorf("read document: %w", err)
	}

	layers, err := d.host.SelectedLayers(ctx)
	if err != nil {
		return template.BatchContext{}, nil, fmt.Errorf("read selection: %w", err)
	}

	return template.NewBatchContext(doc, d.now()), layers, nil
}

// renameOne assigns name to the layer and restores its visibility flag.
func (d *Driver) renameOne(ctx context.Context, id model.LayerID, name string) error {
	visible, err := d.host.Visibility(ctx, id)
	if err != nil {
		return err
	}
	if err := d.host.SetName(ctx, id, name); err != nil {
		return err
	}
	return d.host.SetVisibility(ctx, id, visible)
}

func (d *Driver) step(event ProgressEvent) {
	event.Step = int(atomic.AddInt32(&d.done, 1))
	event.Total = int(atomic.LoadInt32(&d.total))
	d.progress(event)
}

func (d *Driver) progress(event ProgressEvent) {
	if d.onProgress != nil {
		d.onProgress(event)
	}
}
