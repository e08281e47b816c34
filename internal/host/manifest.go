package host

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	ioutils "github.com/handiism/layer-renamer/internal/io"
	"github.com/handiism/layer-renamer/internal/model"
)

// manifestFile is the on-disk layout of a manifest document.
type manifestFile struct {
	Name       string          `yaml:"name"`
	Width      float64         `yaml:"width"`
	Height     float64         `yaml:"height"`
	RulerUnits string          `yaml:"ruler_units"`
	Layers     []manifestLayer `yaml:"layers"`
}

type manifestLayer struct {
	ID       string       `yaml:"id,omitempty"`
	Name     string       `yaml:"name"`
	Bounds   model.Bounds `yaml:"bounds"`
	Visible  *bool        `yaml:"visible,omitempty"`
	Selected bool         `yaml:"selected,omitempty"`
}

// Manifest is a Host backed by a YAML document description.
//
// A manifest lists the document facts and its layers top to bottom:
//
//	name: mockup.psd
//	width: 1920
//	height: 1080
//	ruler_units: pixels
//	layers:
//	  - id: 3f1c...
//	    name: Button1
//	    bounds: {left: 0, top: 0, right: 120, bottom: 120}
//	    selected: true
//
// Layers without an id get a random UUID; a missing visible flag means
// visible. Changes are kept in memory until Commit rewrites the file.
type Manifest struct {
	*Memory

	path   string
	logger *zap.Logger
}

// OpenManifest loads the manifest at path.
func OpenManifest(path string, logger *zap.Logger) (*Manifest, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	states := make([]LayerState, 0, len(mf.Layers))
	assigned := 0
	for _, ml := range mf.Layers {
		id := ml.ID
		if id == "" {
			id = uuid.NewString()
			assigned++
		}
		visible := true
		if ml.Visible != nil {
			visible = *ml.Visible
		}
		states = append(states, LayerState{
			Layer: model.Layer{
				ID:      model.LayerID(id),
				Name:    ml.Name,
				Bounds:  ml.Bounds,
				Visible: visible,
			},
			Selected: ml.Selected,
		})
	}

	mem, err := NewMemory(model.Document{
		Name:      mf.Name,
		Width:     mf.Width,
		Height:    mf.Height,
		RulerUnit: mf.RulerUnits,
	}, states)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	logger.Debug("Opened manifest",
		zap.String("path", path),
		zap.Int("layers", len(states)),
		zap.Int("assigned_ids", assigned))

	return &Manifest{Memory: mem, path: path, logger: logger}, nil
}

// Commit writes the current document state back to the manifest file.
func (m *Manifest) Commit(ctx context.Context) error {
	doc, _ := m.Document(ctx)
	mf := manifestFile{
		Name:       doc.Name,
		Width:      doc.Width,
		Height:     doc.Height,
		RulerUnits: doc.RulerUnit,
	}
	for _, s := range m.States() {
		visible := s.Visible
		mf.Layers = append(mf.Layers, manifestLayer{
			ID:       string(s.ID),
			Name:     s.Name,
			Bounds:   s.Bounds,
			Visible:  &visible,
			Selected: s.Selected,
		})
	}

	data, err := yaml.Marshal(&mf)
	if err != nil {
		return err
	}
	if err := ioutils.WriteFileAtomic(ctx, m.path, data); err != nil {
		return fmt.Errorf("write manifest %s: %w", m.path, err)
	}

	m.logger.Debug("Saved manifest", zap.String("path", m.path), zap.Int("layers", len(mf.Layers)))
	return nil
}
