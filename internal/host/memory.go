package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/handiism/layer-renamer/internal/model"
)

// LayerState is a layer together with its selection flag.
type LayerState struct {
	model.Layer
	Selected bool
}

// Memory is a Host that keeps a document in memory.
//
// It backs the manifest host and is handy in tests. All methods are safe
// for concurrent use.
type Memory struct {
	mu     sync.Mutex
	doc    model.Document
	layers []*LayerState
	byID   map[model.LayerID]*LayerState
}

// NewMemory creates a Memory host holding doc and layers in display order.
// Duplicate layer identifiers are rejected.
func NewMemory(doc model.Document, layers []LayerState) (*Memory, error) {
	m := &Memory{
		doc:  doc,
		byID: make(map[model.LayerID]*LayerState, len(layers)),
	}
	for _, l := range layers {
		l := l
		if _, dup := m.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate layer id %q", l.ID)
		}
		m.layers = append(m.layers, &l)
		m.byID[l.ID] = &l
	}
	return m, nil
}

// Document returns the document facts.
func (m *Memory) Document(ctx context.Context) (model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc, nil
}

// Layers returns every layer in display order.
func (m *Memory) Layers(ctx context.Context) ([]model.Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Layer, 0, len(m.layers))
	for _, l := range m.layers {
		out = append(out, l.Layer)
	}
	return out, nil
}

// States returns every layer with its selection flag, in display order.
func (m *Memory) States() []LayerState {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]LayerState, 0, len(m.layers))
	for _, l := range m.layers {
		out = append(out, *l)
	}
	return out
}

// SelectedLayers returns the selected layers in display order.
func (m *Memory) SelectedLayers(ctx context.Context) ([]model.Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Layer
	for _, l := range m.layers {
		if l.Selected {
			out = append(out, l.Layer)
		}
	}
	return out, nil
}

// SetName renames the layer.
func (m *Memory) SetName(ctx context.Context, id model.LayerID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	l.Name = name
	return nil
}

// Visibility returns the layer's visibility flag.
func (m *Memory) Visibility(ctx context.Context, id model.LayerID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.byID[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	return l.Visible, nil
}

// SetVisibility sets the layer's visibility flag.
func (m *Memory) SetVisibility(ctx context.Context, id model.LayerID, visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	l.Visible = visible
	return nil
}

// Select changes the selection.
func (m *Memory) Select(ctx context.Context, id model.LayerID, mode model.SelectMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, id)
	}
	if mode == model.SelectReplace {
		for _, other := range m.layers {
			other.Selected = false
		}
	}
	l.Selected = true
	return nil
}
