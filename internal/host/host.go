package host

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/handiism/layer-renamer/internal/model"
)

var (
	// ErrLayerNotFound is returned for an identifier the host does not know.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrNameTaken is returned when a rename would overwrite another layer.
	ErrNameTaken = errors.New("name already taken")

	// ErrInvalidName is returned when the host cannot store the requested name.
	ErrInvalidName = errors.New("invalid layer name")
)

// Host is the image editor the renamer works against.
//
// Layers are addressed by their stable identifier. SelectedLayers returns
// the current multi-selection in display order, top to bottom.
type Host interface {
	Document(ctx context.Context) (model.Document, error)
	SelectedLayers(ctx context.Context) ([]model.Layer, error)
	SetName(ctx context.Context, id model.LayerID, name string) error
	Visibility(ctx context.Context, id model.LayerID) (bool, error)
	SetVisibility(ctx context.Context, id model.LayerID, visible bool) error
	Select(ctx context.Context, id model.LayerID, mode model.SelectMode) error
}

// Lister is implemented by hosts that can enumerate every layer, selected
// or not, in display order.
type Lister interface {
	Layers(ctx context.Context) ([]model.Layer, error)
}

// Committer is implemented by hosts that buffer changes. Commit makes all
// changes since the last commit durable as one step.
type Committer interface {
	Commit(ctx context.Context) error
}

// SelectMatching replaces the selection of h with every layer whose name
// matches one of patterns (path.Match syntax), in display order.
//
// It returns the number of selected layers. With no matching layer the
// selection is left unchanged and 0 is returned.
func SelectMatching(ctx context.Context, h interface {
	Host
	Lister
}, patterns []string) (int, error) {
	layers, err := h.Layers(ctx)
	if err != nil {
		return 0, err
	}

	var ids []model.LayerID
	for _, l := range layers {
		ok, err := matchAny(patterns, l.Name)
		if err != nil {
			return 0, err
		}
		if ok {
			ids = append(ids, l.ID)
		}
	}

	return len(ids), SelectIDs(ctx, h, ids)
}

// SelectIDs makes ids the active selection: the first id replaces the
// current selection and the rest are added to it.
func SelectIDs(ctx context.Context, h Host, ids []model.LayerID) error {
	for i, id := range ids {
		mode := model.SelectAdd
		if i == 0 {
			mode = model.SelectReplace
		}
		if err := h.Select(ctx, id, mode); err != nil {
			return fmt.Errorf("select %s: %w", id, err)
		}
	}
	return nil
}

func matchAny(patterns []string, name string) (bool, error) {
	for _, p := range patterns {
		ok, err := path.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
