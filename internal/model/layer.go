package model

// LayerID is the stable identifier a host assigns to a layer.
//
// Identifiers survive renames, so the batch driver can snapshot a selection,
// rename every layer in it and then reselect exactly the same set.
type LayerID string

// Bounds is a layer's bounding box in document units.
//
// Values are kept as floats because hosts report sub-pixel bounds; the
// template keywords truncate them to integers.
//
// Example:
//
//	b := Bounds{Left: 10, Top: 10, Right: 130.6, Bottom: 130}
//	b.Width()  // 120
//	b.Height() // 120
type Bounds struct {
	Left   float64 `yaml:"left" json:"left"`
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
}

// Width returns the integer width of the box, truncated toward zero.
func (b Bounds) Width() int {
	return int(b.Right - b.Left)
}

// Height returns the integer height of the box, truncated toward zero.
func (b Bounds) Height() int {
	return int(b.Bottom - b.Top)
}

// Layer is a snapshot of one selectable layer.
//
// A Layer value is a copy: renaming through a host does not update
// previously returned snapshots.
type Layer struct {
	// ID is the host identifier of the layer.
	ID LayerID

	// Name is the layer name at the time of the snapshot.
	Name string

	// Bounds is the layer's bounding box.
	Bounds Bounds

	// Visible is the layer's visibility flag.
	Visible bool
}

// SelectMode controls how a select call combines with the current selection.
type SelectMode int

const (
	// SelectReplace makes the layer the only selected layer.
	SelectReplace SelectMode = iota

	// SelectAdd adds the layer to the current selection.
	SelectAdd
)

// String returns the mode name used in log fields.
func (m SelectMode) String() string {
	switch m {
	case SelectReplace:
		return "replace"
	case SelectAdd:
		return "add"
	default:
		return "unknown"
	}
}
