package template

import (
	"time"

	"github.com/handiism/layer-renamer/internal/model"
)

// BatchContext holds the facts that stay constant for a whole rename batch:
// the document facts and the date the batch started.
//
// Build it once per batch with NewBatchContext and pass it by value.
type BatchContext struct {
	DocName   string
	DocWidth  int
	DocHeight int

	// RulerUnit is the raw host unit name; {doc:rulerunits} maps it to a label.
	RulerUnit string

	Year  int
	Month int
	Day   int
}

// NewBatchContext captures doc and the calendar date of now.
//
// Document sizes are truncated toward zero, the same way layer sizes are.
func NewBatchContext(doc model.Document, now time.Time) BatchContext {
	return BatchContext{
		DocName:   doc.Name,
		DocWidth:  int(doc.Width),
		DocHeight: int(doc.Height),
		RulerUnit: doc.RulerUnit,
		Year:      now.Year(),
		Month:     int(now.Month()),
		Day:       now.Day(),
	}
}

// RenderContext is everything needed to resolve a template for one item:
// the batch facts, the item's layer facts and its position counters.
type RenderContext struct {
	BatchContext

	LayerName   string
	LayerWidth  int
	LayerHeight int

	Ascending  Counter
	Descending Counter
}

// NewRenderContext builds the context for the item at index (0-based) of a
// batch of total items.
func NewRenderContext(batch BatchContext, layer model.Layer, index, total int) RenderContext {
	asc, desc := Counters(index, total)
	return RenderContext{
		BatchContext: batch,
		LayerName:    layer.Name,
		LayerWidth:   layer.Bounds.Width(),
		LayerHeight:  layer.Bounds.Height(),
		Ascending:    asc,
		Descending:   desc,
	}
}

// NewPreviewContext builds a context for live preview: layer facts are real
// but both counters are pending.
func NewPreviewContext(batch BatchContext, layer model.Layer) RenderContext {
	return RenderContext{
		BatchContext: batch,
		LayerName:    layer.Name,
		LayerWidth:   layer.Bounds.Width(),
		LayerHeight:  layer.Bounds.Height(),
		Ascending:    Pending(),
		Descending:   Pending(),
	}
}
