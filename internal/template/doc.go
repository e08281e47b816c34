// Package template resolves layer name templates.
//
// A template is free text mixed with keywords from a fixed vocabulary such
// as {layer:name}, {doc:width} or {nn:1}. There is no nesting, no
// conditionals and no escaping: text that is not an exact keyword is copied
// through unchanged.
//
// # Contexts
//
// BatchContext holds facts shared by every layer of one rename batch (the
// document and today's date). RenderContext adds one layer's facts and its
// position counters:
//
//	batch := template.NewBatchContext(doc, time.Now())
//	for i, layer := range layers {
//	    ctx := template.NewRenderContext(batch, layer, i, len(layers))
//	    name := template.Resolve(tmpl, ctx)
//	}
//
// # Counters
//
// For a batch of N layers, {n} and {n:1} count N, N-1, ..., 1 and {n:0}
// counts N-1, ..., 0; {nn} and {nn:1} count 1, 2, ..., N and {nn:0} counts
// 0, ..., N-1. A preview context has pending counters, which render as
// "$↑" for the {n} family and "$↓" for the {nn} family.
package template
