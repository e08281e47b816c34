// Package model defines the core data structures shared by the host
// adapters, the batch driver and the template resolver.
//
// # Layer
//
// Layer is a snapshot of one selectable layer:
//
//	layer := model.Layer{
//	    ID:      "42",
//	    Name:    "Button1",
//	    Bounds:  model.Bounds{Right: 120, Bottom: 120},
//	    Visible: true,
//	}
//	fmt.Println(layer.Bounds.Width()) // 120
//
// # Document
//
// Document carries the document name, its size and the active ruler unit:
//
//	doc := model.Document{Name: "mockup.psd", Width: 1920, Height: 1080, RulerUnit: "pixels"}
//
// # Selection
//
// SelectMode tells a host whether a select call replaces the current
// selection or adds to it.
package model
