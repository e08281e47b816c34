package model

// Document holds the facts about the open document that template keywords
// can reference.
//
// Width and Height are expressed in RulerUnit, the unit the host is
// currently measuring in. RulerUnit is the host's raw unit name, for
// example "pixels", "Units.CM" or "PERCENT".
type Document struct {
	Name      string
	Width     float64
	Height    float64
	RulerUnit string
}
