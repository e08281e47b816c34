package template

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Group is the keyword family a placeholder belongs to.
type Group int

const (
	GroupLayer Group = iota
	GroupDocument
	GroupDate
	GroupNumber
)

// String returns the heading used for the group in keyword listings.
func (g Group) String() string {
	switch g {
	case GroupLayer:
		return "Layer keywords"
	case GroupDocument:
		return "Document keywords"
	case GroupDate:
		return "Date keywords"
	case GroupNumber:
		return "Number keywords"
	default:
		return "Keywords"
	}
}

// Groups lists every keyword group in display order.
func Groups() []Group {
	return []Group{GroupLayer, GroupDocument, GroupDate, GroupNumber}
}

// Placeholder is one keyword of the fixed template vocabulary.
//
// The token spelling is the wire format shared with saved templates and must
// never change.
type Placeholder struct {
	// Token is the literal keyword, braces included, e.g. "{layer:width}".
	Token string

	// Group is the keyword family.
	Group Group

	// Description is a short human explanation of the value.
	Description string

	value func(RenderContext) string
}

// Value computes the placeholder's replacement text for ctx.
func (p Placeholder) Value(ctx RenderContext) string {
	if p.value == nil {
		return p.Token
	}
	return p.value(ctx)
}

// Markers rendered for counters that have no position yet.
const (
	AscendingMarker  = "$↑"
	DescendingMarker = "$↓"
)

// vocabulary is the closed keyword set, in the order the keywords are
// presented to users.
var vocabulary = []Placeholder{
	{"{layer:name}", GroupLayer, "Layer name", func(c RenderContext) string {
		return c.LayerName
	}},
	{"{layer:name:lowercase}", GroupLayer, "Layer name in lowercase", func(c RenderContext) string {
		return lower(c.LayerName)
	}},
	{"{layer:width}", GroupLayer, "Layer width", func(c RenderContext) string {
		return strconv.Itoa(c.LayerWidth)
	}},
	{"{layer:height}", GroupLayer, "Layer height", func(c RenderContext) string {
		return strconv.Itoa(c.LayerHeight)
	}},

	{"{doc:name}", GroupDocument, "Document name", func(c RenderContext) string {
		return c.DocName
	}},
	{"{doc:name:lowercase}", GroupDocument, "Document name in lowercase", func(c RenderContext) string {
		return lower(c.DocName)
	}},
	{"{doc:width}", GroupDocument, "Document width", func(c RenderContext) string {
		return strconv.Itoa(c.DocWidth)
	}},
	{"{doc:height}", GroupDocument, "Document height", func(c RenderContext) string {
		return strconv.Itoa(c.DocHeight)
	}},
	// Pairs with the size keywords: "{layer:width}x{layer:height}{doc:rulerunits}" gives "200x200mm".
	{"{doc:rulerunits}", GroupDocument, "Ruler units (px, mm, inches...)", func(c RenderContext) string {
		return RulerUnitLabel(c.RulerUnit)
	}},

	{"{year}", GroupDate, "Current year", func(c RenderContext) string {
		return strconv.Itoa(c.Year)
	}},
	{"{month}", GroupDate, "Current month", func(c RenderContext) string {
		return strconv.Itoa(c.Month)
	}},
	{"{month:0}", GroupDate, "Current month with leading zero", func(c RenderContext) string {
		return pad2(c.Month)
	}},
	{"{day}", GroupDate, "Current day", func(c RenderContext) string {
		return strconv.Itoa(c.Day)
	}},
	{"{day:0}", GroupDate, "Current day with leading zero", func(c RenderContext) string {
		return pad2(c.Day)
	}},

	{"{n:0}", GroupNumber, "Numbers counting down to 0 (2,1,0)", func(c RenderContext) string {
		return c.Ascending.format(-1, AscendingMarker)
	}},
	{"{n}", GroupNumber, "Numbers counting down to 1 (3,2,1)", func(c RenderContext) string {
		return c.Ascending.format(0, AscendingMarker)
	}},
	{"{n:1}", GroupNumber, "Numbers counting down to 1 (3,2,1)", func(c RenderContext) string {
		return c.Ascending.format(0, AscendingMarker)
	}},
	{"{nn:0}", GroupNumber, "Numbers counting up from 0 (0,1,2)", func(c RenderContext) string {
		return c.Descending.format(0, DescendingMarker)
	}},
	{"{nn}", GroupNumber, "Numbers counting up from 1 (1,2,3)", func(c RenderContext) string {
		return c.Descending.format(1, DescendingMarker)
	}},
	{"{nn:1}", GroupNumber, "Numbers counting up from 1 (1,2,3)", func(c RenderContext) string {
		return c.Descending.format(1, DescendingMarker)
	}},
}

// byLength holds the vocabulary sorted longest token first, so the first
// prefix hit during tokenizing is the longest match.
var byLength = func() []Placeholder {
	sorted := make([]Placeholder, len(vocabulary))
	copy(sorted, vocabulary)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Token) > len(sorted[j].Token)
	})
	return sorted
}()

// Vocabulary returns a copy of every supported placeholder in display order.
func Vocabulary() []Placeholder {
	out := make([]Placeholder, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// ByGroup returns the placeholders of one group in display order.
func ByGroup(g Group) []Placeholder {
	var out []Placeholder
	for _, p := range vocabulary {
		if p.Group == g {
			out = append(out, p)
		}
	}
	return out
}

// Lookup finds the placeholder spelled exactly as token.
func Lookup(token string) (Placeholder, bool) {
	for _, p := range vocabulary {
		if p.Token == token {
			return p, true
		}
	}
	return Placeholder{}, false
}

// RulerUnitLabel maps a host ruler unit name to the short label used in names.
//
// Any namespace prefix ("Units.PIXELS") is dropped and the name lower-cased.
// Percent, pixels and points get symbolic labels; every other unit passes
// through as its lower-cased name.
//
// Example:
//
//	RulerUnitLabel("Units.PIXELS") // "px"
//	RulerUnitLabel("percent")      // "%"
//	RulerUnitLabel("MM")           // "mm"
func RulerUnitLabel(raw string) string {
	unit := strings.TrimSpace(raw)
	if i := strings.LastIndexByte(unit, '.'); i >= 0 {
		unit = unit[i+1:]
	}
	unit = strings.ToLower(unit)

	switch unit {
	case "percent":
		return "%"
	case "pixels":
		return "px"
	case "points":
		return "pts"
	default:
		return unit
	}
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
