package template

import (
	"strings"
)

// SegmentKind tells literal template text apart from a recognised keyword.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentPlaceholder
)

// Segment is one piece of a tokenized template.
type Segment struct {
	Kind SegmentKind

	// Text is the template text the segment covers.
	Text string

	// Placeholder is set for SegmentPlaceholder segments.
	Placeholder Placeholder
}

// Tokens splits tmpl into literal and placeholder segments.
//
// The template is scanned left to right once. At every '{' the longest
// vocabulary token starting there is taken; text that matches no token,
// including unknown or malformed keywords, stays literal. Adjacent literal
// text is merged into one segment.
func Tokens(tmpl string) []Segment {
	var segments []Segment
	literalStart := 0
	i := 0

	flush := func(end int) {
		if end > literalStart {
			segments = append(segments, Segment{Kind: SegmentLiteral, Text: tmpl[literalStart:end]})
		}
	}

	for i < len(tmpl) {
		next := strings.IndexByte(tmpl[i:], '{')
		if next < 0 {
			break
		}
		i += next

		p, ok := match(tmpl[i:])
		if !ok {
			i++
			continue
		}

		flush(i)
		segments = append(segments, Segment{Kind: SegmentPlaceholder, Text: p.Token, Placeholder: p})
		i += len(p.Token)
		literalStart = i
	}
	flush(len(tmpl))

	return segments
}

// Resolve substitutes every placeholder in tmpl with its value under ctx.
//
// Resolve is pure: it has no side effects and the same inputs always give
// the same output. Substituted values are emitted as-is and never scanned
// for further keywords, so a layer named "{year}" keeps that name.
//
// Example:
//
//	ctx := RenderContext{LayerName: "Button1", LayerWidth: 120, LayerHeight: 120}
//	ctx.RulerUnit = "pixels"
//	Resolve("{layer:name:lowercase}-{layer:width}x{layer:height}{doc:rulerunits}.png", ctx)
//	// "button1-120x120px.png"
func Resolve(tmpl string, ctx RenderContext) string {
	var sb strings.Builder
	sb.Grow(len(tmpl))

	for _, seg := range Tokens(tmpl) {
		if seg.Kind == SegmentPlaceholder {
			sb.WriteString(seg.Placeholder.Value(ctx))
			continue
		}
		sb.WriteString(seg.Text)
	}

	return sb.String()
}

// HasCounters reports whether tmpl uses any sequence-number keyword, i.e.
// whether its result depends on the item's position in the batch.
func HasCounters(tmpl string) bool {
	for _, seg := range Tokens(tmpl) {
		if seg.Kind == SegmentPlaceholder && seg.Placeholder.Group == GroupNumber {
			return true
		}
	}
	return false
}

// match returns the longest placeholder that s starts with.
func match(s string) (Placeholder, bool) {
	for _, p := range byLength {
		if strings.HasPrefix(s, p.Token) {
			return p, true
		}
	}
	return Placeholder{}, false
}
