package rewrite

import "strconv"

// SegmentKind identifies the variant of a template segment.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentRef
	SegmentExpr
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentText:
		return "text"
	case SegmentRef:
		return "ref"
	case SegmentExpr:
		return "expr"
	default:
		return "unknown"
	}
}

// Span is a half-open character range in the original template.
type Span struct {
	Start int
	End   int
}

// GroupRef identifies a capture group by position or by name. Positional
// and named references share one id space but are distinguished by type:
// an id written as digits is positional, anything else is a name.
type GroupRef struct {
	// Name is the group name for named references; empty for positional ones.
	Name string
	// Index is the group index for positional references. Index 0 is the
	// whole match.
	Index int
	// Raw is the id exactly as written after the sigil.
	Raw string
}

// Named reports whether the reference is by name rather than by position.
func (g GroupRef) Named() bool {
	return g.Name != ""
}

// Surface returns the reference as it appears in a template.
func (g GroupRef) Surface() string {
	return "$" + g.Raw
}

func (g GroupRef) String() string {
	if g.Named() {
		return g.Name
	}
	return strconv.Itoa(g.Index)
}

// parseRef interprets an id run. Digit-only runs are positional indices,
// everything else is a name.
func parseRef(raw string) GroupRef {
	if idx, err := strconv.Atoi(raw); err == nil && idx >= 0 {
		return GroupRef{Index: idx, Raw: raw}
	}
	return GroupRef{Name: raw, Raw: raw}
}

// Segment is one piece of a compiled template.
type Segment struct {
	Kind SegmentKind
	// Text holds the literal value for text segments, and the raw
	// expression source (delimiters excluded, as written) for expression
	// segments.
	Text string
	// Ref is set for capture reference segments.
	Ref GroupRef
	// Expr is the compiled expression for expression segments.
	Expr *Program
	// Refs lists the capture ids referenced inside an expression segment,
	// deduplicated in order of first appearance.
	Refs []GroupRef
	// Span locates the segment in the source template.
	Span Span
}

// CompiledTemplate is the immutable result of compiling a template
// string. It is built once at Rewriter construction and never mutated,
// which is what makes a Rewriter safe for concurrent use.
type CompiledTemplate struct {
	Source   string
	Segments []Segment
}
