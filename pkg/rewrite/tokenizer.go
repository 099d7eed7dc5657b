package rewrite

import "strings"

const (
	sigil      = '$'
	escapeChar = '\\'
	exprOpen   = '('
	exprClose  = ')'
)

func isIDChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// CompileTemplate parses a template string into an ordered segment
// sequence in a single left-to-right scan.
//
// The escape character consumes the following character verbatim and
// takes precedence over every other rule. A sigil followed by an opening
// parenthesis starts an expression region, closed by the parenthesis
// that balances the nesting count; a sigil followed by an id run is a
// capture reference; a bare sigil is plain text. Malformed regions
// degrade to plain text. The only compile failure is an expression whose
// raw text does not parse while strict is set.
func CompileTemplate(template string, strict bool) (*CompiledTemplate, error) {
	logger := GetLogger()

	var segs []Segment
	var buf strings.Builder
	bufStart := 0

	flush := func(end int) {
		if buf.Len() == 0 {
			return
		}
		segs = append(segs, Segment{
			Kind: SegmentText,
			Text: buf.String(),
			Span: Span{Start: bufStart, End: end},
		})
		buf.Reset()
	}

	i := 0
	for i < len(template) {
		c := template[i]
		switch {
		case c == escapeChar:
			if i+1 < len(template) {
				buf.WriteByte(template[i+1])
				i += 2
			} else {
				// Trailing escape with nothing to escape stays literal.
				buf.WriteByte(c)
				i++
			}

		case c == sigil && i+1 < len(template) && template[i+1] == exprOpen:
			end, ok := findExprEnd(template, i)
			if !ok {
				// Never closed: the rest of the template is plain text.
				buf.WriteString(template[i:])
				i = len(template)
				continue
			}
			raw := template[i+2 : end-1]
			prog, refs, err := parseExpression(raw)
			if err != nil {
				if strict {
					return nil, NewTemplateError(raw, i, err)
				}
				buf.WriteString(template[i:end])
				i = end
				continue
			}
			flush(i)
			segs = append(segs, Segment{
				Kind: SegmentExpr,
				Text: raw,
				Expr: prog,
				Refs: refs,
				Span: Span{Start: i, End: end},
			})
			i = end
			bufStart = end

		case c == sigil:
			j := i + 1
			for j < len(template) && isIDChar(template[j]) {
				j++
			}
			if j == i+1 {
				// Sigil followed by a non-id character or end of input.
				buf.WriteByte(c)
				i++
				continue
			}
			flush(i)
			segs = append(segs, Segment{
				Kind: SegmentRef,
				Ref:  parseRef(template[i+1 : j]),
				Span: Span{Start: i, End: j},
			})
			i = j
			bufStart = j

		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush(len(template))

	logger.Debug("compiled template", "length", len(template), "segments", len(segs))

	return &CompiledTemplate{Source: template, Segments: segs}, nil
}

// findExprEnd locates the end of the expression region opened at i
// (template[i] is the sigil, template[i+1] the opening parenthesis). The
// returned end is exclusive of nothing: template[i:end] is the whole
// region including both delimiters. Escaped parentheses do not affect
// the nesting count.
func findExprEnd(template string, i int) (end int, ok bool) {
	depth := 0
	j := i + 1
	for j < len(template) {
		switch template[j] {
		case escapeChar:
			j += 2
			continue
		case exprOpen:
			depth++
		case exprClose:
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
		j++
	}
	return 0, false
}

// scanRefs extracts capture-id occurrences from expression raw text. It
// honors escapes and maximal id runs exactly like the template scanner,
// but never opens a nested expression region: a sigil followed by a
// parenthesis is a zero-length id run and therefore plain text. The
// result is deduplicated in order of first appearance.
func scanRefs(raw string) []GroupRef {
	var refs []GroupRef
	seen := make(map[string]bool)
	i := 0
	for i < len(raw) {
		switch {
		case raw[i] == escapeChar:
			i += 2
		case raw[i] == sigil:
			j := i + 1
			for j < len(raw) && isIDChar(raw[j]) {
				j++
			}
			if j == i+1 {
				i++
				continue
			}
			ref := parseRef(raw[i+1 : j])
			if key := capKey(ref); !seen[key] {
				seen[key] = true
				refs = append(refs, ref)
			}
			i = j
		default:
			i++
		}
	}
	return refs
}
