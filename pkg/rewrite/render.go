package rewrite

import "strings"

// render produces the replacement text for one match. It is a pure
// function of the compiled template, the match, and the rewriter's
// configuration. Under strict policy the first failure aborts the whole
// render; no partial output is returned for that match.
func (r *Rewriter) render(m *Match) (string, error) {
	var out strings.Builder
	for _, seg := range r.template.Segments {
		switch seg.Kind {
		case SegmentText:
			out.WriteString(seg.Text)

		case SegmentRef:
			text, ok := resolveRef(seg.Ref, m)
			if !ok {
				if r.strict {
					return "", NewReferenceError(seg.Ref.Raw, m.Input())
				}
				out.WriteString(seg.Ref.Surface())
				continue
			}
			out.WriteString(text)

		case SegmentExpr:
			text, err := r.renderExpr(seg, m)
			if err != nil {
				return "", err
			}
			out.WriteString(text)
		}
	}
	return out.String(), nil
}

// renderExpr gates every capture id referenced by the expression through
// the resolver, then evaluates. The two gates stay sequential so that
// both failure causes share one literal-fallback routine: an unresolved
// reference falls back with partial substitution, an evaluation failure
// falls back fully substituted (every reference resolved in that branch).
func (r *Rewriter) renderExpr(seg Segment, m *Match) (string, error) {
	resolved := make(map[string]string, len(seg.Refs))
	missing := ""
	for _, ref := range seg.Refs {
		text, ok := resolveRef(ref, m)
		if !ok {
			if missing == "" {
				missing = ref.Raw
			}
			continue
		}
		resolved[capKey(ref)] = text
	}
	if missing != "" {
		if r.strict {
			return "", NewReferenceError(missing, m.Input())
		}
		return literalExpr(seg.Text, m), nil
	}

	val, err := seg.Expr.run(r.buildEnv(seg.Refs, resolved))
	if err != nil {
		if r.strict {
			return "", NewEvaluationError(seg.Text, err)
		}
		return literalExpr(seg.Text, m), nil
	}
	return formatValue(val), nil
}

// literalExpr reproduces an expression region as literal text: resolved
// references substituted by their captured text, unresolved ones left as
// written, escapes stripped, the original delimiters restored.
func literalExpr(raw string, m *Match) string {
	var b strings.Builder
	b.WriteByte(sigil)
	b.WriteByte(exprOpen)
	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == escapeChar:
			if i+1 < len(raw) {
				b.WriteByte(raw[i+1])
				i += 2
			} else {
				b.WriteByte(c)
				i++
			}
		case c == sigil:
			j := i + 1
			for j < len(raw) && isIDChar(raw[j]) {
				j++
			}
			if j == i+1 {
				b.WriteByte(c)
				i++
				continue
			}
			if text, ok := resolveRef(parseRef(raw[i+1:j]), m); ok {
				b.WriteString(text)
			} else {
				b.WriteString(raw[i:j])
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	b.WriteByte(exprClose)
	return b.String()
}
