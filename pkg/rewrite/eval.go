package rewrite

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/builtin"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// capPrefix keys capture-derived variables in the evaluation environment.
// The prefix is reserved, so capture bindings can never collide with user
// variable names.
const capPrefix = "__match_"

// capKey returns the environment key for a capture reference. References
// written differently but naming the same group ("7" and "007") share a
// key.
func capKey(ref GroupRef) string {
	if ref.Named() {
		return capPrefix + ref.Name
	}
	return capPrefix + strconv.Itoa(ref.Index)
}

// Program is an expression compiled against the engine grammar, ready to
// run against an evaluation environment.
type Program struct {
	source  string
	program *vm.Program
	// idents are the free identifiers of the expression; every one must
	// be bound by the evaluation environment.
	idents []string
}

// Source returns the expression source handed to the engine, with capture
// references rewritten to their environment keys.
func (p *Program) Source() string {
	return p.source
}

func (p *Program) run(env map[string]interface{}) (interface{}, error) {
	// A map environment yields nil for missing keys instead of failing,
	// so unbound identifiers are checked here.
	for _, name := range p.idents {
		if _, ok := env[name]; !ok {
			return nil, fmt.Errorf("undefined identifier %s", name)
		}
	}
	return expr.Run(p.program, env)
}

// parseExpression syntax-checks expression raw text. Capture references
// are rewritten to reserved identifiers and escapes stripped before the
// source reaches the engine; no environment is declared, so undefined
// identifiers surface at evaluation time, not here.
func parseExpression(raw string) (*Program, []GroupRef, error) {
	refs := scanRefs(raw)
	src := rewriteSource(raw)
	program, err := expr.Compile(src)
	if err != nil {
		return nil, nil, err
	}
	return &Program{source: src, program: program, idents: scanIdents(src)}, refs, nil
}

// scanIdents extracts the free identifiers of an expression source in
// order of first appearance. Engine builtins and let-declared names are
// not free and are excluded.
func scanIdents(src string) []string {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil
	}
	v := &identVisitor{
		seen:     make(map[string]bool),
		declared: make(map[string]bool),
	}
	ast.Walk(&tree.Node, v)

	var idents []string
	for _, name := range v.order {
		if !v.declared[name] {
			idents = append(idents, name)
		}
	}
	return idents
}

type identVisitor struct {
	seen     map[string]bool
	declared map[string]bool
	order    []string
}

// Visit runs post-order, so declared names are filtered after the walk
// rather than during it.
func (v *identVisitor) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.VariableDeclaratorNode:
		v.declared[n.Name] = true
	case *ast.IdentifierNode:
		if v.seen[n.Value] {
			return
		}
		if _, ok := builtin.Index[n.Value]; ok {
			return
		}
		v.seen[n.Value] = true
		v.order = append(v.order, n.Value)
	}
}

// rewriteSource replaces every unescaped capture reference in expression
// raw text with its environment key and strips escape characters.
func rewriteSource(raw string) string {
	var b strings.Builder
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
			b.WriteString(capKey(parseRef(raw[i+1 : j])))
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// buildEnv assembles the evaluation environment for one expression: user
// variables first, then the math namespace when enabled, then one binding
// per referenced capture id. Captured text that parses as a number is
// bound as a number, anything else as the raw text.
func (r *Rewriter) buildEnv(refs []GroupRef, resolved map[string]string) map[string]interface{} {
	env := make(map[string]interface{}, len(r.vars)+len(mathEnv)+len(refs))
	for name, value := range r.vars {
		env[name] = value
	}
	if r.math {
		for name, value := range mathEnv {
			env[name] = value
		}
	}
	for _, ref := range refs {
		key := capKey(ref)
		text := resolved[key]
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			env[key] = n
		} else {
			env[key] = text
		}
	}
	return env
}

// formatValue renders an evaluation result as text. Floats that are
// exactly integral drop the fractional part; other numbers use standard
// formatting; everything else renders via its natural text form.
func formatValue(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		return formatValue(float64(n))
	case int:
		return strconv.Itoa(n)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", n)
	default:
		return fmt.Sprintf("%v", v)
	}
}
