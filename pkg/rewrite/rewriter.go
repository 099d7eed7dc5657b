package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// Rewriter transforms text by rendering a template against matches of a
// pattern. A Rewriter is immutable once constructed and safe to invoke
// concurrently from independent call sites; derive a reconfigured
// instance with With.
type Rewriter struct {
	pattern  *regexp.Regexp
	template *CompiledTemplate
	vars     map[string]interface{}
	math     bool
	strict   bool
}

type settings struct {
	pattern  string
	template string
	vars     map[string]interface{}
	math     bool
	strict   bool
}

// Option configures a Rewriter under construction.
type Option func(*settings)

// WithPattern replaces the pattern. Useful with With; New takes the
// pattern directly.
func WithPattern(pattern string) Option {
	return func(s *settings) { s.pattern = pattern }
}

// WithTemplate replaces the template text, which triggers recompilation.
func WithTemplate(template string) Option {
	return func(s *settings) { s.template = template }
}

// WithVariables merges vars into the variable bindings. Values may be
// scalars or callables of fixed arity.
func WithVariables(vars map[string]interface{}) Option {
	return func(s *settings) {
		for name, value := range vars {
			s.vars[name] = value
		}
	}
}

// WithVariable binds one variable.
func WithVariable(name string, value interface{}) Option {
	return func(s *settings) { s.vars[name] = value }
}

// WithMath enables or disables the math namespace in expressions.
func WithMath(enabled bool) Option {
	return func(s *settings) { s.math = enabled }
}

// WithStrict enables or disables strict error policy. Lenient is the
// default: unresolved references and failed evaluations degrade to
// literal text instead of failing the render.
func WithStrict(enabled bool) Option {
	return func(s *settings) { s.strict = enabled }
}

// New constructs a Rewriter from a pattern, a template, and options. The
// template is compiled exactly once here; render calls reuse the
// compiled form.
func New(pattern, template string, opts ...Option) (*Rewriter, error) {
	s := &settings{
		pattern:  pattern,
		template: template,
		vars:     make(map[string]interface{}),
		strict:   GetGlobalConfig().StrictMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return build(s, nil)
}

// MustNew is like New but panics on error. Intended for static
// pattern/template pairs.
func MustNew(pattern, template string, opts ...Option) *Rewriter {
	r, err := New(pattern, template, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// With derives a reconfigured copy of the Rewriter. The receiver is not
// modified. Compiled structures are reused where semantics allow:
// changing the template or the strict flag recompiles the template,
// changing variables or the math flag only re-validates the collision
// invariant.
func (r *Rewriter) With(opts ...Option) (*Rewriter, error) {
	s := &settings{
		pattern:  r.pattern.String(),
		template: r.template.Source,
		vars:     cloneVars(r.vars),
		math:     r.math,
		strict:   r.strict,
	}
	for _, opt := range opts {
		opt(s)
	}
	return build(s, r)
}

func build(s *settings, prev *Rewriter) (*Rewriter, error) {
	if err := validateVars(s.vars, s.math); err != nil {
		return nil, err
	}

	var pattern *regexp.Regexp
	if prev != nil && prev.pattern.String() == s.pattern {
		pattern = prev.pattern
	} else {
		var err error
		pattern, err = regexp.Compile(s.pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern: %w", err)
		}
	}

	var template *CompiledTemplate
	if prev != nil && prev.template.Source == s.template && prev.strict == s.strict {
		template = prev.template
	} else {
		var err error
		template, err = CompileTemplate(s.template, s.strict)
		if err != nil {
			return nil, err
		}
	}

	return &Rewriter{
		pattern:  pattern,
		template: template,
		vars:     cloneVars(s.vars),
		math:     s.math,
		strict:   s.strict,
	}, nil
}

// validateVars enforces the construction invariants on variable names:
// the capture-binding prefix is reserved, and with math enabled no name
// may shadow a math namespace name. Checked once here, never per render.
func validateVars(vars map[string]interface{}, mathEnabled bool) error {
	for name := range vars {
		if strings.HasPrefix(name, capPrefix) {
			return fmt.Errorf("variable name %q uses the reserved prefix %q", name, capPrefix)
		}
		if mathEnabled && isMathName(name) {
			return fmt.Errorf("variable name %q collides with the math namespace", name)
		}
	}
	return nil
}

func cloneVars(vars map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(vars))
	for name, value := range vars {
		clone[name] = value
	}
	return clone
}

// Pattern returns the pattern source.
func (r *Rewriter) Pattern() string {
	return r.pattern.String()
}

// Template returns the template source.
func (r *Rewriter) Template() string {
	return r.template.Source
}

// Strict reports whether the strict error policy is set.
func (r *Rewriter) Strict() bool {
	return r.strict
}

// MathEnabled reports whether expressions see the math namespace.
func (r *Rewriter) MathEnabled() bool {
	return r.math
}

// Transform renders the template against the first match of the pattern
// in input. Input without a match is returned unchanged.
func (r *Rewriter) Transform(input string) (string, error) {
	loc := r.pattern.FindStringSubmatchIndex(input)
	if loc == nil {
		return input, nil
	}
	return r.render(newMatch(r.pattern, input, loc))
}

// TransformAll renders every non-overlapping match left to right and
// splices each replacement over its matched span. Match spans arrive in
// original-input coordinates; the running offset accumulates the length
// difference of earlier replacements so later spans land correctly in
// the mutating output. Under strict policy a failure on any match aborts
// the whole call with no partial result.
func (r *Rewriter) TransformAll(input string) (string, error) {
	locs := r.pattern.FindAllStringSubmatchIndex(input, -1)
	if locs == nil {
		return input, nil
	}

	logger := GetLogger()
	logger.Debug("transforming all matches", "matches", len(locs), "input_length", len(input))

	out := input
	offset := 0
	for _, loc := range locs {
		replacement, err := r.render(newMatch(r.pattern, input, loc))
		if err != nil {
			return "", err
		}
		start := loc[0] - offset
		end := loc[1] - offset
		out = out[:start] + replacement + out[end:]
		offset += (loc[1] - loc[0]) - len(replacement)
	}
	return out, nil
}
