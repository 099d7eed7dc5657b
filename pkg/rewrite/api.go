// Package rewrite renders text templates against regular expression
// matches, substituting capture references and evaluating inline
// expressions.
//
// Basic Usage:
//
//	rw, err := rewrite.New(`(\w+)=(\d+)`, `$1 is $($2 * 2)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := rw.TransformAll("a=1 b=2")
//	// "a is 2 b is 4"
//
// Template Syntax:
//
// Capture references: $0 (whole match), $1, $2 (by position), $name (by
// declared group name). Expressions: $(...) evaluated over the capture
// references they mention, user variables, and optionally a math
// namespace. A backslash escapes the next character: \$ is a literal
// dollar sign, \\ a literal backslash.
//
// Error policy is lenient by default: an unresolved reference or a
// failed evaluation renders as literal text instead of failing. Strict
// mode (WithStrict) aborts the render with a ReferenceError or an
// EvaluationError instead.
package rewrite

import (
	"fmt"
	"strconv"
)

// Engine provides the main API for compiling rewriters, with caching.
// Use NewEngine() to create an engine instance, or the package-level
// functions for the default engine.
type Engine struct {
	config *Config
	cache  *RewriterCache
}

// NewEngine creates an engine with the global configuration and cache.
func NewEngine() *Engine {
	return &Engine{
		config: GetGlobalConfig(),
		cache:  defaultCache,
	}
}

// NewEngineWithConfig creates an engine with a custom configuration and
// its own cache.
func NewEngineWithConfig(config *Config) *Engine {
	return &Engine{
		config: config,
		cache: NewRewriterCacheWithConfig(CacheConfig{
			MaxSize: config.CacheMaxSize,
			TTL:     config.CacheTTL,
		}),
	}
}

// cacheKey identifies a plain compile. The global strict default is
// folded in because a cached Rewriter bakes the default in at
// construction; a later config change must miss, not serve the stale
// policy.
func cacheKey(pattern, template string, strict bool) string {
	return pattern + "\x00" + template + "\x00" + strconv.FormatBool(strict)
}

// Compile returns a Rewriter for the pattern/template pair. Plain
// compiles (no options) are served from the cache when caching is
// enabled; option-carrying compiles bypass it, since options are not
// part of the key.
func (e *Engine) Compile(pattern, template string, opts ...Option) (*Rewriter, error) {
	cacheable := len(opts) == 0 && e.config.CacheMaxSize > 0 && e.cache != nil
	key := cacheKey(pattern, template, GetGlobalConfig().StrictMode)

	if cacheable {
		if rw, ok := e.cache.Get(key); ok {
			return rw, nil
		}
	}

	rw, err := New(pattern, template, opts...)
	if err != nil {
		return nil, err
	}

	if cacheable {
		e.cache.Set(key, rw)
	}

	return rw, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// SetConfig updates the engine's configuration. The cache keeps its
// original sizing.
func (e *Engine) SetConfig(config *Config) {
	e.config = config
}

// ClearCache removes all rewriters from the engine's cache.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = NewEngine()

// Compile returns a Rewriter from the default engine.
func Compile(pattern, template string, opts ...Option) (*Rewriter, error) {
	return DefaultEngine.Compile(pattern, template, opts...)
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern, template string, opts ...Option) *Rewriter {
	rw, err := Compile(pattern, template, opts...)
	if err != nil {
		panic(fmt.Sprintf("rewrite: Compile(%q, %q): %v", pattern, template, err))
	}
	return rw
}

// Rewrite is a one-shot helper: compile and transform the first match.
func Rewrite(pattern, template, input string, opts ...Option) (string, error) {
	rw, err := Compile(pattern, template, opts...)
	if err != nil {
		return "", err
	}
	return rw.Transform(input)
}

// RewriteAll is a one-shot helper: compile and transform every match.
func RewriteAll(pattern, template, input string, opts ...Option) (string, error) {
	rw, err := Compile(pattern, template, opts...)
	if err != nil {
		return "", err
	}
	return rw.TransformAll(input)
}

// ClearCache clears the default engine's cache.
func ClearCache() {
	DefaultEngine.ClearCache()
}
