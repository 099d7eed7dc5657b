package rewrite

import "testing"

func TestEngineCompileCachesPlainCompiles(t *testing.T) {
	engine := NewEngineWithConfig(&Config{CacheMaxSize: 10, LogLevel: "info"})

	first, err := engine.Compile(`(\w+)`, "[$1]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := engine.Compile(`(\w+)`, "[$1]")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if first != second {
		t.Error("repeated plain compile did not hit the cache")
	}
}

func TestEngineCompileOptionsBypassCache(t *testing.T) {
	engine := NewEngineWithConfig(&Config{CacheMaxSize: 10, LogLevel: "info"})

	plain, err := engine.Compile(`(\w+)`, "$1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// Options are not part of the cache key, so an option-carrying
	// compile must neither read nor poison the cache.
	strict, err := engine.Compile(`(\w+)`, "$1", WithStrict(true))
	if err != nil {
		t.Fatalf("Compile with options: %v", err)
	}
	if strict == plain {
		t.Error("option-carrying compile served the cached plain rewriter")
	}

	again, err := engine.Compile(`(\w+)`, "$1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if again.Strict() {
		t.Error("option-carrying compile poisoned the cache")
	}
}

func TestEngineCompileDisabledCache(t *testing.T) {
	engine := NewEngineWithConfig(&Config{CacheMaxSize: 0, LogLevel: "info"})

	first, err := engine.Compile(`a`, "x")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := engine.Compile(`a`, "x")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if first == second {
		t.Error("caching disabled but same instance returned")
	}
}

func TestEngineClearCache(t *testing.T) {
	engine := NewEngineWithConfig(&Config{CacheMaxSize: 10, LogLevel: "info"})

	first, _ := engine.Compile(`a`, "x")
	engine.ClearCache()
	second, _ := engine.Compile(`a`, "x")
	if first == second {
		t.Error("ClearCache did not evict the cached rewriter")
	}
}

func TestEngineCompileMissesAfterStrictDefaultChange(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	engine := NewEngineWithConfig(&Config{CacheMaxSize: 10, LogLevel: "info"})

	config := DefaultConfig()
	config.StrictMode = false
	SetGlobalConfig(config)

	lenient, err := engine.Compile(`(\w+)`, "$1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if lenient.Strict() {
		t.Fatal("strict default not applied")
	}

	config = DefaultConfig()
	config.StrictMode = true
	SetGlobalConfig(config)

	strict, err := engine.Compile(`(\w+)`, "$1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strict.Strict() {
		t.Error("cache served a rewriter built under the old strict default")
	}
}

func TestEngineCompileError(t *testing.T) {
	engine := NewEngineWithConfig(&Config{CacheMaxSize: 10, LogLevel: "info"})
	if _, err := engine.Compile(`(unclosed`, "x"); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestPackageLevelRewrite(t *testing.T) {
	defer ClearCache()

	got, err := Rewrite(`(\w+), (\w+)`, "$2 $1", "Fish, One")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "One Fish" {
		t.Errorf("Rewrite = %q, want %q", got, "One Fish")
	}
}

func TestPackageLevelRewriteAll(t *testing.T) {
	defer ClearCache()

	got, err := RewriteAll(`(\w)\w*`, "$1", "alpha beta gamma")
	if err != nil {
		t.Fatalf("RewriteAll: %v", err)
	}
	if got != "a b g" {
		t.Errorf("RewriteAll = %q, want %q", got, "a b g")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on invalid pattern")
		}
	}()
	MustCompile(`(unclosed`, "x")
}
