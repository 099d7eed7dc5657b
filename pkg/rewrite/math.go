package rewrite

import "math"

// mathEnv is the fixed math namespace merged into the evaluation
// environment when math support is enabled. It is a process-wide
// read-only table built once; Rewriters share it and must never mutate
// it.
var mathEnv = map[string]interface{}{
	// Constants.
	"e":       math.E,
	"pi":      math.Pi,
	"ln2":     math.Ln2,
	"ln10":    math.Ln10,
	"log2e":   math.Log2E,
	"log10e":  math.Log10E,
	"sqrt1_2": math.Sqrt2 / 2,
	"sqrt2":   math.Sqrt2,

	// Trigonometry.
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"atan2": math.Atan2,

	// Exponentials.
	"exp":  math.Exp,
	"log":  math.Log,
	"pow":  math.Pow,
	"sqrt": math.Sqrt,

	// Selection and rounding.
	"max":   math.Max,
	"abs":   math.Abs,
	"round": math.Round,
	"ceil":  math.Ceil,
	"floor": math.Floor,
}

// isMathName reports whether name is reserved by the math namespace.
func isMathName(name string) bool {
	_, ok := mathEnv[name]
	return ok
}
