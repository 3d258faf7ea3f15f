package runtime

import (
	"fmt"
	"math"
	"math/rand"
)

// builtins is the registry of native functions. It is consulted after
// drawing commands and before user-defined functions during call
// resolution, so a user function named sin can never be reached.
var builtins = make(map[string]*BuiltinVal)

func init() {
	// Trigonometric functions take degrees; the inverse ones return degrees.
	registerUnary("sin", func(x float64) (float64, error) {
		return math.Sin(x * math.Pi / 180), nil
	})
	registerUnary("cos", func(x float64) (float64, error) {
		return math.Cos(x * math.Pi / 180), nil
	})
	registerUnary("tan", func(x float64) (float64, error) {
		return math.Tan(x * math.Pi / 180), nil
	})
	registerUnary("asin", func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, fmt.Errorf("asin() argument out of range")
		}
		return math.Asin(x) * 180 / math.Pi, nil
	})
	registerUnary("acos", func(x float64) (float64, error) {
		if x < -1 || x > 1 {
			return 0, fmt.Errorf("acos() argument out of range")
		}
		return math.Acos(x) * 180 / math.Pi, nil
	})
	registerUnary("atan", func(x float64) (float64, error) {
		return math.Atan(x) * 180 / math.Pi, nil
	})

	registerUnary("sqrt", func(x float64) (float64, error) {
		if x < 0 {
			return 0, fmt.Errorf("sqrt() of a negative number")
		}
		return math.Sqrt(x), nil
	})
	registerUnary("abs", func(x float64) (float64, error) {
		return math.Abs(x), nil
	})
	registerUnary("floor", func(x float64) (float64, error) {
		return math.Floor(x), nil
	})
	registerUnary("ceil", func(x float64) (float64, error) {
		return math.Ceil(x), nil
	})
	registerUnary("round", func(x float64) (float64, error) {
		return math.Round(x), nil
	})

	registerBinary("min", math.Min)
	registerBinary("max", math.Max)

	registerNullary("random", rand.Float64)
	registerNullary("pi", func() float64 { return math.Pi })
	registerNullary("e", func() float64 { return math.E })
}

func registerNullary(name string, fn func() float64) {
	builtins[name] = &BuiltinVal{
		Name: name,
		Fn: func(args []Value) (Value, error) {
			if len(args) != 0 {
				return nil, fmt.Errorf("%s() expects 0 arguments, got %d", name, len(args))
			}
			return NumberVal(fn()), nil
		},
	}
}

func registerUnary(name string, fn func(float64) (float64, error)) {
	builtins[name] = &BuiltinVal{
		Name: name,
		Fn: func(args []Value) (Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("%s() expects 1 argument, got %d", name, len(args))
			}
			x, ok := ToNumber(args[0])
			if !ok {
				return nil, fmt.Errorf("%s() expects a number, got %s", name, args[0].TypeName())
			}
			result, err := fn(x)
			if err != nil {
				return nil, err
			}
			return NumberVal(result), nil
		},
	}
}

func registerBinary(name string, fn func(float64, float64) float64) {
	builtins[name] = &BuiltinVal{
		Name: name,
		Fn: func(args []Value) (Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("%s() expects 2 arguments, got %d", name, len(args))
			}
			a, aok := ToNumber(args[0])
			b, bok := ToNumber(args[1])
			if !aok || !bok {
				return nil, fmt.Errorf("%s() expects number arguments", name)
			}
			return NumberVal(fn(a, b)), nil
		},
	}
}

// IsBuiltin reports whether name is a registered built-in function.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// ---- arithmetic helpers ----

// floorMod computes the modulo with the sign of the divisor, matching the
// language's remainder semantics (-7 % 3 == 2).
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func pow(a, b float64) float64 {
	return math.Pow(a, b)
}
