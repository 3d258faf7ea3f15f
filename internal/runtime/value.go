// Package runtime implements the tree-walking interpreter and runtime value
// system for the drawing language.
package runtime

import (
	"fmt"
	"strconv"
	"turtle-lang/internal/ast"
)

// Value is the interface for all runtime values.
type Value interface {
	TypeName() string
	String() string
}

// ---- Primitive values ----

// NumberVal represents a numeric value. All numbers are floating-point.
type NumberVal float64

func (v NumberVal) TypeName() string { return "number" }
func (v NumberVal) String() string   { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// StringVal represents a string value.
type StringVal string

func (v StringVal) TypeName() string { return "string" }
func (v StringVal) String() string   { return string(v) }

// BoolVal represents a boolean value.
type BoolVal bool

func (v BoolVal) TypeName() string { return "bool" }
func (v BoolVal) String() string   { return fmt.Sprintf("%t", bool(v)) }

// TupleVal represents an (x, y) coordinate pair, as returned by position().
type TupleVal struct {
	X, Y float64
}

func (v TupleVal) TypeName() string { return "tuple" }
func (v TupleVal) String() string {
	return fmt.Sprintf("(%s, %s)", NumberVal(v.X).String(), NumberVal(v.Y).String())
}

// NoneVal represents the absence of a value, such as the result of a
// function without a return statement.
type NoneVal struct{}

func (v NoneVal) TypeName() string { return "none" }
func (v NoneVal) String() string   { return "none" }

// ---- Callable values ----

// FuncVal represents a user-defined function. Closure is a snapshot of the
// environment taken at the moment of definition; it is never refreshed, so
// later mutations of the defining scope are invisible inside the body.
type FuncVal struct {
	Name    string
	Params  []string
	Body    []ast.Stmt
	Closure *Environment
}

func (v *FuncVal) TypeName() string { return "function" }
func (v *FuncVal) String() string   { return fmt.Sprintf("<function %s>", v.Name) }

// BuiltinFn is the Go signature for built-in functions.
type BuiltinFn func(args []Value) (Value, error)

// BuiltinVal represents a built-in (native) function.
type BuiltinVal struct {
	Name string
	Fn   BuiltinFn
}

func (v *BuiltinVal) TypeName() string { return "builtin" }
func (v *BuiltinVal) String() string   { return fmt.Sprintf("<builtin %s>", v.Name) }

// ---- Truthiness ----

// IsTruthy returns the truthiness of a value: none is false, booleans are
// themselves, numbers are true when nonzero, strings when nonempty, and
// everything else is true.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NoneVal:
		return false
	case BoolVal:
		return bool(val)
	case NumberVal:
		return float64(val) != 0
	case StringVal:
		return string(val) != ""
	default:
		return true
	}
}

// ---- Helpers ----

// ValuesEqual reports structural equality between two values. Values of
// different types are never equal.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case NumberVal:
		bv, ok := b.(NumberVal)
		return ok && float64(av) == float64(bv)
	case StringVal:
		bv, ok := b.(StringVal)
		return ok && string(av) == string(bv)
	case BoolVal:
		bv, ok := b.(BoolVal)
		return ok && bool(av) == bool(bv)
	case TupleVal:
		bv, ok := b.(TupleVal)
		return ok && av.X == bv.X && av.Y == bv.Y
	case NoneVal:
		_, ok := b.(NoneVal)
		return ok
	default:
		return a == b
	}
}

// ToNumber attempts to extract the float64 from a numeric value.
func ToNumber(v Value) (float64, bool) {
	n, ok := v.(NumberVal)
	return float64(n), ok
}
