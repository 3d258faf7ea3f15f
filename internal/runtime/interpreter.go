package runtime

import (
	"fmt"
	"turtle-lang/internal/ast"
	"turtle-lang/internal/span"
	"turtle-lang/internal/token"
)

// ============================================================
// Canvas collaborator
// ============================================================

// Canvas is the drawing collaborator the interpreter dispatches drawing
// commands to. Coordinate defaults (circle center, rectangle corner, arc
// center) are resolved by the collaborator from its current pen position.
type Canvas interface {
	Forward(dist float64)
	Backward(dist float64)
	TurnLeft(deg float64)
	TurnRight(deg float64)
	PenUp()
	PenDown()
	Goto(x, y float64)
	DrawCircle(radius float64)
	DrawCircleAt(radius, cx, cy float64)
	DrawRect(width, height float64)
	DrawRectAt(width, height, cx, cy float64)
	DrawLine(x1, y1, x2, y2 float64)
	DrawPolygon(points []float64)
	DrawArc(width, height, angle float64)
	DrawArcAt(width, height, angle, cx, cy float64)
	SetColor(name string)
	SetWidth(w float64)
	SetFill(on bool)
	Clear()
	Reset()
	Position() (x, y float64)
	Redraw()
	Show()
}

// ============================================================
// Runtime error
// ============================================================

// RuntimeError represents an error during interpretation.
type RuntimeError struct {
	Message string
	Span    span.Span
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

func runtimeErr(s span.Span, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Span: s}
}

// ============================================================
// Interpreter
// ============================================================

// Interpreter walks the AST and executes it against an environment and the
// Canvas collaborator. The environment and function table persist across
// Run calls, so a REPL session can build on earlier state.
type Interpreter struct {
	canvas Canvas
	env    *Environment
	funcs  map[string]*FuncVal

	returning bool
	retVal    Value
}

// NewInterpreter creates a new interpreter drawing on the given canvas.
func NewInterpreter(canvas Canvas) *Interpreter {
	return &Interpreter{
		canvas: canvas,
		env:    NewEnvironment(),
		funcs:  make(map[string]*FuncVal),
	}
}

// Run executes a whole program. A pending return at the top level halts the
// remaining statements without error.
func (i *Interpreter) Run(program *ast.Program) error {
	i.returning = false
	i.retVal = nil

	for _, stmt := range program.Statements {
		if err := i.execStmt(stmt); err != nil {
			return err
		}
		if i.returning {
			break
		}
	}
	return nil
}

// Env returns the live environment (useful for REPL inspection).
func (i *Interpreter) Env() *Environment {
	return i.env
}

// Funcs returns the names of all user-defined functions.
func (i *Interpreter) Funcs() []string {
	names := make([]string, 0, len(i.funcs))
	for name := range i.funcs {
		names = append(names, name)
	}
	return names
}

// ============================================================
// Statement execution
// ============================================================

func (i *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		var val Value = NoneVal{}
		if s.Init != nil {
			v, err := i.evalExpr(s.Init)
			if err != nil {
				return err
			}
			val = v
		}
		i.env.Set(s.Name, val)
		return nil

	case *ast.Assign:
		val, err := i.evalExpr(s.Value)
		if err != nil {
			return err
		}
		i.env.Set(s.Name, val)
		return nil

	case *ast.CallStmt:
		_, err := i.evalCall(s.Call)
		return err

	case *ast.If:
		cond, err := i.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return i.execBlock(s.Then)
		}
		return i.execBlock(s.Else)

	case *ast.While:
		for {
			cond, err := i.evalExpr(s.Cond)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := i.execBlock(s.Body); err != nil {
				return err
			}
			if i.returning {
				return nil
			}
		}

	case *ast.For:
		return i.execFor(s)

	case *ast.FuncDef:
		i.funcs[s.Name] = &FuncVal{
			Name:    s.Name,
			Params:  s.Params,
			Body:    s.Body,
			Closure: i.env.Snapshot(),
		}
		return nil

	case *ast.Return:
		var val Value = NoneVal{}
		if s.Value != nil {
			v, err := i.evalExpr(s.Value)
			if err != nil {
				return err
			}
			val = v
		}
		i.returning = true
		i.retVal = val
		return nil

	default:
		return runtimeErr(stmt.GetSpan(), "unhandled statement type: %T", stmt)
	}
}

// execBlock runs a statement list, stopping early when a return is pending.
func (i *Interpreter) execBlock(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execStmt(stmt); err != nil {
			return err
		}
		if i.returning {
			return nil
		}
	}
	return nil
}

// execFor runs a counted loop. Start, end and step are evaluated once up
// front; the loop variable shares the flat environment and is restored to
// its prior binding (or removed) when the loop finishes.
func (i *Interpreter) execFor(s *ast.For) error {
	start, err := i.evalNumber(s.Start, "for loop start")
	if err != nil {
		return err
	}
	end, err := i.evalNumber(s.End, "for loop end")
	if err != nil {
		return err
	}
	step := 1.0
	if s.Step != nil {
		step, err = i.evalNumber(s.Step, "for loop step")
		if err != nil {
			return err
		}
	}
	if step == 0 {
		return runtimeErr(s.GetSpan(), "for loop step cannot be zero")
	}

	prev, existed := i.env.Get(s.Var)

	for current := start; (step > 0 && current <= end) || (step < 0 && current >= end); current += step {
		i.env.Set(s.Var, NumberVal(current))
		if err := i.execBlock(s.Body); err != nil {
			return err
		}
		if i.returning {
			break
		}
	}

	if existed {
		i.env.Set(s.Var, prev)
	} else {
		i.env.Delete(s.Var)
	}
	return nil
}

// ============================================================
// Expression evaluation
// ============================================================

// Eval evaluates a single expression in the current environment.
func (i *Interpreter) Eval(expr ast.Expr) (Value, error) {
	return i.evalExpr(expr)
}

func (i *Interpreter) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return NumberVal(e.Value), nil

	case *ast.StringLit:
		return StringVal(e.Value), nil

	case *ast.BoolLit:
		return BoolVal(e.Value), nil

	case *ast.Ident:
		val, exists := i.env.Get(e.Name)
		if !exists {
			return nil, runtimeErr(e.GetSpan(), "Undefined variable '%s'", e.Name)
		}
		return val, nil

	case *ast.UnaryExpr:
		return i.evalUnary(e)

	case *ast.BinaryExpr:
		return i.evalBinary(e)

	case *ast.CallExpr:
		return i.evalCall(e)

	default:
		return nil, runtimeErr(expr.GetSpan(), "unhandled expression type: %T", expr)
	}
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, error) {
	operand, err := i.evalExpr(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.MINUS:
		n, ok := ToNumber(operand)
		if !ok {
			return nil, runtimeErr(e.GetSpan(), "unary '-' requires a number, got %s", operand.TypeName())
		}
		return NumberVal(-n), nil
	case token.KW_NOT:
		return BoolVal(!IsTruthy(operand)), nil
	default:
		return nil, runtimeErr(e.GetSpan(), "unhandled unary operator '%s'", e.Op)
	}
}

// evalBinary evaluates both operands eagerly, including for and/or; the
// logical operators apply truthiness afterwards and do not short-circuit.
func (i *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.KW_AND:
		return BoolVal(IsTruthy(left) && IsTruthy(right)), nil
	case token.KW_OR:
		return BoolVal(IsTruthy(left) || IsTruthy(right)), nil
	case token.EQ:
		return BoolVal(ValuesEqual(left, right)), nil
	case token.NEQ:
		return BoolVal(!ValuesEqual(left, right)), nil
	case token.LT, token.LTE, token.GT, token.GTE:
		return i.evalComparison(e, left, right)
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.CARET:
		return i.evalArithmetic(e, left, right)
	default:
		return nil, runtimeErr(e.GetSpan(), "unhandled binary operator '%s'", e.Op)
	}
}

func (i *Interpreter) evalComparison(e *ast.BinaryExpr, left, right Value) (Value, error) {
	var result bool

	switch lv := left.(type) {
	case NumberVal:
		rv, ok := right.(NumberVal)
		if !ok {
			return nil, runtimeErr(e.GetSpan(), "cannot compare %s with %s", left.TypeName(), right.TypeName())
		}
		result = compareOrdered(e.Op, float64(lv), float64(rv))
	case StringVal:
		rv, ok := right.(StringVal)
		if !ok {
			return nil, runtimeErr(e.GetSpan(), "cannot compare %s with %s", left.TypeName(), right.TypeName())
		}
		result = compareOrdered(e.Op, string(lv), string(rv))
	default:
		return nil, runtimeErr(e.GetSpan(), "cannot compare %s with %s", left.TypeName(), right.TypeName())
	}

	return BoolVal(result), nil
}

func compareOrdered[T float64 | string](op token.Kind, a, b T) bool {
	switch op {
	case token.LT:
		return a < b
	case token.LTE:
		return a <= b
	case token.GT:
		return a > b
	default:
		return a >= b
	}
}

func (i *Interpreter) evalArithmetic(e *ast.BinaryExpr, left, right Value) (Value, error) {
	// String concatenation is the one non-numeric arithmetic form.
	if e.Op == token.PLUS {
		if ls, ok := left.(StringVal); ok {
			if rs, ok := right.(StringVal); ok {
				return StringVal(string(ls) + string(rs)), nil
			}
		}
	}

	ln, lok := ToNumber(left)
	rn, rok := ToNumber(right)
	if !lok || !rok {
		return nil, runtimeErr(e.GetSpan(), "operator '%s' requires numbers, got %s and %s",
			e.Op, left.TypeName(), right.TypeName())
	}

	switch e.Op {
	case token.PLUS:
		return NumberVal(ln + rn), nil
	case token.MINUS:
		return NumberVal(ln - rn), nil
	case token.STAR:
		return NumberVal(ln * rn), nil
	case token.SLASH:
		if rn == 0 {
			return nil, runtimeErr(e.GetSpan(), "Division by zero")
		}
		return NumberVal(ln / rn), nil
	case token.PERCENT:
		if rn == 0 {
			return nil, runtimeErr(e.GetSpan(), "Modulo by zero")
		}
		return NumberVal(floorMod(ln, rn)), nil
	default: // CARET
		return NumberVal(pow(ln, rn)), nil
	}
}

// ============================================================
// Call resolution
// ============================================================

// evalCall resolves a call in fixed order: drawing command first (these can
// never be shadowed), then built-in, then user-defined function.
func (i *Interpreter) evalCall(e *ast.CallExpr) (Value, error) {
	if isDrawingCommand(e.Name) {
		return i.execDrawingCommand(e)
	}

	if builtin, ok := builtins[e.Name]; ok {
		args, err := i.evalArgs(e.Args)
		if err != nil {
			return nil, err
		}
		result, err := builtin.Fn(args)
		if err != nil {
			return nil, runtimeErr(e.GetSpan(), "%s", err)
		}
		return result, nil
	}

	if fn, ok := i.funcs[e.Name]; ok {
		return i.callFunction(e, fn)
	}

	return nil, runtimeErr(e.GetSpan(), "Undefined function '%s'", e.Name)
}

// callFunction evaluates arguments in the caller's environment, then swaps
// in a fresh copy of the closure snapshot for the body and restores the
// caller's environment afterwards.
func (i *Interpreter) callFunction(e *ast.CallExpr, fn *FuncVal) (Value, error) {
	if len(e.Args) != len(fn.Params) {
		return nil, runtimeErr(e.GetSpan(), "function '%s' expects %d arguments, got %d",
			fn.Name, len(fn.Params), len(e.Args))
	}

	args, err := i.evalArgs(e.Args)
	if err != nil {
		return nil, err
	}

	callerEnv := i.env
	i.env = fn.Closure.Snapshot()
	for idx, param := range fn.Params {
		i.env.Set(param, args[idx])
	}

	err = i.execBlock(fn.Body)

	var result Value = NoneVal{}
	if i.returning && i.retVal != nil {
		result = i.retVal
	}
	i.returning = false
	i.retVal = nil
	i.env = callerEnv

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) evalArgs(exprs []ast.Expr) ([]Value, error) {
	args := make([]Value, len(exprs))
	for idx, arg := range exprs {
		val, err := i.evalExpr(arg)
		if err != nil {
			return nil, err
		}
		args[idx] = val
	}
	return args, nil
}

// ============================================================
// Drawing command dispatch
// ============================================================

var drawingCommands = map[string]bool{
	"forward": true, "fd": true,
	"backward": true, "bk": true,
	"left": true, "lt": true,
	"right": true, "rt": true,
	"penup": true, "pu": true,
	"pendown": true, "pd": true,
	"goto":   true,
	"circle": true,
	"rectangle": true, "rect": true,
	"line":    true,
	"polygon": true,
	"arc":     true,
	"clear":   true,
	"reset":   true,
	"color":   true,
	"fill":    true,
	"nofill":  true,
	"width":   true,
	"position": true, "pos": true,
	"show": true,
	"hide": true,
}

func isDrawingCommand(name string) bool {
	return drawingCommands[name]
}

// execDrawingCommand validates arity and argument types, dispatches to the
// Canvas, and issues a redraw request after each shape-producing command.
func (i *Interpreter) execDrawingCommand(e *ast.CallExpr) (Value, error) {
	args, err := i.evalArgs(e.Args)
	if err != nil {
		return nil, err
	}

	switch e.Name {
	case "forward", "fd":
		dist, err := i.oneNumber(e, args)
		if err != nil {
			return nil, err
		}
		i.canvas.Forward(dist)
		i.canvas.Redraw()

	case "backward", "bk":
		dist, err := i.oneNumber(e, args)
		if err != nil {
			return nil, err
		}
		i.canvas.Backward(dist)
		i.canvas.Redraw()

	case "left", "lt":
		deg, err := i.oneNumber(e, args)
		if err != nil {
			return nil, err
		}
		i.canvas.TurnLeft(deg)

	case "right", "rt":
		deg, err := i.oneNumber(e, args)
		if err != nil {
			return nil, err
		}
		i.canvas.TurnRight(deg)

	case "penup", "pu":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		i.canvas.PenUp()

	case "pendown", "pd":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		i.canvas.PenDown()

	case "goto":
		nums, err := i.numbers(e, args, 2)
		if err != nil {
			return nil, err
		}
		i.canvas.Goto(nums[0], nums[1])
		i.canvas.Redraw()

	case "circle":
		nums, err := i.numbersArity(e, args, 1, 3)
		if err != nil {
			return nil, err
		}
		if len(nums) == 1 {
			i.canvas.DrawCircle(nums[0])
		} else {
			i.canvas.DrawCircleAt(nums[0], nums[1], nums[2])
		}
		i.canvas.Redraw()

	case "rectangle", "rect":
		nums, err := i.numbersArity(e, args, 2, 4)
		if err != nil {
			return nil, err
		}
		if len(nums) == 2 {
			i.canvas.DrawRect(nums[0], nums[1])
		} else {
			i.canvas.DrawRectAt(nums[0], nums[1], nums[2], nums[3])
		}
		i.canvas.Redraw()

	case "line":
		nums, err := i.numbers(e, args, 4)
		if err != nil {
			return nil, err
		}
		i.canvas.DrawLine(nums[0], nums[1], nums[2], nums[3])
		i.canvas.Redraw()

	case "polygon":
		nums, err := i.allNumbers(e, args)
		if err != nil {
			return nil, err
		}
		if len(nums) < 6 || len(nums)%2 != 0 {
			return nil, runtimeErr(e.GetSpan(),
				"polygon() expects an even number of at least 6 coordinates, got %d", len(nums))
		}
		i.canvas.DrawPolygon(nums)
		i.canvas.Redraw()

	case "arc":
		nums, err := i.numbersArity(e, args, 2, 3, 5)
		if err != nil {
			return nil, err
		}
		switch len(nums) {
		case 2:
			i.canvas.DrawArc(nums[0], nums[1], 0)
		case 3:
			i.canvas.DrawArc(nums[0], nums[1], nums[2])
		default:
			i.canvas.DrawArcAt(nums[0], nums[1], nums[2], nums[3], nums[4])
		}
		i.canvas.Redraw()

	case "clear":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		i.canvas.Clear()

	case "reset":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		i.canvas.Reset()
		i.canvas.Redraw()

	case "color":
		if len(args) != 1 {
			return nil, i.arityErr(e, args, 1)
		}
		name, ok := args[0].(StringVal)
		if !ok {
			return nil, runtimeErr(e.GetSpan(), "color() expects a string, got %s", args[0].TypeName())
		}
		i.canvas.SetColor(string(name))

	case "fill":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		i.canvas.SetFill(true)

	case "nofill":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		i.canvas.SetFill(false)

	case "width":
		w, err := i.oneNumber(e, args)
		if err != nil {
			return nil, err
		}
		i.canvas.SetWidth(w)

	case "position", "pos":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		x, y := i.canvas.Position()
		return TupleVal{X: x, Y: y}, nil

	case "show":
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}
		i.canvas.Show()

	case "hide":
		// Deliberate no-op; the command exists for source compatibility.
		if err := i.noArgs(e, args); err != nil {
			return nil, err
		}

	default:
		return nil, runtimeErr(e.GetSpan(), "unhandled drawing command '%s'", e.Name)
	}

	return NoneVal{}, nil
}

// ---- argument helpers ----

func (i *Interpreter) arityErr(e *ast.CallExpr, args []Value, want int) error {
	noun := "arguments"
	if want == 1 {
		noun = "argument"
	}
	return runtimeErr(e.GetSpan(), "%s() expects %d %s, got %d", e.Name, want, noun, len(args))
}

func (i *Interpreter) noArgs(e *ast.CallExpr, args []Value) error {
	if len(args) != 0 {
		return i.arityErr(e, args, 0)
	}
	return nil
}

func (i *Interpreter) oneNumber(e *ast.CallExpr, args []Value) (float64, error) {
	nums, err := i.numbers(e, args, 1)
	if err != nil {
		return 0, err
	}
	return nums[0], nil
}

func (i *Interpreter) numbers(e *ast.CallExpr, args []Value, want int) ([]float64, error) {
	if len(args) != want {
		return nil, i.arityErr(e, args, want)
	}
	return i.allNumbers(e, args)
}

func (i *Interpreter) numbersArity(e *ast.CallExpr, args []Value, arities ...int) ([]float64, error) {
	ok := false
	for _, n := range arities {
		if len(args) == n {
			ok = true
			break
		}
	}
	if !ok {
		return nil, runtimeErr(e.GetSpan(), "%s() expects %s arguments, got %d",
			e.Name, formatArities(arities), len(args))
	}
	return i.allNumbers(e, args)
}

func (i *Interpreter) allNumbers(e *ast.CallExpr, args []Value) ([]float64, error) {
	nums := make([]float64, len(args))
	for idx, arg := range args {
		n, ok := ToNumber(arg)
		if !ok {
			return nil, runtimeErr(e.GetSpan(), "%s() expects number arguments, got %s", e.Name, arg.TypeName())
		}
		nums[idx] = n
	}
	return nums, nil
}

func formatArities(arities []int) string {
	switch len(arities) {
	case 1:
		return fmt.Sprintf("%d", arities[0])
	case 2:
		return fmt.Sprintf("%d or %d", arities[0], arities[1])
	default:
		s := ""
		for idx, n := range arities {
			switch {
			case idx == 0:
				s = fmt.Sprintf("%d", n)
			case idx == len(arities)-1:
				s += fmt.Sprintf(" or %d", n)
			default:
				s += fmt.Sprintf(", %d", n)
			}
		}
		return s
	}
}

func (i *Interpreter) evalNumber(expr ast.Expr, what string) (float64, error) {
	val, err := i.evalExpr(expr)
	if err != nil {
		return 0, err
	}
	n, ok := ToNumber(val)
	if !ok {
		return 0, runtimeErr(expr.GetSpan(), "%s must be a number, got %s", what, val.TypeName())
	}
	return n, nil
}
