package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/minilang/internal/ast"
)

// EvalErrorKind discriminates the evaluator's error variants.
type EvalErrorKind int

const (
	ObjectNotFound EvalErrorKind = iota
	InvalidType
	InvalidExpression
)

// EvalError is the evaluator's single error type, carrying the
// structured fields needed to render a precise message.
type EvalError struct {
	Kind     EvalErrorKind
	Name     string      // ObjectNotFound
	Expected []ValueType // InvalidType
	Found    ValueType   // InvalidType
	Desc     string      // InvalidExpression
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case ObjectNotFound:
		return fmt.Sprintf("Object '&g&*%s&-&r' not found in current scope", e.Name)
	case InvalidType:
		want := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			want[i] = string(t)
		}
		return fmt.Sprintf("Invalid type, expected &g&*%s&-&r, found &g&*%s&-&r", strings.Join(want, " or "), e.Found)
	case InvalidExpression:
		return fmt.Sprintf("Invalid expression, expected '%s'", e.Desc)
	}
	return "unknown evaluation error"
}

func errNotFound(name string) error { return &EvalError{Kind: ObjectNotFound, Name: name} }

func errType(found ValueType, expected ...ValueType) error {
	return &EvalError{Kind: InvalidType, Expected: expected, Found: found}
}

func errExpr(desc string) error { return &EvalError{Kind: InvalidExpression, Desc: desc} }

// ControlSignal enriches the base specification's boolean exit signal
// into a three-way tag so that while/for can tell continue from break
// instead of treating both as loop termination.
type ControlSignal int

const (
	ControlNone ControlSignal = iota
	ControlReturn
	ControlBreak
	ControlContinue
)

// Evaluator walks a Program against an Environment.
type Evaluator struct {
	env *Environment
}

// New returns an Evaluator with built-ins registered in a fresh
// environment.
func New() *Evaluator {
	env := NewEnvironment()
	RegisterBuiltins(env)
	return &Evaluator{env: env}
}

// Env exposes the evaluator's environment, chiefly for a REPL that
// wants to persist bindings across lines.
func (ev *Evaluator) Env() *Environment { return ev.env }

// Eval runs a full program to completion, acting like one large block:
// the first return/break/continue encountered at the top level simply
// ends evaluation early, since nothing above the program consumes it.
func (ev *Evaluator) Eval(program *ast.Program) (Value, error) {
	v, _, err := ev.evalBlockBody(program.Statements, ev.env)
	return v, err
}

func (ev *Evaluator) evalBlockBody(stmts []ast.Statement, env *Environment) (Value, ControlSignal, error) {
	var last Value = &VoidValue{}
	for _, stmt := range stmts {
		v, sig, err := ev.evalStatement(stmt, env)
		if err != nil {
			return nil, ControlNone, err
		}
		last = v
		if sig != ControlNone {
			return last, sig, nil
		}
	}
	return last, ControlNone, nil
}

func (ev *Evaluator) evalStatement(stmt ast.Statement, env *Environment) (Value, ControlSignal, error) {
	switch s := stmt.(type) {
	case *ast.EmptyStatement:
		return &VoidValue{}, ControlNone, nil

	case *ast.BlockStatement:
		mark := env.PushScope()
		v, sig, err := ev.evalBlockBody(s.Statements, env)
		env.PopScope(mark)
		return v, sig, err

	case *ast.ExpressionStatement:
		v, err := ev.evalExpression(s.Expression, env)
		if err != nil {
			return nil, ControlNone, err
		}
		return v, ControlNone, nil

	case *ast.IfStatement:
		return ev.evalIf(s, env)

	case *ast.WhileStatement:
		return ev.evalWhile(s, env)

	case *ast.ForStatement:
		return ev.evalFor(s, env)

	case *ast.ReturnStatement:
		if s.ReturnValue == nil {
			return &VoidValue{}, ControlReturn, nil
		}
		v, err := ev.evalExpression(s.ReturnValue, env)
		if err != nil {
			return nil, ControlNone, err
		}
		return v, ControlReturn, nil

	case *ast.BreakStatement:
		return &VoidValue{}, ControlBreak, nil

	case *ast.ContinueStatement:
		return &VoidValue{}, ControlContinue, nil
	}
	return nil, ControlNone, errExpr(fmt.Sprintf("unsupported statement %T", stmt))
}

func (ev *Evaluator) evalIf(s *ast.IfStatement, env *Environment) (Value, ControlSignal, error) {
	cond, err := ev.evalExpression(s.Condition, env)
	if err != nil {
		return nil, ControlNone, err
	}
	b, ok := cond.(*BooleanValue)
	if !ok {
		return nil, ControlNone, errType(cond.Type(), BooleanType)
	}
	if b.Value {
		mark := env.PushScope()
		v, sig, err := ev.evalBlockBody(s.Consequence.Statements, env)
		env.PopScope(mark)
		return v, sig, err
	}
	if s.Alternative == nil {
		return &VoidValue{}, ControlNone, nil
	}
	if alt, ok := s.Alternative.(*ast.BlockStatement); ok {
		mark := env.PushScope()
		v, sig, err := ev.evalBlockBody(alt.Statements, env)
		env.PopScope(mark)
		return v, sig, err
	}
	// elif chains to a nested IfStatement, which manages its own scope.
	return ev.evalStatement(s.Alternative, env)
}

func (ev *Evaluator) evalWhile(s *ast.WhileStatement, env *Environment) (Value, ControlSignal, error) {
	mark := env.PushScope()
	var last Value = &VoidValue{}
	for {
		cond, err := ev.evalExpression(s.Condition, env)
		if err != nil {
			env.PopScope(mark)
			return nil, ControlNone, err
		}
		b, ok := cond.(*BooleanValue)
		if !ok {
			env.PopScope(mark)
			return nil, ControlNone, errType(cond.Type(), BooleanType)
		}
		if !b.Value {
			break
		}
		v, sig, err := ev.evalBlockBody(s.Body.Statements, env)
		if err != nil {
			env.PopScope(mark)
			return nil, ControlNone, err
		}
		last = v
		if sig == ControlReturn {
			env.PopScope(mark)
			return v, ControlReturn, nil
		}
		if sig == ControlBreak {
			break
		}
		// ControlContinue and ControlNone both fall through to the next
		// condition check.
	}
	env.PopScope(mark)
	return last, ControlNone, nil
}

func (ev *Evaluator) evalFor(s *ast.ForStatement, env *Environment) (Value, ControlSignal, error) {
	mark := env.PushScope()
	if _, _, err := ev.evalStatement(s.Init, env); err != nil {
		env.PopScope(mark)
		return nil, ControlNone, err
	}
	var last Value = &VoidValue{}
	for {
		cond, err := ev.evalExpression(s.Condition, env)
		if err != nil {
			env.PopScope(mark)
			return nil, ControlNone, err
		}
		b, ok := cond.(*BooleanValue)
		if !ok {
			env.PopScope(mark)
			return nil, ControlNone, errType(cond.Type(), BooleanType)
		}
		if !b.Value {
			break
		}
		v, sig, err := ev.evalBlockBody(s.Body.Statements, env)
		if err != nil {
			env.PopScope(mark)
			return nil, ControlNone, err
		}
		last = v
		if sig == ControlReturn {
			env.PopScope(mark)
			return v, ControlReturn, nil
		}
		if sig == ControlBreak {
			break
		}
		if _, _, err := ev.evalStatement(s.Step, env); err != nil {
			env.PopScope(mark)
			return nil, ControlNone, err
		}
	}
	env.PopScope(mark)
	return last, ControlNone, nil
}

func (ev *Evaluator) evalExpression(expr ast.Expression, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &IntegerValue{Value: e.Value}, nil
	case *ast.FloatLiteral:
		return &FloatValue{Value: e.Value}, nil
	case *ast.BooleanLiteral:
		return &BooleanValue{Value: e.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: e.Value}, nil
	case *ast.NullLiteral:
		return &NullValue{}, nil
	case *ast.ListLiteral:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := ev.evalExpression(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ListValue{Elements: elems}, nil
	case *ast.Identifier:
		v, ok := env.Lookup(e.Value)
		if !ok {
			return nil, errNotFound(e.Value)
		}
		return v, nil
	case *ast.GroupedExpression:
		return ev.evalExpression(e.Expression, env)
	case *ast.BlockExpression:
		mark := env.PushScope()
		v, _, err := ev.evalBlockBody(e.Block.Statements, env)
		env.PopScope(mark)
		return v, err
	case *ast.UnaryExpression:
		return ev.evalUnary(e, env)
	case *ast.BinaryExpression:
		return ev.evalBinary(e, env)
	case *ast.AssignmentExpression:
		v, err := ev.evalExpression(e.Value, env)
		if err != nil {
			return nil, err
		}
		// Update the nearest existing binding in place so that an
		// accumulator declared in an enclosing scope survives the
		// truncation of the loop/if scope it's reassigned from; only a
		// genuinely new name is pushed as a fresh entry.
		if !env.Assign(e.Name.Value, v) {
			env.Define(e.Name.Value, v)
		}
		return v, nil
	case *ast.FunctionDeclaration:
		fn := &FunctionValue{Decl: e}
		env.Define(FunctionPrefix+e.Name, fn)
		return &VoidValue{}, nil
	case *ast.CallExpression:
		return ev.evalCall(e, env)
	}
	return nil, errExpr(fmt.Sprintf("unsupported expression %T", expr))
}

func (ev *Evaluator) evalUnary(e *ast.UnaryExpression, env *Environment) (Value, error) {
	right, err := ev.evalExpression(e.Right, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "!":
		b, ok := right.(*BooleanValue)
		if !ok {
			return nil, errType(right.Type(), BooleanType)
		}
		return &BooleanValue{Value: !b.Value}, nil
	case "-":
		switch v := right.(type) {
		case *IntegerValue:
			return &IntegerValue{Value: -v.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -v.Value}, nil
		default:
			return nil, errType(right.Type(), IntegerType, FloatType)
		}
	}
	return nil, errExpr(fmt.Sprintf("unsupported unary operator %q", e.Operator))
}

func (ev *Evaluator) evalBinary(e *ast.BinaryExpression, env *Environment) (Value, error) {
	left, err := ev.evalExpression(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpression(e.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinary(e.Operator, left, right)
}

func (ev *Evaluator) evalCall(e *ast.CallExpression, env *Environment) (Value, error) {
	callee, ok := env.Lookup(FunctionPrefix + e.Name)
	if !ok {
		return nil, errNotFound(e.Name)
	}

	args := make([]Value, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := ev.evalExpression(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *FunctionValue:
		mark := env.PushScope()
		for i, param := range fn.Decl.Parameters {
			var v Value = &NullValue{}
			if i < len(args) {
				v = args[i]
			}
			env.Define(param.Value, v)
		}
		v, _, err := ev.evalBlockBody(fn.Decl.Body.Statements, env)
		env.PopScope(mark)
		if err != nil {
			return nil, err
		}
		return v, nil
	case *NativeFunctionValue:
		return fn.Fn(env, args)
	}
	return nil, errType(callee.Type(), FunctionType, NativeFunctionType)
}
