package interpreter

import (
	"fmt"

	"lisplet/ast"
	"lisplet/object"
)

var (
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
)

func nativeBool(v bool) *object.Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

// Eval reduces expr to a value in env. The checker runs first in every
// driver, but the evaluator re-validates the cases the checker
// under-constrains (inferred types) or could miss, instead of trusting it.
func Eval(expr ast.Expr, env *object.Environment) (object.Value, error) {
	switch nd := expr.(type) {
	case *ast.Integer32Literal:
		return &object.Integer32{Value: nd.Value}, nil
	case *ast.Integer64Literal:
		return &object.Integer64{Value: nd.Value}, nil
	case *ast.FloatLiteral:
		return &object.Float{Value: nd.Value}, nil
	case *ast.BooleanLiteral:
		return nativeBool(nd.Value), nil
	case *ast.StringLiteral:
		return &object.String{Value: nd.Value}, nil

	case *ast.Symbol:
		if val, ok := env.Resolve(nd.Name); ok {
			return val, nil
		}
		return nil, fmt.Errorf("Undefined variable: %s", nd.Name)

	case *ast.IfExpression:
		return evalIf(nd, env)

	case *ast.LetExpression:
		return evalLet(nd, env)

	case *ast.DefnExpression:
		// two-phase bind: the closure shares env, so installing the name
		// afterwards makes the function visible to its own body
		fn := &object.Function{
			Parameters: paramNames(nd.Params),
			Body:       nd.Body,
			Env:        env,
		}
		env.Define(nd.Name, fn)
		return fn, nil

	case *ast.LambdaExpression:
		return &object.Function{
			Parameters: paramNames(nd.Params),
			Body:       nd.Body,
			Env:        env,
		}, nil

	case *ast.CallExpression:
		return evalCall(nd, env)

	case *ast.ListExpression:
		if len(nd.Elements) == 0 {
			return nil, fmt.Errorf("Empty list")
		}
		return evalCall(&ast.CallExpression{
			Callee: nd.Elements[0],
			Args:   nd.Elements[1:],
		}, env)
	}
	return nil, fmt.Errorf("unhandled expression: %s", expr)
}

func evalIf(nd *ast.IfExpression, env *object.Environment) (object.Value, error) {
	condition, err := Eval(nd.Condition, env)
	if err != nil {
		return nil, err
	}
	cond, ok := condition.(*object.Boolean)
	if !ok {
		return nil, fmt.Errorf("If condition must be a boolean")
	}
	if cond.Value {
		return Eval(nd.Then, env)
	}
	return Eval(nd.Else, env)
}

// evalLet evaluates the value once. With a body, the binding lives in a
// child scope visible only to that body; without one it is installed into
// the current environment, visible to every later sibling expression.
func evalLet(nd *ast.LetExpression, env *object.Environment) (object.Value, error) {
	val, err := Eval(nd.Value, env)
	if err != nil {
		return nil, err
	}
	if nd.Body != nil {
		inner := object.NewEnvironment(env)
		inner.Define(nd.Name, val)
		return Eval(nd.Body, inner)
	}
	env.Define(nd.Name, val)
	return val, nil
}

// evalCall resolves the callee and checks arity against the syntactic
// argument count before evaluating any argument, so an arity mismatch
// never observes argument side effects.
func evalCall(nd *ast.CallExpression, env *object.Environment) (object.Value, error) {
	callee, err := Eval(nd.Callee, env)
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *object.Function:
		if len(nd.Args) != len(fn.Parameters) {
			return nil, fmt.Errorf("Wrong number of arguments: expected %d, got %d",
				len(fn.Parameters), len(nd.Args))
		}
		args, err := evalArgs(nd.Args, env)
		if err != nil {
			return nil, err
		}
		// extend the captured environment, not the caller's
		inner := object.NewEnvironment(fn.Env)
		for idx, param := range fn.Parameters {
			inner.Define(param, args[idx])
		}
		return Eval(fn.Body, inner)

	case *object.Builtin:
		if len(nd.Args) != fn.Arity {
			return nil, fmt.Errorf("Wrong number of arguments for %s: expected %d, got %d",
				fn.Name, fn.Arity, len(nd.Args))
		}
		args, err := evalArgs(nd.Args, env)
		if err != nil {
			return nil, err
		}
		return fn.Fn(args)

	default:
		return nil, fmt.Errorf("Cannot call non-function value: %s", callee.Inspect())
	}
}

func evalArgs(exprs []ast.Expr, env *object.Environment) ([]object.Value, error) {
	args := make([]object.Value, 0, len(exprs))
	for _, e := range exprs {
		val, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

func paramNames(params []ast.Param) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}
