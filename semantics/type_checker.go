package semantics

import (
	"fmt"

	"lisplet/ast"
)

// TypeEnv mirrors object.Environment for static types: a local mapping
// layered over a shared outer scope.
type TypeEnv struct {
	outer *TypeEnv
	store map[string]ast.Type
}

func NewTypeEnv(outer *TypeEnv) *TypeEnv {
	return &TypeEnv{
		outer: outer,
		store: make(map[string]ast.Type),
	}
}

func (e *TypeEnv) Resolve(name string) (ast.Type, bool) {
	t, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Resolve(name)
	}
	return t, ok
}

func (e *TypeEnv) Define(name string, t ast.Type) {
	e.store[name] = t
}

// NewGlobalTypeEnv builds the root type environment with the fixed builtin
// operator table. The integer operators are typed with the inferred marker
// so one entry serves both widths; the builtin implementations enforce
// matching widths at run time, a gap the checker leaves on purpose.
func NewGlobalTypeEnv() *TypeEnv {
	env := NewTypeEnv(nil)

	intBinop := &ast.FunctionType{
		Params: []ast.Type{ast.Inferred, ast.Inferred},
		Return: ast.Inferred,
	}
	for _, op := range []string{"+", "-", "*", "/"} {
		env.Define(op, intBinop)
	}

	floatBinop := &ast.FunctionType{
		Params: []ast.Type{ast.F64, ast.F64},
		Return: ast.F64,
	}
	for _, op := range []string{"+.", "-.", "*.", "/."} {
		env.Define(op, floatBinop)
	}

	comparison := &ast.FunctionType{
		Params: []ast.Type{ast.Inferred, ast.Inferred},
		Return: ast.Bool,
	}
	for _, op := range []string{"=", "<", ">", "<=", ">="} {
		env.Define(op, comparison)
	}

	boolBinop := &ast.FunctionType{
		Params: []ast.Type{ast.Bool, ast.Bool},
		Return: ast.Bool,
	}
	env.Define("and", boolBinop)
	env.Define("or", boolBinop)
	env.Define("not", &ast.FunctionType{
		Params: []ast.Type{ast.Bool},
		Return: ast.Bool,
	})

	// print/println accept any single value and return it unchanged
	identity := &ast.FunctionType{
		Params: []ast.Type{ast.Inferred},
		Return: ast.Inferred,
	}
	env.Define("print", identity)
	env.Define("println", identity)

	env.Define("type-of", &ast.FunctionType{
		Params: []ast.Type{ast.Inferred},
		Return: ast.String,
	})

	return env
}

// Check assigns a static type to expr or reports the first mismatch. It is
// a structural checker, not a unifying inference engine: literals have
// fixed types, and the inferred marker is the only loophole.
func Check(expr ast.Expr, env *TypeEnv) (ast.Type, error) {
	switch nd := expr.(type) {
	case *ast.Integer32Literal:
		return ast.I32, nil
	case *ast.Integer64Literal:
		return ast.I64, nil
	case *ast.FloatLiteral:
		return ast.F64, nil
	case *ast.BooleanLiteral:
		return ast.Bool, nil
	case *ast.StringLiteral:
		return ast.String, nil

	case *ast.Symbol:
		if t, ok := env.Resolve(nd.Name); ok {
			return t, nil
		}
		return nil, fmt.Errorf("Undefined variable: %s", nd.Name)

	case *ast.IfExpression:
		return checkIf(nd, env)

	case *ast.LetExpression:
		return checkLet(nd, env)

	case *ast.DefnExpression:
		return checkDefn(nd, env)

	case *ast.LambdaExpression:
		return checkLambda(nd, env)

	case *ast.CallExpression:
		return checkCall(nd, env)

	case *ast.ListExpression:
		// the parser resolves non-empty lists; only () arrives here
		if len(nd.Elements) == 0 {
			return nil, fmt.Errorf("Empty list")
		}
		return checkCall(&ast.CallExpression{
			Callee: nd.Elements[0],
			Args:   nd.Elements[1:],
		}, env)
	}
	return nil, fmt.Errorf("unhandled expression: %s", expr)
}

func checkIf(nd *ast.IfExpression, env *TypeEnv) (ast.Type, error) {
	condType, err := Check(nd.Condition, env)
	if err != nil {
		return nil, err
	}
	if !ast.Equal(condType, ast.Bool) {
		return nil, fmt.Errorf("If condition must be bool, got %s", condType)
	}
	thenType, err := Check(nd.Then, env)
	if err != nil {
		return nil, err
	}
	elseType, err := Check(nd.Else, env)
	if err != nil {
		return nil, err
	}
	// no common-supertype widening: both branches check to the same type
	if !ast.Equal(thenType, elseType) {
		return nil, fmt.Errorf("If branches must have same type: %s vs %s", thenType, elseType)
	}
	return thenType, nil
}

// checkLet installs the binding into the current environment for both let
// forms. Scoping only affects evaluation; the checker deliberately shares
// one rule, so a let-in binding stays visible to later type checks.
func checkLet(nd *ast.LetExpression, env *TypeEnv) (ast.Type, error) {
	valueType, err := Check(nd.Value, env)
	if err != nil {
		return nil, err
	}
	bound := valueType
	if nd.TypeAnn != nil && !ast.Equal(nd.TypeAnn, ast.Inferred) {
		if !ast.Equal(nd.TypeAnn, valueType) {
			return nil, fmt.Errorf("Type mismatch: expected %s, got %s", nd.TypeAnn, valueType)
		}
		bound = nd.TypeAnn
	}
	env.Define(nd.Name, bound)
	if nd.Body != nil {
		return Check(nd.Body, env)
	}
	return bound, nil
}

// checkDefn seeds the body environment with the function's own type before
// checking the body, so self-recursive definitions check. The name is then
// installed into the enclosing environment for everything that follows.
func checkDefn(nd *ast.DefnExpression, env *TypeEnv) (ast.Type, error) {
	fnType := &ast.FunctionType{
		Params: paramTypes(nd.Params),
		Return: nd.ReturnType,
	}
	inner := NewTypeEnv(env)
	inner.Define(nd.Name, fnType)
	for _, p := range nd.Params {
		inner.Define(p.Name, p.Type)
	}
	bodyType, err := Check(nd.Body, inner)
	if err != nil {
		return nil, err
	}
	if !ast.Equal(nd.ReturnType, ast.Inferred) && !ast.Equal(bodyType, nd.ReturnType) {
		return nil, fmt.Errorf("Return type mismatch: expected %s, got %s", nd.ReturnType, bodyType)
	}
	env.Define(nd.Name, fnType)
	return fnType, nil
}

func checkLambda(nd *ast.LambdaExpression, env *TypeEnv) (ast.Type, error) {
	inner := NewTypeEnv(env)
	for _, p := range nd.Params {
		inner.Define(p.Name, p.Type)
	}
	bodyType, err := Check(nd.Body, inner)
	if err != nil {
		return nil, err
	}
	if nd.ReturnType != nil && !ast.Equal(nd.ReturnType, ast.Inferred) &&
		!ast.Equal(bodyType, nd.ReturnType) {
		return nil, fmt.Errorf("Lambda return type mismatch: expected %s, got %s", nd.ReturnType, bodyType)
	}
	return &ast.FunctionType{
		Params: paramTypes(nd.Params),
		Return: bodyType,
	}, nil
}

// checkCall requires exact arity and exact per-argument types, except that
// an inferred parameter accepts any argument; when the declared return is
// also inferred, the call's type becomes the argument's type. This is how
// print-style builtins propagate the type of what flows through them.
func checkCall(nd *ast.CallExpression, env *TypeEnv) (ast.Type, error) {
	calleeType, err := Check(nd.Callee, env)
	if err != nil {
		return nil, err
	}
	fnType, ok := calleeType.(*ast.FunctionType)
	if !ok {
		return nil, fmt.Errorf("Cannot call non-function type: %s", calleeType)
	}
	if len(nd.Args) != len(fnType.Params) {
		return nil, fmt.Errorf("Wrong number of arguments: expected %d, got %d",
			len(fnType.Params), len(nd.Args))
	}
	result := fnType.Return
	for idx, arg := range nd.Args {
		argType, err := Check(arg, env)
		if err != nil {
			return nil, err
		}
		paramType := fnType.Params[idx]
		if !ast.Equal(paramType, ast.Inferred) && !ast.Equal(argType, paramType) {
			return nil, fmt.Errorf("Type mismatch in argument: expected %s, got %s",
				paramType, argType)
		}
		if ast.Equal(fnType.Return, ast.Inferred) {
			result = argType
		}
	}
	return result, nil
}

func paramTypes(params []ast.Param) []ast.Type {
	types := make([]ast.Type, 0, len(params))
	for _, p := range params {
		types = append(types, p.Type)
	}
	return types
}
