package interpreter

import (
	"fmt"
	"io"

	"lisplet/object"
)

// NewGlobalEnvironment builds the root value environment with the fixed
// builtin table installed. Print output goes to out so drivers and tests
// choose where it lands.
func NewGlobalEnvironment(out io.Writer) *object.Environment {
	env := object.NewEnvironment(nil)
	for name, builtin := range builtinTable(out) {
		env.Define(name, builtin)
	}
	return env
}

func builtinTable(out io.Writer) map[string]*object.Builtin {
	table := make(map[string]*object.Builtin)
	register := func(name string, arity int, fn object.BuiltinFunction) {
		table[name] = &object.Builtin{Name: name, Arity: arity, Fn: fn}
	}

	register("+", 2, intBinop("+",
		func(a, b int32) (object.Value, error) { return &object.Integer32{Value: a + b}, nil },
		func(a, b int64) (object.Value, error) { return &object.Integer64{Value: a + b}, nil }))
	register("-", 2, intBinop("-",
		func(a, b int32) (object.Value, error) { return &object.Integer32{Value: a - b}, nil },
		func(a, b int64) (object.Value, error) { return &object.Integer64{Value: a - b}, nil }))
	register("*", 2, intBinop("*",
		func(a, b int32) (object.Value, error) { return &object.Integer32{Value: a * b}, nil },
		func(a, b int64) (object.Value, error) { return &object.Integer64{Value: a * b}, nil }))
	register("/", 2, intBinop("/",
		func(a, b int32) (object.Value, error) {
			if b == 0 {
				return nil, fmt.Errorf("Division by zero")
			}
			return &object.Integer32{Value: a / b}, nil
		},
		func(a, b int64) (object.Value, error) {
			if b == 0 {
				return nil, fmt.Errorf("Division by zero")
			}
			return &object.Integer64{Value: a / b}, nil
		}))

	register("+.", 2, floatBinop("+.", func(a, b float64) (object.Value, error) {
		return &object.Float{Value: a + b}, nil
	}))
	register("-.", 2, floatBinop("-.", func(a, b float64) (object.Value, error) {
		return &object.Float{Value: a - b}, nil
	}))
	register("*.", 2, floatBinop("*.", func(a, b float64) (object.Value, error) {
		return &object.Float{Value: a * b}, nil
	}))
	register("/.", 2, floatBinop("/.", func(a, b float64) (object.Value, error) {
		if b == 0 {
			return nil, fmt.Errorf("Division by zero")
		}
		return &object.Float{Value: a / b}, nil
	}))

	register("=", 2, intComparison("=",
		func(a, b int32) bool { return a == b },
		func(a, b int64) bool { return a == b }))
	register("<", 2, intComparison("<",
		func(a, b int32) bool { return a < b },
		func(a, b int64) bool { return a < b }))
	register(">", 2, intComparison(">",
		func(a, b int32) bool { return a > b },
		func(a, b int64) bool { return a > b }))
	register("<=", 2, intComparison("<=",
		func(a, b int32) bool { return a <= b },
		func(a, b int64) bool { return a <= b }))
	register(">=", 2, intComparison(">=",
		func(a, b int32) bool { return a >= b },
		func(a, b int64) bool { return a >= b }))

	register("and", 2, boolBinop("and", func(a, b bool) bool { return a && b }))
	register("or", 2, boolBinop("or", func(a, b bool) bool { return a || b }))
	register("not", 1, func(args []object.Value) (object.Value, error) {
		b, ok := args[0].(*object.Boolean)
		if !ok {
			return nil, fmt.Errorf("not requires a boolean")
		}
		return nativeBool(!b.Value), nil
	})

	// print/println format strings unquoted, everything else by its display
	// form, and return the argument unchanged
	register("print", 1, func(args []object.Value) (object.Value, error) {
		fmt.Fprint(out, args[0].Inspect())
		return args[0], nil
	})
	register("println", 1, func(args []object.Value) (object.Value, error) {
		fmt.Fprintln(out, args[0].Inspect())
		return args[0], nil
	})

	register("type-of", 1, func(args []object.Value) (object.Value, error) {
		return &object.String{Value: string(args[0].Type())}, nil
	})

	return table
}

// intBinop dispatches on matching integer widths; mixed or non-integer
// operands are an error even when the checker let them through via an
// inferred operator type.
func intBinop(
	name string,
	fn32 func(a, b int32) (object.Value, error),
	fn64 func(a, b int64) (object.Value, error),
) object.BuiltinFunction {
	return func(args []object.Value) (object.Value, error) {
		switch left := args[0].(type) {
		case *object.Integer32:
			if right, ok := args[1].(*object.Integer32); ok {
				return fn32(left.Value, right.Value)
			}
		case *object.Integer64:
			if right, ok := args[1].(*object.Integer64); ok {
				return fn64(left.Value, right.Value)
			}
		}
		return nil, fmt.Errorf("%s requires two integers of the same type", name)
	}
}

func intComparison(
	name string,
	cmp32 func(a, b int32) bool,
	cmp64 func(a, b int64) bool,
) object.BuiltinFunction {
	return func(args []object.Value) (object.Value, error) {
		switch left := args[0].(type) {
		case *object.Integer32:
			if right, ok := args[1].(*object.Integer32); ok {
				return nativeBool(cmp32(left.Value, right.Value)), nil
			}
		case *object.Integer64:
			if right, ok := args[1].(*object.Integer64); ok {
				return nativeBool(cmp64(left.Value, right.Value)), nil
			}
		}
		return nil, fmt.Errorf("%s requires two integers of the same type", name)
	}
}

func floatBinop(name string, fn func(a, b float64) (object.Value, error)) object.BuiltinFunction {
	return func(args []object.Value) (object.Value, error) {
		left, lok := args[0].(*object.Float)
		right, rok := args[1].(*object.Float)
		if !lok || !rok {
			return nil, fmt.Errorf("%s requires two floats", name)
		}
		return fn(left.Value, right.Value)
	}
}

func boolBinop(name string, fn func(a, b bool) bool) object.BuiltinFunction {
	return func(args []object.Value) (object.Value, error) {
		left, lok := args[0].(*object.Boolean)
		right, rok := args[1].(*object.Boolean)
		if !lok || !rok {
			return nil, fmt.Errorf("%s requires two booleans", name)
		}
		return nativeBool(fn(left.Value, right.Value)), nil
	}
}
