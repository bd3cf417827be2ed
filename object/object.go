package object

import (
	"fmt"

	"lisplet/ast"
)

// ValueType is the runtime type tag, spelled the way type-of reports it.
type ValueType string

const (
	INTEGER32_OBJ ValueType = "i32"
	INTEGER64_OBJ ValueType = "i64"
	FLOAT_OBJ     ValueType = "f64"
	BOOLEAN_OBJ   ValueType = "bool"
	STRING_OBJ    ValueType = "String"
	FUNCTION_OBJ  ValueType = "function"
	BUILTIN_OBJ   ValueType = "builtin"
)

// Value is the closed union of runtime values. Values are immutable once
// constructed; rebinding a name produces a new environment entry, never an
// in-place mutation.
type Value interface {
	Type() ValueType
	Inspect() string
}

type Integer32 struct {
	Value int32
}

func (i *Integer32) Type() ValueType { return INTEGER32_OBJ }
func (i *Integer32) Inspect() string { return fmt.Sprintf("%d", i.Value) }

type Integer64 struct {
	Value int64
}

func (i *Integer64) Type() ValueType { return INTEGER64_OBJ }
func (i *Integer64) Inspect() string { return fmt.Sprintf("%d", i.Value) }

type Float struct {
	Value float64
}

func (f *Float) Type() ValueType { return FLOAT_OBJ }
func (f *Float) Inspect() string { return ast.FormatFloat(f.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ValueType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string { return fmt.Sprintf("%t", b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ValueType { return STRING_OBJ }
func (s *String) Inspect() string { return s.Value }

// Function is a user-defined function: parameter names, the body
// expression, and the environment captured at definition time (the
// closure). Env is shared, not copied; the chain it heads is immutable from
// the closure's point of view.
type Function struct {
	Parameters []string
	Body       ast.Expr
	Env        *Environment
}

func (f *Function) Type() ValueType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return fmt.Sprintf("#<function:%d>", len(f.Parameters))
}

// BuiltinFunction is a pure host operation; args arrive already evaluated
// and arity-checked.
type BuiltinFunction func(args []Value) (Value, error)

type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
}

func (b *Builtin) Type() ValueType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string {
	return fmt.Sprintf("#<builtin:%s:%d>", b.Name, b.Arity)
}
