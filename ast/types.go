package ast

import (
	"strconv"
	"strings"
)

// Type is the closed union of static types: five primitives, the function
// type, and the inferred placeholder. Equality is structural, via Equal.
type Type interface {
	typeNode()
	String() string
}

// Primitive covers the base types plus the inferred marker. The string is
// the surface syntax, so String() doubles as the annotation spelling.
type Primitive string

const (
	I32      Primitive = "i32"
	I64      Primitive = "i64"
	F64      Primitive = "f64"
	Bool     Primitive = "bool"
	String   Primitive = "String"
	Inferred Primitive = "_"
)

func (p Primitive) typeNode()      {}
func (p Primitive) String() string { return string(p) }

type FunctionType struct {
	Params []Type
	Return Type
}

func (ft *FunctionType) typeNode() {}
func (ft *FunctionType) String() string {
	parts := make([]string, 0, len(ft.Params))
	for _, p := range ft.Params {
		parts = append(parts, p.String())
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> " + ft.Return.String()
}

// Equal reports structural type equality. The inferred marker is only equal
// to itself; its accept-anything behavior belongs to the checker, not here.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case Primitive:
		bp, ok := b.(Primitive)
		return ok && at == bp
	case *FunctionType:
		bf, ok := b.(*FunctionType)
		if !ok || len(at.Params) != len(bf.Params) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bf.Params[i]) {
				return false
			}
		}
		return Equal(at.Return, bf.Return)
	}
	return false
}

// FormatFloat renders a float the way the REPL and float literals print it:
// shortest decimal form, no exponent for ordinary magnitudes.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
