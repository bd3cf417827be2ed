package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Expr is the closed set of expression nodes the parser produces and the
// checker and evaluator consume. New node kinds are not expected; every
// consumer dispatches with an exhaustive type switch.
type Expr interface {
	exprNode()
	String() string
}

// Integer32Literal is a literal that fit in 32 bits at parse time.
type Integer32Literal struct {
	Value int32
}

func (il *Integer32Literal) exprNode()      {}
func (il *Integer32Literal) String() string { return fmt.Sprintf("%d", il.Value) }

// Integer64Literal is a literal whose value exceeded the 32-bit range and
// was width-promoted by the parser.
type Integer64Literal struct {
	Value int64
}

func (il *Integer64Literal) exprNode()      {}
func (il *Integer64Literal) String() string { return fmt.Sprintf("%d", il.Value) }

type FloatLiteral struct {
	Value float64
}

func (fl *FloatLiteral) exprNode()      {}
func (fl *FloatLiteral) String() string { return FormatFloat(fl.Value) }

type BooleanLiteral struct {
	Value bool
}

func (bl *BooleanLiteral) exprNode()      {}
func (bl *BooleanLiteral) String() string { return fmt.Sprintf("%t", bl.Value) }

type StringLiteral struct {
	Value string
}

func (sl *StringLiteral) exprNode()      {}
func (sl *StringLiteral) String() string { return `"` + sl.Value + `"` }

// Symbol is an identifier reference, including operator names like + or <=.
type Symbol struct {
	Name string
}

func (s *Symbol) exprNode()      {}
func (s *Symbol) String() string { return s.Name }

// ListExpression is the uninterpreted parenthesized form. The parser
// resolves every non-empty list into a special form or a CallExpression, so
// only the empty list () reaches the checker and evaluator, which reject it.
type ListExpression struct {
	Elements []Expr
}

func (le *ListExpression) exprNode() {}
func (le *ListExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	for idx, elem := range le.Elements {
		if idx > 0 {
			out.WriteString(" ")
		}
		out.WriteString(elem.String())
	}
	out.WriteString(")")
	return out.String()
}

type IfExpression struct {
	Condition Expr
	Then      Expr
	Else      Expr
}

func (ie *IfExpression) exprNode() {}
func (ie *IfExpression) String() string {
	return fmt.Sprintf("(if %s %s %s)", ie.Condition, ie.Then, ie.Else)
}

// LetExpression binds Name to Value. With a Body it is a scoped let-in and
// the binding is visible only inside Body; without one it is a sequential
// definition installed into the enclosing environment. TypeAnn is nil when
// no annotation was written.
type LetExpression struct {
	Name    string
	TypeAnn Type
	Value   Expr
	Body    Expr
}

func (le *LetExpression) exprNode() {}
func (le *LetExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(let " + le.Name)
	if le.TypeAnn != nil {
		out.WriteString(" " + le.TypeAnn.String())
	}
	out.WriteString(" " + le.Value.String())
	if le.Body != nil {
		out.WriteString(" " + le.Body.String())
	}
	out.WriteString(")")
	return out.String()
}

// Param is one name: Type pair in a function's bracketed parameter list.
type Param struct {
	Name string
	Type Type
}

func (p Param) String() string { return p.Name + ": " + p.Type.String() }

type DefnExpression struct {
	Name       string
	Params     []Param
	ReturnType Type
	Body       Expr
}

func (de *DefnExpression) exprNode() {}
func (de *DefnExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(defn " + de.Name + " [")
	out.WriteString(joinParams(de.Params))
	out.WriteString("] -> " + de.ReturnType.String())
	out.WriteString(" " + de.Body.String() + ")")
	return out.String()
}

// LambdaExpression is an anonymous function. ReturnType is nil when omitted.
type LambdaExpression struct {
	Params     []Param
	ReturnType Type
	Body       Expr
}

func (le *LambdaExpression) exprNode() {}
func (le *LambdaExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(fn [")
	out.WriteString(joinParams(le.Params))
	out.WriteString("]")
	if le.ReturnType != nil {
		out.WriteString(" -> " + le.ReturnType.String())
	}
	out.WriteString(" " + le.Body.String() + ")")
	return out.String()
}

type CallExpression struct {
	Callee Expr
	Args   []Expr
}

func (ce *CallExpression) exprNode() {}
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(" + ce.Callee.String())
	for _, arg := range ce.Args {
		out.WriteString(" " + arg.String())
	}
	out.WriteString(")")
	return out.String()
}

func joinParams(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}
