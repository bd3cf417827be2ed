package parser_test

import (
	"errors"
	"testing"

	"github.com/go-test/deep"

	"lisplet/ast"
	"lisplet/parser"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Expr
	}{
		{"42", &ast.Integer32Literal{Value: 42}},
		{"-7", &ast.Integer32Literal{Value: -7}},
		{"2147483647", &ast.Integer32Literal{Value: 2147483647}},
		// exceeds the 32-bit range, width-promoted
		{"2147483648", &ast.Integer64Literal{Value: 2147483648}},
		{"-2147483649", &ast.Integer64Literal{Value: -2147483649}},
		{"3.14", &ast.FloatLiteral{Value: 3.14}},
		{"-0.5", &ast.FloatLiteral{Value: -0.5}},
		{"true", &ast.BooleanLiteral{Value: true}},
		{"false", &ast.BooleanLiteral{Value: false}},
		{`"hello"`, &ast.StringLiteral{Value: "hello"}},
		{`""`, &ast.StringLiteral{Value: ""}},
		{`"a\nb\t\"c\"\\"`, &ast.StringLiteral{Value: "a\nb\t\"c\"\\"}},
		{"x", &ast.Symbol{Name: "x"}},
		{"truey", &ast.Symbol{Name: "truey"}},
		{"+", &ast.Symbol{Name: "+"}},
		{"+.", &ast.Symbol{Name: "+."}},
		{"<=", &ast.Symbol{Name: "<="}},
		{"type-of", &ast.Symbol{Name: "type-of"}},
		{"  42  ", &ast.Integer32Literal{Value: 42}},
	}

	for _, tt := range tests {
		got, err := parser.Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if diff := deep.Equal(got, tt.expected); diff != nil {
			t.Errorf("Parse(%q): %v", tt.input, diff)
		}
	}
}

func TestParseLists(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Expr
	}{
		{
			"()",
			&ast.ListExpression{},
		},
		{
			"(+ 1 2)",
			&ast.CallExpression{
				Callee: &ast.Symbol{Name: "+"},
				Args:   []ast.Expr{&ast.Integer32Literal{Value: 1}, &ast.Integer32Literal{Value: 2}},
			},
		},
		{
			"((f 1) 2)",
			&ast.CallExpression{
				Callee: &ast.CallExpression{
					Callee: &ast.Symbol{Name: "f"},
					Args:   []ast.Expr{&ast.Integer32Literal{Value: 1}},
				},
				Args: []ast.Expr{&ast.Integer32Literal{Value: 2}},
			},
		},
		{
			"(if (= n 0) 1 2)",
			&ast.IfExpression{
				Condition: &ast.CallExpression{
					Callee: &ast.Symbol{Name: "="},
					Args:   []ast.Expr{&ast.Symbol{Name: "n"}, &ast.Integer32Literal{Value: 0}},
				},
				Then: &ast.Integer32Literal{Value: 1},
				Else: &ast.Integer32Literal{Value: 2},
			},
		},
	}

	for _, tt := range tests {
		got, err := parser.Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if diff := deep.Equal(got, tt.expected); diff != nil {
			t.Errorf("Parse(%q): %v", tt.input, diff)
		}
	}
}

func TestParseLet(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Expr
	}{
		{
			"(let x 1)",
			&ast.LetExpression{Name: "x", Value: &ast.Integer32Literal{Value: 1}},
		},
		{
			"(let x: i32 1)",
			&ast.LetExpression{Name: "x", TypeAnn: ast.I32, Value: &ast.Integer32Literal{Value: 1}},
		},
		// bare annotation, no colon
		{
			"(let x i32 1)",
			&ast.LetExpression{Name: "x", TypeAnn: ast.I32, Value: &ast.Integer32Literal{Value: 1}},
		},
		{
			"(let x: _ 1)",
			&ast.LetExpression{Name: "x", TypeAnn: ast.Inferred, Value: &ast.Integer32Literal{Value: 1}},
		},
		// a symbol value must not be eaten by the annotation probe
		{
			"(let x y)",
			&ast.LetExpression{Name: "x", Value: &ast.Symbol{Name: "y"}},
		},
		{
			"(let x i32less 5)",
			&ast.LetExpression{
				Name:  "x",
				Value: &ast.Symbol{Name: "i32less"},
				Body:  &ast.Integer32Literal{Value: 5},
			},
		},
		// let-in with a body
		{
			"(let x 1 (let x 2 x))",
			&ast.LetExpression{
				Name:  "x",
				Value: &ast.Integer32Literal{Value: 1},
				Body: &ast.LetExpression{
					Name:  "x",
					Value: &ast.Integer32Literal{Value: 2},
					Body:  &ast.Symbol{Name: "x"},
				},
			},
		},
		{
			"(let f: fn(i32) -> i32 g)",
			&ast.LetExpression{
				Name: "f",
				TypeAnn: &ast.FunctionType{
					Params: []ast.Type{ast.I32},
					Return: ast.I32,
				},
				Value: &ast.Symbol{Name: "g"},
			},
		},
	}

	for _, tt := range tests {
		got, err := parser.Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if diff := deep.Equal(got, tt.expected); diff != nil {
			t.Errorf("Parse(%q): %v", tt.input, diff)
		}
	}
}

func TestParseFunctions(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Expr
	}{
		{
			"(defn inc [n: i32] -> i32 (+ n 1))",
			&ast.DefnExpression{
				Name:       "inc",
				Params:     []ast.Param{{Name: "n", Type: ast.I32}},
				ReturnType: ast.I32,
				Body: &ast.CallExpression{
					Callee: &ast.Symbol{Name: "+"},
					Args:   []ast.Expr{&ast.Symbol{Name: "n"}, &ast.Integer32Literal{Value: 1}},
				},
			},
		},
		{
			"(defn const2 [] -> i32 2)",
			&ast.DefnExpression{
				Name:       "const2",
				ReturnType: ast.I32,
				Body:       &ast.Integer32Literal{Value: 2},
			},
		},
		{
			"(fn [x: _] x)",
			&ast.LambdaExpression{
				Params: []ast.Param{{Name: "x", Type: ast.Inferred}},
				Body:   &ast.Symbol{Name: "x"},
			},
		},
		{
			"(lambda [a: i32 b: i32] -> i32 (+ a b))",
			&ast.LambdaExpression{
				Params:     []ast.Param{{Name: "a", Type: ast.I32}, {Name: "b", Type: ast.I32}},
				ReturnType: ast.I32,
				Body: &ast.CallExpression{
					Callee: &ast.Symbol{Name: "+"},
					Args:   []ast.Expr{&ast.Symbol{Name: "a"}, &ast.Symbol{Name: "b"}},
				},
			},
		},
	}

	for _, tt := range tests {
		got, err := parser.Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.input, err)
			continue
		}
		if diff := deep.Equal(got, tt.expected); diff != nil {
			t.Errorf("Parse(%q): %v", tt.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  parser.ErrorKind
	}{
		{"", parser.UnexpectedEOF},
		{"1 2", parser.UnexpectedInput},
		{"(+ 1 2) trailing", parser.UnexpectedInput},
		{"(+ 1", parser.UnmatchedParen},
		{"(", parser.UnmatchedParen},
		{"(if true 1)", parser.UnexpectedInput},
		{"(if true 1 2 3)", parser.UnexpectedInput},
		{"(if true 1", parser.UnexpectedEOF},
		{"9223372036854775808", parser.InvalidNumber},
		{`"abc`, parser.InvalidString},
		{`"a\qb"`, parser.InvalidString},
		{"(defn f [n i32] -> i32 n)", parser.UnexpectedInput},
		{"(defn f [n: i32] n)", parser.UnexpectedInput},
		{"(defn f [n: i32] -> nosuch n)", parser.InvalidType},
		{"(fn [x: i32] -> nosuch x)", parser.InvalidType},
	}

	for _, tt := range tests {
		_, err := parser.Parse(tt.input)
		if err == nil {
			t.Errorf("Parse(%q) expected an error", tt.input)
			continue
		}
		var perr *parser.Error
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) returned a non-parser error: %v", tt.input, err)
			continue
		}
		if perr.Kind != tt.kind {
			t.Errorf("Parse(%q) kind=%v, want %v (%v)", tt.input, perr.Kind, tt.kind, perr)
		}
	}
}

func TestParseAll(t *testing.T) {
	exprs, err := parser.ParseAll("(let x 1)\n(+ x 1)\n")
	if err != nil {
		t.Fatalf("ParseAll failed: %v", err)
	}
	if len(exprs) != 2 {
		t.Fatalf("ParseAll returned %d expressions, want 2", len(exprs))
	}

	exprs, err = parser.ParseAll("   \n  ")
	if err != nil {
		t.Fatalf("ParseAll on blank input failed: %v", err)
	}
	if len(exprs) != 0 {
		t.Fatalf("ParseAll on blank input returned %d expressions", len(exprs))
	}
}
