package semantics_test

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"lisplet/ast"
	"lisplet/parser"
	"lisplet/semantics"
)

func check(t *testing.T, input string, env *semantics.TypeEnv) (ast.Type, error) {
	t.Helper()
	expr, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return semantics.Check(expr, env)
}

func mustCheck(t *testing.T, input string, env *semantics.TypeEnv) ast.Type {
	t.Helper()
	ty, err := check(t, input, env)
	if err != nil {
		t.Fatalf("Check(%q) failed: %v", input, err)
	}
	return ty
}

func TestCheckLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Type
	}{
		{"42", ast.I32},
		{"2147483648", ast.I64},
		{"3.14", ast.F64},
		{"true", ast.Bool},
		{`"hello"`, ast.String},
	}

	env := semantics.NewGlobalTypeEnv()
	for _, tt := range tests {
		got := mustCheck(t, tt.input, env)
		if !ast.Equal(got, tt.expected) {
			t.Errorf("Check(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestCheckBuiltinCalls(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Type
	}{
		{"(+ 1 2)", ast.I32},
		{"(+ 2147483648 1)", ast.I32}, // return follows the last argument
		{"(+. 1.0 2.0)", ast.F64},
		{"(= 1 2)", ast.Bool},
		{"(< 1 2)", ast.Bool},
		{"(and true false)", ast.Bool},
		{"(not true)", ast.Bool},
		{"(print 42)", ast.I32},
		{`(println "hi")`, ast.String},
		{"(type-of 3.14)", ast.String},
	}

	env := semantics.NewGlobalTypeEnv()
	for _, tt := range tests {
		got := mustCheck(t, tt.input, env)
		if !ast.Equal(got, tt.expected) {
			t.Errorf("Check(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"x", "Undefined variable: x"},
		{"(if 1 2 3)", "If condition must be bool, got i32"},
		{"(if true 1 2.0)", "If branches must have same type: i32 vs f64"},
		{"(let x: i32 2.0)", "Type mismatch: expected i32, got f64"},
		{"(let x: bool 1)", "Type mismatch: expected bool, got i32"},
		{"(and 1 true)", "Type mismatch in argument: expected bool, got i32"},
		{"(+. 1 2.0)", "Type mismatch in argument: expected f64, got i32"},
		{"(not true false)", "Wrong number of arguments: expected 1, got 2"},
		{"(and true)", "Wrong number of arguments: expected 2, got 1"},
		{"(1 2)", "Cannot call non-function type: i32"},
		{`("f" 1)`, "Cannot call non-function type: String"},
		{"(defn f [x: i32] -> bool x)", "Return type mismatch: expected bool, got i32"},
		{"(fn [x: i32] -> bool x)", "Lambda return type mismatch: expected bool, got i32"},
		{"()", "Empty list"},
	}

	for _, tt := range tests {
		env := semantics.NewGlobalTypeEnv()
		_, err := check(t, tt.input, env)
		if err == nil {
			t.Errorf("Check(%q) expected an error", tt.input)
			continue
		}
		if err.Error() != tt.message {
			t.Errorf("Check(%q) error %q, want %q", tt.input, err.Error(), tt.message)
		}
	}
}

func TestCheckLet(t *testing.T) {
	env := semantics.NewGlobalTypeEnv()

	if got := mustCheck(t, "(let x: i32 1)", env); !ast.Equal(got, ast.I32) {
		t.Errorf("annotated let = %s, want i32", got)
	}
	if got := mustCheck(t, "(let y: _ 2.0)", env); !ast.Equal(got, ast.F64) {
		t.Errorf("inferred annotation = %s, want f64", got)
	}
	if got := mustCheck(t, "(let z 1 (+. 2.0 3.0))", env); !ast.Equal(got, ast.F64) {
		t.Errorf("let-in types to its body, got %s", got)
	}

	// bindings persist for later top-level expressions, let-in included
	if got := mustCheck(t, "x", env); !ast.Equal(got, ast.I32) {
		t.Errorf("x = %s after let, want i32", got)
	}
	if got := mustCheck(t, "z", env); !ast.Equal(got, ast.I32) {
		t.Errorf("z = %s after let-in, want i32", got)
	}
}

func TestCheckDefn(t *testing.T) {
	env := semantics.NewGlobalTypeEnv()

	got := mustCheck(t,
		"(defn fact [n: i32] -> i32 (if (= n 0) 1 (* n (fact (- n 1)))))", env)
	want := &ast.FunctionType{Params: []ast.Type{ast.I32}, Return: ast.I32}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("defn type: %v", diff)
	}

	if got := mustCheck(t, "(fact 5)", env); !ast.Equal(got, ast.I32) {
		t.Errorf("(fact 5) = %s, want i32", got)
	}
	if _, err := check(t, "(fact true)", env); err == nil ||
		!strings.Contains(err.Error(), "Type mismatch in argument") {
		t.Errorf("(fact true) error = %v, want argument mismatch", err)
	}
	if _, err := check(t, "(fact 1 2)", env); err == nil ||
		!strings.Contains(err.Error(), "Wrong number of arguments") {
		t.Errorf("(fact 1 2) error = %v, want arity mismatch", err)
	}

	// parameters scope to the body only
	if _, err := check(t, "n", env); err == nil {
		t.Error("parameter n leaked into the enclosing scope")
	}
}

func TestCheckLambda(t *testing.T) {
	env := semantics.NewGlobalTypeEnv()

	got := mustCheck(t, "(fn [a: i32 b: i32] (+ a b))", env)
	want := &ast.FunctionType{Params: []ast.Type{ast.I32, ast.I32}, Return: ast.I32}
	if diff := deep.Equal(got, want); diff != nil {
		t.Fatalf("lambda type: %v", diff)
	}

	if got := mustCheck(t, "((fn [x: i32] x) 5)", env); !ast.Equal(got, ast.I32) {
		t.Errorf("immediate call = %s, want i32", got)
	}
	if got := mustCheck(t, "(let id (fn [x: _] x) (id 3.5))", env); !ast.Equal(got, ast.F64) {
		t.Errorf("inferred identity = %s, want f64", got)
	}
}
