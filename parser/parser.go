package parser

import (
	"strconv"
	"strings"

	"lisplet/ast"
)

// Parse reads a single expression from source text. The whole input must be
// consumed modulo surrounding whitespace; any non-empty remainder fails
// with UnexpectedInput.
func Parse(input string) (ast.Expr, error) {
	r := &reader{input: input}
	expr, err := r.parseExpr()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, &Error{Kind: UnexpectedInput, Detail: r.snippet()}
	}
	return expr, nil
}

// ParseAll reads zero or more successive expressions, for script files. The
// grammar and failure modes are those of Parse.
func ParseAll(input string) ([]ast.Expr, error) {
	r := &reader{input: input}
	var exprs []ast.Expr
	for {
		r.skipSpace()
		if r.eof() {
			return exprs, nil
		}
		expr, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// reader is a cursor over the raw source. Each parse method consumes from
// pos and either returns a node or a terminal *Error.
type reader struct {
	input string
	pos   int
}

func (r *reader) eof() bool  { return r.pos >= len(r.input) }
func (r *reader) peek() byte { return r.input[r.pos] }

func (r *reader) skipSpace() {
	for !r.eof() {
		switch r.peek() {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

func (r *reader) snippet() string {
	rest := r.input[r.pos:]
	if len(rest) > 40 {
		rest = rest[:40] + "..."
	}
	return rest
}

// matchWord consumes w only when it is followed by a non-symbol character,
// so that e.g. truey lexes as a symbol rather than true + y.
func (r *reader) matchWord(w string) bool {
	if !strings.HasPrefix(r.input[r.pos:], w) {
		return false
	}
	if end := r.pos + len(w); end < len(r.input) && isSymbolChar(r.input[end]) {
		return false
	}
	r.pos += len(w)
	return true
}

func isSymbolChar(c byte) bool {
	if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
		return true
	}
	return strings.IndexByte("+-*/<>=!&|_?.", c) >= 0
}

func isNameChar(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c == '_' || c == '-'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (r *reader) parseExpr() (ast.Expr, error) {
	r.skipSpace()
	if r.eof() {
		return nil, &Error{Kind: UnexpectedEOF}
	}
	if r.peek() == '(' {
		return r.parseList()
	}
	return r.parseAtom()
}

func (r *reader) parseAtom() (ast.Expr, error) {
	switch {
	case r.peek() == '"':
		return r.parseString()
	case r.matchWord("true"):
		return &ast.BooleanLiteral{Value: true}, nil
	case r.matchWord("false"):
		return &ast.BooleanLiteral{Value: false}, nil
	case isDigit(r.peek()),
		r.peek() == '-' && r.pos+1 < len(r.input) && isDigit(r.input[r.pos+1]):
		return r.parseNumber()
	default:
		return r.parseSymbol()
	}
}

// parseNumber reads an optionally negative digit run, a float when a
// decimal point with following digits is present. Integer literals are
// width-promoted: 32-bit parse first, 64-bit fallback, InvalidNumber beyond
// that.
func (r *reader) parseNumber() (ast.Expr, error) {
	start := r.pos
	if r.peek() == '-' {
		r.pos++
	}
	for !r.eof() && isDigit(r.peek()) {
		r.pos++
	}
	if !r.eof() && r.peek() == '.' && r.pos+1 < len(r.input) && isDigit(r.input[r.pos+1]) {
		r.pos++
		for !r.eof() && isDigit(r.peek()) {
			r.pos++
		}
		text := r.input[start:r.pos]
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &Error{Kind: InvalidNumber, Detail: text + " is not a valid float"}
		}
		return &ast.FloatLiteral{Value: v}, nil
	}
	text := r.input[start:r.pos]
	if v, err := strconv.ParseInt(text, 10, 32); err == nil {
		return &ast.Integer32Literal{Value: int32(v)}, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, &Error{Kind: InvalidNumber, Detail: text + " is out of i64 range"}
	}
	return &ast.Integer64Literal{Value: v}, nil
}

func (r *reader) parseString() (ast.Expr, error) {
	r.pos++ // opening quote
	var b strings.Builder
	for {
		if r.eof() {
			return nil, &Error{Kind: InvalidString, Detail: "unterminated string"}
		}
		c := r.peek()
		r.pos++
		switch c {
		case '"':
			return &ast.StringLiteral{Value: b.String()}, nil
		case '\\':
			if r.eof() {
				return nil, &Error{Kind: InvalidString, Detail: "unterminated string"}
			}
			esc := r.peek()
			r.pos++
			switch esc {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				return nil, &Error{Kind: InvalidString, Detail: `unknown escape \` + string(esc)}
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (r *reader) parseSymbol() (ast.Expr, error) {
	start := r.pos
	for !r.eof() && isSymbolChar(r.peek()) {
		r.pos++
	}
	if r.pos == start {
		return nil, &Error{Kind: UnexpectedInput, Detail: r.snippet()}
	}
	return &ast.Symbol{Name: r.input[start:r.pos]}, nil
}

// parseName reads a binding or parameter name, a narrower character class
// than symbols: operator punctuation is not bindable.
func (r *reader) parseName() (string, error) {
	r.skipSpace()
	start := r.pos
	for !r.eof() && isNameChar(r.peek()) {
		r.pos++
	}
	if r.pos == start {
		if r.eof() {
			return "", &Error{Kind: UnexpectedEOF}
		}
		return "", &Error{Kind: UnexpectedInput, Detail: r.snippet()}
	}
	return r.input[start:r.pos], nil
}

// parseList consumes a parenthesized form and dispatches on the leading
// symbol: if/let/defn/fn/lambda become structured nodes, anything else a
// call with the first element as callee. Only () stays a generic list.
func (r *reader) parseList() (ast.Expr, error) {
	r.pos++ // opening paren
	r.skipSpace()
	if r.eof() {
		return nil, &Error{Kind: UnmatchedParen}
	}
	if r.peek() == ')' {
		r.pos++
		return &ast.ListExpression{}, nil
	}
	first, err := r.parseExpr()
	if err != nil {
		return nil, err
	}
	if sym, ok := first.(*ast.Symbol); ok {
		switch sym.Name {
		case "if":
			return r.parseIf()
		case "let":
			return r.parseLet()
		case "defn":
			return r.parseDefn()
		case "fn", "lambda":
			return r.parseLambda()
		}
	}
	var args []ast.Expr
	for {
		r.skipSpace()
		if r.eof() {
			return nil, &Error{Kind: UnmatchedParen}
		}
		if r.peek() == ')' {
			r.pos++
			return &ast.CallExpression{Callee: first, Args: args}, nil
		}
		arg, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

func (r *reader) parseIf() (ast.Expr, error) {
	parts := make([]ast.Expr, 0, 3)
	for i := 0; i < 3; i++ {
		r.skipSpace()
		if !r.eof() && r.peek() == ')' {
			return nil, &Error{Kind: UnexpectedInput, Detail: "if requires a condition, a then branch and an else branch"}
		}
		part, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if err := r.expectClose("if takes exactly three arguments"); err != nil {
		return nil, err
	}
	return &ast.IfExpression{Condition: parts[0], Then: parts[1], Else: parts[2]}, nil
}

func (r *reader) parseLet() (ast.Expr, error) {
	name, err := r.parseName()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	var ann ast.Type
	if !r.eof() && r.peek() == ':' {
		r.pos++
		// (let x: i32 v); a failed type read here means (let x: v) inference
		ann = r.tryType()
	} else {
		ann = r.tryType()
	}
	value, err := r.parseExpr()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if r.eof() {
		return nil, &Error{Kind: UnmatchedParen}
	}
	var body ast.Expr
	if r.peek() != ')' {
		body, err = r.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := r.expectClose("let takes a name, an optional type, a value and an optional body"); err != nil {
		return nil, err
	}
	return &ast.LetExpression{Name: name, TypeAnn: ann, Value: value, Body: body}, nil
}

func (r *reader) parseDefn() (ast.Expr, error) {
	name, err := r.parseName()
	if err != nil {
		return nil, err
	}
	params, err := r.parseParams()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !strings.HasPrefix(r.input[r.pos:], "->") {
		return nil, &Error{Kind: UnexpectedInput, Detail: "defn requires a -> return type"}
	}
	r.pos += 2
	ret, err := r.parseType()
	if err != nil {
		return nil, err
	}
	body, err := r.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := r.expectClose("defn takes a name, parameters, a return type and a body"); err != nil {
		return nil, err
	}
	return &ast.DefnExpression{Name: name, Params: params, ReturnType: ret, Body: body}, nil
}

func (r *reader) parseLambda() (ast.Expr, error) {
	params, err := r.parseParams()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	var ret ast.Type
	if strings.HasPrefix(r.input[r.pos:], "->") {
		r.pos += 2
		ret, err = r.parseType()
		if err != nil {
			return nil, err
		}
	}
	body, err := r.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := r.expectClose("fn takes parameters, an optional return type and a body"); err != nil {
		return nil, err
	}
	return &ast.LambdaExpression{Params: params, ReturnType: ret, Body: body}, nil
}

func (r *reader) parseParams() ([]ast.Param, error) {
	r.skipSpace()
	if r.eof() {
		return nil, &Error{Kind: UnexpectedEOF}
	}
	if r.peek() != '[' {
		return nil, &Error{Kind: UnexpectedInput, Detail: "expected a [name: type ...] parameter list"}
	}
	r.pos++
	var params []ast.Param
	for {
		r.skipSpace()
		if r.eof() {
			return nil, &Error{Kind: UnexpectedEOF}
		}
		if r.peek() == ']' {
			r.pos++
			return params, nil
		}
		name, err := r.parseName()
		if err != nil {
			return nil, err
		}
		r.skipSpace()
		if r.eof() || r.peek() != ':' {
			return nil, &Error{Kind: UnexpectedInput, Detail: "expected : after parameter name " + name}
		}
		r.pos++
		ty, err := r.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name, Type: ty})
	}
}

// tryType backtracks on failure; used where an annotation is optional and
// an ordinary value expression is the fallback.
func (r *reader) tryType() ast.Type {
	save := r.pos
	t, err := r.parseType()
	if err != nil {
		r.pos = save
		return nil
	}
	return t
}

func (r *reader) parseType() (ast.Type, error) {
	r.skipSpace()
	if r.eof() {
		return nil, &Error{Kind: UnexpectedEOF}
	}
	if strings.HasPrefix(r.input[r.pos:], "fn") {
		save := r.pos
		r.pos += 2
		r.skipSpace()
		if !r.eof() && r.peek() == '(' {
			return r.parseFunctionType()
		}
		r.pos = save
	}
	for _, p := range []ast.Primitive{ast.I32, ast.I64, ast.F64, ast.Bool, ast.String, ast.Inferred} {
		if r.matchWord(string(p)) {
			return p, nil
		}
	}
	return nil, &Error{Kind: InvalidType, Detail: r.snippet()}
}

func (r *reader) parseFunctionType() (ast.Type, error) {
	r.pos++ // opening paren
	var params []ast.Type
	r.skipSpace()
	if !r.eof() && r.peek() == ')' {
		r.pos++
	} else {
		for {
			t, err := r.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, t)
			r.skipSpace()
			if !r.eof() && r.peek() == ',' {
				r.pos++
				continue
			}
			break
		}
		if r.eof() || r.peek() != ')' {
			return nil, &Error{Kind: InvalidType, Detail: "missing ) in function type"}
		}
		r.pos++
	}
	r.skipSpace()
	if !strings.HasPrefix(r.input[r.pos:], "->") {
		return nil, &Error{Kind: InvalidType, Detail: "function type requires a -> return type"}
	}
	r.pos += 2
	ret, err := r.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionType{Params: params, Return: ret}, nil
}

func (r *reader) expectClose(detail string) error {
	r.skipSpace()
	if r.eof() {
		return &Error{Kind: UnmatchedParen}
	}
	if r.peek() != ')' {
		return &Error{Kind: UnexpectedInput, Detail: detail}
	}
	r.pos++
	return nil
}
