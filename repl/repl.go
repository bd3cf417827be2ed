package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lisplet/ast"
	"lisplet/interpreter"
	"lisplet/object"
	"lisplet/parser"
	"lisplet/semantics"
)

const banner = "Lisplet REPL\nType 'exit' or 'quit' to leave"

// Session holds the persistent root environments of one interactive
// session. Top-level sequential bindings and definitions accumulate here
// across inputs; everything else is scoped to a single evaluation.
type Session struct {
	typeEnv *semantics.TypeEnv
	env     *object.Environment
}

func NewSession(out io.Writer) *Session {
	return &Session{
		typeEnv: semantics.NewGlobalTypeEnv(),
		env:     interpreter.NewGlobalEnvironment(out),
	}
}

// Eval runs one source expression through parse, check, eval, in that
// order. Checking is mandatory: nothing that fails it is ever evaluated.
func (s *Session) Eval(input string) (object.Value, ast.Type, error) {
	expr, err := parser.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	ty, err := semantics.Check(expr, s.typeEnv)
	if err != nil {
		return nil, nil, err
	}
	val, err := interpreter.Eval(expr, s.env)
	if err != nil {
		return nil, nil, err
	}
	return val, ty, nil
}

// EvalScript runs every top-level expression of a source file against the
// session, stopping at the first failure. It returns the last expression's
// result; nil for an empty script.
func (s *Session) EvalScript(src string) (object.Value, ast.Type, error) {
	exprs, err := parser.ParseAll(src)
	if err != nil {
		return nil, nil, err
	}
	var (
		val object.Value
		ty  ast.Type
	)
	for _, expr := range exprs {
		ty, err = semantics.Check(expr, s.typeEnv)
		if err != nil {
			return nil, nil, err
		}
		val, err = interpreter.Eval(expr, s.env)
		if err != nil {
			return nil, nil, err
		}
	}
	return val, ty, nil
}

// Start runs the interactive read loop until exit/quit or EOF.
func Start(cfg Config) error {
	if !cfg.NoBanner {
		fmt.Println(banner)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg.HistoryFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := NewSession(os.Stdout)
	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		ln.AppendHistory(line)

		val, ty, err := session.Eval(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			continue
		}
		fmt.Printf("%s: %s\n", val.Inspect(), ty)
	}
}

func historyPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return file
	}
	return filepath.Join(home, file)
}
