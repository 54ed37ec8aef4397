package calc

import (
	"context"
	"fmt"
	"go/scanner"
	"go/token"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

const defaultEvalTimeout = 2 * time.Second

// Constants and functions an expression may reference. Each function takes and
// returns float64 and is bound to its math package counterpart in the prelude.
//
//nolint:gochecknoglobals // Fixed vocabulary of the expression language.
var (
	exprConstants = map[string]string{
		"pi":  "math.Pi",
		"e":   "math.E",
		"phi": "math.Phi",
	}
	exprUnary = map[string]string{
		"sqrt":  "math.Sqrt",
		"cbrt":  "math.Cbrt",
		"exp":   "math.Exp",
		"log":   "math.Log",
		"log2":  "math.Log2",
		"log10": "math.Log10",
		"sin":   "math.Sin",
		"cos":   "math.Cos",
		"tan":   "math.Tan",
		"asin":  "math.Asin",
		"acos":  "math.Acos",
		"atan":  "math.Atan",
		"sinh":  "math.Sinh",
		"cosh":  "math.Cosh",
		"tanh":  "math.Tanh",
		"abs":   "math.Abs",
		"floor": "math.Floor",
		"ceil":  "math.Ceil",
		"round": "math.Round",
	}
	exprBinary = map[string]string{
		"pow":   "math.Pow",
		"atan2": "math.Atan2",
		"hypot": "math.Hypot",
	}
)

// literalFunc wraps numeric literals. It is not in the vocabulary, so input
// cannot name it.
const literalFunc = "lit"

// allowedOperators are the only non-identifier, non-literal tokens accepted.
//
//nolint:gochecknoglobals // Fixed vocabulary of the expression language.
var allowedOperators = map[token.Token]bool{
	token.ADD:    true,
	token.SUB:    true,
	token.MUL:    true,
	token.QUO:    true,
	token.LPAREN: true,
	token.RPAREN: true,
	token.COMMA:  true,
}

// Evaluator evaluates arithmetic expressions with the yaegi Go interpreter.
// Input is first reduced to a whitelist of tokens so nothing but arithmetic
// over the math package ever reaches the interpreter.
// An Evaluator is safe for concurrent use.
type Evaluator struct {
	mu      sync.Mutex
	interp  *interp.Interpreter
	timeout time.Duration
}

// NewEvaluator builds an interpreter with only the math package available and
// loads the expression prelude into it.
func NewEvaluator() (*Evaluator, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(interp.Exports{"math/math": stdlib.Symbols["math/math"]}); err != nil {
		return nil, fmt.Errorf("failed to load math symbols: %w", err)
	}
	if _, err := i.Eval(prelude()); err != nil {
		return nil, fmt.Errorf("failed to load expression prelude: %w", err)
	}
	return &Evaluator{interp: i, timeout: defaultEvalTimeout}, nil
}

// Names lists every constant and function an expression may use, sorted.
func Names() []string {
	names := make([]string, 0, len(exprConstants)+len(exprUnary)+len(exprBinary))
	for _, m := range []map[string]string{exprConstants, exprUnary, exprBinary} {
		for name := range m {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// prelude renders the declarations that bind the expression vocabulary.
func prelude() string {
	var b strings.Builder
	b.WriteString("import \"math\"\n\n")
	fmt.Fprintf(&b, "func %s(x float64) float64 { return x }\n", literalFunc)
	for _, name := range sortedKeys(exprConstants) {
		fmt.Fprintf(&b, "var %s = %s\n", name, exprConstants[name])
	}
	for _, name := range sortedKeys(exprUnary) {
		fmt.Fprintf(&b, "func %s(x float64) float64 { return %s(x) }\n", name, exprUnary[name])
	}
	for _, name := range sortedKeys(exprBinary) {
		fmt.Fprintf(&b, "func %s(x, y float64) float64 { return %s(x, y) }\n", name, exprBinary[name])
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Evaluate computes the value of expr.
// Any failure, from a lexical error to a runtime panic, is reported wrapped in ErrInvalidExpression.
func (ev *Evaluator) Evaluate(ctx context.Context, expr string) (result float64, err error) {
	src, err := sanitize(expr)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, ev.timeout)
	defer cancel()

	ev.mu.Lock()
	defer ev.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logrus.Debugf("expression %q panicked: %v", expr, r)
			result, err = 0, fmt.Errorf("%w: %v", ErrInvalidExpression, r)
		}
	}()

	v, err := ev.interp.EvalWithContext(ctx, "float64("+src+")")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	switch {
	case !v.IsValid():
		return 0, fmt.Errorf("%w: no value", ErrInvalidExpression)
	case v.Kind() == reflect.Float64 || v.Kind() == reflect.Float32:
		return v.Float(), nil
	default:
		return 0, fmt.Errorf("%w: unexpected %s result", ErrInvalidExpression, v.Kind())
	}
}

// sanitize tokenizes expr and rebuilds it from whitelisted tokens only.
// Integer literals are widened to floats so that division is never truncating,
// and every literal is passed through literalFunc so that arithmetic happens at
// run time: 1/0 is +Inf rather than a constant division error.
func sanitize(expr string) (string, error) {
	src := []byte(strings.TrimSpace(expr))
	if len(src) == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidExpression)
	}

	fset := token.NewFileSet()
	file := fset.AddFile("expr", fset.Base(), len(src))
	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)

	parts := []string{}
	depth := 0
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		switch {
		case tok == token.SEMICOLON && lit == "\n":
			// automatically inserted at end of input
			continue
		case tok == token.INT:
			if !isDecimal(lit) {
				return "", fmt.Errorf("%w: unsupported literal %q", ErrInvalidExpression, lit)
			}
			parts = append(parts, literalFunc+"("+lit+".0)")
		case tok == token.FLOAT:
			if strings.ContainsAny(lit, "xXpP_") {
				return "", fmt.Errorf("%w: unsupported literal %q", ErrInvalidExpression, lit)
			}
			parts = append(parts, literalFunc+"("+lit+")")
		case tok == token.IDENT:
			if !knownName(lit) {
				return "", fmt.Errorf("%w: unknown name %q", ErrInvalidExpression, lit)
			}
			parts = append(parts, lit)
		case allowedOperators[tok]:
			if tok == token.LPAREN {
				depth++
			}
			if tok == token.RPAREN {
				depth--
				if depth < 0 {
					return "", fmt.Errorf("%w: unbalanced parentheses", ErrInvalidExpression)
				}
			}
			parts = append(parts, tok.String())
		case tok == token.DEC:
			parts = append(parts, "-", "-")
		case tok == token.INC:
			parts = append(parts, "+", "+")
		default:
			return "", fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, tok.String())
		}
	}
	if errs.Len() > 0 {
		return "", fmt.Errorf("%w: %v", ErrInvalidExpression, errs.Err())
	}
	if depth != 0 {
		return "", fmt.Errorf("%w: unbalanced parentheses", ErrInvalidExpression)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidExpression)
	}
	return strings.Join(parts, " "), nil
}

func isDecimal(lit string) bool {
	for _, r := range lit {
		if r < '0' || r > '9' {
			return false
		}
	}
	return lit != ""
}

func knownName(name string) bool {
	_, c := exprConstants[name]
	_, u := exprUnary[name]
	_, b := exprBinary[name]
	return c || u || b
}
