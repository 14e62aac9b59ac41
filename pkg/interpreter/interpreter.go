package interpreter

import (
	"fmt"
	"io"
	"log/slog"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

// Options configures an Interpreter.
type Options struct {
	// Stdout receives print output. Defaults to io.Discard.
	Stdout io.Writer
	// PrintNewline appends "\n" after every printed value.
	PrintNewline bool
	// Logger receives debug traces. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Interpreter evaluates Rinha terms. It is single-threaded; one instance may
// run many programs sequentially.
type Interpreter struct {
	stdout       io.Writer
	printNewline bool
	logger       *slog.Logger
	calls        int
}

// New returns an interpreter configured by opts.
func New(opts Options) *Interpreter {
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		stdout:       out,
		printNewline: opts.PrintNewline,
		logger:       logger,
	}
}

// Calls reports how many closure invocations the interpreter has performed.
func (i *Interpreter) Calls() int {
	return i.calls
}

// EvaluateFile runs the file's root expression in a fresh root environment.
func (i *Interpreter) EvaluateFile(file *ast.File) (runtime.Value, error) {
	if file == nil || file.Expression == nil {
		return nil, fmt.Errorf("interpreter: file has no expression")
	}
	i.logger.Debug("Program start", slog.String("file", file.Name))
	val, err := i.Evaluate(file.Expression, runtime.NewEnvironment(nil))
	if err != nil {
		i.logger.Debug("Program failed", slog.String("file", file.Name), slog.Any("error", err))
		return nil, err
	}
	i.logger.Debug("Program finished",
		slog.String("file", file.Name),
		slog.Int("calls", i.calls),
		slog.String("result", runtime.FormatValue(val)))
	return val, nil
}

// Evaluate reduces term to a value in env. The first failure aborts
// evaluation and is returned as a *RuntimeError.
func (i *Interpreter) Evaluate(term ast.Term, env *runtime.Environment) (runtime.Value, error) {
	switch n := term.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.PrintExpression:
		return i.evaluatePrint(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.IfExpression:
		return i.evaluateIf(n, env)
	case *ast.LetExpression:
		return i.evaluateLet(n, env)
	case *ast.Variable:
		val, ok := env.Get(n.Text)
		if !ok {
			return nil, newUnknownIdentifier(n)
		}
		return val, nil
	case *ast.FunctionLiteral:
		return &runtime.ClosureValue{Function: n, Env: env.Snapshot()}, nil
	case *ast.FunctionCall:
		return i.evaluateCall(n, env)
	case *ast.TupleLiteral:
		return i.evaluateTuple(n, env)
	case *ast.FirstExpression:
		return i.evaluateProjection(n.Value, true, env)
	case *ast.SecondExpression:
		return i.evaluateProjection(n.Value, false, env)
	case nil:
		return nil, fmt.Errorf("interpreter: nil term")
	default:
		return nil, fmt.Errorf("interpreter: unsupported term %T", term)
	}
}
