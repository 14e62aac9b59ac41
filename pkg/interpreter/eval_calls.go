package interpreter

import (
	"context"
	"errors"
	"log/slog"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

const maxRecordedCallSites = 8

func (i *Interpreter) evaluateCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	calleeVal, err := i.Evaluate(call.Callee, env)
	if err != nil {
		return nil, err
	}
	closure, ok := calleeVal.(*runtime.ClosureValue)
	if !ok {
		return nil, newArgumentError("not a function", call.Span())
	}
	fn := closure.Function
	if len(call.Arguments) != len(fn.Parameters) {
		return nil, newInvalidNumberOfArguments(fn, call)
	}

	args := make([]runtime.Value, len(call.Arguments))
	for idx, arg := range call.Arguments {
		val, err := i.Evaluate(arg, env)
		if err != nil {
			return nil, err
		}
		args[idx] = val
	}

	i.calls++
	if i.logger.Enabled(context.Background(), slog.LevelDebug) {
		i.logger.Debug("Function call",
			slog.String("callee", call.Callee.Span().String()),
			slog.Int("argument-count", len(args)),
			slog.Int("frame-depth", closure.Env.Depth()))
	}

	frame := closure.Env.Snapshot()
	for idx, param := range fn.Parameters {
		frame.Set(param.Text, args[idx])
	}
	result, err := i.Evaluate(fn.Value, frame)
	if err != nil {
		return nil, recordCallSite(err, call)
	}
	return result, nil
}

// recordCallSite appends the call to the error's unwinding trail.
func recordCallSite(err error, call *ast.FunctionCall) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) && len(rerr.CallStack) < maxRecordedCallSites {
		rerr.CallStack = append(rerr.CallStack, call.Span())
	}
	return err
}
