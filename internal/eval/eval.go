// Package eval walks the AST produced by the parser, threading pipeline data
// between commands and resolving runtime variables from the stack.
package eval

import (
	"errors"

	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/internal/logger"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// EvalBlock evaluates each pipeline in order and returns the output of the
// last one. input feeds the first pipeline only.
func EvalBlock(engine nutypes.EngineState, stack nutypes.Stack, block *ast.Block, input nutypes.PipelineData) (nutypes.PipelineData, error) {
	out := nutypes.EmptyPipeline()
	for i, pipeline := range block.Pipelines {
		in := nutypes.EmptyPipeline()
		if i == 0 {
			in = input
		}
		var err error
		out, err = EvalPipeline(engine, stack, pipeline, in)
		if err != nil {
			return nutypes.EmptyPipeline(), err
		}
	}
	return out, nil
}

// EvalPipeline runs the elements of a pipeline left to right, each receiving
// the previous element's output.
func EvalPipeline(engine nutypes.EngineState, stack nutypes.Stack, pipeline *ast.Pipeline, input nutypes.PipelineData) (nutypes.PipelineData, error) {
	data := input
	for _, el := range pipeline.Elements {
		var err error
		if call, ok := el.(*ast.Call); ok {
			data, err = EvalCall(engine, stack, call, data)
		} else {
			var v nutypes.Value
			v, err = EvalExpression(engine, stack, el)
			data = nutypes.PipelineValue(v)
		}
		if err != nil {
			return nutypes.EmptyPipeline(), err
		}
	}
	return data, nil
}

// EvalCall evaluates the arguments of call and runs its command. Parser
// keywords have already done their work, so they are run with no arguments.
func EvalCall(engine nutypes.EngineState, stack nutypes.Stack, call *ast.Call, input nutypes.PipelineData) (nutypes.PipelineData, error) {
	name := call.Decl.Name()
	evaluated := nutypes.NewCall(name, call.Span)

	if !call.IsKeyword() {
		for _, arg := range call.Positional {
			v, err := EvalExpression(engine, stack, arg)
			if err != nil {
				return nutypes.EmptyPipeline(), err
			}
			evaluated.Positional = append(evaluated.Positional, v)
		}
		for _, named := range call.Named {
			if named.Value == nil {
				evaluated.Named[named.Long] = nutypes.NewBool(true)
				continue
			}
			v, err := EvalExpression(engine, stack, named.Value)
			if err != nil {
				return nutypes.EmptyPipeline(), err
			}
			evaluated.Named[named.Long] = v
		}
	}

	logger.CommandRun(name, len(evaluated.Positional), input.Type().String())
	out, err := call.Decl.Run(engine, stack, evaluated, input)
	if err != nil {
		var se *nutypes.ShellError
		if errors.As(err, &se) {
			return nutypes.EmptyPipeline(), se.WithSpan(call.Span)
		}
		return nutypes.EmptyPipeline(), err
	}
	return out, nil
}

// EvalExpression reduces an expression to a value.
func EvalExpression(engine nutypes.EngineState, stack nutypes.Stack, expr ast.Expression) (nutypes.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.VarRef:
		v, ok := stack.GetVar(e.Name)
		if !ok {
			return nutypes.Value{}, nutypes.NewShellError(nutypes.ErrVariableNotBound, e.Span, "variable $%s not found", e.Name)
		}
		return v, nil

	case *ast.VarDecl:
		return nutypes.NewString(e.Name), nil

	case *ast.BinaryOp:
		lhs, err := EvalExpression(engine, stack, e.LHS)
		if err != nil {
			return nutypes.Value{}, err
		}
		rhs, err := EvalExpression(engine, stack, e.RHS)
		if err != nil {
			return nutypes.Value{}, err
		}
		v, err := lhs.Operate(e.Op, rhs)
		var se *nutypes.ShellError
		if errors.As(err, &se) {
			return nutypes.Value{}, se.WithSpan(e.Span)
		}
		return v, err

	case *ast.Keyword:
		return EvalExpression(engine, stack, e.Expr)

	case *ast.ListExpr:
		items := make([]nutypes.Value, 0, len(e.Items))
		for _, item := range e.Items {
			v, err := EvalExpression(engine, stack, item)
			if err != nil {
				return nutypes.Value{}, err
			}
			items = append(items, v)
		}
		return nutypes.NewList(items...), nil

	case *ast.Subexpression:
		out, err := EvalBlock(engine, stack, e.Block, nutypes.EmptyPipeline())
		if err != nil {
			return nutypes.Value{}, err
		}
		return out.IntoValue(), nil

	case *ast.Call:
		out, err := EvalCall(engine, stack, e, nutypes.EmptyPipeline())
		if err != nil {
			return nutypes.Value{}, err
		}
		return out.IntoValue(), nil

	case *ast.BlockExpr:
		return nutypes.NewNothing(), nil

	default:
		return nutypes.Value{}, nutypes.NewShellError(nutypes.ErrUnsupportedInput, expr.NodeSpan(), "cannot evaluate %T", expr)
	}
}
