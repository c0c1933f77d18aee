package parser

import (
	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// parseShape parses one argument for param.
func (p *Parser) parseShape(param nutypes.PositionalArg, call *ast.Call) (ast.Expression, error) {
	shape := param.Shape
	tok := p.peek()

	switch shape.Kind() {
	case nutypes.KindKeyword:
		return p.parseKeywordShape(param, call)

	case nutypes.KindString, nutypes.KindFilepath:
		switch tok.Kind {
		case TokWord, TokString:
			p.advance()
			return &ast.Literal{Value: nutypes.NewString(tok.Text), Span: tok.Span}, nil
		case TokVar, TokLParen:
			return p.parseOperand(false)
		}

	case nutypes.KindInt:
		switch tok.Kind {
		case TokInt, TokVar, TokLParen:
			return p.parseOperand(false)
		}

	case nutypes.KindAny:
		return p.parseOperand(false)

	case nutypes.KindExpression:
		return p.parseExpressionShape()

	case nutypes.KindMathExpression:
		return p.parseMath(true)

	case nutypes.KindVarWithOptType:
		return p.parseVarDecl()

	case nutypes.KindBlock:
		if tok.Kind == TokLBrace {
			return p.parseBlockArg(call)
		}
	}

	return nil, nutypes.NewParseError(nutypes.ErrExpected, tok.Span,
		"expected %s for <%s>, found %s", shape, param.Name, tok)
}

// parseKeywordShape requires the literal token before the nested shape. On a
// mismatch nothing is consumed.
func (p *Parser) parseKeywordShape(param nutypes.PositionalArg, call *ast.Call) (ast.Expression, error) {
	lit := param.Shape.Literal()
	tok := p.peek()
	if tok.Kind == TokString || tok.Kind == TokEOF || tok.Text != string(lit) {
		return nil, nutypes.NewParseError(nutypes.ErrExpected, tok.Span,
			"expected %q before <%s>, found %s", lit, param.Name, tok)
	}
	p.advance()

	inner, _ := param.Shape.Inner()
	if p.atStatementEnd() {
		return nil, nutypes.NewParseError(nutypes.ErrMissingPositional, p.peek().Span,
			"expected %s after %q", inner, lit)
	}
	expr, err := p.parseShape(nutypes.PositionalArg{Name: param.Name, Shape: inner}, call)
	if err != nil {
		return nil, err
	}
	return &ast.Keyword{
		Literal: lit,
		Expr:    expr,
		Span:    nutypes.Span{Start: tok.Span.Start, End: expr.NodeSpan().End},
	}, nil
}

// parseExpressionShape parses a full pipeline used as a value. A pipeline of
// more than one element is wrapped as a subexpression.
func (p *Parser) parseExpressionShape() (ast.Expression, error) {
	start := p.peek().Span.Start
	pipeline, err := p.parsePipeline(false)
	if err != nil {
		return nil, err
	}
	if len(pipeline.Elements) == 1 {
		return pipeline.Elements[0], nil
	}
	span := nutypes.Span{Start: start, End: p.lastEnd}
	return &ast.Subexpression{
		Block: &ast.Block{Pipelines: []*ast.Pipeline{pipeline}, Span: span},
		Span:  span,
	}, nil
}

// parseVarDecl parses "name", "name: type" or "name:" (no annotation).
func (p *Parser) parseVarDecl() (ast.Expression, error) {
	tok := p.peek()
	if tok.Kind != TokWord {
		return nil, nutypes.NewParseError(nutypes.ErrExpected, tok.Span, "expected a variable name, found %s", tok)
	}
	p.advance()

	decl := &ast.VarDecl{Name: tok.Text, Declared: nutypes.TypeAny, Span: tok.Span}
	if p.peek().Kind != TokColon {
		return decl, nil
	}
	decl.Span.End = p.advance().Span.End

	if p.peek().Kind == TokWord {
		typeTok := p.advance()
		typ, err := nutypes.ParseType(typeTok.Text)
		if err != nil {
			return nil, nutypes.NewParseError(nutypes.ErrTypeAnnotation, typeTok.Span, "unknown type %q", typeTok.Text)
		}
		decl.Declared = typ
		decl.Annotated = true
		decl.Span.End = typeTok.Span.End
	}
	return decl, nil
}

// parseBlockArg parses a braced block in a fresh module frame, named after
// the call's first argument when that is a literal.
func (p *Parser) parseBlockArg(call *ast.Call) (ast.Expression, error) {
	open := p.advance()

	name := ""
	if len(call.Positional) > 0 {
		if lit, ok := call.Positional[0].(*ast.Literal); ok {
			name, _ = lit.Value.AsString()
		}
	}

	mf := newModuleFrame(name)
	p.frames = append(p.frames, mf)
	block, err := p.parseBlock(TokRBrace)
	p.frames = p.frames[:len(p.frames)-1]
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}

	for _, pipeline := range block.Pipelines {
		el := pipeline.Elements[0]
		if c, ok := el.(*ast.Call); !ok || !c.IsKeyword() || len(pipeline.Elements) > 1 {
			return nil, nutypes.NewParseError(nutypes.ErrExpected, el.NodeSpan(),
				"module %s may only contain definitions", name)
		}
	}

	p.lastModule = mf
	return &ast.BlockExpr{Block: block, Span: nutypes.Span{Start: open.Span.Start, End: p.lastEnd}}, nil
}
