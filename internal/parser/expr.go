package parser

import (
	"errors"
	"strconv"

	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// parseMath parses an arithmetic expression. With constOnly set, anything
// that can only be known at runtime is rejected.
func (p *Parser) parseMath(constOnly bool) (ast.Expression, error) {
	return p.parseBinary(constOnly, 1)
}

func (p *Parser) parseBinary(constOnly bool, minPrec int) (ast.Expression, error) {
	lhs, err := p.parseOperand(constOnly)
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Kind != TokOp {
			return lhs, nil
		}
		op, _ := nutypes.LookupOperator(tok.Text)
		if op.Precedence() < minPrec {
			return lhs, nil
		}
		p.advance()
		if p.atStatementEnd() {
			return nil, nutypes.NewParseError(nutypes.ErrExpected, tok.Span, "expected a value after %s", op)
		}

		rhs, err := p.parseBinary(constOnly, op.Precedence()+1)
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{
			Op:   op,
			LHS:  lhs,
			RHS:  rhs,
			Span: nutypes.Span{Start: lhs.NodeSpan().Start, End: rhs.NodeSpan().End},
		}
	}
}

func (p *Parser) parseOperand(constOnly bool) (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokInt:
		p.advance()
		i, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, nutypes.NewParseError(nutypes.ErrExpected, tok.Span, "invalid integer %s", tok.Text)
		}
		return &ast.Literal{Value: nutypes.NewInt(i), Span: tok.Span}, nil

	case TokFloat:
		p.advance()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, nutypes.NewParseError(nutypes.ErrExpected, tok.Span, "invalid number %s", tok.Text)
		}
		return &ast.Literal{Value: nutypes.NewFloat(f), Span: tok.Span}, nil

	case TokString:
		p.advance()
		return &ast.Literal{Value: nutypes.NewString(tok.Text), Span: tok.Span}, nil

	case TokVar:
		p.advance()
		b := p.resolve(tok.Text)
		if b.konst != nil {
			return &ast.Literal{Value: b.konst.Value, Span: tok.Span}, nil
		}
		if constOnly {
			return nil, nutypes.NewParseError(nutypes.ErrNonConstantExpression, tok.Span,
				"$%s is not a constant", tok.Text)
		}
		return &ast.VarRef{Name: tok.Text, Span: tok.Span}, nil

	case TokLBracket:
		return p.parseList(constOnly)

	case TokLParen:
		open := p.advance()
		if constOnly {
			inner, err := p.parseMath(true)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRParen); err != nil {
				return nil, err
			}
			return inner, nil
		}
		block, err := p.parseBlock(TokRParen)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return &ast.Subexpression{Block: block, Span: nutypes.Span{Start: open.Span.Start, End: p.lastEnd}}, nil

	case TokWord:
		p.advance()
		if tok.Text == "true" || tok.Text == "false" {
			return &ast.Literal{Value: nutypes.NewBool(tok.Text == "true"), Span: tok.Span}, nil
		}
		if constOnly {
			if b := p.resolve(tok.Text); b.konst != nil {
				return &ast.Literal{Value: b.konst.Value, Span: tok.Span}, nil
			}
			if p.peek().Kind == TokLParen {
				return nil, nutypes.NewParseError(nutypes.ErrNonConstantExpression, tok.Span,
					"call to %s() is not a constant", tok.Text)
			}
			return nil, nutypes.NewParseError(nutypes.ErrNonConstantExpression, tok.Span,
				"%s is not a constant", tok.Text)
		}
		return &ast.Literal{Value: nutypes.NewString(tok.Text), Span: tok.Span}, nil
	}

	if tok.Kind == TokEOF {
		return nil, nutypes.NewParseError(nutypes.ErrUnexpectedEOF, tok.Span, "expected a value")
	}
	return nil, nutypes.NewParseError(nutypes.ErrExpected, tok.Span, "expected a value, found %s", tok)
}

func (p *Parser) parseList(constOnly bool) (ast.Expression, error) {
	open := p.advance()
	list := &ast.ListExpr{}
	for {
		for p.peek().Kind == TokNewline {
			p.advance()
		}
		if p.peek().Kind == TokRBracket {
			break
		}
		if p.peek().Kind == TokEOF {
			return nil, nutypes.NewParseError(nutypes.ErrUnclosedDelimiter, open.Span, "unclosed '['")
		}
		item, err := p.parseOperand(constOnly)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	p.advance()
	list.Span = nutypes.Span{Start: open.Span.Start, End: p.lastEnd}
	return list, nil
}

// fold evaluates an expression accepted by parseMath(true).
func fold(expr ast.Expression) (nutypes.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.BinaryOp:
		lhs, err := fold(e.LHS)
		if err != nil {
			return nutypes.Value{}, err
		}
		rhs, err := fold(e.RHS)
		if err != nil {
			return nutypes.Value{}, err
		}
		v, err := lhs.Operate(e.Op, rhs)
		if err != nil {
			msg := err.Error()
			var se *nutypes.ShellError
			if errors.As(err, &se) {
				msg = se.Msg
			}
			return nutypes.Value{}, nutypes.NewParseError(nutypes.ErrConstantEvaluation, e.Span, "%s", msg)
		}
		return v, nil
	case *ast.ListExpr:
		items := make([]nutypes.Value, 0, len(e.Items))
		for _, item := range e.Items {
			v, err := fold(item)
			if err != nil {
				return nutypes.Value{}, err
			}
			items = append(items, v)
		}
		return nutypes.NewList(items...), nil
	default:
		return nutypes.Value{}, nutypes.NewParseError(nutypes.ErrNonConstantExpression, expr.NodeSpan(),
			"expression is not a constant")
	}
}
