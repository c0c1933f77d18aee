// Package ast defines the syntax tree produced by the parser and consumed by
// the evaluator.
package ast

import (
	"github.com/selfagency/nushell/pkg/nutypes"
)

// Block is a sequence of pipelines, evaluated in order.
type Block struct {
	Pipelines []*Pipeline
	Span      nutypes.Span
}

// Pipeline is a chain of expressions joined by "|".
type Pipeline struct {
	Elements []Expression
}

// Expression is any node that can appear as a pipeline element or argument.
type Expression interface {
	// NodeSpan returns the source range of the expression.
	NodeSpan() nutypes.Span
	// OutputType is the type the expression produces, as far as the parser
	// can tell.
	OutputType() nutypes.Type
}

// Literal is a constant value, including folded constants.
type Literal struct {
	Value nutypes.Value
	Span  nutypes.Span
}

func (l *Literal) NodeSpan() nutypes.Span   { return l.Span }
func (l *Literal) OutputType() nutypes.Type { return l.Value.Type() }

// VarRef reads a runtime variable from the stack.
type VarRef struct {
	Name string
	Span nutypes.Span
}

func (v *VarRef) NodeSpan() nutypes.Span   { return v.Span }
func (v *VarRef) OutputType() nutypes.Type { return nutypes.TypeAny }

// VarDecl is a variable name with an optional type annotation, as matched
// by the VarWithOptType shape.
type VarDecl struct {
	Name      string
	Declared  nutypes.Type
	Annotated bool
	Span      nutypes.Span
}

func (v *VarDecl) NodeSpan() nutypes.Span { return v.Span }

// OutputType evaluates to the variable name.
func (v *VarDecl) OutputType() nutypes.Type { return nutypes.TypeString }

// BinaryOp is an arithmetic operation.
type BinaryOp struct {
	Op   nutypes.Operator
	LHS  Expression
	RHS  Expression
	Span nutypes.Span
}

func (b *BinaryOp) NodeSpan() nutypes.Span { return b.Span }

func (b *BinaryOp) OutputType() nutypes.Type {
	l, r := b.LHS.OutputType(), b.RHS.OutputType()
	switch {
	case l == nutypes.TypeInt && r == nutypes.TypeInt && b.Op != nutypes.OpDiv:
		return nutypes.TypeInt
	case l == nutypes.TypeString && r == nutypes.TypeString:
		return nutypes.TypeString
	case l == nutypes.TypeAny || r == nutypes.TypeAny || b.Op == nutypes.OpDiv:
		return nutypes.TypeAny
	default:
		return nutypes.TypeFloat
	}
}

// Keyword is an argument that matched a Keyword shape: the literal token and
// the nested expression that followed it.
type Keyword struct {
	Literal []byte
	Expr    Expression
	Span    nutypes.Span
}

func (k *Keyword) NodeSpan() nutypes.Span   { return k.Span }
func (k *Keyword) OutputType() nutypes.Type { return k.Expr.OutputType() }

// Subexpression is a parenthesized block whose value is the value of its
// last pipeline.
type Subexpression struct {
	Block *Block
	Span  nutypes.Span
}

func (s *Subexpression) NodeSpan() nutypes.Span   { return s.Span }
func (s *Subexpression) OutputType() nutypes.Type { return nutypes.TypeAny }

// ListExpr is a "[a b c]" literal whose items are evaluated at runtime.
type ListExpr struct {
	Items []Expression
	Span  nutypes.Span
}

func (l *ListExpr) NodeSpan() nutypes.Span   { return l.Span }
func (l *ListExpr) OutputType() nutypes.Type { return nutypes.TypeList }

// BlockExpr is a braced block argument, such as a module body.
type BlockExpr struct {
	Block *Block
	Span  nutypes.Span
}

func (b *BlockExpr) NodeSpan() nutypes.Span   { return b.Span }
func (b *BlockExpr) OutputType() nutypes.Type { return nutypes.TypeNothing }

// NamedArg is a flag passed to a call. Value is nil for switches.
type NamedArg struct {
	Long  string
	Value Expression
	Span  nutypes.Span
}

// Call invokes a command. Decl is resolved by the parser, so the evaluator
// never looks commands up by name.
type Call struct {
	Decl       nutypes.Command
	Head       nutypes.Span
	Positional []Expression
	Named      []NamedArg
	Out        nutypes.Type
	Span       nutypes.Span
}

func (c *Call) NodeSpan() nutypes.Span   { return c.Span }
func (c *Call) OutputType() nutypes.Type { return c.Out }

// IsKeyword reports whether the call targets a parser keyword.
func (c *Call) IsKeyword() bool {
	return c.Decl != nil && c.Decl.IsParserKeyword()
}

// HasNamed reports whether the flag was passed.
func (c *Call) HasNamed(long string) bool {
	for _, n := range c.Named {
		if n.Long == long {
			return true
		}
	}
	return false
}

// Clone copies the argument lists so that alias expansion can append to the
// copy. Argument expressions are shared; they are never mutated after
// parsing.
func (c *Call) Clone() *Call {
	out := *c
	out.Positional = append([]Expression(nil), c.Positional...)
	out.Named = append([]NamedArg(nil), c.Named...)
	return &out
}
