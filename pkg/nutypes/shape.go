package nutypes

import (
	"bytes"
	"fmt"
)

// ShapeKind enumerates the closed set of syntax shapes.
type ShapeKind int

const (
	// KindAny accepts any single argument expression.
	KindAny ShapeKind = iota
	// KindString is a bare word or quoted string.
	KindString
	// KindInt is an integer literal.
	KindInt
	// KindFilepath is a bare word or quoted string naming a path.
	KindFilepath
	// KindExpression is an arbitrary expression, including a command call.
	KindExpression
	// KindMathExpression is an arithmetic or literal expression.
	KindMathExpression
	// KindVarWithOptType is a variable name with an optional ": type".
	KindVarWithOptType
	// KindBlock is a braced block of statements.
	KindBlock
	// KindKeyword is a literal token followed by a nested shape.
	KindKeyword
)

// SyntaxShape describes which tokens a parameter expects. Shapes are values;
// Keyword shapes own a private copy of their literal and nested shape.
type SyntaxShape struct {
	kind    ShapeKind
	literal []byte
	inner   *SyntaxShape
}

var (
	ShapeAny            = SyntaxShape{kind: KindAny}
	ShapeString         = SyntaxShape{kind: KindString}
	ShapeInt            = SyntaxShape{kind: KindInt}
	ShapeFilepath       = SyntaxShape{kind: KindFilepath}
	ShapeExpression     = SyntaxShape{kind: KindExpression}
	ShapeMathExpression = SyntaxShape{kind: KindMathExpression}
	ShapeVarWithOptType = SyntaxShape{kind: KindVarWithOptType}
	ShapeBlock          = SyntaxShape{kind: KindBlock}
)

// Keyword builds a shape that requires the literal token lit, byte for byte,
// followed by something matching inner.
func Keyword(lit []byte, inner SyntaxShape) SyntaxShape {
	nested := inner
	return SyntaxShape{
		kind:    KindKeyword,
		literal: append([]byte(nil), lit...),
		inner:   &nested,
	}
}

// Kind returns the variant of the shape.
func (s SyntaxShape) Kind() ShapeKind {
	return s.kind
}

// Literal returns a copy of a Keyword shape's literal bytes, or nil.
func (s SyntaxShape) Literal() []byte {
	if s.kind != KindKeyword {
		return nil
	}
	return append([]byte(nil), s.literal...)
}

// Inner returns the shape nested in a Keyword shape.
func (s SyntaxShape) Inner() (SyntaxShape, bool) {
	if s.kind != KindKeyword || s.inner == nil {
		return SyntaxShape{}, false
	}
	return *s.inner, true
}

// Equal compares two shapes structurally.
func (s SyntaxShape) Equal(other SyntaxShape) bool {
	if s.kind != other.kind {
		return false
	}
	if s.kind != KindKeyword {
		return true
	}
	if !bytes.Equal(s.literal, other.literal) {
		return false
	}
	a, _ := s.Inner()
	b, _ := other.Inner()
	return a.Equal(b)
}

// Type is the value type produced when the shape matches.
func (s SyntaxShape) Type() Type {
	switch s.kind {
	case KindString, KindFilepath, KindVarWithOptType:
		return TypeString
	case KindInt:
		return TypeInt
	case KindBlock:
		return TypeNothing
	case KindKeyword:
		inner, _ := s.Inner()
		return inner.Type()
	default:
		return TypeAny
	}
}

func (s SyntaxShape) String() string {
	switch s.kind {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFilepath:
		return "path"
	case KindExpression:
		return "expression"
	case KindMathExpression:
		return "math expression"
	case KindVarWithOptType:
		return "variable"
	case KindBlock:
		return "block"
	case KindKeyword:
		inner, _ := s.Inner()
		return fmt.Sprintf("%q %s", s.literal, inner)
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(s.kind))
	}
}

// MarshalText renders the shape the same way help output does.
func (s SyntaxShape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
