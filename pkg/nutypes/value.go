package nutypes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the tagged result type produced by expressions and commands.
// The zero Value is Nothing.
type Value struct {
	typ  Type
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	cols []string
}

// NewNothing returns the absent value.
func NewNothing() Value { return Value{typ: TypeNothing} }

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{typ: TypeBool, b: b} }

// NewInt wraps an integer.
func NewInt(i int64) Value { return Value{typ: TypeInt, i: i} }

// NewFloat wraps a float.
func NewFloat(f float64) Value { return Value{typ: TypeFloat, f: f} }

// NewString wraps a string.
func NewString(s string) Value { return Value{typ: TypeString, s: s} }

// NewList builds a list value. The slice is copied.
func NewList(vals ...Value) Value {
	return Value{typ: TypeList, list: append([]Value{}, vals...)}
}

// NewRecord builds a record from parallel column and value slices.
func NewRecord(cols []string, vals []Value) Value {
	if len(cols) != len(vals) {
		panic(fmt.Sprintf("record has %d columns but %d values", len(cols), len(vals)))
	}
	return Value{
		typ:  TypeRecord,
		cols: append([]string{}, cols...),
		list: append([]Value{}, vals...),
	}
}

// Type reports the value's type. A non-empty list made only of records is a
// table.
func (v Value) Type() Type {
	if v.typ != TypeList || len(v.list) == 0 {
		return v.typ
	}
	for _, item := range v.list {
		if item.typ != TypeRecord {
			return TypeList
		}
	}
	return TypeTable
}

// IsNothing reports whether v is the absent value.
func (v Value) IsNothing() bool { return v.typ == TypeNothing }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, error) {
	if v.typ != TypeBool {
		return false, cantConvert(v, TypeBool)
	}
	return v.b, nil
}

// AsInt returns the integer held by v.
func (v Value) AsInt() (int64, error) {
	if v.typ != TypeInt {
		return 0, cantConvert(v, TypeInt)
	}
	return v.i, nil
}

// AsFloat returns v as a float, widening integers.
func (v Value) AsFloat() (float64, error) {
	switch v.typ {
	case TypeFloat:
		return v.f, nil
	case TypeInt:
		return float64(v.i), nil
	default:
		return 0, cantConvert(v, TypeFloat)
	}
}

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.typ != TypeString {
		return "", cantConvert(v, TypeString)
	}
	return v.s, nil
}

// AsList returns a copy of the items of a list or table.
func (v Value) AsList() ([]Value, error) {
	if v.typ != TypeList {
		return nil, cantConvert(v, TypeList)
	}
	return append([]Value{}, v.list...), nil
}

// Columns returns the column names of a record.
func (v Value) Columns() []string {
	if v.typ != TypeRecord {
		return nil
	}
	return append([]string{}, v.cols...)
}

// Get returns the named column of a record.
func (v Value) Get(col string) (Value, bool) {
	if v.typ != TypeRecord {
		return Value{}, false
	}
	for i, c := range v.cols {
		if c == col {
			return v.list[i], true
		}
	}
	return Value{}, false
}

// Equal compares two values structurally.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNothing:
		return true
	case TypeBool:
		return v.b == other.b
	case TypeInt:
		return v.i == other.i
	case TypeFloat:
		return v.f == other.f
	case TypeString:
		return v.s == other.s
	case TypeRecord:
		if len(v.cols) != len(other.cols) {
			return false
		}
		for i := range v.cols {
			if v.cols[i] != other.cols[i] {
				return false
			}
		}
		fallthrough
	case TypeList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.typ {
	case TypeNothing:
		return ""
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case TypeString:
		return v.s
	case TypeList:
		items := make([]string, len(v.list))
		for i, item := range v.list {
			items[i] = item.String()
		}
		return "[" + strings.Join(items, ", ") + "]"
	case TypeRecord:
		fields := make([]string, len(v.cols))
		for i, c := range v.cols {
			fields[i] = c + ": " + v.list[i].String()
		}
		return "{" + strings.Join(fields, ", ") + "}"
	default:
		return fmt.Sprintf("<%s>", v.typ)
	}
}

// Operate applies a binary arithmetic operator. Integer division that does
// not divide evenly produces a float.
func (v Value) Operate(op Operator, rhs Value) (Value, error) {
	if v.typ == TypeString && rhs.typ == TypeString && op == OpAdd {
		return NewString(v.s + rhs.s), nil
	}

	if v.typ == TypeInt && rhs.typ == TypeInt {
		a, b := v.i, rhs.i
		switch op {
		case OpAdd:
			r := a + b
			if (a >= 0) == (b >= 0) && (r >= 0) != (a >= 0) {
				return Value{}, overflow(a, op, b)
			}
			return NewInt(r), nil
		case OpSub:
			r := a - b
			if (a >= 0) != (b >= 0) && (r >= 0) != (a >= 0) {
				return Value{}, overflow(a, op, b)
			}
			return NewInt(r), nil
		case OpMul:
			if a == 0 || b == 0 {
				return NewInt(0), nil
			}
			r := a * b
			if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || r/b != a {
				return Value{}, overflow(a, op, b)
			}
			return NewInt(r), nil
		case OpDiv:
			if b == 0 {
				return Value{}, NewShellError(ErrDivisionByZero, Span{}, "division by zero")
			}
			if a == math.MinInt64 && b == -1 {
				return Value{}, overflow(a, op, b)
			}
			if a%b == 0 {
				return NewInt(a / b), nil
			}
			return NewFloat(float64(a) / float64(b)), nil
		}
	}

	a, errA := v.AsFloat()
	b, errB := rhs.AsFloat()
	if errA != nil || errB != nil {
		return Value{}, NewShellError(ErrTypeMismatch, Span{},
			"operator %s is not supported between %s and %s", op, v.Type(), rhs.Type())
	}
	switch op {
	case OpAdd:
		return NewFloat(a + b), nil
	case OpSub:
		return NewFloat(a - b), nil
	case OpMul:
		return NewFloat(a * b), nil
	case OpDiv:
		if b == 0 || math.IsNaN(b) {
			return Value{}, NewShellError(ErrDivisionByZero, Span{}, "division by zero")
		}
		return NewFloat(a / b), nil
	}
	return Value{}, NewShellError(ErrTypeMismatch, Span{}, "unknown operator %s", op)
}

func overflow(a int64, op Operator, b int64) error {
	return NewShellError(ErrOperatorOverflow, Span{}, "%d %s %d does not fit in an int", a, op, b)
}

func cantConvert(v Value, want Type) error {
	return NewShellError(ErrCantConvert, Span{}, "can't convert %s to %s", v.Type(), want)
}

// Expect returns a pointer to v, for Example.Result literals.
func Expect(v Value) *Value {
	return &v
}
