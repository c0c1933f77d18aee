package nutypes

import (
	"fmt"
	"strings"
)

// Type is the type of a value flowing through a pipeline.
type Type int

const (
	// TypeNothing means no value is consumed or produced.
	TypeNothing Type = iota
	// TypeAny matches every other type.
	TypeAny
	// TypeBool is a boolean.
	TypeBool
	// TypeInt is a 64-bit integer.
	TypeInt
	// TypeFloat is a 64-bit float.
	TypeFloat
	// TypeString is a string.
	TypeString
	// TypeList is a list of arbitrary values.
	TypeList
	// TypeRecord is an ordered set of named values.
	TypeRecord
	// TypeTable is a list of records.
	TypeTable
)

var typeNames = map[Type]string{
	TypeNothing: "nothing",
	TypeAny:     "any",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeList:    "list",
	TypeRecord:  "record",
	TypeTable:   "table",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a type annotation such as the "int" in "const x: int = 1".
func ParseType(name string) (Type, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeNothing, fmt.Errorf("unknown type %q", name)
}

// Accepts reports whether a value of type other can be used where t is
// expected. Any accepts everything, everything is accepted by Any, and a
// table is a list of records.
func (t Type) Accepts(other Type) bool {
	switch {
	case t == TypeAny || other == TypeAny:
		return true
	case t == other:
		return true
	case t == TypeList && other == TypeTable:
		return true
	case t == TypeFloat && other == TypeInt:
		return true
	default:
		return false
	}
}

// InOut is one declared (input, output) pair of a command.
type InOut struct {
	In  Type `json:"input" yaml:"input"`
	Out Type `json:"output" yaml:"output"`
}

// IO is shorthand for constructing an InOut pair.
func IO(in, out Type) InOut {
	return InOut{In: in, Out: out}
}

func (io InOut) String() string {
	return fmt.Sprintf("%s -> %s", io.In, io.Out)
}

// MarshalText renders the type by name so that signature dumps stay readable.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
