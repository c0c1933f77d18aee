package nutypes

import (
	"errors"
	"fmt"
)

// Span is a half-open byte range into the parsed source.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// ParseErrorKind classifies failures detected while building the AST.
type ParseErrorKind int

const (
	ErrUnknownCommand ParseErrorKind = iota
	ErrExpected
	ErrMissingPositional
	ErrExtraPositional
	ErrUnknownFlag
	ErrMissingFlagValue
	ErrDuplicateName
	ErrNonConstantExpression
	ErrExportOutsideModule
	ErrModuleNotFound
	ErrExportNotFound
	ErrTypeAnnotation
	ErrInputMismatch
	ErrUnexpectedEOF
	ErrUnclosedDelimiter
	ErrConstantEvaluation
)

var parseErrorKindNames = map[ParseErrorKind]string{
	ErrUnknownCommand:        "unknown command",
	ErrExpected:              "unexpected token",
	ErrMissingPositional:     "missing positional argument",
	ErrExtraPositional:       "extra positional argument",
	ErrUnknownFlag:           "unknown flag",
	ErrMissingFlagValue:      "missing flag value",
	ErrDuplicateName:         "duplicate definition",
	ErrNonConstantExpression: "not a constant",
	ErrExportOutsideModule:   "export outside module",
	ErrModuleNotFound:        "module not found",
	ErrExportNotFound:        "export not found",
	ErrTypeAnnotation:        "type mismatch",
	ErrInputMismatch:         "input type mismatch",
	ErrUnexpectedEOF:         "unexpected end of input",
	ErrUnclosedDelimiter:     "unclosed delimiter",
	ErrConstantEvaluation:    "constant evaluation failed",
}

func (k ParseErrorKind) String() string {
	if name, ok := parseErrorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// ParseError is returned by the parser. It always carries the span of the
// offending source.
type ParseError struct {
	Kind ParseErrorKind
	Msg  string
	Span Span
}

// NewParseError formats a ParseError.
func NewParseError(kind ParseErrorKind, span Span, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...), Span: span}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s) at %s: %s", e.Kind, e.Span, e.Msg)
}

// ShellErrorKind classifies failures raised while evaluating.
type ShellErrorKind int

const (
	ErrCantConvert ShellErrorKind = iota
	ErrTypeMismatch
	ErrUnsupportedInput
	ErrDivisionByZero
	ErrVariableNotBound
	ErrCommandNotFound
	ErrIO
	ErrOperatorOverflow
)

var shellErrorKindNames = map[ShellErrorKind]string{
	ErrCantConvert:      "can't convert",
	ErrTypeMismatch:     "type mismatch",
	ErrUnsupportedInput: "unsupported input",
	ErrDivisionByZero:   "division by zero",
	ErrVariableNotBound: "variable not found",
	ErrCommandNotFound:  "command not found",
	ErrIO:               "io error",
	ErrOperatorOverflow: "operator overflow",
}

func (k ShellErrorKind) String() string {
	if name, ok := shellErrorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ShellErrorKind(%d)", int(k))
}

// ShellError is returned by command execution and evaluation.
type ShellError struct {
	Kind  ShellErrorKind
	Msg   string
	Span  Span
	Cause error
}

// NewShellError formats a ShellError.
func NewShellError(kind ShellErrorKind, span Span, format string, args ...interface{}) *ShellError {
	return &ShellError{Kind: kind, Msg: fmt.Sprintf(format, args...), Span: span}
}

// WrapShellError attaches a cause, typically an I/O failure.
func WrapShellError(kind ShellErrorKind, span Span, cause error, format string, args ...interface{}) *ShellError {
	e := NewShellError(kind, span, format, args...)
	e.Cause = cause
	return e
}

func (e *ShellError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ShellError) Unwrap() error {
	return e.Cause
}

// WithSpan returns a copy of e pointing at span, unless e already has one.
func (e *ShellError) WithSpan(span Span) *ShellError {
	if e.Span != (Span{}) {
		return e
	}
	c := *e
	c.Span = span
	return &c
}

// IsParseError reports whether err is a ParseError of the given kind.
func IsParseError(err error, kind ParseErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsShellError reports whether err is a ShellError of the given kind.
func IsShellError(err error, kind ShellErrorKind) bool {
	var se *ShellError
	return errors.As(err, &se) && se.Kind == kind
}
