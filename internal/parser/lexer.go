// Package parser turns nush source into an AST. Parser keywords (alias,
// const, module, use and their export forms) are executed here, at parse
// time; the bindings they produce are returned as a delta scope for the
// caller to merge into the engine state.
package parser

import (
	"fmt"
	"strings"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokWord
	TokString
	TokInt
	TokFloat
	TokVar
	TokOp
	TokPipe
	TokSemicolon
	TokNewline
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokLBrace
	TokRBrace
	TokEquals
	TokColon
)

var tokenKindNames = map[TokenKind]string{
	TokEOF:       "end of input",
	TokWord:      "word",
	TokString:    "string",
	TokInt:       "int",
	TokFloat:     "float",
	TokVar:       "variable",
	TokOp:        "operator",
	TokPipe:      "'|'",
	TokSemicolon: "';'",
	TokNewline:   "newline",
	TokLParen:    "'('",
	TokRParen:    "')'",
	TokLBracket:  "'['",
	TokRBracket:  "']'",
	TokLBrace:    "'{'",
	TokRBrace:    "'}'",
	TokEquals:    "'='",
	TokColon:     "':'",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme. For strings Text holds the unquoted content; for
// variables it holds the name without the "$".
type Token struct {
	Kind TokenKind
	Text string
	Span nutypes.Span
}

func (t Token) String() string {
	switch t.Kind {
	case TokEOF, TokNewline:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

var punctuation = map[byte]TokenKind{
	'|': TokPipe,
	';': TokSemicolon,
	'(': TokLParen,
	')': TokRParen,
	'[': TokLBracket,
	']': TokRBracket,
	'{': TokLBrace,
	'}': TokRBrace,
	'=': TokEquals,
	':': TokColon,
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOpChar(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

func isIdent(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isBoundary reports whether c ends a word. An '=' never does, so "a=b"
// stays one word.
func isBoundary(c byte) bool {
	if isSpace(c) || c == '\n' || c == '#' || c == '"' || c == '\'' {
		return true
	}
	kind, ok := punctuation[c]
	return ok && kind != TokEquals
}

type lexer struct {
	src  string
	pos  int
	toks []Token
	// glued is true when the previous token was a value ending exactly at
	// pos, so that "2*3" and "$a-1" lex as arithmetic.
	glued bool
}

// Lex splits src into tokens, always terminated by a TokEOF token.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.toks = append(l.toks, tok)
		if tok.Kind == TokEOF {
			return l.toks, nil
		}
	}
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) atBoundary(off int) bool {
	return l.pos+off >= len(l.src) || isBoundary(l.src[l.pos+off])
}

func (l *lexer) emit(kind TokenKind, start int, text string) Token {
	l.glued = kind == TokInt || kind == TokFloat || kind == TokString ||
		kind == TokVar || kind == TokRParen || kind == TokRBracket
	return Token{Kind: kind, Text: text, Span: nutypes.Span{Start: start, End: l.pos}}
}

func (l *lexer) next() (Token, error) {
	// Skip blanks and comments.
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isSpace(c) {
			l.pos++
			l.glued = false
			continue
		}
		if c == '#' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}

	start := l.pos
	if l.pos >= len(l.src) {
		return l.emit(TokEOF, start, ""), nil
	}

	c := l.src[l.pos]
	switch {
	case c == '\n':
		l.pos++
		return l.emit(TokNewline, start, "\n"), nil
	case c == '"' || c == '\'':
		return l.lexString(c)
	case c == '$':
		l.pos++
		for l.pos < len(l.src) && isIdent(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == start+1 {
			return Token{}, nutypes.NewParseError(nutypes.ErrExpected, nutypes.Span{Start: start, End: l.pos},
				"expected a variable name after '$'")
		}
		return l.emit(TokVar, start, l.src[start+1:l.pos]), nil
	}

	// '=' is punctuation only when it stands alone, as in "alias ll = ls".
	if kind, ok := punctuation[c]; ok && (kind != TokEquals || l.atBoundary(1)) {
		l.pos++
		return l.emit(kind, start, string(c)), nil
	}

	if isOpChar(c) {
		// Operators are glued to a preceding value or stand alone; anything
		// else is the start of a word such as "-l", "--all" or "/tmp".
		negative := c == '-' && isDigit(l.peekByte(1)) && !l.glued
		if !negative && (l.glued || l.atBoundary(1)) {
			l.pos++
			return l.emit(TokOp, start, string(c)), nil
		}
	}

	if isDigit(c) || (c == '-' && isDigit(l.peekByte(1))) {
		if tok, ok := l.lexNumber(); ok {
			return tok, nil
		}
		l.pos = start
	}

	for l.pos < len(l.src) && !isBoundary(l.src[l.pos]) {
		l.pos++
	}
	return l.emit(TokWord, start, l.src[start:l.pos]), nil
}

// lexNumber scans an int or float. It fails, leaving the caller to rewind,
// when the digits run into a word such as "10kb".
func (l *lexer) lexNumber() (Token, bool) {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	kind := TokInt
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		kind = TokFloat
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if !l.atBoundary(0) && !isOpChar(l.src[l.pos]) {
		return Token{}, false
	}
	return l.emit(kind, start, l.src[start:l.pos]), true
}

func (l *lexer) lexString(quote byte) (Token, error) {
	start := l.pos
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return l.emit(TokString, start, sb.String()), nil
		case c == '\\' && quote == '"' && l.pos+1 < len(l.src):
			l.pos++
			switch esc := l.src[l.pos]; esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(c)
		}
		l.pos++
	}
	return Token{}, nutypes.NewParseError(nutypes.ErrUnclosedDelimiter, nutypes.Span{Start: start, End: l.pos},
		"unterminated string starting with %c", quote)
}
