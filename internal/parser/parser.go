package parser

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/internal/logger"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// maxHeadWords bounds how many words are tried when matching a multi-word
// command name.
const maxHeadWords = 4

// Parser holds the working set for a single parse. It is not reusable.
type Parser struct {
	engine  *engine.EngineState
	src     string
	toks    []Token
	pos     int
	lastEnd int
	frames  []*frame
	log     *log.Logger

	// lastModule is the frame of the most recently parsed block argument.
	lastModule *frame
}

// newParser lexes src and binds top-level definitions into delta.
func newParser(engineState *engine.EngineState, src string, delta *engine.Scope) (*Parser, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		engine: engineState,
		src:    src,
		toks:   toks,
		log:    logger.NewStyledLogger("Parser"),
	}
	p.frames = []*frame{newTopFrame(delta)}
	return p, nil
}

// Parse parses src against engineState. It returns the AST and the delta of
// top-level bindings created by parser keywords; engineState itself is never
// modified.
func Parse(engineState *engine.EngineState, src string) (*ast.Block, *engine.Scope, error) {
	delta := engine.NewScope()
	p, err := newParser(engineState, src, delta)
	if err != nil {
		return nil, nil, err
	}

	block, err := p.parseBlock(TokEOF)
	if err != nil {
		p.log.Debug("Parse failed", "error", err)
		return nil, nil, err
	}
	p.log.Debug("Parsed block", "pipelines", len(block.Pipelines),
		"aliases", len(delta.Aliases), "consts", len(delta.Consts), "modules", len(delta.Modules))
	return block, delta, nil
}

func (p *Parser) peek() Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(off int) Token {
	if p.pos+off < len(p.toks) {
		return p.toks[p.pos+off]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	p.lastEnd = tok.Span.End
	return tok
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		if tok.Kind == TokEOF {
			return tok, nutypes.NewParseError(nutypes.ErrUnclosedDelimiter, tok.Span, "expected %s before end of input", kind)
		}
		return tok, nutypes.NewParseError(nutypes.ErrExpected, tok.Span, "expected %s, found %s", kind, tok)
	}
	return p.advance(), nil
}

func (p *Parser) text(span nutypes.Span) string {
	return p.src[span.Start:span.End]
}

func (p *Parser) atStatementEnd() bool {
	switch p.peek().Kind {
	case TokEOF, TokSemicolon, TokNewline, TokPipe, TokRParen, TokRBrace, TokRBracket:
		return true
	default:
		return false
	}
}

func (p *Parser) skipSeparators() {
	for k := p.peek().Kind; k == TokSemicolon || k == TokNewline; k = p.peek().Kind {
		p.advance()
	}
}

// parseBlock parses statements up to, but not including, the end token.
func (p *Parser) parseBlock(end TokenKind) (*ast.Block, error) {
	block := &ast.Block{Span: nutypes.Span{Start: p.peek().Span.Start}}
	for {
		p.skipSeparators()
		tok := p.peek()
		if tok.Kind == end {
			break
		}
		if tok.Kind == TokEOF {
			return nil, nutypes.NewParseError(nutypes.ErrUnclosedDelimiter, tok.Span, "expected %s before end of input", end)
		}

		pipeline, err := p.parsePipeline(true)
		if err != nil {
			return nil, err
		}
		block.Pipelines = append(block.Pipelines, pipeline)

		switch next := p.peek(); next.Kind {
		case TokSemicolon, TokNewline, TokEOF, end:
		default:
			return nil, nutypes.NewParseError(nutypes.ErrExpected, next.Span, "unexpected %s", next)
		}
	}
	block.Span.End = p.lastEnd
	return block, nil
}

// parsePipeline parses "a | b | c". Each call is checked against the type
// flowing into it.
func (p *Parser) parsePipeline(allowKeywords bool) (*ast.Pipeline, error) {
	pipeline := &ast.Pipeline{}
	in := nutypes.TypeNothing
	for {
		el, out, err := p.parseElement(in, len(pipeline.Elements) > 0, allowKeywords)
		if err != nil {
			return nil, err
		}
		pipeline.Elements = append(pipeline.Elements, el)
		in = out

		if p.peek().Kind != TokPipe {
			return pipeline, nil
		}
		pipe := p.advance()
		if p.atStatementEnd() {
			return nil, nutypes.NewParseError(nutypes.ErrExpected, pipe.Span, "expected a command after '|'")
		}
	}
}

func (p *Parser) parseElement(in nutypes.Type, piped, allowKeywords bool) (ast.Expression, nutypes.Type, error) {
	if p.peek().Kind == TokWord {
		expr, ok, err := p.parseCommandHead(allowKeywords)
		if err != nil {
			return nil, nutypes.TypeNothing, err
		}
		if ok {
			if call, isCall := expr.(*ast.Call); isCall {
				if err := checkInput(call, in, piped); err != nil {
					return nil, nutypes.TypeNothing, err
				}
			}
			return expr, expr.OutputType(), nil
		}
	}

	expr, err := p.parseMath(false)
	if err != nil {
		return nil, nutypes.TypeNothing, err
	}
	return expr, expr.OutputType(), nil
}

func checkInput(call *ast.Call, in nutypes.Type, piped bool) error {
	sig := call.Decl.Signature()
	out, ok := sig.OutputFor(in)
	if !ok {
		if piped {
			return nutypes.NewParseError(nutypes.ErrInputMismatch, call.Head,
				"%s does not accept %s input", sig.Name, in)
		}
		out = sig.InputOutputTypes[0].Out
	}
	call.Out = out
	return nil
}

// parseCommandHead resolves the word at the cursor as an alias, a command or
// a constant, in that order. It reports false, consuming nothing, for words
// that are plain literals.
func (p *Parser) parseCommandHead(allowKeywords bool) (ast.Expression, bool, error) {
	tok := p.peek()

	b := p.resolve(tok.Text)
	if b.alias != nil {
		call, err := p.expandAlias(tok, b.alias)
		return call, err == nil, err
	}

	words := make([]string, 0, maxHeadWords)
	for i := 0; i < maxHeadWords && p.peekAt(i).Kind == TokWord; i++ {
		words = append(words, p.peekAt(i).Text)
	}
	if decl, n := p.engine.LongestMatch(words); decl != nil {
		if decl.IsParserKeyword() && !allowKeywords {
			return nil, false, nutypes.NewParseError(nutypes.ErrExpected, tok.Span,
				"%s is a parser keyword and cannot be used as a value", decl.Name())
		}
		call, err := p.parseCall(decl, n)
		return call, err == nil, err
	}

	if b.konst != nil {
		p.advance()
		return &ast.Literal{Value: b.konst.Value, Span: tok.Span}, true, nil
	}
	if tok.Text == "true" || tok.Text == "false" {
		return nil, false, nil
	}
	return nil, false, nutypes.NewParseError(nutypes.ErrUnknownCommand, tok.Span, "unknown command %q", tok.Text)
}

// expandAlias splices a copy of the aliased call at the use site and appends
// any further arguments to it.
func (p *Parser) expandAlias(tok Token, a *engine.Alias) (*ast.Call, error) {
	p.advance()
	call := a.Call.Clone()
	call.Head = tok.Span
	if err := p.parseArgs(call, call.Decl.Signature()); err != nil {
		return nil, err
	}
	call.Span = nutypes.Span{Start: tok.Span.Start, End: p.lastEnd}
	return call, nil
}

func (p *Parser) parseCall(decl nutypes.Command, nWords int) (*ast.Call, error) {
	first := p.peek()
	for i := 0; i < nWords; i++ {
		p.advance()
	}
	head := nutypes.Span{Start: first.Span.Start, End: p.lastEnd}

	if decl.IsParserKeyword() {
		return p.parseKeyword(decl, head)
	}

	call := &ast.Call{Decl: decl, Head: head}
	if err := p.parseArgs(call, decl.Signature()); err != nil {
		return nil, err
	}
	call.Span = nutypes.Span{Start: head.Start, End: p.lastEnd}

	if err := p.declareVars(call); err != nil {
		return nil, err
	}
	return call, nil
}

// declareVars records runtime variables introduced by a call such as
// "let x: int = 1", checking the annotation when the value type is known.
func (p *Parser) declareVars(call *ast.Call) error {
	for i, arg := range call.Positional {
		decl, ok := arg.(*ast.VarDecl)
		if !ok {
			continue
		}
		if decl.Annotated && i+1 < len(call.Positional) {
			got := call.Positional[i+1].OutputType()
			if got != nutypes.TypeAny && !decl.Declared.Accepts(got) {
				return nutypes.NewParseError(nutypes.ErrTypeAnnotation, call.Positional[i+1].NodeSpan(),
					"%s is declared as %s but the value is %s", decl.Name, decl.Declared, got)
			}
		}
		p.current().vars[decl.Name] = true
	}
	return nil
}

// parseArgs matches the tokens up to the end of the statement against sig,
// appending to whatever arguments call already holds.
func (p *Parser) parseArgs(call *ast.Call, sig nutypes.Signature) error {
	for !p.atStatementEnd() {
		tok := p.peek()
		if tok.Kind == TokWord && isFlag(tok.Text) {
			if err := p.parseFlag(call, sig); err != nil {
				return err
			}
			continue
		}

		param, ok := sig.Positional(len(call.Positional))
		if !ok {
			return nutypes.NewParseError(nutypes.ErrExtraPositional, tok.Span,
				"%s got an unexpected argument %s", sig.Name, tok)
		}
		expr, err := p.parseShape(param, call)
		if err != nil {
			return err
		}
		call.Positional = append(call.Positional, expr)
	}

	if n := len(call.Positional); n < len(sig.Required) {
		missing := sig.Required[n]
		at := nutypes.Span{Start: p.lastEnd, End: p.lastEnd}
		if missing.Shape.Kind() == nutypes.KindKeyword {
			return nutypes.NewParseError(nutypes.ErrMissingPositional, at,
				"%s is missing %q <%s>", sig.Name, missing.Shape.Literal(), missing.Name)
		}
		return nutypes.NewParseError(nutypes.ErrMissingPositional, at,
			"%s is missing required argument <%s>", sig.Name, missing.Name)
	}
	return nil
}

func isFlag(text string) bool {
	if len(text) < 2 || text[0] != '-' {
		return false
	}
	c := text[1]
	return c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (p *Parser) parseFlag(call *ast.Call, sig nutypes.Signature) error {
	tok := p.advance()
	if strings.HasPrefix(tok.Text, "--") {
		name := tok.Text[2:]
		flag, ok := sig.FindLong(name)
		if !ok {
			return nutypes.NewParseError(nutypes.ErrUnknownFlag, tok.Span, "%s has no flag --%s", sig.Name, name)
		}
		return p.addFlag(call, flag, tok)
	}

	shorts := []rune(tok.Text[1:])
	for i, r := range shorts {
		flag, ok := sig.FindShort(r)
		if !ok {
			return nutypes.NewParseError(nutypes.ErrUnknownFlag, tok.Span, "%s has no flag -%c", sig.Name, r)
		}
		if !flag.IsSwitch() && i != len(shorts)-1 {
			return nutypes.NewParseError(nutypes.ErrMissingFlagValue, tok.Span, "flag -%c needs a value", r)
		}
		if err := p.addFlag(call, flag, tok); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) addFlag(call *ast.Call, flag nutypes.Flag, tok Token) error {
	if flag.IsSwitch() {
		call.Named = append(call.Named, ast.NamedArg{Long: flag.Long, Span: tok.Span})
		return nil
	}
	if p.atStatementEnd() {
		return nutypes.NewParseError(nutypes.ErrMissingFlagValue, tok.Span, "flag --%s needs a %s value", flag.Long, *flag.Arg)
	}
	value, err := p.parseShape(nutypes.PositionalArg{Name: flag.Long, Shape: *flag.Arg}, call)
	if err != nil {
		return err
	}
	call.Named = append(call.Named, ast.NamedArg{
		Long:  flag.Long,
		Value: value,
		Span:  nutypes.Span{Start: tok.Span.Start, End: value.NodeSpan().End},
	})
	return nil
}
