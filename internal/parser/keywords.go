package parser

import (
	"sort"
	"strings"

	"github.com/selfagency/nushell/internal/ast"
	"github.com/selfagency/nushell/internal/engine"
	"github.com/selfagency/nushell/internal/logger"
	"github.com/selfagency/nushell/pkg/nutypes"
)

// parseKeyword parses a parser keyword call and applies its binding to the
// current frame. The returned call is inert at runtime.
func (p *Parser) parseKeyword(decl nutypes.Command, head nutypes.Span) (*ast.Call, error) {
	name := decl.Name()
	exported := name == "export" || strings.HasPrefix(name, "export ")

	if exported && !p.current().isModule() {
		return nil, nutypes.NewParseError(nutypes.ErrExportOutsideModule, head,
			"%s is only allowed inside a module body", name)
	}
	if name == "export" {
		return nil, nutypes.NewParseError(nutypes.ErrExpected, head,
			"export must be followed by one of: %s", strings.Join(p.exportForms(), ", "))
	}

	call := &ast.Call{Decl: decl, Head: head, Out: nutypes.TypeNothing}
	if err := p.parseArgs(call, decl.Signature()); err != nil {
		return nil, err
	}
	call.Span = nutypes.Span{Start: head.Start, End: p.lastEnd}

	var err error
	switch strings.TrimPrefix(name, "export ") {
	case "alias":
		err = p.bindAlias(call, exported)
	case "const":
		err = p.bindConst(call, exported)
	case "module":
		err = p.bindModule(call)
	case "use":
		err = p.bindUse(call, exported)
	default:
		err = nutypes.NewParseError(nutypes.ErrUnknownCommand, head, "%s has no parse-time handler", name)
	}
	if err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) exportForms() []string {
	var forms []string
	for _, cmd := range p.engine.Commands() {
		if strings.HasPrefix(cmd.Name(), "export ") {
			forms = append(forms, cmd.Name())
		}
	}
	sort.Strings(forms)
	return forms
}

func literalString(expr ast.Expression, what string) (string, error) {
	if lit, ok := expr.(*ast.Literal); ok {
		if s, err := lit.Value.AsString(); err == nil && s != "" {
			return s, nil
		}
	}
	return "", nutypes.NewParseError(nutypes.ErrExpected, expr.NodeSpan(), "%s must be a literal name", what)
}

func (p *Parser) logBinding(kind, name string, exported bool) {
	logger.KeywordBinding(kind, name, p.current().moduleName(), exported)
}

func (p *Parser) bindAlias(call *ast.Call, exported bool) error {
	name, err := literalString(call.Positional[0], "alias name")
	if err != nil {
		return err
	}
	kw := call.Positional[1].(*ast.Keyword)
	target, ok := kw.Expr.(*ast.Call)
	if !ok {
		return nutypes.NewParseError(nutypes.ErrExpected, kw.Expr.NodeSpan(),
			"alias %s must name a command", name)
	}

	if !p.current().define(name) {
		return nutypes.NewParseError(nutypes.ErrDuplicateName, call.Positional[0].NodeSpan(),
			"%s is already defined in this scope", name)
	}
	p.current().bindAlias(&engine.Alias{
		Name:   name,
		Call:   target,
		Source: p.text(target.Span),
	}, exported)
	p.logBinding("alias", name, exported)
	return nil
}

func (p *Parser) bindConst(call *ast.Call, exported bool) error {
	decl := call.Positional[0].(*ast.VarDecl)
	kw := call.Positional[1].(*ast.Keyword)

	value, err := fold(kw.Expr)
	if err != nil {
		return err
	}

	typ := value.Type()
	if decl.Annotated {
		if !decl.Declared.Accepts(typ) {
			return nutypes.NewParseError(nutypes.ErrTypeAnnotation, kw.Expr.NodeSpan(),
				"const %s is declared as %s but the value is %s", decl.Name, decl.Declared, typ)
		}
		typ = decl.Declared
	}

	if !p.current().define(decl.Name) {
		return nutypes.NewParseError(nutypes.ErrDuplicateName, decl.Span,
			"%s is already defined in this scope", decl.Name)
	}
	p.current().bindConst(&engine.Const{Name: decl.Name, Type: typ, Value: value}, exported)
	p.logBinding("const", decl.Name, exported)
	return nil
}

func (p *Parser) bindModule(call *ast.Call) error {
	name, err := literalString(call.Positional[0], "module name")
	if err != nil {
		return err
	}
	if !p.current().define("module " + name) {
		return nutypes.NewParseError(nutypes.ErrDuplicateName, call.Positional[0].NodeSpan(),
			"module %s is already defined in this scope", name)
	}
	p.current().modules[name] = p.lastModule.module
	p.logBinding("module", name, false)
	return nil
}

// bindUse imports the named members of a module, or all of its exports when
// none are named.
func (p *Parser) bindUse(call *ast.Call, exported bool) error {
	modName, err := literalString(call.Positional[0], "module name")
	if err != nil {
		return err
	}
	mod, ok := p.resolveModule(modName)
	if !ok {
		return nutypes.NewParseError(nutypes.ErrModuleNotFound, call.Positional[0].NodeSpan(),
			"module %s not found", modName)
	}

	type member struct {
		name string
		span nutypes.Span
	}
	var members []member
	for _, arg := range call.Positional[1:] {
		name, err := literalString(arg, "imported member")
		if err != nil {
			return err
		}
		members = append(members, member{name: name, span: arg.NodeSpan()})
	}
	if len(members) == 0 {
		for _, name := range mod.Exports() {
			members = append(members, member{name: name, span: call.Positional[0].NodeSpan()})
		}
	}

	cur := p.current()
	for _, m := range members {
		if a, ok := mod.Aliases[m.name]; ok {
			cur.bindAlias(a, exported)
		} else if c, ok := mod.Consts[m.name]; ok {
			cur.bindConst(c, exported)
		} else {
			return nutypes.NewParseError(nutypes.ErrExportNotFound, m.span,
				"module %s does not export %s", modName, m.name)
		}
		p.logBinding("use", m.name, exported)
	}
	return nil
}
