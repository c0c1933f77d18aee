package parser

import (
	"github.com/selfagency/nushell/internal/engine"
)

// frame is one level of the working set. The top frame writes straight into
// the delta scope; a module frame keeps private definitions to itself and
// records exported ones on its module.
type frame struct {
	module  *engine.Module
	aliases map[string]*engine.Alias
	consts  map[string]*engine.Const
	modules map[string]*engine.Module
	vars    map[string]bool
	defined map[string]bool
}

func newTopFrame(delta *engine.Scope) *frame {
	return &frame{
		aliases: delta.Aliases,
		consts:  delta.Consts,
		modules: delta.Modules,
		vars:    make(map[string]bool),
		defined: make(map[string]bool),
	}
}

func newModuleFrame(name string) *frame {
	return &frame{
		module:  engine.NewModule(name),
		aliases: make(map[string]*engine.Alias),
		consts:  make(map[string]*engine.Const),
		modules: make(map[string]*engine.Module),
		vars:    make(map[string]bool),
		defined: make(map[string]bool),
	}
}

func (f *frame) isModule() bool {
	return f.module != nil
}

func (f *frame) moduleName() string {
	if f.module == nil {
		return ""
	}
	return f.module.Name
}

// define claims name for a new definition, reporting false if this frame
// already defined it.
func (f *frame) define(key string) bool {
	if f.defined[key] {
		return false
	}
	f.defined[key] = true
	return true
}

func (f *frame) bindAlias(a *engine.Alias, exported bool) {
	delete(f.consts, a.Name)
	delete(f.vars, a.Name)
	f.aliases[a.Name] = a
	if exported && f.module != nil {
		delete(f.module.Consts, a.Name)
		f.module.Aliases[a.Name] = a
	}
}

func (f *frame) bindConst(c *engine.Const, exported bool) {
	delete(f.aliases, c.Name)
	delete(f.vars, c.Name)
	f.consts[c.Name] = c
	if exported && f.module != nil {
		delete(f.module.Aliases, c.Name)
		f.module.Consts[c.Name] = c
	}
}

// binding is what a bare name resolves to.
type binding struct {
	alias  *engine.Alias
	konst  *engine.Const
	runVar bool
}

func (b binding) found() bool {
	return b.alias != nil || b.konst != nil || b.runVar
}

// resolve looks name up from the innermost frame outward, then in the
// engine's permanent scope.
func (p *Parser) resolve(name string) binding {
	for i := len(p.frames) - 1; i >= 0; i-- {
		f := p.frames[i]
		if f.vars[name] {
			return binding{runVar: true}
		}
		if a, ok := f.aliases[name]; ok {
			return binding{alias: a}
		}
		if c, ok := f.consts[name]; ok {
			return binding{konst: c}
		}
	}
	if a, ok := p.engine.FindAlias(name); ok {
		return binding{alias: a}
	}
	if c, ok := p.engine.FindConst(name); ok {
		return binding{konst: c}
	}
	return binding{}
}

func (p *Parser) resolveModule(name string) (*engine.Module, bool) {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if m, ok := p.frames[i].modules[name]; ok {
			return m, true
		}
	}
	return p.engine.FindModule(name)
}

func (p *Parser) current() *frame {
	return p.frames[len(p.frames)-1]
}
