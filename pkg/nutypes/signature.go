package nutypes

import (
	"errors"
	"fmt"
	"strings"
)

// PositionalArg is one positional parameter of a command.
type PositionalArg struct {
	Name  string      `json:"name" yaml:"name"`
	Shape SyntaxShape `json:"shape" yaml:"shape"`
	Desc  string      `json:"description" yaml:"description"`
}

// Flag is a named parameter. A flag without an Arg shape is a switch.
type Flag struct {
	Long  string       `json:"long" yaml:"long"`
	Short rune         `json:"short,omitempty" yaml:"short,omitempty"`
	Arg   *SyntaxShape `json:"arg,omitempty" yaml:"arg,omitempty"`
	Desc  string       `json:"description" yaml:"description"`
}

// IsSwitch reports whether the flag takes no argument.
func (f Flag) IsSwitch() bool {
	return f.Arg == nil
}

// Signature declares the calling shape and pipeline contract of a command.
// A built Signature is never mutated; commands construct a fresh one on each
// call to Command.Signature.
type Signature struct {
	Name                         string          `json:"name" yaml:"name"`
	Required                     []PositionalArg `json:"required,omitempty" yaml:"required,omitempty"`
	Optional                     []PositionalArg `json:"optional,omitempty" yaml:"optional,omitempty"`
	Rest                         *PositionalArg  `json:"rest,omitempty" yaml:"rest,omitempty"`
	Named                        []Flag          `json:"named,omitempty" yaml:"named,omitempty"`
	InputOutputTypes             []InOut         `json:"input_output_types" yaml:"input_output_types"`
	Category                     Category        `json:"category" yaml:"category"`
	AllowVariantsWithoutExamples bool            `json:"allow_variants_without_examples,omitempty" yaml:"allow_variants_without_examples,omitempty"`
}

// SignatureBuilder accumulates a Signature in declaration order.
type SignatureBuilder struct {
	sig Signature
}

// BuildSignature starts a Signature for the named command.
func BuildSignature(name string) *SignatureBuilder {
	return &SignatureBuilder{sig: Signature{Name: name}}
}

// Required appends a required positional parameter.
func (b *SignatureBuilder) Required(name string, shape SyntaxShape, desc string) *SignatureBuilder {
	b.sig.Required = append(b.sig.Required, PositionalArg{Name: name, Shape: shape, Desc: desc})
	return b
}

// Optional appends an optional positional parameter.
func (b *SignatureBuilder) Optional(name string, shape SyntaxShape, desc string) *SignatureBuilder {
	b.sig.Optional = append(b.sig.Optional, PositionalArg{Name: name, Shape: shape, Desc: desc})
	return b
}

// Rest sets the parameter that absorbs every remaining positional argument.
func (b *SignatureBuilder) Rest(name string, shape SyntaxShape, desc string) *SignatureBuilder {
	b.sig.Rest = &PositionalArg{Name: name, Shape: shape, Desc: desc}
	return b
}

// Switch appends a boolean flag. A zero short rune means no short form.
func (b *SignatureBuilder) Switch(long string, desc string, short rune) *SignatureBuilder {
	b.sig.Named = append(b.sig.Named, Flag{Long: long, Short: short, Desc: desc})
	return b
}

// Named appends a flag that takes an argument of the given shape.
func (b *SignatureBuilder) Named(long string, shape SyntaxShape, desc string, short rune) *SignatureBuilder {
	arg := shape
	b.sig.Named = append(b.sig.Named, Flag{Long: long, Short: short, Arg: &arg, Desc: desc})
	return b
}

// InputOutputTypes appends declared (input, output) pairs.
func (b *SignatureBuilder) InputOutputTypes(pairs ...InOut) *SignatureBuilder {
	b.sig.InputOutputTypes = append(b.sig.InputOutputTypes, pairs...)
	return b
}

// Category sets the help category.
func (b *SignatureBuilder) Category(c Category) *SignatureBuilder {
	b.sig.Category = c
	return b
}

// AllowVariantsWithoutExamples marks that not every I/O pair needs an example.
func (b *SignatureBuilder) AllowVariantsWithoutExamples(allow bool) *SignatureBuilder {
	b.sig.AllowVariantsWithoutExamples = allow
	return b
}

// Build finalizes the signature. The builder may be reused; the returned
// value shares no slices with it.
func (b *SignatureBuilder) Build() Signature {
	out := b.sig
	out.Required = append([]PositionalArg(nil), b.sig.Required...)
	out.Optional = append([]PositionalArg(nil), b.sig.Optional...)
	out.Named = append([]Flag(nil), b.sig.Named...)
	out.InputOutputTypes = append([]InOut(nil), b.sig.InputOutputTypes...)
	if b.sig.Rest != nil {
		rest := *b.sig.Rest
		out.Rest = &rest
	}
	return out
}

// Positionals returns required then optional parameters, in call order.
func (s Signature) Positionals() []PositionalArg {
	out := make([]PositionalArg, 0, len(s.Required)+len(s.Optional))
	out = append(out, s.Required...)
	return append(out, s.Optional...)
}

// Positional returns the parameter that the i-th positional argument fills,
// falling back to the rest parameter.
func (s Signature) Positional(i int) (PositionalArg, bool) {
	switch {
	case i < len(s.Required):
		return s.Required[i], true
	case i < len(s.Required)+len(s.Optional):
		return s.Optional[i-len(s.Required)], true
	case s.Rest != nil:
		return *s.Rest, true
	default:
		return PositionalArg{}, false
	}
}

// FindLong looks up a flag by its long name.
func (s Signature) FindLong(name string) (Flag, bool) {
	for _, f := range s.Named {
		if f.Long == name {
			return f, true
		}
	}
	return Flag{}, false
}

// FindShort looks up a flag by its short form.
func (s Signature) FindShort(r rune) (Flag, bool) {
	for _, f := range s.Named {
		if f.Short != 0 && f.Short == r {
			return f, true
		}
	}
	return Flag{}, false
}

// AcceptsInput reports whether some declared pair consumes t.
func (s Signature) AcceptsInput(t Type) bool {
	_, ok := s.OutputFor(t)
	return ok
}

// OutputFor returns the output type of the first pair whose input accepts t.
func (s Signature) OutputFor(t Type) (Type, bool) {
	for _, io := range s.InputOutputTypes {
		if io.In == t {
			return io.Out, true
		}
	}
	for _, io := range s.InputOutputTypes {
		if io.In.Accepts(t) {
			return io.Out, true
		}
	}
	return TypeNothing, false
}

// UsageLine renders the calling shape, e.g. "export alias <name> = <initial_value>".
func (s Signature) UsageLine() string {
	parts := []string{s.Name}
	if len(s.Named) > 0 {
		parts = append(parts, "{flags}")
	}
	for _, p := range s.Required {
		parts = append(parts, renderParam(p, "<", ">"))
	}
	for _, p := range s.Optional {
		parts = append(parts, renderParam(p, "(", ")"))
	}
	if s.Rest != nil {
		parts = append(parts, "..."+s.Rest.Name)
	}
	return strings.Join(parts, " ")
}

func renderParam(p PositionalArg, lbracket, rbracket string) string {
	if p.Shape.Kind() == KindKeyword {
		return string(p.Shape.Literal()) + " " + lbracket + p.Name + rbracket
	}
	return lbracket + p.Name + rbracket
}

// Validate checks the structural invariants of the signature.
func (s Signature) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("signature name cannot be empty")
	}
	if len(s.InputOutputTypes) == 0 {
		return fmt.Errorf("signature %q declares no input/output types", s.Name)
	}

	seen := make(map[string]bool)
	check := func(name string) error {
		if name == "" {
			return fmt.Errorf("signature %q has an unnamed parameter", s.Name)
		}
		if seen[name] {
			return fmt.Errorf("signature %q declares parameter %q twice", s.Name, name)
		}
		seen[name] = true
		return nil
	}

	for _, p := range s.Positionals() {
		if err := check(p.Name); err != nil {
			return err
		}
		if p.Shape.Kind() == KindKeyword && len(p.Shape.Literal()) == 0 {
			return fmt.Errorf("signature %q: keyword parameter %q has an empty literal", s.Name, p.Name)
		}
	}
	if s.Rest != nil {
		if err := check(s.Rest.Name); err != nil {
			return err
		}
	}

	shorts := make(map[rune]bool)
	for _, f := range s.Named {
		if err := check(f.Long); err != nil {
			return err
		}
		if f.Short == 0 {
			continue
		}
		if shorts[f.Short] {
			return fmt.Errorf("signature %q declares short flag -%c twice", s.Name, f.Short)
		}
		shorts[f.Short] = true
	}
	return nil
}
