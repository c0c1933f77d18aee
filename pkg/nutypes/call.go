package nutypes

// Call is an evaluated command invocation: the arguments have already been
// matched against the signature and reduced to values.
type Call struct {
	Head       string
	Span       Span
	Positional []Value
	Named      map[string]Value
}

// NewCall returns an empty call for the named command.
func NewCall(head string, span Span) *Call {
	return &Call{Head: head, Span: span, Named: make(map[string]Value)}
}

// Req returns the i-th positional argument or an error if it is absent.
func (c *Call) Req(i int) (Value, error) {
	if i < 0 || i >= len(c.Positional) {
		return Value{}, NewShellError(ErrUnsupportedInput, c.Span,
			"%s: missing positional argument %d", c.Head, i)
	}
	return c.Positional[i], nil
}

// Opt returns the i-th positional argument when present.
func (c *Call) Opt(i int) (Value, bool) {
	if i < 0 || i >= len(c.Positional) {
		return Value{}, false
	}
	return c.Positional[i], true
}

// Rest returns the positional arguments from index i onward.
func (c *Call) Rest(i int) []Value {
	if i >= len(c.Positional) {
		return nil
	}
	return append([]Value(nil), c.Positional[i:]...)
}

// Has reports whether the flag was given.
func (c *Call) Has(flag string) bool {
	_, ok := c.Named[flag]
	return ok
}

// Get returns the value passed to a flag. Switches carry true.
func (c *Call) Get(flag string) (Value, bool) {
	v, ok := c.Named[flag]
	return v, ok
}
