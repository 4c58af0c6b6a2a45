package extract

import (
	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/schema"
)

// Validator runs once the schema for a context's type is available. The
// schema is nil when no strategy recognized the type as a target.
type Validator func(ctx *Context, s *schema.Schema)

// Context is one unit of extraction work: a type, a human-readable reason it
// is being extracted, and the diagnostics accumulator shared across the whole
// pass. Child contexts are pending extraction requests: the engine emits one
// per resolved property instead of recursing itself, so the caller owns
// sequencing, memoization and cycle detection.
type Context struct {
	typ         jtype.Type
	description string
	parent      *Context
	diags       *Diagnostics
	validator   Validator
}

// NewContext starts a fresh extraction pass rooted at t, with a new
// diagnostics accumulator.
func NewContext(t jtype.Type) *Context {
	return &Context{
		typ:         t,
		description: t.String(),
		diags:       &Diagnostics{},
	}
}

// Child creates a pending extraction request for a nested type. The child
// shares this context's diagnostics accumulator.
func (c *Context) Child(t jtype.Type, description string, validator Validator) *Context {
	return &Context{
		typ:         t,
		description: description,
		parent:      c,
		diags:       c.diags,
		validator:   validator,
	}
}

func (c *Context) Type() jtype.Type {
	return c.typ
}

// Description says why this type is being extracted, e.g. "property 'name'".
func (c *Context) Description() string {
	return c.description
}

func (c *Context) Parent() *Context {
	return c.parent
}

func (c *Context) Diagnostics() *Diagnostics {
	return c.diags
}

// Report appends a diagnostic for this context's type.
func (c *Context) Report(kind DiagnosticKind, message string, line int) {
	c.diags.Add(Diagnostic{Kind: kind, Type: c.typ.String(), Message: message, Line: line})
}

// Validate runs the context's validator, if any, against the resolved schema.
func (c *Context) Validate(s *schema.Schema) {
	if c.validator != nil {
		c.validator(c, s)
	}
}
