// Package extract implements structural schema extraction: it reflects over
// a declared type's method surface, derives its properties from the accessor
// naming convention, and emits one child extraction request per property so
// that the caller can drive recursive analysis iteratively.
package extract

import (
	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/schema"
)

// TypeSystem is the introspection capability the engine depends on. A
// jtype.Registry satisfies it; any adapter over a real reflection facility
// would do as well.
type TypeSystem interface {
	// Lookup returns the declaration for a type name, nil when unknown.
	Lookup(name string) *jtype.Decl
	// CandidateMethods returns the full method-name multimap for a type,
	// including inherited declarations, deduplicated by signature and
	// declaring type.
	CandidateMethods(name string) map[string][]jtype.Method
	// MostSpecific picks the declaration by the most derived declaring type,
	// seen from owner.
	MostSpecific(owner string, methods []jtype.Method) jtype.Method
}

// SchemaStore resolves schemas of already-extracted types. The engine never
// calls it; it is forwarded unchanged to the strategy's schema constructor.
type SchemaStore interface {
	Get(t jtype.Type) *schema.Schema
}

// SchemaCache exposes the schemas resolved so far in the current pass. Like
// SchemaStore it is opaque to the engine and forwarded to property
// validators.
type SchemaCache interface {
	Cached(t jtype.Type) *schema.Schema
}

// StructDetails supplies every policy decision the engine delegates. The
// engine owns the extraction algorithm; the details object owns what counts
// as a target, how violations are reported, and how schemas are built.
type StructDetails interface {
	// IsTarget decides whether this strategy applies to the type at all.
	// A false return is a normal outcome, not an error.
	IsTarget(t jtype.Type) bool

	// ValidateTypeHierarchy inspects the type's inheritance shape before
	// partitioning and reports violations on the context. It must not halt
	// extraction.
	ValidateTypeHierarchy(ctx *Context, t jtype.Type)

	// HandleInvalidGetter reports a getter whose shape violates the accessor
	// convention. The property is dropped.
	HandleInvalidGetter(ctx *Context, getter jtype.Method, message string)

	// HandleOverloadedMethods reports a same-name method set that is not a
	// valid override chain.
	HandleOverloadedMethods(ctx *Context, methods []jtype.Method)

	// HandleUnhandledMethods receives, once per type, every method that
	// survived partitioning unclassified. Whether leftovers are errors or
	// benign is this hook's policy.
	HandleUnhandledMethods(ctx *Context, methods []jtype.Method)

	// DetermineStateManagementType classifies how a property's value is
	// owned, given its getter group.
	DetermineStateManagementType(ctx *Context, getter *AccessorContext) schema.StateManagementType

	// ValidateSetter checks the setter group against the property type.
	// Failures are reported, not returned; whether they remove writability
	// is policy.
	ValidateSetter(ctx *Context, propertyType jtype.Type, getter, setter *AccessorContext)

	// CreateSchema assembles the schema artifact from the resolved
	// properties and aspects.
	CreateSchema(ctx *Context, properties []*PropertyResult, aspects []schema.Aspect, store SchemaStore) *schema.Schema

	// CreatePropertyValidator returns a validator to run once the schema for
	// the property's value type is available, or nil.
	CreatePropertyValidator(property *PropertyResult, cache SchemaCache) Validator
}

// AspectExtractor derives cross-cutting aspects from the full property set.
type AspectExtractor interface {
	ExtractAspects(ctx *Context, properties []*PropertyResult) []schema.Aspect
}

// PropertyResult pairs a resolved property with the accessor groups it came
// from, so strategies can inspect the underlying declarations.
type PropertyResult struct {
	Property *schema.Property
	Getter   *AccessorContext
	// Setter is nil for read-only properties.
	Setter *AccessorContext
}

// Result is one successful extraction: the schema plus the pending child
// requests for nested types.
type Result struct {
	Schema   *schema.Schema
	Children []*Context
}

// Strategy is what the driving work queue sequences: one attempt to extract
// a schema for a context's type. A nil result means the type is outside the
// strategy's domain and another strategy may be tried.
type Strategy interface {
	Extract(ctx *Context, store SchemaStore, cache SchemaCache) *Result
}
