// Package managed provides the struct extraction strategy for managed model
// types: interfaces carrying the Managed marker whose state is declared
// through abstract accessor pairs.
package managed

import (
	"fmt"
	"strings"

	"github.com/john3300/modelschema/extract"
	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/schema"
)

const (
	// AnnotationManaged marks an interface as a managed model type.
	AnnotationManaged = "Managed"
	// AnnotationUnmanaged marks a getter whose value is owned by user code.
	AnnotationUnmanaged = "Unmanaged"
)

// NewExtractor builds a struct extractor wired with the managed-type policy.
func NewExtractor(types extract.TypeSystem) *extract.StructExtractor {
	d := &details{types: types}
	return extract.NewStructExtractor(types, d, d)
}

type details struct {
	types extract.TypeSystem
}

func (d *details) IsTarget(t jtype.Type) bool {
	decl := d.types.Lookup(t.Name)
	return decl != nil && decl.HasAnnotation(AnnotationManaged)
}

// ValidateTypeHierarchy reports shape violations without halting extraction:
// every problem with a type surfaces in one pass.
func (d *details) ValidateTypeHierarchy(ctx *extract.Context, t jtype.Type) {
	decl := d.types.Lookup(t.Name)
	if decl == nil {
		return
	}
	if decl.Kind != jtype.KindInterface {
		ctx.Report(extract.HierarchyViolation, "a managed type must be an interface", decl.Line)
	}
	if len(decl.TypeParameters) > 0 || len(t.Arguments) > 0 {
		ctx.Report(extract.HierarchyViolation, "a managed type must not be parameterized", decl.Line)
	}
	for _, super := range decl.Extends {
		parent := d.types.Lookup(super)
		if parent != nil && parent.Kind == jtype.KindClass {
			ctx.Report(extract.HierarchyViolation,
				fmt.Sprintf("a managed type must not extend the class %s", super), decl.Line)
		}
	}
}

func (d *details) HandleInvalidGetter(ctx *extract.Context, getter jtype.Method, message string) {
	ctx.Report(extract.InvalidAccessor,
		fmt.Sprintf("method %s is not a valid property getter: %s", getter, message), getter.Line)
}

func (d *details) HandleOverloadedMethods(ctx *extract.Context, methods []jtype.Method) {
	signatures := make([]string, len(methods))
	for i, m := range methods {
		signatures[i] = m.String()
	}
	ctx.Report(extract.OverloadConflict,
		fmt.Sprintf("method '%s' is overloaded: %s", methods[0].Name, strings.Join(signatures, "; ")),
		methods[0].Line)
}

// HandleUnhandledMethods treats leftover abstract methods as errors: a
// managed type has no implementation to back them. Concrete leftovers are
// default methods and benign.
func (d *details) HandleUnhandledMethods(ctx *extract.Context, methods []jtype.Method) {
	var abstract []string
	line := 0
	for _, m := range methods {
		if m.IsAbstract {
			abstract = append(abstract, m.String())
			if line == 0 {
				line = m.Line
			}
		}
	}
	if len(abstract) == 0 {
		return
	}
	ctx.Report(extract.UnhandledMethods,
		fmt.Sprintf("only paired getter/setter methods are supported, cannot handle: %s", strings.Join(abstract, "; ")),
		line)
}

// DetermineStateManagementType: an Unmanaged-annotated getter is user-owned,
// an abstract getter declares model-held state, a default getter delegates to
// its implementation.
func (d *details) DetermineStateManagementType(ctx *extract.Context, getter *extract.AccessorContext) schema.StateManagementType {
	mostSpecific := getter.MostSpecific()
	switch {
	case mostSpecific.HasAnnotation(AnnotationUnmanaged):
		return schema.Unmanaged
	case mostSpecific.IsAbstract:
		return schema.Declared
	default:
		return schema.Delegated
	}
}

// ValidateSetter checks the conventional shape: void return, exactly one
// parameter of the getter's type. Violations are reported but the property
// stays writable so every problem is visible in one pass.
func (d *details) ValidateSetter(ctx *extract.Context, propertyType jtype.Type, getter, setter *extract.AccessorContext) {
	mostSpecific := setter.MostSpecific()
	if !mostSpecific.Returns.IsVoid() {
		ctx.Report(extract.InvalidAccessor,
			fmt.Sprintf("method %s is not a valid property setter: setter method must have void return type", mostSpecific),
			mostSpecific.Line)
	}
	if len(mostSpecific.Parameters) != 1 {
		ctx.Report(extract.InvalidAccessor,
			fmt.Sprintf("method %s is not a valid property setter: setter method must take exactly one parameter", mostSpecific),
			mostSpecific.Line)
		return
	}
	if !mostSpecific.Parameters[0].Equal(propertyType) {
		ctx.Report(extract.InvalidAccessor,
			fmt.Sprintf("method %s is not a valid property setter: setter parameter type must match getter return type %s", mostSpecific, propertyType),
			mostSpecific.Line)
	}
}

func (d *details) CreateSchema(ctx *extract.Context, properties []*extract.PropertyResult, aspects []schema.Aspect, store extract.SchemaStore) *schema.Schema {
	props := make([]*schema.Property, len(properties))
	for i, p := range properties {
		props[i] = p.Property
	}
	return schema.New(ctx.Type(), props, aspects)
}

// CreatePropertyValidator checks, once the child schema is available, that a
// declared property's value type is itself manageable: a scalar or a managed
// type with its own schema.
func (d *details) CreatePropertyValidator(property *extract.PropertyResult, cache extract.SchemaCache) extract.Validator {
	p := property.Property
	if p.StateManagement != schema.Declared {
		return nil
	}
	return func(ctx *extract.Context, s *schema.Schema) {
		if s != nil || IsScalar(p.Type) {
			return
		}
		ctx.Report(extract.InvalidAccessor,
			fmt.Sprintf("%s has unmanageable type %s: only scalar and managed types are supported for declared properties",
				ctx.Description(), p.Type),
			p.Getter.Line)
	}
}

// ExtractAspects groups the properties whose state is user-owned; the aspect
// is present only when at least one such property exists.
func (d *details) ExtractAspects(ctx *extract.Context, properties []*extract.PropertyResult) []schema.Aspect {
	var names []string
	for _, p := range properties {
		if p.Property.StateManagement == schema.Unmanaged {
			names = append(names, p.Property.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []schema.Aspect{&UnmanagedAspect{Properties: names}}
}

// UnmanagedAspect lists the properties of a schema whose values are owned by
// user code rather than the model.
type UnmanagedAspect struct {
	Properties []string
}

func (a *UnmanagedAspect) AspectName() string {
	return "unmanaged"
}

var scalarTypes = map[string]bool{
	"java.lang.String":     true,
	"java.lang.Boolean":    true,
	"java.lang.Byte":       true,
	"java.lang.Character":  true,
	"java.lang.Short":      true,
	"java.lang.Integer":    true,
	"java.lang.Long":       true,
	"java.lang.Float":      true,
	"java.lang.Double":     true,
	"java.math.BigDecimal": true,
	"java.math.BigInteger": true,
	"java.io.File":         true,
}

// IsScalar reports whether t needs no schema of its own.
func IsScalar(t jtype.Type) bool {
	if t.IsArray() || len(t.Arguments) > 0 {
		return false
	}
	return t.IsPrimitive() || scalarTypes[t.Name]
}
