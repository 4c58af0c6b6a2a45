package extract

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/schema"
)

// StructExtractor derives a structural schema from a type's method surface.
// All policy lives in the injected StructDetails and AspectExtractor; the
// extractor itself is stateless and safe for concurrent use across distinct
// types.
type StructExtractor struct {
	types   TypeSystem
	details StructDetails
	aspects AspectExtractor
}

func NewStructExtractor(types TypeSystem, details StructDetails, aspects AspectExtractor) *StructExtractor {
	return &StructExtractor{types: types, details: details, aspects: aspects}
}

// Extract runs one pass over ctx's type: hierarchy validation, method-set
// partitioning, property resolution, aspect extraction and schema assembly.
// It returns nil when the type is not a target of this strategy. Problems
// found along the way accumulate on the context's diagnostics; the pass
// always completes and returns a (possibly degraded) schema.
func (e *StructExtractor) Extract(ctx *Context, store SchemaStore, cache SchemaCache) *Result {
	t := ctx.Type()
	if !e.details.IsTarget(t) {
		return nil
	}

	e.details.ValidateTypeHierarchy(ctx, t)

	properties := e.extractProperties(ctx, e.types.CandidateMethods(t.Name))
	var aspects []schema.Aspect
	if e.aspects != nil {
		aspects = e.aspects.ExtractAspects(ctx, properties)
	}

	result := &Result{
		Schema:   e.details.CreateSchema(ctx, properties, aspects, store),
		Children: make([]*Context, 0, len(properties)),
	}
	for _, property := range properties {
		result.Children = append(result.Children, e.propertyContext(ctx, property, cache))
	}
	return result
}

// extractProperties partitions the method-name multimap into properties.
// Names are visited in sorted order; that ordering determines diagnostic
// ordering and is relied upon by consumers.
func (e *StructExtractor) extractProperties(ctx *Context, methodsByName map[string][]jtype.Method) []*PropertyResult {
	names := make([]string, 0, len(methodsByName))
	for name := range methodsByName {
		names = append(names, name)
	}
	sort.Strings(names)

	owner := ctx.Type().Name
	var results []*PropertyResult
	handled := make(map[string]bool)
	skipped := make(map[string]bool)

	for _, name := range names {
		if skipped[name] {
			continue
		}
		methods := methodsByName[name]

		if overloads := jtype.Overloaded(methods); overloads != nil {
			e.details.HandleOverloadedMethods(ctx, overloads)
			continue
		}

		prefixLen := getterPrefixLength(name)
		if prefixLen < 0 {
			// Setters are only visited in response to a matched getter.
			continue
		}
		mostSpecific := e.types.MostSpecific(owner, methods)

		first, _ := utf8.DecodeRuneInString(name[prefixLen:])
		if !unicode.IsUpper(first) {
			ordinal := "4th"
			if prefixLen == 2 {
				ordinal = "3rd"
			}
			e.details.HandleInvalidGetter(ctx, mostSpecific,
				fmt.Sprintf("the %s character of the getter method name must be an uppercase character", ordinal))
			continue
		}

		capitalized := name[prefixLen:]
		propertyName := uncapitalize(capitalized)

		var setter *AccessorContext
		if setterMethods := methodsByName["set"+capitalized]; len(setterMethods) > 0 {
			setter = newAccessorContext(e.types, owner, setterMethods)
		}

		// A boolean "get" getter absorbs its "is" alias so both resolve to
		// one property. An overloaded alias set is a conflict, not a merge,
		// and so is a pair whose return types disagree: the pair is consumed
		// whole so no two descriptors can share a name.
		getterMethods := methods
		if prefixLen == 3 {
			isName := "is" + capitalized
			isMethods := methodsByName[isName]
			if overloads := jtype.Overloaded(isMethods); overloads != nil {
				if mostSpecific.Returns.IsBoolean() {
					e.details.HandleOverloadedMethods(ctx, overloads)
					continue
				}
				// The overloaded "is" group is reported when its own name
				// comes up; a non-boolean "get" getter resolves on its own.
			} else if len(isMethods) > 0 {
				isMostSpecific := e.types.MostSpecific(owner, isMethods)
				if !mostSpecific.Returns.IsBoolean() || !isMostSpecific.Returns.IsBoolean() {
					e.details.HandleInvalidGetter(ctx, mostSpecific, fmt.Sprintf(
						"the 'get' and 'is' getters of a property must both return boolean, not %s and %s",
						mostSpecific.Returns, isMostSpecific.Returns))
					skipped[isName] = true
					continue
				}
				getterMethods = make([]jtype.Method, 0, len(methods)+len(isMethods))
				getterMethods = append(getterMethods, methods...)
				getterMethods = append(getterMethods, isMethods...)
				skipped[isName] = true
			}
		}

		getter := newAccessorContext(e.types, owner, getterMethods)
		if result := e.resolveProperty(ctx, propertyName, getter, setter, prefixLen); result != nil {
			results = append(results, result)
			markHandled(handled, getter.Methods())
			if setter != nil {
				markHandled(handled, setter.Methods())
			}
		}
	}

	e.reportUnhandled(ctx, methodsByName, handled)
	return results
}

// resolveProperty validates the most specific getter, delegates state
// classification and setter validation to policy, and builds the descriptor.
// It returns nil when the getter shape is invalid; the property is dropped
// and extraction of the remaining properties continues.
func (e *StructExtractor) resolveProperty(ctx *Context, name string, getter, setter *AccessorContext, prefixLen int) *PropertyResult {
	mostSpecific := getter.MostSpecific()
	if len(mostSpecific.Parameters) != 0 {
		e.details.HandleInvalidGetter(ctx, mostSpecific, "getter methods cannot take parameters")
		return nil
	}
	if prefixLen == 2 && !mostSpecific.Returns.IsBoolean() {
		e.details.HandleInvalidGetter(ctx, mostSpecific, "getter method name must start with 'get'")
		return nil
	}

	state := e.details.DetermineStateManagementType(ctx, getter)

	writable := setter != nil
	if writable {
		e.details.ValidateSetter(ctx, mostSpecific.Returns, getter, setter)
	}

	property := schema.NewProperty(name, mostSpecific.Returns, state, writable, getter.DeclaringTypes(), mostSpecific)
	return &PropertyResult{Property: property, Getter: getter, Setter: setter}
}

// reportUnhandled hands every method not absorbed into an accessor group to
// policy, once, with the full set, so the strategy can decide in one pass
// whether leftovers are errors.
func (e *StructExtractor) reportUnhandled(ctx *Context, methodsByName map[string][]jtype.Method, handled map[string]bool) {
	var unhandled []jtype.Method
	for _, methods := range methodsByName {
		for _, m := range methods {
			if !handled[methodKey(m)] {
				unhandled = append(unhandled, m)
			}
		}
	}
	if len(unhandled) == 0 {
		return
	}
	sort.Slice(unhandled, func(i, j int) bool {
		return methodKey(unhandled[i]) < methodKey(unhandled[j])
	})
	e.details.HandleUnhandledMethods(ctx, unhandled)
}

func (e *StructExtractor) propertyContext(parent *Context, result *PropertyResult, cache SchemaCache) *Context {
	property := result.Property
	return parent.Child(
		property.Type,
		propertyDescription(parent, property),
		e.details.CreatePropertyValidator(result, cache),
	)
}

// propertyDescription names the child request after its owning property and,
// for diamond-inherited properties, after the sorted set of declaring types.
func propertyDescription(parent *Context, property *schema.Property) string {
	if len(property.DeclaredBy) == 1 && property.DeclaredBy[0] == parent.Type().Name {
		return fmt.Sprintf("property '%s'", property.Name)
	}
	return fmt.Sprintf("property '%s' declared by %s", property.Name, strings.Join(property.DeclaredBy, ", "))
}

func markHandled(handled map[string]bool, methods []jtype.Method) {
	for _, m := range methods {
		handled[methodKey(m)] = true
	}
}

func methodKey(m jtype.Method) string {
	return m.ErasedSignature() + "@" + m.DeclaredBy
}
