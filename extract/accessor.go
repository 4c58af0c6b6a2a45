package extract

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/john3300/modelschema/jtype"
)

// getterPrefixLength classifies a method name: 3 for a "get" getter, 2 for an
// "is" getter, -1 for anything else. The bare names "get" and "is" are not
// accessors since no property name remains after the prefix.
func getterPrefixLength(name string) int {
	if len(name) > 3 && name[:3] == "get" {
		return 3
	}
	if len(name) > 2 && name[:2] == "is" {
		return 2
	}
	return -1
}

func uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// AccessorContext groups every declaration of one logical accessor across a
// type's hierarchy: covariant overrides of a getter, or of a setter. The
// most specific member is the declaration by the most derived type.
type AccessorContext struct {
	methods      []jtype.Method
	mostSpecific jtype.Method
}

func newAccessorContext(types TypeSystem, owner string, methods []jtype.Method) *AccessorContext {
	return &AccessorContext{
		methods:      methods,
		mostSpecific: types.MostSpecific(owner, methods),
	}
}

// Methods returns every declaration in the group.
func (a *AccessorContext) Methods() []jtype.Method {
	return a.methods
}

func (a *AccessorContext) MostSpecific() jtype.Method {
	return a.mostSpecific
}

// DeclaringTypes returns the sorted, deduplicated set of types declaring any
// member of the group.
func (a *AccessorContext) DeclaringTypes() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range a.methods {
		if !seen[m.DeclaredBy] {
			seen[m.DeclaredBy] = true
			names = append(names, m.DeclaredBy)
		}
	}
	sort.Strings(names)
	return names
}
