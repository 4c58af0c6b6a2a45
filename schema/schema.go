// Package schema defines the artifact produced by structural extraction: the
// set of named, typed properties a declared type exposes, plus cross-cutting
// aspects derived from that set.
package schema

import (
	"fmt"
	"sort"

	"github.com/john3300/modelschema/jtype"
)

// StateManagementType classifies how a property's value is owned. The
// concrete assignment is policy supplied by the extraction strategy, not by
// the engine.
type StateManagementType int

const (
	// Unmanaged values are owned by user code; the model only observes them.
	Unmanaged StateManagementType = iota
	// Delegated values are produced by a default implementation.
	Delegated
	// Declared values are owned and stored by the model itself.
	Declared
)

func (s StateManagementType) String() string {
	switch s {
	case Unmanaged:
		return "unmanaged"
	case Delegated:
		return "delegated"
	case Declared:
		return "declared"
	}
	return "unknown"
}

// Property is one resolved property. Treat it as read-only once created: it
// is owned by its Schema and shared with extraction contexts.
type Property struct {
	Name            string
	Type            jtype.Type
	Writable        bool
	StateManagement StateManagementType
	// DeclaredBy lists the types declaring the property's getter, sorted and
	// deduplicated. It has more than one entry for diamond-inherited
	// properties and is never empty.
	DeclaredBy []string
	// Getter is the most specific declaration of the property's getter.
	Getter jtype.Method
}

func NewProperty(name string, typ jtype.Type, state StateManagementType, writable bool, declaredBy []string, getter jtype.Method) *Property {
	owners := make([]string, 0, len(declaredBy))
	seen := make(map[string]bool)
	for _, d := range declaredBy {
		if !seen[d] {
			seen[d] = true
			owners = append(owners, d)
		}
	}
	sort.Strings(owners)
	return &Property{
		Name:            name,
		Type:            typ,
		Writable:        writable,
		StateManagement: state,
		DeclaredBy:      owners,
		Getter:          getter,
	}
}

// Aspect is a cross-cutting facet derived from a schema's whole property set.
// Concrete aspects are supplied by the extraction strategy's aspect extractor.
type Aspect interface {
	AspectName() string
}

// Schema is the finished artifact for one declared type. Properties are
// sorted alphabetically by name and names are unique within one schema.
type Schema struct {
	Type       jtype.Type
	Properties []*Property
	Aspects    []Aspect
}

// New assembles the schema from resolved properties. Extraction consumes
// conflicting accessor groups before assembly, so two properties sharing a
// name is a programming error and panics.
func New(typ jtype.Type, properties []*Property, aspects []Aspect) *Schema {
	sorted := make([]*Property, len(properties))
	copy(sorted, properties)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Name == sorted[i-1].Name {
			panic(fmt.Sprintf("schema for %s: duplicate property %q", typ, sorted[i].Name))
		}
	}
	return &Schema{Type: typ, Properties: sorted, Aspects: aspects}
}

// Property returns the named property, or nil.
func (s *Schema) Property(name string) *Property {
	for _, p := range s.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Aspect returns the named aspect, or nil.
func (s *Schema) Aspect(name string) Aspect {
	for _, a := range s.Aspects {
		if a.AspectName() == name {
			return a
		}
	}
	return nil
}
