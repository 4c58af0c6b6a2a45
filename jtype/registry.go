package jtype

import (
	"fmt"
	"sort"
)

// Registry holds the known type declarations and answers the introspection
// questions schema extraction needs: the full inherited method surface of a
// type, and which declaration of a method is the most specific one.
type Registry struct {
	decls map[string]*Decl
}

func NewRegistry() *Registry {
	return &Registry{decls: make(map[string]*Decl)}
}

// Add registers a declaration. Redeclaring a name is an error.
func (r *Registry) Add(d *Decl) error {
	if d.Name == "" {
		return fmt.Errorf("add declaration: empty type name")
	}
	if _, ok := r.decls[d.Name]; ok {
		return fmt.Errorf("add declaration: %s is already declared", d.Name)
	}
	r.decls[d.Name] = d
	return nil
}

// Lookup returns the declaration for name, or nil when the type is not known
// to this registry (external and primitive types are never registered).
func (r *Registry) Lookup(name string) *Decl {
	return r.decls[name]
}

// Decls returns all registered declarations sorted by name.
func (r *Registry) Decls() []*Decl {
	names := make([]string, 0, len(r.decls))
	for name := range r.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	decls := make([]*Decl, len(names))
	for i, name := range names {
		decls[i] = r.decls[name]
	}
	return decls
}

// CandidateMethods collects every method visible on the named type, including
// inherited declarations, grouped by method name. Declarations are
// deduplicated by (erased signature, declaring type): a signature declared by
// two unrelated supertypes keeps both descriptors, which is how diamond
// provenance survives into property resolution.
func (r *Registry) CandidateMethods(name string) map[string][]Method {
	byName := make(map[string][]Method)
	seen := make(map[string]bool)
	for _, declName := range r.linearize(name) {
		decl := r.decls[declName]
		for _, m := range decl.Methods {
			m.DeclaredBy = decl.Name
			key := m.ErasedSignature() + "@" + decl.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			byName[m.Name] = append(byName[m.Name], m)
		}
	}
	return byName
}

// MostSpecific selects the declaration with the most derived declaring type,
// measured as hierarchy distance from owner. Ties are not expected in a
// well-formed hierarchy; the lexicographically smaller declaring type wins so
// the choice stays deterministic.
func (r *Registry) MostSpecific(owner string, methods []Method) Method {
	depth := r.depths(owner)
	best := methods[0]
	bestDepth := declDepth(depth, best.DeclaredBy)
	for _, m := range methods[1:] {
		d := declDepth(depth, m.DeclaredBy)
		if d < bestDepth || (d == bestDepth && m.DeclaredBy < best.DeclaredBy) {
			best = m
			bestDepth = d
		}
	}
	return best
}

func declDepth(depth map[string]int, name string) int {
	if d, ok := depth[name]; ok {
		return d
	}
	return int(^uint(0) >> 1)
}

// linearize returns owner and all reachable supertypes in breadth-first
// order, each visited once.
func (r *Registry) linearize(name string) []string {
	var order []string
	visited := make(map[string]bool)
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		decl, ok := r.decls[current]
		if !ok {
			continue
		}
		order = append(order, current)
		queue = append(queue, decl.Extends...)
	}
	return order
}

func (r *Registry) depths(name string) map[string]int {
	depth := make(map[string]int)
	queue := []string{name}
	depth[name] = 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		decl, ok := r.decls[current]
		if !ok {
			continue
		}
		for _, super := range decl.Extends {
			if _, ok := depth[super]; ok {
				continue
			}
			depth[super] = depth[current] + 1
			queue = append(queue, super)
		}
	}
	return depth
}

// Overloaded reports whether a same-name method set contains true overloads:
// two or more distinct erased parameter lists. Covariant return differences
// are an override chain, not an overload. It returns the full set when
// overloaded and nil otherwise.
func Overloaded(methods []Method) []Method {
	if len(methods) < 2 {
		return nil
	}
	signatures := make(map[string]bool)
	for _, m := range methods {
		signatures[m.ErasedSignature()] = true
	}
	if len(signatures) < 2 {
		return nil
	}
	overloads := make([]Method, len(methods))
	copy(overloads, methods)
	sort.Slice(overloads, func(i, j int) bool {
		if overloads[i].ErasedSignature() != overloads[j].ErasedSignature() {
			return overloads[i].ErasedSignature() < overloads[j].ErasedSignature()
		}
		return overloads[i].DeclaredBy < overloads[j].DeclaredBy
	})
	return overloads
}
