package jtype

type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
)

// Decl is one declared type: its kind, supertypes, marker annotations and
// declared methods. Decls are registered with a Registry, which resolves the
// inherited method surface.
type Decl struct {
	Name           string
	Kind           Kind
	Extends        []string
	Annotations    []string
	TypeParameters []string
	Methods        []Method
	Line           int
}

func (d *Decl) HasAnnotation(name string) bool {
	for _, a := range d.Annotations {
		if a == name {
			return true
		}
	}
	return false
}
