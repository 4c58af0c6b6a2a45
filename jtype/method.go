package jtype

import "strings"

// Method describes one declared method. Descriptors are read-only input to
// schema extraction; the engine never mutates them.
type Method struct {
	Name        string
	Parameters  []Type
	Returns     Type
	DeclaredBy  string
	IsAbstract  bool
	Annotations []string

	// Line is the position in the type-description document the method was
	// loaded from, zero when declared programmatically.
	Line int
}

func (m Method) HasAnnotation(name string) bool {
	for _, a := range m.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

// ErasedSignature identifies the method across a hierarchy: covariant
// overrides of one logical method share it, overloads do not.
func (m Method) ErasedSignature() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteString("(")
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(p.Erased().String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (m Method) String() string {
	var sb strings.Builder
	sb.WriteString(m.Returns.String())
	sb.WriteString(" ")
	sb.WriteString(m.DeclaredBy)
	sb.WriteString("#")
	sb.WriteString(m.Name)
	sb.WriteString("(")
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	return sb.String()
}
