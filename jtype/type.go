package jtype

import (
	"fmt"
	"strings"
)

// Type identifies a declared type: its fully qualified name, its generic
// arguments and its array depth. Two Types are the same declared type iff
// their String() forms are equal.
type Type struct {
	Name       string
	Arguments  []Type
	ArrayDepth int
}

func Named(name string) Type {
	return Type{Name: name}
}

func Parameterized(name string, arguments ...Type) Type {
	return Type{Name: name, Arguments: arguments}
}

func (t Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Arguments) > 0 {
		sb.WriteString("<")
		for i, arg := range t.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString(">")
	}
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t Type) IsPrimitive() bool {
	if t.ArrayDepth > 0 || len(t.Arguments) > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

// IsBoolean reports whether t is the primitive boolean type.
func (t Type) IsBoolean() bool {
	return t.Name == "boolean" && t.ArrayDepth == 0 && len(t.Arguments) == 0
}

func (t Type) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

func (t Type) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t Type) ElementType() Type {
	if t.ArrayDepth == 0 {
		return t
	}
	return Type{Name: t.Name, Arguments: t.Arguments, ArrayDepth: t.ArrayDepth - 1}
}

func (t Type) Equal(other Type) bool {
	return t.String() == other.String()
}

// Erased returns the type without generic arguments, the identity used when
// comparing method signatures across a hierarchy.
func (t Type) Erased() Type {
	return Type{Name: t.Name, ArrayDepth: t.ArrayDepth}
}

// Parse reads a source-style type reference such as
// "java.util.Map<java.lang.String, int[]>". The empty string parses as void.
func Parse(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{Name: "void"}, nil
	}
	t, rest, err := parseType(s)
	if err != nil {
		return Type{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return Type{}, fmt.Errorf("parse type %q: unexpected trailing %q", s, rest)
	}
	return t, nil
}

// MustParse is Parse for statically known references, mainly in tests.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseType(s string) (Type, string, error) {
	i := 0
	for i < len(s) && s[i] != '<' && s[i] != '>' && s[i] != ',' && s[i] != '[' {
		i++
	}
	name := strings.TrimSpace(s[:i])
	if name == "" {
		return Type{}, "", fmt.Errorf("parse type: missing type name in %q", s)
	}
	t := Type{Name: name}
	rest := s[i:]

	if strings.HasPrefix(rest, "<") {
		rest = rest[1:]
		for {
			arg, r, err := parseType(rest)
			if err != nil {
				return Type{}, "", err
			}
			t.Arguments = append(t.Arguments, arg)
			rest = strings.TrimSpace(r)
			if strings.HasPrefix(rest, ",") {
				rest = strings.TrimSpace(rest[1:])
				continue
			}
			if strings.HasPrefix(rest, ">") {
				rest = rest[1:]
				break
			}
			return Type{}, "", fmt.Errorf("parse type: unterminated type arguments in %q", s)
		}
	}

	for strings.HasPrefix(rest, "[]") {
		t.ArrayDepth++
		rest = rest[2:]
	}
	return t, rest, nil
}
