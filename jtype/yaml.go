package jtype

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a type-description document and returns a Registry of its
// declarations. The document shape is:
//
//	types:
//	  - name: com.example.Named
//	    kind: interface            # default
//	    annotations: [Managed]
//	    extends: [com.example.Base]
//	    methods:
//	      - name: getName
//	        returns: java.lang.String
//	      - name: setName
//	        params: [java.lang.String]
//
// Interface methods are abstract unless declared with "abstract: false"
// (a default method); class methods are concrete unless declared abstract.
// Source lines are preserved on declarations and methods for diagnostics.
func LoadYAML(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse type description: %w", err)
	}

	registry := NewRegistry()
	for _, dn := range doc.Types {
		decl, err := dn.toDecl()
		if err != nil {
			return nil, err
		}
		if err := registry.Add(decl); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func LoadYAMLFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type description: %w", err)
	}
	return LoadYAML(data)
}

type document struct {
	Types []*declNode `yaml:"types"`
}

type declNode struct {
	Name           string        `yaml:"name"`
	Kind           string        `yaml:"kind"`
	Extends        []string      `yaml:"extends"`
	Annotations    []string      `yaml:"annotations"`
	TypeParameters []string      `yaml:"typeParameters"`
	Methods        []*methodNode `yaml:"methods"`

	line int
}

func (d *declNode) UnmarshalYAML(value *yaml.Node) error {
	type plain declNode
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.line = value.Line
	return nil
}

func (d *declNode) toDecl() (*Decl, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("type declaration at line %d: missing name", d.line)
	}
	kind := KindInterface
	switch d.Kind {
	case "", string(KindInterface):
	case string(KindClass):
		kind = KindClass
	default:
		return nil, fmt.Errorf("type %s: unknown kind %q", d.Name, d.Kind)
	}

	decl := &Decl{
		Name:           d.Name,
		Kind:           kind,
		Extends:        d.Extends,
		Annotations:    d.Annotations,
		TypeParameters: d.TypeParameters,
		Line:           d.line,
	}
	for _, mn := range d.Methods {
		method, err := mn.toMethod(decl)
		if err != nil {
			return nil, err
		}
		decl.Methods = append(decl.Methods, method)
	}
	return decl, nil
}

type methodNode struct {
	Name        string   `yaml:"name"`
	Params      []string `yaml:"params"`
	Returns     string   `yaml:"returns"`
	Abstract    *bool    `yaml:"abstract"`
	Annotations []string `yaml:"annotations"`

	line int
}

func (m *methodNode) UnmarshalYAML(value *yaml.Node) error {
	type plain methodNode
	if err := value.Decode((*plain)(m)); err != nil {
		return err
	}
	m.line = value.Line
	return nil
}

func (m *methodNode) toMethod(decl *Decl) (Method, error) {
	if m.Name == "" {
		return Method{}, fmt.Errorf("type %s: method at line %d: missing name", decl.Name, m.line)
	}
	returns, err := Parse(m.Returns)
	if err != nil {
		return Method{}, fmt.Errorf("type %s: method %s: %w", decl.Name, m.Name, err)
	}
	params := make([]Type, len(m.Params))
	for i, p := range m.Params {
		params[i], err = Parse(p)
		if err != nil {
			return Method{}, fmt.Errorf("type %s: method %s: %w", decl.Name, m.Name, err)
		}
	}

	abstract := decl.Kind == KindInterface
	if m.Abstract != nil {
		abstract = *m.Abstract
	}
	return Method{
		Name:        m.Name,
		Parameters:  params,
		Returns:     returns,
		DeclaredBy:  decl.Name,
		IsAbstract:  abstract,
		Annotations: m.Annotations,
		Line:        m.line,
	}, nil
}
