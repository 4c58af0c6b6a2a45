package managed

import (
	"strings"
	"testing"

	"github.com/john3300/modelschema/extract"
	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/schema"
)

const doc = `
types:
  - name: com.example.Person
    annotations: [Managed]
    methods:
      - name: getName
        returns: java.lang.String
      - name: setName
        params: [java.lang.String]
      - name: getDisplayName
        returns: java.lang.String
        abstract: false
      - name: getTag
        returns: java.lang.String
        annotations: [Unmanaged]
  - name: com.example.Plain
    methods:
      - name: getName
        returns: java.lang.String
`

func load(t *testing.T, text string) *jtype.Registry {
	t.Helper()
	r, err := jtype.LoadYAML([]byte(text))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	return r
}

func extractType(t *testing.T, registry *jtype.Registry, name string) (*extract.Result, *extract.Context) {
	t.Helper()
	extractor := NewExtractor(registry)
	ctx := extract.NewContext(jtype.Named(name))
	return extractor.Extract(ctx, nil, nil), ctx
}

func TestIsTarget(t *testing.T) {
	registry := load(t, doc)
	extractor := NewExtractor(registry)

	if result := extractor.Extract(extract.NewContext(jtype.Named("com.example.Plain")), nil, nil); result != nil {
		t.Error("Extract(Plain) != nil, want nil for unannotated type")
	}
	if result := extractor.Extract(extract.NewContext(jtype.Named("com.example.Unknown")), nil, nil); result != nil {
		t.Error("Extract(Unknown) != nil, want nil for undeclared type")
	}
	if result := extractor.Extract(extract.NewContext(jtype.Named("com.example.Person")), nil, nil); result == nil {
		t.Error("Extract(Person) = nil, want result for managed type")
	}
}

func TestStateManagementClassification(t *testing.T) {
	registry := load(t, doc)
	result, _ := extractType(t, registry, "com.example.Person")

	tests := []struct {
		property string
		want     schema.StateManagementType
	}{
		{"name", schema.Declared},
		{"displayName", schema.Delegated},
		{"tag", schema.Unmanaged},
	}
	for _, tt := range tests {
		p := result.Schema.Property(tt.property)
		if p == nil {
			t.Errorf("Property(%q) = nil", tt.property)
			continue
		}
		if p.StateManagement != tt.want {
			t.Errorf("Property(%q).StateManagement = %s, want %s", tt.property, p.StateManagement, tt.want)
		}
	}
}

func TestUnmanagedAspect(t *testing.T) {
	registry := load(t, doc)
	result, _ := extractType(t, registry, "com.example.Person")

	aspect := result.Schema.Aspect("unmanaged")
	if aspect == nil {
		t.Fatal("Aspect(unmanaged) = nil, want aspect")
	}
	ua := aspect.(*UnmanagedAspect)
	if len(ua.Properties) != 1 || ua.Properties[0] != "tag" {
		t.Errorf("UnmanagedAspect.Properties = %v, want [tag]", ua.Properties)
	}

	t.Run("absent without unmanaged properties", func(t *testing.T) {
		registry := load(t, `
types:
  - name: com.example.Named
    annotations: [Managed]
    methods:
      - name: getName
        returns: java.lang.String
`)
		result, _ := extractType(t, registry, "com.example.Named")
		if len(result.Schema.Aspects) != 0 {
			t.Errorf("Aspects = %v, want none", result.Schema.Aspects)
		}
	})
}

func TestSetterValidation(t *testing.T) {
	tests := []struct {
		name   string
		method string
		want   string
	}{
		{
			"non void return",
			"- name: setName\n        params: [java.lang.String]\n        returns: java.lang.String",
			"setter method must have void return type",
		},
		{
			"wrong arity",
			"- name: setName\n        params: [java.lang.String, int]",
			"setter method must take exactly one parameter",
		},
		{
			"parameter type mismatch",
			"- name: setName\n        params: [int]",
			"setter parameter type must match getter return type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := load(t, `
types:
  - name: com.example.Person
    annotations: [Managed]
    methods:
      - name: getName
        returns: java.lang.String
      `+tt.method+`
`)
			result, ctx := extractType(t, registry, "com.example.Person")
			diags := ctx.Diagnostics().All()
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %v, want exactly 1", diags)
			}
			if diags[0].Kind != extract.InvalidAccessor {
				t.Errorf("Kind = %s, want invalid-accessor", diags[0].Kind)
			}
			if !strings.Contains(diags[0].Message, tt.want) {
				t.Errorf("Message = %q, want it to contain %q", diags[0].Message, tt.want)
			}
			// Report-only policy: the property stays writable.
			if p := result.Schema.Property("name"); p == nil || !p.Writable {
				t.Error("property 'name' not writable, want writable despite setter diagnostic")
			}
		})
	}
}

func TestHierarchyValidation(t *testing.T) {
	t.Run("managed class reported", func(t *testing.T) {
		registry := load(t, `
types:
  - name: com.example.Impl
    kind: class
    annotations: [Managed]
    methods:
      - name: getName
        returns: java.lang.String
        abstract: true
`)
		result, ctx := extractType(t, registry, "com.example.Impl")
		if result == nil {
			t.Fatal("Extract() = nil, want degraded result with diagnostics")
		}
		diags := ctx.Diagnostics().All()
		if len(diags) == 0 {
			t.Fatal("diagnostics empty, want hierarchy violation")
		}
		if diags[0].Kind != extract.HierarchyViolation {
			t.Errorf("Kind = %s, want hierarchy-violation", diags[0].Kind)
		}
		// Extraction continues past the violation.
		if p := result.Schema.Property("name"); p == nil {
			t.Error("Property(name) = nil, want extraction to continue")
		}
	})

	t.Run("extending a class reported", func(t *testing.T) {
		registry := load(t, `
types:
  - name: com.example.Base
    kind: class
  - name: com.example.Sub
    annotations: [Managed]
    extends: [com.example.Base]
`)
		_, ctx := extractType(t, registry, "com.example.Sub")
		diags := ctx.Diagnostics().All()
		if len(diags) != 1 || diags[0].Kind != extract.HierarchyViolation {
			t.Fatalf("diagnostics = %v, want one hierarchy violation", diags)
		}
		if !strings.Contains(diags[0].Message, "com.example.Base") {
			t.Errorf("Message = %q, want it to name the class", diags[0].Message)
		}
	})

	t.Run("parameterized managed type reported", func(t *testing.T) {
		registry := load(t, `
types:
  - name: com.example.Box
    annotations: [Managed]
    typeParameters: [T]
`)
		_, ctx := extractType(t, registry, "com.example.Box")
		diags := ctx.Diagnostics().All()
		if len(diags) != 1 || diags[0].Kind != extract.HierarchyViolation {
			t.Fatalf("diagnostics = %v, want one hierarchy violation", diags)
		}
	})
}

func TestUnhandledAbstractMethods(t *testing.T) {
	registry := load(t, `
types:
  - name: com.example.Actions
    annotations: [Managed]
    methods:
      - name: launch
      - name: stop
      - name: describe
        returns: java.lang.String
        abstract: false
`)
	_, ctx := extractType(t, registry, "com.example.Actions")
	diags := ctx.Diagnostics().All()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one unhandled-methods report", diags)
	}
	d := diags[0]
	if d.Kind != extract.UnhandledMethods {
		t.Errorf("Kind = %s, want unhandled-methods", d.Kind)
	}
	if !strings.Contains(d.Message, "launch") || !strings.Contains(d.Message, "stop") {
		t.Errorf("Message = %q, want it to list launch and stop", d.Message)
	}
	if strings.Contains(d.Message, "describe") {
		t.Errorf("Message = %q, default method describe should be benign", d.Message)
	}
}

func TestPropertyValidator(t *testing.T) {
	registry := load(t, `
types:
  - name: com.example.Person
    annotations: [Managed]
    methods:
      - name: getAddress
        returns: com.example.Address
      - name: getName
        returns: java.lang.String
`)
	result, ctx := extractType(t, registry, "com.example.Person")

	t.Run("declared property of unmanageable type reported", func(t *testing.T) {
		for _, child := range result.Children {
			child.Validate(nil)
		}
		diags := ctx.Diagnostics().All()
		if len(diags) != 1 {
			t.Fatalf("diagnostics = %v, want 1", diags)
		}
		if !strings.Contains(diags[0].Message, "com.example.Address") {
			t.Errorf("Message = %q, want it to name the type", diags[0].Message)
		}
		if !strings.Contains(diags[0].Message, "property 'address'") {
			t.Errorf("Message = %q, want it to name the property path", diags[0].Message)
		}
	})
}

func TestIsScalar(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"int", true},
		{"boolean", true},
		{"java.lang.String", true},
		{"java.lang.Integer", true},
		{"java.math.BigDecimal", true},
		{"com.example.Address", false},
		{"int[]", false},
		{"java.util.List<java.lang.String>", false},
	}
	for _, tt := range tests {
		if got := IsScalar(jtype.MustParse(tt.in)); got != tt.want {
			t.Errorf("IsScalar(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
