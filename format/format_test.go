package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/managed"
	"github.com/john3300/modelschema/schema"
)

func sampleSchema() *schema.Schema {
	str := jtype.Named("java.lang.String")
	getName := jtype.Method{Name: "getName", Returns: str, DeclaredBy: "com.example.Named", IsAbstract: true}
	getTag := jtype.Method{Name: "getTag", Returns: str, DeclaredBy: "com.example.Base", IsAbstract: true}
	return schema.New(
		jtype.Named("com.example.Named"),
		[]*schema.Property{
			schema.NewProperty("tag", str, schema.Unmanaged, false, []string{"com.example.Base", "com.example.Other"}, getTag),
			schema.NewProperty("name", str, schema.Declared, true, []string{"com.example.Named"}, getName),
		},
		[]schema.Aspect{&managed.UnmanagedAspect{Properties: []string{"tag"}}},
	)
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(sampleSchema()); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded struct {
		Type       string `json:"type"`
		Properties []struct {
			Name            string   `json:"name"`
			Type            string   `json:"type"`
			Writable        bool     `json:"writable"`
			StateManagement string   `json:"stateManagement"`
			DeclaredBy      []string `json:"declaredBy"`
		} `json:"properties"`
		Aspects []struct {
			Name       string   `json:"name"`
			Properties []string `json:"properties"`
		} `json:"aspects"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Type != "com.example.Named" {
		t.Errorf("type = %q, want %q", decoded.Type, "com.example.Named")
	}
	if len(decoded.Properties) != 2 {
		t.Fatalf("properties = %d, want 2", len(decoded.Properties))
	}
	if decoded.Properties[0].Name != "name" || decoded.Properties[1].Name != "tag" {
		t.Errorf("property order = [%s, %s], want alphabetical [name, tag]",
			decoded.Properties[0].Name, decoded.Properties[1].Name)
	}
	if !decoded.Properties[0].Writable {
		t.Error("name.writable = false, want true")
	}
	if decoded.Properties[1].StateManagement != "unmanaged" {
		t.Errorf("tag.stateManagement = %q, want %q", decoded.Properties[1].StateManagement, "unmanaged")
	}
	if len(decoded.Aspects) != 1 || decoded.Aspects[0].Name != "unmanaged" {
		t.Errorf("aspects = %v, want the unmanaged aspect", decoded.Aspects)
	}
}

func TestTextEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextEncoder(&buf).Encode(sampleSchema()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"com.example.Named\n",
		"name: java.lang.String (declared, read-write)",
		"tag: java.lang.String (unmanaged, read-only) declared by com.example.Base, com.example.Other",
		"aspect unmanaged",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	t.Run("properties listed alphabetically", func(t *testing.T) {
		if strings.Index(out, "name:") > strings.Index(out, "tag:") {
			t.Errorf("name listed after tag:\n%s", out)
		}
	})
}
