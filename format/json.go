package format

import (
	"encoding/json"
	"io"

	"github.com/john3300/modelschema/managed"
	"github.com/john3300/modelschema/schema"
)

type JSONEncoder struct {
	w      io.Writer
	schema *schema.Schema
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(s *schema.Schema) error {
	e.schema = s
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildSchemaData(e.schema), "", "  ")
}

type jsonSchema struct {
	Type       string         `json:"type"`
	Properties []jsonProperty `json:"properties"`
	Aspects    []jsonAspect   `json:"aspects,omitempty"`
}

type jsonProperty struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Writable        bool     `json:"writable"`
	StateManagement string   `json:"stateManagement"`
	DeclaredBy      []string `json:"declaredBy"`
}

type jsonAspect struct {
	Name       string   `json:"name"`
	Properties []string `json:"properties,omitempty"`
}

func buildSchemaData(s *schema.Schema) jsonSchema {
	data := jsonSchema{
		Type:       s.Type.String(),
		Properties: make([]jsonProperty, len(s.Properties)),
	}
	for i, p := range s.Properties {
		data.Properties[i] = jsonProperty{
			Name:            p.Name,
			Type:            p.Type.String(),
			Writable:        p.Writable,
			StateManagement: p.StateManagement.String(),
			DeclaredBy:      p.DeclaredBy,
		}
	}
	for _, a := range s.Aspects {
		ja := jsonAspect{Name: a.AspectName()}
		if ua, ok := a.(*managed.UnmanagedAspect); ok {
			ja.Properties = ua.Properties
		}
		data.Aspects = append(data.Aspects, ja)
	}
	return data
}
