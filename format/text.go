package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/john3300/modelschema/schema"
)

// TextEncoder writes a compact human-readable schema listing:
//
//	com.example.Named
//	  name: java.lang.String (declared, read-write)
type TextEncoder struct {
	w      io.Writer
	schema *schema.Schema
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(s *schema.Schema) error {
	e.schema = s
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", e.schema.Type)
	for _, p := range e.schema.Properties {
		access := "read-only"
		if p.Writable {
			access = "read-write"
		}
		fmt.Fprintf(&buf, "  %s: %s (%s, %s)", p.Name, p.Type, p.StateManagement, access)
		if len(p.DeclaredBy) > 1 {
			fmt.Fprintf(&buf, " declared by %s", strings.Join(p.DeclaredBy, ", "))
		}
		fmt.Fprintln(&buf)
	}
	for _, a := range e.schema.Aspects {
		fmt.Fprintf(&buf, "  aspect %s\n", a.AspectName())
	}
	return buf.Bytes(), nil
}
