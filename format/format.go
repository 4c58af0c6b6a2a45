// Package format renders extracted schemas for human or machine consumption.
package format

import (
	"encoding"

	"github.com/john3300/modelschema/schema"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(s *schema.Schema) error
}
