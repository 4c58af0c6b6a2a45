package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestAnalyze(t *testing.T) {
	t.Run("unparseable document yields one error", func(t *testing.T) {
		diags := analyze("types: [")
		if len(diags) != 1 {
			t.Fatalf("diagnostics = %d, want 1", len(diags))
		}
		if *diags[0].Severity != protocol.DiagnosticSeverityError {
			t.Errorf("severity = %v, want error", *diags[0].Severity)
		}
	})

	t.Run("clean document yields no diagnostics", func(t *testing.T) {
		diags := analyze(`
types:
  - name: com.example.Named
    annotations: [Managed]
    methods:
      - name: getName
        returns: java.lang.String
`)
		if len(diags) != 0 {
			t.Errorf("diagnostics = %v, want none", diags)
		}
	})

	t.Run("invalid getter positioned at its source line", func(t *testing.T) {
		doc := `types:
  - name: com.example.Bad
    annotations: [Managed]
    methods:
      - name: isName
        returns: java.lang.String
`
		diags := analyze(doc)
		if len(diags) != 1 {
			t.Fatalf("diagnostics = %d, want 1", len(diags))
		}
		d := diags[0]
		if !strings.Contains(d.Message, "com.example.Bad") {
			t.Errorf("Message = %q, want it to name the type", d.Message)
		}
		// isName is declared on line 5 of the document, zero-based 4.
		if d.Range.Start.Line != 4 {
			t.Errorf("Line = %d, want 4", d.Range.Start.Line)
		}
	})
}
