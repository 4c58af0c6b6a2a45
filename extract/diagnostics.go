package extract

import "fmt"

type DiagnosticKind int

const (
	// InvalidAccessor flags a getter or setter whose shape violates the
	// accessor convention. The property is dropped (getter) or the report
	// left to policy (setter); extraction continues.
	InvalidAccessor DiagnosticKind = iota
	// OverloadConflict flags same-name methods that are not a valid override
	// chain. The name is excluded from property resolution.
	OverloadConflict
	// UnhandledMethods flags the methods left unclassified after
	// partitioning, reported once per type with the full set.
	UnhandledMethods
	// HierarchyViolation flags a problem with the type's inheritance shape,
	// reported by the strategy's hierarchy validator before partitioning.
	HierarchyViolation
)

func (k DiagnosticKind) String() string {
	switch k {
	case InvalidAccessor:
		return "invalid-accessor"
	case OverloadConflict:
		return "overload-conflict"
	case UnhandledMethods:
		return "unhandled-methods"
	case HierarchyViolation:
		return "hierarchy-violation"
	}
	return "unknown"
}

// Diagnostic is one accumulated finding. Diagnostics are values, never
// control flow: extraction always completes and returns everything it found.
type Diagnostic struct {
	Kind    DiagnosticKind
	Type    string
	Message string
	Line    int
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("[%s] %s: %s (line %d)", d.Kind, d.Type, d.Message, d.Line)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Type, d.Message)
}

// Diagnostics accumulates findings for one extraction pass. It is exclusively
// owned by that pass and shared by all child contexts spawned from it.
type Diagnostics struct {
	entries []Diagnostic
}

func (d *Diagnostics) Add(diag Diagnostic) {
	d.entries = append(d.entries, diag)
}

// All returns the accumulated diagnostics in report order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Diagnostics) Empty() bool {
	return len(d.entries) == 0
}

func (d *Diagnostics) Count() int {
	return len(d.entries)
}
