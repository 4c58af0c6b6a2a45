// Package lsp serves schema-extraction diagnostics over the Language Server
// Protocol: opening or editing a type-description document re-runs extraction
// for every target type and publishes the accumulated findings.
package lsp

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/john3300/modelschema/extract"
	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/managed"
	"github.com/john3300/modelschema/store"
)

const lsName = "modelschema"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[string]string
}

func NewServer(version string) *Server {
	s := &Server{
		version: version,
		docs:    make(map[string]string),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.setDoc(string(params.TextDocument.URI), params.TextDocument.Text)
	s.publish(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.setDoc(uri, whole.Text)
		}
	}
	s.publish(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.setDoc(string(params.TextDocument.URI), *params.Text)
	}
	s.publish(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, string(params.TextDocument.URI))
	s.mu.Unlock()
	return nil
}

func (s *Server) setDoc(uri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()
}

// publish re-extracts every target type in the document and pushes the
// resulting diagnostics to the client. An unparseable document yields a
// single error diagnostic instead.
func (s *Server) publish(ctx *glsp.Context, uri string) {
	s.mu.Lock()
	text, ok := s.docs[uri]
	s.mu.Unlock()
	if !ok {
		return
	}

	diagnostics := analyze(text)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func analyze(text string) []protocol.Diagnostic {
	registry, err := jtype.LoadYAML([]byte(text))
	if err != nil {
		return []protocol.Diagnostic{errorDiagnostic(err.Error())}
	}

	st, err := store.New(managed.NewExtractor(registry))
	if err != nil {
		return []protocol.Diagnostic{errorDiagnostic(err.Error())}
	}

	diagnostics := []protocol.Diagnostic{}
	seen := make(map[string]bool)
	for _, decl := range registry.Decls() {
		if !decl.HasAnnotation(managed.AnnotationManaged) {
			continue
		}
		_, found, err := st.Schema(jtype.Named(decl.Name))
		if err != nil {
			diagnostics = append(diagnostics, errorDiagnostic(err.Error()))
			continue
		}
		for _, d := range found {
			if seen[d.String()] {
				continue
			}
			seen[d.String()] = true
			diagnostics = append(diagnostics, toProtocol(d))
		}
	}
	return diagnostics
}

func toProtocol(d extract.Diagnostic) protocol.Diagnostic {
	line := uint32(0)
	if d.Line > 0 {
		line = uint32(d.Line - 1)
	}
	severity := protocol.DiagnosticSeverityWarning
	if d.Kind == extract.OverloadConflict || d.Kind == extract.HierarchyViolation {
		severity = protocol.DiagnosticSeverityError
	}
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line, Character: 0},
		},
		Severity: &severity,
		Source:   &source,
		Message:  d.Type + ": " + d.Message,
	}
}

func errorDiagnostic(message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 0},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	kind := protocol.TextDocumentSyncKind(i)
	return &kind
}
