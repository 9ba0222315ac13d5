package lsp

import (
	"context"
	"path/filepath"
	"sync"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	amber "github.com/amberlang/amber-ls"
)

// Server implements the LSP server interface for Amber, grounded on this
// module's teacher's own lsp.Server (lsp/server.go): a document cache plus
// the handful of request/notification handlers this module actually
// implements. Stub methods for the rest of the protocol.Server interface
// live in stubs.go.
type Server struct {
	client protocol.Client
	logger *zap.Logger

	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*Document

	config        *amber.Config // nil if no .amberls.yaml was found
	workspaceRoot string

	initialized bool
	shutdown    bool
}

// Document is an open document tracked by the server.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Content string
	Dialect amber.Dialect
	Response amber.ParserResponse
}

// NewServer creates a new Amber LSP server.
func NewServer(client protocol.Client, logger *zap.Logger) *Server {
	return &Server{
		client:    client,
		logger:    logger,
		documents: make(map[protocol.DocumentURI]*Document),
	}
}

// Initialize handles the initialize request.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("initialize")

	if params.RootURI != "" {
		s.workspaceRoot = URIToPath(params.RootURI)
	} else if params.RootPath != "" {
		s.workspaceRoot = params.RootPath
	}

	if s.workspaceRoot != "" {
		if cfg, err := amber.LoadConfig(s.workspaceRoot); err == nil {
			s.config = cfg
		} else {
			s.logger.Info("no workspace config found", zap.String("root", s.workspaceRoot), zap.Error(err))
		}
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: false},
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: []string{},
				},
				Full: true,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "amberls",
			Version: "0.1.0",
		},
	}, nil
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	s.initialized = true

	return nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) error {
	s.shutdown = true

	return nil
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) error {
	return nil
}

// dialectFor resolves the dialect a given document should parse with: the
// workspace config's glob-matched dialect for its path, or the newest
// dialect if no config was loaded (config.go's ResolveDialect already
// handles "auto" and unrecognised names).
func (s *Server) dialectFor(uri protocol.DocumentURI) amber.Dialect {
	if s.config == nil {
		return amber.Alpha040
	}

	path := URIToPath(uri)
	if s.workspaceRoot != "" {
		if rel, err := filepath.Rel(s.workspaceRoot, path); err == nil {
			path = rel
		}
	}

	return s.config.ResolveDialect(path)
}

func (s *Server) analyze(uri protocol.DocumentURI, version int32, content string) *Document {
	dialect := s.dialectFor(uri)

	return &Document{
		URI:      uri,
		Version:  version,
		Content:  content,
		Dialect:  dialect,
		Response: amber.Parse(content, dialect),
	}
}

// DidOpen handles textDocument/didOpen.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.analyze(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidChange handles textDocument/didChange (full sync only).
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.analyze(params.TextDocument.URI, params.TextDocument.Version, content)

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidClose handles textDocument/didClose.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	if err != nil {
		s.logger.Error("failed to clear diagnostics", zap.Error(err))
	}

	return nil
}

// DidSave handles textDocument/didSave. Amber has no build step to trigger,
// so there is nothing beyond what DidChange already did.
func (s *Server) DidSave(_ context.Context, _ *protocol.DidSaveTextDocumentParams) error {
	return nil
}

func (s *Server) getDocument(uri protocol.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]

	return doc, ok
}
