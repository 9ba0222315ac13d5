package lsp_test

import (
	"context"
	"testing"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	amber "github.com/amberlang/amber-ls"
	"github.com/amberlang/amber-ls/lsp"
)

// mockClient implements protocol.Client for testing, grounded on this
// module's teacher's own lsp/server_test.go mockClient.
type mockClient struct {
	diagnostics []protocol.PublishDiagnosticsParams
}

func (m *mockClient) PublishDiagnostics(_ context.Context, params *protocol.PublishDiagnosticsParams) error {
	m.diagnostics = append(m.diagnostics, *params)

	return nil
}

func (m *mockClient) Progress(context.Context, *protocol.ProgressParams) error { return nil }
func (m *mockClient) WorkDoneProgressCreate(context.Context, *protocol.WorkDoneProgressCreateParams) error {
	return nil
}
func (m *mockClient) ShowMessage(context.Context, *protocol.ShowMessageParams) error { return nil }
func (m *mockClient) ShowMessageRequest(
	context.Context, *protocol.ShowMessageRequestParams,
) (*protocol.MessageActionItem, error) {
	return nil, nil //nolint:nilnil // mock stub
}
func (m *mockClient) LogMessage(context.Context, *protocol.LogMessageParams) error { return nil }
func (m *mockClient) Telemetry(context.Context, any) error                        { return nil }
func (m *mockClient) RegisterCapability(context.Context, *protocol.RegistrationParams) error {
	return nil
}
func (m *mockClient) UnregisterCapability(context.Context, *protocol.UnregistrationParams) error {
	return nil
}
func (m *mockClient) ApplyEdit(context.Context, *protocol.ApplyWorkspaceEditParams) (bool, error) {
	return false, nil
}
func (m *mockClient) Configuration(context.Context, *protocol.ConfigurationParams) ([]any, error) {
	return nil, nil
}
func (m *mockClient) WorkspaceFolders(context.Context) ([]protocol.WorkspaceFolder, error) {
	return nil, nil
}

func newTestServer(t *testing.T) (*lsp.Server, *mockClient) {
	t.Helper()

	client := &mockClient{}
	server := lsp.NewServer(client, zap.NewNop())

	return server, client
}

func TestInitializeAdvertisesSemanticTokensAndSync(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)

	result, err := server.Initialize(context.Background(), &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("Initialize error: %v", err)
	}

	if result.Capabilities.TextDocumentSync == nil {
		t.Fatal("expected TextDocumentSync capability")
	}

	if result.Capabilities.SemanticTokensProvider == nil {
		t.Fatal("expected SemanticTokensProvider capability")
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)
	ctx := context.Background()

	uri := protocol.DocumentURI("file:///test.ab")

	err := server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     uri,
			Version: 1,
			Text:    `let x = +`,
		},
	})
	if err != nil {
		t.Fatalf("DidOpen error: %v", err)
	}

	if len(client.diagnostics) != 1 {
		t.Fatalf("expected one PublishDiagnostics call, got %d", len(client.diagnostics))
	}

	if len(client.diagnostics[0].Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic for malformed input")
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)
	ctx := context.Background()

	uri := protocol.DocumentURI("file:///test.ab")

	_ = server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: `let x = 1`},
	})

	err := server.DidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("DidClose error: %v", err)
	}

	last := client.diagnostics[len(client.diagnostics)-1]
	if len(last.Diagnostics) != 0 {
		t.Fatalf("expected DidClose to publish an empty diagnostic list, got %+v", last.Diagnostics)
	}
}

func TestSemanticTokensFullReturnsFiveAlignedData(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	ctx := context.Background()

	uri := protocol.DocumentURI("file:///test.ab")

	_ = server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: `let x = 1 + 2`},
	})

	toks, err := server.SemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("SemanticTokensFull error: %v", err)
	}

	if toks == nil || len(toks.Data)%5 != 0 {
		t.Fatalf("expected a non-nil, 5-aligned token array, got %+v", toks)
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	t.Parallel()

	src := "let x = 1\nlet y = 2\n"
	li := lsp.NewLineIndex(src)

	pos := li.OffsetToPosition(14) // inside "let y"
	if pos.Line != 1 {
		t.Fatalf("expected line 1, got %d", pos.Line)
	}

	back := li.PositionToOffset(pos)
	if back != 14 {
		t.Fatalf("expected round-trip offset 14, got %d", back)
	}
}

func TestToProtocolDiagnosticsMapsSeverity(t *testing.T) {
	t.Parallel()

	li := lsp.NewLineIndex("let x = +")

	resp := amber.Parse("let x = +", amber.Alpha040)

	diags := lsp.ToProtocolDiagnostics(li, resp.Diagnostics)
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}

	if diags[0].Severity != protocol.DiagnosticSeverityError {
		t.Fatalf("expected Error severity, got %v", diags[0].Severity)
	}
}
