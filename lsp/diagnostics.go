package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	amber "github.com/amberlang/amber-ls"
)

const diagnosticSource = "amberls"

// ToProtocolDiagnostics converts the parser facade's diagnostics into LSP
// wire diagnostics, grounded on this module's teacher's convertDiagnostic
// (lsp/diagnostics.go) but mapping byte-offset Spans through a LineIndex
// instead of the teacher's already-line/column-carrying spans.
func ToProtocolDiagnostics(li *LineIndex, diags []amber.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))

	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    spanToRange(li, d.Span),
			Severity: convertSeverity(d.Severity),
			Source:   diagnosticSource,
			Message:  d.Message,
		})
	}

	return out
}

func convertSeverity(amber.Severity) protocol.DiagnosticSeverity {
	// spec.md §6 only ever produces Error-severity diagnostics.
	return protocol.DiagnosticSeverityError
}

func spanToRange(li *LineIndex, span amber.Span) protocol.Range {
	return protocol.Range{
		Start: li.OffsetToPosition(span.Start),
		End:   li.OffsetToPosition(span.End),
	}
}

// publishDiagnostics converts and publishes a document's current
// diagnostics, grounded on this module's teacher's publishDiagnostics
// (lsp/diagnostics.go).
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	li := NewLineIndex(doc.Content)
	diags := ToProtocolDiagnostics(li, doc.Response.Diagnostics)

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diags,
	})
	if err != nil {
		s.logger.Error("failed to publish diagnostics", zap.Error(err))
	}
}
