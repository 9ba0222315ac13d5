package lsp

import (
	"context"
	"sort"

	"go.lsp.dev/protocol"

	amber "github.com/amberlang/amber-ls"
)

// SemanticTokenTypes is the legend this server advertises in
// Initialize's ServerCapabilities.SemanticTokensProvider.Legend.TokenTypes,
// in amber.SemanticTokenKind's own order so ToProtocolSemanticTokens can use
// the Kind value directly as the legend index.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"operator",
	"string",
	"number",
	"comment",
}

// ToProtocolSemanticTokens converts the facade's token list into the LSP
// wire format: a flat, relative-delta-encoded uint32 array (5 uint32s per
// token: deltaLine, deltaStartChar, length, tokenType, tokenModifiers).
// Spec.md §4.10 only promises the walk produces tokens in tree order, not
// source order (an operator's OpSpan is emitted before its operands'
// spans — see semantic.go), so this sorts by start offset before encoding;
// the LSP spec requires a strictly position-ordered array.
func ToProtocolSemanticTokens(li *LineIndex, tokens []amber.SemanticToken) *protocol.SemanticTokens {
	sorted := make([]amber.SemanticToken, len(tokens))
	copy(sorted, tokens)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	data := make([]uint32, 0, len(sorted)*5)

	prevLine, prevChar := 0, 0

	for _, tok := range sorted {
		start := li.OffsetToPosition(tok.Span.Start)
		end := li.OffsetToPosition(tok.Span.End)

		line := int(start.Line)
		char := int(start.Character)

		deltaLine := line - prevLine

		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - prevChar
		}

		length := 0
		if line == int(end.Line) {
			length = int(end.Character) - char
		} else {
			length = len(li.source) - tok.Span.Start // multi-line token: best-effort length
		}

		data = append(data,
			uint32(deltaLine), //nolint:gosec // line deltas fit uint32 for any realistic source
			uint32(deltaChar), //nolint:gosec // char deltas fit uint32 for any realistic source
			uint32(length),    //nolint:gosec // token lengths fit uint32 for any realistic source
			uint32(tok.Kind),  //nolint:gosec // Kind is a small closed enum
			0,                 // no token modifiers in this legend
		)

		prevLine, prevChar = line, char
	}

	return &protocol.SemanticTokens{Data: data}
}

// SemanticTokensFull handles textDocument/semanticTokens/full.
func (s *Server) SemanticTokensFull(_ context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return &protocol.SemanticTokens{}, nil
	}

	li := NewLineIndex(doc.Content)

	return ToProtocolSemanticTokens(li, doc.Response.SemanticTokens), nil
}
