package amber

// ParserResponse is the parser facade's output (spec.md §4.10): the
// partial-on-error AST, a flat span-ordered diagnostic list, and the
// derived semantic token list used for LSP highlighting.
type ParserResponse struct {
	File          File
	Diagnostics   []Diagnostic
	SemanticTokens []SemanticToken
}

// Parse runs the full lex + dialect-selected grammar + semantic-token pass
// over source and returns a ParserResponse. It never panics: every error
// path in the grammar produces a placeholder node plus a diagnostic
// instead (spec.md §5, §7).
func Parse(source string, dialect Dialect) ParserResponse {
	tokens := Lex(source, dialect)
	state := newParserState(source, tokens, dialect)
	file := state.parseFile()

	return ParserResponse{
		File:           file,
		Diagnostics:    state.diags.list(),
		SemanticTokens: walkFile(file),
	}
}
