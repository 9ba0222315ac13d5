package amber

import "github.com/alecthomas/participle/v2/lexer"

// TokenKind is the closed set of lexical classes spec.md §3 defines.
// Keywords are not distinct kinds: they lex as Identifier and the grammar
// tells them apart from ordinary identifiers by comparing token text
// against the closed keyword list (see IsKeyword).
type TokenKind lexer.TokenType

// Token kind constants. Negative values follow participle's convention
// that token types below lexer.EOF are lexer-defined.
const (
	TokenEOF   TokenKind = TokenKind(lexer.EOF)
	TokenError TokenKind = -(iota + 2) //nolint:mnd // participle convention
	TokenComment
	TokenShebang
	TokenIdentifier
	TokenNumber

	// Structural punctuation, each a single, never-coalesced token.
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenSemicolon
	TokenQuote     // "
	TokenDollar    // $
	TokenBackslash // \
	TokenDot       // .
	TokenDotDot    // ..
	TokenColon     // : (type annotations; supplemented from original_source, see DESIGN.md)

	// Operators, multi-character forms lexed as a single token.
	TokenEq      // =
	TokenEqEq    // ==
	TokenNotEq   // !=
	TokenLt      // <
	TokenGt      // >
	TokenLe      // <=
	TokenGe      // >=
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %
	TokenPlusEq  // +=
	TokenMinusEq // -=
	TokenStarEq  // *=
	TokenSlashEq // /=
	TokenPercentEq
)

// tokenKindNames is used only by Token.String for tokens whose text isn't
// already a verbatim source slice (EOF has none).
var tokenKindNames = map[TokenKind]string{
	TokenEOF: "<eof>",
}

// Token is a single lexical unit. Value is always the exact source
// substring that produced it, so String() round-trips to the source.
type Token struct {
	Kind  TokenKind
	Value string
	Span  Span
	// Pos carries the token's line/column; byte offset lives in Span.
	Pos lexer.Position
}

// String returns the token's source text, satisfying the round-trip
// invariant: concatenating tokens (with their gaps) reconstructs the input.
func (t Token) String() string {
	if t.Kind == TokenEOF {
		return tokenKindNames[TokenEOF]
	}

	return t.Value
}

// IsEOF reports whether this token is the end-of-file sentinel.
func (t Token) IsEOF() bool {
	return t.Kind == TokenEOF
}

// keywords is the closed keyword set from spec.md §6. Membership here (not
// token kind) is what makes a word a keyword; dialect gating of individual
// keywords (trust/const/mv/then) lives in dialect.go.
var keywords = map[string]bool{
	"if": true, "else": true, "loop": true, "for": true, "in": true,
	"return": true, "break": true, "continue": true, "true": true,
	"false": true, "null": true, "fun": true, "as": true, "is": true,
	"or": true, "and": true, "not": true, "nameof": true, "status": true,
	"fail": true, "echo": true, "let": true, "const": true, "unsafe": true,
	"silent": true, "trust": true, "main": true, "import": true,
	"from": true, "pub": true, "then": true, "Text": true, "Num": true,
	"Bool": true, "Null": true, "ref": true, "mv": true,
}

// IsKeyword reports whether word is in the closed keyword set, irrespective
// of dialect. Dialect-specific availability is checked separately via
// parserState.isReservedHere (parserstate.go).
func IsKeyword(word string) bool {
	return keywords[word]
}
