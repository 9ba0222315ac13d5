package amber

import "fmt"

// parserState is the shared cursor + diagnostic collector threaded through
// every grammar layer (expr.go, stmt.go, global.go). It plays the role this
// module's teacher gives its lexer.PeekingLexer-driven recovery functions,
// generalised to a plain token slice since our grammar is hand-rolled
// recursive descent rather than struct-tag driven (see DESIGN.md).
type parserState struct {
	source  string
	tokens  []Token
	pos     int
	dialect Dialect
	diags   *diagnosticCollector
}

func newParserState(source string, tokens []Token, dialect Dialect) *parserState {
	return &parserState{source: source, tokens: tokens, dialect: dialect, diags: &diagnosticCollector{}}
}

// peek returns the token at the cursor without consuming it. Past the end
// of the stream it keeps returning the trailing EOF token.
func (p *parserState) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos]
}

// peekAt looks ahead n tokens from the cursor without consuming.
func (p *parserState) peekAt(n int) Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[idx]
}

// advance consumes and returns the token at the cursor.
func (p *parserState) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

// atEOF reports whether the cursor has reached the trailing EOF token.
func (p *parserState) atEOF() bool {
	return p.peek().IsEOF()
}

// accept consumes and returns the current token if it has kind, else
// leaves the cursor untouched and returns false.
func (p *parserState) accept(kind TokenKind) (Token, bool) {
	if p.peek().Kind == kind {
		return p.advance(), true
	}

	return Token{}, false
}

// acceptKeyword consumes and returns the current token if it is an
// identifier-shaped token whose text equals word, else leaves the cursor
// untouched. Keywords are never a distinct TokenKind (see token.go).
func (p *parserState) acceptKeyword(word string) (Token, bool) {
	tok := p.peek()
	if tok.Kind == TokenIdentifier && tok.Value == word {
		return p.advance(), true
	}

	return Token{}, false
}

// peekKeyword reports whether the current token is the given keyword
// without consuming it.
func (p *parserState) peekKeyword(word string) bool {
	tok := p.peek()

	return tok.Kind == TokenIdentifier && tok.Value == word
}

func (p *parserState) diag(span Span, format string, args ...any) {
	p.diags.add(span, fmt.Sprintf(format, args...))
}

// ident consumes one identifier-class token, rejecting it as a diagnostic
// (but still returning its text and span) when the token is a keyword in
// the active dialect, begins with "__", or isn't identifier-shaped at all
// (spec.md §4.3).
func (p *parserState) ident(role string) (string, Span) {
	tok := p.peek()

	if tok.Kind != TokenIdentifier {
		span := Span{Start: tok.Span.Start, End: tok.Span.Start}
		p.diag(span, "expected %s name", role)

		return "", span
	}

	p.advance()

	if IsKeyword(tok.Value) && p.dialectReservesKeyword(tok.Value) {
		p.diag(tok.Span, "%q is a reserved keyword, not a valid %s name", tok.Value, role)
	} else if len(tok.Value) >= 2 && tok.Value[:2] == "__" {
		p.diag(tok.Span, "%s name must not begin with __", role)
	}

	return tok.Value, tok.Span
}

// dialectReservesKeyword reports whether word is reserved in the active
// dialect. Keywords gated to newer dialects (trust/const/mv/then) are not
// reserved in older ones — the grammar is free to accept them as ordinary
// identifiers there (spec.md §6).
func (p *parserState) dialectReservesKeyword(word string) bool {
	switch word {
	case "trust":
		return p.dialect.HasTrust()
	case "const", "mv", "then":
		return p.dialect.HasConst() // const/mv/then all land in 0.3.5+ together
	default:
		return true
	}
}

// isReservedHere reports whether word is both in the closed keyword set
// and reserved in the active dialect — the gate used by every dispatch
// decision that would otherwise refuse a dialect-gated keyword as a plain
// identifier (spec.md §8 invariant 6: "in other dialects they lex as
// identifiers... never silently succeed").
func (p *parserState) isReservedHere(word string) bool {
	return IsKeyword(word) && p.dialectReservesKeyword(word)
}

// stopSetKinds are the structural punctuation kinds default_recovery must
// never consume (spec.md §4.3, §4.9: "the recovery will never eat an if").
var stopSetKinds = map[TokenKind]bool{
	TokenLBrace: true, TokenRBrace: true, TokenLParen: true, TokenRParen: true,
	TokenLBracket: true, TokenRBracket: true, TokenComma: true, TokenSemicolon: true,
	TokenQuote: true, TokenDollar: true,
	TokenEq: true, TokenEqEq: true, TokenNotEq: true, TokenLt: true, TokenGt: true,
	TokenLe: true, TokenGe: true, TokenPlus: true, TokenMinus: true, TokenStar: true,
	TokenSlash: true, TokenPercent: true, TokenPlusEq: true, TokenMinusEq: true,
	TokenStarEq: true, TokenSlashEq: true, TokenPercentEq: true, TokenDotDot: true,
	TokenColon: true,
}

// inStopSet reports whether tok is a keyword or structural punctuation —
// the set default_recovery refuses to consume.
func inStopSet(tok Token) bool {
	if tok.IsEOF() {
		return true
	}

	if tok.Kind == TokenIdentifier && IsKeyword(tok.Value) {
		return true
	}

	return stopSetKinds[tok.Kind]
}

// defaultRecovery consumes exactly one token that is not in the stop-set,
// returning it and true. If the current token is in the stop-set (or the
// stream is at EOF), it consumes nothing and returns false (spec.md §4.3,
// §4.9: "every branch either consumes at least one token or returns a
// placeholder").
func (p *parserState) defaultRecovery() (Token, bool) {
	tok := p.peek()
	if inStopSet(tok) {
		return Token{}, false
	}

	return p.advance(), true
}

// recoverToExpressionError consumes exactly one token (via defaultRecovery,
// or the offending stop-set token itself when nothing can be skipped),
// emits a diagnostic, and returns an Expression::Error node spanning that
// token.
func (p *parserState) recoverToExpressionError(start Token, message string) Expression {
	begin := start.Span
	end := begin

	if tok, ok := p.defaultRecovery(); ok {
		end = tok.Span
	} else {
		// Nothing safe to skip: consume the offending token itself so the
		// parse always makes progress (spec.md §4.9 rule 1).
		tok := p.advance()
		end = tok.Span
	}

	span := Span{Start: begin.Start, End: end.End}
	p.diag(span, "%s", message)

	return Expression{Kind: ExprError, Span: span}
}

// expectToken consumes a token of kind, or — if absent — synthesises a
// zero-width token at the cursor and records a diagnostic (spec.md §4.9
// rule 4, "expected-token synthesis").
func (p *parserState) expectToken(kind TokenKind, text string, context string) Token {
	if tok, ok := p.accept(kind); ok {
		return tok
	}

	at := p.peek().Span.Start
	span := Span{Start: at, End: at}
	p.diag(span, "expected %q in %s", text, context)

	return Token{Kind: kind, Value: text, Span: span}
}

// expectKeyword consumes word as a keyword, or synthesises it and records
// a diagnostic.
func (p *parserState) expectKeyword(word string, context string) Token {
	if tok, ok := p.acceptKeyword(word); ok {
		return tok
	}

	at := p.peek().Span.Start
	span := Span{Start: at, End: at}
	p.diag(span, "expected %q in %s", word, context)

	return Token{Kind: TokenIdentifier, Value: word, Span: span}
}

// delimited parses inner between an open and close punctuation token. If
// close is missing, it is synthesised after skipping non-closer tokens up
// to a bound, and the outer parse continues (spec.md §4.3, §4.9 rule 3).
func delimited[T any](p *parserState, open TokenKind, openText string, inner func() T, closeKind TokenKind, closeText string, context string) (T, Span) {
	openTok := p.expectToken(open, openText, context)

	value := inner()

	const maxResyncSkip = 64

	skipped := 0
	for p.peek().Kind != closeKind && !p.atEOF() && skipped < maxResyncSkip {
		if _, ok := p.defaultRecovery(); !ok {
			break
		}

		skipped++
	}

	closeTok := p.expectToken(closeKind, closeText, context)

	return value, Span{Start: openTok.Span.Start, End: closeTok.Span.End}
}
