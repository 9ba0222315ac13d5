package amber

import (
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Lex tokenises source into a flat token stream, never failing: a byte it
// cannot classify becomes a one-rune TokenError token (spec.md §4.2). The
// returned slice always ends with a TokenEOF token whose span is empty and
// sits at len(source).
//
// Lex is dialect-parameterised only insofar as the dialect may affect how
// the grammar later interprets a token's text (e.g. whether "trust" reads
// as a keyword) — the lexer itself does not special-case keywords at all;
// every identifier-shaped run of bytes becomes a single TokenIdentifier,
// keyword or not (spec.md §4.2).
func Lex(source string, _ Dialect) []Token {
	l := &lexerState{input: source, line: 1, col: 1}

	var tokens []Token

	for {
		tok, ok := l.next()
		tokens = append(tokens, tok)

		if !ok {
			break
		}
	}

	return tokens
}

// lexerState holds the mutable cursor for one lex pass. Modelled directly
// on this module's teacher's lexerState (peek/advance/token helpers over a
// string offset), adapted to Amber's token set (see DESIGN.md).
type lexerState struct {
	input string
	offset int
	line   int
	col    int
}

// next returns the next token and true, or the final EOF token and false.
func (l *lexerState) next() (Token, bool) {
	for !l.eof() {
		start := l.pos()
		r := l.peek()

		if isSpace(r) {
			l.skipSpace()

			continue
		}

		if r == '/' && l.peekAt(1) == '/' {
			return l.scanLineComment(start), true
		}

		if l.offset == 0 && r == '#' && l.peekAt(1) == '!' {
			return l.scanShebangLine(start), true
		}

		if isIdentStart(r) {
			return l.scanIdent(start), true
		}

		if isDigit(r) {
			return l.scanNumber(start), true
		}

		if tok, ok := l.scanMultiCharOp(start); ok {
			return tok, true
		}

		if tok, ok := l.scanSingleChar(start, r); ok {
			return tok, true
		}

		// Unknown byte: never fail, emit a one-rune error token.
		l.advance()

		return l.token(TokenError, start), true
	}

	return l.eofToken(), false
}

func (l *lexerState) eofToken() Token {
	p := l.pos()

	return Token{Kind: TokenEOF, Span: Span{Start: p.Offset, End: p.Offset}, Pos: p.lexerPos(l.filename())}
}

func (l *lexerState) filename() string { return "" }

func (l *lexerState) skipSpace() {
	for !l.eof() && isSpace(l.peek()) {
		l.advance()
	}
}

func (l *lexerState) scanLineComment(start position) Token {
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}

	return l.token(TokenComment, start)
}

// scanShebangLine consumes a file-initial `#!...` line. Only valid at
// offset 0; a `#` anywhere else falls through to the unknown-byte path
// and becomes a TokenError, matching the lexer's never-fail contract.
func (l *lexerState) scanShebangLine(start position) Token {
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}

	return l.token(TokenShebang, start)
}

func (l *lexerState) scanIdent(start position) Token {
	l.advance()

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	return l.token(TokenIdentifier, start)
}

func (l *lexerState) scanNumber(start position) Token {
	for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}

	if l.peek() == '.' && l.peekAt(1) != '.' && isDigit(l.peekAt(1)) {
		l.advance()

		for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.offset
		saveLine, saveCol := l.line, l.col
		l.advance()

		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}

		if isDigit(l.peek()) {
			for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
				l.advance()
			}
		} else {
			l.offset, l.line, l.col = save, saveLine, saveCol
		}
	}

	return l.token(TokenNumber, start)
}

func (l *lexerState) scanMultiCharOp(start position) (Token, bool) {
	type op struct {
		text string
		kind TokenKind
	}

	ops := []op{
		{"==", TokenEqEq}, {"!=", TokenNotEq}, {"<=", TokenLe}, {">=", TokenGe},
		{"+=", TokenPlusEq}, {"-=", TokenMinusEq}, {"*=", TokenStarEq},
		{"/=", TokenSlashEq}, {"%=", TokenPercentEq}, {"..", TokenDotDot},
	}

	for _, o := range ops {
		if l.match(o.text) {
			for range len(o.text) {
				l.advance()
			}

			return l.tokenKind(o.kind, start), true
		}
	}

	return Token{}, false
}

func (l *lexerState) scanSingleChar(start position, r rune) (Token, bool) {
	single := map[rune]TokenKind{
		'{': TokenLBrace, '}': TokenRBrace,
		'(': TokenLParen, ')': TokenRParen,
		'[': TokenLBracket, ']': TokenRBracket,
		',': TokenComma, ';': TokenSemicolon,
		'"': TokenQuote, '$': TokenDollar, '\\': TokenBackslash,
		'.': TokenDot, ':': TokenColon,
		'=': TokenEq, '<': TokenLt, '>': TokenGt,
		'+': TokenPlus, '-': TokenMinus, '*': TokenStar,
		'/': TokenSlash, '%': TokenPercent,
	}

	kind, ok := single[r]
	if !ok {
		return Token{}, false
	}

	l.advance()

	return l.tokenKind(kind, start), true
}

// position is this lexer's internal cursor snapshot, independent of
// participle's lexer.Position so Span arithmetic stays plain ints.
type position struct {
	Offset int
	Line   int
	Column int
}

func (p position) lexerPos(filename string) lexer.Position {
	return lexer.Position{Filename: filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func (l *lexerState) pos() position {
	return position{Offset: l.offset, Line: l.line, Column: l.col}
}

func (l *lexerState) eof() bool { return l.offset >= len(l.input) }

func (l *lexerState) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

func (l *lexerState) peekAt(n int) rune {
	off := l.offset + n
	if off >= len(l.input) || off < 0 {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

func (l *lexerState) advance() rune {
	if l.eof() {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *lexerState) match(s string) bool {
	end := l.offset + len(s)
	if end > len(l.input) {
		return false
	}

	return l.input[l.offset:end] == s
}

func (l *lexerState) token(kind TokenKind, start position) Token {
	return l.tokenKind(kind, start)
}

func (l *lexerState) tokenKind(kind TokenKind, start position) Token {
	value := l.input[start.Offset:l.offset]

	return Token{
		Kind:  kind,
		Value: value,
		Span:  Span{Start: start.Offset, End: l.offset},
		Pos:   start.lexerPos(l.filename()),
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
