package amber

import "strconv"

// This file implements the layered precedence expression grammar of
// spec.md §4.4, from loosest to tightest:
//
//	ternary → range → or → and → comparison → sum → product
//	        → is → cast → unary → array-index → atom
//
// Every layer calls the next-tighter layer and, on failure, falls back to
// defaultRecovery() to yield an Expression::Error placeholder rather than
// abort (spec.md §4.4 last paragraph).

// parseExpression is the entry point: the loosest layer, ternary.
func (p *parserState) parseExpression() Expression {
	return p.parseTernary()
}

// parseTernary implements `cond then a else b`, right-associative,
// one-shot, gated to dialects that admit the then keyword (spec.md §4.4).
func (p *parserState) parseTernary() Expression {
	cond := p.parseRange()

	if !p.dialect.HasTernaryThen() || !p.peekKeyword("then") {
		return cond
	}

	thenKw, _ := p.acceptKeyword("then")
	thenBranch := p.parseRange()
	p.expectKeyword("else", "ternary expression")
	elseBranch := p.parseTernary()

	span := Span{Start: cond.Span.Start, End: elseBranch.Span.End}

	return Expression{
		Kind: ExprTernary,
		Span: span,
		Cond: &cond, Then: &thenBranch, Else: &elseBranch,
		OpSpan: thenKw.Span,
	}
}

// parseRange implements `lhs .. rhs`, left-associative.
func (p *parserState) parseRange() Expression {
	lhs := p.parseOr()

	for {
		op, ok := p.accept(TokenDotDot)
		if !ok {
			break
		}

		rhs := p.parseOr()
		span := Span{Start: lhs.Start(), End: rhs.Span.End}
		lhs = Expression{Kind: ExprRange, Span: span, RangeStart: cloneExpr(lhs), RangeEnd: &rhs, OpSpan: op.Span}
	}

	return lhs
}

// parseOr implements left-associative `or`.
func (p *parserState) parseOr() Expression {
	return p.parseBinaryKeyword(p.parseAnd, "or", ExprOr)
}

// parseAnd implements left-associative `and`.
func (p *parserState) parseAnd() Expression {
	return p.parseBinaryKeyword(p.parseComparison, "and", ExprAnd)
}

// parseComparison implements the six comparison operators, left-associative.
func (p *parserState) parseComparison() Expression {
	lhs := p.parseSum()

	for {
		kind, opTok, ok := p.acceptOneOf(map[TokenKind]ExpressionKind{
			TokenEqEq: ExprEq, TokenNotEq: ExprNeq,
			TokenLe: ExprLe, TokenGe: ExprGe,
			TokenLt: ExprLt, TokenGt: ExprGt,
		})
		if !ok {
			break
		}

		rhs := p.parseSum()
		span := Span{Start: lhs.Start(), End: rhs.Span.End}
		lhs = Expression{Kind: kind, Span: span, Lhs: cloneExpr(lhs), Rhs: &rhs, OpSpan: opTok.Span}
	}

	return lhs
}

// parseSum implements left-associative `+`/`-`.
func (p *parserState) parseSum() Expression {
	lhs := p.parseProduct()

	for {
		kind, opTok, ok := p.acceptOneOf(map[TokenKind]ExpressionKind{
			TokenPlus: ExprAdd, TokenMinus: ExprSubtract,
		})
		if !ok {
			break
		}

		rhs := p.parseProduct()
		span := Span{Start: lhs.Start(), End: rhs.Span.End}
		lhs = Expression{Kind: kind, Span: span, Lhs: cloneExpr(lhs), Rhs: &rhs, OpSpan: opTok.Span}
	}

	return lhs
}

// parseProduct implements left-associative `*`/`/`/`%`.
func (p *parserState) parseProduct() Expression {
	lhs := p.parseIs()

	for {
		kind, opTok, ok := p.acceptOneOf(map[TokenKind]ExpressionKind{
			TokenStar: ExprMultiply, TokenSlash: ExprDivide, TokenPercent: ExprModulo,
		})
		if !ok {
			break
		}

		rhs := p.parseIs()
		span := Span{Start: lhs.Start(), End: rhs.Span.End}
		lhs = Expression{Kind: kind, Span: span, Lhs: cloneExpr(lhs), Rhs: &rhs, OpSpan: opTok.Span}
	}

	return lhs
}

// parseIs implements left-fold `is Type`.
func (p *parserState) parseIs() Expression {
	lhs := p.parseCast()

	for p.peekKeyword("is") {
		kw, _ := p.acceptKeyword("is")
		typ := p.parseDataType()
		span := Span{Start: lhs.Start(), End: typ.Span.End}
		lhs = Expression{Kind: ExprIs, Span: span, Inner: cloneExpr(lhs), Type: &typ, OpSpan: kw.Span}
	}

	return lhs
}

// parseCast implements left-fold `as Type`.
func (p *parserState) parseCast() Expression {
	lhs := p.parseUnary()

	for p.peekKeyword("as") {
		kw, _ := p.acceptKeyword("as")
		typ := p.parseDataType()
		span := Span{Start: lhs.Start(), End: typ.Span.End}
		lhs = Expression{Kind: ExprCast, Span: span, Inner: cloneExpr(lhs), Type: &typ, OpSpan: kw.Span}
	}

	return lhs
}

// parseUnary implements right-fold prefix `-`, `not`, `nameof`.
func (p *parserState) parseUnary() Expression {
	if opTok, ok := p.accept(TokenMinus); ok {
		inner := p.parseUnary()
		span := Span{Start: opTok.Span.Start, End: inner.Span.End}

		return Expression{Kind: ExprNeg, Span: span, Inner: &inner, OpSpan: opTok.Span}
	}

	if kw, ok := p.acceptKeyword("not"); ok {
		inner := p.parseUnary()
		span := Span{Start: kw.Span.Start, End: inner.Span.End}

		return Expression{Kind: ExprNot, Span: span, Inner: &inner, OpSpan: kw.Span}
	}

	if kw, ok := p.acceptKeyword("nameof"); ok {
		inner := p.parseUnary()
		span := Span{Start: kw.Span.Start, End: inner.Span.End}

		return Expression{Kind: ExprNameof, Span: span, Inner: &inner, OpSpan: kw.Span}
	}

	return p.parseArrayIndex()
}

// parseArrayIndex implements left-fold postfix `[ expr ]`.
func (p *parserState) parseArrayIndex() Expression {
	target := p.parseAtom()

	for {
		if _, ok := p.accept(TokenLBracket); !ok {
			break
		}

		idx := p.parseExpression()
		close := p.expectToken(TokenRBracket, "]", "array index")

		span := Span{Start: target.Start(), End: close.Span.End}
		target = Expression{Kind: ExprArrayIndex, Span: span, Inner: cloneExpr(target), Index: &idx}
	}

	return target
}

// parseAtom implements spec.md §4.4's atom alternatives. exit is tried
// before the variable rule because it is not a reserved keyword at lex
// time (spec.md §4.4, §9(c)).
func (p *parserState) parseAtom() Expression {
	tok := p.peek()

	switch {
	case p.dialect.HasExit() && tok.Kind == TokenIdentifier && tok.Value == "exit":
		return p.parseExit()
	case tok.Kind == TokenLParen:
		return p.parseParentheses()
	case tok.Kind == TokenIdentifier && (tok.Value == "true" || tok.Value == "false"):
		return p.parseBoolean()
	case tok.Kind == TokenIdentifier && tok.Value == "null":
		p.advance()

		return Expression{Kind: ExprNull, Span: tok.Span}
	case tok.Kind == TokenIdentifier && tok.Value == "status":
		p.advance()

		return Expression{Kind: ExprStatus, Span: tok.Span}
	case tok.Kind == TokenQuote:
		return p.parseInterpolatedText()
	case tok.Kind == TokenLBracket:
		return p.parseArrayLiteral()
	case tok.Kind == TokenDollar:
		return p.parseInterpolatedCommand()
	case tok.Kind == TokenNumber:
		return p.parseNumber()
	case tok.Kind == TokenIdentifier && (tok.Value == "unsafe" || tok.Value == "silent" ||
		(tok.Value == "trust" && p.dialect.HasTrust())):
		return p.parseVariableOrCall()
	case tok.Kind == TokenIdentifier && !p.isReservedHere(tok.Value):
		return p.parseVariableOrCall()
	default:
		return p.recoverToExpressionError(tok, "expected an expression")
	}
}

func (p *parserState) parseExit() Expression {
	kw, _ := p.acceptKeyword("exit")
	span := kw.Span

	var code *Expression

	if canStartExpression(p.peek()) {
		c := p.parseExpression()
		code = &c
		span = Span{Start: kw.Span.Start, End: c.Span.End}
	}

	return Expression{Kind: ExprExit, Span: span, ExitKw: kw.Span, ExitCode: code}
}

func (p *parserState) parseParentheses() Expression {
	var inner Expression

	_, span := delimited(p, TokenLParen, "(", func() any {
		inner = p.parseExpression()

		return nil
	}, TokenRParen, ")", "parenthesised expression")

	return Expression{Kind: ExprParentheses, Span: span, Inner: &inner}
}

func (p *parserState) parseBoolean() Expression {
	tok := p.advance()

	return Expression{Kind: ExprBoolean, Span: tok.Span, BoolValue: tok.Value == "true"}
}

func (p *parserState) parseNumber() Expression {
	tok := p.advance()
	value, err := strconv.ParseFloat(tok.Value, 64)

	if err != nil {
		p.diag(tok.Span, "malformed number literal %q", tok.Value)
	}

	return Expression{Kind: ExprNumber, Span: tok.Span, NumberValue: value, NumberText: tok.Value}
}

// parseVariableOrCall disambiguates a bare identifier from a function
// invocation by looking one token ahead for an argument list, and consumes
// any dialect modifiers (unsafe/silent/trust) that precede a call.
func (p *parserState) parseVariableOrCall() Expression {
	mods, modsStart := p.parseModifiers()

	name, nameSpan := p.ident("variable")

	if p.peek().Kind == TokenLParen {
		return p.finishFunctionInvocation(mods, modsStart, name, nameSpan)
	}

	if len(mods) > 0 {
		// Modifiers only make sense ahead of a call; without one, re-read
		// as a plain variable reference using just the identifier span.
		return Expression{Kind: ExprVariable, Span: nameSpan, Name: name}
	}

	return Expression{Kind: ExprVariable, Span: nameSpan, Name: name}
}

// parseModifiers consumes zero or more of unsafe/silent/trust, returning
// them plus the span of the first one consumed (for callers that need a
// combined span start even with no name token yet).
func (p *parserState) parseModifiers() ([]Modifier, Span) {
	var mods []Modifier

	start := p.peek().Span

	for {
		tok := p.peek()
		if tok.Kind != TokenIdentifier {
			break
		}

		switch tok.Value {
		case "unsafe", "silent":
			p.advance()
			mods = append(mods, Modifier{Name: tok.Value, Span: tok.Span})
		case "trust":
			if !p.dialect.HasTrust() {
				return mods, start
			}

			p.advance()
			mods = append(mods, Modifier{Name: tok.Value, Span: tok.Span})
		default:
			return mods, start
		}
	}

	return mods, start
}

func (p *parserState) finishFunctionInvocation(mods []Modifier, modsStart Span, name string, nameSpan Span) Expression {
	var args []Expression

	_, argsSpan := delimited(p, TokenLParen, "(", func() any {
		args = p.parseArgList()

		return nil
	}, TokenRParen, ")", "function call arguments")

	failure := p.parseOptionalFailureHandler()

	start := nameSpan.Start
	if len(mods) > 0 {
		start = modsStart.Start
	}

	end := argsSpan.End
	if failure != nil {
		end = failure.Span.End
	}

	return Expression{
		Kind: ExprFunctionInvocation, Span: Span{Start: start, End: end},
		Name: name, Modifiers: mods, Args: args, Failure: failure,
	}
}

func (p *parserState) parseArgList() []Expression {
	var args []Expression

	if p.peek().Kind == TokenRParen {
		return args
	}

	for {
		args = append(args, p.parseExpression())

		if _, ok := p.accept(TokenComma); !ok {
			break
		}

		if p.peek().Kind == TokenRParen {
			break
		}
	}

	return args
}

// parseOptionalFailureHandler parses the shared `?` / `failed { ... }`
// suffix (spec.md §4.7).
func (p *parserState) parseOptionalFailureHandler() *FailureHandler {
	if tok := p.peek(); tok.Kind == TokenIdentifier && tok.Value == "failed" {
		p.advance()

		var body []Statement

		_, span := delimited(p, TokenLBrace, "{", func() any {
			body = p.parseStatementList(TokenRBrace)

			return nil
		}, TokenRBrace, "}", "failed block")

		return &FailureHandler{Kind: FailureHandle, Span: Span{Start: tok.Span.Start, End: span.End}, Body: body}
	}

	// Propagate is a bare `?`, which this grammar lexes as a TokenError
	// token (it is not in the punctuation table); treated as a literal here.
	if tok := p.peek(); tok.Kind == TokenError && tok.Value == "?" {
		p.advance()

		return &FailureHandler{Kind: FailurePropagate, Span: tok.Span}
	}

	return nil
}

func (p *parserState) parseArrayLiteral() Expression {
	var items []Expression

	_, span := delimited(p, TokenLBracket, "[", func() any {
		for p.peek().Kind != TokenRBracket && !p.atEOF() {
			items = append(items, p.parseExpression())

			if _, ok := p.accept(TokenComma); !ok {
				break
			}
		}

		return nil
	}, TokenRBracket, "]", "array literal")

	return Expression{Kind: ExprArray, Span: span, Items: items}
}

// parseDataType parses one of Text/Num/Bool/Null, or an array type
// `[Type]` (spec.md §3's DataType::Array).
func (p *parserState) parseDataType() DataType {
	tok := p.peek()

	if tok.Kind == TokenLBracket {
		var inner DataType

		_, span := delimited(p, TokenLBracket, "[", func() any {
			inner = p.parseDataType()

			return nil
		}, TokenRBracket, "]", "array type")

		return DataType{Kind: DataTypeArray, Span: span, Inner: &inner}
	}

	if tok.Kind != TokenIdentifier {
		span := Span{Start: tok.Span.Start, End: tok.Span.Start}
		p.diag(span, "expected a type name")

		return DataType{Kind: DataTypeError, Span: span}
	}

	switch tok.Value {
	case "Text":
		p.advance()

		return DataType{Kind: DataTypeText, Span: tok.Span}
	case "Num":
		p.advance()

		return DataType{Kind: DataTypeNum, Span: tok.Span}
	case "Bool":
		p.advance()

		return DataType{Kind: DataTypeBool, Span: tok.Span}
	case "Null":
		p.advance()

		return DataType{Kind: DataTypeNull, Span: tok.Span}
	default:
		p.diag(tok.Span, "unknown type %q", tok.Value)

		return DataType{Kind: DataTypeError, Span: tok.Span}
	}
}

// parseBinaryKeyword is the shared implementation of left-associative
// binary layers whose operator is a keyword ("or", "and") rather than a
// punctuation token.
func (p *parserState) parseBinaryKeyword(next func() Expression, word string, kind ExpressionKind) Expression {
	lhs := next()

	for {
		kw, ok := p.acceptKeyword(word)
		if !ok {
			break
		}

		rhs := next()
		span := Span{Start: lhs.Start(), End: rhs.Span.End}
		lhs = Expression{Kind: kind, Span: span, Lhs: cloneExpr(lhs), Rhs: &rhs, OpSpan: kw.Span}
	}

	return lhs
}

// acceptOneOf consumes the current token if its kind is a key of table,
// returning the mapped ExpressionKind, the token, and true.
func (p *parserState) acceptOneOf(table map[TokenKind]ExpressionKind) (ExpressionKind, Token, bool) {
	kind, ok := table[p.peek().Kind]
	if !ok {
		return 0, Token{}, false
	}

	return kind, p.advance(), true
}

// canStartExpression reports whether tok could begin an atom, used to
// decide whether `exit` has a trailing code expression.
func canStartExpression(tok Token) bool {
	switch tok.Kind {
	case TokenLParen, TokenQuote, TokenLBracket, TokenDollar, TokenNumber:
		return true
	case TokenIdentifier:
		return !IsKeyword(tok.Value) || tok.Value == "true" || tok.Value == "false" ||
			tok.Value == "null" || tok.Value == "status" || tok.Value == "not" ||
			tok.Value == "nameof" || tok.Value == "exit"
	default:
		return false
	}
}

// Start returns the span's start offset; a small convenience used when
// folding binary layers so their span composition reads left to right.
func (e Expression) Start() int { return e.Span.Start }

func cloneExpr(e Expression) *Expression {
	v := e

	return &v
}
