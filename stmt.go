package amber

// This file implements the statement grammar of spec.md §4.7: a
// recursive combinator trying, in load-bearing order, doc_string,
// comment, shebang, var_init, var_set, block, if_chain, if_cond,
// shorthand, inf_loop, iter_loop, keyword statements, move_files,
// const_init, and finally a bare expression. An optional terminating `;`
// is consumed after each statement.

// parseStatementList parses statements until the stop token kind is seen
// or the stream ends, used for block bodies and failed-handler bodies.
func (p *parserState) parseStatementList(stop TokenKind) []Statement {
	var stmts []Statement

	for p.peek().Kind != stop && !p.atEOF() {
		before := p.pos
		stmts = append(stmts, p.parseStatement())

		if p.pos == before {
			// Safety valve: a statement must consume at least one token
			// (spec.md §4.9's no-infinite-loop rule); if none of the
			// dispatch branches did, force progress here.
			p.advance()
		}
	}

	return stmts
}

// parseStatement dispatches to one production per spec.md §4.7's order.
func (p *parserState) parseStatement() Statement {
	tok := p.peek()

	var stmt Statement

	switch {
	case tok.Kind == TokenComment && isDocComment(tok.Value):
		stmt = p.parseDocString()
	case tok.Kind == TokenComment:
		stmt = p.parseCommentStatement()
	case tok.Kind == TokenShebang:
		stmt = p.parseShebang()
	case p.peekKeyword("let"):
		stmt = p.parseVariableInit()
	case p.isVariableSetAhead():
		stmt = p.parseVariableSet()
	case tok.Kind == TokenLBrace:
		stmt = p.parseBlockStatement()
	case p.peekKeyword("if"):
		stmt = p.parseIfStatement()
	case p.isShorthandAhead():
		stmt = p.parseShorthand()
	case p.peekKeyword("loop"):
		stmt = p.parseInfiniteLoop()
	case p.peekKeyword("for"):
		stmt = p.parseIterLoop()
	case p.peekKeyword("break"):
		stmt = p.parseSimpleKeywordStatement("break", StmtBreak)
	case p.peekKeyword("continue"):
		stmt = p.parseSimpleKeywordStatement("continue", StmtContinue)
	case p.peekKeyword("return"):
		stmt = p.parseReturnLike("return", StmtReturn)
	case p.peekKeyword("fail"):
		stmt = p.parseReturnLike("fail", StmtFail)
	case p.peekKeyword("echo"):
		stmt = p.parseEcho()
	case p.dialect.HasMoveFiles() && p.isMoveFilesAhead():
		stmt = p.parseMoveFiles()
	case p.dialect.HasConst() && p.peekKeyword("const"):
		stmt = p.parseConstInit()
	default:
		stmt = p.parseExpressionStatement()
	}

	if semi, ok := p.accept(TokenSemicolon); ok {
		stmt.Span.End = semi.Span.End
	}

	return stmt
}

// isDocComment reports whether a `//`-comment's text marks it as a doc
// comment (`///`) rather than an ordinary one.
func isDocComment(text string) bool {
	return len(text) >= 3 && text[:3] == "///"
}

func (p *parserState) parseDocString() Statement {
	tok := p.advance()

	return Statement{Kind: StmtDocString, Span: tok.Span, Text: tok.Value}
}

func (p *parserState) parseCommentStatement() Statement {
	tok := p.advance()

	return Statement{Kind: StmtComment, Span: tok.Span, Text: tok.Value}
}

func (p *parserState) parseShebang() Statement {
	tok := p.advance()

	return Statement{Kind: StmtShebang, Span: tok.Span, Text: tok.Value}
}

// parseVariableInit implements `let name = expr` or `let name = Type`.
func (p *parserState) parseVariableInit() Statement {
	kw, _ := p.acceptKeyword("let")
	name, _ := p.ident("variable")

	p.expectToken(TokenEq, "=", "variable initializer")

	var declType *DataType

	var initExpr *Expression

	if isBareTypeNameAhead(p.peek()) {
		typ := p.parseDataType()
		declType = &typ
	} else {
		e := p.parseExpression()
		initExpr = &e
	}

	end := nameOrDeclEnd(declType, initExpr, kw)

	return Statement{
		Kind: StmtVariableInit, Span: Span{Start: kw.Span.Start, End: end},
		Keyword: kw.Span, Name: name, DeclType: declType, InitExpr: initExpr,
	}
}

func (p *parserState) parseConstInit() Statement {
	kw, _ := p.acceptKeyword("const")
	name, _ := p.ident("constant")
	p.expectToken(TokenEq, "=", "constant initializer")
	initExpr := p.parseExpression()

	return Statement{
		Kind: StmtConstInit, Span: Span{Start: kw.Span.Start, End: initExpr.Span.End},
		Keyword: kw.Span, Name: name, InitExpr: &initExpr,
	}
}

// isBareTypeNameAhead reports whether tok is a bare type keyword, which
// disambiguates `let x = Num` (a type-only declaration) from an expression
// initializer. Text/Num/Bool/Null are not valid expression atoms on their
// own, so any initializer starting with one of them, `Num(…)` included, is
// read as a bare type.
func isBareTypeNameAhead(tok Token) bool {
	if tok.Kind != TokenIdentifier {
		return false
	}

	switch tok.Value {
	case "Text", "Num", "Bool", "Null":
		return true
	default:
		return false
	}
}

func nameOrDeclEnd(declType *DataType, initExpr *Expression, fallback Token) int {
	if declType != nil {
		return declType.Span.End
	}

	if initExpr != nil {
		return initExpr.Span.End
	}

	return fallback.Span.End
}

// isVariableSetAhead reports whether the cursor is at `ident =` (not
// `==`), the shape of a bare assignment (spec.md §4.7).
func (p *parserState) isVariableSetAhead() bool {
	tok := p.peek()
	if tok.Kind != TokenIdentifier || p.isReservedHere(tok.Value) {
		return false
	}

	return p.peekAt(1).Kind == TokenEq
}

func (p *parserState) parseVariableSet() Statement {
	name, nameSpan := p.ident("variable")
	p.expectToken(TokenEq, "=", "variable assignment")
	value := p.parseExpression()

	return Statement{
		Kind: StmtVariableSet, Span: Span{Start: nameSpan.Start, End: value.Span.End},
		Target: name, Value: &value,
	}
}

// isShorthandAhead reports whether the cursor is at `ident OP=` for one of
// +=, -=, *=, /=, %=.
func (p *parserState) isShorthandAhead() bool {
	tok := p.peek()
	if tok.Kind != TokenIdentifier || p.isReservedHere(tok.Value) {
		return false
	}

	switch p.peekAt(1).Kind {
	case TokenPlusEq, TokenMinusEq, TokenStarEq, TokenSlashEq, TokenPercentEq:
		return true
	default:
		return false
	}
}

func (p *parserState) parseShorthand() Statement {
	name, nameSpan := p.ident("variable")
	opTok := p.advance()

	kind := map[TokenKind]StatementKind{
		TokenPlusEq: StmtShorthandAdd, TokenMinusEq: StmtShorthandSub,
		TokenStarEq: StmtShorthandMul, TokenSlashEq: StmtShorthandDiv,
		TokenPercentEq: StmtShorthandModulo,
	}[opTok.Kind]

	value := p.parseExpression()

	return Statement{
		Kind: kind, Span: Span{Start: nameSpan.Start, End: value.Span.End},
		Target: name, Value: &value,
	}
}

func (p *parserState) parseBlockStatement() Statement {
	body, span := p.parseBlockBody()

	return Statement{Kind: StmtBlock, Span: span, Body: body}
}

func (p *parserState) parseBlockBody() ([]Statement, Span) {
	var body []Statement

	_, span := delimited(p, TokenLBrace, "{", func() any {
		body = p.parseStatementList(TokenRBrace)

		return nil
	}, TokenRBrace, "}", "block")

	return body, span
}

// parseIfStatement parses either a single-armed IfCond or a full IfChain
// with else-if/else arms, re-using IfBranch for both (spec.md §4.7).
func (p *parserState) parseIfStatement() Statement {
	start := p.peek()

	var branches []IfBranch

	kw, _ := p.acceptKeyword("if")
	cond := p.parseExpression()
	body, bodySpan := p.parseBlockBody()
	branches = append(branches, IfBranch{Cond: &cond, Body: body, Span: Span{Start: kw.Span.Start, End: bodySpan.End}})

	end := bodySpan.End

	for p.peekKeyword("else") {
		elseKw, _ := p.acceptKeyword("else")

		if p.peekKeyword("if") {
			innerKw, _ := p.acceptKeyword("if")
			innerCond := p.parseExpression()
			innerBody, innerSpan := p.parseBlockBody()
			branches = append(branches, IfBranch{
				Cond: &innerCond, Body: innerBody,
				Span: Span{Start: innerKw.Span.Start, End: innerSpan.End},
			})
			end = innerSpan.End

			continue
		}

		elseBody, elseSpan := p.parseBlockBody()
		branches = append(branches, IfBranch{Body: elseBody, Span: Span{Start: elseKw.Span.Start, End: elseSpan.End}})
		end = elseSpan.End
	}

	kind := StmtIfCond
	if len(branches) > 1 {
		kind = StmtIfChain
	}

	return Statement{Kind: kind, Span: Span{Start: start.Span.Start, End: end}, Keyword: kw.Span, Branches: branches}
}

func (p *parserState) parseInfiniteLoop() Statement {
	kw, _ := p.acceptKeyword("loop")
	body, span := p.parseBlockBody()

	return Statement{Kind: StmtInfiniteLoop, Span: Span{Start: kw.Span.Start, End: span.End}, Keyword: kw.Span, LoopBody: body}
}

// parseIterLoop implements `for binder in expr { body }`, accepting either
// a single name or `name, index` (index recovers to "" if missing, still
// preserving the comma's position per spec.md §4.7).
func (p *parserState) parseIterLoop() Statement {
	kw, _ := p.acceptKeyword("for")
	vars := p.parseIterLoopVars()
	inKw := p.expectKeyword("in", "for loop")
	iterExpr := p.parseExpression()
	body, bodySpan := p.parseBlockBody()

	return Statement{
		Kind: StmtIterLoop, Span: Span{Start: kw.Span.Start, End: bodySpan.End},
		Keyword: kw.Span, Vars: vars, InKw: inKw.Span, IterExpr: &iterExpr, IterBody: body,
	}
}

func (p *parserState) parseIterLoopVars() IterLoopVars {
	if tok := p.peek(); tok.Kind != TokenIdentifier || p.isReservedHere(tok.Value) {
		span := Span{Start: tok.Span.Start, End: tok.Span.Start}
		if skipped, ok := p.defaultRecovery(); ok {
			span = skipped.Span
		}

		p.diag(span, "expected loop variable name")

		return IterLoopVars{Kind: IterLoopVarsError, Span: span}
	}

	name, nameSpan := p.ident("loop variable")

	if _, ok := p.accept(TokenComma); ok {
		index, indexSpan := p.parseOptionalIndexName()
		span := Span{Start: nameSpan.Start, End: indexSpan.End}

		return IterLoopVars{Kind: IterLoopVarsWithIndex, Span: span, Name: name, Index: index}
	}

	return IterLoopVars{Kind: IterLoopVarsSingle, Span: nameSpan, Name: name}
}

func (p *parserState) parseOptionalIndexName() (string, Span) {
	if p.peekKeyword("in") {
		// Index omitted after the comma: recover to an empty string while
		// leaving the cursor exactly where the comma left it.
		at := p.peek().Span.Start

		return "", Span{Start: at, End: at}
	}

	return p.ident("loop index")
}

func (p *parserState) parseSimpleKeywordStatement(word string, kind StatementKind) Statement {
	kw, _ := p.acceptKeyword(word)

	return Statement{Kind: kind, Span: kw.Span, Keyword: kw.Span}
}

// parseReturnLike implements `return expr?` / `fail expr?`, both of which
// take an optional trailing expression.
func (p *parserState) parseReturnLike(word string, kind StatementKind) Statement {
	kw, _ := p.acceptKeyword(word)

	span := kw.Span

	var expr *Expression

	if canStartExpression(p.peek()) {
		e := p.parseExpression()
		expr = &e
		span = Span{Start: kw.Span.Start, End: e.Span.End}
	}

	return Statement{Kind: kind, Span: span, Keyword: kw.Span, Expr: expr}
}

func (p *parserState) parseEcho() Statement {
	kw, _ := p.acceptKeyword("echo")
	expr := p.parseExpression()

	return Statement{Kind: StmtEcho, Span: Span{Start: kw.Span.Start, End: expr.Span.End}, Keyword: kw.Span, Expr: &expr}
}

// isMoveFilesAhead looks past any modifier keywords for a leading `mv`.
func (p *parserState) isMoveFilesAhead() bool {
	i := 0

	for {
		tok := p.peekAt(i)
		if tok.Kind != TokenIdentifier {
			return false
		}

		switch tok.Value {
		case "unsafe", "silent", "trust":
			i++

			continue
		case "mv":
			return true
		default:
			return false
		}
	}
}

func (p *parserState) parseMoveFiles() Statement {
	mods, modsStart := p.parseModifiers()
	kw, _ := p.acceptKeyword("mv")
	src := p.parseExpression()
	dest := p.parseExpression()
	failure := p.parseOptionalFailureHandler()

	start := kw.Span.Start
	if len(mods) > 0 {
		start = modsStart.Start
	}

	end := dest.Span.End
	if failure != nil {
		end = failure.Span.End
	}

	return Statement{
		Kind: StmtMoveFiles, Span: Span{Start: start, End: end}, Keyword: kw.Span,
		Modifiers: mods, Src: &src, Dest: &dest, Failure: failure,
	}
}

func (p *parserState) parseExpressionStatement() Statement {
	before := p.pos
	expr := p.parseExpression()

	if p.pos == before {
		// parseExpression made no progress (e.g. cursor sits on a
		// structural token with no atom alternative): force one token of
		// progress so the statement list's safety valve isn't needed.
		tok := p.advance()

		return Statement{Kind: StmtError, Span: tok.Span}
	}

	return Statement{Kind: StmtExpression, Span: expr.Span, InnerExpr: &expr}
}
