package amber

// This file implements the top-level grammar of spec.md §4.8: a file is a
// sequence of Import, FunctionDefinition, Main, or bare Statement items.

// parseFile parses a complete source file under the parser state's dialect,
// returning the root node. It never fails; malformed top-level items
// recover to a bare-statement Error node and the parse continues.
func (p *parserState) parseFile() File {
	var items []GlobalStatement

	for !p.atEOF() {
		before := p.pos
		items = append(items, p.parseGlobalStatement())

		if p.pos == before {
			p.advance()
		}
	}

	span := Span{Start: 0, End: len(p.source)}
	if len(items) > 0 {
		span = Span{Start: items[0].Span.Start, End: items[len(items)-1].Span.End}
	}

	return File{Items: items, Span: span}
}

func (p *parserState) parseGlobalStatement() GlobalStatement {
	switch {
	case p.peekKeyword("import"):
		return p.parseImport()
	case p.isFunctionDefinitionAhead():
		return p.parseFunctionDefinition()
	case p.peekKeyword("main"):
		return p.parseMain()
	default:
		stmt := p.parseStatement()

		return GlobalStatement{Kind: GlobalStatementKindStatement, Span: stmt.Span, Stmt: &stmt}
	}
}

// parseImport implements `import { a, b } "path"` and `import * "path"`.
func (p *parserState) parseImport() GlobalStatement {
	kw, _ := p.acceptKeyword("import")

	var (
		kind  ImportKind
		names []string
	)

	switch {
	case p.peek().Kind == TokenStar:
		p.advance()

		kind = ImportAll
	case p.peek().Kind == TokenLBrace:
		_, _ = delimited(p, TokenLBrace, "{", func() any {
			for p.peek().Kind != TokenRBrace && !p.atEOF() {
				name, _ := p.ident("imported symbol")
				names = append(names, name)

				if _, ok := p.accept(TokenComma); !ok {
					break
				}
			}

			return nil
		}, TokenRBrace, "}", "import list")

		kind = ImportSpecific
	default:
		p.diag(p.peek().Span, "expected * or { ... } after import")
	}

	pathExpr := p.parseInterpolatedText()

	return GlobalStatement{
		Kind: GlobalImport, Span: Span{Start: kw.Span.Start, End: pathExpr.Span.End},
		ImportKind: kind, ImportNames: names, ImportPath: sliceSource(p, pathExpr.Span.Start, pathExpr.Span.End),
	}
}

// isFunctionDefinitionAhead reports whether the cursor is at `fun`,
// optionally preceded by `pub`.
func (p *parserState) isFunctionDefinitionAhead() bool {
	if p.peekKeyword("fun") {
		return true
	}

	return p.peekKeyword("pub") && p.peekAtKeyword(1, "fun")
}

func (p *parserState) peekAtKeyword(n int, word string) bool {
	tok := p.peekAt(n)

	return tok.Kind == TokenIdentifier && tok.Value == word
}

// parseFunctionDefinition implements `pub? fun name(params): RetType? { body }`.
func (p *parserState) parseFunctionDefinition() GlobalStatement {
	start := p.peek().Span

	// pub only widens the node's span; spec.md §3's FunctionDefinition
	// shape carries no visibility field to record it in.
	p.acceptKeyword("pub")

	p.expectKeyword("fun", "function definition")
	name, _ := p.ident("function")

	var params []FunctionParam

	_, _ = delimited(p, TokenLParen, "(", func() any {
		for p.peek().Kind != TokenRParen && !p.atEOF() {
			params = append(params, p.parseFunctionParam())

			if _, ok := p.accept(TokenComma); !ok {
				break
			}
		}

		return nil
	}, TokenRParen, ")", "function parameters")

	var returnType *DataType

	if _, ok := p.accept(TokenColon); ok {
		typ := p.parseDataType()
		returnType = &typ
	}

	body, bodySpan := p.parseBlockBody()

	return GlobalStatement{
		Kind: GlobalFunctionDefinition, Span: Span{Start: start.Start, End: bodySpan.End},
		Name: name, Params: params, ReturnType: returnType, Body: body,
	}
}

func (p *parserState) parseFunctionParam() FunctionParam {
	name, nameSpan := p.ident("parameter")

	var typ *DataType

	end := nameSpan.End

	if _, ok := p.accept(TokenColon); ok {
		t := p.parseDataType()
		typ = &t
		end = t.Span.End
	}

	return FunctionParam{Name: name, Type: typ, Span: Span{Start: nameSpan.Start, End: end}}
}

func (p *parserState) parseMain() GlobalStatement {
	kw, _ := p.acceptKeyword("main")
	body, span := p.parseBlockBody()

	return GlobalStatement{Kind: GlobalMain, Span: Span{Start: kw.Span.Start, End: span.End}, Body: body}
}
