package amber

// This file implements interpolated text (spec.md §4.5) and interpolated
// command (spec.md §4.6) bodies. Both are a spanned sequence of segments
// between a pair of delimiters, reusing the same segment alternatives
// (text run, escape, embedded `{ expr }`) with commands adding a fourth,
// CommandOption.

// parseInterpolatedText parses `"…"`. A missing closing brace is synthesised
// by delimited after its bounded skip, which also stops at any stop-set
// token; a missing closing quote is recovered by synthesising one
// (spec.md §4.5).
func (p *parserState) parseInterpolatedText() Expression {
	open := p.expectToken(TokenQuote, `"`, "text literal")

	var segments []InterpolatedSegment

	runStart := open.Span.End

	flushRun := func(end int) {
		if runStart >= 0 && end > runStart {
			segments = append(segments, InterpolatedSegment{
				Kind: SegmentText,
				Span: Span{Start: runStart, End: end},
				Text: sliceSource(p, runStart, end),
			})
		}

		runStart = -1
	}

	for !p.atEOF() {
		tok := p.peek()

		if tok.Kind == TokenQuote {
			break
		}

		if tok.Kind == TokenBackslash {
			flushRun(tok.Span.Start)

			seg := p.parseEscape()
			segments = append(segments, seg)
			runStart = seg.Span.End

			continue
		}

		if tok.Kind == TokenLBrace {
			flushRun(tok.Span.Start)

			seg := p.parseInterpolatedExpr()
			segments = append(segments, seg)
			runStart = seg.Span.End

			continue
		}

		if runStart < 0 {
			runStart = tok.Span.Start
		}

		p.advance()
	}

	flushRun(p.peek().Span.Start)

	close := p.expectToken(TokenQuote, `"`, "text literal")
	if close.Span.Start == close.Span.End {
		p.diag(close.Span, "missing closing %q", `"`)
	}

	span := Span{Start: open.Span.Start, End: close.Span.End}
	if span.End < span.Start {
		span.End = span.Start
	}

	return Expression{Kind: ExprText, Span: span, Segments: segments}
}

// parseInterpolatedCommand parses `$ … $`. Command options (`-x`,
// `--xyz`) are concatenated at parse time because the lexer tokenises the
// dashes and the following identifier separately (spec.md §4.6).
func (p *parserState) parseInterpolatedCommand() Expression {
	open := p.expectToken(TokenDollar, "$", "command literal")

	var segments []InterpolatedSegment

	runStart := open.Span.End

	flushRun := func(end int) {
		if runStart >= 0 && end > runStart {
			segments = append(segments, InterpolatedSegment{
				Kind: SegmentText,
				Span: Span{Start: runStart, End: end},
				Text: sliceSource(p, runStart, end),
			})
		}

		runStart = -1
	}

	for !p.atEOF() {
		tok := p.peek()

		if tok.Kind == TokenDollar {
			break
		}

		if tok.Kind == TokenBackslash {
			flushRun(tok.Span.Start)

			seg := p.parseEscape()
			segments = append(segments, seg)
			runStart = seg.Span.End

			continue
		}

		if tok.Kind == TokenLBrace {
			flushRun(tok.Span.Start)

			seg := p.parseInterpolatedExpr()
			segments = append(segments, seg)
			runStart = seg.Span.End

			continue
		}

		if tok.Kind == TokenMinus && isCommandOptionStart(p, tok) {
			flushRun(tok.Span.Start)

			seg := p.parseCommandOption()
			segments = append(segments, seg)
			runStart = seg.Span.End

			continue
		}

		if runStart < 0 {
			runStart = tok.Span.Start
		}

		p.advance()
	}

	flushRun(p.peek().Span.Start)

	close := p.expectToken(TokenDollar, "$", "command literal")

	failure := p.parseOptionalFailureHandler()

	end := close.Span.End
	if failure != nil {
		end = failure.Span.End
	}

	return Expression{Kind: ExprCommand, Span: Span{Start: open.Span.Start, End: end}, Segments: segments, Failure: failure}
}

func (p *parserState) parseEscape() InterpolatedSegment {
	backslash := p.advance()

	if p.atEOF() {
		p.diag(backslash.Span, "dangling escape at end of input")

		return InterpolatedSegment{Kind: SegmentEscape, Span: backslash.Span}
	}

	next := p.advance()
	text := next.Value

	var r rune
	if len(text) > 0 {
		r = []rune(text)[0]
	}

	return InterpolatedSegment{
		Kind: SegmentEscape,
		Span: Span{Start: backslash.Span.Start, End: next.Span.End},
		EscapedChar: r,
	}
}

func (p *parserState) parseInterpolatedExpr() InterpolatedSegment {
	var inner Expression

	_, span := delimited(p, TokenLBrace, "{", func() any {
		inner = p.parseExpression()

		return nil
	}, TokenRBrace, "}", "interpolated expression")

	return InterpolatedSegment{Kind: SegmentExpression, Span: span, Expr: &inner}
}

// isCommandOptionStart reports whether the `-`/`--` at the cursor is
// immediately followed (no gap) by an identifier, distinguishing an option
// from a literal hyphen in command text.
func isCommandOptionStart(p *parserState, dash Token) bool {
	next := p.peekAt(1)

	if next.Kind == TokenMinus && next.Span.Start == dash.Span.End {
		name := p.peekAt(2)

		return name.Kind == TokenIdentifier && name.Span.Start == next.Span.End
	}

	return next.Kind == TokenIdentifier && next.Span.Start == dash.Span.End
}

func (p *parserState) parseCommandOption() InterpolatedSegment {
	first := p.advance() // '-'

	text := first.Value

	if second, ok := p.accept(TokenMinus); ok && second.Span.Start == first.Span.End {
		text += second.Value
	}

	nameTok := p.advance() // identifier
	text += nameTok.Value

	return InterpolatedSegment{
		Kind: SegmentCommandOption,
		Span: Span{Start: first.Span.Start, End: nameTok.Span.End},
		Text: text,
	}
}

// sliceSource returns the literal source bytes for [start, end), including
// any whitespace gaps between tokens — the lexer drops no bytes from the
// source, so this is always safe (spec.md §4.2).
func sliceSource(p *parserState, start, end int) string {
	if start < 0 || end > len(p.source) || start > end {
		return ""
	}

	return p.source[start:end]
}
