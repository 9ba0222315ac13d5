package amber

// This file implements spec.md §4.10's semantic_tokens output: a walk of
// the tree producing one SemanticToken per highlight-worthy span. The walk
// is pre-order, not post-order: a node's own keyword or operator span is
// emitted before the tokens of its children.

// SemanticTokenKind is the closed set of highlight categories the LSP
// layer maps to its own token-type legend.
type SemanticTokenKind int

const (
	SemanticKeyword SemanticTokenKind = iota
	SemanticVariable
	SemanticOperator
	SemanticString
	SemanticNumber
	SemanticComment
)

// SemanticToken is one highlight-worthy span of the source.
type SemanticToken struct {
	Span Span
	Kind SemanticTokenKind
}

// semanticWalker accumulates tokens during a pre-order tree walk.
type semanticWalker struct {
	tokens []SemanticToken
}

func (w *semanticWalker) emit(span Span, kind SemanticTokenKind) {
	if span.Start == span.End {
		return
	}

	w.tokens = append(w.tokens, SemanticToken{Span: span, Kind: kind})
}

// walkFile produces the semantic token list for a parsed file from the tree
// alone; it reads no lexer tokens, so keyword spans that no AST node keeps
// are not highlighted (standalone comments between statements do appear,
// as Statement::Comment nodes).
func walkFile(file File) []SemanticToken {
	w := &semanticWalker{}

	for _, item := range file.Items {
		w.walkGlobalStatement(item)
	}

	return w.tokens
}

func (w *semanticWalker) walkGlobalStatement(g GlobalStatement) {
	switch g.Kind {
	case GlobalImport:
		w.emit(Span{Start: g.Span.Start, End: g.Span.Start + len("import")}, SemanticKeyword)
	case GlobalFunctionDefinition:
		for _, param := range g.Params {
			w.emit(param.Span, SemanticVariable)

			if param.Type != nil {
				w.walkDataType(*param.Type)
			}
		}

		if g.ReturnType != nil {
			w.walkDataType(*g.ReturnType)
		}

		for _, stmt := range g.Body {
			w.walkStatement(stmt)
		}
	case GlobalMain:
		for _, stmt := range g.Body {
			w.walkStatement(stmt)
		}
	case GlobalStatementKindStatement:
		if g.Stmt != nil {
			w.walkStatement(*g.Stmt)
		}
	}
}

func (w *semanticWalker) walkDataType(t DataType) {
	if t.Inner != nil {
		w.walkDataType(*t.Inner)
	}
}

func (w *semanticWalker) walkStatement(s Statement) {
	switch s.Kind {
	case StmtComment, StmtDocString:
		w.emit(s.Span, SemanticComment)
	case StmtShebang:
		w.emit(s.Span, SemanticComment)
	case StmtBlock:
		for _, inner := range s.Body {
			w.walkStatement(inner)
		}
	case StmtVariableInit, StmtConstInit:
		w.emit(s.Keyword, SemanticKeyword)

		if s.DeclType != nil {
			w.walkDataType(*s.DeclType)
		}

		if s.InitExpr != nil {
			w.walkExpression(*s.InitExpr)
		}
	case StmtVariableSet, StmtShorthandAdd, StmtShorthandSub, StmtShorthandMul, StmtShorthandDiv, StmtShorthandModulo:
		if s.Value != nil {
			w.walkExpression(*s.Value)
		}
	case StmtIfCond, StmtIfChain:
		for _, branch := range s.Branches {
			if branch.Cond != nil {
				w.walkExpression(*branch.Cond)
			}

			for _, inner := range branch.Body {
				w.walkStatement(inner)
			}
		}
	case StmtInfiniteLoop:
		w.emit(s.Keyword, SemanticKeyword)

		for _, inner := range s.LoopBody {
			w.walkStatement(inner)
		}
	case StmtIterLoop:
		w.emit(s.Keyword, SemanticKeyword)
		w.emit(s.InKw, SemanticKeyword)
		w.emit(s.Vars.Span, SemanticVariable)

		if s.IterExpr != nil {
			w.walkExpression(*s.IterExpr)
		}

		for _, inner := range s.IterBody {
			w.walkStatement(inner)
		}
	case StmtBreak, StmtContinue:
		w.emit(s.Keyword, SemanticKeyword)
	case StmtReturn, StmtFail:
		w.emit(s.Keyword, SemanticKeyword)

		if s.Expr != nil {
			w.walkExpression(*s.Expr)
		}
	case StmtEcho:
		w.emit(s.Keyword, SemanticKeyword)

		if s.Expr != nil {
			w.walkExpression(*s.Expr)
		}
	case StmtMoveFiles:
		w.emit(s.Keyword, SemanticKeyword)

		if s.Src != nil {
			w.walkExpression(*s.Src)
		}

		if s.Dest != nil {
			w.walkExpression(*s.Dest)
		}

		w.walkFailureHandler(s.Failure)
	case StmtExpression:
		if s.InnerExpr != nil {
			w.walkExpression(*s.InnerExpr)
		}
	case StmtError:
		// No payload to highlight.
	}
}

func (w *semanticWalker) walkFailureHandler(f *FailureHandler) {
	if f == nil {
		return
	}

	if f.Kind == FailureHandle {
		for _, stmt := range f.Body {
			w.walkStatement(stmt)
		}
	}
}

//nolint:cyclop,gocyclo // one switch arm per AST variant, mirrors the node set in ast.go
func (w *semanticWalker) walkExpression(e Expression) {
	switch e.Kind {
	case ExprBoolean, ExprNull, ExprStatus:
		w.emit(e.Span, SemanticKeyword)
	case ExprNumber:
		w.emit(e.Span, SemanticNumber)
	case ExprVariable:
		w.emit(e.Span, SemanticVariable)
	case ExprText:
		w.walkSegments(e.Segments, SemanticString)
	case ExprCommand:
		w.walkSegments(e.Segments, SemanticString)
		w.walkFailureHandler(e.Failure)
	case ExprArray:
		for _, item := range e.Items {
			w.walkExpression(item)
		}
	case ExprParentheses:
		if e.Inner != nil {
			w.walkExpression(*e.Inner)
		}
	case ExprFunctionInvocation:
		for _, mod := range e.Modifiers {
			w.emit(mod.Span, SemanticKeyword)
		}

		for _, arg := range e.Args {
			w.walkExpression(arg)
		}

		w.walkFailureHandler(e.Failure)
	case ExprArrayIndex:
		if e.Inner != nil {
			w.walkExpression(*e.Inner)
		}

		if e.Index != nil {
			w.walkExpression(*e.Index)
		}
	case ExprNeg, ExprNot, ExprNameof:
		w.emit(e.OpSpan, SemanticKeyword)

		if e.Inner != nil {
			w.walkExpression(*e.Inner)
		}
	case ExprAdd, ExprSubtract, ExprMultiply, ExprDivide, ExprModulo,
		ExprEq, ExprNeq, ExprLt, ExprLe, ExprGt, ExprGe, ExprAnd, ExprOr:
		w.emit(e.OpSpan, SemanticOperator)

		if e.Lhs != nil {
			w.walkExpression(*e.Lhs)
		}

		if e.Rhs != nil {
			w.walkExpression(*e.Rhs)
		}
	case ExprCast, ExprIs:
		w.emit(e.OpSpan, SemanticKeyword)

		if e.Inner != nil {
			w.walkExpression(*e.Inner)
		}

		if e.Type != nil {
			w.walkDataType(*e.Type)
		}
	case ExprRange:
		if e.RangeStart != nil {
			w.walkExpression(*e.RangeStart)
		}

		if e.RangeEnd != nil {
			w.walkExpression(*e.RangeEnd)
		}
	case ExprTernary:
		w.emit(e.OpSpan, SemanticKeyword)

		if e.Cond != nil {
			w.walkExpression(*e.Cond)
		}

		if e.Then != nil {
			w.walkExpression(*e.Then)
		}

		if e.Else != nil {
			w.walkExpression(*e.Else)
		}
	case ExprExit:
		w.emit(e.ExitKw, SemanticKeyword)

		if e.ExitCode != nil {
			w.walkExpression(*e.ExitCode)
		}
	case ExprError:
		// No payload to highlight.
	}
}

func (w *semanticWalker) walkSegments(segments []InterpolatedSegment, textKind SemanticTokenKind) {
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentText, SegmentEscape, SegmentCommandOption:
			w.emit(seg.Span, textKind)
		case SegmentExpression:
			if seg.Expr != nil {
				w.walkExpression(*seg.Expr)
			}
		}
	}
}
