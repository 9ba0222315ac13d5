package amber

// This file defines the AST node set from spec.md §3: every production the
// grammar can build, including its Error placeholders. Nodes are plain
// structs rather than participle struct-tagged grammars (see DESIGN.md) —
// the tree is built by the hand-written recursive-descent layers in
// expr.go, stmt.go and global.go, not by reflection over tags.
//
// The tree is deliberately lossy-preserving: keyword spans, modifier lists
// and error placeholders all survive into the final tree.

// Expression is a recursive tagged variant. Exactly one of the Kind-tagged
// fields is meaningful for a given ExpressionKind; this mirrors a sum type
// using a discriminant plus payload fields, which is how this module's
// teacher represents its own tagged AST nodes.
type ExpressionKind int

const (
	ExprError ExpressionKind = iota
	ExprBoolean
	ExprNull
	ExprNumber
	ExprStatus
	ExprVariable
	ExprText
	ExprCommand
	ExprArray
	ExprParentheses
	ExprFunctionInvocation
	ExprArrayIndex
	ExprNeg
	ExprNot
	ExprNameof
	ExprAdd
	ExprSubtract
	ExprMultiply
	ExprDivide
	ExprModulo
	ExprEq
	ExprNeq
	ExprLt
	ExprLe
	ExprGt
	ExprGe
	ExprAnd
	ExprOr
	ExprCast
	ExprIs
	ExprRange
	ExprTernary
	ExprExit
)

// Expression is one node of the expression tree.
type Expression struct {
	Kind ExpressionKind
	Span Span

	// Leaf payloads.
	BoolValue   bool    // ExprBoolean
	NumberValue float64 // ExprNumber; widened to float64, see DESIGN.md Open Question (b)
	NumberText  string  // ExprNumber: original source text, preserved for round-trip/highlighting
	Name        string  // ExprVariable, ExprFunctionInvocation (callee name)

	// Composite payloads. Unused fields for a given Kind are left zero.
	Segments   []InterpolatedSegment // ExprText, ExprCommand
	Items      []Expression          // ExprArray
	Inner      *Expression           // ExprParentheses, ExprNeg, ExprNot, ExprNameof, ExprCast, ExprIs, ExprArrayIndex.Target
	Index      *Expression           // ExprArrayIndex
	Lhs        *Expression           // binary layers
	Rhs        *Expression           // binary layers
	OpSpan     Span                  // span of the operator/keyword token for a unary or binary node
	Modifiers  []Modifier            // ExprFunctionInvocation
	Args       []Expression          // ExprFunctionInvocation
	Failure    *FailureHandler       // ExprFunctionInvocation, ExprCommand
	Type       *DataType             // ExprCast, ExprIs
	RangeStart *Expression           // ExprRange
	RangeEnd   *Expression           // ExprRange
	Cond       *Expression           // ExprTernary
	Then       *Expression           // ExprTernary
	Else       *Expression           // ExprTernary
	ExitKw     Span                  // ExprExit
	ExitCode   *Expression           // ExprExit, optional
}

// Modifier is a keyword prefix on a function invocation or mv statement
// (`unsafe`, `silent`, `trust`). Each carries its own span so recovery can
// point at the exact modifier token.
type Modifier struct {
	Name string
	Span Span
}

// InterpolatedSegmentKind tags one alternative inside InterpolatedText or
// InterpolatedCommand (spec.md §4.5, §4.6).
type InterpolatedSegmentKind int

const (
	SegmentText InterpolatedSegmentKind = iota
	SegmentEscape
	SegmentExpression
	SegmentCommandOption
)

// InterpolatedSegment is one alternative of an interpolated text/command
// body.
type InterpolatedSegment struct {
	Kind InterpolatedSegmentKind
	Span Span

	Text        string      // SegmentText, SegmentCommandOption (includes the leading -/--)
	EscapedChar rune        // SegmentEscape
	Expr        *Expression // SegmentExpression
}

// FailureHandlerKind tags a postfix `?` versus a `failed { ... }` block.
type FailureHandlerKind int

const (
	FailurePropagate FailureHandlerKind = iota
	FailureHandle
)

// FailureHandler is the optional suffix on function invocations, commands
// and mv statements (spec.md §4.7 "Failure handler syntax is shared").
type FailureHandler struct {
	Kind FailureHandlerKind
	Span Span
	Body []Statement // FailureHandle only
}

// DataTypeKind enumerates spec.md §3's closed DataType variants.
type DataTypeKind int

const (
	DataTypeText DataTypeKind = iota
	DataTypeNum
	DataTypeBool
	DataTypeNull
	DataTypeArray
	DataTypeError
)

// DataType is a (possibly nested, for Array) type annotation.
type DataType struct {
	Kind  DataTypeKind
	Span  Span
	Inner *DataType // DataTypeArray only
}

// StatementKind enumerates spec.md §3's closed Statement variants.
type StatementKind int

const (
	StmtError StatementKind = iota
	StmtComment
	StmtShebang
	StmtDocString
	StmtBlock
	StmtVariableInit
	StmtConstInit
	StmtVariableSet
	StmtShorthandAdd
	StmtShorthandSub
	StmtShorthandMul
	StmtShorthandDiv
	StmtShorthandModulo
	StmtIfCond
	StmtIfChain
	StmtInfiniteLoop
	StmtIterLoop
	StmtBreak
	StmtContinue
	StmtReturn
	StmtFail
	StmtEcho
	StmtMoveFiles
	StmtExpression
)

// IfBranch is one `if cond { body }` / trailing `else { body }` arm of an
// IfChain, or the single arm of an IfCond.
type IfBranch struct {
	Cond *Expression // nil for a trailing else-without-condition arm
	Body []Statement
	Span Span
}

// IterLoopVarsKind tags the binder form of a for loop (spec.md §4.7: "a
// single binder or name, index").
type IterLoopVarsKind int

const (
	IterLoopVarsSingle IterLoopVarsKind = iota
	IterLoopVarsWithIndex
	IterLoopVarsError
)

// IterLoopVars is the binder(s) of a for loop.
type IterLoopVars struct {
	Kind  IterLoopVarsKind
	Span  Span
	Name  string // IterLoopVarsSingle, IterLoopVarsWithIndex
	Index string // IterLoopVarsWithIndex; empty string if recovered from a missing index (§4.7)
}

// Statement is one node of the statement tree.
type Statement struct {
	Kind StatementKind
	Span Span

	// Leaf/simple payloads.
	Text string // StmtComment (comment text), StmtShebang, StmtDocString

	Keyword Span // span of the statement's introducing keyword, where one exists

	// StmtVariableInit / StmtConstInit
	Name     string
	DeclType *DataType   // nil if the declaration is an expression initializer instead
	InitExpr *Expression // nil if DeclType is set

	// StmtVariableSet, shorthand statements
	Target string
	Value  *Expression

	// StmtBlock
	Body []Statement

	// StmtIfCond / StmtIfChain
	Branches []IfBranch

	// StmtInfiniteLoop
	LoopBody []Statement

	// StmtIterLoop
	Vars     IterLoopVars
	InKw     Span
	IterExpr *Expression
	IterBody []Statement

	// StmtReturn, StmtFail, StmtEcho
	Expr *Expression // optional for Return/Fail, required for Echo

	// StmtMoveFiles
	Modifiers []Modifier
	Src       *Expression
	Dest      *Expression
	Failure   *FailureHandler

	// StmtExpression
	InnerExpr *Expression
}

// GlobalStatementKind enumerates spec.md §3/§4.8's file top-level items.
type GlobalStatementKind int

const (
	GlobalImport GlobalStatementKind = iota
	GlobalFunctionDefinition
	GlobalMain
	GlobalStatementKindStatement
)

// ImportKind distinguishes `import { a, b } "path"` from `import * "path"`.
type ImportKind int

const (
	ImportSpecific ImportKind = iota
	ImportAll
)

// FunctionParam is one parameter of a FunctionDefinition: either untyped
// (generic) or `name: Type` (spec.md §4.8).
type FunctionParam struct {
	Name string
	Type *DataType // nil if untyped
	Span Span
}

// GlobalStatement is one file top-level item.
type GlobalStatement struct {
	Kind GlobalStatementKind
	Span Span

	// GlobalImport
	ImportKind  ImportKind
	ImportNames []string // ImportSpecific only
	ImportPath  string

	// GlobalFunctionDefinition
	Name       string
	Params     []FunctionParam
	ReturnType *DataType // nil if no return type annotation
	Body       []Statement

	// GlobalMain reuses Body above.

	// GlobalStatementKindStatement
	Stmt *Statement
}

// File is the root of a parsed source file: an ordered sequence of
// top-level items, always produced even when some items are Error
// placeholders (spec.md §4.9).
type File struct {
	Items []GlobalStatement
	Span  Span
}
