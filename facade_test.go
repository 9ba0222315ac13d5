package amber_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	amber "github.com/amberlang/amber-ls"
)

// ignoreSpans lets TestRecoveryIdempotence assert on shape without pinning
// exact byte offsets.
var ignoreSpans = cmpopts.IgnoreFields(amber.Expression{}, "Span", "OpSpan")

func TestParseTotalOnMalformedInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"{{{{",
		"let x = ",
		"fun (",
		"\x00\x01\xff",
		"if x { echo $$",
	}

	for _, in := range inputs {
		resp := amber.Parse(in, amber.Alpha040)

		if resp.File.Items == nil && in != "" {
			// an empty file legitimately has nil Items; anything else
			// should still produce a defined (possibly empty) response.
			_ = resp
		}
	}
}

func TestParseLetStatement(t *testing.T) {
	t.Parallel()

	resp := amber.Parse("let x = 5", amber.Alpha040)

	if len(resp.Diagnostics) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", resp.Diagnostics)
	}

	if len(resp.File.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(resp.File.Items))
	}

	stmt := resp.File.Items[0].Stmt
	if stmt == nil || stmt.Kind != amber.StmtVariableInit {
		t.Fatalf("expected VariableInit, got %+v", resp.File.Items[0])
	}

	if stmt.Name != "x" {
		t.Fatalf("expected name x, got %q", stmt.Name)
	}

	if stmt.InitExpr == nil || stmt.InitExpr.Kind != amber.ExprNumber || stmt.InitExpr.NumberValue != 5 {
		t.Fatalf("expected Number(5), got %+v", stmt.InitExpr)
	}
}

func TestParseLetMissingNameRecovers(t *testing.T) {
	t.Parallel()

	resp := amber.Parse("let = 5", amber.Alpha040)

	if len(resp.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for the empty identifier")
	}

	stmt := resp.File.Items[0].Stmt
	if stmt.Name != "" {
		t.Fatalf("expected empty recovered name, got %q", stmt.Name)
	}

	if stmt.InitExpr == nil || stmt.InitExpr.NumberValue != 5 {
		t.Fatalf("expected initializer to still parse, got %+v", stmt.InitExpr)
	}
}

func TestParseIfCond(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`if x > 0 { echo "hi" }`, amber.Alpha040)

	if len(resp.Diagnostics) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", resp.Diagnostics)
	}

	stmt := resp.File.Items[0].Stmt
	if stmt.Kind != amber.StmtIfCond {
		t.Fatalf("expected IfCond, got %v", stmt.Kind)
	}

	if len(stmt.Branches) != 1 {
		t.Fatalf("expected one branch, got %d", len(stmt.Branches))
	}

	cond := stmt.Branches[0].Cond
	if cond == nil || cond.Kind != amber.ExprGt {
		t.Fatalf("expected Gt condition, got %+v", cond)
	}

	body := stmt.Branches[0].Body
	if len(body) != 1 || body[0].Kind != amber.StmtEcho {
		t.Fatalf("expected single Echo statement, got %+v", body)
	}
}

func TestParseIterLoopWithIndex(t *testing.T) {
	t.Parallel()

	resp := amber.Parse("for i, j in 0..10 { }", amber.Alpha040)

	stmt := resp.File.Items[0].Stmt
	if stmt.Kind != amber.StmtIterLoop {
		t.Fatalf("expected IterLoop, got %v", stmt.Kind)
	}

	if stmt.Vars.Kind != amber.IterLoopVarsWithIndex || stmt.Vars.Name != "i" || stmt.Vars.Index != "j" {
		t.Fatalf("expected WithIndex(i, j), got %+v", stmt.Vars)
	}

	if stmt.IterExpr == nil || stmt.IterExpr.Kind != amber.ExprRange {
		t.Fatalf("expected Range iterable, got %+v", stmt.IterExpr)
	}
}

func TestParseInterpolatedText(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`"hello {name} world"`, amber.Alpha040)

	stmt := resp.File.Items[0].Stmt
	if stmt.Kind != amber.StmtExpression {
		t.Fatalf("expected Expression statement, got %v", stmt.Kind)
	}

	text := stmt.InnerExpr
	if text.Kind != amber.ExprText {
		t.Fatalf("expected Text, got %v", text.Kind)
	}

	if len(text.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(text.Segments), text.Segments)
	}

	if text.Segments[0].Kind != amber.SegmentText || text.Segments[0].Text != "hello " {
		t.Fatalf("unexpected first segment: %+v", text.Segments[0])
	}

	if text.Segments[1].Kind != amber.SegmentExpression || text.Segments[1].Expr.Name != "name" {
		t.Fatalf("unexpected second segment: %+v", text.Segments[1])
	}

	if text.Segments[2].Kind != amber.SegmentText || text.Segments[2].Text != " world" {
		t.Fatalf("unexpected third segment: %+v", text.Segments[2])
	}
}

func TestParseUnclosedTextRecovers(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`"abc`, amber.Alpha040)

	if len(resp.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for the missing closing quote")
	}

	stmt := resp.File.Items[0].Stmt
	text := stmt.InnerExpr

	if text.Kind != amber.ExprText || len(text.Segments) != 1 || text.Segments[0].Text != "abc" {
		t.Fatalf("unexpected recovered text node: %+v", text)
	}
}

func TestParseCommandWithOptionAndPropagate(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`$ ls -la $?`, amber.Alpha040)

	stmt := resp.File.Items[0].Stmt
	cmdExpr := stmt.InnerExpr

	if cmdExpr.Kind != amber.ExprCommand {
		t.Fatalf("expected Command, got %v", cmdExpr.Kind)
	}

	var sawOption bool

	for _, seg := range cmdExpr.Segments {
		if seg.Kind == amber.SegmentCommandOption && seg.Text == "-la" {
			sawOption = true
		}
	}

	if !sawOption {
		t.Fatalf("expected a -la command option segment, got %+v", cmdExpr.Segments)
	}

	if cmdExpr.Failure == nil || cmdExpr.Failure.Kind != amber.FailurePropagate {
		t.Fatalf("expected a propagate failure handler, got %+v", cmdExpr.Failure)
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`fun f(x: Num): Text { return "ok" }`, amber.Alpha040)

	if len(resp.Diagnostics) != 0 {
		t.Fatalf("expected zero diagnostics, got %v", resp.Diagnostics)
	}

	item := resp.File.Items[0]
	if item.Kind != amber.GlobalFunctionDefinition {
		t.Fatalf("expected FunctionDefinition, got %v", item.Kind)
	}

	if item.Name != "f" {
		t.Fatalf("expected name f, got %q", item.Name)
	}

	if len(item.Params) != 1 || item.Params[0].Name != "x" || item.Params[0].Type == nil || item.Params[0].Type.Kind != amber.DataTypeNum {
		t.Fatalf("unexpected params: %+v", item.Params)
	}

	if item.ReturnType == nil || item.ReturnType.Kind != amber.DataTypeText {
		t.Fatalf("expected Text return type, got %+v", item.ReturnType)
	}

	if len(item.Body) != 1 || item.Body[0].Kind != amber.StmtReturn {
		t.Fatalf("expected single Return statement, got %+v", item.Body)
	}
}

func TestDialectIsolationExit(t *testing.T) {
	t.Parallel()

	respOld := amber.Parse("exit 1", amber.Alpha034)
	stmtOld := respOld.File.Items[0].Stmt

	if stmtOld.InnerExpr.Kind != amber.ExprVariable {
		t.Fatalf("expected exit to parse as a variable reference pre-0.4.0, got %v", stmtOld.InnerExpr.Kind)
	}

	respNew := amber.Parse("exit 1", amber.Alpha040)
	stmtNew := respNew.File.Items[0].Stmt

	if stmtNew.InnerExpr.Kind != amber.ExprExit {
		t.Fatalf("expected exit atom in 0.4.0-alpha, got %v", stmtNew.InnerExpr.Kind)
	}
}

func TestDialectIsolationConst(t *testing.T) {
	t.Parallel()

	resp := amber.Parse("const x = 1", amber.Alpha034)

	stmt := resp.File.Items[0].Stmt
	if stmt.Kind == amber.StmtConstInit {
		t.Fatal("const must not be accepted as a statement form before 0.3.5-alpha")
	}
}

func TestRecoveryIdempotence(t *testing.T) {
	t.Parallel()

	const src = `fun f(x: { { broken`

	first := amber.Parse(src, amber.Alpha040)
	second := amber.Parse(src, amber.Alpha040)

	if diff := cmp.Diff(first.File, second.File, ignoreSpans); diff != "" {
		t.Fatalf("parse is not idempotent (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(first.Diagnostics, second.Diagnostics); diff != "" {
		t.Fatalf("diagnostics differ between runs (-first +second):\n%s", diff)
	}
}

func TestSemanticTokensCoverKeywordsAndStrings(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`let x = "hi" // note`, amber.Alpha040)

	var sawKeyword, sawString, sawComment bool

	for _, tok := range resp.SemanticTokens {
		switch tok.Kind {
		case amber.SemanticKeyword:
			sawKeyword = true
		case amber.SemanticString:
			sawString = true
		case amber.SemanticComment:
			sawComment = true
		}
	}

	if !sawKeyword || !sawString || !sawComment {
		t.Fatalf("expected keyword, string and comment tokens, got %+v", resp.SemanticTokens)
	}
}
