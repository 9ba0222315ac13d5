package amber_test

import (
	"testing"

	amber "github.com/amberlang/amber-ls"
)

func parseExpr(t *testing.T, src string, dialect amber.Dialect) amber.Expression {
	t.Helper()

	resp := amber.Parse(src, dialect)

	if len(resp.File.Items) == 0 || resp.File.Items[0].Stmt == nil {
		t.Fatalf("expected a single expression statement, got %+v", resp.File.Items)
	}

	stmt := resp.File.Items[0].Stmt
	if stmt.Kind != amber.StmtExpression {
		t.Fatalf("expected StmtExpression, got %v", stmt.Kind)
	}

	return *stmt.InnerExpr
}

func TestPrecedenceSumBeforeComparison(t *testing.T) {
	t.Parallel()

	e := parseExpr(t, "1 + 2 == 3", amber.Alpha040)

	if e.Kind != amber.ExprEq {
		t.Fatalf("expected top node Eq, got %v", e.Kind)
	}

	if e.Lhs.Kind != amber.ExprAdd {
		t.Fatalf("expected lhs Add, got %v", e.Lhs.Kind)
	}
}

func TestPrecedenceProductBeforeSum(t *testing.T) {
	t.Parallel()

	e := parseExpr(t, "1 + 2 * 3", amber.Alpha040)

	if e.Kind != amber.ExprAdd {
		t.Fatalf("expected top node Add, got %v", e.Kind)
	}

	if e.Rhs.Kind != amber.ExprMultiply {
		t.Fatalf("expected rhs Multiply, got %v", e.Rhs.Kind)
	}
}

func TestUnaryRightFold(t *testing.T) {
	t.Parallel()

	e := parseExpr(t, "not not true", amber.Alpha040)

	if e.Kind != amber.ExprNot || e.Inner.Kind != amber.ExprNot {
		t.Fatalf("expected Not(Not(...)), got %+v", e)
	}

	if e.Inner.Inner.Kind != amber.ExprBoolean || !e.Inner.Inner.BoolValue {
		t.Fatalf("expected innermost Boolean(true), got %+v", e.Inner.Inner)
	}
}

func TestArrayIndexLeftFold(t *testing.T) {
	t.Parallel()

	e := parseExpr(t, "a[0][1]", amber.Alpha040)

	if e.Kind != amber.ExprArrayIndex {
		t.Fatalf("expected ArrayIndex, got %v", e.Kind)
	}

	if e.Index.NumberValue != 1 {
		t.Fatalf("expected outer index 1, got %v", e.Index.NumberValue)
	}

	if e.Inner.Kind != amber.ExprArrayIndex || e.Inner.Index.NumberValue != 0 {
		t.Fatalf("expected inner ArrayIndex with index 0, got %+v", e.Inner)
	}
}

func TestCastAndIsLeftFold(t *testing.T) {
	t.Parallel()

	e := parseExpr(t, "x as Num is Text", amber.Alpha040)

	if e.Kind != amber.ExprIs {
		t.Fatalf("expected top node Is, got %v", e.Kind)
	}

	if e.Inner.Kind != amber.ExprCast {
		t.Fatalf("expected inner Cast, got %v", e.Inner.Kind)
	}
}

func TestTernaryGatedByDialect(t *testing.T) {
	t.Parallel()

	old := parseExpr(t, "true then 1 else 2", amber.Alpha034)
	if old.Kind == amber.ExprTernary {
		t.Fatal("ternary must not parse before 0.3.5-alpha")
	}

	newer := parseExpr(t, "true then 1 else 2", amber.Alpha035)
	if newer.Kind != amber.ExprTernary {
		t.Fatalf("expected Ternary in 0.3.5-alpha, got %v", newer.Kind)
	}
}

func TestRangeLeftAssociative(t *testing.T) {
	t.Parallel()

	e := parseExpr(t, "0..10", amber.Alpha040)

	if e.Kind != amber.ExprRange {
		t.Fatalf("expected Range, got %v", e.Kind)
	}

	if e.RangeStart.NumberValue != 0 || e.RangeEnd.NumberValue != 10 {
		t.Fatalf("unexpected range bounds: %+v", e)
	}

	chained := parseExpr(t, "0..5..10", amber.Alpha040)
	if chained.Kind != amber.ExprRange || chained.RangeStart.Kind != amber.ExprRange ||
		chained.RangeEnd.NumberValue != 10 {
		t.Fatalf("expected Range(Range(0, 5), 10), got %+v", chained)
	}
}

func TestFunctionInvocationWithModifiers(t *testing.T) {
	t.Parallel()

	e := parseExpr(t, "trust f(1, 2)", amber.Alpha040)

	if e.Kind != amber.ExprFunctionInvocation {
		t.Fatalf("expected FunctionInvocation, got %v", e.Kind)
	}

	if e.Name != "f" || len(e.Args) != 2 {
		t.Fatalf("unexpected invocation: %+v", e)
	}

	if len(e.Modifiers) != 1 || e.Modifiers[0].Name != "trust" {
		t.Fatalf("expected a trust modifier, got %+v", e.Modifiers)
	}
}

func TestMalformedExpressionRecoversToError(t *testing.T) {
	t.Parallel()

	resp := amber.Parse("let x = +", amber.Alpha040)

	if len(resp.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}

	stmt := resp.File.Items[0].Stmt
	if stmt.InitExpr == nil {
		t.Fatal("expected an initializer expression even on malformed input")
	}
}
