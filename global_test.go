package amber_test

import (
	"testing"

	amber "github.com/amberlang/amber-ls"
)

func TestImportSpecificList(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`import { a, b } "std/text"`, amber.Alpha040)

	if len(resp.File.Items) != 1 {
		t.Fatalf("expected a single item, got %+v", resp.File.Items)
	}

	item := resp.File.Items[0]
	if item.Kind != amber.GlobalImport || item.ImportKind != amber.ImportSpecific {
		t.Fatalf("expected a specific import, got %+v", item)
	}

	if len(item.ImportNames) != 2 || item.ImportNames[0] != "a" || item.ImportNames[1] != "b" {
		t.Fatalf("unexpected import names: %+v", item.ImportNames)
	}

	if item.ImportPath != `"std/text"` {
		t.Fatalf("unexpected import path: %q", item.ImportPath)
	}
}

func TestImportAll(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`import * "std/math"`, amber.Alpha040)

	if len(resp.File.Items) != 1 || resp.File.Items[0].ImportKind != amber.ImportAll {
		t.Fatalf("expected an ImportAll, got %+v", resp.File.Items)
	}
}

func TestFunctionDefinitionTypedParamsAndReturn(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`fun add(a: Num, b: Num): Num { return a + b }`, amber.Alpha040)

	if len(resp.File.Items) != 1 || resp.File.Items[0].Kind != amber.GlobalFunctionDefinition {
		t.Fatalf("expected a single FunctionDefinition, got %+v", resp.File.Items)
	}

	fn := resp.File.Items[0]
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}

	if fn.Params[0].Type == nil || fn.Params[0].Type.Kind != amber.DataTypeNum {
		t.Fatalf("expected param a: Num, got %+v", fn.Params[0])
	}

	if fn.ReturnType == nil || fn.ReturnType.Kind != amber.DataTypeNum {
		t.Fatalf("expected return type Num, got %+v", fn.ReturnType)
	}

	if len(fn.Body) != 1 || fn.Body[0].Kind != amber.StmtReturn {
		t.Fatalf("unexpected body: %+v", fn.Body)
	}
}

func TestFunctionDefinitionUntypedParams(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`fun greet(name) { echo name }`, amber.Alpha040)

	fn := resp.File.Items[0]
	if fn.Kind != amber.GlobalFunctionDefinition || len(fn.Params) != 1 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}

	if fn.Params[0].Type != nil {
		t.Fatalf("expected an untyped parameter, got %+v", fn.Params[0])
	}
}

func TestPubFunctionDefinition(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`pub fun helper() { }`, amber.Alpha040)

	if len(resp.File.Items) != 1 || resp.File.Items[0].Kind != amber.GlobalFunctionDefinition {
		t.Fatalf("expected pub fun to parse as FunctionDefinition, got %+v", resp.File.Items)
	}

	if resp.File.Items[0].Name != "helper" {
		t.Fatalf("unexpected name: %q", resp.File.Items[0].Name)
	}
}

func TestMainBlock(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`main { let x = 1 }`, amber.Alpha040)

	if len(resp.File.Items) != 1 || resp.File.Items[0].Kind != amber.GlobalMain {
		t.Fatalf("expected a single Main item, got %+v", resp.File.Items)
	}

	if len(resp.File.Items[0].Body) != 1 {
		t.Fatalf("expected one statement in main body, got %+v", resp.File.Items[0].Body)
	}
}

func TestArrayTypeAnnotation(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`fun first(xs: [Num]): Num { return xs[0] }`, amber.Alpha040)

	fn := resp.File.Items[0]
	if fn.Params[0].Type == nil || fn.Params[0].Type.Kind != amber.DataTypeArray {
		t.Fatalf("expected array type, got %+v", fn.Params[0].Type)
	}

	if fn.Params[0].Type.Inner == nil || fn.Params[0].Type.Inner.Kind != amber.DataTypeNum {
		t.Fatalf("expected inner Num, got %+v", fn.Params[0].Type.Inner)
	}
}

func TestMalformedImportRecoversWithDiagnostic(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`import "no-clause-path"`, amber.Alpha040)

	if len(resp.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for a missing * or { } clause")
	}

	if len(resp.File.Items) == 0 || resp.File.Items[0].Kind != amber.GlobalImport {
		t.Fatalf("expected parsing to still recover to a GlobalImport node, got %+v", resp.File.Items)
	}
}

func TestTopLevelBareStatement(t *testing.T) {
	t.Parallel()

	resp := amber.Parse(`let x = 1`, amber.Alpha040)

	if len(resp.File.Items) != 1 || resp.File.Items[0].Kind != amber.GlobalStatementKindStatement {
		t.Fatalf("expected a bare statement item, got %+v", resp.File.Items)
	}

	if resp.File.Items[0].Stmt == nil || resp.File.Items[0].Stmt.Kind != amber.StmtVariableInit {
		t.Fatalf("expected a VarInit statement, got %+v", resp.File.Items[0].Stmt)
	}
}
