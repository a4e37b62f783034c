package checker

import (
	"testing"

	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/reporter"
)

func TestMinimalMain(t *testing.T) {
	expectAccepted(t, run(mainProc()))
}

func TestMissingMain(t *testing.T) {
	r := run(proc("helper", nil, nil))
	expectDiagnostics(t, r, "this program is missing a main subroutine")
	if r.diags[0].Message != "this program is missing a main subroutine" {
		t.Errorf("got %q", r.diags[0].Message)
	}
	if r.diags[0].Category != reporter.Signature {
		t.Errorf("category = %s", r.diags[0].Category)
	}
}

func TestMainSignature(t *testing.T) {
	cases := []struct {
		name string
		main *ast.Proc
	}{
		{"parameters", proc("main", nil, params("argc", ast.Int))},
		{"return value", proc("main", ast.Int, nil, &ast.Return{Value: lit(0)})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			expectDiagnostics(t, run(c.main), `"main" should not take any argument and should not return any value`)
		})
	}
}

func TestDuplicatedProcedure(t *testing.T) {
	first := proc("f", nil, params("x", ast.Int))
	second := proc("f", ast.Int, nil, &ast.Return{Value: lit(1)})

	r := run(first, second, mainProc(&ast.ExprStmt{Expression: call("f", lit(3))}))
	expectDiagnostics(t, r, "duplicated procedure name: f")

	sig := r.info.Procs["f"]
	if len(sig.Params) != 1 || sig.Returns != ast.Void {
		t.Errorf("f registered as %s, want the first declaration", sig)
	}
}

func TestDuplicatedGlobal(t *testing.T) {
	r := run(
		&ast.GlobalVar{Name: id("g"), Type: ast.Int, Init: lit(1)},
		&ast.GlobalVar{Name: id("g"), Type: ast.Bool, Init: lit(2)},
		mainProc(),
	)

	// The second initializer is still checked against its own declared type.
	expectDiagnostics(t, r,
		"duplicated global variable name: g",
		"invalid type: got int, expected bool",
	)
	if typ, _ := r.info.Globals.Lookup("g"); typ != ast.Int {
		t.Errorf("g bound to %v, want the first declaration", typ)
	}
}

func TestSignatureTable(t *testing.T) {
	r := reporter.New()
	_, procs := NewPreTyper(r).Pretype(ast.Program{
		proc("pair", ast.Bool, params("a", ast.Int, "b", ast.PointerBool), &ast.Return{Value: boolean(true)}),
		mainProc(),
		&ast.Typedef{Alias: id("cell"), Type: ast.Int},
	})

	if r.Len() != 0 {
		t.Fatalf("unexpected diagnostics %v", r.Diagnostics())
	}
	if got := procs["pair"].String(); got != "(int, bool*) -> bool" {
		t.Errorf("pair: %s", got)
	}
	if got := procs["main"].String(); got != "() -> void" {
		t.Errorf("main: %s", got)
	}
}
