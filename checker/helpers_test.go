package checker

import (
	"math/big"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/reporter"
)

func id(name string) ast.Identifier {
	return ast.NewID(name)
}

func v(name string) *ast.VarExpr {
	return &ast.VarExpr{Name: id(name)}
}

func lit(n int64) *ast.IntExpr {
	return ast.NewInt(n)
}

func bigLit(t *testing.T, s string) *ast.IntExpr {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad literal %s", s)
	}
	return &ast.IntExpr{Value: n}
}

func boolean(b bool) *ast.BoolExpr {
	return &ast.BoolExpr{Value: b}
}

func op(name string, args ...ast.Expression) *ast.OpAppExpr {
	return &ast.OpAppExpr{Operator: name, Arguments: args}
}

func call(name string, args ...ast.Expression) *ast.CallExpr {
	return &ast.CallExpr{Proc: id(name), Arguments: args}
}

func decl(name string, typ ast.Type, init ast.Expression) *ast.VarDecl {
	return &ast.VarDecl{Name: id(name), Type: typ, Init: init}
}

func assign(lhs ast.Assignable, rhs ast.Expression) *ast.Assign {
	return &ast.Assign{LHS: lhs, RHS: rhs}
}

func block(body ...ast.Statement) *ast.Block {
	return &ast.Block{Body: body}
}

func proc(name string, returns ast.Type, params []ast.Parameter, body ...ast.Statement) *ast.Proc {
	return &ast.Proc{Name: id(name), Parameters: params, Returns: returns, Body: block(body...)}
}

func mainProc(body ...ast.Statement) *ast.Proc {
	return proc("main", nil, nil, body...)
}

func params(ps ...interface{}) []ast.Parameter {
	var out []ast.Parameter
	for i := 0; i < len(ps); i += 2 {
		out = append(out, ast.Parameter{Name: id(ps[i].(string)), Type: ps[i+1].(ast.Type)})
	}
	return out
}

type result struct {
	info  *Info
	ok    bool
	diags []reporter.Diagnostic
}

func run(prog ...ast.TopDecl) result {
	r := reporter.New()
	info, ok := Check(ast.Program(prog), r)
	return result{info, ok, r.Diagnostics()}
}

func (r result) messages() []string {
	var msgs []string
	for _, d := range r.diags {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

func expectAccepted(t *testing.T, r result) {
	t.Helper()
	if !r.ok || len(r.diags) != 0 {
		t.Fatalf("program rejected:\n%s", repr.String(r.messages(), repr.Indent("  ")))
	}
}

// expectDiagnostics checks that exactly the given messages were reported, in
// order; each entry must be contained in the corresponding diagnostic.
func expectDiagnostics(t *testing.T, r result, want ...string) {
	t.Helper()
	got := r.messages()
	if r.ok {
		t.Errorf("program accepted, want %d diagnostics", len(want))
	}
	if len(got) != len(want) {
		t.Fatalf("got diagnostics %s, want %s", repr.String(got), repr.String(want))
	}
	for i := range want {
		if !strings.Contains(got[i], want[i]) {
			t.Errorf("diagnostic %d: got %q, want it to contain %q", i, got[i], want[i])
		}
	}
}

func expectType(t *testing.T, info *Info, e ast.Expression, want ast.Type) {
	t.Helper()
	got, checked := info.Types[e]
	if !checked {
		t.Fatalf("%s was never checked", repr.String(e))
	}
	if want == nil {
		if got != nil {
			t.Errorf("type of %T = %s, want undetermined", e, got)
		}
		return
	}
	if got == nil || !ast.Equal(got, want) {
		t.Errorf("type of %T = %v, want %s", e, got, want)
	}
}

// expressions lists every expression node reachable from prog.
func expressions(prog ast.Program) []ast.Expression {
	var out []ast.Expression

	var expr func(e ast.Expression)
	expr = func(e ast.Expression) {
		out = append(out, e)
		switch e := e.(type) {
		case *ast.OpAppExpr:
			for _, a := range e.Arguments {
				expr(a)
			}
		case *ast.CallExpr:
			for _, a := range e.Arguments {
				expr(a)
			}
		case *ast.PrintExpr:
			expr(e.Argument)
		case *ast.AllocExpr:
			expr(e.Size)
		case *ast.DerefExpr:
			expr(e.Pointer)
		case *ast.IndexExpr:
			expr(e.Array)
			expr(e.Index)
		case *ast.RefExpr:
			expr(e.Argument)
		case *ast.DerefAssignable:
			expr(e.Argument)
		case *ast.ArrayAssignable:
			expr(e.Argument)
			expr(e.Index)
		case *ast.AttributeAssignable:
			expr(e.Argument)
		case *ast.AttrPointerAssignable:
			expr(e.Argument)
		}
	}

	var stmt func(s ast.Statement)
	stmt = func(s ast.Statement) {
		switch s := s.(type) {
		case *ast.VarDecl:
			expr(s.Init)
		case *ast.Assign:
			expr(s.LHS)
			expr(s.RHS)
		case *ast.ExprStmt:
			expr(s.Expression)
		case *ast.Print:
			expr(s.Value)
		case *ast.Block:
			for _, inner := range s.Body {
				stmt(inner)
			}
		case *ast.If:
			expr(s.Condition)
			stmt(s.Then)
			if s.Else != nil {
				stmt(s.Else)
			}
		case *ast.While:
			expr(s.Condition)
			stmt(s.Body)
		case *ast.Return:
			if s.Value != nil {
				expr(s.Value)
			}
		}
	}

	for _, d := range prog {
		switch d := d.(type) {
		case *ast.GlobalVar:
			expr(d.Init)
		case *ast.Proc:
			stmt(d.Body)
		}
	}
	return out
}
