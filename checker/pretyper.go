package checker

import (
	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/reporter"
	"github.com/bxlang/bxc/scope"
)

// Signature is the static interface of a procedure. Returns is ast.Void for
// subroutines.
type Signature struct {
	Params  []ast.Type
	Returns ast.Type
}

func (s Signature) String() string {
	return ast.SignatureString(s.Params, s.Returns)
}

// Signatures maps procedure names to their signatures.
type Signatures map[string]Signature

// PreTyper collects the global scope and every procedure signature ahead of
// checking, so that bodies may refer to declarations in any order.
type PreTyper struct {
	reporter *reporter.Reporter
}

func NewPreTyper(r *reporter.Reporter) *PreTyper {
	return &PreTyper{reporter: r}
}

func (p *PreTyper) Pretype(prog ast.Program) (*scope.Scope, Signatures) {
	globals := scope.New()
	procs := Signatures{}

	for _, topdecl := range prog {
		switch decl := topdecl.(type) {
		case *ast.Proc:
			if _, ok := procs[decl.Name.Name]; ok {
				p.reporter.Reportf(reporter.Name, decl.Name.Pos, "duplicated procedure name: %s", decl.Name.Name)
				continue
			}

			sig := Signature{Params: []ast.Type{}, Returns: ast.Void}
			for _, param := range decl.Parameters {
				sig.Params = append(sig.Params, param.Type)
			}
			if decl.Returns != nil {
				sig.Returns = decl.Returns
			}
			procs[decl.Name.Name] = sig
		case *ast.GlobalVar:
			if globals.Contains(decl.Name.Name) {
				p.reporter.Reportf(reporter.Name, decl.Name.Pos, "duplicated global variable name: %s", decl.Name.Name)
				continue
			}

			globals.Push(decl.Name.Name, decl.Type)
		case *ast.Typedef:
			// resolved before checking, see package alias
		default:
			panic("unhandled top-level declaration")
		}
	}

	if main, ok := procs["main"]; !ok {
		p.reporter.Report(reporter.Signature, nil, "this program is missing a main subroutine")
	} else if len(main.Params) != 0 || !ast.Equal(main.Returns, ast.Void) {
		p.reporter.Report(reporter.Signature, nil, `"main" should not take any argument and should not return any value`)
	}

	return globals, procs
}
