// Package alias replaces standin types with the types their aliases name.
// It runs between parsing and checking; the checker itself never sees an
// alias declaration it has to understand.
package alias

import (
	"fmt"

	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/reporter"
)

type resolver struct {
	reporter  *reporter.Reporter
	aliases   map[string]*ast.Typedef
	resolved  map[string]ast.Type
	resolving map[string]bool
}

// Resolve rewrites, in place, every type written in prog so that no standin
// remains for a declared alias. Struct types are finalized on the way. It
// returns false if anything was reported.
func Resolve(prog ast.Program, r *reporter.Reporter) bool {
	checkpoint := r.Checkpoint()

	res := &resolver{
		reporter:  r,
		aliases:   map[string]*ast.Typedef{},
		resolved:  map[string]ast.Type{},
		resolving: map[string]bool{},
	}

	for _, topdecl := range prog {
		if def, ok := topdecl.(*ast.Typedef); ok {
			if _, ok := res.aliases[def.Alias.Name]; ok {
				r.Reportf(reporter.Name, def.Alias.Pos, "duplicated type alias: %s", def.Alias.Name)
				continue
			}
			res.aliases[def.Alias.Name] = def
		}
	}

	for _, topdecl := range prog {
		switch decl := topdecl.(type) {
		case *ast.Typedef:
			if res.aliases[decl.Alias.Name] == decl {
				decl.Type = res.alias(decl.Alias)
			} else {
				decl.Type = res.resolve(decl.Type)
			}
		case *ast.GlobalVar:
			decl.Type = res.resolve(decl.Type)
			res.expression(decl.Init)
		case *ast.Proc:
			for i := range decl.Parameters {
				decl.Parameters[i].Type = res.resolve(decl.Parameters[i].Type)
			}
			decl.Returns = res.resolve(decl.Returns)
			res.statement(decl.Body)
		default:
			panic(fmt.Sprintf("unhandled top-level declaration %T", topdecl))
		}
	}

	return checkpoint.Clean()
}

func (res *resolver) alias(name ast.Identifier) ast.Type {
	if t, ok := res.resolved[name.Name]; ok {
		return t
	}

	standin := &ast.StandinType{Name: name}

	def, ok := res.aliases[name.Name]
	if !ok {
		res.reporter.Reportf(reporter.Name, name.Pos, "unknown type: %s", name.Name)
		res.resolved[name.Name] = standin
		return standin
	}
	if res.resolving[name.Name] {
		res.reporter.Reportf(reporter.Structural, def.Alias.Pos, "cyclic type alias: %s", name.Name)
		return standin
	}

	res.resolving[name.Name] = true
	t := res.resolve(def.Type)
	delete(res.resolving, name.Name)

	res.resolved[name.Name] = t
	return t
}

func (res *resolver) resolve(t ast.Type) ast.Type {
	switch v := t.(type) {
	case nil:
		return nil
	case ast.Basic:
		return v
	case *ast.PointerType:
		return &ast.PointerType{Target: res.resolve(v.Target)}
	case *ast.ArrayType:
		return &ast.ArrayType{Target: res.resolve(v.Target), Size: v.Size}
	case *ast.StructType:
		attrs := make([]ast.Attribute, len(v.Attributes))
		for i, attr := range v.Attributes {
			attrs[i] = ast.Attribute{Name: attr.Name, Type: res.resolve(attr.Type)}
		}
		st, err := ast.NewStructType(attrs)
		if err != nil {
			res.reporter.Report(reporter.Structural, nil, err.Error())
		}
		return st
	case *ast.StandinType:
		return res.alias(v.Name)
	default:
		panic(fmt.Sprintf("unhandled type %T", t))
	}
}

func (res *resolver) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		s.Type = res.resolve(s.Type)
		res.expression(s.Init)
	case *ast.Assign:
		res.expression(s.LHS)
		res.expression(s.RHS)
	case *ast.ExprStmt:
		res.expression(s.Expression)
	case *ast.Print:
		res.expression(s.Value)
	case *ast.Block:
		for _, inner := range s.Body {
			res.statement(inner)
		}
	case *ast.If:
		res.expression(s.Condition)
		res.statement(s.Then)
		if s.Else != nil {
			res.statement(s.Else)
		}
	case *ast.While:
		res.expression(s.Condition)
		res.statement(s.Body)
	case *ast.Return:
		if s.Value != nil {
			res.expression(s.Value)
		}
	case *ast.Break, *ast.Continue:
	default:
		panic(fmt.Sprintf("unhandled statement %T", stmt))
	}
}

// expression visits the only expressions that spell out a type, allocations,
// wherever they are nested.
func (res *resolver) expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.AllocExpr:
		e.ElementType = res.resolve(e.ElementType)
		res.expression(e.Size)
	case *ast.OpAppExpr:
		for _, arg := range e.Arguments {
			res.expression(arg)
		}
	case *ast.CallExpr:
		for _, arg := range e.Arguments {
			res.expression(arg)
		}
	case *ast.PrintExpr:
		res.expression(e.Argument)
	case *ast.DerefExpr:
		res.expression(e.Pointer)
	case *ast.IndexExpr:
		res.expression(e.Array)
		res.expression(e.Index)
	case *ast.RefExpr:
		res.expression(e.Argument)
	case *ast.DerefAssignable:
		res.expression(e.Argument)
	case *ast.ArrayAssignable:
		res.expression(e.Argument)
		res.expression(e.Index)
	case *ast.AttributeAssignable:
		res.expression(e.Argument)
	case *ast.AttrPointerAssignable:
		res.expression(e.Argument)
	case *ast.VarExpr, *ast.BoolExpr, *ast.IntExpr, *ast.NullExpr, *ast.VarAssignable:
	default:
		panic(fmt.Sprintf("unhandled expression %T", expr))
	}
}
