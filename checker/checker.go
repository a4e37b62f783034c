// Package checker implements the static semantics of BX: a signature
// pre-pass followed by a full recursive type and scope check. Every
// violation is recorded in a reporter.Reporter; checking never stops early.
package checker

import (
	"fmt"
	"math/big"

	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/reporter"
	"github.com/bxlang/bxc/scope"
	"github.com/bxlang/bxc/types"
)

var (
	minInt64 = big.NewInt(-1 << 63)
	maxInt64 = big.NewInt(1<<63 - 1)
)

// ctx is the contextual state of the statement being checked. It is passed
// by value, so leaving a loop or a procedure restores the outer state.
type ctx struct {
	proc  *ast.Proc
	loops int
}

func (c ctx) inLoop() ctx {
	c.loops++
	return c
}

type TypeChecker struct {
	scope    *scope.Scope
	procs    Signatures
	reporter *reporter.Reporter
	types    map[ast.Expression]ast.Type
}

func NewTypeChecker(globals *scope.Scope, procs Signatures, r *reporter.Reporter) *TypeChecker {
	return &TypeChecker{
		scope:    globals,
		procs:    procs,
		reporter: r,
		types:    make(map[ast.Expression]ast.Type),
	}
}

func (c *TypeChecker) report(cat reporter.Category, pos *types.Span, msg string, fmts ...interface{}) {
	c.reporter.Reportf(cat, pos, msg, fmts...)
}

func (c *TypeChecker) checkLocalFree(name ast.Identifier) bool {
	if c.scope.IsLocal(name.Name) {
		c.report(reporter.Name, name.Pos, "duplicated variable declaration for %s", name.Name)
		return false
	}
	return true
}

func (c *TypeChecker) checkLocalBound(name ast.Identifier) ast.Type {
	t, ok := c.scope.Lookup(name.Name)
	if !ok {
		c.report(reporter.Name, name.Pos, "missing variable declaration for %s", name.Name)
		return nil
	}
	return t
}

func (c *TypeChecker) checkIntegerConstantRange(e *ast.IntExpr) bool {
	if e.Value.Cmp(minInt64) < 0 || e.Value.Cmp(maxInt64) > 0 {
		c.report(reporter.Range, e.Position(), "integer literal out of range: %s", e.Value.String())
		return false
	}
	return true
}

func (c *TypeChecker) checkArguments(args []ast.Expression, params []ast.Type) {
	for idx, arg := range args {
		var expected ast.Type
		if idx < len(params) {
			expected = params[idx]
		}
		c.forExpression(arg, expected)
	}
}

// forExpression infers the type of expr and records it, nil when no type
// could be determined. A mismatch against expected is reported but the
// inferred type is still recorded; an undetermined type is never compared.
func (c *TypeChecker) forExpression(expr ast.Expression, expected ast.Type) ast.Type {
	var typ ast.Type

	switch e := expr.(type) {
	case *ast.VarExpr:
		typ = c.checkLocalBound(e.Name)
	case *ast.BoolExpr:
		typ = ast.Bool
	case *ast.IntExpr:
		c.checkIntegerConstantRange(e)
		typ = ast.Int
	case *ast.NullExpr:
		typ = ast.Null
	case *ast.OpAppExpr:
		sig, ok := operators[e.Operator]
		if !ok {
			c.report(reporter.Signature, e.Position(), "unknown operator: %s", e.Operator)
			c.checkArguments(e.Arguments, nil)
			break
		}
		if len(sig.params) != len(e.Arguments) {
			c.report(reporter.Signature, e.Position(), "invalid number of operands for %s: expected %d, got %d", e.Operator, len(sig.params), len(e.Arguments))
		}
		c.checkArguments(e.Arguments, sig.params)
		typ = sig.result
	case *ast.CallExpr:
		sig, ok := c.procs[e.Proc.Name]
		if !ok {
			c.report(reporter.Name, e.Proc.Pos, "unknown procedure: %s", e.Proc.Name)
		} else if len(sig.Params) != len(e.Arguments) {
			c.report(reporter.Signature, e.Position(), "invalid number of arguments: expected %d, got %d", len(sig.Params), len(e.Arguments))
		}
		c.checkArguments(e.Arguments, sig.Params)
		if ok {
			typ = sig.Returns
		}
	case *ast.PrintExpr:
		arg := c.forExpression(e.Argument, nil)
		if arg != nil && arg != ast.Int && arg != ast.Bool {
			c.report(reporter.Type, e.Argument.Position(), "can only print integers and booleans, not %s", arg)
		}
		typ = ast.Void
	case *ast.AllocExpr:
		c.forExpression(e.Size, ast.Int)
		if e.ElementType != ast.Int && e.ElementType != ast.Bool {
			c.report(reporter.Type, e.Position(), "can only allocate integers and booleans, not %s", e.ElementType)
			break
		}
		typ = ast.PointerTo(e.ElementType)
	case *ast.DerefExpr:
		typ = c.dereference(c.forExpression(e.Pointer, nil), e.Pointer)
	case *ast.IndexExpr:
		array := c.forExpression(e.Array, nil)
		c.forExpression(e.Index, ast.Int)
		typ = c.index(array, e.Array)
	case *ast.RefExpr:
		if target := c.forExpression(e.Argument, nil); target != nil {
			typ = ast.PointerTo(target)
		}
	case *ast.VarAssignable:
		typ = c.checkLocalBound(e.Name)
	case *ast.DerefAssignable:
		typ = c.dereference(c.forExpression(e.Argument, nil), e.Argument)
	case *ast.ArrayAssignable:
		array := c.forExpression(e.Argument, nil)
		c.forExpression(e.Index, ast.Int)
		typ = c.index(array, e.Argument)
	case *ast.AttributeAssignable:
		typ = c.attribute(c.forExpression(e.Argument, nil), e.Attribute, e.Argument)
	case *ast.AttrPointerAssignable:
		if target := c.dereference(c.forExpression(e.Argument, nil), e.Argument); target != nil {
			typ = c.attribute(target, e.Attribute, e.Argument)
		}
	default:
		panic(fmt.Sprintf("unhandled expression %T", expr))
	}

	if typ != nil && expected != nil && !ast.AssignableTo(typ, expected) {
		c.report(reporter.Type, expr.Position(), "invalid type: got %s, expected %s", typ, expected)
	}

	if _, ok := c.types[expr]; ok {
		panic(fmt.Sprintf("expression %T checked twice", expr))
	}
	c.types[expr] = typ

	return typ
}

// dereference is the pointed-to type of t, the type of operand. Undetermined
// operand types yield nil without a further report.
func (c *TypeChecker) dereference(t ast.Type, operand ast.Expression) ast.Type {
	if t == nil {
		return nil
	}
	target, ok := ast.Pointee(t)
	if !ok {
		c.report(reporter.Type, operand.Position(), "dereference of non-pointer type %s", t)
		return nil
	}
	return target
}

func (c *TypeChecker) index(t ast.Type, operand ast.Expression) ast.Type {
	if t == nil {
		return nil
	}
	elem, ok := ast.Element(t)
	if !ok {
		c.report(reporter.Type, operand.Position(), "indexing on non-array and non-pointer type %s", t)
		return nil
	}
	return elem
}

func (c *TypeChecker) attribute(t ast.Type, attr ast.Identifier, operand ast.Expression) ast.Type {
	if t == nil {
		return nil
	}
	st, ok := t.(*ast.StructType)
	if !ok {
		c.report(reporter.Type, operand.Position(), "attribute access on non-struct type %s", t)
		return nil
	}
	info, ok := st.Lookup(attr.Name)
	if !ok {
		c.report(reporter.Name, attr.Pos, "%s has no attribute %s", t, attr.Name)
		return nil
	}
	return info.Type
}

// checkType finalizes the struct types reachable from a declared type. Each
// struct reports its duplicated attributes once, on first finalization.
func (c *TypeChecker) checkType(t ast.Type) {
	switch v := t.(type) {
	case *ast.PointerType:
		c.checkType(v.Target)
	case *ast.ArrayType:
		c.checkType(v.Target)
	case *ast.StructType:
		if err := v.Finalize(); err != nil {
			c.report(reporter.Structural, nil, "%s", err.Error())
		}
		for _, attr := range v.Attributes {
			c.checkType(attr.Type)
		}
	}
}

func (c *TypeChecker) forStatement(stmt ast.Statement, cx ctx) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkType(s.Type)
		if c.checkLocalFree(s.Name) {
			c.scope.Push(s.Name.Name, s.Type)
		}
		c.forExpression(s.Init, s.Type)
	case *ast.Assign:
		target := c.forExpression(s.LHS, nil)
		c.forExpression(s.RHS, target)
	case *ast.ExprStmt:
		c.forExpression(s.Expression, nil)
	case *ast.Print:
		c.forExpression(s.Value, ast.Int)
	case *ast.Block:
		c.forBlock(s.Body, cx)
	case *ast.If:
		c.forExpression(s.Condition, ast.Bool)
		c.forStatement(s.Then, cx)
		if s.Else != nil {
			c.forStatement(s.Else, cx)
		}
	case *ast.While:
		c.forExpression(s.Condition, ast.Bool)
		c.forStatement(s.Body, cx.inLoop())
	case *ast.Break, *ast.Continue:
		if cx.loops == 0 {
			c.report(reporter.Control, stmt.Position(), "break/continue statement outside of a loop")
		}
	case *ast.Return:
		c.forReturn(s, cx.proc)
	default:
		panic(fmt.Sprintf("unhandled statement %T", stmt))
	}
}

func (c *TypeChecker) forReturn(s *ast.Return, proc *ast.Proc) {
	if s.Value == nil {
		if proc.Returns != nil {
			c.report(reporter.Control, s.Position(), "value-less return statement in a function")
		}
		return
	}

	if proc.Returns == nil {
		c.report(reporter.Control, s.Position(), "return statement in a subroutine")
		c.forExpression(s.Value, nil)
		return
	}
	c.forExpression(s.Value, proc.Returns)
}

func (c *TypeChecker) forBlock(body []ast.Statement, cx ctx) {
	c.scope.InSubscope(func() {
		for _, stmt := range body {
			c.forStatement(stmt, cx)
		}
	})
}

func (c *TypeChecker) forTopDecl(topdecl ast.TopDecl) {
	switch decl := topdecl.(type) {
	case *ast.Proc:
		c.checkType(decl.Returns)
		c.scope.InSubscope(func() {
			for _, param := range decl.Parameters {
				c.checkType(param.Type)
				if c.checkLocalFree(param.Name) {
					c.scope.Push(param.Name.Name, param.Type)
				}
			}
			c.forStatement(decl.Body, ctx{proc: decl})
		})

		if decl.Returns != nil && !hasReturn(decl.Body) {
			c.report(reporter.Control, decl.Position(), "this function is missing a return statement")
		}
	case *ast.GlobalVar:
		c.checkType(decl.Type)
		c.forExpression(decl.Init, decl.Type)
		if !isConstant(decl.Init) {
			c.report(reporter.Constant, decl.Init.Position(), "this expression is not a literal")
		}
	case *ast.Typedef:
	default:
		panic(fmt.Sprintf("unhandled top-level declaration %T", topdecl))
	}
}

// Check type checks every declaration of prog in order.
func (c *TypeChecker) Check(prog ast.Program) {
	for _, decl := range prog {
		c.forTopDecl(decl)
	}
}

// Types is the annotation side table built so far.
func (c *TypeChecker) Types() map[ast.Expression]ast.Type {
	return c.types
}
