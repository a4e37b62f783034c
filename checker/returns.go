package checker

import "github.com/bxlang/bxc/ast"

// hasReturn is a structural approximation of "every path returns": a return
// returns, an if returns when both of its branches do, and a block returns
// when any of its statements does. Everything else, loops included, does not.
func hasReturn(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.Return:
		return true
	case *ast.If:
		if s.Else == nil {
			return false
		}
		return hasReturn(s.Then) && hasReturn(s.Else)
	case *ast.Block:
		for _, inner := range s.Body {
			if hasReturn(inner) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// isConstant accepts the initializers allowed for globals: integer literals.
func isConstant(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.IntExpr:
		return true
	default:
		return false
	}
}
