package loader

import (
	"fmt"
	"math/big"

	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/checker"
	"github.com/bxlang/bxc/errors"
	"github.com/bxlang/bxc/types"
)

// selected lists the variant keys present in a node, in the order given.
func selected(keys ...interface{}) []string {
	var got []string
	for i := 0; i < len(keys); i += 2 {
		if keys[i+1].(bool) {
			got = append(got, keys[i].(string))
		}
	}
	return got
}

func expectOne(node string, expected []string, got []string, pos *types.Span) string {
	if len(got) != 1 {
		panic(errors.ExpectedOneOfKindGotKind{
			Node:     node,
			Expected: expected,
			Got:      got,
			Location: pos,
		})
	}
	return got[0]
}

func parsePos(text string) *types.Span {
	if text == "" {
		return nil
	}
	var s types.Span
	if _, err := fmt.Sscanf(text, "%d:%d-%d:%d", &s.From.Line, &s.From.Column, &s.To.Line, &s.To.Column); err != nil {
		panic(errors.MalformedPosition{Text: text})
	}
	return &s
}

func identifier(name string, pos *types.Span) ast.Identifier {
	return ast.Identifier{Name: name, Pos: pos}
}

type exprNode struct {
	ast.Expression
}

type rawExpr struct {
	Pos   string          `yaml:"pos"`
	Var   *string         `yaml:"var"`
	Bool  *bool           `yaml:"bool"`
	Int   *string         `yaml:"int"`
	Null  *bool           `yaml:"null"`
	Op    *string         `yaml:"op"`
	Call  *string         `yaml:"call"`
	Args  []exprNode      `yaml:"args"`
	Print *exprNode       `yaml:"print"`
	Alloc *typeNode       `yaml:"alloc"`
	Size  *exprNode       `yaml:"size"`
	Deref *exprNode       `yaml:"deref"`
	Index *exprNode       `yaml:"index"`
	At    *exprNode       `yaml:"at"`
	Ref   *assignableNode `yaml:"ref"`
}

var exprKinds = []string{"var", "bool", "int", "null", "op", "call", "print", "alloc", "deref", "index", "ref"}

func expressions(nodes []exprNode) []ast.Expression {
	var out []ast.Expression
	for _, n := range nodes {
		out = append(out, n.Expression)
	}
	return out
}

func (e *exprNode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawExpr
	if err := unmarshal(&raw); err != nil {
		return err
	}

	pos := parsePos(raw.Pos)
	node := ast.Node{Pos: pos}

	kind := expectOne("expression", exprKinds, selected(
		"var", raw.Var != nil,
		"bool", raw.Bool != nil,
		"int", raw.Int != nil,
		"null", raw.Null != nil,
		"op", raw.Op != nil,
		"call", raw.Call != nil,
		"print", raw.Print != nil,
		"alloc", raw.Alloc != nil,
		"deref", raw.Deref != nil,
		"index", raw.Index != nil,
		"ref", raw.Ref != nil,
	), pos)

	switch kind {
	case "var":
		e.Expression = &ast.VarExpr{Node: node, Name: identifier(*raw.Var, pos)}
	case "bool":
		e.Expression = &ast.BoolExpr{Node: node, Value: *raw.Bool}
	case "int":
		value, ok := new(big.Int).SetString(*raw.Int, 0)
		if !ok {
			return fmt.Errorf("malformed integer literal %q", *raw.Int)
		}
		e.Expression = &ast.IntExpr{Node: node, Value: value}
	case "null":
		e.Expression = &ast.NullExpr{Node: node}
	case "op":
		if !checker.IsOperator(*raw.Op) {
			panic(errors.UnknownOperator{Name: *raw.Op, Location: pos})
		}
		e.Expression = &ast.OpAppExpr{Node: node, Operator: *raw.Op, Arguments: expressions(raw.Args)}
	case "call":
		e.Expression = &ast.CallExpr{Node: node, Proc: identifier(*raw.Call, pos), Arguments: expressions(raw.Args)}
	case "print":
		e.Expression = &ast.PrintExpr{Node: node, Argument: raw.Print.Expression}
	case "alloc":
		if raw.Size == nil {
			return fmt.Errorf("alloc without a size")
		}
		e.Expression = &ast.AllocExpr{Node: node, ElementType: raw.Alloc.Type, Size: raw.Size.Expression}
	case "deref":
		e.Expression = &ast.DerefExpr{Node: node, Pointer: raw.Deref.Expression}
	case "index":
		if raw.At == nil {
			return fmt.Errorf("index without an 'at' expression")
		}
		e.Expression = &ast.IndexExpr{Node: node, Array: raw.Index.Expression, Index: raw.At.Expression}
	case "ref":
		e.Expression = &ast.RefExpr{Node: node, Argument: raw.Ref.Assignable}
	}
	return nil
}

type assignableNode struct {
	ast.Assignable
}

type rawAssignable struct {
	Pos     string          `yaml:"pos"`
	Var     *string         `yaml:"var"`
	Deref   *assignableNode `yaml:"deref"`
	Index   *assignableNode `yaml:"index"`
	At      *exprNode       `yaml:"at"`
	Attr    *assignableNode `yaml:"attr"`
	PtrAttr *assignableNode `yaml:"ptrattr"`
	Name    string          `yaml:"name"`
}

var assignableKinds = []string{"var", "deref", "index", "attr", "ptrattr"}

func (a *assignableNode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawAssignable
	if err := unmarshal(&raw); err != nil {
		return err
	}

	pos := parsePos(raw.Pos)
	node := ast.Node{Pos: pos}

	kind := expectOne("assignable", assignableKinds, selected(
		"var", raw.Var != nil,
		"deref", raw.Deref != nil,
		"index", raw.Index != nil,
		"attr", raw.Attr != nil,
		"ptrattr", raw.PtrAttr != nil,
	), pos)

	switch kind {
	case "var":
		a.Assignable = &ast.VarAssignable{Node: node, Name: identifier(*raw.Var, pos)}
	case "deref":
		a.Assignable = &ast.DerefAssignable{Node: node, Argument: raw.Deref.Assignable}
	case "index":
		if raw.At == nil {
			return fmt.Errorf("index without an 'at' expression")
		}
		a.Assignable = &ast.ArrayAssignable{Node: node, Argument: raw.Index.Assignable, Index: raw.At.Expression}
	case "attr":
		a.Assignable = &ast.AttributeAssignable{Node: node, Argument: raw.Attr.Assignable, Attribute: identifier(raw.Name, pos)}
	case "ptrattr":
		a.Assignable = &ast.AttrPointerAssignable{Node: node, Argument: raw.PtrAttr.Assignable, Attribute: identifier(raw.Name, pos)}
	}
	return nil
}

type stmtNode struct {
	ast.Statement
}

type rawStmt struct {
	Pos    string          `yaml:"pos"`
	Var    *string         `yaml:"var"`
	Type   *typeNode       `yaml:"type"`
	Init   *exprNode       `yaml:"init"`
	Assign *assignableNode `yaml:"assign"`
	Value  *exprNode       `yaml:"value"`
	Expr   *exprNode       `yaml:"expr"`
	Print  *exprNode       `yaml:"print"`
	Block  *[]stmtNode     `yaml:"block"`
	If     *exprNode       `yaml:"if"`
	Then   *stmtNode       `yaml:"then"`
	Else   *stmtNode       `yaml:"else"`
	While  *exprNode       `yaml:"while"`
	Body   *stmtNode       `yaml:"body"`
	Return *exprNode       `yaml:"return"`
}

var stmtKinds = []string{"var", "assign", "expr", "print", "block", "if", "while", "return", "break", "continue"}

func statements(nodes []stmtNode) []ast.Statement {
	out := []ast.Statement{}
	for _, n := range nodes {
		out = append(out, n.Statement)
	}
	return out
}

// UnmarshalYAML also accepts the bare scalars break, continue and return.
func (s *stmtNode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var keyword string
	if err := unmarshal(&keyword); err == nil {
		switch keyword {
		case "break":
			s.Statement = &ast.Break{}
		case "continue":
			s.Statement = &ast.Continue{}
		case "return":
			s.Statement = &ast.Return{}
		default:
			panic(errors.ExpectedOneOfKindGotKind{
				Node:     "statement",
				Expected: stmtKinds,
				Got:      []string{keyword},
			})
		}
		return nil
	}

	var raw rawStmt
	if err := unmarshal(&raw); err != nil {
		return err
	}

	pos := parsePos(raw.Pos)
	node := ast.Node{Pos: pos}

	kind := expectOne("statement", stmtKinds, selected(
		"var", raw.Var != nil,
		"assign", raw.Assign != nil,
		"expr", raw.Expr != nil,
		"print", raw.Print != nil,
		"block", raw.Block != nil,
		"if", raw.If != nil,
		"while", raw.While != nil,
		"return", raw.Return != nil,
	), pos)

	switch kind {
	case "var":
		if raw.Type == nil || raw.Init == nil {
			return fmt.Errorf("variable %s needs a type and an init", *raw.Var)
		}
		s.Statement = &ast.VarDecl{Node: node, Name: identifier(*raw.Var, pos), Type: raw.Type.Type, Init: raw.Init.Expression}
	case "assign":
		if raw.Value == nil {
			return fmt.Errorf("assignment without a value")
		}
		s.Statement = &ast.Assign{Node: node, LHS: raw.Assign.Assignable, RHS: raw.Value.Expression}
	case "expr":
		s.Statement = &ast.ExprStmt{Node: node, Expression: raw.Expr.Expression}
	case "print":
		s.Statement = &ast.Print{Node: node, Value: raw.Print.Expression}
	case "block":
		s.Statement = &ast.Block{Node: node, Body: statements(*raw.Block)}
	case "if":
		if raw.Then == nil {
			return fmt.Errorf("if without a then branch")
		}
		stmt := &ast.If{Node: node, Condition: raw.If.Expression, Then: raw.Then.Statement}
		if raw.Else != nil {
			stmt.Else = raw.Else.Statement
		}
		s.Statement = stmt
	case "while":
		if raw.Body == nil {
			return fmt.Errorf("while without a body")
		}
		s.Statement = &ast.While{Node: node, Condition: raw.While.Expression, Body: raw.Body.Statement}
	case "return":
		s.Statement = &ast.Return{Node: node, Value: raw.Return.Expression}
	}
	return nil
}

type topDeclNode struct {
	ast.TopDecl
}

type rawParam struct {
	Pos  string   `yaml:"pos"`
	Name string   `yaml:"name"`
	Type typeNode `yaml:"type"`
}

type rawTopDecl struct {
	Pos     string     `yaml:"pos"`
	Global  *string    `yaml:"global"`
	Proc    *string    `yaml:"proc"`
	Typedef *string    `yaml:"typedef"`
	Type    *typeNode  `yaml:"type"`
	Init    *exprNode  `yaml:"init"`
	Params  []rawParam `yaml:"params"`
	Returns *typeNode  `yaml:"returns"`
	Body    *stmtNode  `yaml:"body"`
}

var topDeclKinds = []string{"global", "proc", "typedef"}

func (d *topDeclNode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawTopDecl
	if err := unmarshal(&raw); err != nil {
		return err
	}

	pos := parsePos(raw.Pos)
	node := ast.Node{Pos: pos}

	kind := expectOne("declaration", topDeclKinds, selected(
		"global", raw.Global != nil,
		"proc", raw.Proc != nil,
		"typedef", raw.Typedef != nil,
	), pos)

	switch kind {
	case "global":
		if raw.Type == nil || raw.Init == nil {
			return fmt.Errorf("global %s needs a type and an init", *raw.Global)
		}
		d.TopDecl = &ast.GlobalVar{Node: node, Name: identifier(*raw.Global, pos), Type: raw.Type.Type, Init: raw.Init.Expression}
	case "proc":
		if raw.Body == nil {
			return fmt.Errorf("procedure %s has no body", *raw.Proc)
		}
		p := &ast.Proc{Node: node, Name: identifier(*raw.Proc, pos), Body: raw.Body.Statement}
		for _, param := range raw.Params {
			paramPos := pos
			if param.Pos != "" {
				paramPos = parsePos(param.Pos)
			}
			p.Parameters = append(p.Parameters, ast.Parameter{Name: identifier(param.Name, paramPos), Type: param.Type.Type})
		}
		if raw.Returns != nil && raw.Returns.Type != ast.Void {
			p.Returns = raw.Returns.Type
		}
		d.TopDecl = p
	case "typedef":
		if raw.Type == nil {
			return fmt.Errorf("type alias %s has no type", *raw.Typedef)
		}
		d.TopDecl = &ast.Typedef{Node: node, Alias: identifier(*raw.Typedef, pos), Type: raw.Type.Type}
	}
	return nil
}
