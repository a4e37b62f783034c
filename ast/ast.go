// Package ast is the syntax tree handed to the checker by the parser.
//
// Every node category is a closed sum type: an interface with an unexported
// marker method, implemented only by the node structs of this package.
// Dispatch sites switch on the concrete type and panic on anything else.
package ast

import (
	"math/big"

	"github.com/bxlang/bxc/types"
)

// Node carries the optional source span of a syntax node. Spans feed
// diagnostics only.
type Node struct {
	Pos *types.Span
}

func (n *Node) Position() *types.Span {
	if n == nil {
		return nil
	}
	return n.Pos
}

type Identifier struct {
	Name string
	Pos  *types.Span
}

func NewID(name string) Identifier {
	return Identifier{Name: name}
}

type Expression interface {
	is_Expression()
	Position() *types.Span
}

type VarExpr struct {
	Node
	Name Identifier
}

func (v *VarExpr) is_Expression() {}

type BoolExpr struct {
	Node
	Value bool
}

func (v *BoolExpr) is_Expression() {}

// IntExpr keeps the literal unbounded so out-of-range literals survive
// parsing and are diagnosed by the checker.
type IntExpr struct {
	Node
	Value *big.Int
}

func (v *IntExpr) is_Expression() {}

func NewInt(v int64) *IntExpr {
	return &IntExpr{Value: big.NewInt(v)}
}

type NullExpr struct {
	Node
}

func (v *NullExpr) is_Expression() {}

// OpAppExpr applies the operator named Operator (e.g. "addition",
// "boolean-not", "cmp-lower-than") to its arguments.
type OpAppExpr struct {
	Node
	Operator  string
	Arguments []Expression
}

func (v *OpAppExpr) is_Expression() {}

type CallExpr struct {
	Node
	Proc      Identifier
	Arguments []Expression
}

func (v *CallExpr) is_Expression() {}

type PrintExpr struct {
	Node
	Argument Expression
}

func (v *PrintExpr) is_Expression() {}

type AllocExpr struct {
	Node
	ElementType Type
	Size        Expression
}

func (v *AllocExpr) is_Expression() {}

type DerefExpr struct {
	Node
	Pointer Expression
}

func (v *DerefExpr) is_Expression() {}

type IndexExpr struct {
	Node
	Array Expression
	Index Expression
}

func (v *IndexExpr) is_Expression() {}

// RefExpr takes the address of an assignable location.
type RefExpr struct {
	Node
	Argument Assignable
}

func (v *RefExpr) is_Expression() {}

// Assignable is the subset of expressions that denote a storage location.
type Assignable interface {
	Expression
	is_Assignable()
}

type VarAssignable struct {
	Node
	Name Identifier
}

func (v *VarAssignable) is_Expression() {}
func (v *VarAssignable) is_Assignable() {}

type DerefAssignable struct {
	Node
	Argument Assignable
}

func (v *DerefAssignable) is_Expression() {}
func (v *DerefAssignable) is_Assignable() {}

type ArrayAssignable struct {
	Node
	Argument Assignable
	Index    Expression
}

func (v *ArrayAssignable) is_Expression() {}
func (v *ArrayAssignable) is_Assignable() {}

// AttributeAssignable is `argument.attribute` on a struct value.
type AttributeAssignable struct {
	Node
	Argument  Assignable
	Attribute Identifier
}

func (v *AttributeAssignable) is_Expression() {}
func (v *AttributeAssignable) is_Assignable() {}

// AttrPointerAssignable is `argument->attribute` on a pointer to a struct.
type AttrPointerAssignable struct {
	Node
	Argument  Assignable
	Attribute Identifier
}

func (v *AttrPointerAssignable) is_Expression() {}
func (v *AttrPointerAssignable) is_Assignable() {}

type Statement interface {
	is_Statement()
	Position() *types.Span
}

type VarDecl struct {
	Node
	Name Identifier
	Init Expression
	Type Type
}

func (v *VarDecl) is_Statement() {}

type Assign struct {
	Node
	LHS Assignable
	RHS Expression
}

func (v *Assign) is_Statement() {}

type ExprStmt struct {
	Node
	Expression Expression
}

func (v *ExprStmt) is_Statement() {}

type Print struct {
	Node
	Value Expression
}

func (v *Print) is_Statement() {}

type Block struct {
	Node
	Body []Statement
}

func (v *Block) is_Statement() {}

// If has a nil Else when the else branch is absent.
type If struct {
	Node
	Condition Expression
	Then      Statement
	Else      Statement
}

func (v *If) is_Statement() {}

type While struct {
	Node
	Condition Expression
	Body      Statement
}

func (v *While) is_Statement() {}

type Break struct {
	Node
}

func (v *Break) is_Statement() {}

type Continue struct {
	Node
}

func (v *Continue) is_Statement() {}

// Return has a nil Value for a value-less return.
type Return struct {
	Node
	Value Expression
}

func (v *Return) is_Statement() {}

type TopDecl interface {
	is_TopDecl()
	Position() *types.Span
}

type GlobalVar struct {
	Node
	Name Identifier
	Init Expression
	Type Type
}

func (v *GlobalVar) is_TopDecl() {}

type Parameter struct {
	Name Identifier
	Type Type
}

// Proc has a nil Returns for a subroutine (no return value).
type Proc struct {
	Node
	Name       Identifier
	Parameters []Parameter
	Returns    Type
	Body       Statement
}

func (v *Proc) is_TopDecl() {}

type Typedef struct {
	Node
	Alias Identifier
	Type  Type
}

func (v *Typedef) is_TopDecl() {}

// Program is the ordered list of top-level declarations of one source unit.
type Program []TopDecl
